package college

import (
	"context"
	"database/sql"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

var ErrNotFound = errors.New("college not found")

type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM colleges`).Scan(&n)
	return n, errors.Wrap(err, "count colleges")
}

// InsertMany writes all colleges in one transaction.
func (s *SQLStore) InsertMany(ctx context.Context, colleges []College) (n int, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, errors.Wrap(err, "begin")
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			err = errors.Wrap(tx.Commit(), "commit")
		}
	}()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO colleges (cet_code, name, location, branch, cutoff_ranks_json) VALUES ($1,$2,$3,$4,$5)`)
	if err != nil {
		return 0, errors.Wrap(err, "prepare insert")
	}
	defer stmt.Close()

	for _, c := range colleges {
		rj, err := json.Marshal(c.CutoffRanks)
		if err != nil {
			return n, errors.Wrap(err, "encode cutoff ranks")
		}
		if _, err := stmt.ExecContext(ctx, c.CETCode, c.Name, c.Location, c.Branch, string(rj)); err != nil {
			return n, errors.Wrapf(err, "insert college %s %s", c.CETCode, c.Branch)
		}
		n++
	}
	return n, nil
}

func scanCollege(sc interface{ Scan(...any) error }) (College, error) {
	var (
		c  College
		rj string
	)
	if err := sc.Scan(&c.ID, &c.CETCode, &c.Name, &c.Location, &c.Branch, &rj); err != nil {
		return College{}, err
	}
	c.CutoffRanks = map[string]int{}
	if rj != "" {
		if err := json.Unmarshal([]byte(rj), &c.CutoffRanks); err != nil {
			return College{}, errors.Wrap(err, "decode cutoff ranks")
		}
	}
	return c, nil
}

func (s *SQLStore) Get(ctx context.Context, id int64) (College, error) {
	c, err := scanCollege(s.db.QueryRowContext(ctx,
		`SELECT id,cet_code,name,location,branch,cutoff_ranks_json FROM colleges WHERE id=$1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return College{}, ErrNotFound
	}
	return c, err
}

// List filters by branch (exact, case-insensitive) and a name/code substring.
func (s *SQLStore) List(ctx context.Context, opts ListOpts) ([]College, error) {
	if opts.Limit <= 0 || opts.Limit > 500 {
		opts.Limit = 100
	}
	q := `SELECT id,cet_code,name,location,branch,cutoff_ranks_json FROM colleges WHERE 1=1`
	args := []any{}
	if b := strings.TrimSpace(opts.Branch); b != "" {
		args = append(args, strings.ToUpper(b))
		q += ` AND UPPER(branch) = $` + strconv.Itoa(len(args))
	}
	if term := strings.TrimSpace(opts.Q); term != "" {
		args = append(args, "%"+strings.ToUpper(term)+"%")
		n := strconv.Itoa(len(args))
		q += ` AND (UPPER(name) LIKE $` + n + ` OR UPPER(cet_code) LIKE $` + n + `)`
	}
	args = append(args, opts.Limit, opts.Offset)
	q += ` ORDER BY cet_code, branch LIMIT $` + strconv.Itoa(len(args)-1) + ` OFFSET $` + strconv.Itoa(len(args))

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, errors.Wrap(err, "list colleges")
	}
	defer rows.Close()
	out := []College{}
	for rows.Next() {
		c, err := scanCollege(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
