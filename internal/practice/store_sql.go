package practice

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"
)

type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

const questionCols = `id,subject,question_text,option_a,option_b,option_c,option_d,correct_answer`

type scanner interface {
	Scan(dest ...any) error
}

func scanQuestion(r scanner) (Question, error) {
	var q Question
	err := r.Scan(&q.ID, &q.Subject, &q.Text, &q.OptionA, &q.OptionB, &q.OptionC, &q.OptionD, &q.CorrectAnswer)
	return q, err
}

func (s *SQLStore) InsertQuestion(ctx context.Context, q Question) (Question, error) {
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO questions (subject,question_text,option_a,option_b,option_c,option_d,correct_answer)
		 VALUES ($1,$2,$3,$4,$5,$6,$7) RETURNING id`,
		q.Subject, q.Text, q.OptionA, q.OptionB, q.OptionC, q.OptionD, q.CorrectAnswer).Scan(&q.ID)
	if err != nil {
		return Question{}, errors.Wrap(err, "insert question")
	}
	return q, nil
}

func (s *SQLStore) UpdateQuestion(ctx context.Context, q Question) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE questions SET subject=$1,question_text=$2,option_a=$3,option_b=$4,option_c=$5,option_d=$6,correct_answer=$7
		 WHERE id=$8`,
		q.Subject, q.Text, q.OptionA, q.OptionB, q.OptionC, q.OptionD, q.CorrectAnswer, q.ID)
	if err != nil {
		return errors.Wrap(err, "update question")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLStore) GetQuestion(ctx context.Context, id int64) (Question, error) {
	q, err := scanQuestion(s.db.QueryRowContext(ctx, `SELECT `+questionCols+` FROM questions WHERE id=$1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return Question{}, ErrNotFound
	}
	return q, errors.Wrap(err, "get question")
}

func (s *SQLStore) DeleteQuestion(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM questions WHERE id=$1`, id)
	if err != nil {
		return errors.Wrap(err, "delete question")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// ListQuestions returns questions by id; an empty subject lists all.
func (s *SQLStore) ListQuestions(ctx context.Context, subject string) ([]Question, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if subject == "" {
		rows, err = s.db.QueryContext(ctx, `SELECT `+questionCols+` FROM questions ORDER BY id`)
	} else {
		rows, err = s.db.QueryContext(ctx, `SELECT `+questionCols+` FROM questions WHERE subject=$1 ORDER BY id`, subject)
	}
	if err != nil {
		return nil, errors.Wrap(err, "list questions")
	}
	return collectQuestions(rows)
}

func collectQuestions(rows *sql.Rows) ([]Question, error) {
	defer rows.Close()
	out := []Question{}
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, errors.Wrap(err, "scan question")
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

func (s *SQLStore) QuestionIDs(ctx context.Context, subject string) ([]int64, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id FROM questions WHERE subject=$1 ORDER BY id`, subject)
	if err != nil {
		return nil, errors.Wrap(err, "list question ids")
	}
	defer rows.Close()
	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, errors.Wrap(err, "scan question id")
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// InsertTest stores the test and its question links in one transaction.
func (s *SQLStore) InsertTest(ctx context.Context, t Test, questionIDs []int64) (_ Test, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Test{}, errors.Wrap(err, "begin")
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			err = errors.Wrap(tx.Commit(), "commit")
		}
	}()

	err = tx.QueryRowContext(ctx,
		`INSERT INTO tests (subject,test_name,created_at) VALUES ($1,$2,$3) RETURNING id`,
		t.Subject, t.Name, t.CreatedAt).Scan(&t.ID)
	if err != nil {
		return Test{}, errors.Wrap(err, "insert test")
	}
	for _, qid := range questionIDs {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO test_questions (test_id,question_id) VALUES ($1,$2)`, t.ID, qid); err != nil {
			return Test{}, errors.Wrap(err, "link test question")
		}
	}
	t.QuestionCount = len(questionIDs)
	return t, nil
}

const testSelect = `SELECT t.id,t.subject,t.test_name,t.created_at,
  (SELECT COUNT(*) FROM test_questions tq WHERE tq.test_id=t.id)
  FROM tests t`

func scanTest(r scanner) (Test, error) {
	var t Test
	err := r.Scan(&t.ID, &t.Subject, &t.Name, &t.CreatedAt, &t.QuestionCount)
	return t, err
}

func (s *SQLStore) GetTest(ctx context.Context, id int64) (Test, error) {
	t, err := scanTest(s.db.QueryRowContext(ctx, testSelect+` WHERE t.id=$1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return Test{}, ErrNotFound
	}
	return t, errors.Wrap(err, "get test")
}

func (s *SQLStore) ListTests(ctx context.Context, subject string) ([]Test, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if subject == "" {
		rows, err = s.db.QueryContext(ctx, testSelect+` ORDER BY t.id`)
	} else {
		rows, err = s.db.QueryContext(ctx, testSelect+` WHERE t.subject=$1 ORDER BY t.id`, subject)
	}
	if err != nil {
		return nil, errors.Wrap(err, "list tests")
	}
	defer rows.Close()
	out := []Test{}
	for rows.Next() {
		t, err := scanTest(rows)
		if err != nil {
			return nil, errors.Wrap(err, "scan test")
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (s *SQLStore) TestQuestions(ctx context.Context, testID int64) ([]Question, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT q.id,q.subject,q.question_text,q.option_a,q.option_b,q.option_c,q.option_d,q.correct_answer
		 FROM test_questions tq JOIN questions q ON q.id=tq.question_id
		 WHERE tq.test_id=$1 ORDER BY q.id`, testID)
	if err != nil {
		return nil, errors.Wrap(err, "list test questions")
	}
	return collectQuestions(rows)
}

func (s *SQLStore) DeleteTest(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM tests WHERE id=$1`, id)
	if err != nil {
		return errors.Wrap(err, "delete test")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
