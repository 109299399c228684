package uploads

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

func (s *SQLStore) InsertCutoff(ctx context.Context, f CutoffFile) (CutoffFile, error) {
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO cutoff_files (file_name, blob_key, year, uploaded_at) VALUES ($1,$2,$3,$4) RETURNING id`,
		f.FileName, f.BlobKey, f.Year, f.UploadedAt).Scan(&f.ID)
	if err != nil {
		return CutoffFile{}, errors.Wrap(err, "insert cutoff file")
	}
	return f, nil
}

func (s *SQLStore) GetCutoff(ctx context.Context, id int64) (CutoffFile, error) {
	var f CutoffFile
	err := s.db.QueryRowContext(ctx,
		`SELECT id,file_name,blob_key,year,uploaded_at FROM cutoff_files WHERE id=$1`, id).
		Scan(&f.ID, &f.FileName, &f.BlobKey, &f.Year, &f.UploadedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return CutoffFile{}, ErrNotFound
	}
	return f, errors.Wrap(err, "get cutoff file")
}

// ListCutoffs returns newest uploads first, optionally for one year.
func (s *SQLStore) ListCutoffs(ctx context.Context, year *int) ([]CutoffFile, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if year == nil {
		rows, err = s.db.QueryContext(ctx,
			`SELECT id,file_name,blob_key,year,uploaded_at FROM cutoff_files ORDER BY uploaded_at DESC, id DESC`)
	} else {
		rows, err = s.db.QueryContext(ctx,
			`SELECT id,file_name,blob_key,year,uploaded_at FROM cutoff_files WHERE year=$1 ORDER BY uploaded_at DESC, id DESC`, *year)
	}
	if err != nil {
		return nil, errors.Wrap(err, "list cutoff files")
	}
	defer rows.Close()
	out := []CutoffFile{}
	for rows.Next() {
		var f CutoffFile
		if err := rows.Scan(&f.ID, &f.FileName, &f.BlobKey, &f.Year, &f.UploadedAt); err != nil {
			return nil, errors.Wrap(err, "scan cutoff file")
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

func (s *SQLStore) DeleteCutoff(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM cutoff_files WHERE id=$1`, id)
	return errors.Wrap(err, "delete cutoff file")
}

func (s *SQLStore) InsertDocument(ctx context.Context, d DocumentTemplate) (DocumentTemplate, error) {
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO document_templates (document_name, file_name, blob_key, uploaded_at) VALUES ($1,$2,$3,$4) RETURNING id`,
		d.DocumentName, d.FileName, d.BlobKey, d.UploadedAt).Scan(&d.ID)
	if err != nil {
		return DocumentTemplate{}, errors.Wrap(err, "insert document")
	}
	return d, nil
}

func (s *SQLStore) GetDocument(ctx context.Context, id int64) (DocumentTemplate, error) {
	var d DocumentTemplate
	err := s.db.QueryRowContext(ctx,
		`SELECT id,document_name,file_name,blob_key,uploaded_at FROM document_templates WHERE id=$1`, id).
		Scan(&d.ID, &d.DocumentName, &d.FileName, &d.BlobKey, &d.UploadedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return DocumentTemplate{}, ErrNotFound
	}
	return d, errors.Wrap(err, "get document")
}

func (s *SQLStore) ListDocuments(ctx context.Context) ([]DocumentTemplate, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id,document_name,file_name,blob_key,uploaded_at FROM document_templates ORDER BY uploaded_at DESC, id DESC`)
	if err != nil {
		return nil, errors.Wrap(err, "list documents")
	}
	defer rows.Close()
	out := []DocumentTemplate{}
	for rows.Next() {
		var d DocumentTemplate
		if err := rows.Scan(&d.ID, &d.DocumentName, &d.FileName, &d.BlobKey, &d.UploadedAt); err != nil {
			return nil, errors.Wrap(err, "scan document")
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (s *SQLStore) DeleteDocument(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM document_templates WHERE id=$1`, id)
	return errors.Wrap(err, "delete document")
}
