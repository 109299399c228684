package uploads

import (
	"context"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/kcetprep/kcetprep/internal/storage"
)

var (
	ErrNotFound    = errors.New("file not found")
	ErrInvalidFile = errors.New("invalid file")
)

// Service stores uploaded bytes in the blob store and their metadata in SQL.
type Service struct {
	Store *SQLStore
	Blobs storage.BlobStore
	Now   func() time.Time
}

func NewService(store *SQLStore, blobs storage.BlobStore) *Service {
	return &Service{Store: store, Blobs: blobs, Now: time.Now}
}

// countingReader lets us reject empty uploads without buffering them.
type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}

func (s *Service) put(prefix, ext string, r io.Reader) (string, error) {
	key := prefix + "/" + uuid.NewString() + ext
	cr := &countingReader{r: r}
	key, err := s.Blobs.Put(key, cr)
	if err != nil {
		return "", errors.Wrap(err, "store upload")
	}
	if cr.n == 0 {
		_ = s.Blobs.Delete(key)
		return "", errors.Wrap(ErrInvalidFile, "empty file")
	}
	return key, nil
}

// UploadCutoff accepts a non-empty .pdf for the given year.
func (s *Service) UploadCutoff(ctx context.Context, fileName string, year int, r io.Reader) (CutoffFile, error) {
	ext := strings.ToLower(filepath.Ext(fileName))
	if ext != ".pdf" {
		return CutoffFile{}, errors.Wrap(ErrInvalidFile, "please upload a valid PDF file")
	}
	if year <= 0 {
		return CutoffFile{}, errors.Wrap(ErrInvalidFile, "year is required")
	}
	key, err := s.put("uploads", ext, r)
	if err != nil {
		return CutoffFile{}, err
	}
	f, err := s.Store.InsertCutoff(ctx, CutoffFile{
		FileName:   filepath.Base(fileName),
		BlobKey:    key,
		Year:       year,
		UploadedAt: s.Now().Unix(),
	})
	if err != nil {
		_ = s.Blobs.Delete(key)
		return CutoffFile{}, err
	}
	return f, nil
}

func (s *Service) ListCutoffs(ctx context.Context, year *int) ([]CutoffFile, error) {
	return s.Store.ListCutoffs(ctx, year)
}

// DeleteCutoff removes the blob first; a blob that is already gone is fine.
func (s *Service) DeleteCutoff(ctx context.Context, id int64) error {
	f, err := s.Store.GetCutoff(ctx, id)
	if err != nil {
		return err
	}
	if err := s.Blobs.Delete(f.BlobKey); err != nil {
		return err
	}
	return s.Store.DeleteCutoff(ctx, id)
}

// UploadDocument accepts any non-empty file under a display name.
func (s *Service) UploadDocument(ctx context.Context, documentName, fileName string, r io.Reader) (DocumentTemplate, error) {
	documentName = strings.TrimSpace(documentName)
	if documentName == "" {
		documentName = strings.TrimSuffix(filepath.Base(fileName), filepath.Ext(fileName))
	}
	if fileName == "" {
		return DocumentTemplate{}, errors.Wrap(ErrInvalidFile, "please select a file")
	}
	key, err := s.put("documents", strings.ToLower(filepath.Ext(fileName)), r)
	if err != nil {
		return DocumentTemplate{}, err
	}
	d, err := s.Store.InsertDocument(ctx, DocumentTemplate{
		DocumentName: documentName,
		FileName:     filepath.Base(fileName),
		BlobKey:      key,
		UploadedAt:   s.Now().Unix(),
	})
	if err != nil {
		_ = s.Blobs.Delete(key)
		return DocumentTemplate{}, err
	}
	return d, nil
}

func (s *Service) ListDocuments(ctx context.Context) ([]DocumentTemplate, error) {
	return s.Store.ListDocuments(ctx)
}

func (s *Service) DeleteDocument(ctx context.Context, id int64) error {
	d, err := s.Store.GetDocument(ctx, id)
	if err != nil {
		return err
	}
	if err := s.Blobs.Delete(d.BlobKey); err != nil {
		return err
	}
	return s.Store.DeleteDocument(ctx, id)
}

// Open streams a stored blob.
func (s *Service) Open(key string) (io.ReadCloser, error) {
	rc, err := s.Blobs.Get(key)
	if err != nil {
		return nil, errors.Wrap(ErrNotFound, err.Error())
	}
	return rc, nil
}
