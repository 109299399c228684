// Package extract talks to the cutoff PDF extraction service, which turns
// published KCET cutoff PDFs into dataset rows.
package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"github.com/pkg/errors"

	"github.com/kcetprep/kcetprep/internal/predict"
)

var (
	ErrTimeout   = errors.New("extraction timed out")
	ErrNoFiles   = errors.New("no cutoff files to extract")
	ErrExtractor = errors.New("extractor failed")
)

// File is one cutoff PDF and the exam year it covers.
type File struct {
	Name string
	Year int
	Body io.Reader
}

type Client struct {
	url  string
	http *http.Client
}

type Config struct {
	URL     string
	Timeout time.Duration
}

func New(cfg Config) *Client {
	h := &http.Client{}
	if cfg.Timeout > 0 {
		h.Timeout = cfg.Timeout
	}
	return &Client{url: cfg.URL, http: h}
}

type response struct {
	Success bool                       `json:"success"`
	Rows    []predict.HistoricalRecord `json:"rows"`
	Error   string                     `json:"error"`
}

// Extract uploads files as multipart form fields "files" and "years" (one
// year per file, same order) and returns the rows the service found.
func (c *Client) Extract(ctx context.Context, files []File) ([]predict.HistoricalRecord, error) {
	if len(files) == 0 {
		return nil, ErrNoFiles
	}

	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)
	go func() {
		pw.CloseWithError(writeForm(mw, files))
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, pr)
	if err != nil {
		_ = pr.Close()
		return nil, errors.Wrap(err, "build extract request")
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Accept", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		_ = pr.Close()
		if isTimeout(ctx, err) {
			return nil, ErrTimeout
		}
		return nil, errors.Wrap(err, "call extractor")
	}
	defer res.Body.Close()

	var out response
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		if isTimeout(ctx, err) {
			return nil, ErrTimeout
		}
		return nil, errors.Wrapf(ErrExtractor, "decode response (%s): %v", res.Status, err)
	}
	if res.StatusCode/100 != 2 || !out.Success {
		msg := out.Error
		if msg == "" {
			msg = res.Status
		}
		return nil, errors.Wrap(ErrExtractor, msg)
	}
	if out.Rows == nil {
		out.Rows = []predict.HistoricalRecord{}
	}
	return out.Rows, nil
}

func writeForm(mw *multipart.Writer, files []File) error {
	for _, f := range files {
		part, err := mw.CreateFormFile("files", f.Name)
		if err != nil {
			return err
		}
		if _, err := io.Copy(part, f.Body); err != nil {
			return fmt.Errorf("copy %s: %w", f.Name, err)
		}
		if err := mw.WriteField("years", strconv.Itoa(f.Year)); err != nil {
			return err
		}
	}
	return mw.Close()
}

type timeouter interface{ Timeout() bool }

func isTimeout(ctx context.Context, err error) bool {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return true
	}
	var te timeouter
	return errors.As(err, &te) && te.Timeout()
}
