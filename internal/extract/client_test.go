package extract

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractPostsFilesAndYears(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !assert.NoError(t, r.ParseMultipartForm(1<<20)) {
			return
		}
		assert.Equal(t, []string{"2022", "2023"}, r.MultipartForm.Value["years"])
		files := r.MultipartForm.File["files"]
		if assert.Len(t, files, 2) {
			assert.Equal(t, "kcet-2022.pdf", files[0].Filename)
			if f, err := files[1].Open(); assert.NoError(t, err) {
				b, _ := io.ReadAll(f)
				f.Close()
				assert.Equal(t, "pdf-2023", string(b))
			}
		}

		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"rows": []map[string]string{
				{"college_name": "E001 RV College", "branch": "CS", "category": "GM", "closing_rank": "1050", "year": "2023"},
			},
		})
	}))
	defer srv.Close()

	c := New(Config{URL: srv.URL, Timeout: 5 * time.Second})
	rows, err := c.Extract(context.Background(), []File{
		{Name: "kcet-2022.pdf", Year: 2022, Body: strings.NewReader("pdf-2022")},
		{Name: "kcet-2023.pdf", Year: 2023, Body: strings.NewReader("pdf-2023")},
	})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "E001 RV College", rows[0].CollegeName)
	assert.Equal(t, "1050", rows[0].ClosingRank)
}

func TestExtractReportsFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"success":false,"error":"no tables found"}`))
	}))
	defer srv.Close()

	c := New(Config{URL: srv.URL})
	_, err := c.Extract(context.Background(), []File{{Name: "a.pdf", Year: 2023, Body: strings.NewReader("x")}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrExtractor))
	assert.Contains(t, err.Error(), "no tables found")
}

func TestExtractTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	c := New(Config{URL: srv.URL, Timeout: 50 * time.Millisecond})
	_, err := c.Extract(context.Background(), []File{{Name: "a.pdf", Year: 2023, Body: strings.NewReader("x")}})
	assert.True(t, errors.Is(err, ErrTimeout))
}

func TestExtractNoFiles(t *testing.T) {
	c := New(Config{URL: "http://127.0.0.1:0"})
	_, err := c.Extract(context.Background(), nil)
	assert.True(t, errors.Is(err, ErrNoFiles))
}
