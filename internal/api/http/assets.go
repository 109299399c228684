package http

import (
	"io"
	"mime"
	"net/http"
	"path"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/kcetprep/kcetprep/internal/uploads"
)

// MountFiles serves stored uploads: GET /files/* returns the blob at
// whatever follows /files/.
func MountFiles(r chi.Router, svc *uploads.Service) {
	r.Get("/*", func(w http.ResponseWriter, r *http.Request) {
		key := strings.TrimPrefix(chi.URLParam(r, "*"), "/")
		rc, err := svc.Open(key)
		if err != nil {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		defer rc.Close()
		ct := mime.TypeByExtension(path.Ext(key))
		if ct == "" {
			ct = "application/octet-stream"
		}
		w.Header().Set("Content-Type", ct)
		w.Header().Set("Content-Disposition", `inline; filename="`+path.Base(key)+`"`)
		_, _ = io.Copy(w, rc)
	})
}
