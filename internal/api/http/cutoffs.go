package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/kcetprep/kcetprep/internal/rbac"
	"github.com/kcetprep/kcetprep/internal/uploads"
)

const maxUploadBytes = 32 << 20

func uploadError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, uploads.ErrInvalidFile):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, uploads.ErrNotFound):
		http.Error(w, "file not found", http.StatusNotFound)
	default:
		respondError(w, op, err)
	}
}

// POST /cutoffs  multipart: file=<pdf>, year=2023
func UploadCutoffHandler(svc *uploads.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
		f, hdr, err := r.FormFile("file")
		if err != nil {
			http.Error(w, "file required", http.StatusBadRequest)
			return
		}
		defer f.Close()
		year, err := strconv.Atoi(strings.TrimSpace(r.FormValue("year")))
		if err != nil {
			respondFields(w, map[string]string{"year": "is required"})
			return
		}
		out, err := svc.UploadCutoff(r.Context(), hdr.Filename, year, f)
		if err != nil {
			uploadError(w, "upload cutoff", err)
			return
		}
		respondJSON(w, http.StatusCreated, out)
	}
}

// GET /cutoffs?year=2023
func ListCutoffsHandler(svc *uploads.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var year *int
		if ys := r.URL.Query().Get("year"); ys != "" {
			y, err := strconv.Atoi(ys)
			if err != nil {
				http.Error(w, "invalid year", http.StatusBadRequest)
				return
			}
			year = &y
		}
		files, err := svc.ListCutoffs(r.Context(), year)
		if err != nil {
			respondError(w, "list cutoffs", err)
			return
		}
		respondJSON(w, http.StatusOK, map[string]any{
			"files":      files,
			"can_delete": rbac.Allowed(r, "cutoff:delete"),
		})
	}
}

// DELETE /cutoffs/{id}
func DeleteCutoffHandler(svc *uploads.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := idParam(w, r, "id")
		if !ok {
			return
		}
		if err := svc.DeleteCutoff(r.Context(), id); err != nil {
			uploadError(w, "delete cutoff", err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
