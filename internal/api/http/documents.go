package http

import (
	"net/http"

	"github.com/kcetprep/kcetprep/internal/rbac"
	"github.com/kcetprep/kcetprep/internal/uploads"
)

// POST /documents  multipart: file=<any>, document_name=...
func UploadDocumentHandler(svc *uploads.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
		f, hdr, err := r.FormFile("file")
		if err != nil {
			http.Error(w, "file required", http.StatusBadRequest)
			return
		}
		defer f.Close()
		out, err := svc.UploadDocument(r.Context(), r.FormValue("document_name"), hdr.Filename, f)
		if err != nil {
			uploadError(w, "upload document", err)
			return
		}
		respondJSON(w, http.StatusCreated, out)
	}
}

func ListDocumentsHandler(svc *uploads.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		docs, err := svc.ListDocuments(r.Context())
		if err != nil {
			respondError(w, "list documents", err)
			return
		}
		respondJSON(w, http.StatusOK, map[string]any{
			"documents":  docs,
			"can_delete": rbac.Allowed(r, "document:delete"),
		})
	}
}

func DeleteDocumentHandler(svc *uploads.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := idParam(w, r, "id")
		if !ok {
			return
		}
		if err := svc.DeleteDocument(r.Context(), id); err != nil {
			uploadError(w, "delete document", err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
