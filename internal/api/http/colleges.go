package http

import (
	"net/http"
	"strconv"

	"github.com/pkg/errors"

	"github.com/kcetprep/kcetprep/internal/college"
)

// GET /colleges?q=&branch=&limit=&offset=
func ListCollegesHandler(store *college.SQLStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		limit, _ := strconv.Atoi(q.Get("limit"))
		offset, _ := strconv.Atoi(q.Get("offset"))
		if offset < 0 {
			offset = 0
		}
		out, err := store.List(r.Context(), college.ListOpts{
			Q:      q.Get("q"),
			Branch: q.Get("branch"),
			Limit:  limit,
			Offset: offset,
		})
		if err != nil {
			respondError(w, "list colleges", err)
			return
		}
		respondJSON(w, http.StatusOK, out)
	}
}

// GET /colleges/{id}
func GetCollegeHandler(store *college.SQLStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := idParam(w, r, "id")
		if !ok {
			return
		}
		c, err := store.Get(r.Context(), id)
		if errors.Is(err, college.ErrNotFound) {
			http.Error(w, "college not found", http.StatusNotFound)
			return
		}
		if err != nil {
			respondError(w, "get college", err)
			return
		}
		respondJSON(w, http.StatusOK, c)
	}
}
