package http

import (
	"net/http"

	"github.com/kcetprep/kcetprep/internal/practice"
)

// GET /tests/subjects
func SubjectsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, practice.Subjects)
	}
}

// GET /tests?subject=Physics
func ListTestsHandler(svc *practice.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ts, err := svc.ListTests(r.Context(), r.URL.Query().Get("subject"))
		if err != nil {
			practiceError(w, "list tests", err)
			return
		}
		respondJSON(w, http.StatusOK, ts)
	}
}

// POST /tests  { "subject": "Physics", "test_name": "Mock 1" }
func CreateTestHandler(svc *practice.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Subject string `json:"subject"`
			Name    string `json:"test_name"`
		}
		if !decodeJSON(w, r, &req) {
			return
		}
		t, err := svc.CreateTest(r.Context(), req.Subject, req.Name)
		if err != nil {
			practiceError(w, "create test", err)
			return
		}
		respondJSON(w, http.StatusCreated, t)
	}
}

// GET /tests/{id}/start
func StartTestHandler(svc *practice.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := idParam(w, r, "id")
		if !ok {
			return
		}
		sess, err := svc.StartTest(r.Context(), id)
		if err != nil {
			practiceError(w, "start test", err)
			return
		}
		respondJSON(w, http.StatusOK, sess)
	}
}

// POST /tests/{id}/submit  { "answers": { "12": "B", "15": "D" } }
func SubmitTestHandler(svc *practice.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := idParam(w, r, "id")
		if !ok {
			return
		}
		var req struct {
			Answers map[int64]string `json:"answers"`
		}
		if !decodeJSON(w, r, &req) {
			return
		}
		res, err := svc.SubmitTest(r.Context(), id, req.Answers)
		if err != nil {
			practiceError(w, "submit test", err)
			return
		}
		respondJSON(w, http.StatusOK, res)
	}
}

func DeleteTestHandler(svc *practice.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := idParam(w, r, "id")
		if !ok {
			return
		}
		if err := svc.DeleteTest(r.Context(), id); err != nil {
			practiceError(w, "delete test", err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
