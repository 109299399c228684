package http

import (
	"net/http"

	"github.com/pkg/errors"

	"github.com/kcetprep/kcetprep/internal/practice"
)

func practiceError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, practice.ErrNotFound):
		http.Error(w, "not found", http.StatusNotFound)
	case errors.Is(err, practice.ErrNoQuestions),
		errors.Is(err, practice.ErrEmptyTest),
		errors.Is(err, practice.ErrNoAnswers):
		respondJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
	default:
		respondError(w, op, err)
	}
}

// GET /questions?subject=Physics
func ListQuestionsHandler(svc *practice.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		qs, err := svc.ListQuestions(r.Context(), r.URL.Query().Get("subject"))
		if err != nil {
			practiceError(w, "list questions", err)
			return
		}
		respondJSON(w, http.StatusOK, qs)
	}
}

func CreateQuestionHandler(svc *practice.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var q practice.Question
		if !decodeJSON(w, r, &q) {
			return
		}
		q.ID = 0
		out, err := svc.CreateQuestion(r.Context(), q)
		if err != nil {
			practiceError(w, "create question", err)
			return
		}
		respondJSON(w, http.StatusCreated, out)
	}
}

func GetQuestionHandler(svc *practice.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := idParam(w, r, "id")
		if !ok {
			return
		}
		q, err := svc.GetQuestion(r.Context(), id)
		if err != nil {
			practiceError(w, "get question", err)
			return
		}
		respondJSON(w, http.StatusOK, q)
	}
}

func UpdateQuestionHandler(svc *practice.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := idParam(w, r, "id")
		if !ok {
			return
		}
		var q practice.Question
		if !decodeJSON(w, r, &q) {
			return
		}
		q.ID = id
		out, err := svc.UpdateQuestion(r.Context(), q)
		if err != nil {
			practiceError(w, "update question", err)
			return
		}
		respondJSON(w, http.StatusOK, out)
	}
}

func DeleteQuestionHandler(svc *practice.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := idParam(w, r, "id")
		if !ok {
			return
		}
		if err := svc.DeleteQuestion(r.Context(), id); err != nil {
			practiceError(w, "delete question", err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
