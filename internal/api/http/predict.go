package http

import (
	"net/http"

	"github.com/pkg/errors"

	"github.com/kcetprep/kcetprep/internal/predict"
)

type predictReq struct {
	Rank     int    `json:"rank"`
	Category string `json:"category"`
	Branch   string `json:"branch"`
}

type predictResp struct {
	Query       predict.Query       `json:"query"`
	Window      predict.Window      `json:"window"`
	Results     []predict.Result    `json:"results"`
	Diagnostics predict.Diagnostics `json:"diagnostics"`
	Message     string              `json:"message,omitempty"`
}

// POST /predict  { "rank": 5000, "category": "GM", "branch": "CS" }
func PredictHandler(e *predict.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req predictReq
		if !decodeJSON(w, r, &req) {
			return
		}
		p, err := e.Predict(r.Context(), req.Rank, req.Category, req.Branch)
		var verr *predict.ValidationError
		if errors.As(err, &verr) {
			respondFields(w, verr.FieldMap())
			return
		}
		if err != nil {
			respondError(w, "predict", err)
			return
		}
		resp := predictResp{
			Query:       p.Query,
			Window:      p.Window,
			Results:     p.Results,
			Diagnostics: p.Diagnostics,
		}
		if len(p.Results) == 0 {
			resp.Message = p.EmptyMessage()
		}
		respondJSON(w, http.StatusOK, resp)
	}
}

// GET /predict/options
func PredictOptionsHandler(e *predict.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cat, d := e.Options(r.Context())
		respondJSON(w, http.StatusOK, map[string]any{
			"categories":  cat.Categories,
			"branches":    cat.Branches,
			"diagnostics": d,
		})
	}
}
