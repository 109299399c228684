package main

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	api "github.com/kcetprep/kcetprep/internal/api/http"
	auth "github.com/kcetprep/kcetprep/internal/auth/middleware"
	"github.com/kcetprep/kcetprep/internal/college"
	"github.com/kcetprep/kcetprep/internal/extract"
	"github.com/kcetprep/kcetprep/internal/practice"
	"github.com/kcetprep/kcetprep/internal/predict"
	rbac "github.com/kcetprep/kcetprep/internal/rbac"
	"github.com/kcetprep/kcetprep/internal/uploads"
	"github.com/kcetprep/kcetprep/internal/users"
)

type deps struct {
	DB          *sql.DB
	Auth        *auth.AuthService
	Users       *users.Store
	Engine      *predict.Engine
	Colleges    *college.SQLStore
	Uploads     *uploads.Service
	Practice    *practice.Service
	Extractor   *extract.Client
	DatasetPath string

	CORSOrigins        []string
	RequestTimeout     time.Duration
	AllowClaimFallback bool
}

func newRouter(d deps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   d.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if err := d.DB.PingContext(r.Context()); err != nil {
			http.Error(w, "db unavailable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	r.Group(func(pub chi.Router) {
		pub.Use(middleware.Timeout(d.RequestTimeout))
		pub.Post("/auth/login", auth.LoginHandler(d.Auth, d.Users))
		pub.Post("/auth/register", auth.RegisterHandler(d.Auth, d.Users))
	})

	// Protected API (JWT → role from DB → RBAC)
	r.Group(func(pr chi.Router) {
		pr.Use(auth.JWTMiddleware(d.Auth))
		pr.Use(auth.AttachRoleFromDB(d.Users, d.AllowClaimFallback))

		// no request timeout here: the extractor client bounds this call
		pr.With(rbac.Require("cutoff:extract")).
			Post("/cutoffs/extract", api.ExtractCutoffsHandler(d.Extractor, d.Uploads, d.DatasetPath))

		pr.Group(func(pr chi.Router) {
			pr.Use(middleware.Timeout(d.RequestTimeout))

			pr.With(rbac.Require("predict:run")).Post("/predict", api.PredictHandler(d.Engine))
			pr.With(rbac.Require("predict:run")).Get("/predict/options", api.PredictOptionsHandler(d.Engine))

			pr.With(rbac.Require("college:view")).Get("/colleges", api.ListCollegesHandler(d.Colleges))
			pr.With(rbac.Require("college:view")).Get("/colleges/{id}", api.GetCollegeHandler(d.Colleges))

			pr.With(rbac.Require("cutoff:view")).Get("/cutoffs", api.ListCutoffsHandler(d.Uploads))
			pr.With(rbac.Require("cutoff:upload")).Post("/cutoffs", api.UploadCutoffHandler(d.Uploads))
			pr.With(rbac.Require("cutoff:delete")).Delete("/cutoffs/{id}", api.DeleteCutoffHandler(d.Uploads))

			pr.With(rbac.Require("document:view")).Get("/documents", api.ListDocumentsHandler(d.Uploads))
			pr.With(rbac.Require("document:upload")).Post("/documents", api.UploadDocumentHandler(d.Uploads))
			pr.With(rbac.Require("document:delete")).Delete("/documents/{id}", api.DeleteDocumentHandler(d.Uploads))

			pr.With(rbac.RequireAny("cutoff:view", "document:view")).Route("/files", func(fr chi.Router) {
				api.MountFiles(fr, d.Uploads)
			})

			pr.With(rbac.Require("question:view")).Get("/questions", api.ListQuestionsHandler(d.Practice))
			pr.With(rbac.Require("question:view")).Get("/questions/{id}", api.GetQuestionHandler(d.Practice))
			pr.With(rbac.Require("question:create")).Post("/questions", api.CreateQuestionHandler(d.Practice))
			pr.With(rbac.Require("question:edit")).Put("/questions/{id}", api.UpdateQuestionHandler(d.Practice))
			pr.With(rbac.Require("question:delete")).Delete("/questions/{id}", api.DeleteQuestionHandler(d.Practice))

			pr.With(rbac.Require("test:view")).Get("/tests/subjects", api.SubjectsHandler())
			pr.With(rbac.Require("test:view")).Get("/tests", api.ListTestsHandler(d.Practice))
			pr.With(rbac.Require("test:create")).Post("/tests", api.CreateTestHandler(d.Practice))
			pr.With(rbac.Require("test:take")).Get("/tests/{id}/start", api.StartTestHandler(d.Practice))
			pr.With(rbac.Require("test:take")).Post("/tests/{id}/submit", api.SubmitTestHandler(d.Practice))
			pr.With(rbac.Require("test:delete")).Delete("/tests/{id}", api.DeleteTestHandler(d.Practice))

			pr.Get("/users/me", api.MeHandler(d.Users))
			pr.With(rbac.Require("user:change_password")).
				Post("/users/change-password", api.ChangePasswordHandler(d.Users))
			pr.With(rbac.Require("users:list")).Get("/users", api.ListUsersHandler(d.Users))
			pr.With(rbac.Require("users:manage")).
				Patch("/users/{userID}/role", api.AdminUpdateUserRoleHandler(d.Users))
		})
	})
	return r
}
