package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	authmw "github.com/mind-engage/mindengage-practice/internal/auth/middleware"
	"github.com/mind-engage/mindengage-practice/internal/exam"
	"github.com/mind-engage/mindengage-practice/internal/logging"
	"github.com/mind-engage/mindengage-practice/internal/metrics"
	"github.com/mind-engage/mindengage-practice/internal/rbac"
	"github.com/mind-engage/mindengage-practice/internal/results"
	"github.com/mind-engage/mindengage-practice/internal/session"
)

type Deps struct {
	Bank     exam.Store
	Sessions *session.Manager
	Results  *results.SQLStore
	Archive  *results.ArchiveSink // nil disables /results/{id}/archive
	Auth     *authmw.AuthService
	Users    *authmw.UserStore
	Admin    authmw.Admin
	Origins  []string
	Ready    func(ctx context.Context) error
	Log      *zap.Logger
}

func NewRouter(d Deps) chi.Router {
	if d.Log == nil {
		d.Log = zap.NewNop()
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, logging.Middleware(d.Log), middleware.Recoverer)
	r.Use(metrics.Middleware)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   d.Origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Post("/auth/login", authmw.LoginHandler(d.Auth, d.Users, d.Admin, d.Log))
	r.Post("/auth/register", authmw.RegisterHandler(d.Auth, d.Users, d.Admin, d.Log))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if d.Ready != nil {
			if err := d.Ready(r.Context()); err != nil {
				http.Error(w, "not ready", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(200)
	})
	r.Handle("/metrics", metrics.Handler())

	// Protected API (JWT → role in context → RBAC)
	r.Group(func(pr chi.Router) {
		pr.Use(authmw.JWTMiddleware(d.Auth))

		pr.With(rbac.Require("category:list")).
			Get("/categories", ListCategoriesHandler(d.Bank))

		pr.With(rbac.Require("session:create")).
			Post("/sessions", CreateSessionHandler(d.Sessions, d.Log))
		pr.Route("/sessions/{id}", func(sr chi.Router) {
			sr.Use(rbac.Require("session:take"))
			sr.Get("/", GetSessionHandler(d.Sessions))
			sr.Post("/start", StartSessionHandler(d.Sessions))
			sr.Put("/answers/{qid}", SelectAnswerHandler(d.Sessions))
			sr.Post("/flags/{qid}", ToggleFlagHandler(d.Sessions))
			sr.Post("/goto", GoToHandler(d.Sessions))
			sr.Post("/next", NavigateHandler(d.Sessions, (*session.Session).Next))
			sr.Post("/previous", NavigateHandler(d.Sessions, (*session.Session).Previous))
			sr.Post("/submit", SubmitSessionHandler(d.Sessions))
		})

		pr.With(rbac.RequireAny("result:view-own", "result:view-all")).
			Get("/results", ListResultsHandler(d.Results))
		pr.With(rbac.RequireAny("result:view-own", "result:view-all")).
			Get("/results/{sessionId}", GetResultHandler(d.Results, d.Sessions))
		if d.Archive != nil {
			pr.With(rbac.RequireAny("result:view-own", "result:view-all")).
				Get("/results/{sessionId}/archive", ArchiveHandler(d.Results, d.Archive))
		}

		pr.With(rbac.Require("user:change_password")).
			Post("/users/change-password", ChangePasswordHandler(d.Users))
		pr.With(rbac.Require("users:list")).
			Get("/users", ListUsersHandler(d.Users))

		// Admin: question bank
		pr.Route("/bank/questions", func(br chi.Router) {
			br.Use(rbac.Require("bank:write"))
			br.Get("/", ListQuestionsHandler(d.Bank))
			br.Post("/", PutQuestionHandler(d.Bank))
			br.Get("/{id}", GetQuestionHandler(d.Bank))
			br.Put("/{id}", PutQuestionHandler(d.Bank))
			br.Delete("/{id}", DeleteQuestionHandler(d.Bank))
		})
	})

	return r
}
