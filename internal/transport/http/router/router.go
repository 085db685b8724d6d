package router

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/baechuer/skillmarket/internal/domain"
	"github.com/baechuer/skillmarket/internal/transport/http/middleware"
	"github.com/baechuer/skillmarket/internal/transport/http/response"
)

type HealthHandler interface {
	Healthz(w http.ResponseWriter, r *http.Request)
	Readyz(w http.ResponseWriter, r *http.Request)
}

type AuthHandler interface {
	Register(w http.ResponseWriter, r *http.Request)
	Login(w http.ResponseWriter, r *http.Request)
	Refresh(w http.ResponseWriter, r *http.Request)
	Logout(w http.ResponseWriter, r *http.Request)
}

type ProfileHandler interface {
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Avatar(w http.ResponseWriter, r *http.Request)
}

type CatalogHandler interface {
	ListWork(w http.ResponseWriter, r *http.Request)
	PostWork(w http.ResponseWriter, r *http.Request)
	ListCandidates(w http.ResponseWriter, r *http.Request)
	PostCandidate(w http.ResponseWriter, r *http.Request)
}

type Middleware = func(http.Handler) http.Handler

type Deps struct {
	Health  HealthHandler
	Auth    AuthHandler
	Profile ProfileHandler
	Catalog CatalogHandler

	AuthMW Middleware

	// Optional per-route limits (Redis fixed window). nil disables them.
	AuthLimitMW  Middleware
	WriteLimitMW Middleware

	// GlobalPerMinute enables an in-process per-IP limit when > 0.
	GlobalPerMinute int

	Logger      zerolog.Logger
	CORSOrigins []string
	HSTS        bool
}

func New(deps Deps) (http.Handler, error) {
	if deps.Health == nil {
		return nil, fmt.Errorf("nil Health handler")
	}
	if deps.Auth == nil {
		return nil, fmt.Errorf("nil Auth handler")
	}
	if deps.Profile == nil {
		return nil, fmt.Errorf("nil Profile handler")
	}
	if deps.Catalog == nil {
		return nil, fmt.Errorf("nil Catalog handler")
	}
	if deps.AuthMW == nil {
		return nil, fmt.Errorf("nil Auth middleware")
	}
	authLimit := orPassthrough(deps.AuthLimitMW)
	writeLimit := orPassthrough(deps.WriteLimitMW)

	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog(deps.Logger))
	r.Use(chimw.Recoverer)
	r.Use(middleware.SecurityHeaders(deps.HSTS))
	r.Use(middleware.CORS(deps.CORSOrigins))
	r.Use(middleware.Metrics)

	if deps.GlobalPerMinute > 0 {
		r.Use(httprate.Limit(
			deps.GlobalPerMinute,
			time.Minute,
			httprate.WithKeyFuncs(httprate.KeyByIP),
			httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
				response.WriteError(w, r, domain.ErrRateLimited("global"))
			}),
		))
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.WriteError(w, r, domain.New(domain.KindNotFound, "route_not_found", "route not found"))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		response.WriteJSON(w, http.StatusMethodNotAllowed, response.ErrorBody{Error: response.ErrorPayload{
			Code:      "method_not_allowed",
			Message:   "method not allowed",
			RequestID: response.RequestIDFromContext(r),
		}})
	})

	r.Get("/healthz", deps.Health.Healthz)
	r.Get("/readyz", deps.Health.Readyz)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Use(authLimit)
			r.Post("/register", deps.Auth.Register)
			r.Post("/login", deps.Auth.Login)
			r.Post("/refresh", deps.Auth.Refresh)
			r.Post("/logout", deps.Auth.Logout)
		})

		r.Route("/users/profile", func(r chi.Router) {
			r.Use(deps.AuthMW)
			r.Get("/", deps.Profile.Get)
			r.With(writeLimit).Patch("/", deps.Profile.Update)
			r.With(writeLimit).Post("/avatar", deps.Profile.Avatar)
		})

		r.Get("/work", deps.Catalog.ListWork)
		r.With(deps.AuthMW, writeLimit).Post("/work", deps.Catalog.PostWork)
		r.Get("/services", deps.Catalog.ListCandidates)
		r.With(deps.AuthMW, writeLimit).Post("/services", deps.Catalog.PostCandidate)
	})

	return r, nil
}

func orPassthrough(mw Middleware) Middleware {
	if mw != nil {
		return mw
	}
	return func(next http.Handler) http.Handler { return next }
}
