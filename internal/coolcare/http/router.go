package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/coolcare/coolcare/internal/coolcare/domain"
	"github.com/coolcare/coolcare/internal/coolcare/service"
	"github.com/coolcare/coolcare/internal/coolcare/store"
	"github.com/coolcare/coolcare/pkg/httpx"
	"github.com/coolcare/coolcare/pkg/jwtx"
	"github.com/coolcare/coolcare/pkg/slogx"

	_ "github.com/coolcare/coolcare/api/coolcare" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	signer       jwtx.Signer
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store store.Store
	// CodeStore is pinged by /readyz when it lives outside the database.
	CodeStore Pinger
	// Location interprets naive timestamps in job requests.
	Location *time.Location

	AuthService  *service.AuthService
	JobService   *service.JobService
	AdminService *service.AdminService
	PushService  *service.PushService
}

func NewRouter(
	signer jwtx.Signer,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		signer:       signer,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
		Location:     time.UTC,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerJobs()
	r.registerPush()
	r.registerAdmin()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			CoolCare Field Service API
//	@version		0.1.0
//	@description	Backend for the CoolCare worker app and dispatcher console: phone sign-in with SMS codes,
//	@description	service jobs, dashboard statistics, route ordering and web-push reminders.
//	@description
//	@description				Access tokens are JWTs obtained from /auth/verify-code and renewed with /auth/refresh.
//
//	@host						localhost:8000
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// authn resolves bearer tokens through AuthService so disabled and deleted
// users are rejected even while their token is still valid.
func (r *Router) authn() httpx.Middleware {
	return httpx.AuthnMiddleware(httpx.AuthenticatorFunc(
		func(ctx context.Context, token string) (httpx.Principal, error) {
			u, err := r.AuthService.Authenticate(ctx, token)
			if err != nil {
				return httpx.Principal{}, err
			}
			return httpx.Principal{UserID: u.ID, Phone: u.Phone, Role: u.Role}, nil
		},
	))
}

func (r *Router) registerAuth() {
	h := &AuthHandler{AuthService: r.AuthService}

	// send-code and verify-code - strict limits, they are the SMS pumping and
	// code guessing surface
	r.Mux.Handle("POST /auth/send-code",
		httpx.ChainFunc(h.HandleSendCode,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /auth/verify-code",
		httpx.ChainFunc(h.HandleVerifyCode,
			httpx.RateLimitByIPAndJSONField(httpx.StrictLimit, "phone"),
		),
	)

	r.Mux.Handle("POST /auth/refresh",
		httpx.ChainFunc(h.HandleRefresh,
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)

	r.Mux.Handle("GET /auth/me", r.secured(h.HandleMe))
	r.Mux.Handle("PUT /auth/me", r.secured(h.HandleUpdateMe))
}

// secured wraps a worker endpoint: bearer auth and a per-user lenient limit.
func (r *Router) secured(fn http.HandlerFunc) http.Handler {
	return httpx.ChainFunc(fn,
		r.authn(),
		httpx.RateLimitByUser(httpx.LenientLimit),
	)
}

func (r *Router) registerJobs() {
	h := &JobsHandler{JobService: r.JobService, Location: r.Location}

	r.Mux.Handle("GET /dashboard/stats", r.secured(h.HandleStats))
	r.Mux.Handle("GET /jobs", r.secured(h.HandleList))
	r.Mux.Handle("POST /jobs", r.secured(h.HandleCreate))
	r.Mux.Handle("GET /jobs/today", r.secured(h.HandleToday))
	r.Mux.Handle("GET /jobs/route/optimize", r.secured(h.HandleOptimizeRoute))
	r.Mux.Handle("GET /jobs/{id}", r.secured(h.HandleGet))
	r.Mux.Handle("PUT /jobs/{id}", r.secured(h.HandleUpdate))
	r.Mux.Handle("DELETE /jobs/{id}", r.secured(h.HandleDelete))
}

func (r *Router) registerPush() {
	h := &PushHandler{PushService: r.PushService}

	r.Mux.Handle("GET /push/vapid-public",
		httpx.ChainFunc(h.HandleVAPIDPublic,
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
	r.Mux.Handle("POST /push/subscribe", r.secured(h.HandleSubscribe))
}

func (r *Router) registerAdmin() {
	h := &AdminHandler{AdminService: r.AdminService, Location: r.Location}

	// Admin endpoints - bearer auth, admin role, moderate limit by user
	admin := func(fn http.HandlerFunc) http.Handler {
		return httpx.ChainFunc(fn,
			r.authn(),
			httpx.RequireRole(domain.RoleAdmin),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		)
	}

	r.Mux.Handle("GET /admin/jobs", admin(h.HandleListJobs))
	r.Mux.Handle("POST /admin/jobs", admin(h.HandleCreateJob))
	r.Mux.Handle("PUT /admin/jobs/{id}", admin(h.HandleUpdateJob))
	r.Mux.Handle("DELETE /admin/jobs/{id}", admin(h.HandleDeleteJob))
	r.Mux.Handle("GET /admin/stats", admin(h.HandleStats))
	r.Mux.Handle("GET /admin/users", admin(h.HandleListUsers))
	r.Mux.Handle("PUT /admin/users/{id}", admin(h.HandleUpdateUser))
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store, r.signer, r.CodeStore),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /health",
		httpx.Chain(HealthHandler(r.store),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
}
