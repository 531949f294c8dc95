package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/hourbank/overtime/internal/overtime/service"
	"github.com/hourbank/overtime/internal/overtime/store"
	"github.com/hourbank/overtime/pkg/httpx"
	"github.com/hourbank/overtime/pkg/jwtx"
	"github.com/hourbank/overtime/pkg/slogx"

	_ "github.com/hourbank/overtime/api/docs" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	signer        *jwtx.EdDSA
	buildVersion  string
	startTime     time.Time
	logger        *slog.Logger
	secureCookies bool

	store            store.Store
	AuthService      *service.AuthService
	EntryService     *service.EntryService
	DashboardService *service.DashboardService
	MFAService       *service.MFAService
	UserService      *service.UserService
}

func NewRouter(
	signer *jwtx.EdDSA,
	buildVersion string,
	secureCookies bool,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:           http.NewServeMux(),
		signer:        signer,
		buildVersion:  buildVersion,
		startTime:     time.Now(),
		logger:        logger,
		secureCookies: secureCookies,
		store:         st,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerEntries()
	r.registerDashboard()
	r.registerMFA()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Overtime Tracking API
//	@version		0.1.0
//	@description	Internal overtime-hour tracking service: users record start/end entries,
//	@description	admins see every employee's totals and export CSV statements.
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host		localhost:8080
//	@BasePath	/
//
//	@schemes	http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Session token. Format: "Bearer {token}". Browsers use the HTTP-only cookie instead.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// session wires the verified-session middlewares in front of h.
func (r *Router) session(h http.Handler, mws ...httpx.Middleware) http.Handler {
	chain := append([]httpx.Middleware{
		SessionMiddleware(r.AuthService),
		RequireSession(),
	}, mws...)
	return httpx.Chain(h, chain...)
}

func (r *Router) registerAuth() {
	h := &AuthHandler{AuthService: r.AuthService, SecureCookies: r.secureCookies}

	// POST /auth/login - strict rate limit by IP + username (brute force prevention)
	r.Mux.Handle("POST /v1/auth/login",
		httpx.Chain(http.HandlerFunc(h.HandleLogin),
			httpx.RateLimitByIPAndJSONField(httpx.StrictLimit, "username"),
		),
	)

	r.Mux.Handle("POST /v1/auth/logout",
		httpx.Chain(http.HandlerFunc(h.HandleLogout),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)

	me := &MeHandler{UserService: r.UserService}
	r.Mux.Handle("GET /v1/me",
		r.session(me, httpx.RateLimitByUser(httpx.LenientLimit)),
	)
}

func (r *Router) registerEntries() {
	h := &EntriesHandler{EntryService: r.EntryService}
	export := &ExportHandler{EntryService: r.EntryService}

	r.Mux.Handle("POST /v1/entries",
		r.session(http.HandlerFunc(h.HandleCreate), httpx.RateLimitByUser(httpx.ModerateLimit)),
	)
	r.Mux.Handle("GET /v1/entries",
		r.session(http.HandlerFunc(h.HandleList), httpx.RateLimitByUser(httpx.LenientLimit)),
	)
	r.Mux.Handle("DELETE /v1/entries/{id}",
		r.session(http.HandlerFunc(h.HandleDelete), httpx.RateLimitByUser(httpx.ModerateLimit)),
	)
	r.Mux.Handle("GET /v1/entries/export",
		r.session(export, httpx.RateLimitByUser(httpx.LenientLimit)),
	)
}

func (r *Router) registerDashboard() {
	h := &DashboardHandler{DashboardService: r.DashboardService}

	r.Mux.Handle("GET /v1/dashboard",
		r.session(h, httpx.RateLimitByUser(httpx.LenientLimit)),
	)
}

func (r *Router) registerMFA() {
	h := &MFAHandler{MFAService: r.MFAService}

	r.Mux.Handle("POST /v1/mfa/enroll",
		r.session(http.HandlerFunc(h.HandleEnroll), httpx.RateLimitByUser(httpx.ModerateLimit)),
	)

	// Strict limit on code checks to slow TOTP brute force
	r.Mux.Handle("POST /v1/mfa/activate",
		r.session(http.HandlerFunc(h.HandleActivate), httpx.RateLimitByUser(httpx.StrictLimit)),
	)
	r.Mux.Handle("POST /v1/mfa/disable",
		r.session(http.HandlerFunc(h.HandleDisable), httpx.RateLimitByUser(httpx.StrictLimit)),
	)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store, r.signer),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}
