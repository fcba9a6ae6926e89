// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/csrf"
	"go.uber.org/zap"

	dashboardfeature "github.com/salespulse/salespulse/internal/app/features/dashboard"
	errorsfeature "github.com/salespulse/salespulse/internal/app/features/errors"
	healthfeature "github.com/salespulse/salespulse/internal/app/features/health"
	homefeature "github.com/salespulse/salespulse/internal/app/features/home"
	loginfeature "github.com/salespulse/salespulse/internal/app/features/login"
	logoutfeature "github.com/salespulse/salespulse/internal/app/features/logout"
	userinfofeature "github.com/salespulse/salespulse/internal/app/features/userinfo"
	"github.com/salespulse/salespulse/internal/app/store/audit"
	"github.com/salespulse/salespulse/internal/app/system/auditlog"
	"github.com/salespulse/salespulse/internal/app/system/auth"
	"github.com/salespulse/salespulse/internal/app/system/evalapi"

	// Registered for their embedded templates.
	_ "github.com/salespulse/salespulse/internal/app/features/dashboard/views"
	_ "github.com/salespulse/salespulse/internal/app/features/errors/views"
	_ "github.com/salespulse/salespulse/internal/app/features/home/views"
	_ "github.com/salespulse/salespulse/internal/app/features/login/views"
)

// BuildHandler constructs the root HTTP handler for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup,
// and Startup have completed. It creates the session manager and the
// evaluation API client, boots the template engine, and mounts the
// feature routers.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	apiClient := evalapi.New(appCfg.EvalAPIBaseURL, appCfg.EvalAPITimeout, logger)

	auditLogger := auditlog.New(audit.New(deps.MongoDatabase), logger, auditlog.Config{
		Auth: appCfg.AuditLogAuth,
	})

	// Initialize and boot the template engine once at startup.
	// Dev mode enables template reloading for faster iteration.
	eng := templates.New(coreCfg.Env == "dev")
	if err := eng.Boot(logger); err != nil {
		logger.Error("template engine boot failed", zap.Error(err))
		return nil, err
	}
	templates.UseEngine(eng, logger)

	r := chi.NewRouter()

	// Global auth middleware: loads SessionUser into context if logged in.
	r.Use(sessionMgr.LoadSessionUser)

	// CSRF protection on all state-changing form posts.
	r.Use(csrf.Protect(
		[]byte(appCfg.SessionKey),
		csrf.Secure(secure),
		csrf.Path("/"),
	))

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Static assets with pre-compressed file support (gzip/brotli)
	r.Handle("/static/*", fileserver.Handler("/static", "public"))

	// Public pages
	homeHandler := homefeature.NewHandler(logger)
	r.Mount("/", homefeature.Routes(homeHandler))

	// Authentication
	loginHandler := loginfeature.NewHandler(apiClient, sessionMgr, auditLogger, logger)
	r.Mount("/login", loginfeature.Routes(loginHandler))

	logoutHandler := logoutfeature.NewHandler(sessionMgr, auditLogger, logger)
	r.Mount("/logout", logoutfeature.Routes(logoutHandler))

	// Error pages
	errorsHandler := errorsfeature.NewHandler()
	errorsfeature.MountRoutes(r, errorsHandler)
	r.NotFound(errorsHandler.NotFound)

	// Role-based dashboards
	dashboardHandler := dashboardfeature.NewHandler(apiClient, sessionMgr, auditLogger, logger)
	r.Mount("/dashboard", dashboardfeature.Routes(dashboardHandler, sessionMgr))

	// JSON endpoints for scripts and integrations
	userinfoHandler := userinfofeature.NewHandler(apiClient, logger)
	userinfofeature.MountRoutes(r, userinfoHandler)

	return r, nil
}
