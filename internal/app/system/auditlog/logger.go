// internal/app/system/auditlog/logger.go
package auditlog

import (
	"context"
	"net"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/salespulse/salespulse/internal/app/store/audit"
)

/*─────────────────────────────────*
|  Config                          |
*─────────────────────────────────*/

// Config controls where auth audit events go: "all" (db + log),
// "db", "log", or "off".
type Config struct {
	Auth string
}

/*─────────────────────────────────*
|  Logger                          |
*─────────────────────────────────*/

// Logger records auth events to the audit store and/or the
// application log. A nil Logger (or a Logger with a nil store)
// degrades gracefully, so call sites never need to guard.
type Logger struct {
	store  *audit.Store
	zapLog *zap.Logger
	config Config
}

func New(store *audit.Store, zapLog *zap.Logger, config Config) *Logger {
	if config.Auth == "" {
		config.Auth = "all"
	}
	return &Logger{store: store, zapLog: zapLog, config: config}
}

func (l *Logger) Log(ctx context.Context, ev audit.Event) {
	if l == nil {
		return
	}
	mode := l.config.Auth
	if mode == "off" {
		return
	}
	if (mode == "all" || mode == "db") && l.store != nil {
		if err := l.store.Log(ctx, ev); err != nil && l.zapLog != nil {
			l.zapLog.Warn("audit store write failed",
				zap.String("event_type", ev.EventType),
				zap.Error(err))
		}
	}
	if mode == "all" || mode == "log" {
		l.logToZap(ev)
	}
}

func (l *Logger) logToZap(ev audit.Event) {
	if l.zapLog == nil {
		return
	}
	fields := []zap.Field{
		zap.String("category", ev.Category),
		zap.String("event_type", ev.EventType),
		zap.String("user_id", ev.UserID),
		zap.String("user_name", ev.UserName),
		zap.String("role", ev.Role),
		zap.String("ip", ev.IP),
		zap.Bool("success", ev.Success),
	}
	if ev.Detail != "" {
		fields = append(fields, zap.String("detail", ev.Detail))
	}
	if ev.Success {
		l.zapLog.Info("audit event", fields...)
	} else {
		l.zapLog.Warn("audit event", fields...)
	}
}

/*─────────────────────────────────*
|  Convenience methods             |
*─────────────────────────────────*/

func (l *Logger) LoginSuccess(ctx context.Context, r *http.Request, userID, userName, role string) {
	l.Log(ctx, audit.Event{
		Category:  audit.CategoryAuth,
		EventType: audit.EventLoginSuccess,
		UserID:    userID,
		UserName:  userName,
		Role:      role,
		IP:        getClientIP(r),
		UserAgent: r.UserAgent(),
		Success:   true,
	})
}

func (l *Logger) LoginFailed(ctx context.Context, r *http.Request, loginID, detail string) {
	l.Log(ctx, audit.Event{
		Category:  audit.CategoryAuth,
		EventType: audit.EventLoginFailed,
		UserName:  loginID,
		IP:        getClientIP(r),
		UserAgent: r.UserAgent(),
		Success:   false,
		Detail:    detail,
	})
}

func (l *Logger) Logout(ctx context.Context, r *http.Request, userID, userName string) {
	l.Log(ctx, audit.Event{
		Category:  audit.CategoryAuth,
		EventType: audit.EventLogout,
		UserID:    userID,
		UserName:  userName,
		IP:        getClientIP(r),
		UserAgent: r.UserAgent(),
		Success:   true,
	})
}

// SessionExpired records a forced sign-out after the upstream API
// rejected the stored token.
func (l *Logger) SessionExpired(ctx context.Context, r *http.Request, userID, userName string) {
	l.Log(ctx, audit.Event{
		Category:  audit.CategorySecurity,
		EventType: audit.EventSessionExpired,
		UserID:    userID,
		UserName:  userName,
		IP:        getClientIP(r),
		UserAgent: r.UserAgent(),
		Success:   false,
	})
}

/*─────────────────────────────────*
|  Helpers                         |
*─────────────────────────────────*/

func getClientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		parts := strings.Split(fwd, ",")
		return strings.TrimSpace(parts[0])
	}
	if real := r.Header.Get("X-Real-IP"); real != "" {
		return real
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
