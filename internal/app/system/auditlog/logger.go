// internal/app/system/auditlog/logger.go
package auditlog

import (
	"context"
	"net/http"
	"strconv"

	"github.com/dalemusser/duasite/internal/app/store/audit"
	"github.com/dalemusser/duasite/internal/app/system/ratelimit"
	"go.uber.org/zap"
)

// Destination settings for a category.
const (
	ModeAll = "all" // MongoDB + zap
	ModeDB  = "db"  // MongoDB only
	ModeLog = "log" // zap only
	ModeOff = "off" // disabled
)

// Config holds audit logging configuration.
type Config struct {
	// Auth controls logging for sign-in and sign-out events.
	Auth string
	// Admin controls logging for admin maintenance events (seeding).
	Admin string
}

// Valid reports whether mode is one of the known settings.
func Valid(mode string) bool {
	switch mode {
	case ModeAll, ModeDB, ModeLog, ModeOff:
		return true
	}
	return false
}

// Logger provides convenience methods for logging audit events.
// It logs to both MongoDB (via audit.Store) and structured logs (via zap).
type Logger struct {
	store  *audit.Store
	zapLog *zap.Logger
	config Config
}

// New creates a new audit Logger.
func New(store *audit.Store, zapLog *zap.Logger, config Config) *Logger {
	return &Logger{
		store:  store,
		zapLog: zapLog,
		config: config,
	}
}

// logToZap logs the event to zap with consistent structure.
func (l *Logger) logToZap(event audit.Event) {
	fields := []zap.Field{
		zap.Bool("audit", true),
		zap.String("category", event.Category),
		zap.String("event_type", event.EventType),
		zap.Bool("success", event.Success),
		zap.String("ip", event.IP),
	}
	if event.ActorID != "" {
		fields = append(fields, zap.String("actor_id", event.ActorID))
	}
	if event.Channel != "" {
		fields = append(fields, zap.String("channel", event.Channel))
	}
	if event.FailureReason != "" {
		fields = append(fields, zap.String("failure_reason", event.FailureReason))
	}
	for k, v := range event.Details {
		fields = append(fields, zap.String("detail_"+k, v))
	}

	if event.Success {
		l.zapLog.Info("audit event", fields...)
	} else {
		l.zapLog.Warn("audit event", fields...)
	}
}

// Log records an audit event based on configuration.
// If the logger is nil, this is a no-op (allows tests to use nil audit logger).
func (l *Logger) Log(ctx context.Context, event audit.Event) {
	if l == nil {
		return
	}

	var setting string
	switch event.Category {
	case audit.CategoryAuth:
		setting = l.config.Auth
	case audit.CategoryAdmin:
		setting = l.config.Admin
	}
	if setting == "" {
		setting = ModeAll
	}
	if setting == ModeOff {
		return
	}

	if setting == ModeAll || setting == ModeLog {
		l.logToZap(event)
	}
	if (setting == ModeAll || setting == ModeDB) && l.store != nil {
		if err := l.store.Log(ctx, event); err != nil {
			l.zapLog.Error("failed to store audit event",
				zap.Error(err),
				zap.String("event_type", event.EventType),
			)
		}
	}
}

func fromRequest(r *http.Request, e audit.Event) audit.Event {
	e.IP = ratelimit.ClientIP(r)
	e.UserAgent = r.UserAgent()
	return e
}

// --- Authentication Events ---

// LoginSuccess logs a successful sign-in. channel is "form" or "api".
func (l *Logger) LoginSuccess(ctx context.Context, r *http.Request, adminID, email, channel string) {
	l.Log(ctx, fromRequest(r, audit.Event{
		Category:   audit.CategoryAuth,
		EventType:  audit.EventLoginSuccess,
		ActorID:    adminID,
		ActorEmail: email,
		Channel:    channel,
		Success:    true,
	}))
}

// LoginFailed logs rejected credentials. The attempted email is kept so
// repeated guesses against one account are visible.
func (l *Logger) LoginFailed(ctx context.Context, r *http.Request, attemptedEmail, channel string) {
	l.Log(ctx, fromRequest(r, audit.Event{
		Category:      audit.CategoryAuth,
		EventType:     audit.EventLoginFailed,
		ActorEmail:    attemptedEmail,
		Channel:       channel,
		FailureReason: "invalid credentials",
	}))
}

// LoginRateLimited logs an attempt refused by the per-account limiter.
func (l *Logger) LoginRateLimited(ctx context.Context, r *http.Request, attemptedEmail, channel string) {
	l.Log(ctx, fromRequest(r, audit.Event{
		Category:      audit.CategoryAuth,
		EventType:     audit.EventLoginRateLimited,
		ActorEmail:    attemptedEmail,
		Channel:       channel,
		FailureReason: "rate limit exceeded",
	}))
}

// Logout logs a sign-out.
func (l *Logger) Logout(ctx context.Context, r *http.Request, adminID, email, channel string) {
	l.Log(ctx, fromRequest(r, audit.Event{
		Category:   audit.CategoryAuth,
		EventType:  audit.EventLogout,
		ActorID:    adminID,
		ActorEmail: email,
		Channel:    channel,
		Success:    true,
	}))
}

// --- Admin Events ---

// DatabaseSeeded logs a successful seed with the per-collection counts.
func (l *Logger) DatabaseSeeded(ctx context.Context, r *http.Request, counts map[string]int) {
	details := make(map[string]string, len(counts))
	for k, v := range counts {
		details[k] = strconv.Itoa(v)
	}
	l.Log(ctx, fromRequest(r, audit.Event{
		Category:  audit.CategoryAdmin,
		EventType: audit.EventDatabaseSeeded,
		Channel:   "api",
		Success:   true,
		Details:   details,
	}))
}

// SeedRejected logs a seed call with a missing or wrong secret.
func (l *Logger) SeedRejected(ctx context.Context, r *http.Request) {
	l.Log(ctx, fromRequest(r, audit.Event{
		Category:      audit.CategoryAdmin,
		EventType:     audit.EventSeedRejected,
		Channel:       "api",
		FailureReason: "bad secret",
	}))
}
