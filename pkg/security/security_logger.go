package security

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// EventType represents the type of audit event
type EventType string

const (
	EventLoginSuccess   EventType = "login_success"
	EventLoginFailed    EventType = "login_failed"
	EventLogout         EventType = "logout"
	EventAccessDenied   EventType = "access_denied"
	EventUploadRejected EventType = "upload_rejected"
	EventAccountCreated EventType = "account_created"
	EventRoleChanged    EventType = "role_changed"
)

// AuditEvent is a security-relevant event. SubjectValue is always masked
// or hashed before it reaches the log.
type AuditEvent struct {
	Timestamp    time.Time
	Event        EventType
	SubjectType  string // "email", "ip", "user_id"
	SubjectValue string
	IP           string
	UserAgent    string
	RequestID    string
	Details      map[string]any
}

// AuditLogger writes audit events as structured zap entries.
type AuditLogger struct {
	zapLogger   *zap.Logger
	serviceName string
	environment string
}

// NewAuditLogger builds a production zap logger writing to stdout.
func NewAuditLogger(serviceName, environment string) *AuditLogger {
	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncoderConfig.MessageKey = "message"
	cfg.OutputPaths = []string{"stdout"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	logger, err := cfg.Build(zap.AddStacktrace(zapcore.ErrorLevel))
	if err != nil {
		logger = zap.NewNop()
	}
	return NewAuditLoggerWith(logger, serviceName, environment)
}

// NewAuditLoggerWith wraps an existing zap logger. Tests pass an observer core.
func NewAuditLoggerWith(logger *zap.Logger, serviceName, environment string) *AuditLogger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuditLogger{zapLogger: logger, serviceName: serviceName, environment: environment}
}

// NopAuditLogger discards everything.
func NopAuditLogger() *AuditLogger {
	return NewAuditLoggerWith(zap.NewNop(), "", "")
}

// Log writes a single audit event.
func (al *AuditLogger) Log(_ context.Context, event AuditEvent) {
	if al == nil {
		return
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	level := zapcore.WarnLevel
	switch event.Event {
	case EventLoginSuccess, EventLogout, EventAccountCreated:
		level = zapcore.InfoLevel
	case EventRoleChanged:
		level = zapcore.WarnLevel
	}

	fields := []zap.Field{
		zap.String("service", al.serviceName),
		zap.String("env", al.environment),
		zap.String("event", string(event.Event)),
		zap.Time("occurred_at", event.Timestamp),
	}
	if event.SubjectType != "" {
		fields = append(fields,
			zap.String("subject_type", event.SubjectType),
			zap.String("subject_value", maskValue(event.SubjectType, event.SubjectValue)),
		)
	}
	if event.IP != "" {
		fields = append(fields, zap.String("ip", event.IP))
	}
	if event.UserAgent != "" {
		fields = append(fields, zap.String("user_agent", event.UserAgent))
	}
	if event.RequestID != "" {
		fields = append(fields, zap.String("request_id", event.RequestID))
	}
	if len(event.Details) > 0 {
		fields = append(fields, zap.Any("details", event.Details))
	}

	al.zapLogger.Log(level, string(event.Event), fields...)
}

// LogLoginFailed records a failed login attempt.
func (al *AuditLogger) LogLoginFailed(ctx context.Context, email, ip, requestID, reason string) {
	al.Log(ctx, AuditEvent{
		Event:        EventLoginFailed,
		SubjectType:  "email",
		SubjectValue: email,
		IP:           ip,
		RequestID:    requestID,
		Details:      map[string]any{"reason": reason},
	})
}

// LogLoginSuccess records a successful login.
func (al *AuditLogger) LogLoginSuccess(ctx context.Context, email, ip, requestID string) {
	al.Log(ctx, AuditEvent{
		Event:        EventLoginSuccess,
		SubjectType:  "email",
		SubjectValue: email,
		IP:           ip,
		RequestID:    requestID,
	})
}

// LogAccessDenied records a request rejected by the auth gate.
func (al *AuditLogger) LogAccessDenied(ctx context.Context, userID, path, ip, requestID string) {
	al.Log(ctx, AuditEvent{
		Event:        EventAccessDenied,
		SubjectType:  "user_id",
		SubjectValue: userID,
		IP:           ip,
		RequestID:    requestID,
		Details:      map[string]any{"path": path},
	})
}

// LogUploadRejected records a résumé upload that failed validation.
func (al *AuditLogger) LogUploadRejected(ctx context.Context, filename, ip, requestID, reason string) {
	al.Log(ctx, AuditEvent{
		Event:     EventUploadRejected,
		IP:        ip,
		RequestID: requestID,
		Details:   map[string]any{"filename": filename, "reason": reason},
	})
}

// Sync flushes any buffered log entries
func (al *AuditLogger) Sync() error {
	if al == nil {
		return nil
	}
	return al.zapLogger.Sync()
}

// MaskEmail masks an email for logging (e.g., "j***@example.com")
func MaskEmail(email string) string {
	at := strings.IndexByte(email, '@')
	if len(email) < 3 || at < 0 {
		return "***"
	}
	if at <= 1 {
		return "***" + email[at:]
	}
	return email[:1] + "***" + email[at:]
}

// HashValue creates a short SHA256 digest of a value (for logging without PII)
func HashValue(value string) string {
	hash := sha256.Sum256([]byte(value))
	return hex.EncodeToString(hash[:8])
}

func maskValue(subjectType, value string) string {
	switch subjectType {
	case "email":
		return MaskEmail(value)
	case "ip", "user_id":
		return value
	default:
		return HashValue(value)
	}
}
