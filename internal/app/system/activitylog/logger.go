// internal/app/system/activitylog/logger.go
package activitylog

import (
	"context"
	"fmt"

	"github.com/brightevents/gatepass/internal/app/store/activity"
	"go.uber.org/zap"
)

// Modes for the activity log destination.
//   "all" writes to MongoDB and zap, "db" MongoDB only,
//   "log" zap only, "off" disables activity logging entirely.
const (
	ModeAll = "all"
	ModeDB  = "db"
	ModeLog = "log"
	ModeOff = "off"
)

// Appender is the subset of the activity store the logger needs.
// Tests substitute an in-memory implementation.
type Appender interface {
	Append(ctx context.Context, e activity.Entry) error
}

// Logger records activity entries after state-changing operations.
// A failure to record never fails the operation that produced it;
// store errors are reported through zap and swallowed.
type Logger struct {
	store  Appender
	zapLog *zap.Logger
	mode   string
}

// New creates an activity Logger. Mode defaults to "all" when empty.
func New(store Appender, zapLog *zap.Logger, mode string) *Logger {
	if mode == "" {
		mode = ModeAll
	}
	return &Logger{store: store, zapLog: zapLog, mode: mode}
}

func (l *Logger) logToZap(e activity.Entry) {
	fields := []zap.Field{
		zap.Bool("activity", true),
		zap.String("type", e.Type),
		zap.String("performed_by", e.PerformedBy),
	}
	if e.TargetGuest != "" {
		fields = append(fields, zap.String("target_guest", e.TargetGuest))
	}
	if e.TargetAdmin != "" {
		fields = append(fields, zap.String("target_admin", e.TargetAdmin))
	}
	fields = append(fields, zap.String("details", e.Details))

	l.zapLog.Info("activity event", fields...)
}

// Record writes one entry according to the configured mode.
// If the logger is nil, this is a no-op (allows tests to use nil activity logger).
func (l *Logger) Record(ctx context.Context, e activity.Entry) {
	if l == nil || l.mode == ModeOff {
		return
	}

	if l.mode == ModeAll || l.mode == ModeLog {
		l.logToZap(e)
	}

	if l.mode == ModeAll || l.mode == ModeDB {
		if err := l.store.Append(ctx, e); err != nil {
			l.zapLog.Error("failed to store activity entry",
				zap.Error(err),
				zap.String("type", e.Type),
			)
		}
	}
}

// guestRef identifies a guest in an audit entry by name and email.
func guestRef(name, email string) string {
	return fmt.Sprintf("%s (%s)", name, email)
}

// Registration records a new guest registration. Self-service
// registrations are attributed to "System".
func (l *Logger) Registration(ctx context.Context, guestName, guestEmail, organization, accessCode string) {
	l.Record(ctx, activity.Entry{
		Type:        activity.TypeRegistration,
		PerformedBy: activity.PerformedBySystem,
		TargetGuest: guestRef(guestName, guestEmail),
		Details:     fmt.Sprintf("New registration: %s - %s - Access Code: %s", guestName, organization, accessCode),
	})
}

// CheckIn records a guest check-in performed by a staff member.
func (l *Logger) CheckIn(ctx context.Context, actor, guestName, guestEmail, accessCode string) {
	l.Record(ctx, activity.Entry{
		Type:        activity.TypeCheckIn,
		PerformedBy: actor,
		TargetGuest: guestRef(guestName, guestEmail),
		Details:     fmt.Sprintf("Checked in %s - Access Code: %s", guestName, accessCode),
	})
}

// AdminCreated records the creation of an admin account. The actor is
// the creating super admin's email.
func (l *Logger) AdminCreated(ctx context.Context, actor, role, adminName, adminEmail string) {
	l.Record(ctx, activity.Entry{
		Type:        activity.TypeAdminCreated,
		PerformedBy: actor,
		TargetAdmin: adminEmail,
		Details:     fmt.Sprintf("Created %s user: %s (%s)", role, adminName, adminEmail),
	})
}

// AdminLogin records a successful admin login, attributed to the
// admin's email.
func (l *Logger) AdminLogin(ctx context.Context, adminEmail, adminName string) {
	l.Record(ctx, activity.Entry{
		Type:        activity.TypeAdminLogin,
		PerformedBy: adminEmail,
		TargetAdmin: adminEmail,
		Details:     fmt.Sprintf("Admin logged in: %s", adminName),
	})
}
