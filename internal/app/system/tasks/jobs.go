// internal/app/system/tasks/jobs.go
package tasks

import (
	"context"
	"errors"

	"github.com/dalemusser/duasite/internal/app/system/geoip"
	"github.com/dalemusser/duasite/internal/app/system/mailer"
	"github.com/dalemusser/duasite/internal/app/system/workers"
	"go.uber.org/zap"
)

// Locator resolves an IP address to a location.
type Locator interface {
	Lookup(ctx context.Context, ip string) (geoip.Location, error)
}

// LocationSetter patches geo fields onto an analytics session.
type LocationSetter interface {
	SetLocation(ctx context.Context, sessionID string, loc geoip.Location) error
}

// Sender delivers an email.
type Sender interface {
	Send(ctx context.Context, e mailer.Email) error
}

// GeoEnrichJob looks up ip and writes the result onto the session record.
// Ineligible addresses finish quietly; lookup failures are returned so the
// queue logs them, and the record simply keeps empty geo fields.
func GeoEnrichJob(loc Locator, store LocationSetter, sessionID, ip string, logger *zap.Logger) workers.Job {
	return workers.Job{
		Name: "geo-enrich",
		Run: func(ctx context.Context) error {
			l, err := loc.Lookup(ctx, ip)
			if errors.Is(err, geoip.ErrSkipped) {
				return nil
			}
			if err != nil {
				return err
			}
			if err := store.SetLocation(ctx, sessionID, l); err != nil {
				return err
			}
			logger.Debug("visit enriched",
				zap.String("session_id", sessionID),
				zap.String("country", l.Country))
			return nil
		},
	}
}

// ContactNotifyJob emails the admin inbox about a new contact message.
func ContactNotifyJob(m Sender, e mailer.Email) workers.Job {
	return workers.Job{
		Name: "contact-notify",
		Run: func(ctx context.Context) error {
			return m.Send(ctx, e)
		},
	}
}
