// internal/app/features/messages/inbox.go
package messages

import (
	"context"
	"strings"

	messagestore "github.com/dalemusser/duasite/internal/app/store/messages"
	"github.com/dalemusser/duasite/internal/app/system/mailer"
	"github.com/dalemusser/duasite/internal/app/system/tasks"
	"github.com/dalemusser/duasite/internal/app/system/viewdata"
	"github.com/dalemusser/duasite/internal/app/system/workers"
	"github.com/dalemusser/duasite/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Notifier sends staff email when configured.
type Notifier interface {
	tasks.Sender
	Enabled() bool
}

// Inbox accepts contact submissions for both the API and the contact page,
// and queues the staff notification.
type Inbox struct {
	DB       *mongo.Database
	Store    *messagestore.Store
	Queue    *workers.Queue
	Mailer   Notifier
	NotifyTo string
	BaseURL  string
	Log      *zap.Logger
}

// Submit validates and stores in. The notification is best effort and never
// affects the result.
func (ib *Inbox) Submit(ctx context.Context, in messagestore.Input) (models.Message, error) {
	m, err := ib.Store.Create(ctx, in)
	if err != nil {
		return m, err
	}
	ib.Log.Info("contact message received",
		zap.String("message_id", m.ID.Hex()),
		zap.String("subject", m.Subject))
	ib.notify(ctx, m)
	return m, nil
}

func (ib *Inbox) notify(ctx context.Context, m models.Message) {
	if ib.Queue == nil || ib.Mailer == nil || !ib.Mailer.Enabled() || ib.NotifyTo == "" {
		return
	}
	site := viewdata.LoadSettings(ctx, ib.DB)
	e := mailer.BuildContactNotification(mailer.ContactNotificationData{
		SiteName: site.SiteName,
		Name:     m.Name,
		Email:    m.Email,
		Phone:    m.Phone,
		Subject:  m.Subject,
		Message:  m.Message,
		AdminURL: strings.TrimRight(ib.BaseURL, "/") + "/admin/messages/" + m.ID.Hex(),
	})
	e.To = ib.NotifyTo
	ib.Queue.Enqueue(tasks.ContactNotifyJob(ib.Mailer, e))
}
