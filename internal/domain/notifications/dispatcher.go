package notifications

import (
	"context"
	"log/slog"
)

type Mailer interface {
	Send(ctx context.Context, from, to, subject, body string) error
}

// Event is a domain event emitted by a state transition. Services return
// events instead of writing notifications themselves; the dispatcher owns
// the fire-and-forget contract.
type Event struct {
	CompanyID string
	UserID    string
	Type      string
	Title     string
	Body      string
}

type Dispatcher struct {
	store  *Store
	mailer Mailer
	from   string
}

func NewDispatcher(store *Store, mailer Mailer, from string) *Dispatcher {
	return &Dispatcher{store: store, mailer: mailer, from: from}
}

// Dispatch persists each event and optionally emails the recipient.
// Failures are logged and swallowed; delivery never fails the request
// that produced the event.
func (d *Dispatcher) Dispatch(ctx context.Context, events []Event) {
	for _, event := range events {
		if event.UserID == "" {
			continue
		}
		if err := d.store.CreateNotification(ctx, event.CompanyID, event.UserID, event.Type, event.Title, event.Body); err != nil {
			slog.Warn("notification create failed", "type", event.Type, "err", err)
			continue
		}
		d.email(ctx, event)
	}
}

func (d *Dispatcher) email(ctx context.Context, event Event) {
	if d.mailer == nil {
		return
	}
	to, err := d.store.UserEmail(ctx, event.UserID)
	if err != nil || to == "" {
		if err != nil {
			slog.Warn("notification email lookup failed", "err", err)
		}
		return
	}
	if err := d.mailer.Send(ctx, d.from, to, event.Title, event.Body); err != nil {
		slog.Warn("notification email send failed", "err", err)
	}
}

func (d *Dispatcher) List(ctx context.Context, userID string, limit, offset int) ([]Notification, error) {
	return d.store.ListNotifications(ctx, userID, limit, offset)
}

func (d *Dispatcher) CountUnread(ctx context.Context, userID string) (int, error) {
	return d.store.CountUnread(ctx, userID)
}

func (d *Dispatcher) MarkRead(ctx context.Context, userID, notificationID string) error {
	return d.store.MarkRead(ctx, userID, notificationID)
}
