package consultation

import (
	"context"
	"log/slog"
)

// RecordStore persists a lead in the external CRM and returns the record id.
type RecordStore interface {
	CreateLead(ctx context.Context, lead Lead) (string, error)
}

// Mailer sends the studio notification email and returns the message id.
type Mailer interface {
	SendLeadNotification(ctx context.Context, lead Lead) (string, error)
}

// Outcome is the result of one best-effort side effect.
type Outcome struct {
	Attempted bool
	ID        string
	Err       error
}

// Receipt combines the two side-effect outcomes for one submission.
type Receipt struct {
	Record Outcome
	Email  Outcome
}

// Failed reports whether the submission failed outright. The rule: the
// notification attempt errored and no record was stored. A partial outcome
// (either collaborator succeeded) and the nothing-configured case both
// count as success.
func (r Receipt) Failed() bool {
	return r.Email.Err != nil && r.Record.ID == ""
}

type Service struct {
	store  RecordStore
	mailer Mailer
	log    *slog.Logger
}

// NewService wires the two collaborators. Either may be nil, in which case
// that step is skipped entirely.
func NewService(store RecordStore, mailer Mailer, log *slog.Logger) *Service {
	return &Service{
		store:  store,
		mailer: mailer,
		log:    log,
	}
}

// Submit runs the two-step pipeline: persist the lead, then notify the
// studio. The steps run sequentially and each has its own error boundary,
// so a record-store outage never blocks the email and vice versa. Neither
// step is retried.
func (s *Service) Submit(ctx context.Context, lead Lead) Receipt {
	lead.Normalize()

	var receipt Receipt

	if s.store != nil {
		receipt.Record.Attempted = true
		id, err := s.store.CreateLead(ctx, lead)
		if err != nil {
			receipt.Record.Err = err
			s.log.Error("consultation: record store failed", slog.String("error", err.Error()))
		} else {
			receipt.Record.ID = id
		}
	}

	if s.mailer != nil {
		receipt.Email.Attempted = true
		id, err := s.mailer.SendLeadNotification(ctx, lead)
		if err != nil {
			receipt.Email.Err = err
			s.log.Error("consultation: notification failed", slog.String("error", err.Error()))
		} else {
			receipt.Email.ID = id
		}
	}

	return receipt
}
