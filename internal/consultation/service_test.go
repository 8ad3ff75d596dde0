package consultation

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
)

type fakeStore struct {
	id    string
	err   error
	calls int
	last  Lead
}

func (f *fakeStore) CreateLead(ctx context.Context, lead Lead) (string, error) {
	f.calls++
	f.last = lead
	return f.id, f.err
}

type fakeMailer struct {
	id    string
	err   error
	calls int
}

func (f *fakeMailer) SendLeadNotification(ctx context.Context, lead Lead) (string, error) {
	f.calls++
	return f.id, f.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testLead() Lead {
	return Lead{Partner1: "Maya", Partner2: "Jordan", Email: "maya@example.com"}
}

func TestSubmitBothSucceed(t *testing.T) {
	store := &fakeStore{id: "rec123"}
	mailer := &fakeMailer{id: "em456"}
	svc := NewService(store, mailer, discardLogger())

	receipt := svc.Submit(context.Background(), testLead())
	if receipt.Failed() {
		t.Fatalf("expected success, got failed receipt %+v", receipt)
	}
	if receipt.Record.ID != "rec123" || receipt.Email.ID != "em456" {
		t.Fatalf("unexpected ids: %+v", receipt)
	}
	if store.calls != 1 || mailer.calls != 1 {
		t.Fatalf("expected exactly one attempt per step, got %d/%d", store.calls, mailer.calls)
	}
}

func TestSubmitStoreFailureDoesNotBlockEmail(t *testing.T) {
	store := &fakeStore{err: errors.New("airtable down")}
	mailer := &fakeMailer{id: "em456"}
	svc := NewService(store, mailer, discardLogger())

	receipt := svc.Submit(context.Background(), testLead())
	if mailer.calls != 1 {
		t.Fatalf("email step must run after store failure")
	}
	if receipt.Failed() {
		t.Fatalf("email succeeded, submission must not fail")
	}
	if receipt.Record.ID != "" || receipt.Email.ID != "em456" {
		t.Fatalf("unexpected ids: %+v", receipt)
	}
}

func TestSubmitEmailFailureSwallowedWhenRecordStored(t *testing.T) {
	store := &fakeStore{id: "rec123"}
	mailer := &fakeMailer{err: errors.New("smtp exploded")}
	svc := NewService(store, mailer, discardLogger())

	receipt := svc.Submit(context.Background(), testLead())
	if receipt.Failed() {
		t.Fatalf("record stored, email failure must be swallowed")
	}
	if receipt.Record.ID != "rec123" || receipt.Email.ID != "" {
		t.Fatalf("unexpected ids: %+v", receipt)
	}
}

func TestSubmitOnlyConfiguredMailerFails(t *testing.T) {
	mailer := &fakeMailer{err: errors.New("smtp exploded")}
	svc := NewService(nil, mailer, discardLogger())

	receipt := svc.Submit(context.Background(), testLead())
	if !receipt.Failed() {
		t.Fatalf("only configured collaborator failed, submission must fail")
	}
	if receipt.Record.Attempted {
		t.Fatalf("unconfigured store must not be attempted")
	}
}

func TestSubmitNothingConfigured(t *testing.T) {
	svc := NewService(nil, nil, discardLogger())

	receipt := svc.Submit(context.Background(), testLead())
	if receipt.Failed() {
		t.Fatalf("nothing configured is still a success")
	}
	if receipt.Record.Attempted || receipt.Email.Attempted {
		t.Fatalf("no step should be attempted: %+v", receipt)
	}
}

func TestSubmitNormalizesRoleSubRecords(t *testing.T) {
	store := &fakeStore{id: "rec123"}
	svc := NewService(store, nil, discardLogger())

	lead := testLead()
	lead.Role = RolePlanner
	lead.Planner = &PlannerInfo{Name: "Ana", Email: "ana@plans.com"}
	lead.Parent = &ParentInfo{Name: "stray"}

	svc.Submit(context.Background(), lead)
	if store.last.Parent != nil {
		t.Fatalf("planner role must clear the parent sub-record")
	}
	if store.last.Planner == nil || store.last.Planner.Name != "Ana" {
		t.Fatalf("planner sub-record lost: %+v", store.last.Planner)
	}
}
