package main

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/coldpilot/coldpilot-backend/internal/model"
	"github.com/coldpilot/coldpilot-backend/internal/service"
)

// fakeEmailRepo stores emails in memory.
type fakeEmailRepo struct {
	mu     sync.Mutex
	emails map[int]*model.GeneratedEmail
}

func (m *fakeEmailRepo) GetByID(ctx context.Context, id int) (*model.GeneratedEmail, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.emails[id], nil
}

func (m *fakeEmailRepo) MarkSent(ctx context.Context, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e, ok := m.emails[id]; ok && e.Status == "approved" {
		e.Status = "sent"
	}
	return nil
}

func (m *fakeEmailRepo) MarkFailed(ctx context.Context, id int, reason string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e, ok := m.emails[id]; ok && e.Status == "approved" {
		e.Status = "failed"
		e.RejectionReason = &reason
	}
	return nil
}

func (m *fakeEmailRepo) status(id int) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.emails[id].Status
}

func TestDispatcherMarksSent(t *testing.T) {
	repo := &fakeEmailRepo{
		emails: map[int]*model.GeneratedEmail{
			1: {ID: 1, Status: "approved", RecipientEmail: "a@b.com", SubjectLine: "hi", EmailBody: "hello"},
		},
	}

	jobs := make(chan int, 1)
	jobs <- 1
	close(jobs)

	sent := 0
	dispatcher := service.NewDispatcher(repo, jobs, func(ctx context.Context, email *model.GeneratedEmail) error {
		sent++
		return nil
	})

	// The channel is closed, so Start drains it and returns.
	dispatcher.Start(context.Background())

	if sent != 1 {
		t.Errorf("expected 1 send, got %d", sent)
	}
	if got := repo.status(1); got != "sent" {
		t.Errorf("expected sent, got %s", got)
	}
}

func TestDispatcherMarksFailed(t *testing.T) {
	repo := &fakeEmailRepo{
		emails: map[int]*model.GeneratedEmail{
			1: {ID: 1, Status: "approved", RecipientEmail: "a@b.com"},
		},
	}

	dispatcher := service.NewDispatcher(repo, nil, func(ctx context.Context, email *model.GeneratedEmail) error {
		return fmt.Errorf("smtp refused")
	})

	if err := dispatcher.Process(context.Background(), 1); err == nil {
		t.Fatal("expected send error to propagate")
	}
	if got := repo.status(1); got != "failed" {
		t.Errorf("expected failed, got %s", got)
	}
}

func TestDispatcherSkipsNonApproved(t *testing.T) {
	repo := &fakeEmailRepo{
		emails: map[int]*model.GeneratedEmail{
			1: {ID: 1, Status: "rejected"},
		},
	}

	sent := false
	dispatcher := service.NewDispatcher(repo, nil, func(ctx context.Context, email *model.GeneratedEmail) error {
		sent = true
		return nil
	})

	if err := dispatcher.Process(context.Background(), 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sent {
		t.Error("must not send a non-approved email")
	}
	if got := repo.status(1); got != "rejected" {
		t.Errorf("status must be untouched, got %s", got)
	}
}

func TestDispatcherSkipsMissingEmail(t *testing.T) {
	repo := &fakeEmailRepo{emails: map[int]*model.GeneratedEmail{}}

	dispatcher := service.NewDispatcher(repo, nil, func(ctx context.Context, email *model.GeneratedEmail) error {
		t.Fatal("must not send for a missing email")
		return nil
	})

	if err := dispatcher.Process(context.Background(), 999); err != nil {
		t.Errorf("missing email should be skipped, got %v", err)
	}
}
