package appErrors

import "fmt"

// Cause records why a guarded transition missed. It is logged internally but
// never shown to the caller: the public message stays the same whether the
// row is absent, owned by someone else, or already transitioned.
type Cause string

const (
	CauseUnknown   Cause = "unknown"
	CauseGuardMiss Cause = "guard_miss"
)

// ErrNotFoundOrProcessed is the merged not-found / not-yours / not-draft error.
type ErrNotFoundOrProcessed struct {
	Entity string // "email" or "reply draft"
	ID     int
	Cause  Cause
}

func (e *ErrNotFoundOrProcessed) Error() string {
	return fmt.Sprintf("%s not found or already processed", e.Entity)
}

func NewEmailNotFound(id int) error {
	return &ErrNotFoundOrProcessed{Entity: "email", ID: id, Cause: CauseGuardMiss}
}

func NewReplyDraftNotFound(id int) error {
	return &ErrNotFoundOrProcessed{Entity: "reply draft", ID: id, Cause: CauseGuardMiss}
}

// ErrInvalidInput rejects malformed caller input before any query runs.
type ErrInvalidInput struct {
	Reason string
}

func (e *ErrInvalidInput) Error() string {
	return fmt.Sprintf("invalid input: %s", e.Reason)
}

func NewInvalidInput(reason string) error {
	return &ErrInvalidInput{Reason: reason}
}

// ErrCampaignNotFound is a sentinel error
type ErrCampaignNotFound struct {
	CampaignID int
}

func (e *ErrCampaignNotFound) Error() string {
	return fmt.Sprintf("campaign with ID %d not found", e.CampaignID)
}

// Helper constructor
func NewCampaignNotFound(id int) error {
	return &ErrCampaignNotFound{CampaignID: id}
}
