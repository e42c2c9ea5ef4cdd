package service

import (
	"context"

	"github.com/sirupsen/logrus"

	appErrors "github.com/coldpilot/coldpilot-backend/internal/errors"
	"github.com/coldpilot/coldpilot-backend/internal/model"
	"github.com/coldpilot/coldpilot-backend/internal/queue"
	"github.com/coldpilot/coldpilot-backend/internal/repository"
)

// DispatchTopic carries approved outreach email ids to the sender worker.
const DispatchTopic = "email_dispatch"

// ApprovalService mediates between machine-generated drafts and the user who
// must accept or reject them before anything leaves the system.
type ApprovalService struct {
	ApprovalRepo repository.ApprovalRepositoryInterface
	Analytics    repository.AnalyticsRepositoryInterface
	Queue        queue.Queue
}

type QueueCounts struct {
	Emails  int `json:"emails"`
	Replies int `json:"replies"`
	Total   int `json:"total"`
}

type TransitionResult struct {
	ID     int    `json:"id"`
	Status string `json:"status"`
}

type BulkResult struct {
	Count int   `json:"count"`
	IDs   []int `json:"ids"`
}

// ====================== Queue reads ======================

func (s *ApprovalService) GetQueueCounts(ctx context.Context, userID int) (*QueueCounts, error) {
	emails, err := s.ApprovalRepo.CountPendingEmails(ctx, userID)
	if err != nil {
		return nil, err
	}
	replies, err := s.ApprovalRepo.CountPendingReplies(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &QueueCounts{Emails: emails, Replies: replies, Total: emails + replies}, nil
}

func (s *ApprovalService) ListPendingEmails(ctx context.Context, userID, page, pageSize int) ([]*model.GeneratedEmail, error) {
	offset, limit := clampPage(page, pageSize)
	return s.ApprovalRepo.ListPendingEmails(ctx, userID, offset, limit)
}

func (s *ApprovalService) ListPendingReplies(ctx context.Context, userID, page, pageSize int) ([]*model.ReplyDraft, error) {
	offset, limit := clampPage(page, pageSize)
	return s.ApprovalRepo.ListPendingReplies(ctx, userID, offset, limit)
}

func clampPage(page, pageSize int) (offset, limit int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}
	return (page - 1) * pageSize, pageSize
}

// ====================== Outreach email transitions ======================

func (s *ApprovalService) ApproveEmail(ctx context.Context, emailID, userID int) (*TransitionResult, error) {
	if emailID <= 0 {
		return nil, appErrors.NewInvalidInput("email id must be a positive integer")
	}

	if err := s.ApprovalRepo.ApproveEmail(ctx, emailID, userID); err != nil {
		return nil, err
	}

	s.emitEvent(ctx, "email_approved", userID, map[string]any{"email_id": emailID})
	s.enqueueDispatch(emailID)

	return &TransitionResult{ID: emailID, Status: "approved"}, nil
}

func (s *ApprovalService) RejectEmail(ctx context.Context, emailID, userID int, reason string) (*TransitionResult, error) {
	if emailID <= 0 {
		return nil, appErrors.NewInvalidInput("email id must be a positive integer")
	}

	if err := s.ApprovalRepo.RejectEmail(ctx, emailID, userID, reason); err != nil {
		return nil, err
	}

	s.emitEvent(ctx, "email_rejected", userID, map[string]any{"email_id": emailID, "reason": reason})

	return &TransitionResult{ID: emailID, Status: "rejected"}, nil
}

func (s *ApprovalService) BulkApproveEmails(ctx context.Context, ids []int, userID int) (*BulkResult, error) {
	ids, err := validateBulkIDs(ids)
	if err != nil {
		return nil, err
	}

	transitioned, err := s.ApprovalRepo.BulkApproveEmails(ctx, ids, userID)
	if err != nil {
		return nil, err
	}

	s.emitEvent(ctx, "emails_bulk_approved", userID, map[string]any{"ids": transitioned, "count": len(transitioned)})
	for _, id := range transitioned {
		s.enqueueDispatch(id)
	}

	return &BulkResult{Count: len(transitioned), IDs: transitioned}, nil
}

func (s *ApprovalService) BulkRejectEmails(ctx context.Context, ids []int, userID int, reason string) (*BulkResult, error) {
	ids, err := validateBulkIDs(ids)
	if err != nil {
		return nil, err
	}

	transitioned, err := s.ApprovalRepo.BulkRejectEmails(ctx, ids, userID, reason)
	if err != nil {
		return nil, err
	}

	s.emitEvent(ctx, "emails_bulk_rejected", userID, map[string]any{"ids": transitioned, "count": len(transitioned), "reason": reason})

	return &BulkResult{Count: len(transitioned), IDs: transitioned}, nil
}

// ====================== Reply draft transitions ======================

func (s *ApprovalService) ApproveReplyDraft(ctx context.Context, draftID, userID int) (*TransitionResult, error) {
	if draftID <= 0 {
		return nil, appErrors.NewInvalidInput("reply draft id must be a positive integer")
	}

	if err := s.ApprovalRepo.ApproveReplyDraft(ctx, draftID, userID); err != nil {
		return nil, err
	}

	s.emitEvent(ctx, "reply_draft_approved", userID, map[string]any{"reply_draft_id": draftID})

	return &TransitionResult{ID: draftID, Status: "approved"}, nil
}

func (s *ApprovalService) RejectReplyDraft(ctx context.Context, draftID, userID int) (*TransitionResult, error) {
	if draftID <= 0 {
		return nil, appErrors.NewInvalidInput("reply draft id must be a positive integer")
	}

	if err := s.ApprovalRepo.RejectReplyDraft(ctx, draftID, userID); err != nil {
		return nil, err
	}

	s.emitEvent(ctx, "reply_draft_rejected", userID, map[string]any{"reply_draft_id": draftID})

	return &TransitionResult{ID: draftID, Status: "rejected"}, nil
}

func (s *ApprovalService) BulkApproveReplyDrafts(ctx context.Context, ids []int, userID int) (*BulkResult, error) {
	ids, err := validateBulkIDs(ids)
	if err != nil {
		return nil, err
	}

	transitioned, err := s.ApprovalRepo.BulkApproveReplyDrafts(ctx, ids, userID)
	if err != nil {
		return nil, err
	}

	s.emitEvent(ctx, "reply_drafts_bulk_approved", userID, map[string]any{"ids": transitioned, "count": len(transitioned)})

	return &BulkResult{Count: len(transitioned), IDs: transitioned}, nil
}

func (s *ApprovalService) BulkRejectReplyDrafts(ctx context.Context, ids []int, userID int) (*BulkResult, error) {
	ids, err := validateBulkIDs(ids)
	if err != nil {
		return nil, err
	}

	transitioned, err := s.ApprovalRepo.BulkRejectReplyDrafts(ctx, ids, userID)
	if err != nil {
		return nil, err
	}

	s.emitEvent(ctx, "reply_drafts_bulk_rejected", userID, map[string]any{"ids": transitioned, "count": len(transitioned)})

	return &BulkResult{Count: len(transitioned), IDs: transitioned}, nil
}

// ====================== Helpers ======================

// validateBulkIDs rejects empty and non-positive input and drops duplicates
// while preserving order.
func validateBulkIDs(ids []int) ([]int, error) {
	if len(ids) == 0 {
		return nil, appErrors.NewInvalidInput("id list must not be empty")
	}

	seen := make(map[int]bool, len(ids))
	deduped := make([]int, 0, len(ids))
	for _, id := range ids {
		if id <= 0 {
			return nil, appErrors.NewInvalidInput("ids must be positive integers")
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		deduped = append(deduped, id)
	}
	return deduped, nil
}

// emitEvent records an analytics event. Best-effort: a failed insert is
// logged and never propagated, the transition already committed.
func (s *ApprovalService) emitEvent(ctx context.Context, eventType string, userID int, metadata map[string]any) {
	if s.Analytics == nil {
		return
	}
	if err := s.Analytics.Insert(ctx, eventType, &userID, metadata); err != nil {
		logrus.WithError(err).WithField("event_type", eventType).Warn("analytics emit failed")
	}
}

// enqueueDispatch hands an approved email to the sender. Best-effort: the
// worker also sweeps approved rows on startup, so a lost publish is not a
// lost email.
func (s *ApprovalService) enqueueDispatch(emailID int) {
	if s.Queue == nil {
		return
	}
	if err := s.Queue.Publish(DispatchTopic, emailID); err != nil {
		logrus.WithError(err).WithField("email_id", emailID).Warn("dispatch enqueue failed")
	}
}
