package controller

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	appErrors "github.com/coldpilot/coldpilot-backend/internal/errors"
	"github.com/coldpilot/coldpilot-backend/internal/middleware"
	"github.com/coldpilot/coldpilot-backend/internal/service"
)

type ApprovalController struct {
	ApprovalService *service.ApprovalService
}

// GetQueueCounts returns the pending draft counts for the acting user.
func (c *ApprovalController) GetQueueCounts(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	counts, err := c.ApprovalService.GetQueueCounts(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, counts)
}

func (c *ApprovalController) ListPendingEmails(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("page_size"))

	emails, err := c.ApprovalService.ListPendingEmails(r.Context(), userID, page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"data": emails})
}

func (c *ApprovalController) ListPendingReplies(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("page_size"))

	drafts, err := c.ApprovalService.ListPendingReplies(r.Context(), userID, page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"data": drafts})
}

func (c *ApprovalController) ApproveEmail(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	emailID, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	result, err := c.ApprovalService.ApproveEmail(r.Context(), emailID, userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (c *ApprovalController) RejectEmail(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	emailID, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var body struct {
		Reason string `json:"reason"`
	}
	if r.Body != nil {
		// Reason is optional; a bad body is still an error
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil && err.Error() != "EOF" {
			writeError(w, appErrors.NewInvalidInput("invalid request body"))
			return
		}
	}

	result, err := c.ApprovalService.RejectEmail(r.Context(), emailID, userID, body.Reason)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (c *ApprovalController) BulkApproveEmails(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var body struct {
		IDs []int `json:"ids"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, appErrors.NewInvalidInput("invalid request body"))
		return
	}

	result, err := c.ApprovalService.BulkApproveEmails(r.Context(), body.IDs, userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"approved": result.Count, "ids": result.IDs})
}

func (c *ApprovalController) BulkRejectEmails(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var body struct {
		IDs    []int  `json:"ids"`
		Reason string `json:"reason"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, appErrors.NewInvalidInput("invalid request body"))
		return
	}

	result, err := c.ApprovalService.BulkRejectEmails(r.Context(), body.IDs, userID, body.Reason)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"rejected": result.Count, "ids": result.IDs})
}

func (c *ApprovalController) ApproveReplyDraft(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	draftID, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	result, err := c.ApprovalService.ApproveReplyDraft(r.Context(), draftID, userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (c *ApprovalController) RejectReplyDraft(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	draftID, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	result, err := c.ApprovalService.RejectReplyDraft(r.Context(), draftID, userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (c *ApprovalController) BulkApproveReplyDrafts(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var body struct {
		IDs []int `json:"ids"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, appErrors.NewInvalidInput("invalid request body"))
		return
	}

	result, err := c.ApprovalService.BulkApproveReplyDrafts(r.Context(), body.IDs, userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"approved": result.Count, "ids": result.IDs})
}

func (c *ApprovalController) BulkRejectReplyDrafts(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var body struct {
		IDs []int `json:"ids"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, appErrors.NewInvalidInput("invalid request body"))
		return
	}

	result, err := c.ApprovalService.BulkRejectReplyDrafts(r.Context(), body.IDs, userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"rejected": result.Count, "ids": result.IDs})
}

func pathID(r *http.Request) (int, error) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		return 0, appErrors.NewInvalidInput("id must be a positive integer")
	}
	return id, nil
}
