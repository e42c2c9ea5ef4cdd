package controller

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"

	appErrors "github.com/coldpilot/coldpilot-backend/internal/errors"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logrus.WithError(err).Error("failed to encode response")
	}
}

// writeError maps the service error taxonomy onto HTTP statuses. Storage
// failures are reported to Sentry and never surfaced verbatim.
func writeError(w http.ResponseWriter, err error) {
	var invalid *appErrors.ErrInvalidInput
	if errors.As(err, &invalid) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": invalid.Error()})
		return
	}

	var notFound *appErrors.ErrNotFoundOrProcessed
	if errors.As(err, &notFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": notFound.Error()})
		return
	}

	var campaignNotFound *appErrors.ErrCampaignNotFound
	if errors.As(err, &campaignNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": campaignNotFound.Error()})
		return
	}

	logrus.WithError(err).Error("storage failure")
	sentry.CaptureException(err)
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
}
