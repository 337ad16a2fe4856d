package domain

import (
	"github.com/pkg/errors"
)

const (
	MethodNotAllowedMessage      = "Method not allowed"
	ForbiddenMessage             = "Forbidden"
	MessageRequiredMessage       = "Message required"
	ClientAddressRequiredMessage = "Client address required"
	NotConfiguredMessage         = "Service not configured"

	TooManyRequestsMessage   = "Πολλά αιτήματα. Περίμενε λίγο."
	TooManyRequestsMessageEn = "Too many requests. Please wait."

	ServiceIsNotAvailableErrorMessage   = "Υπηρεσία μη διαθέσιμη. Δοκίμασε ξανά."
	ServiceIsNotAvailableErrorMessageEn = "Service unavailable. Please try again."
)

type Error struct {
	Error   string `json:"error"`
	ErrorEn string `json:"error_en,omitempty"`
}

var (
	ErrRateLimitCacheMiss   = errors.New("rate limit entry not found in cache")
	ErrWebhookNotConfigured = errors.New("webhook url is not configured")
)
