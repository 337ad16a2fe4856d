package httperrors

import (
	"net/http"
	"strconv"
	"time"

	"chat-gate-service/domain"

	"github.com/txix-open/isp-kit/json"
)

type HttpError struct {
	statusCode    int
	userMessage   string
	userMessageEn string
	retryAfter    time.Duration
	err           error
}

func New(statusCode int, userMessage string, internalError error) HttpError {
	return HttpError{
		statusCode:  statusCode,
		userMessage: userMessage,
		err:         internalError,
	}
}

func NewBilingual(statusCode int, userMessage string, userMessageEn string, internalError error) HttpError {
	return HttpError{
		statusCode:    statusCode,
		userMessage:   userMessage,
		userMessageEn: userMessageEn,
		err:           internalError,
	}
}

func (e HttpError) Error() string {
	return e.err.Error()
}

func (e HttpError) Unwrap() error {
	return e.err
}

func (e HttpError) StatusCode() int {
	return e.statusCode
}

func (e HttpError) WithRetryAfter(retryAfter time.Duration) HttpError {
	e.retryAfter = retryAfter
	return e
}

func (e HttpError) WriteError(w http.ResponseWriter) error {
	w.Header().Set("Content-Type", "application/json")
	if e.retryAfter > 0 {
		seconds := int((e.retryAfter + time.Second - 1) / time.Second)
		w.Header().Set("Retry-After", strconv.Itoa(seconds))
	}
	w.WriteHeader(e.statusCode)
	return json.NewEncoder(w).Encode(domain.Error{
		Error:   e.userMessage,
		ErrorEn: e.userMessageEn,
	})
}

func ServiceUnavailable(internalError error) HttpError {
	return NewBilingual(
		http.StatusBadGateway,
		domain.ServiceIsNotAvailableErrorMessage,
		domain.ServiceIsNotAvailableErrorMessageEn,
		internalError,
	)
}
