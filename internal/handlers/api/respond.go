package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/KirkDiggler/lectern/internal/services/messaging"
	"github.com/rs/zerolog/log"
)

var errBadBody = errors.New("invalid request body")

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Str("module", "api").Msg("failed to encode response")
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	if err := decoder.Decode(v); err != nil {
		return errBadBody
	}
	return nil
}

// statusFor maps a user-facing error type onto an HTTP status
func statusFor(errorType messaging.ErrorType) int {
	switch errorType {
	case messaging.ErrorTypeSessionNotFound,
		messaging.ErrorTypePollNotFound,
		messaging.ErrorTypeQuestionNotFound:
		return http.StatusNotFound
	case messaging.ErrorTypeNotPresenter:
		return http.StatusForbidden
	case messaging.ErrorTypeRateLimited:
		return http.StatusTooManyRequests
	case messaging.ErrorTypeSessionEnded,
		messaging.ErrorTypePollClosed:
		return http.StatusConflict
	case messaging.ErrorTypeInvalidOption,
		messaging.ErrorTypeEmptyQuestion,
		messaging.ErrorTypeQuestionTooLong,
		messaging.ErrorTypeUnknownEmoji,
		messaging.ErrorTypeInvalidInput:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// userError turns an error into its type and friendly message
func (h *Handler) userError(ctx context.Context, err error) (messaging.ErrorType, string) {
	errorType := messaging.ErrorTypeOf(err)
	if errors.Is(err, errBadBody) {
		errorType = messaging.ErrorTypeInvalidInput
	}

	output, msgErr := h.messaging.GetErrorMessage(ctx, &messaging.GetErrorMessageInput{
		ErrorType: errorType,
	})
	if msgErr != nil {
		return errorType, err.Error()
	}
	return errorType, output.Message
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	errorType, message := h.userError(r.Context(), err)
	status := statusFor(errorType)

	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Str("module", "api").Str("path", r.URL.Path).Msg("request failed")
	}

	writeJSON(w, status, &errorResponse{
		Error:   string(errorType),
		Message: message,
	})
}

// bearerToken reads the presenter token from the Authorization header
func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return strings.TrimSpace(header[len(prefix):])
	}
	return ""
}
