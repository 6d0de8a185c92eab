package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/iudanet/barkeeper/internal/server/storage"
	"github.com/iudanet/barkeeper/pkg/api"
)

// maxBodySize ограничение размера тела запроса
const maxBodySize = 1 << 20

// errForbidden роль пользователя не позволяет действие
var errForbidden = errors.New("insufficient role")

// SendJSON writes data as a JSON response with statusCode.
func SendJSON(logger *slog.Logger, w http.ResponseWriter, data any, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode JSON response", slog.Any("error", err))
	}
}

// SendError writes an api.ErrorResponse with a machine-readable code.
func SendError(logger *slog.Logger, w http.ResponseWriter, statusCode int, code, message string) {
	SendJSON(logger, w, api.ErrorResponse{Error: code, Message: message}, statusCode)
}

// decodeJSON читает тело запроса в dst
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

// sendStorageError переводит ошибки хранилища в HTTP ответ
func sendStorageError(logger *slog.Logger, r *http.Request, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, storage.ErrBarNotFound),
		errors.Is(err, storage.ErrTicketNotFound),
		errors.Is(err, storage.ErrMappingNotFound),
		errors.Is(err, storage.ErrUserNotFound):
		SendError(logger, w, http.StatusNotFound, api.CodeNotFound, err.Error())
	case errors.Is(err, storage.ErrNotMember), errors.Is(err, errForbidden):
		SendError(logger, w, http.StatusForbidden, api.CodeForbidden, err.Error())
	case errors.Is(err, storage.ErrTicketAlreadyPaid):
		SendError(logger, w, http.StatusConflict, api.CodeConflict, err.Error())
	default:
		logger.ErrorContext(r.Context(), "storage operation failed",
			slog.String("path", r.URL.Path), slog.Any("error", err))
		SendError(logger, w, http.StatusInternalServerError, api.CodeInternal, "internal server error")
	}
}

// requireUser достаёт пользователя, проставленного AuthMiddleware
func requireUser(logger *slog.Logger, w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, ok := GetUserID(r.Context())
	if !ok {
		SendError(logger, w, http.StatusUnauthorized, api.CodeUnauthorized, "authentication required")
		return "", false
	}
	return userID, true
}
