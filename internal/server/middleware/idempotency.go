package middleware

import (
	"bytes"
	"context"
	"errors"
	"hash/fnv"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/iudanet/barkeeper/internal/server/handlers"
	"github.com/iudanet/barkeeper/internal/server/storage"
	"github.com/iudanet/barkeeper/pkg/api"
)

// ReplayedHeader помечает ответ, взятый из сохранённой записи
const ReplayedHeader = "Idempotent-Replayed"

const (
	maxIdempotencyKeyLen = 255
	idempotencyStripes   = 64
)

// idempotencyLocks сериализует запросы с одинаковым ключом.
// Ключи раскладываются по фиксированному числу мьютексов
type idempotencyLocks [idempotencyStripes]sync.Mutex

func (l *idempotencyLocks) lock(userID, key string) func() {
	h := fnv.New32a()
	_, _ = h.Write([]byte(userID))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(key))
	mu := &l[h.Sum32()%idempotencyStripes]
	mu.Lock()
	return mu.Unlock
}

// Idempotency replays the stored response of a mutation whose Idempotency-Key
// the authenticated user already used. Responses with status >= 500 are not
// stored so the client may retry them. Must run after AuthMiddleware.
func Idempotency(store storage.IdempotencyStorage, logger *slog.Logger) func(http.Handler) http.Handler {
	var locks idempotencyLocks

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get(api.IdempotencyKeyHeader)
			userID, ok := handlers.GetUserID(r.Context())
			if key == "" || !ok || !isMutation(r.Method) {
				next.ServeHTTP(w, r)
				return
			}
			if len(key) > maxIdempotencyKeyLen {
				handlers.SendError(logger, w, http.StatusBadRequest, api.CodeInvalidRequest, "idempotency key is too long")
				return
			}

			unlock := locks.lock(userID, key)
			defer unlock()

			rec, err := store.GetIdempotencyRecord(r.Context(), userID, key)
			switch {
			case err == nil:
				replay(logger, w, r, rec)
				return
			case !errors.Is(err, storage.ErrIdempotencyKeyNotFound):
				logger.ErrorContext(r.Context(), "failed to read idempotency record", "error", err)
				handlers.SendError(logger, w, http.StatusInternalServerError, api.CodeInternal, "internal server error")
				return
			}

			cw := &captureWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(cw, r)

			if cw.status >= http.StatusInternalServerError {
				return
			}

			// Ответ уже отправлен, запись сохраняем даже если клиент отключился
			ctx := context.WithoutCancel(r.Context())
			err = store.SaveIdempotencyRecord(ctx, &storage.IdempotencyRecord{
				CreatedAt:  time.Now(),
				UserID:     userID,
				Key:        key,
				Method:     r.Method,
				Path:       r.URL.Path,
				Body:       cw.body.Bytes(),
				StatusCode: cw.status,
			})
			if err != nil {
				logger.ErrorContext(ctx, "failed to save idempotency record",
					"path", r.URL.Path, "error", err)
			}
		})
	}
}

func replay(logger *slog.Logger, w http.ResponseWriter, r *http.Request, rec *storage.IdempotencyRecord) {
	if rec.Method != r.Method || rec.Path != r.URL.Path {
		logger.WarnContext(r.Context(), "idempotency key reused for another request",
			"path", r.URL.Path, "original_path", rec.Path)
		handlers.SendError(logger, w, http.StatusConflict, api.CodeConflict,
			"idempotency key was already used for another request")
		return
	}

	logger.DebugContext(r.Context(), "replaying stored response", "path", r.URL.Path, "status", rec.StatusCode)

	w.Header().Set(ReplayedHeader, "true")
	if len(rec.Body) > 0 {
		w.Header().Set("Content-Type", "application/json")
	}
	w.WriteHeader(rec.StatusCode)
	_, _ = w.Write(rec.Body)
}

func isMutation(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}

// captureWriter копирует тело ответа для сохранения
type captureWriter struct {
	http.ResponseWriter
	body        bytes.Buffer
	status      int
	wroteHeader bool
}

func (cw *captureWriter) WriteHeader(code int) {
	if !cw.wroteHeader {
		cw.status = code
		cw.wroteHeader = true
	}
	cw.ResponseWriter.WriteHeader(code)
}

func (cw *captureWriter) Write(b []byte) (int, error) {
	cw.wroteHeader = true
	cw.body.Write(b)
	return cw.ResponseWriter.Write(b)
}

func (cw *captureWriter) Unwrap() http.ResponseWriter {
	return cw.ResponseWriter
}
