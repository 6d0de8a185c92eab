package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

type recordingSubscriber struct {
	userIDs []string
}

func (s *recordingSubscriber) Serve(w http.ResponseWriter, _ *http.Request, userID string) {
	s.userIDs = append(s.userIDs, userID)
	w.WriteHeader(http.StatusSwitchingProtocols)
}

func TestRealtimeHandler_Subscribe(t *testing.T) {
	sub := &recordingSubscriber{}
	h := NewRealtimeHandler(testLogger(), sub)

	w := serve(h.Subscribe, newRequest(t, http.MethodGet, "/realtime/v1", "user-1", nil))
	assert.Equal(t, http.StatusSwitchingProtocols, w.Code)
	assert.Equal(t, []string{"user-1"}, sub.userIDs)

	w = serve(h.Subscribe, newRequest(t, http.MethodGet, "/realtime/v1", "", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Len(t, sub.userIDs, 1, "anonymous requests never reach the hub")
}
