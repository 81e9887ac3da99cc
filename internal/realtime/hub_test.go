package realtime

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/troovstudio/troov-backend/internal/platform/logger"
)

func recvMessage(t *testing.T, ch <-chan SSEMessage, timeout time.Duration) SSEMessage {
	t.Helper()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(timeout):
		t.Fatalf("timed out waiting for SSE message")
	}
	return SSEMessage{}
}

func TestSSEHubOrderingAndReconnect(t *testing.T) {
	hub := NewSSEHub(logger.Nop())
	channel := ProjectChannel(uuid.New())

	clientA := hub.NewSSEClient(uuid.New())
	hub.AddChannel(clientA, channel)

	hub.Broadcast(SSEMessage{Channel: channel, Event: SSEEventSectionSaved, Data: map[string]any{"seq": 1}})
	hub.Broadcast(SSEMessage{Channel: channel, Event: SSEEventCompletionUpdated, Data: map[string]any{"seq": 2}})

	if got := recvMessage(t, clientA.Outbound, time.Second); got.Event != SSEEventSectionSaved {
		t.Fatalf("first event: want=%s got=%s", SSEEventSectionSaved, got.Event)
	}
	if got := recvMessage(t, clientA.Outbound, time.Second); got.Event != SSEEventCompletionUpdated {
		t.Fatalf("second event: want=%s got=%s", SSEEventCompletionUpdated, got.Event)
	}

	hub.CloseClient(clientA)
	hub.CloseClient(clientA)
	if n := hub.Subscribers(channel); n != 0 {
		t.Fatalf("subscribers after close: want=0 got=%d", n)
	}

	clientB := hub.NewSSEClient(uuid.New())
	hub.AddChannel(clientB, channel)
	hub.Broadcast(SSEMessage{Channel: channel, Event: SSEEventCompletionUpdated})
	if got := recvMessage(t, clientB.Outbound, time.Second); got.Event != SSEEventCompletionUpdated {
		t.Fatalf("reconnect event: want=%s got=%s", SSEEventCompletionUpdated, got.Event)
	}
}

func TestSSEHubChannelsAreIsolated(t *testing.T) {
	hub := NewSSEHub(logger.Nop())
	userID := uuid.New()
	client := hub.NewSSEClient(userID)
	hub.AddChannel(client, UserChannel(userID))
	hub.AddChannel(client, "  ")

	hub.Broadcast(SSEMessage{Channel: UserChannel(uuid.New()), Event: SSEEventNotificationCreated})
	hub.Broadcast(SSEMessage{Event: SSEEventNotificationCreated})
	select {
	case msg := <-client.Outbound:
		t.Fatalf("unexpected delivery: %+v", msg)
	default:
	}

	hub.RemoveChannel(client, UserChannel(userID))
	if hub.Subscribers(UserChannel(userID)) != 0 {
		t.Fatalf("channel should be empty after RemoveChannel")
	}
}

func TestSSEHubBroadcastDoesNotBlockOnFullBuffer(t *testing.T) {
	hub := NewSSEHub(logger.Nop())
	client := hub.NewSSEClient(uuid.New())
	hub.AddChannel(client, "c")

	done := make(chan struct{})
	go func() {
		for i := 0; i < outboundBuffer*3; i++ {
			hub.Broadcast(SSEMessage{Channel: "c", Event: SSEEventCompletionUpdated})
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("broadcast blocked on a full client buffer")
	}
	if len(client.Outbound) != outboundBuffer {
		t.Fatalf("buffered: want=%d got=%d", outboundBuffer, len(client.Outbound))
	}
}

func TestSSEHubServeHTTPWritesEvents(t *testing.T) {
	hub := NewSSEHub(logger.Nop())
	client := hub.NewSSEClient(uuid.New())
	hub.AddChannel(client, "c")
	hub.Broadcast(SSEMessage{Channel: "c", Event: SSEEventCompletionUpdated, Data: map[string]int{"percentage": 38}})

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	req := httptest.NewRequest(http.MethodGet, "/events", nil).WithContext(ctx)
	rec := httptest.NewRecorder()
	hub.ServeHTTP(rec, req, client)

	body := rec.Body.String()
	if rec.Header().Get("Content-Type") != "text/event-stream" {
		t.Fatalf("content type: got=%q", rec.Header().Get("Content-Type"))
	}
	if !strings.Contains(body, "event: completion_updated") || !strings.Contains(body, `"percentage":38`) {
		t.Fatalf("unexpected stream body: %q", body)
	}
}
