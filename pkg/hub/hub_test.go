package hub

import (
	"testing"
	"time"
)

func TestNewHub(t *testing.T) {
	h := New("test")

	if h.ClientCount() != 0 {
		t.Errorf("expected 0 clients, got %d", h.ClientCount())
	}
	if h.IsRunning() {
		t.Error("hub should not be running before Run()")
	}
}

func TestHubRunSetsRunning(t *testing.T) {
	h := New("test")
	go h.Run()

	deadline := time.Now().Add(time.Second)
	for !h.IsRunning() {
		if time.Now().After(deadline) {
			t.Fatal("hub never reported running")
		}
		time.Sleep(time.Millisecond)
	}
}

func TestBroadcastWithoutClients(t *testing.T) {
	h := New("test")
	go h.Run()

	// No clients connected - broadcast must not block or panic
	h.Broadcast([]byte(`{"type":"test"}`))

	if err := h.BroadcastJSON(map[string]string{"type": "test"}); err != nil {
		t.Errorf("BroadcastJSON failed: %v", err)
	}
}

func TestBroadcastJSONRejectsUnmarshalable(t *testing.T) {
	h := New("test")

	if err := h.BroadcastJSON(make(chan int)); err == nil {
		t.Error("expected marshal error for channel value")
	}
}

func TestBroadcastChannelFullDropsMessage(t *testing.T) {
	// Hub not running, so the buffered channel fills up and further
	// broadcasts are dropped rather than blocking.
	h := New("test")
	for i := 0; i < 300; i++ {
		h.Broadcast([]byte("x"))
	}
}
