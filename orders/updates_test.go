package orders

import (
	"testing"
	"time"
)

func TestGetUpdatesChannelIsStable(t *testing.T) {
	a := getUpdatesChannel("topic-stable")
	b := getUpdatesChannel("topic-stable")
	if a != b {
		t.Fatal("same topic must return the same channel")
	}
}

func TestBroadcastReachesAdminAndOrderTopics(t *testing.T) {
	adminCh := getUpdatesChannel(adminFeedTopic)
	orderCh := getUpdatesChannel("order-xyz")

	// Drain anything earlier tests may have left behind.
	for len(adminCh) > 0 {
		<-adminCh
	}

	broadcastOrderUpdate("order-xyz", map[string]any{"type": "status_update"})

	for name, ch := range map[string]chan map[string]any{"admin": adminCh, "order": orderCh} {
		select {
		case update := <-ch:
			if update["type"] != "status_update" {
				t.Fatalf("%s channel got %v", name, update)
			}
		case <-time.After(time.Second):
			t.Fatalf("%s channel never received the update", name)
		}
	}
}

func TestBroadcastNeverBlocksOnFullChannel(t *testing.T) {
	ch := getUpdatesChannel("order-full")
	for i := 0; i < cap(ch); i++ {
		ch <- map[string]any{"n": i}
	}

	done := make(chan struct{})
	go func() {
		broadcastOrderUpdate("order-full", map[string]any{"type": "overflow"})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("broadcast blocked on a full channel")
	}
}
