// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package live

import (
	"encoding/json"
	"testing"
)

func TestSubscribeUnsubscribe(t *testing.T) {
	hub := NewHub()

	if hub.Subscribers("e1") != 0 {
		t.Errorf("Expected 0 subscribers, got %d", hub.Subscribers("e1"))
	}

	c1 := NewClient(nil)
	c2 := NewClient(nil)

	hub.Subscribe("e1", c1)
	hub.Subscribe("e1", c2)
	hub.Subscribe("e2", c1)

	if hub.Subscribers("e1") != 2 {
		t.Errorf("Expected 2 subscribers for e1, got %d", hub.Subscribers("e1"))
	}
	if hub.Subscribers("e2") != 1 {
		t.Errorf("Expected 1 subscriber for e2, got %d", hub.Subscribers("e2"))
	}

	hub.Unsubscribe("e1", c1)
	if hub.Subscribers("e1") != 1 {
		t.Errorf("Expected 1 subscriber after unsubscribe, got %d", hub.Subscribers("e1"))
	}

	// Unsubscribing twice, or from the wrong room, is harmless
	hub.Unsubscribe("e1", c1)
	hub.Unsubscribe("e3", c1)

	hub.Unsubscribe("e1", c2)
	if hub.Subscribers("e1") != 0 {
		t.Errorf("Expected 0 subscribers after both left, got %d", hub.Subscribers("e1"))
	}
}

func TestBroadcastReachesRoomOnly(t *testing.T) {
	hub := NewHub()

	watcher := NewClient(nil)
	bystander := NewClient(nil)
	hub.Subscribe("e1", watcher)
	hub.Subscribe("e2", bystander)

	hub.Broadcast("e1", map[string]int{"votes": 3})

	select {
	case data := <-watcher.send:
		var payload map[string]int
		if err := json.Unmarshal(data, &payload); err != nil {
			t.Fatalf("Failed to decode broadcast: %v", err)
		}
		if payload["votes"] != 3 {
			t.Errorf("Expected votes=3, got %d", payload["votes"])
		}
	default:
		t.Fatal("Expected watcher to receive broadcast")
	}

	select {
	case <-bystander.send:
		t.Fatal("Bystander in another room received broadcast")
	default:
	}
}

func TestBroadcastDropsWhenBufferFull(t *testing.T) {
	hub := NewHub()

	c := NewClient(nil)
	hub.Subscribe("e1", c)

	// Fill the buffer past capacity; extra messages are dropped, not
	// blocked on
	for i := 0; i < sendBufferSize+5; i++ {
		hub.Broadcast("e1", map[string]int{"seq": i})
	}

	if len(c.send) != sendBufferSize {
		t.Errorf("Expected full buffer of %d, got %d", sendBufferSize, len(c.send))
	}
}

func TestEnqueueAfterCloseIsNoop(t *testing.T) {
	hub := NewHub()

	c := NewClient(nil)
	hub.Subscribe("e1", c)

	// Close with no connection: only flips the flag
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()

	hub.Broadcast("e1", map[string]int{"votes": 1})

	if len(c.send) != 0 {
		t.Error("Expected no message enqueued after close")
	}
}
