package hub

import (
	"encoding/json"
	"testing"
)

func TestBroadcastReachesTopicOnly(t *testing.T) {
	h := New()
	home := make(Client, 1)
	other := make(Client, 1)
	h.Subscribe(HouseholdTopic(1), home)
	h.Subscribe(HouseholdTopic(2), other)

	n, err := h.Broadcast(HouseholdTopic(1), Event{Type: GameCreated, Payload: map[string]string{"id": "13"}})
	if err != nil {
		t.Fatalf("Broadcast() error = %v", err)
	}
	if n != 1 {
		t.Errorf("delivered = %d, want 1", n)
	}

	select {
	case msg := <-home:
		var ev struct {
			Type    string            `json:"type"`
			Payload map[string]string `json:"payload"`
		}
		if err := json.Unmarshal(msg, &ev); err != nil {
			t.Fatal(err)
		}
		if ev.Type != GameCreated || ev.Payload["id"] != "13" {
			t.Errorf("event = %+v", ev)
		}
	default:
		t.Fatal("subscriber did not receive the event")
	}

	select {
	case <-other:
		t.Fatal("event leaked to another topic")
	default:
	}
}

func TestFullClientIsSkipped(t *testing.T) {
	h := New()
	slow := make(Client)
	h.Subscribe(UserTopic(7), slow)

	n, err := h.Broadcast(UserTopic(7), Event{Type: GameDeleted})
	if err != nil || n != 0 {
		t.Fatalf("Broadcast() = %d, %v", n, err)
	}
}

func TestUnsubscribeClosesClient(t *testing.T) {
	h := New()
	c := make(Client, 1)
	h.Subscribe(AdminTopic, c)
	h.Unsubscribe(AdminTopic, c)

	if _, ok := <-c; ok {
		t.Error("client channel still open")
	}
	if h.Subscribers(AdminTopic) != 0 {
		t.Error("topic not cleaned up")
	}
	// A second unsubscribe must not close the channel again.
	h.Unsubscribe(AdminTopic, c)
}

func TestBroadcastUnknownTopic(t *testing.T) {
	if n, err := New().Broadcast("nobody", Event{Type: GameUpdated}); n != 0 || err != nil {
		t.Errorf("Broadcast() = %d, %v", n, err)
	}
}
