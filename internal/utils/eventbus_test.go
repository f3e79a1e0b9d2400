package utils

import "testing"

func TestPublishDeliversToSubscriberChannel(t *testing.T) {
	bus := NewEventBus()

	bus.Publish("message_created", "payload-1")
	bus.Publish("message_created", "payload-2")

	ch := bus.SubscribeCh()
	for _, want := range []string{"payload-1", "payload-2"} {
		select {
		case ev := <-ch:
			if ev.Event != "message_created" || ev.Data != want {
				t.Fatalf("unexpected event %+v, want data %q", ev, want)
			}
		default:
			t.Fatalf("expected buffered event %q", want)
		}
	}
}

func TestPublishNeverBlocksWhenBufferFull(t *testing.T) {
	bus := NewEventBus()

	// Twice the buffer size; the overflow must be dropped, not block.
	for i := 0; i < 200; i++ {
		bus.Publish("noisy", i)
	}

	ch := bus.SubscribeCh()
	received := 0
	for {
		select {
		case <-ch:
			received++
		default:
			if received == 0 || received > 100 {
				t.Fatalf("expected between 1 and 100 buffered events, got %d", received)
			}
			return
		}
	}
}
