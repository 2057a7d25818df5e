package bus

import (
	"errors"
	"testing"
)

func TestBasicPublishSubscribe(t *testing.T) {
	b := New()
	var got Event
	_, err := b.Subscribe("agent.tick", func(e Event) error {
		got = e
		return nil
	})
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	if err = b.Publish(NewEvent("agent.tick", "tester", 123)); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if got == nil || got.Data() != 123 || got.Source() != "tester" {
		t.Fatalf("handler not called with event: %#v", got)
	}
}

func TestPublishIgnoresOtherTypes(t *testing.T) {
	b := New()
	calls := 0
	_, _ = b.Subscribe("a", func(Event) error { calls++; return nil })
	_ = b.Publish(NewEvent("b", "src", nil))
	if calls != 0 {
		t.Fatalf("expected no calls, got %d", calls)
	}
}

func TestPublishJoinsHandlerErrors(t *testing.T) {
	b := New()
	e1 := errors.New("first")
	e2 := errors.New("second")
	_, _ = b.Subscribe("x", func(Event) error { return e1 })
	_, _ = b.Subscribe("x", func(Event) error { return e2 })
	err := b.Publish(NewEvent("x", "src", nil))
	if !errors.Is(err, e1) || !errors.Is(err, e2) {
		t.Fatalf("expected joined error, got %v", err)
	}
}

func TestUnsubscribe(t *testing.T) {
	b := New()
	calls := 0
	sub, _ := b.Subscribe("x", func(Event) error { calls++; return nil })
	if b.Subscribers("x") != 1 {
		t.Fatalf("expected one subscriber")
	}
	if err := b.Unsubscribe(sub); err != nil {
		t.Fatalf("unsubscribe: %v", err)
	}
	if err := sub.Cancel(); err != nil {
		t.Fatalf("second cancel: %v", err)
	}
	_ = b.Publish(NewEvent("x", "src", nil))
	if calls != 0 || sub.IsActive() || b.Subscribers("x") != 0 {
		t.Fatalf("subscription still active: calls=%d", calls)
	}
	if err := b.Unsubscribe(nil); err != nil {
		t.Fatalf("nil unsubscribe: %v", err)
	}
}
