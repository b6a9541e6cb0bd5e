package message_test

import (
	"errors"
	"testing"

	"github.com/dshills/pictor/internal/message"
)

func TestBusPublishDeliversToSubscriber(t *testing.T) {
	bus := message.NewBus()

	var got []message.Message
	bus.SubscribeFunc(func(msg message.Message) {
		got = append(got, msg)
	})

	bus.Publish(message.Info("loaded image.jpg"))

	if len(got) != 1 {
		t.Fatalf("expected 1 delivery, got %d", len(got))
	}
	if got[0].Text != "loaded image.jpg" || got[0].Kind != message.KindInfo {
		t.Errorf("unexpected message: %+v", got[0])
	}
}

func TestBusDeliveryOrder(t *testing.T) {
	bus := message.NewBus()

	var order []string
	bus.SubscribeFunc(func(message.Message) { order = append(order, "first") })
	bus.SubscribeFunc(func(message.Message) { order = append(order, "second") })
	bus.SubscribeFunc(func(message.Message) { order = append(order, "third") })

	bus.Publish(message.Info("x"))

	want := []string{"first", "second", "third"}
	if len(order) != len(want) {
		t.Fatalf("expected %d deliveries, got %d", len(want), len(order))
	}
	for i, name := range want {
		if order[i] != name {
			t.Errorf("delivery %d: expected %q, got %q", i, name, order[i])
		}
	}
}

func TestBusCancelledSubscriptionSkipped(t *testing.T) {
	bus := message.NewBus()

	count := 0
	sub := bus.SubscribeFunc(func(message.Message) { count++ })

	bus.Publish(message.Info("one"))
	sub.Cancel()
	bus.Publish(message.Info("two"))

	if count != 1 {
		t.Errorf("expected 1 delivery after cancel, got %d", count)
	}
	if sub.IsActive() {
		t.Error("expected subscription to be inactive after cancel")
	}
}

func TestBusUnsubscribe(t *testing.T) {
	bus := message.NewBus()

	count := 0
	sub := bus.SubscribeFunc(func(message.Message) { count++ })

	if err := bus.Unsubscribe(sub); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	bus.Publish(message.Error("gone"))

	if count != 0 {
		t.Errorf("expected 0 deliveries after unsubscribe, got %d", count)
	}

	if err := bus.Unsubscribe(sub); !errors.Is(err, message.ErrSubscriptionNotFound) {
		t.Errorf("expected ErrSubscriptionNotFound, got %v", err)
	}
}

func TestBusUnsubscribeNil(t *testing.T) {
	bus := message.NewBus()

	if err := bus.Unsubscribe(nil); !errors.Is(err, message.ErrInvalidSubscription) {
		t.Errorf("expected ErrInvalidSubscription, got %v", err)
	}
}

func TestBusStats(t *testing.T) {
	bus := message.NewBus()

	bus.SubscribeFunc(func(message.Message) {})
	sub := bus.SubscribeFunc(func(message.Message) {})
	sub.Cancel()

	bus.Publish(message.Info("a"))
	bus.Publish(message.Warning("b"))

	stats := bus.Stats()
	if stats.Published != 2 {
		t.Errorf("expected 2 published, got %d", stats.Published)
	}
	if stats.Delivered != 2 {
		t.Errorf("expected 2 delivered, got %d", stats.Delivered)
	}
	if stats.Subscribers != 1 {
		t.Errorf("expected 1 active subscriber, got %d", stats.Subscribers)
	}
}

func TestKindString(t *testing.T) {
	tests := []struct {
		kind message.Kind
		want string
	}{
		{message.KindInfo, "info"},
		{message.KindWarning, "warning"},
		{message.KindError, "error"},
		{message.Kind(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestMessageConstructors(t *testing.T) {
	if msg := message.Error("boom"); !msg.IsError() {
		t.Error("expected Error() message to report IsError")
	}
	if msg := message.Info("fine"); msg.IsError() {
		t.Error("expected Info() message to not report IsError")
	}
}
