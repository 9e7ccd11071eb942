package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shuchit-srx/stoory-backend-sub003/dto"
	"github.com/shuchit-srx/stoory-backend-sub003/metrics"
)

func outcome(event, result string) float64 {
	return testutil.ToFloat64(metrics.Notifications.WithLabelValues(event, result))
}

func TestNotifierOutcomes(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(b *recordingBridge)
		outcome string
		calls   int
	}{
		{name: "sent", setup: func(*recordingBridge) {}, outcome: "sent", calls: 1},
		{name: "recipient present", setup: func(b *recordingBridge) { b.setPresent("brand-1", "eng-1") }, outcome: "suppressed", calls: 0},
		{name: "presence lookup fails", setup: func(b *recordingBridge) { b.presenceErr = errors.New("timeout") }, outcome: "sent", calls: 1},
		{name: "bridge fails", setup: func(b *recordingBridge) { b.sendErr = errors.New("down") }, outcome: "failed", calls: 1},
		{name: "bridge panics", setup: func(b *recordingBridge) { b.panicOnSend = true }, outcome: "failed", calls: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bridge := newRecordingBridge()
			tt.setup(bridge)
			notifier := NewNotifier(bridge, quietLogger(), time.Second)

			before := outcome(dto.NotificationNewMessage, tt.outcome)
			notifier.NewMessage(context.Background(), "eng-1", "inf-1", "brand-1", "Hello")
			notifier.Wait()

			if got := outcome(dto.NotificationNewMessage, tt.outcome) - before; got != 1 {
				t.Fatalf("%s outcomes increased by %v, want 1", tt.outcome, got)
			}
			if got := len(bridge.Calls()); got != tt.calls {
				t.Fatalf("bridge calls = %d, want %d", got, tt.calls)
			}
		})
	}
}

func TestNotifierOutlivesCanceledRequest(t *testing.T) {
	bridge := newRecordingBridge()
	notifier := NewNotifier(bridge, quietLogger(), time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	notifier.RoomClosed(ctx, "eng-1", "brand-1", "inf-1")
	notifier.Wait()

	calls := bridge.Calls()
	if len(calls) != 1 || calls[0].Event != "room_closed" {
		t.Fatalf("calls = %+v, want one room_closed", calls)
	}
}

func TestNotifierSkipsMissingRecipient(t *testing.T) {
	bridge := newRecordingBridge()
	notifier := NewNotifier(bridge, quietLogger(), time.Second)

	notifier.NewMessage(context.Background(), "eng-1", "inf-1", "", "Hello")
	notifier.Wait()
	if got := len(bridge.Calls()); got != 0 {
		t.Fatalf("calls = %d, want 0", got)
	}

	var nilNotifier *Notifier
	nilNotifier.NewMessage(context.Background(), "eng-1", "inf-1", "brand-1", "Hello")
}
