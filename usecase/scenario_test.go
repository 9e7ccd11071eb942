package usecase

import (
	"context"
	"testing"

	"github.com/shuchit-srx/stoory-backend-sub003/apperror"
	"github.com/shuchit-srx/stoory-backend-sub003/enum"
)

// An influencer and a brand owner talk through a paid engagement until the
// brand closes the room.
func TestEngagementConversation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.paidEngagement(t, "E1", "I1", "B1")

	room, err := f.chats.CreateRoom(ctx, "E1")
	if err != nil {
		t.Fatalf("createRoom: %v", err)
	}
	if room.Status != enum.RoomStatusActive || room.SequenceCounter != 0 {
		t.Fatalf("room = %+v, want ACTIVE with counter 0", room)
	}

	msg1, err := f.messages.SendMessage(ctx, "I1", "E1", "Hello", nil)
	if err != nil {
		t.Fatalf("sendMessage I1: %v", err)
	}
	if msg1.SequenceNumber != 1 || msg1.Status != enum.MessageStatusSent {
		t.Fatalf("msg1 = %+v, want sequence 1 SENT", msg1)
	}

	msg2, err := f.messages.SendMessage(ctx, "B1", "E1", "Hi", nil)
	if err != nil {
		t.Fatalf("sendMessage B1: %v", err)
	}
	if msg2.SequenceNumber != 2 {
		t.Fatalf("msg2 sequence = %d, want 2", msg2.SequenceNumber)
	}

	receipt, err := f.receipts.MarkRead(ctx, msg1.ID, "B1")
	if err != nil || receipt == nil {
		t.Fatalf("markRead B1: %+v, %v", receipt, err)
	}
	receipt, err = f.receipts.MarkRead(ctx, msg1.ID, "I1")
	if err != nil || receipt != nil {
		t.Fatalf("markRead I1 should be a no-op: %+v, %v", receipt, err)
	}

	history, err := f.messages.GetHistory(ctx, "E1", 20, 0)
	if err != nil {
		t.Fatalf("getHistory: %v", err)
	}
	if len(history.Messages) != 2 || history.Messages[0].MessageId != msg1.ID || history.Messages[1].MessageId != msg2.ID {
		t.Fatalf("history = %+v, want [msg1, msg2]", history.Messages)
	}
	if history.HasMore || history.Total != 2 {
		t.Fatalf("history total=%d hasMore=%v", history.Total, history.HasMore)
	}

	closed, err := f.chats.CloseRoom(ctx, "E1", "B1")
	if err != nil {
		t.Fatalf("closeRoom: %v", err)
	}
	if closed.ID != room.ID || closed.Status != enum.RoomStatusClosed {
		t.Fatalf("closed room = %+v", closed)
	}

	_, err = f.messages.SendMessage(ctx, "I1", "E1", "one more thing", nil)
	requireKind(t, err, apperror.KindInvalidState)
}
