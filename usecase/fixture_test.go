package usecase

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/shuchit-srx/stoory-backend-sub003/apperror"
	"github.com/shuchit-srx/stoory-backend-sub003/enum"
	"github.com/shuchit-srx/stoory-backend-sub003/internal/testdb"
	"github.com/shuchit-srx/stoory-backend-sub003/repository"
	"github.com/shuchit-srx/stoory-backend-sub003/safety"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type bridgeCall struct {
	Event        string
	EngagementID string
	ActorID      string
	RecipientID  string
	Content      string
}

type recordingBridge struct {
	mu          sync.Mutex
	calls       []bridgeCall
	present     map[string]bool
	presenceErr error
	sendErr     error
	panicOnSend bool
}

func newRecordingBridge() *recordingBridge {
	return &recordingBridge{present: map[string]bool{}}
}

func (b *recordingBridge) setPresent(userID, engagementID string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.present[engagementID+"|"+userID] = true
}

func (b *recordingBridge) record(call bridgeCall) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.panicOnSend {
		panic("bridge exploded")
	}
	b.calls = append(b.calls, call)
	return b.sendErr
}

func (b *recordingBridge) NotifyNewMessage(_ context.Context, engagementID, senderID, recipientID, content string) error {
	return b.record(bridgeCall{Event: "new_message", EngagementID: engagementID, ActorID: senderID, RecipientID: recipientID, Content: content})
}

func (b *recordingBridge) NotifyRoomClosed(_ context.Context, engagementID, closedBy, recipientID string) error {
	return b.record(bridgeCall{Event: "room_closed", EngagementID: engagementID, ActorID: closedBy, RecipientID: recipientID})
}

func (b *recordingBridge) IsPresent(_ context.Context, userID, engagementID string) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.present[engagementID+"|"+userID], b.presenceErr
}

func (b *recordingBridge) Calls() []bridgeCall {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]bridgeCall(nil), b.calls...)
}

type fixture struct {
	db       *gorm.DB
	bridge   *recordingBridge
	notifier *Notifier
	access   *AccessUsecaseImpl
	chats    *ChatUsecaseImpl
	messages *MessageUsecaseImpl
	receipts *ReadReceiptUsecaseImpl
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testdb.Open(t)
	log := quietLogger()

	rooms := repository.NewChatRoomRepository()
	messages := repository.NewMessageRepository()
	receipts := repository.NewReadReceiptRepository()
	directory := repository.NewEngagementRepository(db)
	ledger := repository.NewPaymentRepository(db)

	bridge := newRecordingBridge()
	notifier := NewNotifier(bridge, log, time.Second)
	access := NewAccessUsecase(directory, log)

	f := &fixture{
		db:       db,
		bridge:   bridge,
		notifier: notifier,
		access:   access,
		chats:    NewChatUsecase(rooms, messages, access, directory, ledger, notifier, log, db),
		messages: NewMessageUsecase(rooms, messages, access, safety.NewFilter(), notifier, log, db),
		receipts: NewReadReceiptUsecase(receipts, messages, access, log, db),
	}
	t.Cleanup(notifier.Wait)
	return f
}

// paidEngagement seeds an engagement with a verified direct payment.
func (f *fixture) paidEngagement(t *testing.T, engagementID, influencerID, brandOwnerID string) {
	t.Helper()
	testdb.Engagement(t, f.db, engagementID, influencerID, brandOwnerID)
	testdb.DirectPayment(t, f.db, engagementID, enum.PaymentStatusVerified)
}

func requireKind(t *testing.T, err error, want apperror.Kind) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", want)
	}
	if got := apperror.KindOf(err); got != want {
		t.Fatalf("kind = %s (%v), want %s", got, err, want)
	}
	var appErr *apperror.Error
	if !errors.As(err, &appErr) {
		t.Fatalf("error %v is not an apperror", err)
	}
}
