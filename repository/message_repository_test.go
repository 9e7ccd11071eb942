package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shuchit-srx/stoory-backend-sub003/entity"
	"github.com/shuchit-srx/stoory-backend-sub003/enum"
	"github.com/shuchit-srx/stoory-backend-sub003/internal/testdb"
	"github.com/shuchit-srx/stoory-backend-sub003/repository"
	"gorm.io/gorm"
)

func TestMessageSequenceIsUniquePerRoom(t *testing.T) {
	db := testdb.Open(t)
	messages := repository.NewMessageRepository()
	room := testdb.Room(t, db, "eng-1", enum.RoomStatusActive)
	testdb.Message(t, db, room, "inf-1", 1, "hello")

	dup := &entity.Message{RoomID: room.ID, SenderID: "brand-1", Content: "again", SequenceNumber: 1, Status: enum.MessageStatusSent}
	err := messages.Save(context.Background(), db, dup)
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Fatalf("err = %v, want ErrDuplicatedKey", err)
	}
}

func TestFindPageByRoomID(t *testing.T) {
	db := testdb.Open(t)
	messages := repository.NewMessageRepository()
	ctx := context.Background()
	room := testdb.Room(t, db, "eng-1", enum.RoomStatusActive)
	for seq := int64(5); seq >= 1; seq-- {
		testdb.Message(t, db, room, "inf-1", seq, "m")
	}

	page, err := messages.FindPageByRoomID(ctx, db, room.ID, 2, 1)
	if err != nil {
		t.Fatalf("page: %v", err)
	}
	if len(page) != 2 || page[0].SequenceNumber != 2 || page[1].SequenceNumber != 3 {
		t.Fatalf("page = %+v, want sequences 2,3", page)
	}

	total, err := messages.CountByRoomID(ctx, db, room.ID)
	if err != nil || total != 5 {
		t.Fatalf("total = %d err = %v, want 5", total, err)
	}
}

func TestFindLatestAndUnread(t *testing.T) {
	db := testdb.Open(t)
	messages := repository.NewMessageRepository()
	receipts := repository.NewReadReceiptRepository()
	ctx := context.Background()

	roomA := testdb.Room(t, db, "eng-a", enum.RoomStatusActive)
	roomB := testdb.Room(t, db, "eng-b", enum.RoomStatusActive)
	empty := testdb.Room(t, db, "eng-c", enum.RoomStatusActive)

	a1 := testdb.Message(t, db, roomA, "brand-1", 1, "a1")
	testdb.Message(t, db, roomA, "brand-1", 2, "a2")
	testdb.Message(t, db, roomA, "inf-1", 3, "a3")
	testdb.Message(t, db, roomB, "brand-2", 1, "b1")

	if _, err := receipts.Upsert(ctx, db, a1.ID, "inf-1", time.Now()); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	latest, err := messages.FindLatestByRoomIDs(ctx, db, []string{roomA.ID, roomB.ID, empty.ID})
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	byRoom := map[string]entity.Message{}
	for _, m := range latest {
		byRoom[m.RoomID] = m
	}
	if len(byRoom) != 2 || byRoom[roomA.ID].Content != "a3" || byRoom[roomB.ID].Content != "b1" {
		t.Fatalf("latest = %+v", latest)
	}

	unread, err := messages.CountUnreadByRoomIDs(ctx, db, []string{roomA.ID, roomB.ID, empty.ID}, "inf-1")
	if err != nil {
		t.Fatalf("unread: %v", err)
	}
	// a1 is read, a3 is the reader's own message.
	if unread[roomA.ID] != 1 || unread[roomB.ID] != 1 || unread[empty.ID] != 0 {
		t.Fatalf("unread = %v", unread)
	}
}

func TestMarkDeliveredNeverDowngrades(t *testing.T) {
	db := testdb.Open(t)
	messages := repository.NewMessageRepository()
	ctx := context.Background()
	room := testdb.Room(t, db, "eng-1", enum.RoomStatusActive)
	msg := testdb.Message(t, db, room, "inf-1", 1, "hello")

	updated, err := messages.MarkDelivered(ctx, db, msg.ID)
	if err != nil || !updated {
		t.Fatalf("first: updated=%v err=%v", updated, err)
	}
	updated, err = messages.MarkDelivered(ctx, db, msg.ID)
	if err != nil || updated {
		t.Fatalf("already delivered: updated=%v err=%v", updated, err)
	}

	if err := messages.UpdateStatus(ctx, db, msg.ID, enum.MessageStatusRead); err != nil {
		t.Fatalf("update status: %v", err)
	}
	updated, err = messages.MarkDelivered(ctx, db, msg.ID)
	if err != nil || updated {
		t.Fatalf("read message: updated=%v err=%v", updated, err)
	}

	stored, err := messages.FindByIDWithRoom(ctx, db, msg.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if stored.Status != enum.MessageStatusRead {
		t.Fatalf("status = %s, want READ", stored.Status)
	}
	if stored.Room.EngagementID != "eng-1" {
		t.Fatalf("room not preloaded: %+v", stored.Room)
	}
}
