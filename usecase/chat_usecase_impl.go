package usecase

import (
	"context"
	"strings"

	"github.com/shuchit-srx/stoory-backend-sub003/apperror"
	"github.com/shuchit-srx/stoory-backend-sub003/dto"
	"github.com/shuchit-srx/stoory-backend-sub003/dto/res"
	"github.com/shuchit-srx/stoory-backend-sub003/entity"
	"github.com/shuchit-srx/stoory-backend-sub003/enum"
	"github.com/shuchit-srx/stoory-backend-sub003/metrics"
	"github.com/shuchit-srx/stoory-backend-sub003/repository"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type ChatUsecaseImpl struct {
	Rooms     *repository.ChatRoomRepository
	Messages  *repository.MessageRepository
	Access    AccessUsecase
	Directory EngagementDirectory
	Ledger    PaymentLedger
	Notifier  *Notifier
	*logrus.Logger
	*gorm.DB
}

func NewChatUsecase(
	rooms *repository.ChatRoomRepository,
	messages *repository.MessageRepository,
	access AccessUsecase,
	directory EngagementDirectory,
	ledger PaymentLedger,
	notifier *Notifier,
	logger *logrus.Logger,
	DB *gorm.DB,
) *ChatUsecaseImpl {
	return &ChatUsecaseImpl{
		Rooms:     rooms,
		Messages:  messages,
		Access:    access,
		Directory: directory,
		Ledger:    ledger,
		Notifier:  notifier,
		Logger:    logger,
		DB:        DB,
	}
}

// CreateRoom returns the engagement's room, creating it when the engagement
// is paid for. Concurrent callers all get the same row.
func (uc *ChatUsecaseImpl) CreateRoom(ctx context.Context, engagementID string) (*entity.ChatRoom, error) {
	engagementID = strings.TrimSpace(engagementID)
	if engagementID == "" {
		return nil, apperror.Validation("engagementId is required")
	}
	log := uc.Logger.WithField("engagementId", engagementID)

	verified, err := uc.Ledger.IsPaymentVerified(ctx, engagementID)
	if err != nil {
		log.WithError(err).Error("Failed to check payment verification")
		return nil, apperror.Downstream(err, "check payment of engagement %s", engagementID)
	}
	if !verified {
		return nil, apperror.PaymentNotVerified("payment for engagement %s is not verified", engagementID)
	}

	existing, err := lookupRoom(ctx, uc.Rooms, uc.DB, engagementID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	room := &entity.ChatRoom{
		EngagementID:    engagementID,
		Status:          enum.RoomStatusActive,
		SequenceCounter: 0,
	}
	created, err := uc.Rooms.InsertIfAbsent(ctx, uc.DB, room)
	if err != nil {
		log.WithError(err).Error("Failed to create chat room")
		return nil, apperror.Downstream(err, "create room of engagement %s", engagementID)
	}
	if created {
		metrics.RoomsCreated.Inc()
		log.WithField("roomId", room.ID).Info("Chat room created")
		return room, nil
	}

	// Lost the race: the other writer's row is the room.
	metrics.RoomCreateRaces.Inc()
	winner, err := lookupRoom(ctx, uc.Rooms, uc.DB, engagementID)
	if err != nil {
		return nil, err
	}
	if winner == nil {
		return nil, apperror.New(apperror.KindDownstream, "room of engagement %s missing after insert conflict", engagementID)
	}
	log.WithField("roomId", winner.ID).Debug("Chat room created concurrently, returning existing room")
	return winner, nil
}

func (uc *ChatUsecaseImpl) GetRoom(ctx context.Context, userID, engagementID string) (*entity.ChatRoom, error) {
	if _, err := uc.Access.RequireAccess(ctx, userID, engagementID); err != nil {
		return nil, err
	}
	room, err := lookupRoom(ctx, uc.Rooms, uc.DB, engagementID)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, apperror.NotFound("no chat room for engagement %s", engagementID)
	}
	return room, nil
}

// CloseRoom is irreversible. Closing a closed room returns it unchanged and
// notifies nobody.
func (uc *ChatUsecaseImpl) CloseRoom(ctx context.Context, engagementID, closedBy string) (*entity.ChatRoom, error) {
	participants, err := uc.Access.RequireAccess(ctx, closedBy, engagementID)
	if err != nil {
		return nil, err
	}

	room, err := lookupRoom(ctx, uc.Rooms, uc.DB, engagementID)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, apperror.NotFound("no chat room for engagement %s", engagementID)
	}

	closed, err := uc.Rooms.Close(ctx, uc.DB, room.ID)
	if err != nil {
		uc.Logger.WithError(err).WithField("roomId", room.ID).Error("Failed to close chat room")
		return nil, apperror.Downstream(err, "close room %s", room.ID)
	}
	room.Status = enum.RoomStatusClosed
	if !closed {
		return room, nil
	}

	metrics.RoomsClosed.Inc()
	uc.Logger.WithFields(logrus.Fields{
		"roomId":       room.ID,
		"engagementId": engagementID,
		"closedBy":     closedBy,
	}).Info("Chat room closed")

	recipientID, _ := participants.Counterpart(closedBy)
	uc.Notifier.RoomClosed(ctx, engagementID, closedBy, recipientID)
	return room, nil
}

// GetUserRooms lists the user's rooms with their newest message and unread
// count. It costs four queries however many rooms the user has.
func (uc *ChatUsecaseImpl) GetUserRooms(ctx context.Context, userID string) ([]res.RoomSummary, error) {
	summaries := make([]res.RoomSummary, 0)
	if userID == "" {
		return summaries, nil
	}

	engagements, err := uc.Directory.ListUserEngagements(ctx, userID)
	if err != nil {
		uc.Logger.WithError(err).WithField("userId", userID).Error("Failed to list user engagements")
		return nil, apperror.Downstream(err, "list engagements of %s", userID)
	}
	if len(engagements) == 0 {
		return summaries, nil
	}

	byEngagement := make(map[string]dto.Participants, len(engagements))
	engagementIDs := make([]string, 0, len(engagements))
	for _, engagement := range engagements {
		byEngagement[engagement.EngagementID] = engagement
		engagementIDs = append(engagementIDs, engagement.EngagementID)
	}

	rooms, err := uc.Rooms.FindByEngagementIDs(ctx, uc.DB, engagementIDs)
	if err != nil {
		return nil, apperror.Downstream(err, "find rooms of %s", userID)
	}
	if len(rooms) == 0 {
		return summaries, nil
	}

	roomIDs := make([]string, 0, len(rooms))
	for _, room := range rooms {
		roomIDs = append(roomIDs, room.ID)
	}

	latest, err := uc.Messages.FindLatestByRoomIDs(ctx, uc.DB, roomIDs)
	if err != nil {
		return nil, apperror.Downstream(err, "find latest messages of %s", userID)
	}
	latestByRoom := make(map[string]entity.Message, len(latest))
	for _, msg := range latest {
		latestByRoom[msg.RoomID] = msg
	}

	unread, err := uc.Messages.CountUnreadByRoomIDs(ctx, uc.DB, roomIDs, userID)
	if err != nil {
		return nil, apperror.Downstream(err, "count unread messages of %s", userID)
	}

	for _, room := range rooms {
		counterpartID, _ := byEngagement[room.EngagementID].Counterpart(userID)
		summary := res.RoomSummary{
			RoomResponse:  res.NewRoomResponse(room),
			CounterpartId: counterpartID,
			UnreadCount:   unread[room.ID],
		}
		if msg, ok := latestByRoom[room.ID]; ok {
			lastMessage := res.NewMessageResponse(msg)
			summary.LastMessage = &lastMessage
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}
