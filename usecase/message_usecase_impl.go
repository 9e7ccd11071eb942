package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/shuchit-srx/stoory-backend-sub003/apperror"
	"github.com/shuchit-srx/stoory-backend-sub003/dto/res"
	"github.com/shuchit-srx/stoory-backend-sub003/entity"
	"github.com/shuchit-srx/stoory-backend-sub003/enum"
	"github.com/shuchit-srx/stoory-backend-sub003/metrics"
	"github.com/shuchit-srx/stoory-backend-sub003/repository"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// maxSequenceAttempts bounds retries after a (room_id, sequence_number)
// conflict, which only a row written outside this service can cause.
const maxSequenceAttempts = 3

type MessageUsecaseImpl struct {
	Rooms    *repository.ChatRoomRepository
	Messages *repository.MessageRepository
	Access   AccessUsecase
	Filter   ContentFilter
	Notifier *Notifier
	*logrus.Logger
	*gorm.DB
}

func NewMessageUsecase(
	rooms *repository.ChatRoomRepository,
	messages *repository.MessageRepository,
	access AccessUsecase,
	filter ContentFilter,
	notifier *Notifier,
	logger *logrus.Logger,
	DB *gorm.DB,
) *MessageUsecaseImpl {
	return &MessageUsecaseImpl{
		Rooms:    rooms,
		Messages: messages,
		Access:   access,
		Filter:   filter,
		Notifier: notifier,
		Logger:   logger,
		DB:       DB,
	}
}

func (uc *MessageUsecaseImpl) SendMessage(ctx context.Context, senderID, engagementID, content string, attachmentRef *string) (*entity.Message, error) {
	room, err := lookupRoom(ctx, uc.Rooms, uc.DB, engagementID)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, apperror.NotFound("no chat room for engagement %s", engagementID)
	}
	if !room.Status.IsActive() {
		return nil, apperror.InvalidState("chat room of engagement %s is closed", engagementID)
	}

	participants, err := uc.Access.RequireAccess(ctx, senderID, engagementID)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(content) == "" {
		return nil, apperror.Validation("message content must not be empty")
	}
	if attachmentRef != nil && strings.TrimSpace(*attachmentRef) == "" {
		attachmentRef = nil
	}
	content = uc.Filter.Redact(content)

	message, err := uc.persist(ctx, room.ID, senderID, content, attachmentRef)
	if err != nil {
		return nil, err
	}

	metrics.MessagesSent.Inc()
	uc.Logger.WithFields(logrus.Fields{
		"roomId":         room.ID,
		"messageId":      message.ID,
		"sequenceNumber": message.SequenceNumber,
	}).Info("Message sent")

	recipientID, _ := participants.Counterpart(senderID)
	uc.Notifier.NewMessage(ctx, engagementID, senderID, recipientID, content)
	return message, nil
}

// persist assigns the next sequence number and stores the message in one
// transaction; a failure leaves neither the counter nor the message behind.
func (uc *MessageUsecaseImpl) persist(ctx context.Context, roomID, senderID, content string, attachmentRef *string) (*entity.Message, error) {
	var message *entity.Message
	for attempt := 1; ; attempt++ {
		err := uc.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			sequence, err := uc.Rooms.NextSequence(ctx, tx, roomID)
			if err != nil {
				return err
			}
			message = &entity.Message{
				RoomID:         roomID,
				SenderID:       senderID,
				Content:        content,
				AttachmentRef:  attachmentRef,
				SequenceNumber: sequence,
				Status:         enum.MessageStatusSent,
			}
			return uc.Messages.Save(ctx, tx, message)
		})
		switch {
		case err == nil:
			return message, nil
		case errors.Is(err, repository.ErrRoomNotActive):
			return nil, apperror.InvalidState("chat room %s is closed", roomID)
		case errors.Is(err, gorm.ErrDuplicatedKey) && attempt < maxSequenceAttempts:
			metrics.SequenceConflicts.Inc()
			uc.Logger.WithField("roomId", roomID).Warn("Sequence number already taken, retrying")
			continue
		}
		uc.Logger.WithError(err).WithField("roomId", roomID).Error("Failed to save message")
		return nil, apperror.Downstream(err, "save message in room %s", roomID)
	}
}

// GetHistory returns an empty page, not an error, for an engagement without
// a room.
func (uc *MessageUsecaseImpl) GetHistory(ctx context.Context, engagementID string, limit, offset int) (res.HistoryResponse, error) {
	limit, offset = ClampPage(limit, offset)
	history := res.HistoryResponse{
		Messages: make([]res.MessageResponse, 0),
		Limit:    limit,
		Offset:   offset,
	}

	room, err := lookupRoom(ctx, uc.Rooms, uc.DB, engagementID)
	if err != nil {
		return res.HistoryResponse{}, err
	}
	if room == nil {
		return history, nil
	}

	total, err := uc.Messages.CountByRoomID(ctx, uc.DB, room.ID)
	if err != nil {
		return res.HistoryResponse{}, apperror.Downstream(err, "count messages of room %s", room.ID)
	}
	messages, err := uc.Messages.FindPageByRoomID(ctx, uc.DB, room.ID, limit, offset)
	if err != nil {
		return res.HistoryResponse{}, apperror.Downstream(err, "find messages of room %s", room.ID)
	}

	history.Messages = res.NewMessageResponses(messages)
	history.Total = total
	history.HasMore = int64(offset+limit) < total
	return history, nil
}

func (uc *MessageUsecaseImpl) GetMessage(ctx context.Context, messageID string) (*entity.Message, error) {
	if messageID == "" {
		return nil, apperror.Validation("messageId is required")
	}
	message, err := uc.Messages.FindByIDWithRoom(ctx, uc.DB, messageID)
	if err != nil {
		return nil, apperror.Downstream(err, "find message %s", messageID)
	}
	return message, nil
}

// MarkDelivered never downgrades a READ message.
func (uc *MessageUsecaseImpl) MarkDelivered(ctx context.Context, messageID string) (bool, error) {
	updated, err := uc.Messages.MarkDelivered(ctx, uc.DB, messageID)
	if err != nil {
		return false, apperror.Downstream(err, "mark message %s delivered", messageID)
	}
	return updated, nil
}
