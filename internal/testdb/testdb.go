// Package testdb opens in-memory sqlite databases shaped like production
// and seeds the marketplace rows the messaging service reads.
package testdb

import (
	"testing"

	"github.com/shuchit-srx/stoory-backend-sub003/entity"
	"github.com/shuchit-srx/stoory-backend-sub003/enum"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// Open returns a migrated database on a single connection, so concurrent
// callers queue the way row locks make them queue on postgres.
func Open(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		NamingStrategy: entity.NamingStrategy,
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(entity.ReferenceModels()...); err != nil {
		t.Fatalf("migrate reference tables: %v", err)
	}
	if err := db.AutoMigrate(entity.MessagingModels()...); err != nil {
		t.Fatalf("migrate messaging tables: %v", err)
	}
	return db
}

func create(t testing.TB, db *gorm.DB, value any) {
	t.Helper()
	if err := db.Omit(clause.Associations).Create(value).Error; err != nil {
		t.Fatalf("seed %T: %v", value, err)
	}
}

// Engagement seeds an application of influencerID to a campaign owned by
// brandOwnerID. The application id is the engagement id.
func Engagement(t testing.TB, db *gorm.DB, engagementID, influencerID, brandOwnerID string) {
	t.Helper()
	campaign := &entity.Campaign{BrandOwnerID: brandOwnerID, Title: "Campaign of " + brandOwnerID}
	campaign.ID = "camp-" + engagementID
	create(t, db, campaign)

	application := &entity.Application{CampaignID: campaign.ID, InfluencerID: influencerID, Status: "ACCEPTED"}
	application.ID = engagementID
	create(t, db, application)
}

func DirectPayment(t testing.TB, db *gorm.DB, engagementID string, status enum.PaymentStatus) {
	t.Helper()
	applicationID := engagementID
	create(t, db, &entity.Payment{
		Type:          enum.PaymentTypeDirect,
		ApplicationID: &applicationID,
		Status:        status,
	})
}

// BulkPayment seeds one campaign payment with a line item per engagement.
func BulkPayment(t testing.TB, db *gorm.DB, status enum.PaymentStatus, engagementIDs ...string) {
	t.Helper()
	payment := &entity.Payment{Type: enum.PaymentTypeBulk, Status: status}
	create(t, db, payment)
	for _, engagementID := range engagementIDs {
		create(t, db, &entity.PaymentLineItem{PaymentID: payment.ID, ApplicationID: engagementID})
	}
}

func Room(t testing.TB, db *gorm.DB, engagementID string, status enum.RoomStatus) *entity.ChatRoom {
	t.Helper()
	room := &entity.ChatRoom{EngagementID: engagementID, Status: status}
	create(t, db, room)
	return room
}

func Message(t testing.TB, db *gorm.DB, room *entity.ChatRoom, senderID string, sequence int64, content string) *entity.Message {
	t.Helper()
	message := &entity.Message{
		RoomID:         room.ID,
		SenderID:       senderID,
		Content:        content,
		SequenceNumber: sequence,
		Status:         enum.MessageStatusSent,
	}
	create(t, db, message)
	if err := db.Model(&entity.ChatRoom{}).Where("id = ?", room.ID).
		Update("sequence_counter", gorm.Expr("CASE WHEN sequence_counter < ? THEN ? ELSE sequence_counter END", sequence, sequence)).Error; err != nil {
		t.Fatalf("bump room counter: %v", err)
	}
	return message
}
