package repository

import (
	"context"

	"github.com/shuchit-srx/stoory-backend-sub003/dto"
	"github.com/shuchit-srx/stoory-backend-sub003/entity"
	"gorm.io/gorm"
)

// EngagementRepository resolves engagement participants from the
// marketplace's application and campaign tables. It never writes to them.
type EngagementRepository struct {
	db *gorm.DB
}

func NewEngagementRepository(db *gorm.DB) *EngagementRepository {
	return &EngagementRepository{db: db}
}

func (repository *EngagementRepository) participants(ctx context.Context) *gorm.DB {
	return repository.db.WithContext(ctx).
		Model(&entity.Application{}).
		Select("t_application.id AS engagement_id, t_application.influencer_id AS influencer_id, t_campaign.brand_owner_id AS brand_owner_id").
		Joins("JOIN t_campaign ON t_campaign.id = t_application.campaign_id")
}

// ResolveParticipants returns gorm.ErrRecordNotFound for an unknown engagement.
func (repository *EngagementRepository) ResolveParticipants(ctx context.Context, engagementID string) (dto.Participants, error) {
	var rows []dto.Participants
	err := repository.participants(ctx).
		Where("t_application.id = ?", engagementID).
		Limit(1).
		Scan(&rows).Error
	if err != nil {
		return dto.Participants{}, err
	}
	if len(rows) == 0 {
		return dto.Participants{}, gorm.ErrRecordNotFound
	}
	return rows[0], nil
}

// ListUserEngagements returns every engagement where userID is either the
// influencer or the owner of the campaign's brand.
func (repository *EngagementRepository) ListUserEngagements(ctx context.Context, userID string) ([]dto.Participants, error) {
	var rows []dto.Participants
	err := repository.participants(ctx).
		Where("t_application.influencer_id = ? OR t_campaign.brand_owner_id = ?", userID, userID).
		Scan(&rows).Error
	return rows, err
}
