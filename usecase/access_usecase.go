package usecase

import (
	"context"

	"github.com/shuchit-srx/stoory-backend-sub003/dto"
)

type AccessUsecase interface {
	ValidateAccess(ctx context.Context, userID, engagementID string) (bool, error)
	RequireAccess(ctx context.Context, userID, engagementID string) (dto.Participants, error)
}
