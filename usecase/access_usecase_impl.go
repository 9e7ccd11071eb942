package usecase

import (
	"context"
	"errors"

	"github.com/shuchit-srx/stoory-backend-sub003/apperror"
	"github.com/shuchit-srx/stoory-backend-sub003/dto"
	"github.com/sirupsen/logrus"
)

type AccessUsecaseImpl struct {
	Directory EngagementDirectory
	*logrus.Logger
}

func NewAccessUsecase(directory EngagementDirectory, logger *logrus.Logger) *AccessUsecaseImpl {
	return &AccessUsecaseImpl{Directory: directory, Logger: logger}
}

// ValidateAccess is true iff userID is the engagement's influencer or brand
// owner. An unknown engagement grants nobody access.
func (uc *AccessUsecaseImpl) ValidateAccess(ctx context.Context, userID, engagementID string) (bool, error) {
	_, err := uc.RequireAccess(ctx, userID, engagementID)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, apperror.ErrAccessDenied):
		return false, nil
	}
	return false, err
}

// RequireAccess returns the participants when userID may act on the
// engagement and ACCESS_DENIED otherwise.
func (uc *AccessUsecaseImpl) RequireAccess(ctx context.Context, userID, engagementID string) (dto.Participants, error) {
	if userID == "" || engagementID == "" {
		return dto.Participants{}, apperror.AccessDenied("access to engagement denied")
	}

	participants, err := uc.Directory.ResolveParticipants(ctx, engagementID)
	if err != nil {
		err = apperror.Downstream(err, "resolve participants of %s", engagementID)
		if errors.Is(err, apperror.ErrNotFound) {
			return dto.Participants{}, apperror.AccessDenied("access to engagement denied")
		}
		uc.Logger.WithError(err).WithField("engagementId", engagementID).Error("Failed to resolve engagement participants")
		return dto.Participants{}, err
	}

	if !participants.Includes(userID) {
		uc.Logger.WithFields(logrus.Fields{
			"userId":       userID,
			"engagementId": engagementID,
		}).Warn("Access denied to engagement room")
		return dto.Participants{}, apperror.AccessDenied("access to engagement denied")
	}
	return participants, nil
}
