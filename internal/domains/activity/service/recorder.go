package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"bookcircle-backend/internal/domains/activity/model"
	"bookcircle-backend/internal/domains/activity/repository"
)

type recorderService struct {
	activityRepo repository.ActivityRepository
}

func NewRecorder(activityRepo repository.ActivityRepository) Recorder {
	return &recorderService{activityRepo: activityRepo}
}

// Record appends an activity entry. Errors are logged and swallowed so a
// logging failure never blocks the primary action (a follow must succeed
// even when its activity cannot be written).
func (s *recorderService) Record(ctx context.Context, input model.RecordInput) {
	activity := &model.Activity{
		ID:              uuid.New(),
		ActorID:         input.ActorID,
		Type:            input.Type,
		Title:           input.Title,
		Description:     input.Description,
		RelatedBookID:   input.RelatedBookID,
		RelatedUserID:   input.RelatedUserID,
		RelatedReviewID: input.RelatedReviewID,
		Metadata:        input.Metadata,
		IsVisible:       true,
		CreatedAt:       time.Now(),
	}

	if err := s.activityRepo.Create(ctx, activity); err != nil {
		log.Error().
			Err(err).
			Str("actor_id", input.ActorID.String()).
			Str("type", input.Type.String()).
			Msg("Failed to record activity")
	}
}
