package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/meetpulse-team/meetpulse/internal/domain/entities"
)

// SummaryRepository defines meeting summary persistence operations
type SummaryRepository interface {
	CreateSummary(ctx context.Context, summary *entities.MeetingSummary) error
	GetSummaryByMeetingID(ctx context.Context, meetingID uuid.UUID) (*entities.MeetingSummary, error)
}
