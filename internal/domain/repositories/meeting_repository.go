package repositories

import (
	"context"

	"github.com/meetpulse-team/meetpulse/internal/domain/entities"
)

// MeetingRepository defines meeting persistence operations
type MeetingRepository interface {
	CreateMeeting(ctx context.Context, meeting *entities.Meeting) error
	GetMeetingByExternalID(ctx context.Context, meetingID string) (*entities.Meeting, error)
	UpdateTeamID(ctx context.Context, meetingID string, teamID string) error
	MarkCompleted(ctx context.Context, meetingID string) error
	MarkSummarized(ctx context.Context, meetingID string) error
}
