package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/meetpulse-team/meetpulse/internal/domain/entities"
)

// MeetingRepository handles meeting data operations
type MeetingRepository struct {
	db *gorm.DB
}

// NewMeetingRepository creates a new meeting repository
func NewMeetingRepository(db *gorm.DB) *MeetingRepository {
	return &MeetingRepository{db: db}
}

// CreateMeeting creates a new meeting record
func (r *MeetingRepository) CreateMeeting(ctx context.Context, meeting *entities.Meeting) error {
	if meeting == nil {
		return errors.New("meeting cannot be nil")
	}
	return r.db.WithContext(ctx).Create(meeting).Error
}

// GetMeetingByExternalID retrieves a meeting by its external meeting id
func (r *MeetingRepository) GetMeetingByExternalID(ctx context.Context, meetingID string) (*entities.Meeting, error) {
	var meeting entities.Meeting
	if err := r.db.WithContext(ctx).Where("meeting_id = ?", meetingID).First(&meeting).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &meeting, nil
}

// UpdateTeamID backfills the team id on a meeting that was created without one
func (r *MeetingRepository) UpdateTeamID(ctx context.Context, meetingID string, teamID string) error {
	return r.db.WithContext(ctx).
		Model(&entities.Meeting{}).
		Where("meeting_id = ?", meetingID).
		Update("team_id", teamID).Error
}

// MarkCompleted sets the meeting status to completed and stamps the end time
func (r *MeetingRepository) MarkCompleted(ctx context.Context, meetingID string) error {
	now := time.Now()
	return r.db.WithContext(ctx).
		Model(&entities.Meeting{}).
		Where("meeting_id = ?", meetingID).
		Updates(map[string]interface{}{
			"status":     entities.MeetingStatusCompleted,
			"ended_at":   &now,
			"updated_at": now,
		}).Error
}

// MarkSummarized flips the has_summary flag after a summary is stored
func (r *MeetingRepository) MarkSummarized(ctx context.Context, meetingID string) error {
	return r.db.WithContext(ctx).
		Model(&entities.Meeting{}).
		Where("meeting_id = ?", meetingID).
		Updates(map[string]interface{}{
			"has_summary": true,
			"updated_at":  time.Now(),
		}).Error
}
