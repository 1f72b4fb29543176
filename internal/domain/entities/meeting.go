package entities

import (
	"time"

	"github.com/google/uuid"
)

// MeetingStatus represents the lifecycle state of a meeting
type MeetingStatus string

const (
	MeetingStatusActive    MeetingStatus = "active"
	MeetingStatusCompleted MeetingStatus = "completed"
)

// Meeting is the stored meeting record. MeetingID is the external
// identifier supplied by the ingestion bot; it is the key the transcript
// buffer is addressed by.
type Meeting struct {
	ID         uuid.UUID     `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	MeetingID  string        `json:"meeting_id" gorm:"type:varchar(255);uniqueIndex;not null"`
	OrgID      string        `json:"org_id" gorm:"type:varchar(255);not null;index"`
	TeamID     string        `json:"team_id,omitempty" gorm:"type:varchar(255)"`
	Status     MeetingStatus `json:"status" gorm:"type:varchar(20);not null;default:'active'"`
	CreatedBy  string        `json:"created_by,omitempty" gorm:"type:varchar(255)"`
	HasSummary bool          `json:"has_summary" gorm:"default:false"`
	StartedAt  time.Time     `json:"started_at" gorm:"autoCreateTime"`
	EndedAt    *time.Time    `json:"ended_at,omitempty"`
	CreatedAt  time.Time     `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt  time.Time     `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (Meeting) TableName() string {
	return "meetings"
}

// NewMeeting creates a placeholder meeting record for an ingest that
// arrived before any explicit setup call.
func NewMeeting(meetingID, orgID, teamID, createdBy string) *Meeting {
	return &Meeting{
		ID:        uuid.New(),
		MeetingID: meetingID,
		OrgID:     orgID,
		TeamID:    teamID,
		Status:    MeetingStatusActive,
		CreatedBy: createdBy,
		StartedAt: time.Now(),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

// IsCompleted reports whether the meeting has ended
func (m *Meeting) IsCompleted() bool {
	return m.Status == MeetingStatusCompleted
}
