package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// MeetingSummary stores the generated summary for a completed meeting
type MeetingSummary struct {
	ID             uuid.UUID                                  `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	MeetingID      uuid.UUID                                  `json:"meeting_id" gorm:"type:uuid;not null;index"`
	Text           string                                     `json:"text" gorm:"type:text;not null"`
	ModelUsed      string                                     `json:"model_used,omitempty" gorm:"type:varchar(100)"`
	EntryCount     int                                        `json:"entry_count"`
	ProcessingTime int                                        `json:"processing_time,omitempty"`
	RawData        datatypes.JSONType[map[string]interface{}] `json:"raw_data,omitempty" gorm:"type:jsonb"`
	CreatedAt      time.Time                                  `json:"created_at" gorm:"autoCreateTime"`
}

// TableName specifies the table name for GORM
func (MeetingSummary) TableName() string {
	return "meeting_summaries"
}

// NewMeetingSummary creates a summary row for a meeting
func NewMeetingSummary(meetingID uuid.UUID, text, modelUsed string, entryCount int) *MeetingSummary {
	return &MeetingSummary{
		ID:         uuid.New(),
		MeetingID:  meetingID,
		Text:       text,
		ModelUsed:  modelUsed,
		EntryCount: entryCount,
		CreatedAt:  time.Now(),
	}
}
