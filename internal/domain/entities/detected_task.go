package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// TaskPriority is the urgency bucket assigned by the detection pipeline
type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
)

// TaskStatus tracks the approval state of a detected task
type TaskStatus string

const (
	TaskStatusPendingApproval TaskStatus = "pending_approval"
	TaskStatusApproved        TaskStatus = "approved"
	TaskStatusRejected        TaskStatus = "rejected"
)

// DetectedTask is a task candidate extracted from the meeting transcript,
// persisted while it awaits manager approval.
type DetectedTask struct {
	ID          uuid.UUID                                  `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	MeetingID   uuid.UUID                                  `json:"meeting_id" gorm:"type:uuid;not null;index"`
	OrgID       string                                     `json:"org_id" gorm:"type:varchar(255);not null;index"`
	TeamID      string                                     `json:"team_id,omitempty" gorm:"type:varchar(255)"`
	Title       string                                     `json:"title" gorm:"type:varchar(200);not null"`
	Description string                                     `json:"description,omitempty" gorm:"type:text"`
	Assignee    string                                     `json:"assignee,omitempty" gorm:"type:varchar(320)"`
	Priority    TaskPriority                               `json:"priority" gorm:"type:varchar(10);default:'medium'"`
	Deadline    string                                     `json:"deadline,omitempty" gorm:"type:varchar(320)"`
	Confidence  *float64                                   `json:"confidence,omitempty"`
	Status      TaskStatus                                 `json:"status" gorm:"type:varchar(20);not null;default:'pending_approval'"`
	DetectedAt  int64                                      `json:"detected_at" gorm:"not null"`
	RawData     datatypes.JSONType[map[string]interface{}] `json:"raw_data,omitempty" gorm:"type:jsonb"`
	CreatedAt   time.Time                                  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time                                  `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (DetectedTask) TableName() string {
	return "detected_tasks"
}
