package transcript

// SegmentIngestRequest is one transcript segment from the bot pipeline
type SegmentIngestRequest struct {
	OrgID     string `json:"orgId" validate:"required,min=1"`
	TeamID    string `json:"teamId,omitempty"`
	Text      string `json:"text" validate:"required,min=1,max=8000"`
	Timestamp int64  `json:"timestamp,omitempty" validate:"omitempty,gt=0"`
	Speaker   string `json:"speaker,omitempty" validate:"omitempty,max=120"`
	Partial   bool   `json:"partial,omitempty"`
}

// MeetingCompleteRequest marks a meeting as finished
type MeetingCompleteRequest struct {
	OrgID           string `json:"orgId" validate:"required,min=1"`
	TeamID          string `json:"teamId,omitempty"`
	GenerateSummary *bool  `json:"generateSummary,omitempty"`
}

// ShouldGenerateSummary defaults to true when the field is omitted
func (r *MeetingCompleteRequest) ShouldGenerateSummary() bool {
	if r.GenerateSummary == nil {
		return true
	}
	return *r.GenerateSummary
}

// DetectedTaskRequest is one task candidate from the detection pipeline
type DetectedTaskRequest struct {
	Title         string   `json:"title" validate:"required,min=3,max=200"`
	Description   string   `json:"description,omitempty" validate:"omitempty,max=4000"`
	Assignee      string   `json:"assignee,omitempty" validate:"omitempty,max=320"`
	AssigneeEmail string   `json:"assigneeEmail,omitempty" validate:"omitempty,max=320"`
	Priority      string   `json:"priority,omitempty" validate:"omitempty,oneof=low medium high"`
	Deadline      string   `json:"deadline,omitempty" validate:"omitempty,max=320"`
	Confidence    *float64 `json:"confidence,omitempty" validate:"omitempty,gte=0,lte=1"`
}

// TaskDetectionRequest is a batch of detected tasks for one meeting
type TaskDetectionRequest struct {
	OrgID  string                `json:"orgId" validate:"required,min=1"`
	TeamID string                `json:"teamId,omitempty"`
	Tasks  []DetectedTaskRequest `json:"tasks" validate:"required,min=1,dive"`
}
