package task

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/meetpulse-team/meetpulse/internal/domain/entities"
	"github.com/meetpulse-team/meetpulse/internal/domain/repositories"
	"github.com/meetpulse-team/meetpulse/internal/infrastructure/cache"
	uerrors "github.com/meetpulse-team/meetpulse/internal/usecase/errors"
)

// batchDedupWindow is how long a task batch fingerprint suppresses replays
const batchDedupWindow = 5 * time.Minute

// Candidate is one detected task as supplied by the detection pipeline
type Candidate struct {
	Title         string
	Description   string
	Assignee      string
	AssigneeEmail string
	Priority      string
	Deadline      string
	Confidence    *float64
}

// Publisher fans approval events out to listening managers
type Publisher interface {
	Publish(ctx context.Context, channel string, payload []byte) error
}

// Service persists detected tasks and fans out approval events
type Service interface {
	IngestDetected(ctx context.Context, meeting *entities.Meeting, candidates []Candidate) (int, error)
}

type service struct {
	tasks     repositories.TaskRepository
	publisher Publisher
	seen      *cache.MemoryStore
	logger    *zap.Logger
}

// NewService constructs the task detection service
func NewService(tasks repositories.TaskRepository, publisher Publisher, seen *cache.MemoryStore, logger *zap.Logger) Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &service{
		tasks:     tasks,
		publisher: publisher,
		seen:      seen,
		logger:    logger,
	}
}

// approvalEvent is the payload published per accepted batch
type approvalEvent struct {
	MeetingID string                   `json:"meeting_id"`
	OrgID     string                   `json:"org_id"`
	TeamID    string                   `json:"team_id,omitempty"`
	Tasks     []*entities.DetectedTask `json:"tasks"`
}

// IngestDetected normalizes the candidate batch, drops entries without a
// title, persists the rest and publishes an approval event. Returns the
// number of tasks accepted.
func (s *service) IngestDetected(ctx context.Context, meeting *entities.Meeting, candidates []Candidate) (int, error) {
	nowMillis := time.Now().UnixMilli()

	tasks := make([]*entities.DetectedTask, 0, len(candidates))
	for _, c := range candidates {
		title := strings.TrimSpace(c.Title)
		if title == "" {
			continue
		}

		assignee := strings.TrimSpace(c.Assignee)
		if assignee == "" {
			assignee = strings.TrimSpace(c.AssigneeEmail)
		}

		priority := entities.TaskPriority(strings.ToLower(strings.TrimSpace(c.Priority)))
		switch priority {
		case entities.TaskPriorityLow, entities.TaskPriorityMedium, entities.TaskPriorityHigh:
		default:
			priority = entities.TaskPriorityMedium
		}

		raw := map[string]interface{}{
			"title":          c.Title,
			"description":    c.Description,
			"assignee":       c.Assignee,
			"assignee_email": c.AssigneeEmail,
			"priority":       c.Priority,
			"deadline":       c.Deadline,
		}

		tasks = append(tasks, &entities.DetectedTask{
			MeetingID:   meeting.ID,
			OrgID:       meeting.OrgID,
			TeamID:      meeting.TeamID,
			Title:       title,
			Description: strings.TrimSpace(c.Description),
			Assignee:    assignee,
			Priority:    priority,
			Deadline:    strings.TrimSpace(c.Deadline),
			Confidence:  c.Confidence,
			Status:      entities.TaskStatusPendingApproval,
			DetectedAt:  nowMillis,
			RawData:     datatypes.NewJSONType(raw),
		})
	}

	if len(tasks) == 0 {
		return 0, uerrors.ErrNoValidTasks
	}

	if s.seen != nil && s.seen.Remember(batchFingerprint(meeting.MeetingID, tasks), batchDedupWindow) {
		s.logger.Warn("task.duplicate_batch",
			zap.String("meeting_id", meeting.MeetingID),
			zap.Int("task_count", len(tasks)),
		)
		return 0, uerrors.ErrDuplicateBatch
	}

	if err := s.tasks.CreateTasks(ctx, tasks); err != nil {
		return 0, fmt.Errorf("failed to persist detected tasks: %w", err)
	}

	s.publish(ctx, meeting, tasks)

	s.logger.Info("task.batch_accepted",
		zap.String("meeting_id", meeting.MeetingID),
		zap.String("org_id", meeting.OrgID),
		zap.Int("accepted", len(tasks)),
		zap.Int("dropped", len(candidates)-len(tasks)),
	)
	return len(tasks), nil
}

// publish sends the approval event. Tasks are already persisted at this
// point, so a fan-out failure is logged rather than surfaced: approvals
// can still be recovered from the database.
func (s *service) publish(ctx context.Context, meeting *entities.Meeting, tasks []*entities.DetectedTask) {
	if s.publisher == nil {
		return
	}

	payload, err := json.Marshal(approvalEvent{
		MeetingID: meeting.MeetingID,
		OrgID:     meeting.OrgID,
		TeamID:    meeting.TeamID,
		Tasks:     tasks,
	})
	if err != nil {
		s.logger.Error("task.fanout_marshal_failed", zap.Error(err))
		return
	}

	channel := ApprovalChannel(meeting.OrgID)
	if err := s.publisher.Publish(ctx, channel, payload); err != nil {
		s.logger.Error("task.fanout_failed",
			zap.String("channel", channel),
			zap.Error(err),
		)
	}
}

// ApprovalChannel names the pub/sub channel for an organization's task
// approval events.
func ApprovalChannel(orgID string) string {
	return "meetpulse:task-approvals:" + orgID
}

// batchFingerprint hashes the batch contents so a replayed delivery of
// the same detection result is recognized.
func batchFingerprint(meetingID string, tasks []*entities.DetectedTask) string {
	h := sha256.New()
	h.Write([]byte(meetingID))
	for _, t := range tasks {
		h.Write([]byte{0})
		h.Write([]byte(t.Title))
		h.Write([]byte{0})
		h.Write([]byte(t.Assignee))
	}
	return "task-batch:" + hex.EncodeToString(h.Sum(nil))
}
