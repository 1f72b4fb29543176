package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/meetpulse-team/meetpulse/internal/domain/entities"
)

// TaskRepository defines detected-task persistence operations
type TaskRepository interface {
	CreateTasks(ctx context.Context, tasks []*entities.DetectedTask) error
	GetTasksByMeetingID(ctx context.Context, meetingID uuid.UUID) ([]*entities.DetectedTask, error)
	UpdateTaskStatus(ctx context.Context, taskID uuid.UUID, status entities.TaskStatus) error
}
