package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/meetpulse-team/meetpulse/internal/domain/entities"
)

// TaskRepository handles detected-task data operations
type TaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new task repository
func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// CreateTasks persists a batch of detected tasks in one transaction
func (r *TaskRepository) CreateTasks(ctx context.Context, tasks []*entities.DetectedTask) error {
	if len(tasks) == 0 {
		return errors.New("task batch cannot be empty")
	}
	return r.db.WithContext(ctx).Create(tasks).Error
}

// GetTasksByMeetingID retrieves all detected tasks for a meeting
func (r *TaskRepository) GetTasksByMeetingID(ctx context.Context, meetingID uuid.UUID) ([]*entities.DetectedTask, error) {
	var tasks []*entities.DetectedTask
	if err := r.db.WithContext(ctx).
		Where("meeting_id = ?", meetingID).
		Order("detected_at asc").
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// UpdateTaskStatus transitions a task's approval status
func (r *TaskRepository) UpdateTaskStatus(ctx context.Context, taskID uuid.UUID, status entities.TaskStatus) error {
	return r.db.WithContext(ctx).
		Model(&entities.DetectedTask{}).
		Where("id = ?", taskID).
		Update("status", status).Error
}
