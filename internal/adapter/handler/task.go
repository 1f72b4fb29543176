package handler

import (
	stdErrors "errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/meetpulse-team/meetpulse/errors"
	dto "github.com/meetpulse-team/meetpulse/internal/adapter/dto/transcript"
	uerrors "github.com/meetpulse-team/meetpulse/internal/usecase/errors"
	"github.com/meetpulse-team/meetpulse/internal/usecase/task"
	"github.com/meetpulse-team/meetpulse/internal/usecase/transcript"
)

// TaskHandler handles detected-task ingestion from the bot pipeline
type TaskHandler struct {
	transcripts transcript.Service
	tasks       task.Service
	logger      *zap.Logger
}

// NewTaskHandler creates a new task handler
func NewTaskHandler(transcripts transcript.Service, tasks task.Service, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{transcripts: transcripts, tasks: tasks, logger: logger}
}

// IngestDetected accepts a batch of detected tasks for a meeting
// @Summary      Ingest detected tasks
// @Description  Persists a batch of tasks detected in the meeting and fans out approval events
// @Tags         Tasks
// @Accept       json
// @Produce      json
// @Param        id       path      string                    true  "External meeting ID"
// @Param        request  body      dto.TaskDetectionRequest  true  "Detected task batch"
// @Success      202      {object}  map[string]interface{}    "Batch accepted or recognized as a replay"
// @Failure      403      {object}  map[string]interface{}    "Meeting belongs to another organization"
// @Failure      422      {object}  map[string]interface{}    "No candidate survived validation"
// @Router       /bot/meetings/{id}/tasks [post]
func (h *TaskHandler) IngestDetected(c echo.Context) error {
	meetingID := c.Param("id")

	var req dto.TaskDetectionRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument(err.Error()))
	}

	meeting, err := h.transcripts.EnsureMeeting(c.Request().Context(), meetingID, req.OrgID, req.TeamID)
	if err != nil {
		return HandleError(h.logger, c, mapMeetingError(meetingID, err))
	}

	candidates := make([]task.Candidate, len(req.Tasks))
	for i, t := range req.Tasks {
		candidates[i] = task.Candidate{
			Title:         t.Title,
			Description:   t.Description,
			Assignee:      t.Assignee,
			AssigneeEmail: t.AssigneeEmail,
			Priority:      t.Priority,
			Deadline:      t.Deadline,
			Confidence:    t.Confidence,
		}
	}

	accepted, err := h.tasks.IngestDetected(c.Request().Context(), meeting, candidates)
	if err != nil {
		switch {
		case stdErrors.Is(err, uerrors.ErrDuplicateBatch):
			return HandleSuccessWithStatus(h.logger, c, http.StatusAccepted, map[string]interface{}{
				"status": "duplicate_batch",
			})
		case stdErrors.Is(err, uerrors.ErrNoValidTasks):
			return HandleError(h.logger, c, errors.ErrNoValidTasks())
		default:
			return HandleError(h.logger, c, err)
		}
	}

	return HandleSuccessWithStatus(h.logger, c, http.StatusAccepted, map[string]interface{}{
		"status":   "accepted",
		"accepted": accepted,
	})
}
