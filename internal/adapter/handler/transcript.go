package handler

import (
	stdErrors "errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/meetpulse-team/meetpulse/errors"
	dto "github.com/meetpulse-team/meetpulse/internal/adapter/dto/transcript"
	uerrors "github.com/meetpulse-team/meetpulse/internal/usecase/errors"
	"github.com/meetpulse-team/meetpulse/internal/usecase/transcript"
)

// TranscriptHandler handles transcript ingestion and retrieval endpoints
type TranscriptHandler struct {
	svc    transcript.Service
	logger *zap.Logger
}

// NewTranscriptHandler creates a new transcript handler
func NewTranscriptHandler(svc transcript.Service, logger *zap.Logger) *TranscriptHandler {
	return &TranscriptHandler{svc: svc, logger: logger}
}

// IngestSegment stores a transcript segment coming from the bot pipeline
// @Summary      Ingest transcript segment
// @Description  Stores a final or partial transcript segment in the meeting's buffer
// @Tags         Transcripts
// @Accept       json
// @Produce      json
// @Param        id       path      string                     true  "External meeting ID"
// @Param        request  body      dto.SegmentIngestRequest   true  "Transcript segment"
// @Success      202      {object}  dto.IngestResponse         "Segment stored or skipped"
// @Failure      400      {object}  map[string]interface{}     "Invalid payload"
// @Failure      403      {object}  map[string]interface{}     "Meeting belongs to another organization"
// @Router       /bot/meetings/{id}/segments [post]
func (h *TranscriptHandler) IngestSegment(c echo.Context) error {
	meetingID := c.Param("id")

	var req dto.SegmentIngestRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument(err.Error()))
	}

	result, err := h.svc.IngestSegment(c.Request().Context(), transcript.IngestInput{
		MeetingID: meetingID,
		OrgID:     req.OrgID,
		TeamID:    req.TeamID,
		Text:      req.Text,
		Timestamp: req.Timestamp,
		Speaker:   req.Speaker,
		Partial:   req.Partial,
	})
	if err != nil {
		return HandleError(h.logger, c, mapMeetingError(meetingID, err))
	}

	resp := dto.IngestResponse{Status: "skipped"}
	if result.Stored {
		resp.Status = "stored"
		resp.Entry = &dto.EntryResponse{
			Text:      result.Entry.Text,
			Timestamp: result.Entry.Timestamp,
		}
	}
	return HandleSuccessWithStatus(h.logger, c, http.StatusAccepted, resp)
}

// GetRecent returns the meeting's windowed transcript view
// @Summary      Recent transcript
// @Description  Returns entries inside the trailing recency window
// @Tags         Transcripts
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string                   true  "External meeting ID"
// @Success      200  {object}  dto.TranscriptResponse
// @Router       /meetings/{id}/transcript/recent [get]
func (h *TranscriptHandler) GetRecent(c echo.Context) error {
	meetingID := c.Param("id")

	entries, err := h.svc.Recent(c.Request().Context(), meetingID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, dto.NewTranscriptResponse(meetingID, entries))
}

// GetFull returns the meeting's complete transcript history
// @Summary      Full transcript
// @Description  Returns the unbounded transcript history
// @Tags         Transcripts
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string                   true  "External meeting ID"
// @Success      200  {object}  dto.TranscriptResponse
// @Router       /meetings/{id}/transcript/full [get]
func (h *TranscriptHandler) GetFull(c echo.Context) error {
	meetingID := c.Param("id")

	entries, err := h.svc.Full(c.Request().Context(), meetingID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, dto.NewTranscriptResponse(meetingID, entries))
}

// Complete marks a meeting as finished and triggers summary generation
// @Summary      Complete meeting
// @Description  Marks the meeting completed; summary generation runs in the background
// @Tags         Transcripts
// @Accept       json
// @Produce      json
// @Param        id       path      string                       true  "External meeting ID"
// @Param        request  body      dto.MeetingCompleteRequest   true  "Completion options"
// @Success      200      {object}  map[string]interface{}
// @Failure      404      {object}  map[string]interface{}       "Meeting not found"
// @Failure      409      {object}  map[string]interface{}       "Meeting already completed"
// @Router       /bot/meetings/{id}/complete [post]
func (h *TranscriptHandler) Complete(c echo.Context) error {
	meetingID := c.Param("id")

	var req dto.MeetingCompleteRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument(err.Error()))
	}

	meeting, err := h.svc.Complete(c.Request().Context(), transcript.CompleteInput{
		MeetingID:       meetingID,
		OrgID:           req.OrgID,
		GenerateSummary: req.ShouldGenerateSummary(),
	})
	if err != nil {
		return HandleError(h.logger, c, mapMeetingError(meetingID, err))
	}

	return HandleSuccess(h.logger, c, map[string]interface{}{
		"meeting_id":     meeting.MeetingID,
		"status":         meeting.Status,
		"summary_queued": req.ShouldGenerateSummary(),
	})
}

// ClearBuffer tears down the meeting's transcript buffer
// @Summary      Clear transcript buffer
// @Description  Removes the meeting's in-memory buffer; safe on unknown ids
// @Tags         Transcripts
// @Produce      json
// @Param        id   path      string  true  "External meeting ID"
// @Success      200  {object}  map[string]interface{}
// @Router       /bot/meetings/{id}/buffer [delete]
func (h *TranscriptHandler) ClearBuffer(c echo.Context) error {
	meetingID := c.Param("id")

	if err := h.svc.ClearBuffer(c.Request().Context(), meetingID); err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, map[string]interface{}{"status": "cleared"})
}

// mapMeetingError converts usecase sentinels into transport errors
func mapMeetingError(meetingID string, err error) error {
	switch {
	case stdErrors.Is(err, uerrors.ErrOrgMismatch):
		return errors.ErrMeetingOrgMismatch(meetingID)
	case stdErrors.Is(err, uerrors.ErrMeetingNotFound):
		return errors.ErrMeetingNotFound(meetingID)
	case stdErrors.Is(err, uerrors.ErrMeetingCompleted):
		return errors.ErrMeetingCompleted(meetingID)
	default:
		return err
	}
}
