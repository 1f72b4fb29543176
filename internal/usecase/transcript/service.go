package transcript

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/meetpulse-team/meetpulse/internal/buffer"
	"github.com/meetpulse-team/meetpulse/internal/domain/entities"
	"github.com/meetpulse-team/meetpulse/internal/domain/repositories"
	uerrors "github.com/meetpulse-team/meetpulse/internal/usecase/errors"
)

// SummaryTrigger generates and stores a summary for a completed meeting
type SummaryTrigger interface {
	GenerateForMeeting(ctx context.Context, meeting *entities.Meeting) error
}

// IngestInput carries one accepted segment from the ingestion boundary
type IngestInput struct {
	MeetingID string
	OrgID     string
	TeamID    string
	Text      string
	Timestamp int64
	Speaker   string
	Partial   bool
}

// IngestResult reports what the buffer did with a segment. Stored is false
// when the segment normalized to nothing or was rejected as an adjacent
// duplicate; neither case is an error.
type IngestResult struct {
	Stored  bool
	Entry   buffer.Entry
	Meeting *entities.Meeting
}

// CompleteInput carries a meeting-complete signal from the bot
type CompleteInput struct {
	MeetingID       string
	OrgID           string
	GenerateSummary bool
}

// Service orchestrates the transcript buffer and the meeting records
// around it
type Service interface {
	IngestSegment(ctx context.Context, in IngestInput) (IngestResult, error)
	EnsureMeeting(ctx context.Context, meetingID, orgID, teamID string) (*entities.Meeting, error)
	Recent(ctx context.Context, meetingID string) ([]buffer.Entry, error)
	Full(ctx context.Context, meetingID string) ([]buffer.Entry, error)
	Complete(ctx context.Context, in CompleteInput) (*entities.Meeting, error)
	ClearBuffer(ctx context.Context, meetingID string) error
}

type service struct {
	buffers   *buffer.Registry
	meetings  repositories.MeetingRepository
	summaries SummaryTrigger
	logger    *zap.Logger
}

// NewService constructs the transcript service
func NewService(
	buffers *buffer.Registry,
	meetings repositories.MeetingRepository,
	summaries SummaryTrigger,
	logger *zap.Logger,
) Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &service{
		buffers:   buffers,
		meetings:  meetings,
		summaries: summaries,
		logger:    logger,
	}
}

// IngestSegment ensures the meeting record exists, then hands the segment
// to the buffer. A segment with no timestamp is stamped on arrival.
func (s *service) IngestSegment(ctx context.Context, in IngestInput) (IngestResult, error) {
	meeting, err := s.EnsureMeeting(ctx, in.MeetingID, in.OrgID, in.TeamID)
	if err != nil {
		return IngestResult{}, err
	}

	ts := in.Timestamp
	if ts <= 0 {
		ts = time.Now().UnixMilli()
	}

	var entry buffer.Entry
	var stored bool
	if in.Partial {
		entry, stored = s.buffers.AddPartial(in.MeetingID, in.Text, ts)
	} else {
		entry, stored = s.buffers.AddFinal(in.MeetingID, in.Text, ts)
	}

	s.logger.Debug("transcript.segment",
		zap.String("meeting_id", in.MeetingID),
		zap.String("speaker", in.Speaker),
		zap.Bool("partial", in.Partial),
		zap.Bool("stored", stored),
	)

	return IngestResult{Stored: stored, Entry: entry, Meeting: meeting}, nil
}

// EnsureMeeting loads the meeting record, creating a placeholder when an
// ingest arrives before any explicit setup. A meeting owned by another
// organization is never returned.
func (s *service) EnsureMeeting(ctx context.Context, meetingID, orgID, teamID string) (*entities.Meeting, error) {
	meeting, err := s.meetings.GetMeetingByExternalID(ctx, meetingID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up meeting %s: %w", meetingID, err)
	}

	if meeting != nil {
		if meeting.OrgID != orgID {
			return nil, uerrors.ErrOrgMismatch
		}
		if teamID != "" && meeting.TeamID == "" {
			if err := s.meetings.UpdateTeamID(ctx, meetingID, teamID); err != nil {
				return nil, fmt.Errorf("failed to backfill team id: %w", err)
			}
			meeting.TeamID = teamID
		}
		return meeting, nil
	}

	meeting = entities.NewMeeting(meetingID, orgID, teamID, "ingest-bot")
	if err := s.meetings.CreateMeeting(ctx, meeting); err != nil {
		return nil, fmt.Errorf("failed to create placeholder meeting: %w", err)
	}

	s.logger.Info("transcript.meeting_created",
		zap.String("meeting_id", meetingID),
		zap.String("org_id", orgID),
	)
	return meeting, nil
}

// Recent returns the meeting's windowed transcript view
func (s *service) Recent(_ context.Context, meetingID string) ([]buffer.Entry, error) {
	return s.buffers.Recent(meetingID), nil
}

// Full returns the meeting's complete transcript history
func (s *service) Full(_ context.Context, meetingID string) ([]buffer.Entry, error) {
	return s.buffers.Full(meetingID), nil
}

// Complete marks the meeting as finished and kicks off summary generation
// in the background when requested. The summary reads the buffer's full
// history, so the buffer is left in place until an explicit ClearBuffer.
func (s *service) Complete(ctx context.Context, in CompleteInput) (*entities.Meeting, error) {
	meeting, err := s.meetings.GetMeetingByExternalID(ctx, in.MeetingID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up meeting %s: %w", in.MeetingID, err)
	}
	if meeting == nil {
		return nil, uerrors.ErrMeetingNotFound
	}
	if meeting.OrgID != in.OrgID {
		return nil, uerrors.ErrOrgMismatch
	}
	if meeting.IsCompleted() {
		return nil, uerrors.ErrMeetingCompleted
	}

	if err := s.meetings.MarkCompleted(ctx, in.MeetingID); err != nil {
		return nil, fmt.Errorf("failed to mark meeting completed: %w", err)
	}
	meeting.Status = entities.MeetingStatusCompleted

	if in.GenerateSummary && s.summaries != nil {
		go func(m entities.Meeting) {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
			defer cancel()
			if err := s.summaries.GenerateForMeeting(ctx, &m); err != nil {
				s.logger.Error("transcript.summary_failed",
					zap.String("meeting_id", m.MeetingID),
					zap.Error(err),
				)
			}
		}(*meeting)
	}

	return meeting, nil
}

// ClearBuffer tears down the meeting's buffer. Idempotent.
func (s *service) ClearBuffer(_ context.Context, meetingID string) error {
	s.buffers.Clear(meetingID)
	return nil
}
