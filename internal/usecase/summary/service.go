package summary

import (
	"context"
	"fmt"
	"strings"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/meetpulse-team/meetpulse/internal/buffer"
	"github.com/meetpulse-team/meetpulse/internal/domain/entities"
	"github.com/meetpulse-team/meetpulse/internal/domain/repositories"
	uerrors "github.com/meetpulse-team/meetpulse/internal/usecase/errors"
)

// maxGenerateRetries bounds retries against the LLM endpoint
const maxGenerateRetries = 3

// Generator produces a summary from plain transcript text
type Generator interface {
	GenerateSummary(ctx context.Context, transcript string) (string, error)
	Model() string
}

// Service generates and stores meeting summaries from the buffer's full
// transcript history
type Service interface {
	GenerateForMeeting(ctx context.Context, meeting *entities.Meeting) error
}

type service struct {
	buffers   *buffer.Registry
	summaries repositories.SummaryRepository
	meetings  repositories.MeetingRepository
	generator Generator
	logger    *zap.Logger
}

// NewService constructs the summary service
func NewService(
	buffers *buffer.Registry,
	summaries repositories.SummaryRepository,
	meetings repositories.MeetingRepository,
	generator Generator,
	logger *zap.Logger,
) Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &service{
		buffers:   buffers,
		summaries: summaries,
		meetings:  meetings,
		generator: generator,
		logger:    logger,
	}
}

// GenerateForMeeting joins the full history into plain text, asks the LLM
// for a summary with exponential-backoff retries, stores the result and
// flips the meeting's has_summary flag.
func (s *service) GenerateForMeeting(ctx context.Context, meeting *entities.Meeting) error {
	if s.generator == nil {
		return uerrors.ErrSummaryDisabled
	}

	entries := s.buffers.Full(meeting.MeetingID)
	if len(entries) == 0 {
		return uerrors.ErrEmptyTranscript
	}

	var sb strings.Builder
	for i, entry := range entries {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(entry.Text)
	}
	transcript := sb.String()

	started := time.Now()

	var text string
	operation := func() error {
		out, err := s.generator.GenerateSummary(ctx, transcript)
		if err != nil {
			s.logger.Warn("summary.generate_retry",
				zap.String("meeting_id", meeting.MeetingID),
				zap.Error(err),
			)
			return err
		}
		text = out
		return nil
	}

	bo := backoff.WithContext(backoff.NewExponentialBackOff(), ctx)
	if err := backoff.Retry(operation, backoff.WithMaxRetries(bo, maxGenerateRetries)); err != nil {
		return fmt.Errorf("summary generation failed for meeting %s: %w", meeting.MeetingID, err)
	}

	record := entities.NewMeetingSummary(meeting.ID, text, s.generator.Model(), len(entries))
	record.ProcessingTime = int(time.Since(started).Seconds())

	if err := s.summaries.CreateSummary(ctx, record); err != nil {
		return fmt.Errorf("failed to store summary: %w", err)
	}
	if err := s.meetings.MarkSummarized(ctx, meeting.MeetingID); err != nil {
		return fmt.Errorf("failed to mark meeting summarized: %w", err)
	}

	s.logger.Info("summary.generated",
		zap.String("meeting_id", meeting.MeetingID),
		zap.Int("entry_count", len(entries)),
		zap.Int("processing_seconds", record.ProcessingTime),
	)
	return nil
}
