package transcript

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/meetpulse-team/meetpulse/internal/buffer"
	"github.com/meetpulse-team/meetpulse/internal/domain/entities"
	uerrors "github.com/meetpulse-team/meetpulse/internal/usecase/errors"
)

// fakeMeetingRepo is an in-memory MeetingRepository keyed by external id
type fakeMeetingRepo struct {
	mu       sync.Mutex
	meetings map[string]*entities.Meeting
}

func newFakeMeetingRepo() *fakeMeetingRepo {
	return &fakeMeetingRepo{meetings: make(map[string]*entities.Meeting)}
}

func (r *fakeMeetingRepo) CreateMeeting(_ context.Context, meeting *entities.Meeting) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *meeting
	r.meetings[meeting.MeetingID] = &cp
	return nil
}

func (r *fakeMeetingRepo) GetMeetingByExternalID(_ context.Context, meetingID string) (*entities.Meeting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.meetings[meetingID]
	if !ok {
		return nil, nil
	}
	cp := *m
	return &cp, nil
}

func (r *fakeMeetingRepo) UpdateTeamID(_ context.Context, meetingID, teamID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if m, ok := r.meetings[meetingID]; ok {
		m.TeamID = teamID
	}
	return nil
}

func (r *fakeMeetingRepo) MarkCompleted(_ context.Context, meetingID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if m, ok := r.meetings[meetingID]; ok {
		m.Status = entities.MeetingStatusCompleted
		now := time.Now()
		m.EndedAt = &now
	}
	return nil
}

func (r *fakeMeetingRepo) MarkSummarized(_ context.Context, meetingID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if m, ok := r.meetings[meetingID]; ok {
		m.HasSummary = true
	}
	return nil
}

// fakeTrigger records summary requests
type fakeTrigger struct {
	mu       sync.Mutex
	called   chan string
	meetings []string
}

func newFakeTrigger() *fakeTrigger {
	return &fakeTrigger{called: make(chan string, 4)}
}

func (f *fakeTrigger) GenerateForMeeting(_ context.Context, meeting *entities.Meeting) error {
	f.mu.Lock()
	f.meetings = append(f.meetings, meeting.MeetingID)
	f.mu.Unlock()
	f.called <- meeting.MeetingID
	return nil
}

func newTestService(repo *fakeMeetingRepo, trigger SummaryTrigger) Service {
	return NewService(buffer.NewRegistry(buffer.DefaultWindowMillis, nil), repo, trigger, nil)
}

func TestIngestSegment_CreatesPlaceholderMeeting(t *testing.T) {
	repo := newFakeMeetingRepo()
	svc := newTestService(repo, nil)

	result, err := svc.IngestSegment(context.Background(), IngestInput{
		MeetingID: "meet-1",
		OrgID:     "org-1",
		Text:      "we should ship on friday",
		Timestamp: 1000,
	})
	if err != nil {
		t.Fatalf("ingest failed: %v", err)
	}
	if !result.Stored {
		t.Fatalf("expected segment to be stored")
	}
	if result.Entry.Text != "we should ship on friday." {
		t.Fatalf("unexpected normalized text %q", result.Entry.Text)
	}

	m, _ := repo.GetMeetingByExternalID(context.Background(), "meet-1")
	if m == nil {
		t.Fatalf("placeholder meeting was not created")
	}
	if m.OrgID != "org-1" || m.Status != entities.MeetingStatusActive {
		t.Fatalf("unexpected meeting record %+v", m)
	}
}

func TestIngestSegment_OrgMismatchRejected(t *testing.T) {
	repo := newFakeMeetingRepo()
	svc := newTestService(repo, nil)

	if _, err := svc.IngestSegment(context.Background(), IngestInput{
		MeetingID: "meet-1", OrgID: "org-1", Text: "hello", Timestamp: 1,
	}); err != nil {
		t.Fatalf("first ingest failed: %v", err)
	}

	_, err := svc.IngestSegment(context.Background(), IngestInput{
		MeetingID: "meet-1", OrgID: "org-2", Text: "intruder", Timestamp: 2,
	})
	if !errors.Is(err, uerrors.ErrOrgMismatch) {
		t.Fatalf("expected org mismatch, got %v", err)
	}
}

func TestIngestSegment_BackfillsTeamID(t *testing.T) {
	repo := newFakeMeetingRepo()
	svc := newTestService(repo, nil)

	if _, err := svc.IngestSegment(context.Background(), IngestInput{
		MeetingID: "meet-1", OrgID: "org-1", Text: "first", Timestamp: 1,
	}); err != nil {
		t.Fatalf("first ingest failed: %v", err)
	}

	if _, err := svc.IngestSegment(context.Background(), IngestInput{
		MeetingID: "meet-1", OrgID: "org-1", TeamID: "team-9", Text: "second", Timestamp: 2,
	}); err != nil {
		t.Fatalf("second ingest failed: %v", err)
	}

	m, _ := repo.GetMeetingByExternalID(context.Background(), "meet-1")
	if m.TeamID != "team-9" {
		t.Fatalf("team id was not backfilled, got %q", m.TeamID)
	}
}

func TestIngestSegment_PartialsBypassDedup(t *testing.T) {
	repo := newFakeMeetingRepo()
	svc := newTestService(repo, nil)

	for i := 0; i < 3; i++ {
		result, err := svc.IngestSegment(context.Background(), IngestInput{
			MeetingID: "meet-1",
			OrgID:     "org-1",
			Text:      "same partial text",
			Timestamp: int64(i + 1),
			Partial:   true,
		})
		if err != nil {
			t.Fatalf("partial ingest %d failed: %v", i, err)
		}
		if !result.Stored {
			t.Fatalf("partial ingest %d was rejected", i)
		}
	}

	entries, _ := svc.Full(context.Background(), "meet-1")
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
}

func TestIngestSegment_StampsMissingTimestamp(t *testing.T) {
	repo := newFakeMeetingRepo()
	svc := newTestService(repo, nil)

	before := time.Now().UnixMilli()
	result, err := svc.IngestSegment(context.Background(), IngestInput{
		MeetingID: "meet-1", OrgID: "org-1", Text: "no clock here",
	})
	if err != nil {
		t.Fatalf("ingest failed: %v", err)
	}
	after := time.Now().UnixMilli()

	if result.Entry.Timestamp < before || result.Entry.Timestamp > after {
		t.Fatalf("timestamp %d not stamped on arrival [%d, %d]", result.Entry.Timestamp, before, after)
	}
}

func TestComplete_MarksAndTriggersSummary(t *testing.T) {
	repo := newFakeMeetingRepo()
	trigger := newFakeTrigger()
	svc := newTestService(repo, trigger)

	if _, err := svc.IngestSegment(context.Background(), IngestInput{
		MeetingID: "meet-1", OrgID: "org-1", Text: "decisions were made", Timestamp: 1,
	}); err != nil {
		t.Fatalf("ingest failed: %v", err)
	}

	meeting, err := svc.Complete(context.Background(), CompleteInput{
		MeetingID: "meet-1", OrgID: "org-1", GenerateSummary: true,
	})
	if err != nil {
		t.Fatalf("complete failed: %v", err)
	}
	if meeting.Status != entities.MeetingStatusCompleted {
		t.Fatalf("meeting not marked completed: %s", meeting.Status)
	}

	select {
	case id := <-trigger.called:
		if id != "meet-1" {
			t.Fatalf("summary triggered for wrong meeting %s", id)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("summary generation was not triggered")
	}
}

func TestComplete_UnknownMeeting(t *testing.T) {
	svc := newTestService(newFakeMeetingRepo(), nil)

	_, err := svc.Complete(context.Background(), CompleteInput{MeetingID: "ghost", OrgID: "org-1"})
	if !errors.Is(err, uerrors.ErrMeetingNotFound) {
		t.Fatalf("expected meeting not found, got %v", err)
	}
}

func TestComplete_AlreadyCompleted(t *testing.T) {
	repo := newFakeMeetingRepo()
	svc := newTestService(repo, nil)

	if _, err := svc.IngestSegment(context.Background(), IngestInput{
		MeetingID: "meet-1", OrgID: "org-1", Text: "hello", Timestamp: 1,
	}); err != nil {
		t.Fatalf("ingest failed: %v", err)
	}

	if _, err := svc.Complete(context.Background(), CompleteInput{MeetingID: "meet-1", OrgID: "org-1"}); err != nil {
		t.Fatalf("first complete failed: %v", err)
	}

	_, err := svc.Complete(context.Background(), CompleteInput{MeetingID: "meet-1", OrgID: "org-1"})
	if !errors.Is(err, uerrors.ErrMeetingCompleted) {
		t.Fatalf("expected already-completed error, got %v", err)
	}
}

func TestClearBuffer_DropsTranscript(t *testing.T) {
	repo := newFakeMeetingRepo()
	svc := newTestService(repo, nil)

	if _, err := svc.IngestSegment(context.Background(), IngestInput{
		MeetingID: "meet-1", OrgID: "org-1", Text: "soon gone", Timestamp: 1,
	}); err != nil {
		t.Fatalf("ingest failed: %v", err)
	}

	if err := svc.ClearBuffer(context.Background(), "meet-1"); err != nil {
		t.Fatalf("clear failed: %v", err)
	}

	entries, _ := svc.Full(context.Background(), "meet-1")
	if len(entries) != 0 {
		t.Fatalf("expected empty history after clear, got %d entries", len(entries))
	}
}
