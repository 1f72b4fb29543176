package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/meetpulse-team/meetpulse/internal/buffer"
	"github.com/meetpulse-team/meetpulse/internal/domain/entities"
	uerrors "github.com/meetpulse-team/meetpulse/internal/usecase/errors"
	"github.com/meetpulse-team/meetpulse/internal/usecase/transcript"
	pkgvalidator "github.com/meetpulse-team/meetpulse/pkg/validator"
)

// fakeTranscriptService implements transcript.Service with canned behavior
type fakeTranscriptService struct {
	ingestResult transcript.IngestResult
	ingestErr    error
	recent       []buffer.Entry
	full         []buffer.Entry
	completeErr  error
	cleared      []string
}

func (f *fakeTranscriptService) IngestSegment(_ context.Context, _ transcript.IngestInput) (transcript.IngestResult, error) {
	return f.ingestResult, f.ingestErr
}

func (f *fakeTranscriptService) EnsureMeeting(_ context.Context, meetingID, orgID, teamID string) (*entities.Meeting, error) {
	if f.ingestErr != nil {
		return nil, f.ingestErr
	}
	return entities.NewMeeting(meetingID, orgID, teamID, "ingest-bot"), nil
}

func (f *fakeTranscriptService) Recent(_ context.Context, _ string) ([]buffer.Entry, error) {
	return f.recent, nil
}

func (f *fakeTranscriptService) Full(_ context.Context, _ string) ([]buffer.Entry, error) {
	return f.full, nil
}

func (f *fakeTranscriptService) Complete(_ context.Context, in transcript.CompleteInput) (*entities.Meeting, error) {
	if f.completeErr != nil {
		return nil, f.completeErr
	}
	m := entities.NewMeeting(in.MeetingID, in.OrgID, "", "ingest-bot")
	m.Status = entities.MeetingStatusCompleted
	return m, nil
}

func (f *fakeTranscriptService) ClearBuffer(_ context.Context, meetingID string) error {
	f.cleared = append(f.cleared, meetingID)
	return nil
}

func newTestContext(method, target, body string) (*echo.Echo, echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = pkgvalidator.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	return e, c, rec
}

func TestIngestSegment_Stored(t *testing.T) {
	svc := &fakeTranscriptService{
		ingestResult: transcript.IngestResult{
			Stored: true,
			Entry:  buffer.Entry{Text: "hello world.", Timestamp: 1000},
		},
	}
	h := NewTranscriptHandler(svc, nil)

	_, c, rec := newTestContext(http.MethodPost, "/v1/bot/meetings/meet-1/segments",
		`{"orgId":"org-1","text":"hello world","timestamp":1000}`)
	c.SetParamNames("id")
	c.SetParamValues("meet-1")

	if err := h.IngestSegment(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d", rec.Code)
	}

	var body struct {
		Data struct {
			Status string `json:"status"`
			Entry  *struct {
				Text      string `json:"text"`
				Timestamp int64  `json:"timestamp"`
			} `json:"entry"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if body.Data.Status != "stored" {
		t.Fatalf("expected stored status, got %q", body.Data.Status)
	}
	if body.Data.Entry == nil || body.Data.Entry.Text != "hello world." {
		t.Fatalf("unexpected entry %+v", body.Data.Entry)
	}
}

func TestIngestSegment_Skipped(t *testing.T) {
	svc := &fakeTranscriptService{ingestResult: transcript.IngestResult{Stored: false}}
	h := NewTranscriptHandler(svc, nil)

	_, c, rec := newTestContext(http.MethodPost, "/v1/bot/meetings/meet-1/segments",
		`{"orgId":"org-1","text":"hello world"}`)
	c.SetParamNames("id")
	c.SetParamValues("meet-1")

	if err := h.IngestSegment(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"skipped"`) {
		t.Fatalf("expected skipped status, got %s", rec.Body.String())
	}
}

func TestIngestSegment_MissingText(t *testing.T) {
	h := NewTranscriptHandler(&fakeTranscriptService{}, nil)

	_, c, rec := newTestContext(http.MethodPost, "/v1/bot/meetings/meet-1/segments",
		`{"orgId":"org-1"}`)
	c.SetParamNames("id")
	c.SetParamValues("meet-1")

	if err := h.IngestSegment(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestIngestSegment_OrgMismatch(t *testing.T) {
	svc := &fakeTranscriptService{ingestErr: uerrors.ErrOrgMismatch}
	h := NewTranscriptHandler(svc, nil)

	_, c, rec := newTestContext(http.MethodPost, "/v1/bot/meetings/meet-1/segments",
		`{"orgId":"org-2","text":"hello"}`)
	c.SetParamNames("id")
	c.SetParamValues("meet-1")

	if err := h.IngestSegment(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestGetRecent_ReturnsEntries(t *testing.T) {
	svc := &fakeTranscriptService{
		recent: []buffer.Entry{
			{Text: "first.", Timestamp: 1000},
			{Text: "second.", Timestamp: 2000},
		},
	}
	h := NewTranscriptHandler(svc, nil)

	_, c, rec := newTestContext(http.MethodGet, "/v1/meetings/meet-1/transcript/recent", "")
	c.SetParamNames("id")
	c.SetParamValues("meet-1")

	if err := h.GetRecent(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body struct {
		Data struct {
			MeetingID string `json:"meeting_id"`
			Count     int    `json:"count"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if body.Data.MeetingID != "meet-1" || body.Data.Count != 2 {
		t.Fatalf("unexpected response %+v", body.Data)
	}
}

func TestComplete_AlreadyCompleted(t *testing.T) {
	svc := &fakeTranscriptService{completeErr: uerrors.ErrMeetingCompleted}
	h := NewTranscriptHandler(svc, nil)

	_, c, rec := newTestContext(http.MethodPost, "/v1/bot/meetings/meet-1/complete",
		`{"orgId":"org-1"}`)
	c.SetParamNames("id")
	c.SetParamValues("meet-1")

	if err := h.Complete(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestComplete_NotFound(t *testing.T) {
	svc := &fakeTranscriptService{completeErr: uerrors.ErrMeetingNotFound}
	h := NewTranscriptHandler(svc, nil)

	_, c, rec := newTestContext(http.MethodPost, "/v1/bot/meetings/ghost/complete",
		`{"orgId":"org-1"}`)
	c.SetParamNames("id")
	c.SetParamValues("ghost")

	if err := h.Complete(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestClearBuffer_OK(t *testing.T) {
	svc := &fakeTranscriptService{}
	h := NewTranscriptHandler(svc, nil)

	_, c, rec := newTestContext(http.MethodDelete, "/v1/bot/meetings/meet-1/buffer", "")
	c.SetParamNames("id")
	c.SetParamValues("meet-1")

	if err := h.ClearBuffer(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if len(svc.cleared) != 1 || svc.cleared[0] != "meet-1" {
		t.Fatalf("clear was not delegated: %v", svc.cleared)
	}
}
