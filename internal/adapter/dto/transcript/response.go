package transcript

import "github.com/meetpulse-team/meetpulse/internal/buffer"

// EntryResponse is one stored transcript entry
type EntryResponse struct {
	Text      string `json:"text"`
	Timestamp int64  `json:"timestamp"`
}

// IngestResponse acknowledges a segment. Status is "stored" or "skipped";
// Entry is present only when stored.
type IngestResponse struct {
	Status string         `json:"status"`
	Entry  *EntryResponse `json:"entry,omitempty"`
}

// TranscriptResponse is an ordered view of a meeting's transcript
type TranscriptResponse struct {
	MeetingID string          `json:"meeting_id"`
	Entries   []EntryResponse `json:"entries"`
	Count     int             `json:"count"`
}

// NewTranscriptResponse converts buffer entries to the wire shape
func NewTranscriptResponse(meetingID string, entries []buffer.Entry) TranscriptResponse {
	out := make([]EntryResponse, len(entries))
	for i, e := range entries {
		out[i] = EntryResponse{Text: e.Text, Timestamp: e.Timestamp}
	}
	return TranscriptResponse{
		MeetingID: meetingID,
		Entries:   out,
		Count:     len(out),
	}
}
