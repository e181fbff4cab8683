package docker

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"unicode/utf8"
)

var errInvalidUTF8 = errors.New("payload is not valid UTF-8")

// PullEvent is one progress message from POST /images/create.
type PullEvent struct {
	Status         string          `json:"status,omitempty"`
	ID             string          `json:"id,omitempty"`
	Progress       string          `json:"progress,omitempty"`
	ProgressDetail *ProgressDetail `json:"progressDetail,omitempty"`
	Error          string          `json:"error,omitempty"`
	ErrorDetail    *ErrorDetail    `json:"errorDetail,omitempty"`
}

// ProgressDetail carries byte counts for download and extract phases.
type ProgressDetail struct {
	Current int64 `json:"current"`
	Total   int64 `json:"total"`
}

// ErrorDetail is the structured form of PullEvent.Error.
type ErrorDetail struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Percent returns completion in [0, 100], or -1 when the event has no totals.
func (e PullEvent) Percent() float64 {
	if e.ProgressDetail == nil || e.ProgressDetail.Total <= 0 {
		return -1
	}
	pct := float64(e.ProgressDetail.Current) / float64(e.ProgressDetail.Total) * 100
	return min(max(pct, 0), 100)
}

func (e PullEvent) failure(image string) error {
	if e.Error == "" && e.ErrorDetail == nil {
		return nil
	}
	perr := &PullError{Image: image, Message: e.Error}
	if e.ErrorDetail != nil {
		perr.Code = e.ErrorDetail.Code
		if perr.Message == "" {
			perr.Message = e.ErrorDetail.Message
		}
	}
	return perr
}

// eventDecoder splits segment payloads into JSON messages. A message split
// across chunk boundaries is carried over to the next segment.
type eventDecoder struct {
	partial []byte
}

func (d *eventDecoder) decode(seg []byte) ([]PullEvent, error) {
	data := seg
	if len(d.partial) > 0 {
		data = append(d.partial, seg...)
		d.partial = nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	var events []PullEvent
	for {
		start := dec.InputOffset()
		var raw json.RawMessage
		err := dec.Decode(&raw)
		if errors.Is(err, io.EOF) {
			return events, nil
		}
		if errors.Is(err, io.ErrUnexpectedEOF) {
			d.partial = append([]byte(nil), data[start:]...)
			return events, nil
		}
		if err != nil {
			return nil, &DecodeError{Subject: "pull progress", Err: err}
		}
		if !utf8.Valid(raw) {
			return nil, &DecodeError{Subject: "pull progress", Err: errInvalidUTF8}
		}
		var ev PullEvent
		if err := json.Unmarshal(raw, &ev); err != nil {
			return nil, &DecodeError{Subject: "pull progress", Err: err}
		}
		events = append(events, ev)
	}
}

// finish reports a message left incomplete at end of stream.
func (d *eventDecoder) finish() error {
	if len(bytes.TrimSpace(d.partial)) == 0 {
		return nil
	}
	return &DecodeError{Subject: "pull progress", Err: io.ErrUnexpectedEOF}
}
