package docker

import (
	"context"
	"errors"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"net/http"

	"wharf/internal/httpwire"
	"wharf/internal/logging"
)

// PullStream is the live progress stream of an image pull. It is finite and
// cannot be replayed. Consume it with Next/Segments for raw chunk payloads or
// with NextEvent/Events for decoded progress messages, not both. The
// connection closes when the stream ends, fails, or Close is called.
type PullStream struct {
	ctx     context.Context
	image   string
	body    io.Closer
	chunks  *httpwire.ChunkReader
	logger  *slog.Logger
	events  eventDecoder
	pending []PullEvent
	err     error
}

// Pull starts POST /images/create?fromImage=<name>. name is sent verbatim;
// use NormalizeImageName to validate user input first. Any status other than
// 200 fails with *httpwire.StatusError.
func (c *Client) Pull(ctx context.Context, name string) (*PullStream, error) {
	resp, err := c.Request(ctx, http.MethodPost, "/images/create?fromImage="+name)
	if err != nil {
		return nil, fmt.Errorf("pull %s: %w", name, err)
	}
	if err := httpwire.ExpectStatus(resp, http.StatusOK); err != nil {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("pull %s: %w", name, err)
	}
	return &PullStream{
		ctx:    ctx,
		image:  name,
		body:   resp.Body,
		chunks: httpwire.NewChunkReader(resp.Body),
		logger: logging.WithContext(ctx, c.logger).With(slog.String(logging.FieldImage, name)),
	}, nil
}

// Next returns the next decoded chunk payload, or io.EOF once the daemon
// sends the terminating chunk.
func (s *PullStream) Next() ([]byte, error) {
	if s.err != nil {
		return nil, s.err
	}
	seg, err := s.chunks.Next()
	if err != nil {
		if ctxErr := s.ctx.Err(); ctxErr != nil && !errors.Is(err, io.EOF) {
			err = ctxErr
		}
		s.fail(err)
		return nil, s.err
	}
	return seg, nil
}

// Segments adapts Next to a range-over-func sequence.
func (s *PullStream) Segments() iter.Seq2[[]byte, error] {
	return func(yield func([]byte, error) bool) {
		for {
			seg, err := s.Next()
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				yield(nil, err)
				return
			}
			if !yield(seg, nil) {
				return
			}
		}
	}
}

// NextEvent returns the next progress message. A message carrying an error
// is returned together with a *PullError and ends the stream.
func (s *PullStream) NextEvent() (PullEvent, error) {
	for len(s.pending) == 0 {
		seg, err := s.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				if ferr := s.events.finish(); ferr != nil {
					s.err = ferr
					return PullEvent{}, ferr
				}
			}
			return PullEvent{}, err
		}
		events, err := s.events.decode(seg)
		if err != nil {
			s.fail(err)
			return PullEvent{}, err
		}
		s.pending = events
	}

	ev := s.pending[0]
	s.pending = s.pending[1:]
	if perr := ev.failure(s.image); perr != nil {
		s.fail(perr)
		return ev, perr
	}
	return ev, nil
}

// Events adapts NextEvent to a range-over-func sequence. A daemon-reported
// failure is yielded with its event and ends iteration.
func (s *PullStream) Events() iter.Seq2[PullEvent, error] {
	return func(yield func(PullEvent, error) bool) {
		for {
			ev, err := s.NextEvent()
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				yield(ev, err)
				return
			}
			if !yield(ev, nil) {
				return
			}
		}
	}
}

// SegmentCount reports how many chunk payloads have been read.
func (s *PullStream) SegmentCount() int { return s.chunks.Segments() }

// Close releases the connection. It is safe to call more than once.
func (s *PullStream) Close() error {
	if s.err == nil {
		s.err = errStreamClosed
	}
	return s.body.Close()
}

var errStreamClosed = errors.New("pull stream closed")

func (s *PullStream) fail(err error) {
	if s.err != nil {
		return
	}
	s.err = err
	_ = s.body.Close()
	if errors.Is(err, io.EOF) {
		s.logger.Debug("pull stream complete", slog.Int("segments", s.chunks.Segments()))
		return
	}
	s.logger.Debug("pull stream failed", slog.Int("segments", s.chunks.Segments()), logging.Error(err))
}

// PullImage pulls name and calls fn for every progress message until the
// daemon finishes. It returns the first error from the stream or from fn.
func (c *Client) PullImage(ctx context.Context, name string, fn func(PullEvent) error) error {
	stream, err := c.Pull(ctx, name)
	if err != nil {
		return err
	}
	defer stream.Close()

	for ev, err := range stream.Events() {
		if err != nil {
			return fmt.Errorf("pull %s: %w", name, err)
		}
		if fn != nil {
			if err := fn(ev); err != nil {
				return err
			}
		}
	}
	return nil
}
