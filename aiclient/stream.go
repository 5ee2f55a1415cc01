package aiclient

import (
	"bufio"
	"context"
	"errors"
	"io"
)

// lineParser turns one raw line of the backend's wire format into a text
// chunk. done reports the backend's explicit end-of-stream marker.
type lineParser func(line []byte) (chunk string, done bool, err error)

// Stream is a lazy, one-shot, forward-only sequence of generated text
// chunks. Recv returns io.EOF when the backend finishes; Close aborts the
// underlying call and must always be called.
type Stream struct {
	ctx     context.Context
	cancel  context.CancelFunc
	body    io.ReadCloser
	scanner *bufio.Scanner
	backend string
	parse   lineParser
	done    bool
}

func newStream(ctx context.Context, cancel context.CancelFunc, body io.ReadCloser, backend string, parse lineParser) *Stream {
	scanner := bufio.NewScanner(body)
	// Generated chunks are small, but a single NDJSON line can carry a long
	// tail of metadata on the final message.
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &Stream{
		ctx:     ctx,
		cancel:  cancel,
		body:    body,
		scanner: scanner,
		backend: backend,
		parse:   parse,
	}
}

// Recv returns the next non-empty text chunk, or io.EOF once the stream has
// ended. After any error the stream is spent.
func (s *Stream) Recv() (string, error) {
	if s.done {
		return "", io.EOF
	}
	for s.scanner.Scan() {
		chunk, done, err := s.parse(s.scanner.Bytes())
		if err != nil {
			s.done = true
			return "", &GenerationError{Kind: KindInvalidResponse, Backend: s.backend, Err: err}
		}
		if done {
			s.done = true
			if chunk != "" {
				return chunk, nil
			}
			return "", io.EOF
		}
		if chunk != "" {
			return chunk, nil
		}
	}
	s.done = true
	if err := s.scanner.Err(); err != nil {
		if errors.Is(err, context.DeadlineExceeded) || s.ctx.Err() == context.DeadlineExceeded {
			return "", &GenerationError{Kind: KindTimeout, Backend: s.backend, Err: err}
		}
		return "", &GenerationError{Kind: KindBackendError, Backend: s.backend, Err: err}
	}
	return "", io.EOF
}

// Close releases the connection and cancels the in-flight call.
func (s *Stream) Close() error {
	s.done = true
	err := s.body.Close()
	s.cancel()
	return err
}
