package pose

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
)

// Source is anything that can provide poses over time: a capture pipeline,
// a recorded session, a test fixture. It returns io.EOF when exhausted.
type Source interface {
	Next(ctx context.Context) (Pose, error)
}

// readerSource yields one pose per JSON line.
type readerSource struct {
	scanner *bufio.Scanner
	line    int
}

// NewReaderSource reads JSON-lines frames from r. Blank lines are skipped and
// frames without usable landmarks are dropped, as a live capture would drop them.
func NewReaderSource(r io.Reader) Source {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &readerSource{scanner: sc}
}

func (s *readerSource) Next(ctx context.Context) (Pose, error) {
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !s.scanner.Scan() {
			if err := s.scanner.Err(); err != nil {
				return nil, fmt.Errorf("read frame: %w", err)
			}
			return nil, io.EOF
		}
		s.line++

		raw := bytes.TrimSpace(s.scanner.Bytes())
		if len(raw) == 0 {
			continue
		}
		p, err := Decode(raw)
		if errors.Is(err, ErrEmptyPose) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("frame line %d: %w", s.line, err)
		}
		return p, nil
	}
}

// sliceSource replays an in-memory pose sequence.
type sliceSource struct {
	poses []Pose
	next  int
}

// NewSliceSource returns a Source over poses.
func NewSliceSource(poses []Pose) Source {
	return &sliceSource{poses: poses}
}

func (s *sliceSource) Next(ctx context.Context) (Pose, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.next >= len(s.poses) {
		return nil, io.EOF
	}
	p := s.poses[s.next]
	s.next++
	return p, nil
}
