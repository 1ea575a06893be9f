// Package run tracks a per-invocation summary of the work a tool performed.
package run

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Summary records what a single tool invocation did. It is logged at the
// end of every run; nothing is persisted.
type Summary struct {
	ID         string
	Tool       string
	StartedAt  time.Time
	FinishedAt time.Time
	Processed  int
	Succeeded  int
	Failed     int
	Skipped    int
}

// NewSummary starts a summary for the named tool.
func NewSummary(tool string) *Summary {
	return &Summary{
		ID:        uuid.NewString(),
		Tool:      tool,
		StartedAt: time.Now(),
	}
}

// Finish stamps the end of the run.
func (s *Summary) Finish() {
	s.FinishedAt = time.Now()
}

func (s *Summary) String() string {
	return fmt.Sprintf("run %s (%s): processed=%d succeeded=%d failed=%d skipped=%d in %s",
		s.ID, s.Tool, s.Processed, s.Succeeded, s.Failed, s.Skipped,
		s.FinishedAt.Sub(s.StartedAt).Round(time.Millisecond))
}
