package security

import (
	"log/slog"
	"time"
)

// Event kinds recorded by the Auditor.
const (
	EventHostRejected  = "host_rejected"
	EventPathTraversal = "path_traversal"
)

// Event is one rejected request kept for offline review.
type Event struct {
	Kind     string
	Peer     string
	Path     string
	Detail   string
	Occurred time.Time
}

// Auditor writes security rejections to the structured log under a fixed
// message so they can be filtered apart from ordinary traffic noise. A nil
// *Auditor records nothing.
type Auditor struct {
	logger *slog.Logger
}

// NewAuditor returns an auditor writing to logger.
func NewAuditor(logger *slog.Logger) *Auditor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Auditor{logger: logger}
}

// Record logs one event, stamping Occurred if unset.
func (a *Auditor) Record(ev Event) {
	if a == nil {
		return
	}
	if ev.Occurred.IsZero() {
		ev.Occurred = time.Now().UTC()
	}
	a.logger.Warn("security audit",
		"kind", ev.Kind,
		"peer", ev.Peer,
		"path", ev.Path,
		"detail", ev.Detail,
		"occurred", ev.Occurred.Format(time.RFC3339),
	)
}
