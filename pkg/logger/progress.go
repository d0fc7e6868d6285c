package logger

import (
	"fmt"
	"sync"
	"time"
)

// ProgressReporter logs "n/total" lines while a batch of steps completes. It is safe for
// concurrent use by the goroutines doing the work.
type ProgressReporter struct {
	mu          sync.Mutex
	total       int
	current     int
	failed      int
	description string
	startTime   time.Time
	logger      *Logger
}

// NewProgressReporter creates a reporter for total steps.
func NewProgressReporter(log *Logger, total int, description string) *ProgressReporter {
	if log == nil {
		log = GetLogger()
	}
	return &ProgressReporter{
		total:       total,
		description: description,
		startTime:   time.Now(),
		logger:      log.Component("progress"),
	}
}

// Done records one finished step. A non-nil err counts the step as failed.
func (pr *ProgressReporter) Done(item string, err error) {
	pr.mu.Lock()
	defer pr.mu.Unlock()

	pr.current++
	entry := pr.logger.WithFields(map[string]interface{}{
		"item":    item,
		"current": pr.current,
		"total":   pr.total,
		"elapsed": time.Since(pr.startTime).Round(time.Millisecond).String(),
	})
	if err != nil {
		pr.failed++
		entry.WithError(err).Warn(fmt.Sprintf("%s: %d/%d failed", pr.description, pr.current, pr.total))
		return
	}
	entry.Info(fmt.Sprintf("%s: %d/%d", pr.description, pr.current, pr.total))
}

// Counts returns finished and failed step counts.
func (pr *ProgressReporter) Counts() (current, failed, total int) {
	pr.mu.Lock()
	defer pr.mu.Unlock()
	return pr.current, pr.failed, pr.total
}
