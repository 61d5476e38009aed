package tools

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// DateTimeTool answers questions about the current date or time without a
// model round trip.
type DateTimeTool struct {
	// Now is swappable for tests; defaults to time.Now.
	Now func() time.Time
}

func NewDateTimeTool() *DateTimeTool {
	return &DateTimeTool{Now: time.Now}
}

func (t *DateTimeTool) Name() string {
	return "current_datetime"
}

func (t *DateTimeTool) Description() string {
	return "Returns the current date and time"
}

var dateTriggers = []string{
	"current date",
	"today's date",
	"todays date",
	"what day is it",
	"what time is it",
	"current time",
	"date today",
}

func (t *DateTimeTool) Triggered(prompt string) bool {
	lower := strings.ToLower(prompt)
	for _, trigger := range dateTriggers {
		if strings.Contains(lower, trigger) {
			return true
		}
	}
	return false
}

func (t *DateTimeTool) Call(ctx context.Context, prompt string) (string, error) {
	now := t.Now()
	return fmt.Sprintf("Today is %s and the current time is %s.",
		now.Format("Monday, January 2, 2006"),
		now.Format("15:04 MST"),
	), nil
}
