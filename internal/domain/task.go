package domain

import (
	"fmt"
	"strings"
	"time"
)

type Task struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

// Validate checks that the task carries an identifier and a non-blank name.
func (t *Task) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("task ID is required")
	}
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("task name is required")
	}
	return nil
}
