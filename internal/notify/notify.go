// Package notify holds the ephemeral status notes shown to the
// operator above the status bar.
package notify

import "time"

// Level classifies a note for styling.
type Level int

const (
	Info Level = iota
	Success
	Warning
	Error
)

// TTL is how long a note stays visible after being pushed.
const TTL = 3 * time.Second

// Note is one ephemeral operator message.
type Note struct {
	Level   Level
	Message string
	Expires time.Time
}

// Center collects notes and drops them as they expire. It is owned by
// the UI's update loop and needs no lock.
type Center struct {
	notes []Note
	now   func() time.Time
}

// NewCenter returns an empty notification center.
func NewCenter() *Center {
	return &Center{now: time.Now}
}

// Push adds a note that expires after TTL.
func (c *Center) Push(level Level, message string) {
	c.notes = append(c.notes, Note{
		Level:   level,
		Message: message,
		Expires: c.now().Add(TTL),
	})
}

// Active prunes expired notes and returns the remainder, oldest first.
func (c *Center) Active() []Note {
	now := c.now()
	kept := c.notes[:0]
	for _, n := range c.notes {
		if n.Expires.After(now) {
			kept = append(kept, n)
		}
	}
	c.notes = kept
	out := make([]Note, len(kept))
	copy(out, kept)
	return out
}
