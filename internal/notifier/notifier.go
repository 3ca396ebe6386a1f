// Package notifier announces newly discovered committee meetings.
package notifier

import (
	"github.com/VOST-dev/committee-scheduler/internal/meeting"
)

// Notifier defines the interface for posting meeting announcements
type Notifier interface {
	// Notify posts announcements for the given meetings
	Notify(records []meeting.Record) error
}
