package notifier

import (
	"fmt"

	"github.com/VOST-dev/committee-scheduler/internal/meeting"
)

// DryRunNotifier prints what would be posted without actually posting
type DryRunNotifier struct{}

// NewDryRunNotifier creates a new dry-run notifier
func NewDryRunNotifier() *DryRunNotifier {
	return &DryRunNotifier{}
}

// Notify prints the announcements that would be posted
func (n *DryRunNotifier) Notify(records []meeting.Record) error {
	for i, rec := range records {
		post := formatPost(rec)
		fmt.Printf("--- Announcement %d/%d ---\n", i+1, len(records))
		fmt.Println(post)
		fmt.Println()
	}
	return nil
}
