// Package present maps search results to their display form: per-type icon,
// color, and label metadata, composed subtitles, and humanized dates.
package present

import (
	"fmt"
	"strings"
	"time"

	"beacon_backend/internal/search/domain"
)

// Meta is the visual identity of a searchable type.
type Meta struct {
	Icon  string `json:"icon"`
	Color string `json:"color"`
	Label string `json:"label"`
}

// typeMeta must cover every SearchableType; the exhaustiveness test keeps it
// in lock-step with the enum.
var typeMeta = map[domain.SearchableType]Meta{
	domain.TypeCustomer:    {Icon: "building", Color: "blue", Label: "Customer"},
	domain.TypeStakeholder: {Icon: "user", Color: "teal", Label: "Stakeholder"},
	domain.TypeEmail:       {Icon: "mail", Color: "amber", Label: "Email"},
	domain.TypeMeeting:     {Icon: "calendar", Color: "purple", Label: "Meeting"},
	domain.TypeDocument:    {Icon: "file-text", Color: "slate", Label: "Document"},
	domain.TypePlaybook:    {Icon: "book-open", Color: "green", Label: "Playbook"},
	domain.TypeTask:        {Icon: "check-square", Color: "orange", Label: "Task"},
	domain.TypeNote:        {Icon: "sticky-note", Color: "yellow", Label: "Note"},
	domain.TypeActivity:    {Icon: "activity", Color: "rose", Label: "Activity"},
}

var unknownMeta = Meta{Icon: "circle", Color: "gray", Label: "Item"}

// MetaFor returns the visual identity for a type. Unknown types get a
// neutral fallback rather than an error.
func MetaFor(t domain.SearchableType) Meta {
	if meta, ok := typeMeta[t]; ok {
		return meta
	}
	return unknownMeta
}

// Subtitle composes the secondary line for a result: customer context,
// type-specific detail, then a humanized date. Parts are joined with a
// middle dot.
func Subtitle(r domain.Result, now time.Time) string {
	parts := make([]string, 0, 3)

	if r.Metadata.CustomerName != "" {
		parts = append(parts, r.Metadata.CustomerName)
	}

	switch r.Type {
	case domain.TypeEmail:
		if r.Metadata.From != "" {
			parts = append(parts, "from "+r.Metadata.From)
		}
	case domain.TypeMeeting:
		if r.Metadata.Attendees == 1 {
			parts = append(parts, "1 attendee")
		} else if r.Metadata.Attendees > 1 {
			parts = append(parts, fmt.Sprintf("%d attendees", r.Metadata.Attendees))
		}
	case domain.TypeTask:
		if r.Metadata.Status != "" {
			parts = append(parts, r.Metadata.Status)
		}
	}

	if r.Metadata.Date != nil {
		parts = append(parts, RelativeDate(*r.Metadata.Date, now))
	}

	return strings.Join(parts, " · ")
}

// RelativeDate humanizes a timestamp relative to now: Today, Yesterday,
// N days ago, N weeks ago, then an absolute date. Future timestamps (a
// scheduled meeting) render as the absolute date.
func RelativeDate(ts, now time.Time) string {
	// Bucket by calendar day in the viewer's zone, not by 24h intervals of
	// absolute time, so "Today" flips exactly at local midnight.
	local := ts.In(now.Location())
	tsDay := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, now.Location())
	nowDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	days := int(nowDay.Sub(tsDay).Round(24*time.Hour).Hours() / 24)

	switch {
	case days < 0:
		return ts.Format("Jan 2, 2006")
	case days == 0:
		return "Today"
	case days == 1:
		return "Yesterday"
	case days < 7:
		return fmt.Sprintf("%d days ago", days)
	case days < 28:
		weeks := days / 7
		if weeks == 1 {
			return "1 week ago"
		}
		return fmt.Sprintf("%d weeks ago", weeks)
	default:
		return ts.Format("Jan 2, 2006")
	}
}
