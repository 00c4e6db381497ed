package pickups

import (
	"time"

	"github.com/wastewise/wastewise-backend/pkg/enums"
	"github.com/wastewise/wastewise-backend/pkg/types"
)

// Wizard steps, in order. A draft at stepDetails has nothing confirmed
// yet; submit is only legal from stepContact with a complete draft.
const (
	stepDetails = iota + 1
	stepSchedule
	stepContact
)

// Draft is the in-progress wizard state for one session. It lives in
// Redis with a TTL so an abandoned wizard simply evaporates.
type Draft struct {
	Step     int                      `json:"step"`
	Category enums.CollectionCategory `json:"category,omitempty"`
	Bucket   enums.QuantityBucket     `json:"bucket,omitempty"`
	Date     string                   `json:"date,omitempty"`
	Slot     enums.TimeSlot           `json:"slot,omitempty"`
	Contact  types.Contact            `json:"contact"`
}

func newDraft() *Draft {
	return &Draft{Step: stepDetails}
}

// DraftSummary carries the display labels the wizard's summary panel
// shows alongside the raw draft values.
type DraftSummary struct {
	Category string `json:"category,omitempty"`
	Bucket   string `json:"bucket,omitempty"`
	Date     string `json:"date,omitempty"`
	Slot     string `json:"slot,omitempty"`
}

// DraftView pairs the stored draft with its recomputed summary.
type DraftView struct {
	*Draft
	Summary DraftSummary `json:"summary"`
}

const summaryDateLayout = "Mon, Jan 2, 2006"

func (d *Draft) view() *DraftView {
	view := &DraftView{Draft: d}
	if d.Category != "" {
		view.Summary.Category = d.Category.Label()
	}
	if d.Bucket != "" {
		view.Summary.Bucket = d.Bucket.Label()
	}
	if d.Date != "" {
		if parsed, err := time.ParseInLocation(dateLayout, d.Date, time.UTC); err == nil {
			view.Summary.Date = parsed.Format(summaryDateLayout)
		}
	}
	if d.Slot != "" {
		view.Summary.Slot = d.Slot.Label()
	}
	return view
}

func (d *Draft) hasDetails() bool {
	return d.Category != "" && d.Bucket != ""
}

func (d *Draft) hasSchedule() bool {
	return d.Date != "" && d.Slot != ""
}

func (d *Draft) hasContact() bool {
	c := d.Contact
	return c.Name != "" && c.Email != "" && c.Phone != "" && c.Address != "" && c.City != "" && c.Pincode != ""
}
