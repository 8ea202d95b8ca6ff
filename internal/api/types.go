package api

import (
	"time"

	"github.com/pageza/glucotrack/backend/internal/models"
	"github.com/pageza/glucotrack/backend/internal/units"
)

// EntryResponse is a glucose entry as rendered to clients, with BloodSugar
// converted to the requester's display unit.
type EntryResponse struct {
	EntryID    string  `json:"entry_id"`
	Username   string  `json:"username"`
	BloodSugar float64 `json:"blood_sugar"`
	Meal       string  `json:"meal"`
	Exercise   string  `json:"exercise"`
	Date       string  `json:"date"`
	CreatedAt  string  `json:"created_at"`
}

func toEntryResponse(e models.GlucoseEntry, displayUnit units.Unit) EntryResponse {
	value, err := units.FromCanonical(e.BloodSugar, displayUnit)
	if err != nil {
		// Unknown display units cannot come from the preference service;
		// fall back to the stored value rather than dropping the entry.
		value = e.BloodSugar
	}
	return EntryResponse{
		EntryID:    e.EntryID.String(),
		Username:   e.Username,
		BloodSugar: value,
		Meal:       e.Meal,
		Exercise:   e.Exercise,
		Date:       e.Date.Format(time.RFC3339),
		CreatedAt:  e.CreatedAt.Format(time.RFC3339),
	}
}

// entryDateFormats are the accepted observation timestamp layouts, tried in
// order. Clients historically send anything from full RFC3339 down to a bare
// date.
var entryDateFormats = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

func parseEntryDate(s string) (time.Time, error) {
	var lastErr error
	for _, layout := range entryDateFormats {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
