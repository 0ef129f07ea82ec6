package report

import (
	"time"

	"github.com/malbeacon/malbeacon/internal/model"
)

// Report summarizes the beacon activity behind one lookup.
type Report struct {
	Count       int       `json:"count"`
	Skipped     int       `json:"skipped"`
	FirstActive time.Time `json:"first_active"`
	LastActive  time.Time `json:"last_active"`
	UserAgents  []string  `json:"user_agents"`
	Hours       [24]int   `json:"hours"`
}

// Build aggregates beacons in a single pass. Invalid beacons are
// skipped and counted; they never reach the histogram or the activity
// window, so the hour buckets always sum to Count.
func Build(beacons []model.Beacon) Report {
	var rep Report
	seen := make(map[string]bool)
	for i := range beacons {
		b := &beacons[i]
		if !b.Valid() {
			rep.Skipped++
			continue
		}
		if rep.Count == 0 || b.Timestamp.Before(rep.FirstActive) {
			rep.FirstActive = b.Timestamp
		}
		if rep.Count == 0 || b.Timestamp.After(rep.LastActive) {
			rep.LastActive = b.Timestamp
		}
		rep.Hours[b.Timestamp.Hour()]++
		rep.Count++

		// Distinct user agents, in order of first appearance. The
		// upstream "NA" placeholder decodes to "" and is not a UA.
		if b.UserAgent != "" && !seen[b.UserAgent] {
			seen[b.UserAgent] = true
			rep.UserAgents = append(rep.UserAgents, b.UserAgent)
		}
	}
	return rep
}

// HasActivity reports whether any valid beacon made it into the report.
func (r Report) HasActivity() bool {
	return r.Count > 0
}
