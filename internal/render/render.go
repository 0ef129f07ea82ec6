package render

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/malbeacon/malbeacon/internal/model"
	"github.com/malbeacon/malbeacon/internal/report"
)

const (
	// histogramWidth fits an 80-column terminal with the label gutter.
	histogramWidth = 70

	// maxUserAgents caps the user-agent list in human output.
	maxUserAgents = 5

	// maxURLWidth caps destination cells in the sighting table.
	maxURLWidth = 64

	dateLayout = "2006-01-02"
)

// Raw dumps the records exactly as the upstream sent them, as one JSON
// array. Unknown fields survive the round trip because every beacon
// keeps its original bytes.
func Raw(w io.Writer, beacons []model.Beacon) error {
	records := make([]json.RawMessage, len(beacons))
	for i := range beacons {
		records[i] = beacons[i].Raw
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}

// Human writes the analyst-facing report: the sighting table, distinct
// user agents, the activity window, and the hour-of-day histogram.
func Human(w io.Writer, beacons []model.Beacon, rep report.Report) {
	if !rep.HasActivity() {
		fmt.Fprintln(w, "No records found.")
		writeSkipped(w, rep.Skipped)
		return
	}

	reduced := writeTable(w, beacons)
	reduced = writeUserAgents(w, rep.UserAgents) || reduced
	writeActivity(w, rep)
	writeHistogram(w, rep.Hours)
	writeSkipped(w, rep.Skipped)

	if reduced {
		fmt.Fprintln(w, "\nSome data was reduced for clarity, use --json to dump everything.")
	}
}

// writeTable prints one row per sighting, date first. Consecutive rows
// with the same source IP and destination collapse into one.
func writeTable(w io.Writer, beacons []model.Beacon) bool {
	t := newTable("Timestamp", "IP", "URL")
	reduced := false
	var lastIP, lastURL string
	haveRow := false
	for i := range beacons {
		b := &beacons[i]
		if !b.Valid() {
			continue
		}
		if haveRow && lastIP == b.ActorIP && lastURL == b.C2 {
			reduced = true
			continue
		}
		t.AddRow(b.Timestamp.Format(dateLayout), b.ActorIP, truncate(b.C2, maxURLWidth))
		lastIP, lastURL = b.ActorIP, b.C2
		haveRow = true
	}
	t.render(w)
	return reduced
}

func writeUserAgents(w io.Writer, agents []string) bool {
	if len(agents) == 0 {
		return false
	}
	fmt.Fprintln(w, "\nUser-Agents:")
	shown := agents
	if len(shown) > maxUserAgents {
		shown = shown[:maxUserAgents]
	}
	for _, ua := range shown {
		fmt.Fprintf(w, "    %s\n", ua)
	}
	if len(agents) > maxUserAgents {
		fmt.Fprintln(w, "    ...")
		return true
	}
	return false
}

func writeActivity(w io.Writer, rep report.Report) {
	fmt.Fprintf(w, "\nFirst Active: %s\n", rep.FirstActive.Format(model.TimeLayout))
	fmt.Fprintf(w, "Last Active: %s\n", rep.LastActive.Format(model.TimeLayout))
}

// writeHistogram draws one bar per hour that saw activity, scaled so
// the busiest hour spans the full width.
func writeHistogram(w io.Writer, hours [24]int) {
	max := 0
	for _, n := range hours {
		if n > max {
			max = n
		}
	}
	if max == 0 {
		return
	}
	fmt.Fprintln(w, "\nTime of day histogram:")
	for hour, n := range hours {
		if n == 0 {
			continue
		}
		width := int(math.Round(float64(n) / float64(max) * histogramWidth))
		if width < 1 {
			width = 1
		}
		fmt.Fprintf(w, "%2d: %s (%d)\n", hour, strings.Repeat("o", width), n)
	}
}

func writeSkipped(w io.Writer, skipped int) {
	if skipped == 0 {
		return
	}
	fmt.Fprintf(w, "\nSkipped %d malformed %s.\n", skipped, plural("record", skipped))
}

func plural(noun string, n int) string {
	if n == 1 {
		return noun
	}
	return noun + "s"
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
