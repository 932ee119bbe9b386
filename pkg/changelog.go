package addonbump

import (
	"strings"
	"time"
)

// DateFormat is the ISO 8601 calendar date used in version labels.
const DateFormat = "2006-01-02"

// Entry is a single changelog entry.
type Entry struct {
	Version string
	// Date is omitted from the label when zero.
	Date time.Time
	Text string
}

// NewEntry builds an entry for version. When addDate is set, today's
// calendar date is included in the label.
func NewEntry(version, text string, addDate bool, today time.Time) Entry {
	e := Entry{Version: version, Text: text}
	if addDate {
		e.Date = today
	}
	return e
}

// Label returns "v1.2.4" or "v1.2.4 (2026-10-19)".
func (e Entry) Label() string {
	label := "v" + e.Version
	if !e.Date.IsZero() {
		label += " (" + e.Date.Format(DateFormat) + ")"
	}
	return label
}

// String renders the entry as it is written to changelog.txt:
// the label, the text, then a blank line.
func (e Entry) String() string {
	return e.Label() + "\n" + e.Text + "\n\n"
}

// NormalizeText trims the raw changelog text and turns literal \n and \t
// escape sequences into newlines and tabs, so multi-line entries can be
// passed as a single shell argument.
func NormalizeText(raw string) string {
	text := strings.TrimSpace(raw)
	text = strings.ReplaceAll(text, `\n`, "\n")
	text = strings.ReplaceAll(text, `\t`, "\t")
	return text
}
