package output

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

const (
	headerTimeLayout = "2006-01-02 15:04:05"
	nameTimeLayout   = "2006-01-02 15-04-05"

	executiveHeading = "EXECUTIVE SUMMARY"
	detailedHeading  = "DETAILED SUMMARY"
)

// MeetingName is the last segment of the transcript's parent directory.
// Zoom stores each meeting in its own folder, so this is the meeting title.
func MeetingName(source string) string {
	name := filepath.Base(filepath.Dir(source))
	if name == "." || name == string(filepath.Separator) {
		return "transcript"
	}
	return name
}

// DeriveName builds the base output name shared by the local file and the remote document.
func DeriveName(source string, ts time.Time) string {
	return fmt.Sprintf("%s_%s", MeetingName(source), ts.Format(nameTimeLayout))
}

// Format renders the full local document: header, executive section, detailed section.
func Format(res Result) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Meeting: %s\n\n", MeetingName(res.Source))
	fmt.Fprintf(&b, "Source: %s\n", filepath.Base(res.Source))
	fmt.Fprintf(&b, "Generated: %s\n\n", res.Timestamp.Format(headerTimeLayout))

	fmt.Fprintf(&b, "## %s\n\n", executiveHeading)
	b.WriteString(strings.TrimSpace(res.Executive))
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "## %s\n\n", detailedHeading)
	b.WriteString(strings.TrimSpace(strings.Join(res.Details, "\n")))
	b.WriteString("\n")

	return b.String()
}

// RawText is the headerless summary body sent to the remote store.
func RawText(res Result) string {
	executive := strings.TrimSpace(res.Executive)
	detail := strings.TrimSpace(strings.Join(res.Details, "\n"))
	switch {
	case executive == "":
		return detail
	case detail == "":
		return executive
	}
	return executive + "\n\n" + detail
}
