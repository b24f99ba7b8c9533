package cli

import (
	"strings"
	"time"
)

const (
	// templateDateLayout formats {date} placeholders.
	templateDateLayout = "20060102"
	// templateTimeLayout formats {time} placeholders.
	templateTimeLayout = "150405"
)

// ExpandOutputTemplate substitutes the {label}, {date}, and {time}
// placeholders of an output filename template. The timestamp only influences
// the filename; document content is independent of it.
func ExpandOutputTemplate(template, label string, now time.Time) string {
	replacer := strings.NewReplacer(
		"{label}", label,
		"{date}", now.Format(templateDateLayout),
		"{time}", now.Format(templateTimeLayout),
	)
	return replacer.Replace(template)
}
