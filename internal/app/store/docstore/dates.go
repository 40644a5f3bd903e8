// internal/app/store/docstore/dates.go
package docstore

import (
	"strings"
	"time"
)

// TimeLayout is the single text representation every date field is read
// back in: UTC with millisecond precision, e.g. 2024-03-01T09:30:00.000Z.
const TimeLayout = "2006-01-02T15:04:05.000Z07:00"

// DateFields are the only fields normalized on read.
var DateFields = []string{
	CreatedAtField,
	UpdatedAtField,
	"published_date",
	"date",
	"start_date",
	"end_date",
}

// Layouts accepted when a date field arrives as plain text.
var stringLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// FormatTime renders t in TimeLayout.
func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

// NormalizeDates rewrites every date field of doc in place so consumers
// never branch on representation. Native times become TimeLayout text;
// parseable strings are re-rendered; anything else is left untouched.
func NormalizeDates(doc Document) Document {
	for _, f := range DateFields {
		v, ok := doc[f]
		if !ok || v == nil {
			continue
		}
		if s, ok := normalizeDate(v); ok {
			doc[f] = s
		}
	}
	return doc
}

func normalizeDate(v any) (string, bool) {
	switch t := v.(type) {
	case time.Time:
		return FormatTime(t), true
	case *time.Time:
		if t == nil {
			return "", false
		}
		return FormatTime(*t), true
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return "", false
		}
		for _, layout := range stringLayouts {
			if parsed, err := time.Parse(layout, s); err == nil {
				return FormatTime(parsed), true
			}
		}
	}
	return "", false
}
