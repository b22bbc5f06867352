// Package dateutil parses post dates and formats them for display.
package dateutil

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrInvalidDate indicates a post date that is not a YYYY-MM-DD calendar date.
	ErrInvalidDate = errors.New("invalid date")

	// ErrInvalidDateFormat indicates an invalid display format string.
	ErrInvalidDateFormat = errors.New("invalid date format")
)

// MaxDateFormatLength limits display format strings.
const MaxDateFormatLength = 50

// DefaultDisplayFormat renders dates as "May 1, 2023".
const DefaultDisplayFormat = "MMMM D, YYYY"

// postDateLayout is the slash form every post date is normalized to.
const postDateLayout = "2006/01/02"

// dateTokens maps display tokens to Go layout components.
// Longest tokens first so matching is greedy.
var dateTokens = []struct {
	token string
	goFmt string
}{
	{"YYYY", "2006"},
	{"MMMM", "January"},
	{"MMM", "Jan"},
	{"YY", "06"},
	{"MM", "01"},
	{"DD", "02"},
	{"M", "1"},
	{"D", "2"},
}

// DatePresets provides named shortcuts for display formats.
var DatePresets = map[string]string{
	"iso":      "YYYY-MM-DD",
	"european": "DD/MM/YYYY",
	"us":       "MM/DD/YYYY",
	"long":     DefaultDisplayFormat,
}

// ParsePostDate parses a front matter date written as YYYY-MM-DD.
// Dashes are replaced with slashes before parsing so legacy YYYY/MM/DD values
// are accepted too. The result is midnight UTC of that calendar day.
func ParsePostDate(value string) (time.Time, error) {
	normalized := strings.ReplaceAll(strings.TrimSpace(value), "-", "/")
	if normalized == "" {
		return time.Time{}, fmt.Errorf("%w: empty", ErrInvalidDate)
	}
	t, err := time.ParseInLocation(postDateLayout, normalized, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, value)
	}
	return t, nil
}

// ParseDateFormat converts a display format such as "MMMM D, YYYY" to a Go layout.
// Tokens: YYYY, YY, MMMM, MMM, MM, M, DD, D. Text inside brackets is kept
// literally, and so is any character outside a token.
func ParseDateFormat(format string) (string, error) {
	if format == "" {
		return "", fmt.Errorf("%w: format cannot be empty", ErrInvalidDateFormat)
	}
	if len(format) > MaxDateFormatLength {
		return "", fmt.Errorf("%w: format exceeds %d characters", ErrInvalidDateFormat, MaxDateFormatLength)
	}
	if preset, ok := DatePresets[strings.ToLower(format)]; ok {
		format = preset
	}

	var b strings.Builder
	b.Grow(len(format) + 10)

	for i := 0; i < len(format); {
		if format[i] == '[' {
			end := strings.Index(format[i+1:], "]")
			if end == -1 {
				return "", fmt.Errorf("%w: unclosed bracket at position %d", ErrInvalidDateFormat, i)
			}
			b.WriteString(format[i+1 : i+1+end])
			i += end + 2
			continue
		}

		matched := false
		for _, t := range dateTokens {
			if strings.HasPrefix(format[i:], t.token) {
				b.WriteString(t.goFmt)
				i += len(t.token)
				matched = true
				break
			}
		}
		if !matched {
			b.WriteByte(format[i])
			i++
		}
	}

	return b.String(), nil
}

// Formatter renders dates with a display format resolved once.
type Formatter struct {
	layout string
}

// NewFormatter resolves format (a token string or preset name).
// An empty format uses DefaultDisplayFormat.
func NewFormatter(format string) (*Formatter, error) {
	if format == "" {
		format = DefaultDisplayFormat
	}
	layout, err := ParseDateFormat(format)
	if err != nil {
		return nil, err
	}
	return &Formatter{layout: layout}, nil
}

// Format renders t in the formatter's layout.
func (f *Formatter) Format(t time.Time) string {
	return t.Format(f.layout)
}
