package postprocess

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyMatch indicates a rule with nothing to match.
	// strings.ReplaceAll with an empty pattern would insert between every rune.
	ErrEmptyMatch = errors.New("color rule has empty match")

	// ErrBodyRead indicates a response body that cannot be handled as text.
	ErrBodyRead = errors.New("response body is not readable as text")
)

// Rule replaces every occurrence of Match with Replace.
type Rule struct {
	Match   string
	Replace string
}

// Rules is an ordered substitution list.
type Rules []Rule

// Apply runs each rule over the whole text in order. A rule sees the output of
// the rules before it, not the original text.
func (rs Rules) Apply(text string) string {
	for _, r := range rs {
		text = strings.ReplaceAll(text, r.Match, r.Replace)
	}
	return text
}

// Validate rejects rules with an empty Match.
func (rs Rules) Validate() error {
	for i, r := range rs {
		if r.Match == "" {
			return fmt.Errorf("%w: rule %d", ErrEmptyMatch, i)
		}
	}
	return nil
}

// Highlighter palette of the site. Source literals come from the light theme
// the code blocks were authored against; #569CD6 is the dark theme keyword blue.
const (
	ColorPunctuation = "#24292EFF"
	ColorComment     = "#a8a8a8"
	ColorString      = "#509c30"
	ColorFunction    = "#239ecf"
	ColorVariable    = "#7575ff"
	ColorKeyword     = "#e35349"
)

// DefaultRules returns the site's color rules in the order they must run.
//
// The two span rules come first: they match the function color #6F42C1 on a
// leading "." and must run before the plain #6F42C1 rule rewrites it. The
// second span rule emits #6F42C1 again, which the function rule then turns
// into ColorFunction.
func DefaultRules() Rules {
	return Rules{
		{
			Match:   `<span style="color: #6F42C1">.</span>`,
			Replace: `<span style="color: ` + ColorPunctuation + `">.</span>`,
		},
		{
			Match:   `<span style="color: #6F42C1">.`,
			Replace: `<span style="color: ` + ColorPunctuation + `">.</span><span style="color: #6F42C1">`,
		},
		{Match: "#C2C3C5", Replace: ColorComment},
		{Match: "#22863A", Replace: ColorString},
		{Match: "#6F42C1", Replace: ColorFunction},
		{Match: "#1976D2", Replace: ColorVariable},
		{Match: "#D32F2F", Replace: ColorKeyword},
		{Match: "#569CD6", Replace: ColorKeyword},
	}
}
