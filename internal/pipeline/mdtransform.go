package pipeline

import "regexp"

var (
	crlfOrCR           = regexp.MustCompile(`\r\n?`)
	multipleBlankLines = regexp.MustCompile(`\n{3,}`)
)

// Preprocess normalizes line endings and collapses runs of blank lines.
// It never looks inside the text, so code is left as written.
func Preprocess(content string) string {
	content = crlfOrCR.ReplaceAllString(content, "\n")
	return multipleBlankLines.ReplaceAllString(content, "\n\n")
}
