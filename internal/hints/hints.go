// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"strings"

	"github.com/pilcrowonpaper/website/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
// Checks for /.dockerenv file which Docker creates automatically.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// IsInCI reports whether a common CI environment variable is set.
var IsInCI = func() bool {
	return os.Getenv("CI") != "" ||
		os.Getenv("GITHUB_ACTIONS") != "" ||
		os.Getenv("GITLAB_CI") != ""
}

// ForBrowserConnect returns hints for PDF export browser launch errors,
// based on the export settings in effect.
func ForBrowserConnect(noSandbox bool, browserBin string) string {
	var hints []string

	if (IsInCI() || IsInContainer()) && !noSandbox {
		hints = append(hints, "set export.noSandbox: true (or WEBSITE_EXPORT_NO_SANDBOX=1) for Docker/CI")
	}
	if browserBin == "" {
		hints = append(hints, "set export.browserBin to use a local Chrome")
	}

	return formatHints(hints)
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config and creating a config in ~/.config/website/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/website.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(p, ".config/website") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForGitHubAuth returns a hint for 401 responses from the GitHub API.
func ForGitHubAuth(tokenSet bool) string {
	if !tokenSet {
		return format("set GITHUB_API_KEY to a personal access token")
	}
	return format("GITHUB_API_KEY was rejected; check it has not expired")
}

// ForListen returns a hint for listener errors.
func ForListen(addr string) string {
	return format("is another process using " + addr + "? use --addr to pick another")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
