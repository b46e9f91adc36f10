package tui

import (
	"context"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	releaseOwner = "naveenspark"
	releaseRepo  = "ghfinder"
)

// versionCheckMsg carries the result of a background release check.
type versionCheckMsg struct {
	latestVersion string
	hasUpdate     bool
}

// checkVersion asks GitHub for the latest release without blocking the UI.
// Dev builds skip the check.
func checkVersion(dir Directory, current string) tea.Cmd {
	if dir == nil || current == "" || current == "dev" {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		tag, err := dir.LatestRelease(ctx, releaseOwner, releaseRepo)
		if err != nil {
			return versionCheckMsg{}
		}
		latest := strings.TrimPrefix(tag, "v")
		if isNewerVersion(latest, current) {
			return versionCheckMsg{latestVersion: "v" + latest, hasUpdate: true}
		}
		return versionCheckMsg{}
	}
}

// isNewerVersion returns true if latest is a newer semver than current.
// Pre-release and build suffixes are ignored.
func isNewerVersion(latest, current string) bool {
	l := parseSemver(latest)
	c := parseSemver(current)
	for i := range l {
		if l[i] != c[i] {
			return l[i] > c[i]
		}
	}
	return false
}

func parseSemver(v string) [3]int {
	v = strings.TrimPrefix(v, "v")
	if i := strings.IndexAny(v, "-+"); i >= 0 {
		v = v[:i]
	}
	var out [3]int
	for i, part := range strings.SplitN(v, ".", 3) {
		n, _ := strconv.Atoi(part) //nolint:errcheck // zero-value on parse failure is desired
		out[i] = n
	}
	return out
}
