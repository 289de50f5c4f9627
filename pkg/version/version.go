// Package version exposes build metadata injected at link time.
package version

import (
	"encoding/json"
	"fmt"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/pterm/pterm"
)

var (
	// Version is the semantic version, set via -ldflags at build time.
	Version = "dev"
	// Commit is the short git SHA the binary was built from.
	Commit = "none"
	// Date is the build date.
	Date = "unknown"
)

func init() {
	populateFromBuildInfo()
}

// populateFromBuildInfo fills in Commit and Date from the VCS stamps the Go
// toolchain embeds, unless ldflags already set them.
func populateFromBuildInfo() {
	bi, ok := debug.ReadBuildInfo()
	if !ok || bi == nil {
		return
	}

	get := func(key string) string {
		for _, s := range bi.Settings {
			if s.Key == key {
				return s.Value
			}
		}
		return ""
	}

	if Commit == "none" {
		if rev := get("vcs.revision"); len(rev) >= 7 {
			Commit = rev[:7]
			if get("vcs.modified") == "true" {
				Commit += "-dirty"
			}
		}
	}
	if Date == "unknown" {
		if ts, err := time.Parse(time.RFC3339, get("vcs.time")); err == nil {
			Date = ts.UTC().Format("2006-01-02T15:04:05Z")
		}
	}
}

// String returns the full version line shown by the version command.
func String() string {
	return fmt.Sprintf("market-insights %s (commit %s, built %s)", Version, Commit, Date)
}

// CheckLatest warns on the terminal when a newer release is published.
// Best effort: dev builds and any network failure are silently ignored.
func CheckLatest(currentVersion string) {
	if currentVersion == "dev" || strings.HasSuffix(currentVersion, "-dev") {
		return
	}

	client := &http.Client{Timeout: 3 * time.Second}
	resp, err := client.Get("https://api.github.com/repos/dysin/market-insights-go/releases/latest")
	if err != nil {
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return
	}

	var release struct {
		TagName string `json:"tag_name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return
	}

	latest := strings.TrimPrefix(release.TagName, "v")
	if latest > strings.TrimPrefix(currentVersion, "v") {
		pterm.Warning.Printfln("A new version of market-insights is available: %s", latest)
		pterm.Info.Println("Update with: go install github.com/dysin/market-insights-go/cmd/market-insights@latest")
	}
}
