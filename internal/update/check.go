// Package update asks GitHub whether a newer difflint release exists.
package update

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Repo is the GitHub repository releases are published from.
const Repo = "endlessm/difflint"

// Result holds the outcome of a version check.
type Result struct {
	Latest  string // e.g. "v0.4.0"
	Current string
	Install string // command that installs the latest release
}

// NeedsUpdate reports whether Latest differs from Current. A "v" prefix is
// ignored on either side and "dev" builds never need an update.
func (r *Result) NeedsUpdate() bool {
	if r.Current == "dev" {
		return false
	}
	return strings.TrimPrefix(r.Latest, "v") != strings.TrimPrefix(r.Current, "v")
}

type githubRelease struct {
	TagName string `json:"tag_name"`
}

// baseURL is the GitHub API base URL, overridable for testing.
var baseURL = "https://api.github.com"

// timeout bounds the whole request; the check must never hold up the CLI.
const timeout = time.Second

// CheckLatest queries the latest release of Repo. It returns nil for dev
// builds and on any network or decoding failure.
func CheckLatest(ctx context.Context, current string) *Result {
	if current == "dev" {
		return nil
	}
	return checkLatest(ctx, baseURL, current)
}

func checkLatest(ctx context.Context, base, current string) *Result {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	url := fmt.Sprintf("%s/repos/%s/releases/latest", base, Repo)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil
	}

	var release githubRelease
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil || release.TagName == "" {
		return nil
	}
	return &Result{
		Latest:  release.TagName,
		Current: current,
		Install: fmt.Sprintf("go install github.com/%s/cmd/difflint@%s", Repo, release.TagName),
	}
}
