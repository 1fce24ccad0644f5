package handoff

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Event is the subset of a GitHub pull_request webhook payload used here.
type Event struct {
	Action      string       `json:"action"`
	PullRequest *PullRequest `json:"pull_request"`
}

// PullRequest is the pull request in an Event.
type PullRequest struct {
	Number   int     `json:"number"`
	Title    string  `json:"title"`
	Body     string  `json:"body"`
	Merged   bool    `json:"merged"`
	Labels   []Label `json:"labels"`
	MergedBy *User   `json:"merged_by"`
	Base     struct {
		Ref string `json:"ref"`
	} `json:"base"`
}

// Label is a pull request label.
type Label struct {
	Name string `json:"name"`
}

// User is a GitHub account.
type User struct {
	Login string `json:"login"`
}

// LoadEvent reads the payload at path (usually $GITHUB_EVENT_PATH). An
// empty path or missing file yields nil.
func LoadEvent(path string) (*Event, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read event: %w", err)
	}
	var ev Event
	if err := json.Unmarshal(data, &ev); err != nil {
		return nil, fmt.Errorf("parse event %s: %w", path, err)
	}
	return &ev, nil
}

// HasHandoffLabel reports whether any label starts with "handoff".
func (pr *PullRequest) HasHandoffLabel() bool {
	for _, l := range pr.Labels {
		if strings.HasPrefix(strings.ToLower(l.Name), "handoff") {
			return true
		}
	}
	return false
}

// Options are manual overrides for Build.
type Options struct {
	Key      string
	Title    string
	Codename string
	Summary  []string
	Next     []string
	Notes    []string
	Force    bool
	// Actor is the fallback codename, usually $GITHUB_ACTOR.
	Actor string
}

// Build derives an entry from ev and opts. It returns a non-empty skip
// reason when there is nothing to record: the event is not a merged pull
// request with a handoff label, or there is neither an event nor manual
// data.
func Build(ev *Event, opts Options, date string) (Entry, string) {
	pr := &PullRequest{}
	if ev != nil {
		if ev.PullRequest == nil || ev.Action != "closed" || !ev.PullRequest.Merged {
			return Entry{}, "no merged pull_request event"
		}
		if !ev.PullRequest.HasHandoffLabel() {
			return Entry{}, "merged pull request lacks a handoff label"
		}
		pr = ev.PullRequest
	} else if !opts.Force && opts.Title == "" {
		return Entry{}, "no event context and no manual data"
	}

	entry := Entry{
		Key:      opts.Key,
		Date:     date,
		Title:    firstNonEmpty(opts.Title, pr.Title, "Handoff Update"),
		Codename: opts.Codename,
		Summary:  opts.Summary,
		Next:     opts.Next,
		Notes:    opts.Notes,
		PRNumber: pr.Number,
		Branch:   pr.Base.Ref,
	}
	if entry.Codename == "" && pr.MergedBy != nil {
		entry.Codename = pr.MergedBy.Login
	}
	entry.Codename = firstNonEmpty(entry.Codename, opts.Actor, "unknown")

	if len(entry.Summary) == 0 {
		entry.Summary = StripBullets(pr.Body)
	}
	if len(entry.Summary) == 0 {
		number := "N/A"
		if pr.Number > 0 {
			number = strconv.Itoa(pr.Number)
		}
		entry.Summary = []string{"Merged PR #" + number}
	}
	if entry.Key == "" && pr.Number > 0 {
		entry.Key = "pr-" + strconv.Itoa(pr.Number)
	}
	return entry, ""
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
