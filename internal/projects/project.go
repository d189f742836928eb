package projects

import "slices"

// Header names recognized in the CSV header row.
const (
	ColID              = "id"
	ColTitle           = "title"
	ColSummary         = "summary"
	ColDescription     = "description"
	ColStacks          = "stacks"
	ColGithubURL       = "githubUrl"
	ColLiveURL         = "liveUrl"
	ColBanner          = "banner"
	ColHours           = "hours"
	ColLastUpdated     = "lastUpdated"
	ColProgressDone    = "progressDone"
	ColProgressTotal   = "progressTotal"
	ColBadges          = "badges"
	ColExtraCount      = "extraCount"
	ColPlannedFeatures = "plannedFeatures"
)

// Columns lists the recognized headers in canonical order.
var Columns = []string{
	ColID, ColTitle, ColSummary, ColDescription, ColStacks, ColGithubURL, ColLiveURL,
	ColBanner, ColHours, ColLastUpdated, ColProgressDone, ColProgressTotal,
	ColBadges, ColExtraCount, ColPlannedFeatures,
}

// Project is one entry of the Recent Activity list.
// Records are built fresh by each parse and never mutated afterwards.
type Project struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Summary     string   `json:"summary"`
	Description string   `json:"description"`
	Stacks      []string `json:"stacks"`
	GithubURL   string   `json:"githubUrl"`
	LiveURL     *string  `json:"liveUrl,omitempty"` // nil when the cell is empty
	Banner      string   `json:"banner"`
	Hours       float64  `json:"hours"`
	LastUpdated string   `json:"lastUpdated"` // display label, not parsed

	ProgressDone    float64  `json:"progressDone"`
	ProgressTotal   float64  `json:"progressTotal"`
	Badges          []string `json:"badges"`
	ExtraCount      float64  `json:"extraCount"`
	PlannedFeatures []string `json:"plannedFeatures"`
}

// HasLiveURL reports whether the project has a live deployment link.
func (p Project) HasLiveURL() bool {
	return p.LiveURL != nil
}

// complete reports whether the record carries the fields required for display.
func (p Project) complete() bool {
	return p.ID != "" && p.Title != "" && p.Summary != ""
}

// ProgressPercent returns progressDone as a percentage of progressTotal.
// Returns 0 when progressTotal is not positive.
func (p Project) ProgressPercent() float64 {
	if p.ProgressTotal <= 0 {
		return 0
	}
	return p.ProgressDone / p.ProgressTotal * 100
}

// PlannedFeatureCount returns the number of progress steps still open, never negative.
func (p Project) PlannedFeatureCount() float64 {
	return max(p.ProgressTotal-p.ProgressDone, 0)
}

// clone returns a deep copy so shared record sets cannot be mutated through slices.
func (p Project) clone() Project {
	c := p
	c.Stacks = slices.Clone(p.Stacks)
	c.Badges = slices.Clone(p.Badges)
	c.PlannedFeatures = slices.Clone(p.PlannedFeatures)
	if p.LiveURL != nil {
		u := *p.LiveURL
		c.LiveURL = &u
	}
	return c
}

// Clone returns deep copies of records.
func Clone(records []Project) []Project {
	if records == nil {
		return nil
	}
	out := make([]Project, len(records))
	for i, r := range records {
		out[i] = r.clone()
	}
	return out
}
