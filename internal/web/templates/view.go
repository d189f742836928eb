// Package templates renders the portfolio HTML with templ components.
//
// The *_templ.go files are generated from the .templ sources with
// `templ generate`; edit the .templ files, not the generated code.
package templates

import (
	"net/url"
	"strconv"

	"github.com/JonMunkholm/portfolio/internal/projects"
)

// ActivityView is everything the Recent Activity section needs.
type ActivityView struct {
	Projects   []projects.Project // already filtered by Selected
	Stacks     []string           // sorted, without the "All" entry
	Selected   string
	TotalHours float64
	Expanded   string // project ID whose details start open
}

// number formats a float the way it reads in a sentence: 4, 4.5, 12.25.
func number(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// stackHref links to the home page filtered by stack. "All" is the bare page.
func stackHref(stack string) string {
	if stack == projects.AllStacks {
		return "/"
	}
	return "/?stack=" + url.QueryEscape(stack)
}

func progressWidth(p projects.Project) string {
	return "width:" + strconv.FormatFloat(p.ProgressPercent(), 'f', 2, 64) + "%"
}
