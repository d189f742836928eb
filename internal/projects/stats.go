package projects

import (
	"slices"
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// AllStacks is the stack filter value that selects every project.
const AllStacks = "All"

var (
	stackCollator     *collate.Collator
	stackCollatorOnce sync.Once
	stackCollatorMu   sync.Mutex // collate.Collator is not safe for concurrent use
)

// Stacks returns the distinct stack names used by records, sorted for display.
func Stacks(records []Project) []string {
	seen := make(map[string]bool)
	stacks := []string{}
	for _, p := range records {
		for _, s := range p.Stacks {
			if !seen[s] {
				seen[s] = true
				stacks = append(stacks, s)
			}
		}
	}

	stackCollatorOnce.Do(func() {
		stackCollator = collate.New(language.English, collate.IgnoreCase)
	})
	stackCollatorMu.Lock()
	defer stackCollatorMu.Unlock()
	slices.SortStableFunc(stacks, stackCollator.CompareString)

	return stacks
}

// FilterByStack returns the records using stack.
// An empty stack or AllStacks returns records unchanged.
func FilterByStack(records []Project, stack string) []Project {
	if stack == "" || stack == AllStacks {
		return records
	}
	out := []Project{}
	for _, p := range records {
		if slices.Contains(p.Stacks, stack) {
			out = append(out, p)
		}
	}
	return out
}

// TotalHours sums the hours of records.
func TotalHours(records []Project) float64 {
	var total float64
	for _, p := range records {
		total += p.Hours
	}
	return total
}

// Find returns the record with the given id.
func Find(records []Project, id string) (Project, bool) {
	for _, p := range records {
		if p.ID == id {
			return p, true
		}
	}
	return Project{}, false
}
