package projects

import (
	"reflect"
	"testing"
)

func sampleRecords() []Project {
	return []Project{
		{ID: "a", Title: "A", Summary: "s", Stacks: []string{"Go", "templ"}, Hours: 2.5},
		{ID: "b", Title: "B", Summary: "s", Stacks: []string{"rust", "Go"}, Hours: 4},
		{ID: "c", Title: "C", Summary: "s", Stacks: []string{"Elixir"}, Hours: 0.5},
	}
}

func TestStacks(t *testing.T) {
	got := Stacks(sampleRecords())
	want := []string{"Elixir", "Go", "rust", "templ"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Stacks = %q, want %q", got, want)
	}

	if got := Stacks(nil); len(got) != 0 {
		t.Errorf("Stacks(nil) = %q, want empty", got)
	}
}

func TestFilterByStack(t *testing.T) {
	records := sampleRecords()

	tests := []struct {
		stack   string
		wantIDs []string
	}{
		{"", []string{"a", "b", "c"}},
		{AllStacks, []string{"a", "b", "c"}},
		{"Go", []string{"a", "b"}},
		{"Elixir", []string{"c"}},
		{"go", nil},
		{"COBOL", nil},
	}

	for _, tt := range tests {
		got := FilterByStack(records, tt.stack)
		var ids []string
		for _, p := range got {
			ids = append(ids, p.ID)
		}
		if !reflect.DeepEqual(ids, tt.wantIDs) {
			t.Errorf("FilterByStack(%q) ids = %q, want %q", tt.stack, ids, tt.wantIDs)
		}
	}
}

func TestTotalHours(t *testing.T) {
	if got := TotalHours(sampleRecords()); got != 7 {
		t.Errorf("TotalHours = %v, want 7", got)
	}
	if got := TotalHours(nil); got != 0 {
		t.Errorf("TotalHours(nil) = %v, want 0", got)
	}
}

func TestProgress(t *testing.T) {
	tests := []struct {
		name        string
		done, total float64
		wantPercent float64
		wantPlanned float64
	}{
		{"half done", 4, 8, 50, 4},
		{"no total", 3, 0, 0, 0},
		{"overshoot", 10, 8, 125, 0},
		{"nothing done", 0, 5, 0, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Project{ProgressDone: tt.done, ProgressTotal: tt.total}
			if got := p.ProgressPercent(); got != tt.wantPercent {
				t.Errorf("ProgressPercent = %v, want %v", got, tt.wantPercent)
			}
			if got := p.PlannedFeatureCount(); got != tt.wantPlanned {
				t.Errorf("PlannedFeatureCount = %v, want %v", got, tt.wantPlanned)
			}
		})
	}
}

func TestFind(t *testing.T) {
	p, ok := Find(sampleRecords(), "b")
	if !ok || p.Title != "B" {
		t.Errorf("Find(b) = %+v, %v", p, ok)
	}
	if _, ok := Find(sampleRecords(), "zzz"); ok {
		t.Error("Find should report missing ids")
	}
}

func TestBundled(t *testing.T) {
	records := Bundled()
	if len(records) == 0 {
		t.Fatal("bundled dataset should not be empty")
	}
	for _, p := range records {
		if p.ID == "" || p.Title == "" || p.Summary == "" {
			t.Errorf("bundled record incomplete: %+v", p)
		}
	}

	// Mutating a returned copy must not leak into later calls
	records[0].Title = "changed"
	records[0].Stacks[0] = "changed"
	again := Bundled()
	if again[0].Title == "changed" || again[0].Stacks[0] == "changed" {
		t.Error("Bundled returned shared state")
	}
}
