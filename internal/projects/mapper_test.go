package projects

import (
	"reflect"
	"testing"
)

func TestMakeHeaderIndex(t *testing.T) {
	idx := MakeHeaderIndex([]string{"id", "title", "summary"})

	if len(idx) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(idx))
	}
	if idx["title"] != 1 {
		t.Errorf("title index = %d, want 1", idx["title"])
	}
}

func TestMakeHeaderIndex_DuplicateLastWins(t *testing.T) {
	idx := MakeHeaderIndex([]string{"id", "title", "summary", "title"})

	if got := idx["title"]; got != 3 {
		t.Errorf("duplicate header resolved to %d, want 3 (last occurrence)", got)
	}

	rows := [][]string{
		{"id", "title", "summary", "title"},
		{"p1", "First", "Summary", "Second"},
	}
	records := MapRows(rows)
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0].Title != "Second" {
		t.Errorf("Title = %q, want %q", records[0].Title, "Second")
	}
}

func TestHeaderIndex_Cell(t *testing.T) {
	idx := MakeHeaderIndex([]string{"id", "title", "summary"})

	if got := idx.Cell([]string{" p1 ", "T"}, "id"); got != "p1" {
		t.Errorf("Cell(id) = %q, want %q", got, "p1")
	}
	if got := idx.Cell([]string{"p1", "T"}, "summary"); got != "" {
		t.Errorf("Cell on short row = %q, want empty", got)
	}
	if got := idx.Cell([]string{"p1", "T", "S"}, "banner"); got != "" {
		t.Errorf("Cell for unknown header = %q, want empty", got)
	}
}

func TestParse_Stacks(t *testing.T) {
	records := Parse("id,title,summary,stacks\np1,Title,Summary,\"go|rust\"")

	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	want := []string{"go", "rust"}
	if !reflect.DeepEqual(records[0].Stacks, want) {
		t.Errorf("Stacks = %q, want %q", records[0].Stacks, want)
	}
}

func TestParse_DropsIncompleteRecords(t *testing.T) {
	input := "id,title,summary,hours\n" +
		"p1,Title,Summary,3\n" +
		"p2,   ,Summary,3\n" +
		",Title,Summary,3\n" +
		"p4,Title,,3\n" +
		"p5,Title,Summary,3\n"

	records := Parse(input)

	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].ID != "p1" || records[1].ID != "p5" {
		t.Errorf("kept ids = %q, %q; want p1, p5", records[0].ID, records[1].ID)
	}
}

func TestParse_NonNumericHours(t *testing.T) {
	records := Parse("id,title,summary,hours,progressDone\np1,Title,Summary,N/A,abc")

	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0].Hours != 0 {
		t.Errorf("Hours = %v, want 0", records[0].Hours)
	}
	if records[0].ProgressDone != 0 {
		t.Errorf("ProgressDone = %v, want 0", records[0].ProgressDone)
	}
}

func TestParse_HeaderOnly(t *testing.T) {
	tests := []string{
		"",
		"id,title,summary",
		"id,title,summary\n\n",
	}
	for _, input := range tests {
		records := Parse(input)
		if records == nil {
			t.Errorf("Parse(%q) returned nil, want empty slice", input)
		}
		if len(records) != 0 {
			t.Errorf("Parse(%q) returned %d records, want 0", input, len(records))
		}
	}
}

func TestParse_LiveURL(t *testing.T) {
	input := "id,title,summary,liveUrl\n" +
		"p1,Title,Summary,\n" +
		"p2,Title,Summary,https://example.com\n"

	records := Parse(input)
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].LiveURL != nil {
		t.Errorf("empty liveUrl should be absent, got %q", *records[0].LiveURL)
	}
	if records[0].HasLiveURL() {
		t.Error("HasLiveURL should be false for empty liveUrl")
	}
	if records[1].LiveURL == nil || *records[1].LiveURL != "https://example.com" {
		t.Errorf("liveUrl = %v, want https://example.com", records[1].LiveURL)
	}
}

func TestParse_FullRecord(t *testing.T) {
	input := "id,title,summary,description,stacks,githubUrl,liveUrl,banner,hours,lastUpdated,progressDone,progressTotal,badges,extraCount,plannedFeatures,ignored\n" +
		`p1, Folio ,Portfolio,"A site, with ""quotes""", Go | templ ||,https://github.com/x/y,,/b.png,12.5,Oct 12,3,8,A|B,2,Search| RSS ,zzz` + "\n"

	records := Parse(input)
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}

	want := Project{
		ID:              "p1",
		Title:           "Folio",
		Summary:         "Portfolio",
		Description:     `A site, with "quotes"`,
		Stacks:          []string{"Go", "templ"},
		GithubURL:       "https://github.com/x/y",
		Banner:          "/b.png",
		Hours:           12.5,
		LastUpdated:     "Oct 12",
		ProgressDone:    3,
		ProgressTotal:   8,
		Badges:          []string{"A", "B"},
		ExtraCount:      2,
		PlannedFeatures: []string{"Search", "RSS"},
	}
	if !reflect.DeepEqual(records[0], want) {
		t.Errorf("record mismatch\n got  %+v\n want %+v", records[0], want)
	}
}

func TestParse_MissingListColumns(t *testing.T) {
	records := Parse("id,title,summary\np1,Title,Summary")
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	p := records[0]
	if p.Stacks == nil || len(p.Stacks) != 0 {
		t.Errorf("Stacks = %#v, want empty slice", p.Stacks)
	}
	if p.Badges == nil || p.PlannedFeatures == nil {
		t.Error("list fields should be empty slices, not nil")
	}
}

func TestSplitList(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"", []string{}},
		{"go", []string{"go"}},
		{"go|rust", []string{"go", "rust"}},
		{" go | rust ", []string{"go", "rust"}},
		{"|go||rust|", []string{"go", "rust"}},
		{"| |", []string{}},
	}

	for _, tt := range tests {
		got := SplitList(tt.input)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("SplitList(%q) = %#v, want %#v", tt.input, got, tt.want)
		}
	}
}

func TestToNumber(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		fallback float64
		want     float64
	}{
		{"integer", "42", 0, 42},
		{"decimal", "12.5", 0, 12.5},
		{"surrounding spaces", "  7 ", 0, 7},
		{"negative", "-3", 0, -3},
		{"exponent", "1e3", 0, 1000},
		{"empty uses fallback", "", 5, 5},
		{"text uses fallback", "N/A", 0, 0},
		{"custom fallback", "abc", 9, 9},
		{"infinity rejected", "Inf", 1, 1},
		{"NaN rejected", "NaN", 2, 2},
		{"thousands separator rejected", "1,000", 0, 0},
		{"hex", "0x10", 0, 16},
		{"octal", "0o17", 0, 15},
		{"binary", "0B101", 0, 5},
		{"signed hex rejected", "-0x10", 3, 3},
		{"empty hex rejected", "0x", 3, 3},
		{"bad hex digit rejected", "0xG", 3, 3},
		{"hex float rejected", "0x1p4", 3, 3},
		{"digit separator rejected", "1_000", 3, 3},
		{"leading zero decimal", "010", 0, 10},
		{"byte order mark trimmed", "\uFEFF5", 0, 5},
		{"no-break space trimmed", "\u00A05\u00A0", 0, 5},
		{"plus sign", "+2.5", 0, 2.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToNumber(tt.input, tt.fallback); got != tt.want {
				t.Errorf("ToNumber(%q, %v) = %v, want %v", tt.input, tt.fallback, got, tt.want)
			}
		})
	}
}
