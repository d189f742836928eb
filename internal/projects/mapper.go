package projects

import (
	"math"
	"math/big"
	"strconv"
	"strings"
	"unicode"
)

// ListSeparator separates items inside list cells (stacks, badges, plannedFeatures).
const ListSeparator = "|"

// HeaderIndex maps header names to their position in a CSV row.
type HeaderIndex map[string]int

// MakeHeaderIndex builds a HeaderIndex from the header row.
// Names are matched exactly. When a name repeats, the last column wins.
func MakeHeaderIndex(header []string) HeaderIndex {
	idx := make(HeaderIndex, len(header))
	for i, h := range header {
		idx[h] = i
	}
	return idx
}

// Cell returns the trimmed value of the named column in row.
// Unknown columns and short rows yield "".
func (h HeaderIndex) Cell(row []string, name string) string {
	i, ok := h[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// Parse tokenizes text and maps the rows to projects.
func Parse(text string) []Project {
	return MapRows(Tokenize(text))
}

// MapRows converts tokenized rows into projects. rows[0] is the header.
// Rows that do not produce an id, title and summary are skipped.
// The result is never nil.
func MapRows(rows [][]string) []Project {
	if len(rows) < 2 {
		return []Project{}
	}

	idx := MakeHeaderIndex(rows[0])
	out := make([]Project, 0, len(rows)-1)

	for _, row := range rows[1:] {
		p := mapRow(row, idx)
		if !p.complete() {
			continue
		}
		out = append(out, p)
	}
	return out
}

func mapRow(row []string, idx HeaderIndex) Project {
	get := func(name string) string { return idx.Cell(row, name) }

	return Project{
		ID:              get(ColID),
		Title:           get(ColTitle),
		Summary:         get(ColSummary),
		Description:     get(ColDescription),
		Stacks:          SplitList(get(ColStacks)),
		GithubURL:       get(ColGithubURL),
		LiveURL:         optional(get(ColLiveURL)),
		Banner:          get(ColBanner),
		Hours:           ToNumber(get(ColHours), 0),
		LastUpdated:     get(ColLastUpdated),
		ProgressDone:    ToNumber(get(ColProgressDone), 0),
		ProgressTotal:   ToNumber(get(ColProgressTotal), 0),
		Badges:          SplitList(get(ColBadges)),
		ExtraCount:      ToNumber(get(ColExtraCount), 0),
		PlannedFeatures: SplitList(get(ColPlannedFeatures)),
	}
}

// SplitList splits a list cell on ListSeparator, trimming items and dropping empty ones.
// An empty cell yields an empty, non-nil slice.
func SplitList(value string) []string {
	items := []string{}
	if value == "" {
		return items
	}
	for _, item := range strings.Split(value, ListSeparator) {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// ToNumber parses value the way a spreadsheet cell is read as a number:
// surrounding whitespace (including a stray byte order mark) is ignored,
// decimal and exponent forms are accepted, and 0x, 0o and 0b prefixes
// select hexadecimal, octal and binary integers.
// Empty, non-numeric, NaN and infinite values return fallback.
func ToNumber(value string, fallback float64) float64 {
	value = strings.TrimFunc(value, isNumberSpace)
	if value == "" {
		return fallback
	}
	n, ok := parseNumber(value)
	if !ok || math.IsNaN(n) || math.IsInf(n, 0) {
		return fallback
	}
	return n
}

func parseNumber(value string) (float64, bool) {
	if len(value) > 2 && value[0] == '0' {
		if base, ok := radixPrefixes[value[1]]; ok {
			i, ok := new(big.Int).SetString(value[2:], base)
			if !ok || i.Sign() < 0 || value[2] == '+' {
				return 0, false
			}
			f, _ := new(big.Float).SetInt(i).Float64()
			return f, true
		}
	}

	// Hex floats and digit separators parse in Go but are not numbers here
	if strings.ContainsAny(value, "xX_") {
		return 0, false
	}
	n, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

var radixPrefixes = map[byte]int{
	'x': 16, 'X': 16,
	'o': 8, 'O': 8,
	'b': 2, 'B': 2,
}

// isNumberSpace matches the whitespace and line terminators trimmed around numbers.
func isNumberSpace(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', '\uFEFF', '\u2028', '\u2029':
		return true
	}
	return unicode.Is(unicode.Zs, r)
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
