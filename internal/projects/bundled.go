package projects

import (
	_ "embed"
	"sync"
)

// bundledCSV is the dataset shipped with the binary. It is shown until a
// fresh load succeeds and whenever a load fails.
//
//go:embed data/projects.csv
var bundledCSV string

var (
	bundled     []Project
	bundledOnce sync.Once
)

// Bundled returns a copy of the statically bundled records.
func Bundled() []Project {
	bundledOnce.Do(func() {
		bundled = Parse(bundledCSV)
	})
	return Clone(bundled)
}

// BundledCSV returns the raw bundled document.
func BundledCSV() string {
	return bundledCSV
}
