// Package projects turns the projects CSV document into typed records.
//
// This package has no transport or UI dependencies. The pipeline is:
//
//  1. [Tokenize] splits raw text into rows of trimmed cells
//  2. [MapRows] treats the first row as the header and builds one [Project] per data row
//  3. Records missing an id, title or summary are dropped
//
// [Parse] runs both steps. Neither step returns an error: malformed numbers and
// lists degrade to defaults, and incomplete records are skipped, so a partially
// garbled upstream file still yields every usable record.
//
// # Input format
//
// The header row names the columns. Recognized headers are:
//
//	id, title, summary, description, stacks, githubUrl, liveUrl, banner, hours,
//	lastUpdated, progressDone, progressTotal, badges, extraCount, plannedFeatures
//
// Unknown headers are ignored. List columns (stacks, badges, plannedFeatures)
// use "|" as the separator inside a cell:
//
//	id,title,summary,stacks
//	p1,Folio,"Portfolio site","Go|templ|HTMX"
//
// # Presentation helpers
//
// [Stacks], [FilterByStack] and [TotalHours] back the stack filter and the
// hours header of the Recent Activity section.
package projects
