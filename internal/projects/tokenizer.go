package projects

import "strings"

// Tokenize splits CSV text into rows of trimmed cells.
//
// Quoting follows the usual CSV conventions: a double quote toggles quoted
// mode, and a doubled quote inside a quoted cell is a literal quote. Commas
// and line terminators inside quotes are kept verbatim. "\n", "\r" and "\r\n"
// all end a row.
//
// Tokenize never fails. An unterminated quote swallows the rest of the input
// into the current cell, and rows may have any number of cells. Rows made of a
// single empty cell (blank lines) are dropped.
func Tokenize(text string) [][]string {
	var (
		rows     [][]string
		row      []string
		cell     strings.Builder
		inQuotes bool
	)

	endCell := func() {
		row = append(row, strings.TrimSpace(cell.String()))
		cell.Reset()
	}
	endRow := func() {
		endCell()
		rows = append(rows, row)
		row = nil
	}

	for i := 0; i < len(text); i++ {
		c := text[i]

		switch {
		case c == '"':
			if inQuotes && i+1 < len(text) && text[i+1] == '"' {
				cell.WriteByte('"')
				i++
				continue
			}
			inQuotes = !inQuotes

		case inQuotes:
			cell.WriteByte(c)

		case c == ',':
			endCell()

		case c == '\n' || c == '\r':
			if c == '\r' && i+1 < len(text) && text[i+1] == '\n' {
				i++
			}
			endRow()

		default:
			cell.WriteByte(c)
		}
	}

	// Input without a trailing newline
	if cell.Len() > 0 || len(row) > 0 {
		endRow()
	}

	kept := rows[:0]
	for _, r := range rows {
		if len(r) == 1 && r[0] == "" {
			continue
		}
		kept = append(kept, r)
	}
	return kept
}
