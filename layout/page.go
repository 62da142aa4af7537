package layout

import (
	"context"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NormalizeLines splits raw page text into exactly LinesPerPage trimmed line
// strings. Rows that are empty after trimming do not count toward the fifteen;
// short pages are padded with empty strings and rows beyond the fifteenth are
// discarded. Text is NFC-normalized so marker matching and measurement are
// encoding-stable. Pure function of its input.
func NormalizeLines(raw string) [LinesPerPage]string {
	var out [LinesPerPage]string
	next := 0
	for _, row := range strings.Split(raw, "\n") {
		if next == LinesPerPage {
			break
		}
		row = strings.TrimSpace(strings.TrimSuffix(row, "\r"))
		if row == "" {
			continue
		}
		out[next] = norm.NFC.String(row)
		next++
	}
	return out
}

// BuildPage constructs an immutable Page from raw text, classifying each line.
func BuildPage(number int, raw string, c Classifier) Page {
	page := Page{Number: number}
	for i, text := range NormalizeLines(raw) {
		index := i + 1
		page.Lines[i] = Line{
			Index: index,
			Text:  text,
			Role:  c.Classify(index, text),
		}
	}
	return page
}

// AssemblePage fetches a page's raw text from the provider and builds the
// Page. A load failure is not fatal: the page comes back all-blank, matching
// the contract that no error in this subsystem aborts rendering. Providers
// log their own failures.
func AssemblePage(ctx context.Context, tp TextProvider, number int, c Classifier) Page {
	raw := ""
	if tp != nil {
		if text, err := tp.PageText(ctx, number); err == nil {
			raw = text
		}
	}
	return BuildPage(number, raw, c)
}
