package booklist

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	idRe         = regexp.MustCompile(`^([1-9][0-9]*)\.`)
	titleLinkRe  = regexp.MustCompile(`^\*\*\[([^\]]*)\]\((.+)\)\.\*\*`)
	titlePlainRe = regexp.MustCompile(`^\*\*([^*]*)\.\*\*`)
	yearRe       = regexp.MustCompile(`^([0-9]{4})\.`)
	pagesRe      = regexp.MustCompile(`^([0-9]+)\s+pages\.`)
)

// ParseError reports which extraction step rejected a block. Only the
// id and title steps can reject; everything after them is optional.
type ParseError struct {
	Step  string
	Block string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("entry rejected at %s step: %q", e.Step, e.Block)
}

// Parse extracts one Record from a raw entry block.
//
// The block must open with "N." and a bold title, either linked
// ("**[Title](url).**") or plain ("**Title.**"). A four-digit year, a
// page count ("123 pages.") and a free-text description may follow, in
// that order, each independently optional. The description runs to the
// end of the block, keeps interior blank lines and loses its trailing
// newlines.
//
// There is no partial recovery: a block whose id or title does not
// match is rejected as a whole with a *ParseError.
func Parse(block string) (*Record, error) {
	m := idRe.FindStringSubmatch(block)
	if m == nil {
		return nil, &ParseError{Step: "id", Block: block}
	}
	id, _ := strconv.Atoi(m[1])
	rest := skipSpace(block[len(m[0]):])

	rec := &Record{ID: id}
	if m := titleLinkRe.FindStringSubmatch(rest); m != nil {
		rec.Title = strptr(m[1])
		rec.Link = strptr(m[2])
		rest = rest[len(m[0]):]
	} else if m := titlePlainRe.FindStringSubmatch(rest); m != nil {
		rec.Title = strptr(m[1])
		rest = rest[len(m[0]):]
	} else {
		return nil, &ParseError{Step: "title", Block: block}
	}
	rest = skipSpace(rest)

	if m := yearRe.FindStringSubmatch(rest); m != nil {
		rec.Year = strptr(m[1])
		rest = skipSpace(rest[len(m[0]):])
	}
	if m := pagesRe.FindStringSubmatch(rest); m != nil {
		rec.Pages = strptr(m[1])
		rest = skipSpace(rest[len(m[0]):])
	}
	if d := strings.TrimRight(rest, "\n"); d != "" {
		rec.Description = &d
	}
	return rec, nil
}

func skipSpace(s string) string { return strings.TrimLeft(s, " \t\r\n\f\v") }

func strptr(s string) *string { return &s }
