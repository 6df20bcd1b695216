// Package calibre drives the calibredb command-line tool: it renders
// record fields into calibredb arguments and performs the per-record
// create/annotate calls against a library directory.
package calibre

import (
	"fmt"
	"strings"

	"github.com/ozmodiar/md-to-calibre/booklist"
	"github.com/ozmodiar/md-to-calibre/log"
)

// TitleArgs renders the --title flag. A record without a title is
// logged by id and imported without a title flag rather than dropped.
func TitleArgs(r *booklist.Record, logger log.Logger) []string {
	if r.Title == nil {
		logger.Errorf("no title in book record with ID %d", r.ID)
		return nil
	}
	return []string{"--title", *r.Title}
}

// PubdateArgs renders the publication date. A missing year emits
// nothing, which keeps calibre's "Undefined" date representation.
func PubdateArgs(r *booklist.Record) []string {
	if r.Year == nil {
		return nil
	}
	return []string{"--field", fmt.Sprintf("pubdate:%s-01-01", *r.Year)}
}

func PagesArgs(r *booklist.Record) []string {
	if r.Pages == nil {
		return nil
	}
	return []string{"--field", fmt.Sprintf("#pages:%s", *r.Pages)}
}

// LinkArgs picks the custom column by the link's file extension:
// downloadable formats get their own columns, everything else is
// treated as a metadata page link.
func LinkArgs(r *booklist.Record) []string {
	switch {
	case r.Link == nil:
		return nil
	case strings.HasSuffix(*r.Link, ".pdf"):
		return []string{"--field", fmt.Sprintf("#link_pdf:%s", *r.Link)}
	case strings.HasSuffix(*r.Link, ".epub"):
		return []string{"--field", fmt.Sprintf("#link_epub:%s", *r.Link)}
	default:
		return []string{"--field", fmt.Sprintf("#link_meta:%s", *r.Link)}
	}
}

// CommentsArgs renders the description into calibre's comments field as
// an HTML fragment. A render failure is logged and drops the field so
// the record itself still imports.
func CommentsArgs(r *booklist.Record, logger log.Logger) []string {
	if r.Description == nil {
		return nil
	}
	html, err := booklist.RenderHTML(*r.Description)
	if err != nil {
		logger.Errorf("record %d: %v", r.ID, err)
		return nil
	}
	return []string{"--field", fmt.Sprintf("comments:<div>%s</div>", html)}
}
