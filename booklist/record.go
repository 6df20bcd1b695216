// Package booklist segments a Markdown bibliography list into entry
// blocks and extracts structured records from them. The format is the
// house convention used by the source lists: numbered entries separated
// by blank lines, a bold title optionally wrapped in a link, then an
// optional year, page count and free-text description.
package booklist

// Record is the parsed form of one bibliography entry. Pointer fields
// distinguish "not present in the entry" from "present but empty".
type Record struct {
	ID          int
	Title       *string
	Link        *string
	Year        *string
	Pages       *string
	Description *string

	// CalibreID is the identifier calibredb assigns when the record is
	// created. Empty until the create call has succeeded.
	CalibreID string
}
