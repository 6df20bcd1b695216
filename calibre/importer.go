package calibre

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"strings"

	"github.com/ozmodiar/md-to-calibre/booklist"
	"github.com/ozmodiar/md-to-calibre/log"
)

// Runner executes one external command and returns its stdout.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (string, error)
}

// ExecRunner runs commands through os/exec. Child stderr passes through
// so calibredb's own diagnostics stay visible to the operator.
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var out strings.Builder
	cmd.Stdout = &out
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return out.String(), fmt.Errorf("%s: %w", name, err)
	}
	return out.String(), nil
}

var addedIDRe = regexp.MustCompile(`Added book ids:\s+([0-9]+)`)

// Importer writes records into a calibre library by invoking calibredb
// twice per record: "add --empty" to create it, then "set_metadata" to
// fill in the extended fields.
type Importer struct {
	Library string // calibre library directory, passed as --library-path
	Runner  Runner
	Log     log.Logger
}

// ImportAll imports records in source order, stopping at the first
// failure. Records imported before the failure stay in the library;
// there is no batch rollback.
func (im *Importer) ImportAll(ctx context.Context, records []*booklist.Record) error {
	for _, rec := range records {
		im.Log.Infof("import book record with ID %d", rec.ID)
		if err := im.Import(ctx, rec); err != nil {
			return err
		}
	}
	return nil
}

// Import creates one record and annotates it. If the metadata call
// fails the freshly created record is removed again, so after Import a
// record is either fully present or absent.
func (im *Importer) Import(ctx context.Context, rec *booklist.Record) error {
	args := []string{"--library-path", im.Library, "add", "--empty"}
	args = append(args, TitleArgs(rec, im.Log)...)
	// Leaving --authors off would default to "Unknown"; the lists use
	// "Unknown Author".
	args = append(args, "--authors", "Unknown Author")

	out, err := im.Runner.Run(ctx, "calibredb", args...)
	if err != nil {
		return fmt.Errorf("add record %d: %w", rec.ID, err)
	}
	m := addedIDRe.FindStringSubmatch(out)
	if m == nil {
		return fmt.Errorf("no calibre id in add output for record %d: %q", rec.ID, out)
	}
	rec.CalibreID = m[1]
	im.Log.Infof("book added to calibre, calibre_id = %s", rec.CalibreID)

	meta := []string{"--library-path", im.Library, "set_metadata"}
	meta = append(meta, PubdateArgs(rec)...)
	meta = append(meta, PagesArgs(rec)...)
	meta = append(meta, LinkArgs(rec)...)
	meta = append(meta, CommentsArgs(rec, im.Log)...)
	meta = append(meta, rec.CalibreID)

	if _, err := im.Runner.Run(ctx, "calibredb", meta...); err != nil {
		im.rollback(ctx, rec)
		return fmt.Errorf("set metadata for record %d (calibre id %s): %w", rec.ID, rec.CalibreID, err)
	}
	return nil
}

func (im *Importer) rollback(ctx context.Context, rec *booklist.Record) {
	if _, err := im.Runner.Run(ctx, "calibredb", "--library-path", im.Library, "remove", rec.CalibreID); err != nil {
		im.Log.Errorf("rollback of calibre id %s failed: %v", rec.CalibreID, err)
		return
	}
	im.Log.Infof("removed half-imported calibre id %s", rec.CalibreID)
}
