package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/ozmodiar/md-to-calibre/booklist"
	"github.com/ozmodiar/md-to-calibre/calibre"
	"github.com/ozmodiar/md-to-calibre/log"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.New(false).Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:      "md-to-calibre",
		Usage:     "Import a Markdown bibliography list into a calibre library via calibredb",
		ArgsUsage: "BOOKLIST_FILE CALIBREDB_DIR",
		Description: "Reads a booklist in the numbered-entry Markdown convention and creates " +
			"one calibre record per entry by shelling out to calibredb. Re-running against " +
			"the same list creates duplicate records; there is no dedup by source id.",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Log every segmented entry and parsed record",
			},
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "Segment and parse only, do not invoke calibredb",
			},
			&cli.StringFlag{
				Name:  "blank-rule",
				Value: "exact",
				Usage: "Which lines separate entries: 'exact' (a bare newline) or 'whitespace' (whitespace-only lines too)",
			},
			&cli.StringFlag{
				Name:  "rejects-file",
				Usage: "Append entries that fail field extraction to this file for manual fixup",
			},
			&cli.BoolFlag{
				Name:  "verify",
				Usage: "After the import, read the library's metadata.db and log what was written",
			},
		},
		Action: run,
	}
}

func run(c *cli.Context) error {
	if c.NArg() != 2 {
		return fmt.Errorf("expected BOOKLIST_FILE and CALIBREDB_DIR, got %d argument(s)", c.NArg())
	}
	booklistPath := c.Args().Get(0)
	libraryDir := c.Args().Get(1)
	logger := log.New(c.Bool("verbose"))

	rule, err := booklist.ParseBlankRule(c.String("blank-rule"))
	if err != nil {
		return err
	}

	doc, err := os.ReadFile(booklistPath)
	if err != nil {
		return fmt.Errorf("read booklist: %w", err)
	}

	records, err := parseBooklist(string(doc), rule, c.String("rejects-file"), logger)
	if err != nil {
		return err
	}
	logger.Infof("booklist records created: %d", len(records))

	if c.Bool("dry-run") {
		logger.Infof("dry run, skipping calibredb import")
		return nil
	}

	im := &calibre.Importer{Library: libraryDir, Runner: calibre.ExecRunner{}, Log: logger}
	if err := im.ImportAll(c.Context, records); err != nil {
		return err
	}

	if c.Bool("verify") {
		return verifyLibrary(libraryDir, len(records), logger)
	}
	return nil
}

// parseBooklist runs the segmentation and extraction phases over the
// whole document. Entries that fail extraction are logged (and written
// to the rejects file when one is configured) and skipped; the parse
// phase itself only fails on I/O errors.
func parseBooklist(doc string, rule booklist.BlankRule, rejectsPath string, logger log.Logger) ([]*booklist.Record, error) {
	var rejects *os.File
	if rejectsPath != "" {
		f, err := os.OpenFile(rejectsPath, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open rejects file: %w", err)
		}
		rejects = f
	}

	var records []*booklist.Record
	entries := 0
	sc := booklist.NewEntryScanner(doc, rule)
	for sc.Scan() {
		entry := sc.Entry()
		entries++
		logger.Debugf("found booklist entry: %s", entry)

		rec, err := booklist.Parse(entry)
		if err != nil {
			logger.Infof("booklist entry could not be parsed: %s", entry)
			if rejects != nil {
				if _, werr := fmt.Fprintf(rejects, "%s\n", entry); werr != nil {
					rejects.Close()
					return nil, fmt.Errorf("write rejects file: %w", werr)
				}
			}
			continue
		}
		logger.Debugf("creating booklist record: %+v", rec)
		records = append(records, rec)
	}
	logger.Infof("booklist entries found: %d", entries)

	if rejects != nil {
		if err := rejects.Close(); err != nil {
			return nil, fmt.Errorf("close rejects file: %w", err)
		}
	}
	return records, nil
}

// verifyLibrary reads back the library database after the import and
// logs the total record count plus the titles of the records that
// should have just been created.
func verifyLibrary(dir string, imported int, logger log.Logger) error {
	total, err := calibre.CountBooks(dir)
	if err != nil {
		return err
	}
	logger.Infof("library now holds %d records", total)

	if imported == 0 {
		return nil
	}
	books, err := calibre.RecentBooks(dir, imported, logger)
	if err != nil {
		return err
	}
	for _, b := range books {
		logger.Infof("calibre id %d: %s", b.ID, b.Title)
	}
	return nil
}
