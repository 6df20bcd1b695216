package calibre

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ozmodiar/md-to-calibre/booklist"
	"github.com/ozmodiar/md-to-calibre/log"
)

// fakeRunner replays canned outputs/errors per call and records argv.
type fakeRunner struct {
	calls   [][]string
	outputs []string
	errs    []error
}

func (f *fakeRunner) Run(ctx context.Context, name string, args ...string) (string, error) {
	i := len(f.calls)
	f.calls = append(f.calls, append([]string{name}, args...))
	var out string
	var err error
	if i < len(f.outputs) {
		out = f.outputs[i]
	}
	if i < len(f.errs) {
		err = f.errs[i]
	}
	return out, err
}

func newImporter(r Runner) *Importer {
	return &Importer{Library: "/books", Runner: r, Log: log.Discard()}
}

func TestImportCreatesAndAnnotates(t *testing.T) {
	runner := &fakeRunner{outputs: []string{"Added book ids: 42\n", ""}}
	rec := &booklist.Record{
		ID:          5,
		Title:       strptr("Foo"),
		Link:        strptr("bar.pdf"),
		Year:        strptr("2001"),
		Pages:       strptr("42"),
		Description: strptr("Some text."),
	}

	require.NoError(t, newImporter(runner).Import(context.Background(), rec))
	assert.Equal(t, "42", rec.CalibreID)
	require.Len(t, runner.calls, 2)

	add := runner.calls[0]
	assert.Equal(t, []string{
		"calibredb", "--library-path", "/books", "add", "--empty",
		"--title", "Foo", "--authors", "Unknown Author",
	}, add)

	meta := runner.calls[1]
	assert.Equal(t, "calibredb", meta[0])
	assert.Contains(t, meta, "set_metadata")
	assert.Contains(t, meta, "pubdate:2001-01-01")
	assert.Contains(t, meta, "#pages:42")
	assert.Contains(t, meta, "#link_pdf:bar.pdf")
	assert.Equal(t, "42", meta[len(meta)-1])
}

func TestImportUntitledRecordStillCreated(t *testing.T) {
	runner := &fakeRunner{outputs: []string{"Added book ids: 7\n", ""}}
	rec := &booklist.Record{ID: 9}

	require.NoError(t, newImporter(runner).Import(context.Background(), rec))
	assert.NotContains(t, runner.calls[0], "--title")
}

func TestImportFailsWithoutCalibreID(t *testing.T) {
	runner := &fakeRunner{outputs: []string{"something unexpected\n"}}
	rec := &booklist.Record{ID: 5, Title: strptr("Foo")}

	err := newImporter(runner).Import(context.Background(), rec)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no calibre id")
	assert.Len(t, runner.calls, 1)
	assert.Empty(t, rec.CalibreID)
}

func TestImportRollsBackOnMetadataFailure(t *testing.T) {
	runner := &fakeRunner{
		outputs: []string{"Added book ids: 7\n", "", ""},
		errs:    []error{nil, errors.New("boom"), nil},
	}
	rec := &booklist.Record{ID: 5, Title: strptr("Foo"), Year: strptr("1999")}

	err := newImporter(runner).Import(context.Background(), rec)
	require.Error(t, err)
	require.Len(t, runner.calls, 3)
	assert.Equal(t, []string{"calibredb", "--library-path", "/books", "remove", "7"}, runner.calls[2])
}

func TestImportAllStopsAtFirstFailure(t *testing.T) {
	runner := &fakeRunner{
		outputs: []string{"Added book ids: 1\n", "", "no ids here"},
	}
	records := []*booklist.Record{
		{ID: 1, Title: strptr("First")},
		{ID: 2, Title: strptr("Second")},
		{ID: 3, Title: strptr("Third")},
	}

	err := newImporter(runner).ImportAll(context.Background(), records)
	require.Error(t, err)
	// First record fully imported, second aborted after its add call,
	// third never attempted.
	assert.Len(t, runner.calls, 3)
	assert.Equal(t, "1", records[0].CalibreID)
	assert.Empty(t, records[2].CalibreID)
}
