package booklist

import (
	"fmt"
	"regexp"
	"strings"
)

// BlankRule selects which lines count as entry separators.
type BlankRule int

const (
	// BlankExact treats only a bare "\n" as a separator line. A line
	// containing just spaces or tabs does NOT separate entries; the
	// source lists this tool was written against rely on that.
	BlankExact BlankRule = iota
	// BlankWhitespace also treats whitespace-only lines as separators.
	BlankWhitespace
)

// ParseBlankRule maps the --blank-rule flag value to a BlankRule.
func ParseBlankRule(name string) (BlankRule, error) {
	switch name {
	case "", "exact":
		return BlankExact, nil
	case "whitespace":
		return BlankWhitespace, nil
	default:
		return BlankExact, fmt.Errorf("unknown blank rule %q (want exact or whitespace)", name)
	}
}

// entryStartRe matches the "123. " prefix that begins a numbered entry.
var entryStartRe = regexp.MustCompile(`^[1-9][0-9]*\. `)

// EntryScanner splits a bibliography document into raw entry blocks,
// one Scan/Entry pair at a time. A new block starts at a numbered line
// that directly follows a blank line; a numbered line in the middle of
// running text never splits. After the last input line the remaining
// buffer is emitted as the final block, whatever it contains.
//
// The scanner is single-pass and not restartable, like bufio.Scanner.
type EntryScanner struct {
	rest      string
	rule      BlankRule
	lastBlank bool
	buf       strings.Builder
	entry     string
	flushed   bool
}

func NewEntryScanner(doc string, rule BlankRule) *EntryScanner {
	return &EntryScanner{rest: doc, rule: rule}
}

// Scan advances to the next entry block. It returns false once the
// final block has been emitted.
func (s *EntryScanner) Scan() bool {
	for s.rest != "" {
		line := s.nextLine()
		if s.lastBlank && entryStartRe.MatchString(line) {
			s.entry = s.buf.String()
			s.buf.Reset()
			s.buf.WriteString(line)
			s.lastBlank = s.isBlank(line)
			return true
		}
		s.buf.WriteString(line)
		s.lastBlank = s.isBlank(line)
	}
	if !s.flushed {
		s.flushed = true
		s.entry = s.buf.String()
		s.buf.Reset()
		return true
	}
	return false
}

// Entry returns the block produced by the last successful Scan,
// including its line terminators.
func (s *EntryScanner) Entry() string { return s.entry }

func (s *EntryScanner) nextLine() string {
	if i := strings.IndexByte(s.rest, '\n'); i >= 0 {
		line := s.rest[:i+1]
		s.rest = s.rest[i+1:]
		return line
	}
	line := s.rest
	s.rest = ""
	return line
}

func (s *EntryScanner) isBlank(line string) bool {
	if s.rule == BlankWhitespace {
		return strings.TrimSpace(line) == ""
	}
	return line == "\n"
}
