// Package kvfile parses line-oriented KEY=VALUE descriptor files such as
// /etc/os-release and /etc/lsb-release.
//
// Malformed lines are skipped and reported; they never prevent the rest of
// the file from parsing.
package kvfile

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"
)

// Skip reasons.
const (
	ReasonMissingEquals    = "missing '='"
	ReasonInvalidKey       = "invalid key"
	ReasonUnterminated     = "unterminated quote"
	ReasonTrailingAfterEnd = "trailing characters after quote"
	ReasonDuplicateKey     = "duplicate key"
	ReasonInvalidUTF8      = "invalid UTF-8"
	ReasonLineTooLong      = "line too long"
)

// MaxLineLength is the longest line Parse accepts. Longer lines are skipped
// without being buffered in full.
const MaxLineLength = 1024 * 1024

// skippedTextLimit bounds SkippedLine.Text for over-long lines.
const skippedTextLimit = 80

// Record maps keys to unquoted values.
type Record map[string]string

// Get returns the value for key and whether it was present.
func (r Record) Get(key string) (string, bool) {
	v, ok := r[key]
	return v, ok
}

// Value returns the value for key, or "" when absent.
func (r Record) Value(key string) string {
	return r[key]
}

// SkippedLine describes a line that did not contribute to the Record.
type SkippedLine struct {
	// Line is 1-based.
	Line   int
	Text   string
	Reason string
}

func (s SkippedLine) String() string {
	return fmt.Sprintf("line %d: %s: %q", s.Line, s.Reason, s.Text)
}

// Result is the outcome of a parse.
type Result struct {
	Record  Record
	Skipped []SkippedLine
}

// Parse reads KEY=VALUE lines from data. Blank lines and lines starting with
// '#' are ignored. A value may be wrapped in single or double quotes; double
// quoted values honour the backslash escapes \" \\ \$ and \`. Unquoted values
// are taken verbatim to the end of the line.
//
// When a key repeats, the first occurrence is kept and later ones are
// reported as skipped. Lines that are not valid UTF-8 or exceed
// MaxLineLength are skipped too; Parse itself never fails on content.
func Parse(data []byte) (*Result, error) {
	return ParseReader(bytes.NewReader(data))
}

// ParseReader is Parse over a stream. It fails only when r does.
func ParseReader(r io.Reader) (*Result, error) {
	br := bufio.NewReader(r)
	res := &Result{Record: Record{}}

	for lineNo := 1; ; lineNo++ {
		raw, tooLong, err := readLine(br)
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("reading key-value data: %w", err)
		}
		if errors.Is(err, io.EOF) && len(raw) == 0 && !tooLong {
			break
		}

		res.add(lineNo, raw, tooLong)

		if errors.Is(err, io.EOF) {
			break
		}
	}

	return res, nil
}

// readLine returns the next line without its terminator. A line longer than
// MaxLineLength is drained from br and only its prefix is returned.
func readLine(br *bufio.Reader) ([]byte, bool, error) {
	var (
		line    []byte
		tooLong bool
	)

	for {
		chunk, err := br.ReadSlice('\n')
		if !tooLong {
			if len(line)+len(chunk) > MaxLineLength {
				tooLong = true
				line = append(line, chunk[:min(len(chunk), skippedTextLimit)]...)
				line = line[:min(len(line), skippedTextLimit)]
			} else {
				line = append(line, chunk...)
			}
		}

		if errors.Is(err, bufio.ErrBufferFull) {
			continue
		}

		line = bytes.TrimSuffix(line, []byte("\n"))
		line = bytes.TrimSuffix(line, []byte("\r"))
		return line, tooLong, err
	}
}

func (res *Result) add(lineNo int, raw []byte, tooLong bool) {
	skip := func(reason string) {
		text := strings.ToValidUTF8(string(raw), "\uFFFD")
		res.Skipped = append(res.Skipped, SkippedLine{Line: lineNo, Text: text, Reason: reason})
	}

	switch {
	case tooLong:
		skip(ReasonLineTooLong)
		return
	case !utf8.Valid(raw):
		skip(ReasonInvalidUTF8)
		return
	}

	line := strings.TrimSpace(string(raw))
	if line == "" || strings.HasPrefix(line, "#") {
		return
	}

	key, value, reason := parseLine(line)
	if reason == "" {
		if _, dup := res.Record[key]; dup {
			reason = ReasonDuplicateKey
		}
	}

	if reason != "" {
		skip(reason)
		return
	}

	res.Record[key] = value
}

// ParseFile reads and parses the file at path.
func ParseFile(path string) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	res, err := ParseReader(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return res, nil
}

func parseLine(line string) (key, value, reason string) {
	key, rest, ok := strings.Cut(line, "=")
	if !ok {
		return "", "", ReasonMissingEquals
	}

	if !validKey(key) {
		return "", "", ReasonInvalidKey
	}

	value, reason = unquote(rest)
	return key, value, reason
}

func validKey(k string) bool {
	if k == "" {
		return false
	}

	for i, r := range k {
		switch {
		case r == '_', r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z':
		case r >= '0' && r <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}

func unquote(s string) (string, string) {
	if s == "" {
		return "", ""
	}

	switch s[0] {
	case '\'':
		end := strings.IndexByte(s[1:], '\'')
		if end < 0 {
			return "", ReasonUnterminated
		}
		if 1+end+1 != len(s) {
			return "", ReasonTrailingAfterEnd
		}
		return s[1 : 1+end], ""

	case '"':
		var b strings.Builder
		for i := 1; i < len(s); i++ {
			c := s[i]
			switch {
			case c == '\\' && i+1 < len(s) && strings.IndexByte("\"\\$`", s[i+1]) >= 0:
				i++
				b.WriteByte(s[i])
			case c == '"':
				if i+1 != len(s) {
					return "", ReasonTrailingAfterEnd
				}
				return b.String(), ""
			default:
				b.WriteByte(c)
			}
		}
		return "", ReasonUnterminated

	default:
		return s, ""
	}
}

// Quote renders v as a double-quoted value that Parse reads back as v.
func Quote(v string) string {
	var b strings.Builder
	b.WriteByte('"')
	for i := 0; i < len(v); i++ {
		if strings.IndexByte("\"\\$`", v[i]) >= 0 {
			b.WriteByte('\\')
		}
		b.WriteByte(v[i])
	}
	b.WriteByte('"')
	return b.String()
}
