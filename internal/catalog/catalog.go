package catalog

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrIdentifierTooShort is returned by DeriveKey when an identifier is
// shorter than the prefix length being stripped.
var ErrIdentifierTooShort = errors.New("catalog: identifier shorter than strip prefix")

// ErrMissingPlaceholder is returned when a resource template does not
// contain the {id} placeholder.
var ErrMissingPlaceholder = errors.New("catalog: template missing {id} placeholder")

// Placeholder is the token substituted by the identifier in a resource
// template.
const Placeholder = "{id}"

// Record is a single entry in a catalog listing. The identifier is the
// first tab-separated column; Columns holds the remaining columns.
type Record struct {
	ID      string
	Columns []string
}

// Line reconstructs the original listing line for the record.
func (r Record) Line() string {
	if len(r.Columns) == 0 {
		return r.ID
	}
	return r.ID + "\t" + strings.Join(r.Columns, "\t")
}

// Scanner iterates over the records of a newline-delimited listing body.
// Records are produced lazily, in the order they appear; the scanner
// cannot be restarted.
type Scanner struct {
	s   *bufio.Scanner
	rec Record
	err error
}

// NewScanner creates a Scanner reading listing records from r.
func NewScanner(r io.Reader) *Scanner {
	return &Scanner{s: bufio.NewScanner(r)}
}

// Scan advances to the next record. It returns false when the listing is
// exhausted or a read error occurred; Err distinguishes the two. Blank
// lines are skipped.
func (sc *Scanner) Scan() bool {
	if sc.err != nil {
		return false
	}
	for sc.s.Scan() {
		line := strings.TrimRight(sc.s.Text(), "\r")
		if line == "" {
			continue
		}
		cols := strings.Split(line, "\t")
		sc.rec = Record{ID: cols[0], Columns: cols[1:]}
		return true
	}
	sc.err = sc.s.Err()
	return false
}

// Record returns the record read by the last call to Scan.
func (sc *Scanner) Record() Record {
	return sc.rec
}

// Err returns the first read error encountered, if any.
func (sc *Scanner) Err() error {
	return sc.err
}

// DeriveKey strips the first stripPrefix characters from the identifier
// to produce the key used for naming the output object. For the KEGG
// pathway listing a prefix of 8 turns "path:hsa00010" into "00010".
func DeriveKey(id string, stripPrefix int) (string, error) {
	if stripPrefix < 0 {
		return "", fmt.Errorf("catalog: negative strip prefix %d", stripPrefix)
	}
	if len(id) < stripPrefix {
		return "", fmt.Errorf("%w: %q (strip %d)", ErrIdentifierTooShort, id, stripPrefix)
	}
	return id[stripPrefix:], nil
}

// Template is a resource URL pattern containing the {id} placeholder.
type Template string

// Validate checks that the template contains the {id} placeholder.
func (t Template) Validate() error {
	if !strings.Contains(string(t), Placeholder) {
		return fmt.Errorf("%w: %q", ErrMissingPlaceholder, string(t))
	}
	return nil
}

// Expand substitutes the identifier into the template, producing the
// resource URL.
func (t Template) Expand(id string) string {
	return strings.ReplaceAll(string(t), Placeholder, id)
}
