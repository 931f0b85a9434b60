package source

import (
	"errors"
	"fmt"
)

// Proxy is one normalized entry of a source snapshot.
type Proxy struct {
	Type    string
	Address string
}

func hostPort(host, port string) string {
	return host + ":" + port
}

// String renders the entry as a result file line, without the newline.
func (p Proxy) String() string {
	return fmt.Sprintf("%s %s", p.Type, p.Address)
}

// Source turns the records of one snapshot file into proxies.
type Source interface {
	// Name is both the input file name and the result file header.
	Name() string
	// Span is the number of input lines making up one record.
	Span() int
	ParseRecord(lines []string) (Proxy, error)
}

// ErrSkip is returned by ParseRecord for records that carry no proxy and
// are dropped without failing the run.
var ErrSkip = errors.New("record skipped")

// ParseError describes a record that does not match its source format.
type ParseError struct {
	Source string
	Line   int
	Text   string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d: %v (record %q)", e.Source, e.Line, e.Err, e.Text)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// errUnpaired marks a trailing line of a two-line source with no partner.
var errUnpaired = errors.New("unpaired trailing line")
