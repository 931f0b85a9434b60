package source

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"go.uber.org/multierr"

	"proxymerge/internal/logger"
)

var whitespace = regexp.MustCompile(`\s+`)

// MaxLineSize bounds a single snapshot line. Scraped rows can carry long
// trailing text, well past bufio's 64 KB default.
const MaxLineSize = 16 * 1024 * 1024

// splitN splits a trimmed line on whitespace runs into exactly n fields.
// The last field holds the rest of the line and may be empty.
func splitN(line string, n int) ([]string, error) {
	s := strings.TrimSpace(line)
	if s == "" {
		return nil, errors.New("empty record")
	}
	parts := whitespace.Split(s, n)
	if len(parts) == n-1 {
		parts = append(parts, "")
	}
	if len(parts) != n {
		return nil, fmt.Errorf("want %d fields, got %d", n, len(parts))
	}
	return parts, nil
}

// Options controls how malformed records are handled.
type Options struct {
	// Strict aborts on the first malformed record. Otherwise the record is
	// skipped and reported in Stats.Errs.
	Strict bool
	RunID  string
	Logger *logger.Logger
}

// Stats summarizes one source pass.
type Stats struct {
	Records int
	Emitted int
	Skipped int
	Errs    error
}

// Parse reads r record by record and hands every proxy to emit in input
// order. Blank lines are ignored for single-line sources only.
func Parse(src Source, r io.Reader, opts Options, emit func(Proxy) error) (Stats, error) {
	var stats Stats
	log := opts.Logger
	if log == nil {
		log = logger.New("source")
	}

	span := src.Span()
	pending := make([]string, 0, span)
	first, lineNo := 0, 0

	reject := func(line int, text string, err error) error {
		perr := &ParseError{Source: src.Name(), Line: line, Text: text, Err: err}
		if opts.Strict {
			return perr
		}
		stats.Skipped++
		stats.Errs = multierr.Append(stats.Errs, perr)
		return nil
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), MaxLineSize)
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if span == 1 && strings.TrimSpace(line) == "" {
			continue
		}
		if len(pending) == 0 {
			first = lineNo
		}
		pending = append(pending, line)
		if len(pending) < span {
			continue
		}

		stats.Records++
		p, err := src.ParseRecord(pending)
		switch {
		case err == nil:
			if err := emit(p); err != nil {
				return stats, err
			}
			stats.Emitted++
		case errors.Is(err, ErrSkip):
			stats.Skipped++
			log.Warn(opts.RunID, "%s:%d: no duration marker, record dropped", src.Name(), first)
		default:
			if err := reject(first, strings.Join(pending, "\n"), err); err != nil {
				return stats, err
			}
		}
		pending = pending[:0]
	}
	if err := scanner.Err(); err != nil {
		return stats, fmt.Errorf("failed to read %s: %w", src.Name(), err)
	}

	if len(pending) > 0 {
		stats.Records++
		if err := reject(first, strings.Join(pending, "\n"), errUnpaired); err != nil {
			return stats, err
		}
	}

	return stats, nil
}
