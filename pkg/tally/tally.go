package tally

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/afero"

	"proxymerge/pkg/source"
)

// Result contains the unique proxy count and its breakdown by type.
type Result struct {
	Unique int            `json:"unique"`
	ByType map[string]int `json:"by_type"`
}

// String renders the result as "<unique> map[type:n ...]" with sorted types.
func (r Result) String() string {
	return fmt.Sprintf("%d %v", r.Unique, r.ByType)
}

// LineError reports a result line that is not "<type> <address>".
type LineError struct {
	Line int
	Text string
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: want \"<type> <address>\", got %q", e.Line, e.Text)
}

// Count reads result lines from r, skipping "#" comments. Every address is
// counted once, under the type it first appeared with.
func Count(r io.Reader) (Result, error) {
	res := Result{ByType: make(map[string]int)}
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), source.MaxLineSize)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.Split(strings.TrimSpace(line), " ")
		if len(parts) != 2 {
			return res, &LineError{Line: lineNo, Text: line}
		}

		proxyType, addr := parts[0], parts[1]
		if seen[addr] {
			continue
		}
		seen[addr] = true
		res.ByType[proxyType]++
	}
	if err := scanner.Err(); err != nil {
		return res, fmt.Errorf("failed to read result lines: %w", err)
	}

	res.Unique = len(seen)
	return res, nil
}

// CountFile tallies the result file at path.
func CountFile(fs afero.Fs, path string) (Result, error) {
	f, err := fs.Open(path)
	if err != nil {
		return Result{}, fmt.Errorf("failed to open result file: %w", err)
	}
	defer f.Close()

	res, err := Count(f)
	if err != nil {
		return res, fmt.Errorf("%s: %w", path, err)
	}
	return res, nil
}
