package output

import (
	"bufio"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"

	"proxymerge/pkg/source"
)

// Writer appends normalized proxies and per-source headers to the result file
type Writer struct {
	file   afero.File
	buf    *bufio.Writer
	path   string
	legacy bool
	lines  int
}

// Create truncates or creates the result file at path. With legacyHeaders
// the header of a source whose original header had no newline is written
// without one, so its first entry shares the header line.
func Create(fs afero.Fs, path string, legacyHeaders bool) (*Writer, error) {
	// Ensure the directory exists
	if err := fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create result directory: %w", err)
	}

	file, err := fs.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create result file: %w", err)
	}

	return &Writer{
		file:   file,
		buf:    bufio.NewWriter(file),
		path:   path,
		legacy: legacyHeaders,
	}, nil
}

// Path returns the result file path
func (w *Writer) Path() string {
	return w.path
}

// Header writes the "# <name>" comment that opens a source section
func (w *Writer) Header(name string) error {
	if w.legacy && !source.TerminatedHeader(name) {
		_, err := fmt.Fprintf(w.buf, "# %s", name)
		return err
	}
	return w.line("# " + name)
}

// Append writes one proxy line
func (w *Writer) Append(p source.Proxy) error {
	return w.line(p.String())
}

func (w *Writer) line(s string) error {
	if _, err := w.buf.WriteString(s + "\n"); err != nil {
		return fmt.Errorf("failed to write %s: %w", w.path, err)
	}
	w.lines++
	return nil
}

// Lines returns the number of newline-terminated lines written so far
func (w *Writer) Lines() int {
	return w.lines
}

// Flush pushes buffered lines to the file so it can be read back
func (w *Writer) Flush() error {
	if err := w.buf.Flush(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", w.path, err)
	}
	return nil
}

// Close flushes and closes the result file
func (w *Writer) Close() error {
	if err := w.Flush(); err != nil {
		w.file.Close()
		return err
	}
	return w.file.Close()
}
