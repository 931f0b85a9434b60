package manager

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/afero"
	"go.uber.org/multierr"

	"proxymerge/internal/config"
	"proxymerge/internal/logger"
	"proxymerge/internal/output"
	"proxymerge/pkg/source"
	"proxymerge/pkg/tally"
)

// SourceStats is the outcome of one source pass
type SourceStats struct {
	Name string
	source.Stats
}

// Manager runs every configured source into one result file and tallies it
type Manager struct {
	fs      afero.Fs
	cfg     *config.Config
	sources []source.Source
	logger  *logger.Logger
}

func NewManager(fs afero.Fs, cfg *config.Config) (*Manager, error) {
	sources, err := source.Select(cfg.Sources)
	if err != nil {
		return nil, fmt.Errorf("failed to select sources: %w", err)
	}

	return &Manager{
		fs:      fs,
		cfg:     cfg,
		sources: sources,
		logger:  logger.New("manager"),
	}, nil
}

// Run writes the result file and returns its tally. A failure leaves the
// lines written so far in place.
func (m *Manager) Run(ctx context.Context, id string) (tally.Result, []SourceStats, error) {
	// Only subdirectories of the result path are created, never the input dir
	info, err := m.fs.Stat(m.cfg.Input.Dir)
	if err != nil {
		return tally.Result{}, nil, fmt.Errorf("failed to open input dir: %w", err)
	}
	if !info.IsDir() {
		return tally.Result{}, nil, fmt.Errorf("input dir %s is not a directory", m.cfg.Input.Dir)
	}

	w, err := output.Create(m.fs, m.cfg.ResultPath(), m.cfg.Output.LegacyHeaders)
	if err != nil {
		return tally.Result{}, nil, err
	}

	stats, err := m.writeSources(ctx, id, w)
	if cerr := w.Close(); err == nil && cerr != nil {
		err = cerr
	}
	if err != nil {
		return tally.Result{}, stats, err
	}

	m.logger.Info(id, "Wrote %s lines to %s", humanize.Comma(int64(w.Lines())), w.Path())

	res, err := tally.CountFile(m.fs, w.Path())
	if err != nil {
		return res, stats, fmt.Errorf("failed to tally result file: %w", err)
	}

	m.logger.Info(id, "Total unique proxies: %s", humanize.Comma(int64(res.Unique)))
	return res, stats, nil
}

func (m *Manager) writeSources(ctx context.Context, id string, w *output.Writer) ([]SourceStats, error) {
	opts := source.Options{
		Strict: m.cfg.Parser.Strict,
		RunID:  id,
		Logger: logger.New("source"),
	}

	var all []SourceStats
	for _, src := range m.sources {
		if err := ctx.Err(); err != nil {
			return all, err
		}

		st, err := m.writeSource(src, w, opts)
		all = append(all, SourceStats{Name: src.Name(), Stats: st})
		if err != nil {
			return all, err
		}

		if st.Errs != nil {
			for _, perr := range multierr.Errors(st.Errs) {
				m.logger.Warn(id, "Skipped: %v", perr)
			}
		}
		m.logger.Info(id, "Source %s: %d records, %d written, %d skipped",
			src.Name(), st.Records, st.Emitted, st.Skipped)
	}
	return all, nil
}

func (m *Manager) writeSource(src source.Source, w *output.Writer, opts source.Options) (source.Stats, error) {
	f, err := m.fs.Open(m.cfg.InputPath(src.Name()))
	if err != nil {
		return source.Stats{}, fmt.Errorf("failed to open source %s: %w", src.Name(), err)
	}
	defer f.Close()

	if err := w.Header(src.Name()); err != nil {
		return source.Stats{}, err
	}

	return source.Parse(src, f, opts, w.Append)
}
