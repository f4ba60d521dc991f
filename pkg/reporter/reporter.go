package reporter

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/amosWeiskopf/linkdump/internal/config"
	"github.com/amosWeiskopf/linkdump/internal/models"
	"github.com/amosWeiskopf/linkdump/pkg/utils"
)

// Supported output formats
const (
	FormatText = "text"
	FormatJSON = "json"
)

// URLReport is the document written in json format
type URLReport struct {
	GeneratedAt time.Time `json:"generated_at"`
	Count       int       `json:"count"`
	URLs        []string  `json:"urls"`
}

// Reporter writes URL sets to files
type Reporter struct {
	dir    string
	format string
	logger zerolog.Logger
}

// New creates a new Reporter instance
func New(cfg config.OutputConfig, logger zerolog.Logger) *Reporter {
	format := cfg.Format
	if format == "" {
		format = FormatText
	}
	dir := cfg.Dir
	if dir == "" {
		dir = "."
	}

	return &Reporter{
		dir:    dir,
		format: format,
		logger: logger,
	}
}

// Path returns the file the URLs found on domain are written to.
// Relative output directories are anchored at the working directory.
func (r *Reporter) Path(domain string) string {
	ext := "txt"
	if r.format == FormatJSON {
		ext = "json"
	}

	path := filepath.Join(r.dir, utils.OutputFilename(domain, ext))
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}

// Save writes urls to filename, truncating any previous content. An empty
// set is not written at all.
func (r *Reporter) Save(urls *models.LinkSet, filename string) error {
	if urls.IsEmpty() {
		r.logger.Warn().Msg("No URLs to save.")
		return nil
	}

	var err error
	switch r.format {
	case FormatText:
		err = r.writeText(urls, filename)
	case FormatJSON:
		err = r.writeJSON(urls, filename)
	default:
		return fmt.Errorf("unsupported format: %s", r.format)
	}
	if err != nil {
		return err
	}

	r.logger.Info().Str("file", filename).Int("count", urls.Len()).Msgf("All URLs saved to %s", filename)
	return nil
}

// SaveURLs is Save that logs a failure instead of returning it
func (r *Reporter) SaveURLs(urls *models.LinkSet, filename string) {
	if err := r.Save(urls, filename); err != nil {
		r.logger.Error().Err(err).Str("file", filename).Msgf("Failed to save URLs to %s", filename)
	}
}

// writeText writes one URL per line, each followed by a newline
func (r *Reporter) writeText(urls *models.LinkSet, filename string) (err error) {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("create %s: %w", filename, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", filename, cerr)
		}
	}()

	w := bufio.NewWriter(f)
	for _, u := range urls.URLs() {
		if _, err := w.WriteString(u + "\n"); err != nil {
			return fmt.Errorf("write %s: %w", filename, err)
		}
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("write %s: %w", filename, err)
	}
	return nil
}

// writeJSON writes a URLReport document
func (r *Reporter) writeJSON(urls *models.LinkSet, filename string) error {
	report := URLReport{
		GeneratedAt: time.Now().UTC(),
		Count:       urls.Len(),
		URLs:        urls.URLs(),
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	if err := os.WriteFile(filename, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", filename, err)
	}
	return nil
}
