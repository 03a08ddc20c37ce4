package report

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/btraven00/pdfrecon/internal/scanner"
)

// Options selects where reports go. With neither OutputFile nor SaveDir set
// the aggregate report is written to Stdout.
type Options struct {
	OutputFile string
	SaveDir    string
	Format     Format
	Stdout     io.Writer
}

// Writer emits the aggregate report and the per-file reports. Destinations
// are checked by NewWriter so that a bad path fails before any PDF is read.
type Writer struct {
	format  Format
	saveDir string
	outPath string
	out     io.WriteCloser
	stdout  io.Writer
	logger  zerolog.Logger
}

// NewWriter validates the save directory and creates the output file.
func NewWriter(opts Options, logger zerolog.Logger) (*Writer, error) {
	w := &Writer{
		format:  opts.Format,
		saveDir: opts.SaveDir,
		outPath: opts.OutputFile,
		stdout:  opts.Stdout,
		logger:  logger,
	}

	if w.format == "" {
		w.format = FormatJSON
	}

	if w.stdout == nil {
		w.stdout = os.Stdout
	}

	if w.saveDir != "" {
		if err := CheckSaveDir(w.saveDir); err != nil {
			return nil, err
		}
	}

	if w.outPath != "" {
		file, err := os.Create(w.outPath)
		if err != nil {
			return nil, fmt.Errorf("cannot open report file for writing: %w", err)
		}

		w.out = file
	}

	return w, nil
}

// CheckSaveDir fails unless dir exists and is a directory.
func CheckSaveDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("directory %q to write the per-file reports does not exist", dir)
		}

		return fmt.Errorf("cannot access directory %q: %w", dir, err)
	}

	if !info.IsDir() {
		return fmt.Errorf("%q is not a directory", dir)
	}

	return nil
}

// Write emits the aggregate report to the output file (or stdout) and one
// document per record into the save directory.
func (w *Writer) Write(report scanner.Report) error {
	if w.out != nil {
		w.logger.Info().Str("file", w.outPath).Msg("Dumping metadata into file")

		if err := Encode(w.out, report, w.format); err != nil {
			return fmt.Errorf("failed to write report %s: %w", w.outPath, err)
		}

		w.logger.Info().Str("file", w.outPath).Msg("Metadata has been dumped successfully")
	}

	if w.saveDir != "" {
		if err := w.writeEach(report); err != nil {
			return err
		}
	}

	if w.out == nil && w.saveDir == "" {
		return Encode(w.stdout, report, w.format)
	}

	return nil
}

func (w *Writer) writeEach(report scanner.Report) error {
	w.logger.Info().Str("directory", w.saveDir).Msg("Dumping metadata into their respective files")

	written := make(map[string]string, len(report))

	for _, path := range report.Paths() {
		target := filepath.Join(w.saveDir, FileName(path, w.format))

		if previous, ok := written[target]; ok {
			w.logger.Warn().
				Str("file", path).
				Str("previous", previous).
				Str("target", target).
				Msg("Per-file report name collides, overwriting")
		}

		if err := writeFile(target, report[path], w.format); err != nil {
			return err
		}

		written[target] = path

		w.logger.Debug().Str("file", path).Str("target", target).Msg("Per-file report written")
	}

	return nil
}

// FileName returns the per-file report name for a scanned PDF path.
func FileName(path string, format Format) string {
	name := SanitizeFilename(filepath.Base(path), ".")
	if name == "" {
		name = "unnamed"
	}

	return name + format.Ext()
}

func writeFile(target string, record *scanner.FileRecord, format Format) (err error) {
	file, err := os.Create(target)
	if err != nil {
		return fmt.Errorf("cannot create %s: %w", target, err)
	}

	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", target, closeErr)
		}
	}()

	if err := Encode(file, record, format); err != nil {
		return fmt.Errorf("failed to write %s: %w", target, err)
	}

	return nil
}

// Close closes the output file, if any. It is safe to call more than once.
func (w *Writer) Close() error {
	if w.out == nil {
		return nil
	}

	out := w.out
	w.out = nil

	return out.Close()
}
