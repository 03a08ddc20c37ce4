package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/btraven00/pdfrecon/internal/config"
	"github.com/btraven00/pdfrecon/internal/extractor"
	"github.com/btraven00/pdfrecon/internal/pdfdoc"
	"github.com/btraven00/pdfrecon/internal/phone"
	"github.com/btraven00/pdfrecon/internal/report"
	"github.com/btraven00/pdfrecon/internal/scanner"
)

var (
	scanFiles       []string
	scanDirectories []string
)

// scanCmd represents the scan command
var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Extract metadata and contact entities from PDF files",
	Long: `Scan PDF files and directories and report, for every document, its
information dictionary, page count and the phone numbers, email addresses and
URLs found in its text.

Files are processed one at a time. A file that cannot be read is logged and
left out of the report; the remaining files are still processed. Interrupting
the scan (Ctrl-C) writes the report for the files completed so far.

Without --output or --save the aggregate report is printed to stdout.

Examples:
  pdfrecon scan -f report.pdf
  pdfrecon scan -d ./papers -s -o metadata.json
  pdfrecon scan -d ./papers -r -D ./reports --format yaml
  pdfrecon scan -f brochure.pdf --region DE --annotations -vvv`,
	Args: cobra.NoArgs,
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)

	flags := scanCmd.Flags()
	flags.StringArrayVarP(&scanFiles, "file", "f", nil, "PDF file to scan (repeatable)")
	flags.StringArrayVarP(&scanDirectories, "directory", "d", nil, "directory to take PDF files from (repeatable)")
	flags.StringP("output", "o", "", "file to write the aggregate report to")
	flags.StringP("save", "D", "", "existing directory to write one report per file into")
	flags.BoolP("strict", "s", false, "only take files with a .pdf extension from directories")
	flags.BoolP("recursive", "r", false, "descend into subdirectories")
	flags.String("format", "json", "report format (json, yaml)")
	flags.Bool("annotations", false, "also read URIs from link annotations")

	bindFlags(flags, map[string]string{
		"output.file":     "output",
		"output.save_dir": "save",
		"scan.strict":     "strict",
		"scan.recursive":  "recursive",
		"output.format":   "format",
		"pdf.annotations": "annotations",
	})
}

func runScan(cmd *cobra.Command, _ []string) error {
	if len(scanFiles) == 0 && len(scanDirectories) == 0 {
		return errors.New("either of the following flags is required: --file/-f, --directory/-d")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	inputs := scanner.DiscoverOptions{
		Files:       scanFiles,
		Directories: scanDirectories,
		Strict:      appConfig.Scan.Strict,
		Recursive:   appConfig.Scan.Recursive,
	}

	return executeScan(ctx, appConfig, inputs, cmd.OutOrStdout(), appLogger.Logger)
}

// executeScan opens the report destinations, scans the discovered files and
// writes the report. Destination errors are returned before any file is read.
func executeScan(ctx context.Context, cfg *config.Config, inputs scanner.DiscoverOptions, stdout io.Writer, log zerolog.Logger) error {
	format, err := report.ParseFormat(cfg.Output.Format)
	if err != nil {
		return err
	}

	writer, err := report.NewWriter(report.Options{
		OutputFile: cfg.Output.File,
		SaveDir:    cfg.Output.SaveDir,
		Format:     format,
		Stdout:     stdout,
	}, log)
	if err != nil {
		return err
	}
	defer writer.Close()

	sc, err := newScanner(cfg, log)
	if err != nil {
		return err
	}

	paths := scanner.Discover(inputs, log)
	if len(paths) == 0 {
		log.Warn().Msg("No files to scan")
	}

	results, err := sc.Run(ctx, paths)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			return err
		}

		log.Warn().Int("completed", len(results)).Msg("Scan interrupted, writing report for completed files")
	}

	if err := writer.Write(results); err != nil {
		return err
	}

	return writer.Close()
}

// newScanner wires the PDF readers and the entity extractor from cfg.
func newScanner(cfg *config.Config, log zerolog.Logger) (*scanner.Scanner, error) {
	ex, err := newExtractor(cfg)
	if err != nil {
		return nil, err
	}

	text, err := pdfdoc.NewTextExtractor(cfg.PDF.TextBackend)
	if err != nil {
		return nil, err
	}

	var links pdfdoc.LinkReader
	if cfg.PDF.Annotations {
		links = pdfdoc.NewAnnotationReader()
	}

	return scanner.New(scanner.Config{
		Metadata:  pdfdoc.NewInfoReader(),
		Text:      text,
		Links:     links,
		Extractor: ex,
		Logger:    log,
	})
}

// newExtractor builds the extractor, restricting regions when a regions
// file is configured.
func newExtractor(cfg *config.Config) (*extractor.Extractor, error) {
	regions := phone.SupportedRegions()

	if cfg.Phone.RegionsFile != "" {
		loaded, err := phone.LoadRegions(cfg.Phone.RegionsFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load regions: %w", err)
		}

		regions = loaded
	}

	return extractor.New(phone.NewLibMatcher(), regions, extractor.Options{
		Region:        cfg.Phone.Region,
		Leniency:      cfg.Phone.Leniency,
		DefaultScheme: cfg.URLs.DefaultScheme,
	})
}
