package cmd

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/btraven00/pdfrecon/internal/extractor"
	"github.com/btraven00/pdfrecon/internal/report"
)

var extractFormat string

// extractCmd represents the extract command
var extractCmd = &cobra.Command{
	Use:   "extract [file]",
	Short: "Extract emails, phone numbers and URLs from plain text",
	Long: `Run the entity extraction on plain text read from a file, or from stdin
when no file is given, and print the phone numbers, emails and canonical URLs.

Examples:
  pdfrecon extract notes.txt
  pdftotext paper.pdf - | pdfrecon extract --format csv
  pdfrecon text paper.pdf | pdfrecon extract --region GB`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().StringVar(&extractFormat, "format", "json", "output format (json, yaml, csv)")
}

func runExtract(cmd *cobra.Command, args []string) error {
	in := cmd.InOrStdin()

	if len(args) == 1 {
		file, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", args[0], err)
		}
		defer file.Close()

		in = file
	}

	ex, err := newExtractor(appConfig)
	if err != nil {
		return err
	}

	return extractEntities(in, cmd.OutOrStdout(), ex, extractFormat)
}

func extractEntities(in io.Reader, out io.Writer, ex *extractor.Extractor, format string) error {
	data, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	entities := ex.Extract(string(data))

	if strings.EqualFold(format, "csv") {
		return writeEntitiesCSV(out, entities)
	}

	f, err := report.ParseFormat(format)
	if err != nil {
		return err
	}

	return report.Encode(out, entities, f)
}

func writeEntitiesCSV(out io.Writer, entities extractor.Entities) error {
	writer := csv.NewWriter(out)

	if err := writer.Write([]string{"type", "value"}); err != nil {
		return err
	}

	groups := []struct {
		kind string
		set  extractor.Set
	}{
		{"phone_number", entities.PhoneNumbers},
		{"email", entities.Emails},
		{"url", entities.URLs},
	}

	for _, group := range groups {
		for _, value := range group.set.Sorted() {
			if err := writer.Write([]string{group.kind, value}); err != nil {
				return err
			}
		}
	}

	writer.Flush()

	return writer.Error()
}
