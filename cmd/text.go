package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/btraven00/pdfrecon/internal/pdfdoc"
)

var textOutput string

// textCmd represents the text command
var textCmd = &cobra.Command{
	Use:   "text <pdf-file>",
	Short: "Print the text that scan mines for entities",
	Long: `Extract the plain text of a PDF with the configured backend and print it.
The text is NFKC normalized, exactly as scan sees it, which makes this command
useful to understand why an entity was or was not found.

Examples:
  pdfrecon text paper.pdf
  pdfrecon text --text-backend native -o paper.txt paper.pdf`,
	Args: cobra.ExactArgs(1),
	RunE: runText,
}

func init() {
	rootCmd.AddCommand(textCmd)

	textCmd.Flags().StringVarP(&textOutput, "output", "o", "", "output file (default: stdout)")
}

func runText(cmd *cobra.Command, args []string) error {
	filename := args[0]

	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return fmt.Errorf("file does not exist: %s", filename)
	}

	extractor, err := pdfdoc.NewTextExtractor(appConfig.PDF.TextBackend)
	if err != nil {
		return err
	}

	appLogger.Debug().Str("file", filename).Str("backend", appConfig.PDF.TextBackend).Msg("Extracting text")

	return writeText(extractor, filename, textOutput, cmd.OutOrStdout(), appLogger.Logger)
}

func writeText(extractor pdfdoc.TextExtractor, filename, output string, stdout io.Writer, log zerolog.Logger) error {
	text, err := extractor.ExtractText(filename)
	if err != nil {
		return fmt.Errorf("failed to extract text: %w", err)
	}

	if output == "" {
		_, err := io.WriteString(stdout, text)
		return err
	}

	if err := os.WriteFile(output, []byte(text), 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	log.Info().Str("file", output).Msg("Text written")

	return nil
}
