package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/btraven00/pdfrecon/internal/extractor"
	"github.com/btraven00/pdfrecon/internal/phone"
)

var debugCmd = &cobra.Command{
	Use:   "debug",
	Short: "Debug information about patterns and phone regions",
	Long:  `Display the candidate patterns, the phone regions in use, and pattern matches for a test input.`,
	RunE:  runDebug,
}

var debugListRegions bool
var debugTestPattern string

func init() {
	rootCmd.AddCommand(debugCmd)
	debugCmd.Flags().BoolVarP(&debugListRegions, "list-regions", "l", false, "List the phone regions accepted by --region")
	debugCmd.Flags().StringVarP(&debugTestPattern, "test-pattern", "t", "", "Show every stage of extraction for a specific input")
}

func runDebug(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if debugListRegions {
		regions, err := activeRegions()
		if err != nil {
			return err
		}

		listRegions(out, regions)

		return nil
	}

	if debugTestPattern != "" {
		ex, err := newExtractor(appConfig)
		if err != nil {
			return err
		}

		testPattern(out, ex, debugTestPattern)

		return nil
	}

	showGeneralDebug(out)

	return nil
}

func activeRegions() (phone.Regions, error) {
	if appConfig.Phone.RegionsFile == "" {
		return phone.SupportedRegions(), nil
	}

	return phone.LoadRegions(appConfig.Phone.RegionsFile)
}

func listRegions(out io.Writer, regions phone.Regions) {
	fmt.Fprintf(out, "=== Phone Regions (%d) ===\n", regions.Len())

	codes := regions.Codes()
	for i := 0; i < len(codes); i += 16 {
		end := min(i+16, len(codes))
		fmt.Fprintln(out, strings.Join(codes[i:end], " "))
	}
}

func testPattern(out io.Writer, ex *extractor.Extractor, input string) {
	fmt.Fprintf(out, "=== Testing Patterns for: %q ===\n\n", input)

	candidates := extractor.ExtractURLs(input)
	validated := extractor.ProcessURLs(candidates)

	stages := []struct {
		name string
		set  extractor.Set
	}{
		{"Phone numbers (region " + ex.Region() + ")", ex.ExtractPhoneNumbers(input, "")},
		{"Emails", extractor.ExtractEmails(input)},
		{"URL candidates", candidates},
		{"Validated URLs", validated},
		{"Canonical URLs", extractor.CanonicalizeURLs(validated, ex.Scheme())},
	}

	for _, stage := range stages {
		fmt.Fprintf(out, "%s: %d\n", stage.name, len(stage.set))

		for _, item := range stage.set.Sorted() {
			fmt.Fprintf(out, "  - %s\n", item)
		}
	}
}

func showGeneralDebug(out io.Writer) {
	fmt.Fprintln(out, "=== pdfrecon Debug Information ===")
	fmt.Fprintln(out)

	for _, pattern := range extractor.Patterns() {
		fmt.Fprintf(out, "%s: %s\n", pattern.Name, pattern.Description)
		fmt.Fprintf(out, "  Pattern: %s\n", pattern.Regex.String())
		fmt.Fprintf(out, "  Examples: %s\n", strings.Join(pattern.Examples, ", "))
		fmt.Fprintln(out)
	}

	fmt.Fprintln(out, "Use --list-regions to see the accepted phone regions")
	fmt.Fprintln(out, "Use --test-pattern <input> to run extraction on a string")
	fmt.Fprintln(out)

	fmt.Fprintln(out, "Example commands:")
	fmt.Fprintln(out, "  pdfrecon debug --list-regions")
	fmt.Fprintln(out, "  pdfrecon debug --test-pattern 'mail a.b@example.com, see example.com/docs'")
}
