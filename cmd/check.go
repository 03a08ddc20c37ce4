package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/btraven00/pdfrecon/internal/extractor"
	"github.com/btraven00/pdfrecon/pkg/validators"
)

var checkJSON bool

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check <url-or-host>...",
	Short: "Classify URL candidates the way scan does",
	Long: `Check runs each token through URL validation and canonicalization and
prints the extracted host, its class (ipv4, ipv6, domain or invalid) and the
canonical URL that scan would report. No network access is performed.

Examples:
  pdfrecon check example.com/path 192.168.1.1/login 1.2.3
  pdfrecon check --json //cdn.example.net/lib.js`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().BoolVar(&checkJSON, "json", false, "print results as JSON")
}

// CheckResult describes how one token is handled by URL validation.
type CheckResult struct {
	Token     string               `json:"token"`
	Host      string               `json:"host,omitempty"`
	Class     validators.HostClass `json:"class"`
	Canonical string               `json:"canonical,omitempty"`
}

func runCheck(cmd *cobra.Command, args []string) error {
	results := make([]CheckResult, 0, len(args))
	for _, token := range args {
		results = append(results, checkToken(token, appConfig.URLs.DefaultScheme))
	}

	if checkJSON {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")

		return encoder.Encode(results)
	}

	return printCheckResults(cmd.OutOrStdout(), results)
}

func checkToken(token, scheme string) CheckResult {
	result := CheckResult{Token: token, Class: validators.HostInvalid}

	host, ok := extractor.HostOf(extractor.CleanCandidate(token))
	if !ok {
		return result
	}

	result.Host = host
	result.Class = validators.ClassifyHost(host)

	canonical := extractor.CanonicalizeURLs(extractor.ProcessURLs(extractor.NewSet(token)), scheme)
	for u := range canonical {
		result.Canonical = u
	}

	return result
}

func printCheckResults(out io.Writer, results []CheckResult) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)

	fmt.Fprintln(w, "TOKEN\tHOST\tCLASS\tCANONICAL")

	for _, r := range results {
		canonical := r.Canonical
		if canonical == "" {
			canonical = "-"
		}

		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.Token, r.Host, r.Class, canonical)
	}

	return w.Flush()
}
