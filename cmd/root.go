package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/btraven00/pdfrecon/internal/config"
	"github.com/btraven00/pdfrecon/internal/logger"
)

var (
	cfgFile   string
	verbosity int
	quiet     bool

	appConfig *config.Config
	appLogger *logger.Logger

	configErr error
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "pdfrecon",
	Short: "Extract metadata, emails, phone numbers and URLs from PDF documents",
	Long: `pdfrecon reads PDF documents and reports their document information
dictionary together with the email addresses, phone numbers and URLs found in
their text. Reports are written as JSON (or YAML), either aggregated into one
file keyed by absolute path or as one file per document.

URLs are validated syntactically only: hosts must be IP literals or well formed
domain names. Nothing is resolved or fetched.`,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	defer func() {
		if appLogger != nil {
			_ = appLogger.Close()
		}
	}()

	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.pdfrecon.yaml)")
	flags.CountVarP(&verbosity, "verbose", "v", "verbosity (-v debug, -vvv per-stage trace)")
	flags.BoolVarP(&quiet, "quiet", "q", false, "only log warnings and errors")
	flags.String("log-file", "", "also write logs to this file (rotated)")
	flags.String("log-format", "console", "log format (console, json)")
	flags.String("region", "", "default region for phone numbers without a country prefix (e.g. US, DE)")
	flags.Int("leniency", 0, "phone number leniency (0 possible, 1 valid, 2-3 grouping)")
	flags.String("default-scheme", "http", "scheme prepended to URLs that have none")
	flags.String("text-backend", "auto", "PDF text backend (auto, docconv, native)")

	bindFlags(flags, map[string]string{
		"log.file":            "log-file",
		"log.format":          "log-format",
		"phone.region":        "region",
		"phone.leniency":      "leniency",
		"urls.default_scheme": "default-scheme",
		"pdf.text_backend":    "text-backend",
	})
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".pdfrecon" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".pdfrecon")
	}

	viper.SetEnvPrefix("PDFRECON")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	if err := viper.ReadInConfig(); err != nil {
		// A missing default file is fine, an explicit one must load.
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound || cfgFile != "" {
			configErr = fmt.Errorf("failed to read config file: %w", err)
		}
	}
}

// setup loads the configuration and builds the logger before any command runs.
func setup(cmd *cobra.Command, _ []string) error {
	if configErr != nil {
		return configErr
	}

	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return err
	}

	l, err := logger.New(logger.Options{
		Level:      cfg.Log.Level,
		Verbosity:  verbosity,
		Quiet:      quiet,
		Format:     cfg.Log.Format,
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		Stderr:     cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}

	appConfig = cfg
	appLogger = l

	if used := viper.ConfigFileUsed(); used != "" {
		appLogger.Debug().Str("file", used).Msg("Using config file")
	}

	return nil
}

// bindFlags binds viper keys to flags of the set.
func bindFlags(flags *pflag.FlagSet, keys map[string]string) {
	for key, name := range keys {
		cobra.CheckErr(viper.BindPFlag(key, flags.Lookup(name)))
	}
}
