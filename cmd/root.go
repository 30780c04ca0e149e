/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/gnames/gnioc/internal/ioassemble"
	"github.com/gnames/gnioc/internal/iofs"
	"github.com/gnames/gnioc/internal/iologger"
	"github.com/gnames/gnioc/internal/iostore"
	gnioc "github.com/gnames/gnioc/pkg"
	"github.com/gnames/gnioc/pkg/config"
	"github.com/gnames/gnioc/pkg/ioc"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	homeDir   string
	cfg       *config.Config
	logCloser io.Closer
)

// runFlags keep command line settings of one run.
type runFlags struct {
	verbose bool
	dryRun  bool
	info    bool
	write   bool
	dataDir string
}

// getRootCmd returns a new root command.
// Extracted as a function to facilitate testing.
func getRootCmd() *cobra.Command {
	var flags runFlags

	rootCmd := &cobra.Command{
		Version: fmt.Sprintf("version: %s\nbuild:   %s",
			gnioc.Version, gnioc.Build),
		Use:   "gnioc [flags] [ioc-file ...]",
		Short: "gnioc builds a taxonomy from IOC World Bird List files",
		Long: `gnioc reads files of the IOC World Bird List and assembles them into
one taxonomy of infraclasses, orders, families, genera, species and
subspecies.

Recognized files (.xlsx, .csv, .tsv):
  - Master list: the taxonomy itself
  - IOC vs other lists: comparison with other world lists
  - Multilingual list: common names in many languages
  - Complementary list: extinction flags and codes

Without a Master list the taxonomy is loaded from the data directory,
where it is saved with --write. By default the taxonomy is printed to
STDOUT as JSON.

Configuration precedence (highest to lowest):
  1. CLI flags
  2. Environment variables (GNIOC_DATA_DIR, GNIOC_JOBS_NUMBER,
     GNIOC_LOG_LEVEL, GNIOC_LOG_FORMAT, GNIOC_LOG_DESTINATION)
  3. Config file (~/.config/gnioc/config.yaml)
  4. Built-in defaults

Examples:
  # save taxonomy with common names
  gnioc -w -v master_ioc_list.xlsx multiling.xlsx

  # add extinction data to the saved taxonomy and show statistics
  gnioc -d -i complementary.csv`,
		PersistentPreRunE: bootstrap,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runRoot(cmd, args, flags)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	// Remove the automatic "gnioc version" prefix
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	// Override version flag to use -V (consistent with other gn projects)
	rootCmd.Flags().BoolP("version", "V", false, "version for gnioc")

	rootCmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false,
		"print progress messages")
	rootCmd.Flags().BoolVarP(&flags.dryRun, "dry-run", "d", false,
		"do not write the taxonomy to files or to STDOUT")
	rootCmd.Flags().BoolVarP(&flags.info, "info", "i", false,
		"print taxonomy statistics")
	rootCmd.Flags().BoolVarP(&flags.write, "write", "w", false,
		"write the taxonomy to the data directory instead of STDOUT")
	rootCmd.Flags().StringVarP(&flags.dataDir, "data-dir", "D", "",
		"directory for generated data (default ./gendata)")

	return rootCmd
}

func bootstrap(cmd *cobra.Command, args []string) error {
	var err error
	homeDir, err = os.UserHomeDir()
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureDirs(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureConfigFile(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	var cfgViper *config.Config
	if cfgViper, err = initConfig(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	cfg = config.New()
	cfg.Update(cfgViper.ToOptions())

	// Set HomeDir after config is loaded
	cfg.Update([]config.Option{config.OptHomeDir(homeDir)})

	closeLog()
	logCloser, err = iologger.Init(config.LogDir(homeDir), cfg.Log)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	slog.Info("Configuration loaded",
		"config_file", config.ConfigFilePath(homeDir))
	return nil
}

func runRoot(cmd *cobra.Command, args []string, flags runFlags) error {
	start := time.Now()
	opts := []config.Option{
		config.OptVerbose(flags.verbose),
		config.OptWithProgress(flags.verbose),
	}
	if flags.dataDir != "" {
		opts = append(opts, config.OptDataDir(flags.dataDir))
	}
	cfg.Update(opts)

	if flags.dryRun {
		gn.Info("Dry-run: no taxonomy information will be written " +
			"to files or to STDOUT")
	}
	slog.Info("Processing IOC files",
		"files", args,
		"data_dir", cfg.DataDir,
		"write", flags.write,
		"dry_run", flags.dryRun,
	)

	store := iostore.New(cfg)
	tx, err := ioassemble.New(cfg, store).Assemble(args)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if !flags.dryRun {
		if flags.write {
			err = writeTaxonomy(store, tx)
		} else {
			err = printTaxonomy(out, tx)
		}
		if err != nil {
			return err
		}
	}

	if flags.info {
		fmt.Fprint(out, tx.Stats.Summary(tx.Version))
	}

	if cfg.Verbose {
		gn.Info("Finished in <em>%s</em>",
			gnfmt.TimeString(time.Since(start).Seconds()))
	}
	return nil
}

func writeTaxonomy(store ioc.Store, tx *ioc.Taxonomy) error {
	if cfg.Verbose {
		gn.Info("Writing taxonomy to <em>%s</em>", store.Dir())
	}
	return store.Write(tx)
}

func printTaxonomy(w io.Writer, tx *ioc.Taxonomy) error {
	data, err := tx.ToJSON()
	if err != nil {
		return err
	}
	if _, err = w.Write(data); err != nil {
		return err
	}
	_, err = fmt.Fprintln(w)
	return err
}

func closeLog() {
	if logCloser != nil {
		logCloser.Close()
		logCloser = nil
	}
}

// Execute runs the root command and exits with a code that describes
// the kind of failure. This is called by main.main().
func Execute() {
	err := getRootCmd().Execute()
	closeLog()
	if err != nil {
		os.Exit(exitCode(err))
	}
}

func initConfig(home string) (*config.Config, error) {
	var err error
	cfgPath := config.ConfigFilePath(home)
	v := viper.New()
	v.SetConfigFile(cfgPath)

	initEnvVars(v)

	if err = v.ReadInConfig(); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	var res config.Config
	if err = v.Unmarshal(&res); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	return &res, nil
}

func initEnvVars(v *viper.Viper) {
	// We set them manually so we can see clearly which env variables are allowed.
	// These match the fields included in config.ToOptions().
	v.SetEnvPrefix("GNIOC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.BindEnv("data_dir", "GNIOC_DATA_DIR")

	// Log configuration
	v.BindEnv("log.level", "GNIOC_LOG_LEVEL")
	v.BindEnv("log.format", "GNIOC_LOG_FORMAT")
	v.BindEnv("log.destination", "GNIOC_LOG_DESTINATION")

	// General configuration
	v.BindEnv("jobs_number", "GNIOC_JOBS_NUMBER")

	v.AutomaticEnv()
}
