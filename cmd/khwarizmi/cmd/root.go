package cmd

import (
	"path/filepath"

	"github.com/msto63/khwarizmi/pkg/core/config"
	"github.com/msto63/khwarizmi/pkg/core/logging"
	"github.com/spf13/cobra"
)

var (
	cfgFile   string
	verbose   bool
	appConfig *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "khwarizmi",
	Short: "khwarizmi - Löser für lineare Gleichungen",
	Long: `khwarizmi löst lineare Gleichungen mit einer Variablen,
indem die Operationen um die Variable Schritt für Schritt
umgekehrt werden.

Beispiele:
  khwarizmi solve "2x+3=7"          # x = 2
  khwarizmi solve --steps "10/x=2"  # mit Lösungsweg
  khwarizmi repl                    # interaktiver Modus
  khwarizmi serve                   # gRPC- und HTTP-Server`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logging.CloseFile()
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config-Datei (default: ./configs/khwarizmi.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose Output")
}

// setup loads the configuration and configures logging. One-shot commands
// log warnings only unless --verbose is given; serve uses the configured level.
func setup(cmd *cobra.Command, args []string) error {
	var err error
	if cfgFile != "" {
		appConfig, err = config.Load(cfgFile)
	} else {
		appConfig, err = config.LoadFromEnv()
	}
	if err != nil {
		return err
	}

	logCfg := logging.DefaultLoggerConfig(appConfig.General.Name)
	logCfg.Level = appConfig.General.LogLevel
	logCfg.Format = appConfig.General.LogFormat
	logCfg.Output = cmd.ErrOrStderr()

	if cmd.Name() != serveCmd.Name() {
		logCfg.Level = "warn"
		logCfg.Format = "text"
	}
	if verbose {
		logCfg.Level = "debug"
	}

	if appConfig.General.LogFile != "" {
		return logging.ConfigureFile(logCfg, filepath.Dir(appConfig.General.LogFile), filepath.Base(appConfig.General.LogFile))
	}
	logging.Configure(logCfg)
	return nil
}
