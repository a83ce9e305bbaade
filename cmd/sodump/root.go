package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	flagVerbose bool
	flagLogFile string

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "sodump",
	Short: "Reconstruct C++ class declarations from shared-object symbol tables",
	Long: `sodump rebuilds an approximate C++ class model (classes, methods,
constructors, inheritance) from the symbol table of a compiled shared
object, using readelf/nm output and demangled symbol names.

The reconstruction is best-effort: polymorphism and inheritance come
from vtable/typeinfo symbol naming conventions and are heuristic, not
verified ABI data.`,
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		logger, err = newLogger(flagVerbose, flagLogFile)
		if err != nil {
			return fmt.Errorf("logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "also log to this file")

	rootCmd.AddCommand(dumpCmd)
	rootCmd.AddCommand(classesCmd)
	rootCmd.AddCommand(vtablesCmd)
	rootCmd.AddCommand(infoCmd)
}

// newLogger builds a console logger on stderr, optionally teed into a
// log file so long dumps keep a record next to their artifacts.
func newLogger(verbose bool, logFile string) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}

	encCfg := zap.NewDevelopmentEncoderConfig()
	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.Lock(os.Stderr), level),
	}

	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return nil, err
		}
		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
			zapcore.AddSync(f), zapcore.InfoLevel))
	}

	return zap.New(zapcore.NewTee(cores...)), nil
}
