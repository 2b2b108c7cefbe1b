package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"cachediff-generator/internal/runner"
)

// envPrefix prefixes every flag read from the environment,
// e.g. CACHEDIFF_FORMATTER.
const envPrefix = "CACHEDIFF"

var errStale = errors.New("generated files are stale")

var rootExamples = `
  Generate for the package in the current directory:
	cachediff-gen gen

  Generate for a subset of types with the styled formatter:
	cachediff-gen gen --type Metadata,Layer --formatter cachediff.StyledValue ./...

  Verify generated files in CI:
	cachediff-gen check ./...
`

// app holds what every subcommand shares.
type app struct {
	v      *viper.Viper
	logger *zap.Logger
	stdout io.Writer
	stderr io.Writer
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	return newApp(stdout, stderr).rootCmd()
}

func newApp(stdout, stderr io.Writer) *app {
	a := &app{
		v:      viper.New(),
		logger: zap.NewNop(),
		stdout: stdout,
		stderr: stderr,
	}

	a.v.SetEnvPrefix(envPrefix)
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	return a
}

func (a *app) rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "cachediff-gen",
		Short:         "Generate Diff methods for cache metadata structs",
		Example:       rootExamples,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.v.BindPFlags(cmd.Flags()); err != nil {
				return fmt.Errorf("binding flags: %w", err)
			}

			a.logger = newLogger(a.v.GetBool("debug"), a.stderr)

			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			_ = a.logger.Sync()
		},
	}

	cmd.SetOut(a.stdout)
	cmd.SetErr(a.stderr)

	cmd.PersistentFlags().Bool("debug", false, "Log pipeline steps")

	cmd.AddCommand(newGenCmd(a), newCheckCmd(a), newPlanCmd(a))

	return cmd
}

// generationFlags are shared by every subcommand.
func generationFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("generation", pflag.ContinueOnError)

	fs.StringP("dir", "C", "", "Directory to resolve package patterns from")
	fs.StringSlice("type", nil, "Type names to generate for (default: every tagged or directed struct)")
	fs.StringP("output", "o", "", "Generated file name in each package (default cachediff_gen.go)")
	fs.StringP("config", "c", "", "Path to a cachediff YAML config file")
	fs.String("formatter", "", "Value formatter, e.g. cachediff.StyledValue (default cachediff.FormatValue)")
	fs.Bool("debug-unformatted", false, "Write .unformatted sidecar files when gofmt fails")

	return fs
}

func (a *app) options(args []string) runner.Options {
	return runner.Options{
		Dir:              a.v.GetString("dir"),
		Patterns:         args,
		Types:            splitList(a.v.GetStringSlice("type")),
		ConfigPath:       a.v.GetString("config"),
		Output:           a.v.GetString("output"),
		Formatter:        a.v.GetString("formatter"),
		DebugUnformatted: a.v.GetBool("debug-unformatted"),
	}
}

func newLogger(debug bool, w io.Writer) *zap.Logger {
	level := zap.InfoLevel
	if debug {
		level = zap.DebugLevel
	}

	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	encoderConfig.TimeKey = ""

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.AddSync(w),
		zap.NewAtomicLevelAt(level),
	)

	return zap.New(core)
}

// splitList accepts both repeated values and comma separated ones, so that
// CACHEDIFF_TYPE=A,B works like --type A,B.
func splitList(values []string) []string {
	var out []string

	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}

	return out
}
