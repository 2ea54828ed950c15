/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/samwightt/gqlvet/pkg/render"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"
)

var (
	schemaFilePath string
	outputFormat   render.Format
	enabledRules   []string
	disabledRules  []string
	logger         = zap.NewNop()
)

func formatFlag() string {
	if term.IsTerminal(int(os.Stdout.Fd())) {
		return string(render.FormatPretty)
	}
	return string(render.FormatText)
}

// newLogger returns a console logger writing debug records to w, or a
// no-op logger when verbose is off.
func newLogger(w io.Writer, verbose bool) *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.TimeKey = ""
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.AddSync(w),
		zapcore.DebugLevel,
	)
	return zap.New(core)
}

// loadConfig reads .gqlvet.yaml from the working directory, or the file
// given with --config, and binds the persistent flags on top of it. Flags
// that were set explicitly win over the file.
func loadConfig(cmd *cobra.Command, configFile string) (*viper.Viper, error) {
	v := viper.New()
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(".gqlvet")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	flags := cmd.Root().PersistentFlags()
	_ = v.BindPFlag("schema", flags.Lookup("schema"))
	_ = v.BindPFlag("format", flags.Lookup("format"))
	return v, nil
}

// NewRootCmd creates and returns the root command with all subcommands attached.
// This function creates a fresh command tree, ensuring no state leaks between invocations.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gqlvet",
		Short: "Validate GraphQL queries against a schema and explore the schema's types",
		Long: `gqlvet checks GraphQL query documents against a schema before they are executed.
It tracks the schema type at every point of the query and runs a set of rules over it:
leaf fields must not have selections, composite fields must have them, and variables
must be declared, used, and passed where their type is accepted.

The schema commands (types, fields, args, values) list what the validator sees,
including the built-in scalars and introspection meta-fields.

By default, gqlvet tries to read ./schema.graphql in the current directory.
A different schema file can be specified using -s, or in .gqlvet.yaml:

  schema: api/schema.graphql
  format: text
  rules:
    disable: [NoUnusedVariables]

Output can be formatted as pretty tables (default in terminals), plain text
(default when piping), or JSON for integration with other tools.`,
		Example: `  # Validate a query file
  gqlvet validate query.graphql

  # Validate from stdin, only checking leaf selections
  echo '{ user { id } }' | gqlvet validate --rule ScalarLeafs

  # List the available rules
  gqlvet rules

  # List leaf types, including built-in scalars
  gqlvet types --leaf --include-builtin

  # See the fields of a type, including __typename
  gqlvet fields User --meta

  # Pipe JSON output to other tools
  gqlvet types -f json | jq '.[].name'`,
	}

	// Persistent flags
	var formatStr, configFile string
	var verbose bool
	cmd.PersistentFlags().StringVarP(&schemaFilePath, "schema", "s", "schema.graphql", "File path of GraphQL schema")
	cmd.PersistentFlags().StringVarP(&formatStr, "format", "f", formatFlag(), "Output format: json, text, pretty (default: pretty if interactive, text otherwise)")
	cmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file (default: .gqlvet.yaml in the current directory)")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug output to stderr")

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		logger = newLogger(cmd.ErrOrStderr(), verbose)

		v, err := loadConfig(cmd, configFile)
		if err != nil {
			return err
		}
		if used := v.ConfigFileUsed(); used != "" {
			logger.Debug("config loaded", zap.String("file", used))
		}

		schemaFilePath = v.GetString("schema")
		enabledRules = v.GetStringSlice("rules.enable")
		disabledRules = v.GetStringSlice("rules.disable")
		outputFormat, err = render.ParseFormat(v.GetString("format"))
		return err
	}

	// Add all subcommands
	cmd.AddCommand(NewTypesCmd())
	cmd.AddCommand(NewFieldsCmd())
	cmd.AddCommand(NewArgsCmd())
	cmd.AddCommand(NewValuesCmd())
	cmd.AddCommand(NewRulesCmd())
	cmd.AddCommand(NewValidateCmd())

	return cmd
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// ExecuteWithArgs runs the CLI with the given arguments and returns stdout, stderr, and any error.
// This is useful for testing.
func ExecuteWithArgs(args []string) (stdout string, stderr string, err error) {
	return ExecuteWithArgsAndStdin(args, nil)
}

// ExecuteWithArgsAndStdin runs the CLI with the given arguments and stdin, returns stdout, stderr, and any error.
// This is useful for testing commands that read from stdin.
func ExecuteWithArgsAndStdin(args []string, stdin *bytes.Buffer) (stdout string, stderr string, err error) {
	cmd := NewRootCmd()

	stdoutBuf := new(bytes.Buffer)
	stderrBuf := new(bytes.Buffer)

	cmd.SetOut(stdoutBuf)
	cmd.SetErr(stderrBuf)
	cmd.SetArgs(args)
	if stdin != nil {
		cmd.SetIn(stdin)
	}

	err = cmd.Execute()

	return stdoutBuf.String(), stderrBuf.String(), err
}
