package logpeek

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/arthur-debert/logpeek/internal/version"
	"github.com/arthur-debert/logpeek/pkg/cobrax/topics"
	"github.com/arthur-debert/logpeek/pkg/commands/check"
	"github.com/arthur-debert/logpeek/pkg/commands/show"
	"github.com/arthur-debert/logpeek/pkg/commands/validate"
	"github.com/arthur-debert/logpeek/pkg/config"
	"github.com/arthur-debert/logpeek/pkg/errors"
	"github.com/arthur-debert/logpeek/pkg/logging"
	"github.com/arthur-debert/logpeek/pkg/output"
	"github.com/arthur-debert/logpeek/pkg/rules"
	"github.com/arthur-debert/logpeek/pkg/ruleset"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// ruleFlags are the flags that select a rule source
var ruleFlags = []string{"config-file", "json", "regex", "not", "output", "print-input"}

// app holds the flag values and the settings shared by all commands
type app struct {
	verbosity    int
	settingsFile string
	color        string
	strict       bool
	source       ruleset.Source

	settings *config.Settings
}

// Execute runs logpeek with args and returns the process exit status.
// Errors are printed to errOut.
func Execute(ctx context.Context, args []string, in io.Reader, out, errOut io.Writer) int {
	rootCmd := NewRootCmd()
	rootCmd.SetArgs(args)
	rootCmd.SetIn(in)
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)

	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return errors.ExitOK
	}

	w := output.NewWriter(out, errOut, output.DetectFormat(fileOf(errOut)))
	_ = w.RenderError(err)
	return errors.ExitCode(err)
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	a := &app{}
	var (
		printJSON bool
		stats     bool
	)

	rootCmd := &cobra.Command{
		Use:     "logpeek [input_file]",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Example: MsgRootExample,
		Version: version.Version,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 1 {
				return errors.Newf(errors.ErrInvalidInput, MsgErrTooManyArgs, len(args))
			}
			return nil
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logging.SetupLogger(a.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
			return a.loadSettings(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadRules(cmd)
			if err != nil {
				return err
			}

			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			input, err := a.openInput(cmd, path)
			if err != nil {
				return err
			}
			defer func() { _ = input.Close() }()

			w, err := a.newWriter(cmd)
			if err != nil {
				return err
			}

			result, err := check.Run(cmd.Context(), check.Options{
				Config:       cfg,
				Input:        input,
				Path:         path,
				Writer:       w,
				MaxLineBytes: a.settings.Input.MaxLineBytes,
				Strict:       a.settings.Rules.Strict,
				PrintJSON:    printJSON,
			})
			if stats && result != nil {
				_ = w.RenderSummary(result.Summary())
			}
			return err
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return errors.Wrap(err, errors.ErrInvalidInput, MsgErrFlags)
	})

	// Global flags
	pf := rootCmd.PersistentFlags()
	pf.CountVarP(&a.verbosity, "verbose", "v", MsgFlagVerbose)
	pf.StringVar(&a.settingsFile, "settings", "", MsgFlagSettings)
	pf.StringVar(&a.color, "color", "auto", MsgFlagColor)
	a.bindRuleFlags(pf)

	rootCmd.Flags().BoolVar(&printJSON, "print-json", false, MsgFlagPrintJSON)
	rootCmd.Flags().BoolVar(&stats, "stats", false, MsgFlagStats)

	rootCmd.AddGroup(&cobra.Group{ID: "core", Title: "COMMANDS:"})
	rootCmd.AddGroup(&cobra.Group{ID: "misc", Title: "MISC:"})

	rootCmd.AddCommand(newValidateCmd(a))
	rootCmd.AddCommand(newShowCmd(a))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	opts := topics.Options{
		Extensions: []string{".md"},
		Renderer:   topics.NewGlamourRenderer(os.Stdout),
	}
	if err := topics.InitializeWithOptions(rootCmd, helpTopics(), opts); err != nil {
		log.Warn().Err(err).Msg("Help topics unavailable")
	}

	return rootCmd
}

func (a *app) bindRuleFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&a.source.ConfigFile, "config-file", "c", "", MsgFlagConfigFile)
	fs.StringVarP(&a.source.JSON, "json", "j", "", MsgFlagJSON)
	fs.StringVarP(&a.source.Regex, "regex", "r", "", MsgFlagRegex)
	fs.BoolVarP(&a.source.Not, "not", "n", false, MsgFlagNot)
	fs.StringVarP(&a.source.Output, "output", "o", "", MsgFlagOutput)
	fs.BoolVarP(&a.source.PrintInput, "print-input", "p", false, MsgFlagPrintInput)
	fs.BoolVar(&a.strict, "strict", false, MsgFlagStrict)
}

// loadSettings layers the settings with the flags that override them
func (a *app) loadSettings(cmd *cobra.Command) error {
	overrides := map[string]interface{}{}
	if cmd.Flags().Changed("color") {
		overrides["output.color"] = a.color
	}
	if cmd.Flags().Changed("strict") {
		overrides["rules.strict"] = a.strict
	}

	settings, err := config.Load(config.LoadOptions{
		SettingsFile: a.settingsFile,
		Overrides:    overrides,
	})
	if err != nil {
		return err
	}
	a.settings = settings
	return nil
}

// loadRules builds the rule set. The settings' default file is used only
// when no rule flag was given.
func (a *app) loadRules(cmd *cobra.Command) (rules.Config, error) {
	src := a.source
	given := false
	for _, name := range ruleFlags {
		if cmd.Flags().Changed(name) {
			given = true
			break
		}
	}
	if !given {
		src.DefaultFile = a.settings.Rules.DefaultFile
	}
	return ruleset.Load(src)
}

func (a *app) openInput(cmd *cobra.Command, path string) (io.ReadCloser, error) {
	if path == "" {
		log.Debug().Msg(MsgNoInputFile)
		return io.NopCloser(cmd.InOrStdin()), nil
	}
	return check.OpenInput(path)
}

func (a *app) newWriter(cmd *cobra.Command) (*output.Writer, error) {
	format, err := output.ForColor(string(a.settings.Output.Color), fileOf(cmd.OutOrStdout()))
	if err != nil {
		return nil, err
	}
	return output.NewWriter(cmd.OutOrStdout(), cmd.ErrOrStderr(), format), nil
}

// fileOf returns w as a file when it is one, for terminal detection
func fileOf(w io.Writer) *os.File {
	if f, ok := w.(*os.File); ok {
		return f
	}
	return nil
}

func newValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "validate",
		Short:   MsgValidateShort,
		Long:    MsgValidateLong,
		Args:    cobra.NoArgs,
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadRules(cmd)
			if err != nil {
				return err
			}

			result, err := validate.Validate(validate.Options{Config: cfg})
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), result.Message())
			return err
		},
	}
}

func newShowCmd(a *app) *cobra.Command {
	var (
		format string
		pretty bool
	)

	cmd := &cobra.Command{
		Use:     "show",
		Short:   MsgShowShort,
		Long:    MsgShowLong,
		Example: MsgShowExample,
		Args:    cobra.NoArgs,
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadRules(cmd)
			if err != nil {
				return err
			}

			if !cmd.Flags().Changed("format") {
				format = a.settings.Output.Format
			}
			if !cmd.Flags().Changed("pretty") {
				pretty = a.settings.Output.Pretty
			}
			outFormat, err := output.ForColor(string(a.settings.Output.Color), fileOf(cmd.OutOrStdout()))
			if err != nil {
				return err
			}

			data, err := show.Show(show.Options{
				Config: cfg,
				Format: format,
				Pretty: pretty,
				Color:  outFormat == output.FormatTerminal,
			})
			if err != nil {
				return err
			}
			if _, err := cmd.OutOrStdout().Write(data); err != nil {
				return errors.Wrap(err, errors.ErrFileWrite, "failed to write output")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "json", MsgFlagFormat)
	cmd.Flags().BoolVar(&pretty, "pretty", false, MsgFlagPretty)
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		Args:    cobra.NoArgs,
		GroupID: "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), version.String())
			return err
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		GroupID:               "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
}
