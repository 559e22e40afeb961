package cmd

import (
	stdcontext "context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"

	"github.com/yamlvet/yamlvet/internal/aggregate"
	"github.com/yamlvet/yamlvet/internal/checker"
	"github.com/yamlvet/yamlvet/internal/config"
	"github.com/yamlvet/yamlvet/internal/fileval"
	"github.com/yamlvet/yamlvet/internal/issue"
	"github.com/yamlvet/yamlvet/internal/reporter"
	"github.com/yamlvet/yamlvet/internal/version"
)

// Exit codes
const (
	ExitSuccess = 0 // No CRITICAL or HIGH issues
	ExitFailure = 1 // CRITICAL or HIGH issues found, or a fatal setup error
)

func checkCommand() *cli.Command {
	return &cli.Command{
		Name:      "check",
		Usage:     "Validate a YAML file for syntax, lint, and security issues",
		ArgsUsage: "FILE",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to config file (default: auto-discover)",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format: text, json, sarif, github-actions",
				Sources: cli.EnvVars("YAMLVET_FORMAT", "YAMLVET_OUTPUT_FORMAT"),
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output path: stdout, stderr, or file path",
				Sources: cli.EnvVars("YAMLVET_OUTPUT_PATH"),
			},
			&cli.BoolFlag{
				Name:    "no-color",
				Usage:   "Disable colored output",
				Sources: cli.EnvVars("NO_COLOR"),
			},
			&cli.BoolFlag{
				Name:    "show-source",
				Usage:   "Show source code snippets (default: true)",
				Value:   true,
				Sources: cli.EnvVars("YAMLVET_OUTPUT_SHOW_SOURCE"),
			},
			&cli.BoolFlag{
				Name:  "hide-source",
				Usage: "Hide source code snippets",
			},
			&cli.BoolFlag{
				Name:    "debug",
				Usage:   "Enable debug logging to stderr",
				Sources: cli.EnvVars("YAMLVET_DEBUG"),
			},
		},
		Action: runCheck,
	}
}

// runCheck is the action handler for the check command.
func runCheck(ctx stdcontext.Context, cmd *cli.Command) error {
	logrus.SetOutput(os.Stderr)
	if cmd.Bool("debug") {
		logrus.SetLevel(logrus.DebugLevel)
	}

	args := cmd.Args().Slice()
	if len(args) != 1 {
		fmt.Fprintf(os.Stderr, "Error: expected exactly one FILE argument, got %d\n", len(args))
		fmt.Fprintln(os.Stderr, "Usage: yamlvet check [options] FILE")
		return cli.Exit("", ExitFailure)
	}
	target := args[0]

	if err := fileval.ValidateTarget(target); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return cli.Exit("", ExitFailure)
	}

	cfg, err := loadConfig(cmd, target)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to load config: %v\n", err)
		return cli.Exit("", ExitFailure)
	}

	lintCommand := toolCommand(cfg.Tools.Yamllint, checker.DefaultLintCommand)
	securityCommand := toolCommand(cfg.Tools.Checkov, checker.DefaultSecurityCommand)

	toolchain := checker.Probe(lintCommand, securityCommand)

	// The linter is required: a run without it would silently under-report.
	// The security scanner is optional and is skipped when not installed.
	if cfg.Tools.Yamllint.Enabled && !toolchain.Lint {
		fmt.Fprintf(os.Stderr, "Error: required tool not found: %s\n", lintCommand[0])
		return cli.Exit("", ExitFailure)
	}
	if cfg.Tools.Checkov.Enabled && !toolchain.Security {
		logrus.WithField("command", securityCommand[0]).
			Warn("security scanner not found on PATH; skipping security checks")
	}

	result := runCheckers(ctx, cfg, toolchain, target, lintCommand, securityCommand)

	if err := writeReport(cmd, cfg, result); err != nil {
		return err
	}

	if code := verdictExitCode(result.Summary); code != ExitSuccess {
		return cli.Exit("", code)
	}
	return nil
}

// verdictExitCode derives the exit code from the summary: CRITICAL and HIGH
// findings gate the run, everything below is advisory.
func verdictExitCode(summary aggregate.Summary) int {
	if summary.CriticalOrHigh() > 0 {
		return ExitFailure
	}
	return ExitSuccess
}

// runCheckers executes the enabled checkers in fixed order (syntax, lint,
// security) and aggregates their findings.
func runCheckers(
	ctx stdcontext.Context, cfg *config.Config, toolchain checker.Toolchain,
	target string, lintCommand, securityCommand []string,
) aggregate.Result {
	syntaxIssues := checker.NewSyntaxChecker().Check(ctx, target)

	var lintIssues []issue.Issue
	if cfg.Tools.Yamllint.Enabled && toolchain.Lint {
		lintIssues = checker.NewLintChecker(lintCommand).Check(ctx, target)
	}

	var securityIssues []issue.Issue
	if cfg.Tools.Checkov.Enabled && toolchain.Security {
		securityIssues = checker.NewSecurityChecker(securityCommand).Check(ctx, target)
	}

	return aggregate.Aggregate(target, syntaxIssues, lintIssues, securityIssues)
}

// toolCommand returns the configured argv for a tool, falling back to the
// built-in default when the config leaves it empty.
func toolCommand(tc config.ToolConfig, fallback func() []string) []string {
	if len(tc.Command) > 0 {
		return tc.Command
	}
	return fallback()
}

// loadConfig loads configuration for the target file, honoring --config.
func loadConfig(cmd *cli.Command, targetPath string) (*config.Config, error) {
	if configPath := cmd.String("config"); configPath != "" {
		return config.LoadFromFile(configPath)
	}
	return config.Load(targetPath)
}

// outputConfig holds output configuration values.
type outputConfig struct {
	format     string
	path       string
	showSource bool
}

// getOutputConfig returns output configuration from CLI flags and config.
func getOutputConfig(cmd *cli.Command, cfg *config.Config) outputConfig {
	// Start with defaults
	oc := outputConfig{
		format:     "text",
		path:       "stdout",
		showSource: true,
	}

	if cfg != nil {
		if cfg.Output.Format != "" {
			oc.format = cfg.Output.Format
		}
		if cfg.Output.Path != "" {
			oc.path = cfg.Output.Path
		}
		oc.showSource = cfg.Output.ShowSource
	}

	// CLI flags take precedence
	if cmd.IsSet("format") {
		oc.format = cmd.String("format")
	}
	if cmd.IsSet("output") {
		oc.path = cmd.String("output")
	}
	if cmd.IsSet("show-source") {
		oc.showSource = cmd.Bool("show-source")
	}
	if cmd.IsSet("hide-source") && cmd.Bool("hide-source") {
		oc.showSource = false
	}

	return oc
}

// writeReport formats and writes the validation result.
func writeReport(cmd *cli.Command, cfg *config.Config, result aggregate.Result) error {
	oc := getOutputConfig(cmd, cfg)

	formatType, err := reporter.ParseFormat(oc.format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return cli.Exit("", ExitFailure)
	}

	writer, closeWriter, err := reporter.GetWriter(oc.path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return cli.Exit("", ExitFailure)
	}
	defer func() {
		if err := closeWriter(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to close output: %v\n", err)
		}
	}()

	opts := reporter.Options{
		Format:      formatType,
		Writer:      writer,
		ShowSource:  oc.showSource,
		ToolName:    "yamlvet",
		ToolVersion: version.Version(),
		ToolURI:     "https://github.com/yamlvet/yamlvet",
	}

	if cmd.IsSet("no-color") && cmd.Bool("no-color") {
		noColor := false
		opts.Color = &noColor
	}

	rep, err := reporter.New(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create reporter: %v\n", err)
		return cli.Exit("", ExitFailure)
	}

	// Source is only used for snippets; read failures already surfaced as
	// syntax issues, so a nil source here just disables snippets.
	source, err := os.ReadFile(result.FilePath)
	if err != nil {
		source = nil
	}

	if err := rep.Report(result, source); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to write output: %v\n", err)
		return cli.Exit("", ExitFailure)
	}

	return nil
}
