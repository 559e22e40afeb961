package cmd

import (
	"context"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/yamlvet/yamlvet/internal/version"
)

// NewApp creates the CLI application
func NewApp() *cli.Command {
	return &cli.Command{
		Name:    "yamlvet",
		Usage:   "A validator for YAML files",
		Version: version.Version(),
		Description: `yamlvet checks a YAML file for syntax errors, style problems,
and security misconfigurations, and reports everything in one place.

It combines three checks in a single run: YAML parsing, yamllint,
and checkov (when installed).

Examples:
  yamlvet check config.yaml
  yamlvet check --format json deploy.yml
  yamlvet check --output report.sarif --format sarif values.yaml`,
		Commands: []*cli.Command{
			checkCommand(),
			versionCommand(),
		},
	}
}

// Execute runs the CLI application
func Execute() error {
	return NewApp().Run(context.Background(), os.Args)
}
