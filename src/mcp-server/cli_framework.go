// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"errors"
	"fmt"
	"strings"
	"text/template"

	"github.com/H0llyW00dzZ/x509-trust-manager/src/internal/helper/posix"
	"github.com/H0llyW00dzZ/x509-trust-manager/src/mcp-server/templates"
	"github.com/spf13/cobra"
)

// errMissingExamples reports a CLI help template without an examples section.
var errMissingExamples = errors.New("CLI help template has invalid format - missing '## Examples' section")

// cliHelpData holds the data used to populate the CLI help template.
type cliHelpData struct {
	ExeName              string
	InstructionsFlagName string
	ConfigFlagName       string
	HelpFlagName         string
}

// CLIFramework wires the MCP server into a Cobra root command.
//
// Without arguments the command serves MCP over stdio; with --instructions it
// prints the workflows sent to clients and exits, similar to [gopls].
//
// [gopls]: https://tip.golang.org/gopls/features/mcp#instructions-to-the-model
type CLIFramework struct {
	configFile string
	version    string
	embed      templates.EmbedFS
}

// NewCLIFramework creates a CLI framework.
//
// Parameters:
//   - configFile: Default configuration file, overridable with --config
//   - version: Version reported by --version and to MCP clients
//   - embed: Filesystem holding cli_help.md and instructions.md; nil uses [templates.MagicEmbed]
func NewCLIFramework(configFile, version string, embed templates.EmbedFS) *CLIFramework {
	if embed == nil {
		embed = templates.MagicEmbed
	}
	return &CLIFramework{configFile: configFile, version: version, embed: embed}
}

// BuildRootCommand creates the root Cobra command.
//
// Returns:
//   - *cobra.Command: Root command starting the MCP server by default
//   - error: If the CLI help template cannot be rendered
func (cf *CLIFramework) BuildRootCommand() (*cobra.Command, error) {
	exeName := posix.GetExecutableName()

	rootCmd := &cobra.Command{
		Use:           exeName,
		Short:         "X.509 trust manager MCP server",
		Version:       cf.version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Registered early so the help text can name it.
	rootCmd.Flags().BoolP("help", "h", false, "help for "+exeName)

	var showInstructions bool
	rootCmd.PersistentFlags().BoolVar(&showInstructions, "instructions", false, "print the workflows sent to MCP clients")
	rootCmd.PersistentFlags().StringVar(&cf.configFile, "config", cf.configFile, "path to the trust manager configuration file")

	longDesc, examples, err := cf.renderHelp(cliHelpData{
		ExeName:              exeName,
		InstructionsFlagName: flagName(rootCmd, "instructions"),
		ConfigFlagName:       flagName(rootCmd, "config"),
		HelpFlagName:         flagName(rootCmd, "help"),
	})
	if err != nil {
		return nil, err
	}
	rootCmd.Long = longDesc
	rootCmd.Example = examples

	rootCmd.RunE = func(cmd *cobra.Command, _ []string) error {
		if showInstructions {
			instructions, err := loadInstructions(cf.embed, createTools())
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), instructions)
			return err
		}
		return Run(cmd.Context(), cf.version, cf.configFile)
	}

	return rootCmd, nil
}

// renderHelp executes cli_help.md and splits the result into the Long
// description and the Examples section.
func (cf *CLIFramework) renderHelp(data cliHelpData) (longDesc, examples string, err error) {
	templateBytes, err := cf.embed.ReadFile("cli_help.md")
	if err != nil {
		return "", "", fmt.Errorf("failed to load CLI help template: %w", err)
	}

	tmpl, err := template.New("cli_help").Parse(string(templateBytes))
	if err != nil {
		return "", "", fmt.Errorf("failed to parse CLI help template: %w", err)
	}

	var result strings.Builder
	if err := tmpl.Execute(&result, data); err != nil {
		return "", "", fmt.Errorf("failed to execute CLI help template: %w", err)
	}

	return splitExamples(result.String())
}

// splitExamples splits rendered help text at the "## Examples" line.
func splitExamples(text string) (longDesc, examples string, err error) {
	const marker = "## Examples"

	idx := strings.Index(text, marker)
	if idx == -1 {
		return "", "", errMissingExamples
	}

	lineStart := strings.LastIndex(text[:idx], "\n") + 1
	lineEnd := strings.Index(text[idx:], "\n")
	if lineEnd == -1 {
		lineEnd = len(text)
	} else {
		lineEnd += idx
	}

	return strings.TrimSpace(text[:lineStart]), strings.TrimSpace(text[lineEnd:]), nil
}

// flagName returns the "--" form of a persistent or local flag of cmd.
func flagName(cmd *cobra.Command, name string) string {
	if f := cmd.PersistentFlags().Lookup(name); f != nil {
		return "--" + f.Name
	}
	if f := cmd.Flags().Lookup(name); f != nil {
		return "--" + f.Name
	}
	return "--" + name
}
