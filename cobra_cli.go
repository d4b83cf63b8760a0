package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/agentflare-ai/refmd/internal/version"
	"github.com/spf13/cobra"
	cobradoc "github.com/spf13/cobra/doc"
)

const rootLongDesc = `
refmd generates API reference documents from Go packages or from a descriptor file
written by an external introspection tool.

Every module argument becomes one document under the build directory. Append + to a
module to include one more level of members (pkg+ adds the package members, pkg++ also
their methods) and separate several modules with commas to merge them into one document.

Docstrings may use "# Parameters", "# Returns" and similar headings, Sphinx style
:param x: fields, and #Name references, which are turned into Markdown before a
hybrid Markdown/HTML document with a table of contents is written.

Settings are read from refmd.yml when present and can be overridden with flags.
`

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	app := &cliApp{stdout: stdout, stderr: stderr}
	cmd := &cobra.Command{
		Use:           "refmd [flags] [module[+...][,module...]]...",
		Short:         "Render API reference documentation as Markdown",
		Long:          strings.TrimSpace(rootLongDesc),
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.DisableAutoGenTag = true
	cmd.Version = version.Version
	cmd.SetVersionTemplate(fmt.Sprintf("refmd %s\n", version.String()))
	cmd.SetOut(stdout)
	cmd.SetErr(io.Discard)
	cmd.CompletionOptions.DisableDefaultCmd = true

	flags := cmd.Flags()
	flags.StringVar(&app.opts.configPath, "config", "", "configuration file (default refmd.yml when present)")
	flags.StringVar(&app.opts.builddir, "builddir", "", "override the build directory")
	flags.StringVar(&app.opts.sorting, "sorting", "", `member order, "name" or "line"`)
	flags.StringVar(&app.opts.filter, "filter", "", "comma separated filter tags; a leading - removes a tag")
	flags.BoolVar(&app.opts.plain, "plain", false, "write a single document to stdout or -o")
	flags.StringVarP(&app.opts.outputPath, "output", "o", "", "output file for --plain")
	flags.StringVar(&app.opts.format, "format", "", `output format, "markdown" or "html"`)
	flags.StringVar(&app.opts.descriptors, "descriptors", "", "load descriptors from a YAML or JSON file instead of Go packages")
	flags.BoolVar(&app.opts.noTOC, "no-toc", false, "do not render a table of contents")
	flags.IntVar(&app.opts.tocDepth, "toc-depth", 0, "deepest section level listed in the table of contents")
	flags.BoolVar(&app.opts.noReorganize, "no-reorganize", false, "keep package members in source order instead of grouping them")
	flags.BoolVarP(&app.opts.unexported, "unexported", "u", false, "include unexported Go declarations")
	flags.BoolVarP(&app.opts.verbose, "verbose", "v", false, "log debug output to stderr")
	app.changed = func(name string) bool { return flags.Changed(name) }

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		return app.execute(ctx, args)
	}

	cmd.AddCommand(newCompletionCmd(cmd))
	cmd.AddCommand(newDocsCmd(cmd))
	return cmd
}

func newCompletionCmd(root *cobra.Command) *cobra.Command {
	const (
		longDesc = `Generate shell completion scripts for refmd.

The output should be evaluated by your shell. For example:

  # bash
  refmd completion bash > /usr/local/etc/bash_completion.d/refmd

  # zsh
  refmd completion zsh > "${fpath[1]}/_refmd"

  # fish
  refmd completion fish | source

  # PowerShell
  refmd completion powershell | Out-String | Invoke-Expression
`
	)
	cmd := &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 "Generate shell completion scripts",
		Long:                  longDesc,
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		SilenceUsage:          true,
		SilenceErrors:         true,
		DisableFlagsInUseLine: true,
	}
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "bash":
			return root.GenBashCompletion(cmd.OutOrStdout())
		case "zsh":
			return root.GenZshCompletion(cmd.OutOrStdout())
		case "fish":
			return root.GenFishCompletion(cmd.OutOrStdout(), true)
		case "powershell":
			return root.GenPowerShellCompletion(cmd.OutOrStdout())
		default:
			return fmt.Errorf("unsupported shell %q", args[0])
		}
	}
	return cmd
}

func newDocsCmd(root *cobra.Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gen-docs [directory]",
		Short: "Write the refmd command reference as Markdown",
		Long: strings.TrimSpace(`
Write one Markdown page per refmd command into directory, which defaults to
docs/cli. Every page starts with a title heading so the pages can be dropped
next to the API reference refmd generates.

Example:

  refmd gen-docs ./docs/cli
`),
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		target := filepath.Join("docs", "cli")
		if len(args) == 1 {
			target = args[0]
		}
		if target == "" {
			return fmt.Errorf("target directory is required")
		}
		if err := os.MkdirAll(target, 0o755); err != nil {
			return err
		}
		title := func(filename string) string {
			name := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
			return "# " + strings.ReplaceAll(name, "_", " ") + "\n\n"
		}
		link := func(name string) string { return name }
		return cobradoc.GenMarkdownTreeCustom(root, target, title, link)
	}
	return cmd
}
