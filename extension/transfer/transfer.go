// Package transfer provides the export and import commands.
// Registers commands: export, import.
//
// Design: Import is all-or-nothing. The file is decoded and every record
// validated before anything is written, so a bad file leaves the store
// untouched.
package transfer

import (
	"fmt"
	"io"
	"os"

	"github.com/jpl-au/shortkey/cmd"
	"github.com/jpl-au/shortkey/extension"
	"github.com/jpl-au/shortkey/internal/log"
	"github.com/jpl-au/shortkey/internal/service"
	"github.com/jpl-au/shortkey/internal/transfer"
	"github.com/spf13/cobra"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the transfer extension.
type Extension struct {
	svc *service.Service
}

// Compile-time interface compliance.
var (
	_ extension.Extension     = (*Extension)(nil)
	_ extension.Initializable = (*Extension)(nil)
)

// Name returns "transfer".
func (e *Extension) Name() string { return "transfer" }

// Init receives the shared service from the extension context.
func (e *Extension) Init(ctx extension.Context) error {
	e.svc = ctx.Service()
	return nil
}

// Commands returns export and import.
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{
		e.newExportCmd(),
		e.newImportCmd(),
	}
}

// MCPTools returns nil - shortkey_export and shortkey_import are in internal/mcp.
func (e *Extension) MCPTools() []extension.MCPTool {
	return nil
}

func formatFlag(c *cobra.Command) {
	c.Flags().StringP(extension.FlagFormat, "f", "", "File format: json or yaml (default: from extension, else json)")
	_ = c.RegisterFlagCompletionFunc(extension.FlagFormat, func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{string(transfer.FormatJSON), string(transfer.FormatYAML)}, cobra.ShellCompDirectiveNoFileComp
	})
}

// resolveFormat uses the flag when set, then the file extension.
func resolveFormat(c *cobra.Command, path string) (transfer.Format, error) {
	if c.Flags().Changed(extension.FlagFormat) {
		s, _ := c.Flags().GetString(extension.FlagFormat)
		return transfer.ParseFormat(s)
	}
	return transfer.FormatFor(path), nil
}

func (e *Extension) newExportCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "export [file]",
		Short: "Export shortcuts as JSON or YAML",
		Long: `Write every shortcut to file, or stdout when no file is given.

  shortkey export > shortcuts.json
  shortkey export backup.yaml`,
		Args: cobra.MaximumNArgs(1),
		RunE: e.runExport,
	}
	formatFlag(c)
	return c
}

func (e *Extension) runExport(c *cobra.Command, args []string) error {
	path := ""
	if len(args) > 0 {
		path = args[0]
	}
	f, err := resolveFormat(c, path)
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("export: %w", err))
	}

	var w io.Writer = cmd.Out()
	var file *os.File
	if path != "" {
		file, err = os.Create(path)
		if err != nil {
			return cmd.PrintJSONError(fmt.Errorf("export: %w", err))
		}
		w = file
	}

	err = e.svc.Export(w, f)
	if file != nil {
		if cerr := file.Close(); err == nil {
			err = cerr
		}
	}

	log.Event("transfer:export", "export").Detail("file", path).Detail("format", string(f)).Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("export: %w", err))
	}
	if path != "" {
		if cmd.JSON() {
			return cmd.PrintJSON(map[string]any{"file": path, "format": f})
		}
		fmt.Fprintf(cmd.Out(), "Exported to %s\n", path)
	}
	return nil
}

func (e *Extension) newImportCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "import [file]",
		Short: "Import shortcuts from JSON or YAML",
		Long: `Append the shortcuts in file (or stdin) to the store. Ids that already
exist are replaced with fresh ones. If any shortcut is invalid nothing is
imported.

  shortkey import backup.yaml
  shortkey import --dry-run backup.yaml    # show the change as a diff
  cat shortcuts.json | shortkey import`,
		Args: cobra.MaximumNArgs(1),
		RunE: e.runImport,
	}
	formatFlag(c)
	c.Flags().BoolP(extension.FlagDryRun, "n", false, "Show the change without saving")
	return c
}

func (e *Extension) runImport(c *cobra.Command, args []string) error {
	path := ""
	if len(args) > 0 {
		path = args[0]
	}
	f, err := resolveFormat(c, path)
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("import: %w", err))
	}
	dryRun, _ := c.Flags().GetBool(extension.FlagDryRun)

	var r io.Reader = c.InOrStdin()
	if path != "" {
		file, err := os.Open(path)
		if err != nil {
			return cmd.PrintJSONError(fmt.Errorf("import: %w", err))
		}
		defer file.Close()
		r = file
	}

	var w io.Writer = cmd.Out()
	if cmd.JSON() {
		w = io.Discard
	}
	opts := transfer.Options{Format: f, DryRun: dryRun, Colour: cmd.Terminal()}

	result, err := e.svc.Import(c.Context(), w, r, opts)

	log.Event("transfer:import", "import").
		Detail("file", path).
		Detail("count", result.Imported).
		Detail("dry_run", dryRun).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("import: %w", err))
	}
	if cmd.JSON() {
		return cmd.PrintJSON(map[string]any{
			"imported": result.Imported,
			"keys":     result.Keys,
			"dry_run":  dryRun,
			"diff":     result.Diff.Diff,
		})
	}
	if !dryRun {
		fmt.Fprintf(cmd.Out(), "Imported %d shortcuts\n", result.Imported)
	}
	return nil
}
