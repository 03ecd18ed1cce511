// Package tag provides the tag extension for shortkey.
// It registers commands: tag (with subcommands ls, color) and the MCP tools
// shortkey_tags and shortkey_tag_color.
package tag

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jpl-au/shortkey/cmd"
	"github.com/jpl-au/shortkey/extension"
	"github.com/jpl-au/shortkey/internal/format"
	"github.com/jpl-au/shortkey/internal/log"
	"github.com/jpl-au/shortkey/internal/service"
	"github.com/jpl-au/shortkey/internal/settings"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/spf13/cobra"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the tag extension.
type Extension struct {
	svc *service.Service
}

// Compile-time interface compliance.
var (
	_ extension.Extension     = (*Extension)(nil)
	_ extension.Initializable = (*Extension)(nil)
)

// Name returns "tag" - this extension provides tag listing and colours.
func (e *Extension) Name() string { return "tag" }

// Init receives the shared service from the extension context.
func (e *Extension) Init(ctx extension.Context) error {
	e.svc = ctx.Service()
	return nil
}

// Commands returns the tag command with its subcommands (ls, color).
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{
		e.newTagCmd(),
	}
}

// MCPTools returns the tag tools. They reach the service through the
// context the MCP server hands them, since the server opens its own.
func (e *Extension) MCPTools() []extension.MCPTool {
	return []extension.MCPTool{
		{
			Tool: mcp.NewTool("shortkey_tags",
				mcp.WithDescription("List every tag in use with its colour and the number of shortcuts carrying it."),
			),
			Handler: listTagsTool,
		},
		{
			Tool: mcp.NewTool("shortkey_tag_color",
				mcp.WithDescription("Set the display colour of a tag. An empty colour restores the default palette colour."),
				mcp.WithString("tag", mcp.Required(), mcp.Description("Tag name")),
				mcp.WithString("color", mcp.Description("Colour as #rrggbb; empty to reset")),
			),
			Handler: setColorTool,
		},
	}
}

func listTagsTool(_ context.Context, extCtx extension.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tags := extCtx.Service().Tags()
	if tags == nil {
		tags = []settings.Tag{}
	}

	log.Event("mcp:shortkey_tags", "list").Detail("count", len(tags)).Write(nil)

	data, err := json.MarshalIndent(tags, "", "  ")
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(string(data)), nil
}

func setColorTool(ctx context.Context, extCtx extension.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	t, err := req.RequireString("tag")
	if err != nil {
		return mcp.NewToolResultError("tag is required"), nil //nolint:nilerr
	}
	color := req.GetString("color", "")

	err = extCtx.Service().SetTagColor(ctx, t, color)

	log.Event("mcp:shortkey_tag_color", "write").Detail("tag", t).Detail("color", color).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil //nolint:nilerr
	}
	return mcp.NewToolResultText(fmt.Sprintf("%s = %s", t, colorLabel(color))), nil
}

func colorLabel(color string) string {
	if color == "" {
		return "default"
	}
	return color
}

// --- tag command with subcommands ---

func (e *Extension) newTagCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "tag",
		Short: "List tags and set their colours",
		Long: `Tags are set on shortcuts with "shortkey add/edit --tag". This command
lists them and manages their display colour in the popup filter.`,
	}
	c.AddCommand(e.newTagLsCmd())
	c.AddCommand(e.newTagColorCmd())
	return c
}

func (e *Extension) newTagLsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ls",
		Short: "List tags with colour and count",
		Args:  cobra.NoArgs,
		RunE:  e.runTagLs,
	}
}

func (e *Extension) newTagColorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "color <tag> [#rrggbb]",
		Short: "Set a tag colour (omit the colour to reset)",
		Args:  cobra.RangeArgs(1, 2),
		RunE:  e.runTagColor,
	}
}

func (e *Extension) runTagLs(_ *cobra.Command, _ []string) error {
	tags := e.svc.Tags()

	log.Event("tag:ls", "list").Detail("count", len(tags)).Write(nil)

	if cmd.JSON() {
		if tags == nil {
			tags = []settings.Tag{}
		}
		return cmd.PrintJSON(tags)
	}
	return format.Tags(cmd.Out(), tags)
}

func (e *Extension) runTagColor(c *cobra.Command, args []string) error {
	t, color := args[0], ""
	if len(args) > 1 {
		color = args[1]
	}

	err := e.svc.SetTagColor(c.Context(), t, color)

	log.Event("tag:color", "write").Detail("tag", t).Detail("color", color).Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("tag color %q: %w", t, err))
	}
	if cmd.JSON() {
		return cmd.PrintJSON(map[string]string{"tag": t, "color": color})
	}
	fmt.Fprintf(cmd.Out(), "%s = %s\n", t, colorLabel(color))
	return nil
}
