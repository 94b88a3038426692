package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ideastash/ideastash/pkg/mcp"
	"github.com/ideastash/ideastash/pkg/notify"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the ideastash MCP server (stdio)",
	Long: `Start a Model Context Protocol (MCP) server that exposes the folder, tag and
idea repositories as MCP tools via STDIO.

The --db flag is optional. If not provided, a system-specific default location will be used:
- Windows: %USERPROFILE%\AppData\Roaming\ideastash\ideastash.db
- macOS: ~/Library/Application Support/ideastash/ideastash.db
- Linux: ~/.local/share/ideastash/ideastash.db

Example:

  ideastash mcp --db ideastash.db

  # Or simply use the default location:
  ideastash mcp`,
	RunE: func(cmd *cobra.Command, args []string) error {
		srv, err := mcp.NewIdeastashMCPServer(dbPath)
		if err != nil {
			return err
		}
		defer srv.Close()

		db := srv.DB()
		s := srv.MCPRawServer()
		scheduler := notify.LogScheduler{Out: os.Stderr}

		mcp.RegisterPingTool(s)
		mcp.RegisterCreateFolderTool(s, db)
		mcp.RegisterListFoldersTool(s, db)
		mcp.RegisterCreateTagTool(s, db)
		mcp.RegisterListTagsTool(s, db)
		mcp.RegisterCreateIdeaTool(s, db, scheduler)
		mcp.RegisterRecentIdeasTool(s, db)
		mcp.RegisterGetIdeaTool(s, db)
		mcp.RegisterFolderIdeasTool(s, db)
		mcp.RegisterSaveContentTool(s, db)
		mcp.RegisterCancelNotificationTool(s, db, scheduler)

		// Log to stderr so we don't contaminate the JSON-RPC stream on stdout.
		fmt.Fprintf(os.Stderr, "Ideastash MCP server started. DB: %s\n", srv.DBPath)
		fmt.Fprintln(os.Stderr, "Available tools: ping, create_folder, list_folders, create_tag, list_tags, create_idea, recent_ideas, get_idea, folder_ideas, save_content, cancel_notification")
		fmt.Fprintln(os.Stderr, "Listening for MCP JSON-RPC on STDIN/STDOUT ... (Ctrl+C to quit)")

		return srv.Start()
	},
}
