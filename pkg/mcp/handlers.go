package mcp

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/ideastash/ideastash/pkg/ideas"
	"github.com/ideastash/ideastash/pkg/notify"
)

// RegisterPingTool registers the simple ping tool.
func RegisterPingTool(s *server.MCPServer) {
	pingTool := mcp.NewTool("ping",
		mcp.WithDescription("Responds with 'pong' to check if the Ideastash MCP server is alive."),
	)
	s.AddTool(pingTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return mcp.NewToolResultText("pong_ideastash"), nil
	})
}

// RegisterCreateFolderTool registers the create_folder tool.
func RegisterCreateFolderTool(s *server.MCPServer, db *sql.DB) {
	createFolder := mcp.NewTool("create_folder",
		mcp.WithDescription("Creates a new folder for grouping ideas. Folder names are unique."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Name for the new folder.")),
	)
	s.AddTool(createFolder, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		name, nameOk := request.Params.Arguments["name"].(string)
		if !nameOk || name == "" {
			return mcp.NewToolResultError("'name' parameter is required and must be a non-empty string."), nil
		}

		folder, err := ideas.CreateFolder(ctx, db, name)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to create folder: %v", err)), nil
		}

		return jsonResult(folder)
	})
}

// RegisterListFoldersTool registers the list_folders tool.
func RegisterListFoldersTool(s *server.MCPServer, db *sql.DB) {
	listFolders := mcp.NewTool("list_folders",
		mcp.WithDescription("Lists all folders as (id, name) pairs."),
	)
	s.AddTool(listFolders, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		folders, err := ideas.ListFolders(ctx, db)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to list folders: %v", err)), nil
		}
		if len(folders) == 0 {
			return mcp.NewToolResultText("[]"), nil
		}
		return jsonResult(folders)
	})
}

// RegisterCreateTagTool registers the create_tag tool.
func RegisterCreateTagTool(s *server.MCPServer, db *sql.DB) {
	createTag := mcp.NewTool("create_tag",
		mcp.WithDescription("Creates a new tag. Tag names are not unique."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Name for the new tag.")),
	)
	s.AddTool(createTag, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		name, nameOk := request.Params.Arguments["name"].(string)
		if !nameOk || name == "" {
			return mcp.NewToolResultError("'name' parameter is required and must be a non-empty string."), nil
		}

		tag, err := ideas.CreateTag(ctx, db, name)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to create tag: %v", err)), nil
		}

		return jsonResult(tag)
	})
}

// RegisterListTagsTool registers the list_tags tool.
func RegisterListTagsTool(s *server.MCPServer, db *sql.DB) {
	listTags := mcp.NewTool("list_tags",
		mcp.WithDescription("Lists all tags as (id, name) pairs."),
	)
	s.AddTool(listTags, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		tags, err := ideas.ListTags(ctx, db)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to list tags: %v", err)), nil
		}
		if len(tags) == 0 {
			return mcp.NewToolResultText("[]"), nil
		}
		return jsonResult(tags)
	})
}

// RegisterCreateIdeaTool registers the create_idea tool.
func RegisterCreateIdeaTool(s *server.MCPServer, db *sql.DB, scheduler notify.Scheduler) {
	createIdea := mcp.NewTool("create_idea",
		mcp.WithDescription("Creates a new idea in a folder, optionally linking tags and scheduling a reminder. The idea, its tag links and the reminder are created atomically."),
		mcp.WithString("title", mcp.Required(), mcp.Description("Title of the idea (1-200 characters).")),
		mcp.WithString("folder_id", mcp.Required(), mcp.Description("ID of the folder the idea belongs to.")),
		mcp.WithString("description", mcp.Description("Optional description (at most 1000 characters).")),
		mcp.WithString("link", mcp.Description("Optional URL associated with the idea.")),
		mcp.WithString("image", mcp.Description("Optional image URI.")),
		mcp.WithString("tags", mcp.Description("Optional comma-separated list of tag IDs to link.")),
		mcp.WithString("remind_at", mcp.Description("Optional reminder time, RFC 3339.")),
		mcp.WithString("recurrence", mcp.Description("Reminder recurrence: none, daily, weekly, monthly or yearly. Defaults to none.")),
	)
	s.AddTool(createIdea, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		title, titleOk := request.Params.Arguments["title"].(string)
		if !titleOk || title == "" {
			return mcp.NewToolResultError("'title' parameter is required and must be a non-empty string."), nil
		}

		folderIDStr, folderOk := request.Params.Arguments["folder_id"].(string)
		if !folderOk || folderIDStr == "" {
			return mcp.NewToolResultError("'folder_id' parameter is required and must be a non-empty string."), nil
		}
		folderID, err := uuid.Parse(folderIDStr)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Invalid 'folder_id': %v", err)), nil
		}

		in := ideas.NewIdea{
			Title:    title,
			FolderID: folderID,
		}
		if description, ok := request.Params.Arguments["description"].(string); ok {
			in.Description = description
		}
		if link, ok := request.Params.Arguments["link"].(string); ok {
			in.Link = link
		}
		if image, ok := request.Params.Arguments["image"].(string); ok {
			in.Image = image
		}

		if tagsStr, ok := request.Params.Arguments["tags"].(string); ok && tagsStr != "" {
			for _, raw := range strings.Split(tagsStr, ",") {
				raw = strings.TrimSpace(raw)
				if raw == "" {
					continue
				}
				tagID, err := uuid.Parse(raw)
				if err != nil {
					return mcp.NewToolResultError(fmt.Sprintf("Invalid tag ID '%s': %v", raw, err)), nil
				}
				in.TagIDs = append(in.TagIDs, tagID)
			}
		}

		if remindAtStr, ok := request.Params.Arguments["remind_at"].(string); ok && remindAtStr != "" {
			remindAt, err := time.Parse(time.RFC3339, remindAtStr)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Invalid 'remind_at': %v", err)), nil
			}

			recurrenceStr, _ := request.Params.Arguments["recurrence"].(string)
			recurrence, err := notify.ParseRecurrence(recurrenceStr)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Invalid 'recurrence': %v", err)), nil
			}

			in.Reminder = &ideas.ReminderRequest{At: remindAt, Recurrence: recurrence}
		}

		idea, err := ideas.CreateIdea(ctx, db, scheduler, in)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to create idea: %v", err)), nil
		}

		return jsonResult(idea)
	})
}

// RegisterRecentIdeasTool registers the recent_ideas tool.
func RegisterRecentIdeasTool(s *server.MCPServer, db *sql.DB) {
	recentIdeas := mcp.NewTool("recent_ideas",
		mcp.WithDescription("Lists ideas created within the last 7 days, each with its tags."),
	)
	s.AddTool(recentIdeas, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		recent, err := ideas.FetchRecentIdeas(ctx, db)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to fetch recent ideas: %v", err)), nil
		}
		return jsonResult(recent)
	})
}

// RegisterGetIdeaTool registers the get_idea tool.
func RegisterGetIdeaTool(s *server.MCPServer, db *sql.DB) {
	getIdea := mcp.NewTool("get_idea",
		mcp.WithDescription("Retrieves one idea by ID, with its tags."),
		mcp.WithString("id", mcp.Required(), mcp.Description("ID of the idea to retrieve.")),
	)
	s.AddTool(getIdea, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		idStr, idOk := request.Params.Arguments["id"].(string)
		if !idOk || idStr == "" {
			return mcp.NewToolResultError("'id' parameter is required and must be a non-empty string."), nil
		}
		id, err := uuid.Parse(idStr)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Invalid 'id': %v", err)), nil
		}

		idea, err := ideas.FetchIdeaByID(ctx, db, id)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to fetch idea: %v", err)), nil
		}
		if idea == nil {
			return mcp.NewToolResultError(fmt.Sprintf("Idea with ID '%s' not found.", idStr)), nil
		}

		return jsonResult(idea)
	})
}

// RegisterFolderIdeasTool registers the folder_ideas tool.
func RegisterFolderIdeasTool(s *server.MCPServer, db *sql.DB) {
	folderIdeas := mcp.NewTool("folder_ideas",
		mcp.WithDescription("Lists all ideas in a folder, each with its tags."),
		mcp.WithString("folder_id", mcp.Required(), mcp.Description("ID of the folder.")),
	)
	s.AddTool(folderIdeas, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		folderIDStr, folderOk := request.Params.Arguments["folder_id"].(string)
		if !folderOk || folderIDStr == "" {
			return mcp.NewToolResultError("'folder_id' parameter is required and must be a non-empty string."), nil
		}
		folderID, err := uuid.Parse(folderIDStr)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Invalid 'folder_id': %v", err)), nil
		}

		inFolder, err := ideas.ListIdeasByFolder(ctx, db, folderID)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to list folder ideas: %v", err)), nil
		}
		return jsonResult(inFolder)
	})
}

// RegisterSaveContentTool registers the save_content tool.
func RegisterSaveContentTool(s *server.MCPServer, db *sql.DB) {
	saveContent := mcp.NewTool("save_content",
		mcp.WithDescription("Replaces the rich-text body of an idea. Last writer wins."),
		mcp.WithString("id", mcp.Required(), mcp.Description("ID of the idea to update.")),
		mcp.WithString("content", mcp.Required(), mcp.Description("New serialized body for the idea.")),
	)
	s.AddTool(saveContent, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		idStr, idOk := request.Params.Arguments["id"].(string)
		if !idOk || idStr == "" {
			return mcp.NewToolResultError("'id' parameter is required and must be a non-empty string."), nil
		}
		id, err := uuid.Parse(idStr)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Invalid 'id': %v", err)), nil
		}

		content, contentOk := request.Params.Arguments["content"].(string)
		if !contentOk {
			return mcp.NewToolResultError("'content' parameter is required."), nil
		}

		if err := ideas.SaveContent(ctx, db, id, content); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to save content: %v", err)), nil
		}

		idea, err := ideas.FetchIdeaByID(ctx, db, id)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to fetch updated idea: %v", err)), nil
		}
		return jsonResult(idea)
	})
}

// RegisterCancelNotificationTool registers the cancel_notification tool.
func RegisterCancelNotificationTool(s *server.MCPServer, db *sql.DB, scheduler notify.Scheduler) {
	cancelNotification := mcp.NewTool("cancel_notification",
		mcp.WithDescription("Cancels the scheduled trigger behind a reminder and marks it inactive."),
		mcp.WithString("id", mcp.Required(), mcp.Description("ID of the notification to cancel.")),
	)
	s.AddTool(cancelNotification, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		idStr, idOk := request.Params.Arguments["id"].(string)
		if !idOk || idStr == "" {
			return mcp.NewToolResultError("'id' parameter is required and must be a non-empty string."), nil
		}
		id, err := uuid.Parse(idStr)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Invalid 'id': %v", err)), nil
		}

		if err := ideas.CancelNotification(ctx, db, scheduler, id); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to cancel notification: %v", err)), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("Notification %s cancelled.", idStr)), nil
	})
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	out, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to serialize result to JSON: %v", err)), nil
	}
	return mcp.NewToolResultText(string(out)), nil
}
