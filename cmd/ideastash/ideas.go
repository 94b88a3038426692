package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/ideastash/ideastash/pkg/ideas"
	"github.com/ideastash/ideastash/pkg/notify"
	"github.com/ideastash/ideastash/pkg/preview"
)

// previewTimeout bounds the best-effort link metadata fetch; on expiry the
// idea is created without pre-filled fields.
const previewTimeout = 5 * time.Second

var ideasCmd = &cobra.Command{
	Use:   "ideas",
	Short: "Manage ideas",
	Long:  `Provides commands for creating ideas, listing recent or per-folder ideas, fetching one idea, and saving its content body.`,
}

var ideaCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new idea in a folder",
	Long: `Creates a new idea with the given title, optional description, link, image and tags,
optionally scheduling a reminder. The idea, its tag links and the reminder are
created as one transaction: either all of them exist afterwards or none do.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		title, _ := cmd.Flags().GetString("title")
		description, _ := cmd.Flags().GetString("description")
		link, _ := cmd.Flags().GetString("link")
		image, _ := cmd.Flags().GetString("image")
		folderIDStr, _ := cmd.Flags().GetString("folder-id")
		tagsStr, _ := cmd.Flags().GetString("tags")
		remindAtStr, _ := cmd.Flags().GetString("remind-at")
		recurrenceStr, _ := cmd.Flags().GetString("recurrence")
		withPreview, _ := cmd.Flags().GetBool("preview")

		folderID, err := uuid.Parse(folderIDStr)
		if err != nil {
			return fmt.Errorf("invalid folder-id format: %w", err)
		}

		in := ideas.NewIdea{
			Title:       title,
			Description: description,
			Link:        link,
			Image:       image,
			FolderID:    folderID,
		}

		if tagsStr != "" {
			for _, raw := range strings.Split(tagsStr, ",") {
				raw = strings.TrimSpace(raw)
				if raw == "" {
					continue
				}
				tagID, err := uuid.Parse(raw)
				if err != nil {
					return fmt.Errorf("invalid tag ID '%s': %w", raw, err)
				}
				in.TagIDs = append(in.TagIDs, tagID)
			}
		}

		if remindAtStr != "" {
			remindAt, err := time.Parse(time.RFC3339, remindAtStr)
			if err != nil {
				return fmt.Errorf("invalid remind-at format (expected RFC 3339): %w", err)
			}
			recurrence, err := notify.ParseRecurrence(recurrenceStr)
			if err != nil {
				return err
			}
			in.Reminder = &ideas.ReminderRequest{At: remindAt, Recurrence: recurrence}
		}

		// Best-effort pre-fill from the link: failures only skip the
		// pre-fill, never block creation.
		if withPreview && in.Link != "" {
			ctx, cancel := context.WithTimeout(context.Background(), previewTimeout)
			p, err := preview.Fetch(ctx, http.DefaultClient, in.Link)
			cancel()
			if err != nil {
				fmt.Fprintf(os.Stderr, "Link preview unavailable: %v\n", err)
			} else {
				if in.Description == "" {
					in.Description = p.Description
				}
				if in.Image == "" {
					in.Image = p.Image
				}
			}
		}

		dbConn, err := openDB()
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer dbConn.Close()

		idea, err := ideas.CreateIdea(context.Background(), dbConn, reminderScheduler(), in)
		if err != nil {
			return fmt.Errorf("failed to create idea: %w", err)
		}

		fmt.Println("Idea created successfully:")
		return printJSON(idea)
	},
}

var ideaRecentCmd = &cobra.Command{
	Use:   "recent",
	Short: "List ideas created within the last 7 days",
	Long:  `Lists ideas whose creation time falls within the last 7 days (inclusive), each with its tags, ordered by creation time.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dbConn, err := openDB()
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer dbConn.Close()

		recent, err := ideas.FetchRecentIdeas(context.Background(), dbConn)
		if err != nil {
			return fmt.Errorf("failed to fetch recent ideas: %w", err)
		}

		if len(recent) == 0 {
			fmt.Println("No recent ideas found.")
			return nil
		}

		fmt.Println("Recent ideas:")
		return printJSON(recent)
	},
}

var ideaGetCmd = &cobra.Command{
	Use:   "get [id]",
	Short: "Get a specific idea by its ID",
	Long:  `Retrieves and displays one idea, including its tags, using its UUID.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ideaID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid idea ID format: %w", err)
		}

		dbConn, err := openDB()
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer dbConn.Close()

		idea, err := ideas.FetchIdeaByID(context.Background(), dbConn, ideaID)
		if err != nil {
			return fmt.Errorf("failed to get idea: %w", err)
		}

		if idea == nil {
			fmt.Printf("Idea with ID %s not found.\n", args[0])
			return nil
		}

		return printJSON(idea)
	},
}

var ideaFolderCmd = &cobra.Command{
	Use:   "in-folder [folder-id]",
	Short: "List all ideas in a folder",
	Long:  `Lists every idea belonging to the given folder, each with its tags, ordered by creation time.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		folderID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid folder ID format: %w", err)
		}

		dbConn, err := openDB()
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer dbConn.Close()

		inFolder, err := ideas.ListIdeasByFolder(context.Background(), dbConn, folderID)
		if err != nil {
			return fmt.Errorf("failed to list ideas in folder: %w", err)
		}

		if len(inFolder) == 0 {
			fmt.Println("No ideas found in this folder.")
			return nil
		}

		return printJSON(inFolder)
	},
}

var ideaSaveContentCmd = &cobra.Command{
	Use:   "save-content [id]",
	Short: "Replace the rich-text body of an idea",
	Long:  `Replaces the serialized content body of an idea. Reads the new content from --content, or from stdin when --content is not set.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ideaID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid idea ID format: %w", err)
		}

		content, _ := cmd.Flags().GetString("content")
		if !cmd.Flags().Changed("content") {
			data, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("failed to read content from stdin: %w", err)
			}
			content = string(data)
		}

		dbConn, err := openDB()
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer dbConn.Close()

		err = ideas.SaveContent(context.Background(), dbConn, ideaID, content)
		if err != nil {
			if err == ideas.ErrIdeaNotFound {
				fmt.Printf("Idea with ID %s not found.\n", args[0])
				return nil
			}
			return fmt.Errorf("failed to save content: %w", err)
		}

		fmt.Printf("Content saved for idea %s.\n", args[0])
		return nil
	},
}

var notificationCancelCmd = &cobra.Command{
	Use:   "cancel-reminder [notification-id]",
	Short: "Cancel a scheduled reminder",
	Long:  `Cancels the scheduled trigger behind a reminder notification and marks it inactive.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		notificationID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid notification ID format: %w", err)
		}

		dbConn, err := openDB()
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer dbConn.Close()

		err = ideas.CancelNotification(context.Background(), dbConn, reminderScheduler(), notificationID)
		if err != nil {
			if err == ideas.ErrNotificationNotFound {
				fmt.Printf("Notification with ID %s not found.\n", args[0])
				return nil
			}
			return fmt.Errorf("failed to cancel reminder: %w", err)
		}

		fmt.Printf("Reminder %s cancelled.\n", args[0])
		return nil
	},
}

// reminderScheduler returns the Scheduler the CLI wires into the idea
// repository. The log scheduler stands in for a platform notifier.
func reminderScheduler() notify.Scheduler {
	return notify.LogScheduler{Out: os.Stderr}
}

func initIdeasCmd() {
	ideaCreateCmd.Flags().StringP("title", "t", "", "Title of the idea (required, 1-200 characters)")
	ideaCreateCmd.MarkFlagRequired("title")
	ideaCreateCmd.Flags().StringP("folder-id", "f", "", "ID of the folder the idea belongs to (required)")
	ideaCreateCmd.MarkFlagRequired("folder-id")
	ideaCreateCmd.Flags().StringP("description", "d", "", "Description of the idea (at most 1000 characters)")
	ideaCreateCmd.Flags().StringP("link", "l", "", "URL associated with the idea")
	ideaCreateCmd.Flags().String("image", "", "Image URI for the idea")
	ideaCreateCmd.Flags().String("tags", "", "Comma-separated list of tag IDs to link to the idea")
	ideaCreateCmd.Flags().String("remind-at", "", "Reminder time in RFC 3339 format (e.g., 2025-01-02T15:04:05Z)")
	ideaCreateCmd.Flags().String("recurrence", "none", "Reminder recurrence: none, daily, weekly, monthly or yearly")
	ideaCreateCmd.Flags().Bool("preview", false, "Pre-fill empty description/image from link metadata (best effort)")

	ideaSaveContentCmd.Flags().StringP("content", "c", "", "New serialized body for the idea (reads stdin when omitted)")

	ideasCmd.AddCommand(ideaCreateCmd, ideaRecentCmd, ideaGetCmd, ideaFolderCmd, ideaSaveContentCmd, notificationCancelCmd)
}
