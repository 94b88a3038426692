package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ideastash/ideastash/pkg/ideas"
)

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "Manage tags",
	Long:  `Provides commands for creating and listing tags.`,
}

var tagCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new tag",
	Long:  `Creates a new tag with the given name. Tag names are not unique.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		if name == "" {
			return fmt.Errorf("tag name cannot be empty")
		}

		dbConn, err := openDB()
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer dbConn.Close()

		tag, err := ideas.CreateTag(context.Background(), dbConn, name)
		if err != nil {
			return fmt.Errorf("failed to create tag: %w", err)
		}

		fmt.Println("Tag created successfully:")
		return printJSON(tag)
	},
}

var tagListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all tags",
	Long:  `Lists the id and name of every tag currently stored in the database.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dbConn, err := openDB()
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer dbConn.Close()

		tags, err := ideas.ListTags(context.Background(), dbConn)
		if err != nil {
			return fmt.Errorf("failed to list tags: %w", err)
		}

		if len(tags) == 0 {
			fmt.Println("No tags found.")
			return nil
		}

		fmt.Println("Tags:")
		return printJSON(tags)
	},
}

func initTagsCmd() {
	tagCreateCmd.Flags().StringP("name", "n", "", "Name of the tag (required)")
	tagCreateCmd.MarkFlagRequired("name")

	tagsCmd.AddCommand(tagCreateCmd, tagListCmd)
}
