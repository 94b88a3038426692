package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ideastash/ideastash/pkg/ideas"
)

var foldersCmd = &cobra.Command{
	Use:   "folders",
	Short: "Manage folders",
	Long:  `Provides commands for creating and listing folders.`,
}

var folderCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new folder",
	Long:  `Creates a new folder with the given name. Folder names are unique; creating a duplicate fails.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		if name == "" {
			return fmt.Errorf("folder name cannot be empty")
		}

		dbConn, err := openDB()
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer dbConn.Close()

		folder, err := ideas.CreateFolder(context.Background(), dbConn, name)
		if err != nil {
			return fmt.Errorf("failed to create folder: %w", err)
		}

		fmt.Println("Folder created successfully:")
		return printJSON(folder)
	},
}

var folderListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all folders",
	Long:  `Lists the id and name of every folder currently stored in the database.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dbConn, err := openDB()
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer dbConn.Close()

		folders, err := ideas.ListFolders(context.Background(), dbConn)
		if err != nil {
			return fmt.Errorf("failed to list folders: %w", err)
		}

		if len(folders) == 0 {
			fmt.Println("No folders found.")
			return nil
		}

		fmt.Println("Folders:")
		return printJSON(folders)
	},
}

func initFoldersCmd() {
	folderCreateCmd.Flags().StringP("name", "n", "", "Name of the folder (required)")
	folderCreateCmd.MarkFlagRequired("name")

	foldersCmd.AddCommand(folderCreateCmd, folderListCmd)
}

func printJSON(v any) error {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}
	fmt.Println(string(output))
	return nil
}
