package main

import (
	"database/sql"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	ideastash "github.com/ideastash/ideastash/pkg"
	pkgdb "github.com/ideastash/ideastash/pkg/db"
)

var (
	dbPath   string
	walMode  bool
	syncMode string
)

var rootCmd = &cobra.Command{
	Use:     "ideastash",
	Short:   "A local store for your ideas: folders, tags and scheduled reminders over SQLite.",
	Long:    ``,
	Version: fmt.Sprintf("v%s", ideastash.Version),
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

var completionShells = []string{"bash", "zsh", "fish", "powershell"}

var completionCmd = &cobra.Command{
	Use:   fmt.Sprintf("completion %s", strings.Join(completionShells, "|")),
	Short: "Generate shell completion scripts",
	Long: `Generate shell completion scripts for ideastash.

The command prints a completion script to stdout. You can source it in your shell
or install it to the appropriate location for your shell to enable completions permanently.

Examples:

  Bash (current shell):
    $ source <(ideastash completion bash)

  Zsh:
    $ ideastash completion zsh > "${fpath[1]}/_ideastash"

  Fish:
    $ ideastash completion fish | source

  PowerShell:
    PS> ideastash completion powershell | Out-String | Invoke-Expression`,
	DisableFlagsInUseLine: true,
	ValidArgs:             completionShells,
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletion(cmd.OutOrStdout())
		case "zsh":
			return rootCmd.GenZshCompletion(cmd.OutOrStdout())
		case "fish":
			return rootCmd.GenFishCompletion(cmd.OutOrStdout(), true)
		case "powershell":
			return rootCmd.GenPowerShellCompletion(cmd.OutOrStdout())
		default:
			return fmt.Errorf("unsupported shell: %s", args[0])
		}
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of ideastash",
	Long:  `All software has versions. This is ideastash's`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(ideastash.Version)
	},
}

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Manage the ideastash database",
	Long:  `Provides commands for managing the ideastash SQLite database, including schema upgrades.`,
}

var dbUpgradeCmd = &cobra.Command{
	Use:   "upgrade",
	Short: "Upgrade the ideastash database schema to the latest version",
	Long: `Connects to the SQLite database at the specified path (via --db) and applies any necessary
schema migrations to bring the ideasdb component up to the current application schema version.
If the database does not exist or is uninitialized, it will be created and initialized with
the latest schema.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if dbPath == "" {
			return fmt.Errorf("database path must be set using the --db flag")
		}

		fmt.Fprintf(os.Stderr, "Attempting to upgrade ideasdb component in database at: %s (WAL: %t, Sync: %s)\n", dbPath, walMode, syncMode)

		dbConn, err := openDB()
		if err != nil {
			return err
		}
		defer dbConn.Close()

		return pkgdb.UpgradeDB(dbConn, dbPath, pkgdb.TargetSchemaVersion)
	},
}

func openDB() (*sql.DB, error) {
	if dbPath == "" {
		return nil, fmt.Errorf("database path must be set using the --db flag")
	}
	return pkgdb.Open(dbPath, walMode, syncMode)
}

func initCmd() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to the ideastash SQLite database file (e.g., ./ideastash.db)")
	rootCmd.PersistentFlags().BoolVar(&walMode, "wal", true, "Enable SQLite WAL (Write-Ahead Logging) mode")
	rootCmd.PersistentFlags().StringVar(&syncMode, "sync", "NORMAL", "SQLite synchronous pragma (OFF, NORMAL, FULL, EXTRA)")

	dbCmd.AddCommand(dbUpgradeCmd)

	initFoldersCmd()
	initTagsCmd()
	initIdeasCmd()

	rootCmd.AddCommand(completionCmd, versionCmd, dbCmd, foldersCmd, tagsCmd, ideasCmd, mcpCmd)
}

func main() {
	initCmd()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
