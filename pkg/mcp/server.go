package mcp

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"

	ideastash "github.com/ideastash/ideastash/pkg"
	pkgdb "github.com/ideastash/ideastash/pkg/db"
	"github.com/ideastash/ideastash/pkg/utils"
)

// IdeastashMCPServer exposes the folder, tag and idea repositories as MCP
// tools over stdio.
type IdeastashMCPServer struct {
	mcpServer *server.MCPServer
	db        *sql.DB
	DBPath    string
}

// NewIdeastashMCPServer spins up an MCP server backed by the SQLite database
// at dbPath, creating or upgrading the schema as needed. An empty dbPath
// falls back to the system default location.
func NewIdeastashMCPServer(dbPath string) (*IdeastashMCPServer, error) {
	resolvedPath, err := utils.ResolveAndEnsureDBPath(dbPath)
	if err != nil {
		return nil, err
	}

	s := server.NewMCPServer(
		"Ideastash MCP Server",
		ideastash.Version,
		server.WithResourceCapabilities(true, true),
		server.WithLogging(),
		server.WithRecovery(),
	)

	dbConn, err := pkgdb.Open(resolvedPath, true, "FULL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	if err := pkgdb.UpgradeDB(dbConn, resolvedPath, pkgdb.TargetSchemaVersion); err != nil {
		dbConn.Close()
		return nil, fmt.Errorf("failed to initialize/upgrade database schema for '%s': %w", resolvedPath, err)
	}

	return &IdeastashMCPServer{
		mcpServer: s,
		db:        dbConn,
		DBPath:    resolvedPath,
	}, nil
}

// Start runs the stdio event loop. Make sure to register tools beforehand.
func (s *IdeastashMCPServer) Start() error {
	return server.ServeStdio(s.mcpServer)
}

// DB returns the underlying *sql.DB.
func (s *IdeastashMCPServer) DB() *sql.DB {
	return s.db
}

// MCPRawServer exposes the raw mcp-go server (useful for additional configuration).
func (s *IdeastashMCPServer) MCPRawServer() *server.MCPServer {
	return s.mcpServer
}

// Close cleans up allocated resources.
func (s *IdeastashMCPServer) Close() error {
	if s.db != nil {
		// TRUNCATE mode waits for transactions and writes the WAL back to the main DB.
		if _, err := s.db.Exec("PRAGMA wal_checkpoint(TRUNCATE);"); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: WAL checkpoint failed during close: %v\n", err)
		}
		return s.db.Close()
	}
	return nil
}
