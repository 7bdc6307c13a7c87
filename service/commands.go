package service

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"quill/app/auth"
	"quill/app/repositories"
)

// HandleCommand runs a blog subcommand and returns its exit code.
func HandleCommand(args []string) int {
	if len(args) < 1 {
		printHelp()
		return 1
	}

	cmd := args[0]
	switch cmd {
	case "serve":
		return RunAppServer(args[1:])
	case "migrate":
		return migrate()
	case "clean":
		return clean()
	case "backup":
		target := ""
		if len(args) > 1 {
			target = args[1]
		}
		return backup(target)
	case "restore":
		if len(args) < 2 {
			fmt.Println("Error: backup file path required for restore")
			return 1
		}
		return restore(args[1])
	case "help":
		printHelp()
		return 0
	default:
		fmt.Printf("Unknown command: %s\n\n", cmd)
		printHelp()
		return 1
	}
}

func printHelp() {
	helpText := `Usage: quill <command> [options]

Commands:
  serve [--addr <addr>]           Run the blog server
  migrate                         Create or update the database tables
  clean                           Delete all sessions, logging everyone out
  backup [file]                   Back up the session store
  restore <file>                  Restore the session store from a backup
  version                         Show version information
  help                            Display this help message
`
	fmt.Println(helpText)
}

// migrate creates the users, blog_posts and comments tables.
func migrate() int {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		return 1
	}
	db, err := repositories.Open(cfg.DB.URI, nil)
	if err != nil {
		fmt.Printf("Failed to open database: %v\n", err)
		return 1
	}
	defer repositories.Close(db)

	if err := repositories.Migrate(db); err != nil {
		fmt.Printf("Failed to migrate database: %v\n", err)
		return 1
	}
	fmt.Println("Database migrated successfully")
	return 0
}

// openSessions opens the configured session store, failing when it was never created.
func openSessions() (*auth.Store, bool) {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		return nil, false
	}
	if _, err := os.Stat(cfg.Session.Dir); os.IsNotExist(err) {
		fmt.Println("No session store exists")
		return nil, false
	}
	store, err := auth.OpenStore(cfg.Session.Dir, cfg.Session.TTL)
	if err != nil {
		fmt.Printf("Failed to open session store: %v\n", err)
		return nil, false
	}
	return store, true
}

// clean removes every session.
func clean() int {
	store, ok := openSessions()
	if !ok {
		return 1
	}
	defer store.Close()

	if !confirm("Are you sure you want to delete all sessions? Everyone will be logged out.") {
		fmt.Println("Operation cancelled")
		return 1
	}
	if err := store.Clear(); err != nil {
		fmt.Printf("Failed to clean sessions: %v\n", err)
		return 1
	}
	fmt.Println("Sessions cleaned successfully")
	return 0
}

// backup writes a snapshot of the session store to target, or to a timestamped file
// under backupDir.
func backup(target string) int {
	store, ok := openSessions()
	if !ok {
		return 1
	}
	defer store.Close()

	if target == "" {
		if err := os.MkdirAll(backupDir, 0o755); err != nil {
			fmt.Printf("Failed to create backup directory: %v\n", err)
			return 1
		}
		target = filepath.Join(backupDir, fmt.Sprintf("sessions_%d.bak", time.Now().Unix()))
	}

	f, err := os.Create(target)
	if err != nil {
		fmt.Printf("Failed to create backup file: %v\n", err)
		return 1
	}
	defer f.Close()

	if err := store.Backup(f); err != nil {
		fmt.Printf("Failed to back up sessions: %v\n", err)
		return 1
	}
	fmt.Printf("Sessions backed up successfully to %s\n", target)
	return 0
}

// restore loads a backup into the session store, replacing existing sessions after
// confirmation.
func restore(backupFile string) int {
	fi, err := os.Stat(backupFile)
	if os.IsNotExist(err) {
		fmt.Printf("Backup file does not exist: %s\n", backupFile)
		return 1
	}
	if err != nil {
		fmt.Printf("Failed to stat backup file: %v\n", err)
		return 1
	}
	if fi.Size() == 0 {
		fmt.Printf("Backup file is empty: %s\n", backupFile)
		return 1
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		return 1
	}
	if err := os.MkdirAll(cfg.Session.Dir, 0o755); err != nil {
		fmt.Printf("Failed to create session directory: %v\n", err)
		return 1
	}
	store, err := auth.OpenStore(cfg.Session.Dir, cfg.Session.TTL)
	if err != nil {
		fmt.Printf("Failed to open session store: %v\n", err)
		return 1
	}
	defer store.Close()

	n, err := store.Count()
	if err != nil {
		fmt.Printf("Failed to read session store: %v\n", err)
		return 1
	}
	if n > 0 {
		if !confirm("Existing sessions found. Do you want to replace them?") {
			fmt.Println("Operation cancelled")
			return 1
		}
		if err := store.Clear(); err != nil {
			fmt.Printf("Failed to clear sessions: %v\n", err)
			return 1
		}
	}

	f, err := os.Open(backupFile)
	if err != nil {
		fmt.Printf("Failed to open backup file: %v\n", err)
		return 1
	}
	defer f.Close()

	if err := store.Restore(f); err != nil {
		fmt.Printf("Failed to restore sessions: %v\n", err)
		return 1
	}
	fmt.Println("Sessions restored successfully")
	return 0
}
