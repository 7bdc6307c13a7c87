package main

import (
	"fmt"
	"os"
	"strings"

	"quill/service"
)

// CliVersion is reported by the version command.
const CliVersion = "1.0.0"

var exit = os.Exit

func main() {
	RealMain()
}

// RealMain dispatches os.Args to a command.
func RealMain() {
	if len(os.Args) < 2 {
		printHelp()
		exit(1)
		return
	}

	cmd := strings.ToLower(os.Args[1])
	switch cmd {
	case "help":
		printHelp()
	case "version":
		fmt.Printf("quill version %s\n", CliVersion)
	case "serve", "migrate", "clean", "backup", "restore":
		if code := service.HandleCommand(append([]string{cmd}, os.Args[2:]...)); code != 0 {
			exit(code)
		}
	default:
		fmt.Printf("Unknown command: %s\n\n", os.Args[1])
		printHelp()
		exit(1)
	}
}

func printHelp() {
	helpText := `Usage: quill <command> [options]
Commands:
  help                           Display this help message.
  version                        Show version information.
  serve [--addr <addr>]          Run the blog server (default :5002, or HTTP_ADDR).
  migrate                        Create or update the database tables.
  clean                          Delete all sessions, logging everyone out.
  backup [file]                  Back up the session store.
  restore <file>                 Restore the session store from a backup.

Configuration is read from the environment and an optional .env file:
  SECRET_KEY (required), DB_URI, SESSION_DIR, SESSION_TTL, HTTP_ADDR, APP_ENV, LOG_LEVEL
`
	fmt.Println(helpText)
}
