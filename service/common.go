package service

import (
	"fmt"

	"quill/app/config"
)

// envFile is the optional dotenv file read before the process environment.
var envFile = ".env"

// backupDir is where backup writes session snapshots when no file is given.
var backupDir = "data/backups"

func loadConfig() (config.Config, error) {
	return config.Load(envFile)
}

// confirm asks a yes/no question on stdin; anything but y or Y means no.
func confirm(question string) bool {
	fmt.Print(question + " [y/N] ")
	var response string
	fmt.Scanln(&response)
	return response == "y" || response == "Y"
}
