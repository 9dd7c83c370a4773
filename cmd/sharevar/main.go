package main

import (
	"os"

	"github.com/sharevar/sharevar/cmd/sharevar/commands"
	"github.com/sharevar/sharevar/internal/config"
)

// Version information - injected at build time
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	versionInfo := config.VersionInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	}

	os.Exit(commands.Execute(versionInfo))
}
