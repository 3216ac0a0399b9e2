package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Build info - injected via ldflags
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "httpserver",
	Short: "Multi-threaded HTTP file and upload server",
	Long:  `A from-scratch HTTP/1.1 server with a bounded worker pool, keep-alive support, static file serving and JSON uploads.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
