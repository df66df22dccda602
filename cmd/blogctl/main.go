// Command blogctl manages the Blogly database schema and demo data.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "blogctl",
	Short: "Manage the Blogly database",
	Long: `blogctl applies schema migrations and seeds demo data.

Configuration is read the same way as the server: .env, config.yml and
environment variables.`,
	SilenceUsage: true,
}

func main() {
	rootCmd.AddCommand(migrateCmd, seedCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
