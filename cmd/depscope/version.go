package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"depscope/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the depscope version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("depscope version %s\n", version.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
