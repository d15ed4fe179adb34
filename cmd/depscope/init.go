package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"depscope/internal/config"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default .depscope/config.json",
	Run:   runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false,
		"Overwrite an existing config file")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) {
	configPath := filepath.Join(repoFlag, ".depscope", "config.json")
	if _, err := os.Stat(configPath); err == nil && !initForce {
		fmt.Fprintf(os.Stderr, "%s already exists (use --force to overwrite)\n", configPath)
		os.Exit(1)
	}

	cfg := config.DefaultConfig()
	if err := cfg.Save(repoFlag); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing config: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s\n", configPath)
}
