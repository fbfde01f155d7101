// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/kavirubc
// Created: 2026-10-15
// Last Modified: 2026-10-15

// Package commands implements the simili-sync command line.
package commands

import (
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "simili-sync",
	Short: "Mirror issues from one tracker repository to another",
	Long: `simili-sync brings the issues of a target repository in line with a
source repository hosted on another tracker (GitHub or GitLab).

Issues are matched by title. Missing issues are created with a link back to
the source, changed issues are overwritten, and the opening and closing
comments of matched issues are copied over.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Path to config file (default: .github/simili-sync.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}
