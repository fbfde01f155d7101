// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/kavirubc
// Created: 2026-10-15
// Last Modified: 2026-10-15

package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the sync config without contacting either tracker",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "✓ Config is valid\n")
		fmt.Fprintf(out, "  source: %s %s\n", cfg.Source.Platform, cfg.Source.Repo)
		fmt.Fprintf(out, "  target: %s %s\n", cfg.Target.Platform, cfg.Target.Repo)
		fmt.Fprintf(out, "  filters: %d, comments: %v, dry-run: %v\n",
			len(cfg.Filters), cfg.Sync.CommentsEnabled(), cfg.Sync.DryRun)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
