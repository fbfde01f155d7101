// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/kavirubc
// Created: 2026-10-15
// Last Modified: 2026-10-15

package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/similigh/simili-sync/internal/reconcile"
)

// planCmd represents the plan command
var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Show what a sync pass would change",
	Long: `Fetch both repositories, compare their issues and print the resulting
plan as a markdown table. Nothing is changed on either side.`,
	RunE: runPlan,
}

func init() {
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	source, target, err := newClients(ctx, cfg)
	if err != nil {
		return err
	}

	log := newLogger(cfg, os.Stderr)
	comparisons, err := reconcile.New(reconcile.WithLogger(log)).Preview(ctx, source, target)
	if err != nil {
		return err
	}

	return printPlan(cmd.OutOrStdout(), comparisons)
}

func printPlan(w io.Writer, comparisons []reconcile.IssueComparison) error {
	if err := reconcile.WritePlanTable(w, comparisons); err != nil {
		return err
	}
	fmt.Fprintln(w)
	for _, line := range reconcile.Summarize(comparisons).Lines() {
		fmt.Fprintln(w, line)
	}
	return nil
}
