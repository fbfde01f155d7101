// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-10-15
// Last Modified: 2026-10-15

package reconcile

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/similigh/simili-sync/internal/core/logging"
)

// Plan counts the comparisons per action.
type Plan struct {
	Create int
	Update int
	Skip   int
}

// Summarize counts comparisons by action.
func Summarize(comparisons []IssueComparison) Plan {
	var p Plan
	for _, c := range comparisons {
		switch c.Action {
		case ActionCreate:
			p.Create++
		case ActionUpdate:
			p.Update++
		case ActionSkip:
			p.Skip++
		}
	}
	return p
}

// Lines renders the plan summary, one line per action.
func (p Plan) Lines() []string {
	return []string{
		fmt.Sprintf("Create: %d issues", p.Create),
		fmt.Sprintf("Update: %d issues", p.Update),
		fmt.Sprintf("Skip: %d issues", p.Skip),
	}
}

// ReportPlan logs the plan summary in its own group, with per-issue detail at
// debug level.
func ReportPlan(log logging.Logger, comparisons []IssueComparison) Plan {
	plan := Summarize(comparisons)

	end := log.Group("Sync plan")
	defer end()

	for _, line := range plan.Lines() {
		log.Infof("%s", line)
	}
	for _, c := range comparisons {
		log.Debugf("%s #%d %q", c.Action, c.Source.Number, c.Source.Title)
	}

	return plan
}

// WritePlanTable writes the comparisons as a markdown table.
func WritePlanTable(w io.Writer, comparisons []IssueComparison) error {
	table := tablewriter.NewTable(w,
		tablewriter.WithConfig(tablewriter.Config{
			Header: tw.CellConfig{
				Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
				Formatting: tw.CellFormatting{AutoFormat: tw.Off},
			},
			Row: tw.CellConfig{
				Alignment: tw.CellAlignment{Global: tw.AlignLeft},
			},
			Behavior: tw.Behavior{TrimSpace: tw.Off},
		}),
		tablewriter.WithHeader([]string{"Action", "Source", "Target", "Title"}),
		tablewriter.WithRenderer(renderer.NewBlueprint()),
		tablewriter.WithRendition(tw.Rendition{
			Symbols: tw.NewSymbols(tw.StyleMarkdown),
			Borders: tw.Border{Left: tw.On, Top: tw.Off, Right: tw.On, Bottom: tw.Off},
		}),
		tablewriter.WithRowAutoWrap(tw.WrapNone),
	)

	for _, c := range comparisons {
		targetRef := "-"
		if c.Target != nil {
			targetRef = "#" + strconv.Itoa(c.Target.Number)
		}
		row := []string{string(c.Action), "#" + strconv.Itoa(c.Source.Number), targetRef, c.Source.Title}
		if err := table.Append(row); err != nil {
			return fmt.Errorf("failed to append plan row: %w", err)
		}
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render plan table: %w", err)
	}
	return nil
}
