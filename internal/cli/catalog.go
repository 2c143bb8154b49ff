// SPDX-License-Identifier: EPL-2.0

package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/victorzappi/ar-audioengine/catalog"
)

func (c *CLI) catalogCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog [category]",
		Short: "List routing identifiers",
		Long: fmt.Sprintf(`catalog prints the routing identifiers accepted by the graph flags.
Categories: %s.`, strings.Join(categoryNames(), ", ")),
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: categoryNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			tables := catalog.Categories()
			if len(args) == 1 {
				t, ok := catalog.Category(args[0])
				if !ok {
					return fmt.Errorf("unknown category %q (want one of %s)", args[0], strings.Join(categoryNames(), ", "))
				}
				tables = []catalog.Table{t}
			}

			out := cmd.OutOrStdout()
			for _, t := range tables {
				renderTable(out, t)
			}

			return nil
		},
	}

	return cmd
}

func categoryNames() []string {
	tables := catalog.Categories()
	names := make([]string, len(tables))
	for i, t := range tables {
		names[i] = t.Name()
	}

	return names
}

func renderTable(w io.Writer, t catalog.Table) {
	entries := t.Entries()

	rows := make([][]string, len(entries))
	for i, e := range entries {
		rows[i] = []string{fmt.Sprintf("0x%08X", e.Key), e.Name}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	tbl := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Value", "Name").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 0:
				return StyleNumber
			default:
				return StyleValue
			}
		})

	printTitle(w, fmt.Sprintf("%s (%d)", t.Name(), len(entries)))
	fmt.Fprintln(w, tbl.Render())
}
