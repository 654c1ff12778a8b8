package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/insightdelivered/statement-transformer/internal/models"
	"github.com/insightdelivered/statement-transformer/internal/reader"
)

func newPreviewCmd(c *cli) *cobra.Command {
	var rowsFlag int

	cmd := &cobra.Command{
		Use:   "preview <input>",
		Short: "Print the first rows of a statement export as read",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n := c.cfg.PreviewRows
			if cmd.Flags().Changed("rows") {
				n = rowsFlag
			}
			if n <= 0 {
				return fmt.Errorf("--rows must be positive, got %d", n)
			}

			doc, err := reader.ReadFile(args[0], reader.Options{Charset: c.cfg.CSVCharset})
			if err != nil {
				return err
			}
			c.log.WithField("file", doc.FileName).Debugf("previewing %d of %d row(s)", min(n, len(doc.Sheet)), len(doc.Sheet))
			return printPreview(cmd.OutOrStdout(), doc, n)
		},
	}

	cmd.Flags().IntVarP(&rowsFlag, "rows", "n", 200, "Number of rows to show")
	return cmd
}

// printPreview writes the first n rows as a tab-aligned table with a
// zero-based row index and a trailing count line.
func printPreview(out io.Writer, doc *models.Document, n int) error {
	head := doc.Sheet.Head(n)

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for i, row := range head {
		fmt.Fprintf(tw, "%d\t%s\n", i, strings.Join(row.Strings(), "\t"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(out, "Showing %d of %d row(s) from %s\n", len(head), len(doc.Sheet), doc.FileName)
	return nil
}
