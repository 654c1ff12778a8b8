package main

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/insightdelivered/statement-transformer/internal/models"
	"github.com/insightdelivered/statement-transformer/internal/reader"
	"github.com/insightdelivered/statement-transformer/internal/transform"
	"github.com/insightdelivered/statement-transformer/internal/writer"
)

func newTransformCmd(c *cli) *cobra.Command {
	var (
		ruleFlag   string
		outputFlag string
		crlfFlag   bool
	)

	cmd := &cobra.Command{
		Use:   "transform --rule <id> <input>",
		Short: "Transform a statement export into the normalized CSV",
		Long: `Transform a statement export into the normalized CSV.

Rules:
  1  exterior-juridico    Exterior Jurídico
  2  exterior-personales  Exterior Personales
  3  venezuela            Venezuela
  4  bancaribe            Bancaribe (dates as spreadsheet serials)
  5  banesco              Banesco`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := models.ParseRuleID(ruleFlag)
			if err != nil {
				return err
			}
			opts := reader.Options{Charset: c.cfg.CSVCharset}
			w := &writer.CSVWriter{UseCRLF: crlfFlag}
			if err := processFile(cmd.OutOrStdout(), c.log, args[0], id, outputFlag, opts, w); err != nil {
				return fmt.Errorf("processing %s: %w", args[0], err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&ruleFlag, "rule", "r", "", "Rule: 1-5 or an alias (see 'rules')")
	cmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Output CSV file path (defaults to transformado_<input>.csv next to the input)")
	cmd.Flags().BoolVar(&crlfFlag, "crlf", false, "End CSV lines with CRLF")
	_ = cmd.MarkFlagRequired("rule")
	return cmd
}

func processFile(out io.Writer, log *logrus.Logger, inputPath string, id models.RuleID, outputPath string, opts reader.Options, w *writer.CSVWriter) error {
	fmt.Fprintf(out, "Processing: %s\n", inputPath)

	doc, err := reader.ReadFile(inputPath, opts)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "  Read %d row(s) from %s file\n", len(doc.Sheet), doc.Format)

	rule, err := transform.New(id)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "  Using %s rule\n", rule.BankName())

	result, err := transform.Apply(id, doc.Sheet)
	if err != nil {
		return fmt.Errorf("transform failed: %w", err)
	}

	summary := transform.Summarize(result)
	fmt.Fprintf(out, "  Produced %d row(s)\n", summary.Count)

	if summary.Count == 0 {
		fmt.Fprintln(out, "  Warning: No data rows produced. The file layout may not match the selected rule.")
		fmt.Fprintln(out, "  Try 'preview' to inspect the raw rows.")
	}

	outPath := outputPath
	if outPath == "" {
		outPath = writer.OutputPath(inputPath)
	}

	if err := w.WriteToFile(outPath, result); err != nil {
		return fmt.Errorf("CSV write failed: %w", err)
	}

	log.WithFields(logrus.Fields{
		"file":   inputPath,
		"rule":   id,
		"rows":   summary.Count,
		"output": outPath,
	}).Debug("statement transformed")

	fmt.Fprintf(out, "  Output: %s\n", outPath)
	fmt.Fprintf(out, "  Debits: %s\n", summary.TotalDebit.StringFixed(2))
	fmt.Fprintf(out, "  Credits: %s\n", summary.TotalCredit.StringFixed(2))
	fmt.Fprintf(out, "  Net: %s\n", summary.Net().StringFixed(2))

	fmt.Fprintln(out, "  Done.")
	return nil
}
