package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/insightdelivered/statement-transformer/internal/config"
	"github.com/insightdelivered/statement-transformer/internal/logging"
	"github.com/insightdelivered/statement-transformer/internal/transform"
)

const version = "2.0.0"

// cli carries the configuration and logger shared by every subcommand.
type cli struct {
	envFile   string
	logLevel  string
	logFormat string
	charset   string

	cfg *config.Config
	log *logrus.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:   "statement-transformer",
		Short: "Normalize bank statement exports into a four-column CSV",
		Long: `Bank Statement Transformer
by Insight Delivered

Reads bank statement exports (CSV, xlsx, xls) from Exterior, the
Venezuelan banks Bancaribe and Banesco, and the generic Venezuela
layout, and rewrites them as ETIQUETA, FECHA, REFERENCIA, IMPORTE.`,
		Example: `  # List the transformation rules
  statement-transformer rules

  # Transform a Bancaribe export (writes transformado_estado.csv)
  statement-transformer transform --rule 4 estado.xlsx

  # Look at the raw rows before choosing a rule
  statement-transformer preview --rows 20 estado.xls

  # Run the HTTP API and front-end
  statement-transformer serve --addr :8080 --static web/dist`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup(cmd)
		},
	}

	root.PersistentFlags().StringVar(&c.envFile, "env", ".env", "Path to an optional dotenv file")
	root.PersistentFlags().StringVar(&c.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	root.PersistentFlags().StringVar(&c.logFormat, "log-format", "", "Log format: text, json")
	root.PersistentFlags().StringVar(&c.charset, "charset", "", "Charset for non-UTF-8 CSV text (default windows-1252)")

	root.AddCommand(
		newTransformCmd(c),
		newPreviewCmd(c),
		newRulesCmd(),
		newServeCmd(c),
		newVersionCmd(),
	)
	return root
}

// setup loads configuration and applies flag overrides.
func (c *cli) setup(cmd *cobra.Command) error {
	cfg, err := config.LoadFile(c.envFile)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.LogLevel = c.logLevel
	}
	if flags.Changed("log-format") {
		cfg.LogFormat = c.logFormat
	}
	if flags.Changed("charset") {
		cfg.CSVCharset = c.charset
	}

	c.cfg = cfg
	c.log = logging.New(cfg.LogLevel, cfg.LogFormat)
	return nil
}

func newRulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "List the transformation rules",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Transformation rules:")
			for _, r := range transform.All() {
				fmt.Fprintf(out, "  %s  %-20s %s\n", r.ID(), r.ID().Alias(), r.BankName())
			}
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version and exit",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "statement-transformer v%s\n", version)
		},
	}
}
