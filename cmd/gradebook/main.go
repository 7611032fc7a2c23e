// Package main provides the CLI entry point for the gradebook tools.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/SoraGefroren/Concentrador-de-Calificaciones-para-Docentes-sub000/internal/config"
	"github.com/SoraGefroren/Concentrador-de-Calificaciones-para-Docentes-sub000/pkg/gradebook"
	"github.com/SoraGefroren/Concentrador-de-Calificaciones-para-Docentes-sub000/pkg/gradebook/output"
	"github.com/spf13/cobra"
)

var (
	configPath string
	logLevel   string
	outputPath string
	pretty     bool
	expr       string
	column     string
	student    int
	reverse    bool
	groupsDir  string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "gradebook",
		Short: "Inspect, recalculate and export gradebook workbooks",
		Long: `gradebook reads a gradebook workbook (student data sheet plus
configuration sheet), evaluates the computed columns and writes it back.`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Configuration file (default: gradebook.toml if present)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")

	schemaCmd := &cobra.Command{
		Use:   "schema [input.xlsx]",
		Short: "Print the column schema as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  runSchema,
	}
	schemaCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	schemaCmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	schemaCmd.Flags().StringVar(&groupsDir, "groups-dir", "", "Directory for per-group output files")

	rosterCmd := &cobra.Command{
		Use:   "roster [input.xlsx]",
		Short: "Print the recalculated roster as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  runRoster,
	}
	rosterCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	rosterCmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")

	recalcCmd := &cobra.Command{
		Use:   "recalc [input.xlsx]",
		Short: "Recalculate computed columns and export the workbook",
		Args:  cobra.ExactArgs(1),
		RunE:  runRecalc,
	}
	recalcCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output workbook path")
	_ = recalcCmd.MarkFlagRequired("output")

	evalCmd := &cobra.Command{
		Use:   "eval [input.xlsx]",
		Short: "Evaluate a formula or a column for one student",
		Args:  cobra.ExactArgs(1),
		RunE:  runEval,
	}
	evalCmd.Flags().StringVar(&expr, "formula", "", "Bracket formula, e.g. \"[Examen] / [Examen:Puntos] * 100\"")
	evalCmd.Flags().StringVar(&column, "column", "", "Evaluate the formula of this column label")
	evalCmd.Flags().IntVar(&student, "student", 0, "Student index (0-based)")

	translateCmd := &cobra.Command{
		Use:   "translate [input.xlsx]",
		Short: "Translate between bracket and native formulas",
		Args:  cobra.ExactArgs(1),
		RunE:  runTranslate,
	}
	translateCmd.Flags().StringVar(&expr, "formula", "", "Formula to translate")
	translateCmd.Flags().IntVar(&student, "student", 0, "Student index (0-based) for relative references")
	translateCmd.Flags().BoolVar(&reverse, "reverse", false, "Translate a native formula into bracket notation")
	_ = translateCmd.MarkFlagRequired("formula")

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}
	configCmd.AddCommand(&cobra.Command{
		Use:   "init [path]",
		Short: "Write the default configuration",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runConfigInit,
	})

	rootCmd.AddCommand(schemaCmd, rosterCmd, recalcCmd, evalCmd, translateCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// openSession loads the configuration and the input workbook.
func openSession(inputPath string) (*gradebook.Session, *config.AppConfig, error) {
	cfg, err := config.Load(configPath, configPath != "")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	logger, err := cfg.Log.NewLogger(os.Stderr)
	if err != nil {
		return nil, nil, err
	}

	opts := gradebook.DefaultOptions()
	opts.Logger = logger
	opts.Export = output.Options{
		DataSheet:      cfg.Workbook.DataSheet,
		ConfigSheet:    cfg.Workbook.ConfigSheet,
		HeaderFill:     cfg.Workbook.HeaderFill,
		NativeFormulas: cfg.Workbook.NativeFormulas,
	}

	session := gradebook.NewSession(opts)
	if err := session.LoadFile(inputPath); err != nil {
		return nil, nil, err
	}
	return session, cfg, nil
}

func runSchema(cmd *cobra.Command, args []string) error {
	session, cfg, err := openSession(args[0])
	if err != nil {
		return err
	}

	jsonData, err := output.ToJSON(output.NewSchemaView(session.BookName, session.Schema), pretty || cfg.Output.Pretty)
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}

	if groupsDir != "" {
		if err := writeGroupFiles(session, groupsDir, pretty || cfg.Output.Pretty); err != nil {
			return fmt.Errorf("failed to write group files: %w", err)
		}
		if outputPath == "" {
			return nil
		}
	}
	return writeOutput(cmd, jsonData)
}

func writeGroupFiles(session *gradebook.Session, dir string, pretty bool) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	for i, view := range output.NewGroupViews(session.BookName, session.Schema) {
		jsonData, err := output.ToJSON(view, pretty)
		if err != nil {
			return err
		}

		filename := filepath.Join(dir, fmt.Sprintf("group%d.json", i+1))
		if err := os.WriteFile(filename, jsonData, 0644); err != nil {
			return err
		}
	}

	return nil
}

func runRoster(cmd *cobra.Command, args []string) error {
	session, cfg, err := openSession(args[0])
	if err != nil {
		return err
	}

	jsonData, err := output.ToJSON(session.Roster, pretty || cfg.Output.Pretty)
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}
	return writeOutput(cmd, jsonData)
}

func runRecalc(cmd *cobra.Command, args []string) error {
	session, _, err := openSession(args[0])
	if err != nil {
		return err
	}

	session.Recalculate()
	if err := session.ExportFile(outputPath); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d students)\n", outputPath, len(session.Roster))
	return nil
}

func runEval(cmd *cobra.Command, args []string) error {
	if (expr == "") == (column == "") {
		return fmt.Errorf("exactly one of --formula or --column is required")
	}
	session, _, err := openSession(args[0])
	if err != nil {
		return err
	}

	var (
		v  float64
		ok bool
	)
	if column != "" {
		v, ok = session.EvaluateColumn(column, student)
	} else {
		v, ok = session.Evaluate(expr, student)
	}
	if !ok {
		return fmt.Errorf("formula has no result for student %d", student)
	}
	fmt.Fprintln(cmd.OutOrStdout(), strconv.FormatFloat(v, 'f', -1, 64))
	return nil
}

func runTranslate(cmd *cobra.Command, args []string) error {
	session, _, err := openSession(args[0])
	if err != nil {
		return err
	}

	if reverse {
		fmt.Fprintln(cmd.OutOrStdout(), session.FromNative(expr))
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), session.ToNative(expr, student))
	}
	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := config.DefaultPath
	if len(args) == 1 {
		path = args[0]
	}
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}

	if err := config.Save(path, config.DefaultConfig()); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
	return nil
}

func writeOutput(cmd *cobra.Command, data []byte) error {
	if outputPath != "" {
		if err := os.WriteFile(outputPath, data, 0644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
