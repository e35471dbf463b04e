package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/career-compass/internal/careers"
)

var datasetCmd = &cobra.Command{
	Use:   "dataset",
	Short: "Validate, import and inspect career datasets",
}

var datasetValidateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Validate a JSON or CSV career dataset without importing it",
	Args:  cobra.ExactArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		logger := newLogger()

		result, err := parseDatasetFile(args[0])
		if err != nil {
			logger.Fatal("validating dataset", zap.Error(err))
		}
		printReport(os.Stdout, args[0], result.Report)
	},
}

var datasetImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Validate a career dataset and store it as the active upload",
	Args:  cobra.ExactArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		ctx := context.Background()
		logger := newLogger()
		config := mustConfig(logger)

		if err := importDataset(ctx, config, args[0], logger); err != nil {
			logger.Fatal("importing dataset", zap.Error(err))
		}
	},
}

var datasetShowCmd = &cobra.Command{
	Use:   "show [career-id]",
	Short: "List the effective dataset or print one career",
	Args:  cobra.MaximumNArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		ctx := context.Background()
		logger := newLogger()
		config := mustConfig(logger)

		store, err := openStorage(config)
		if err != nil {
			logger.Fatal("opening storage", zap.Error(err))
		}
		defer store.Close()

		snapshot, err := loadDataset(ctx, config, store, logger)
		if err != nil {
			logger.Fatal("loading dataset", zap.Error(err))
		}

		if len(args) == 1 {
			record, ok := snapshot.ByID(args[0])
			if !ok {
				logger.Fatal("career not found", zap.String("id", args[0]))
			}
			pretty, _ := json.MarshalIndent(record, "", "  ")
			fmt.Println(string(pretty))
			return
		}

		if err := printSnapshot(os.Stdout, snapshot); err != nil {
			logger.Fatal("printing dataset", zap.Error(err))
		}
	},
}

func init() {
	rootCmd.AddCommand(datasetCmd)
	datasetCmd.AddCommand(datasetValidateCmd, datasetImportCmd, datasetShowCmd)
}

func parseDatasetFile(path string) (*careers.Result, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return careers.Parse(path, raw)
}

func importDataset(ctx context.Context, config *Config, path string, l *zap.Logger) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	result, err := careers.Parse(path, raw)
	if err != nil {
		return err
	}
	logReport(l, path, result.Report)

	if result.Report.Accepted == 0 {
		return errors.New("dataset has no valid careers, nothing imported")
	}

	store, err := openStorage(config)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.SaveDataset(ctx, filepath.Base(path), raw); err != nil {
		return err
	}

	l.Info("dataset imported", zap.String("file", path), zap.Int("careers", result.Report.Accepted))
	return nil
}

func printReport(w io.Writer, name string, report careers.Report) {
	fmt.Fprintf(w, "%s: %d records, %d accepted, %d rejected\n", name, report.Initial, report.Accepted, report.Rejected)
	for _, e := range report.Errors {
		fmt.Fprintf(w, "  %s\n", e)
	}
}

func printSnapshot(w io.Writer, snapshot *careers.Snapshot) error {
	fmt.Fprintf(w, "Dataset %s (%d careers, loaded %s)\n\n", snapshot.Source(), snapshot.Len(), snapshot.LoadedAt().Format("2006-01-02 15:04"))

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tTYPES\tSKILLS")
	snapshot.Each(func(r careers.Record) {
		types := string(r.PrimaryType)
		if r.HasSecondary() {
			types += "/" + string(r.SecondaryType)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.ID, r.Title, types, strings.Join(r.RequiredSkills, ", "))
	})
	return tw.Flush()
}
