package main

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/alouvre/Eksperimen-SML-Alifia-Mustika-Sari/pkg/config"
	"github.com/alouvre/Eksperimen-SML-Alifia-Mustika-Sari/pkg/data"
	"github.com/alouvre/Eksperimen-SML-Alifia-Mustika-Sari/pkg/logging"
	"github.com/alouvre/Eksperimen-SML-Alifia-Mustika-Sari/pkg/pipeline"
)

type globalFlags struct {
	configFile string
	envFile    string
}

func newRootCmd() *cobra.Command {
	gf := &globalFlags{}
	root := &cobra.Command{
		Use:   "studentprep <input_csv> <output_csv>",
		Short: "Clean and scale student records for dropout prediction",
		Long: `studentprep drops Enrolled students, encodes Status as 0 (Dropout) or
1 (Graduate), standard-scales the selected feature columns and writes the
result to <output_csv>. The fitted scaler is saved as scaler.pkl next to it.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			cfg, logger, err := gf.load(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			return runTrain(cfg, logger, args[0], args[1], cmd.OutOrStdout())
		},
	}
	root.PersistentFlags().StringVar(&gf.configFile, "config", "", "YAML config file")
	root.PersistentFlags().StringVar(&gf.envFile, "env-file", ".env", "dotenv file with STUDENTPREP_* overrides")
	root.AddCommand(newTransformCmd(gf))
	return root
}

func (gf *globalFlags) load(logOut io.Writer) (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(gf.configFile, gf.envFile)
	if err != nil {
		return nil, nil, err
	}
	logger, err := logging.New(logOut, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

// runTrain fits the preprocessor on inPath and writes features+labels to
// outPath and the scaler beside it.
func runTrain(cfg *config.Config, logger *slog.Logger, inPath, outPath string, w io.Writer) error {
	raw, err := data.ReadCSVFile(inPath, cfg.StatusColumn)
	if err != nil {
		return err
	}
	p, err := pipeline.New(cfg.PipelineOptions(), logger)
	if err != nil {
		return err
	}
	res, err := p.Process(raw, pipeline.Request{Mode: pipeline.Training})
	if err != nil {
		return fmt.Errorf("preprocess %s: %w", inPath, err)
	}
	logger.Info("training data preprocessed",
		slog.Int("rows_in", res.Report.RowsIn),
		slog.Int("rows_dropped", res.Report.RowsDropped),
		slog.Int("rows_out", res.Report.RowsOut),
		slog.Any("classes", res.Report.Classes))
	logColumns(logger, res.Report)

	combined, err := res.WithLabels(cfg.StatusColumn)
	if err != nil {
		return err
	}
	if err := data.WriteCSVFile(outPath, combined); err != nil {
		return err
	}
	fmt.Fprintf(w, "Clean dataset saved to: %s\n", outPath)

	scalerPath := filepath.Join(filepath.Dir(outPath), cfg.ScalerFileName)
	if err := res.Scaler.Save(scalerPath); err != nil {
		return err
	}
	fmt.Fprintf(w, "Scaler saved to: %s\n", scalerPath)
	return nil
}

// logColumns logs the summary of every scaled column at debug level.
func logColumns(logger *slog.Logger, rep pipeline.Report) {
	for _, c := range rep.Columns {
		logger.Debug("scaled column",
			slog.String("column", c.Name),
			slog.Float64("mean", c.Mean),
			slog.Float64("std", c.Std),
			slog.Float64("min", c.Min),
			slog.Float64("max", c.Max))
	}
}
