package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/alouvre/Eksperimen-SML-Alifia-Mustika-Sari/pkg/config"
	"github.com/alouvre/Eksperimen-SML-Alifia-Mustika-Sari/pkg/data"
	"github.com/alouvre/Eksperimen-SML-Alifia-Mustika-Sari/pkg/pipeline"
	"github.com/alouvre/Eksperimen-SML-Alifia-Mustika-Sari/pkg/stats"
)

type transformFlags struct {
	scalerPath string
	outDir     string
	save       bool
}

func newTransformCmd(gf *globalFlags) *cobra.Command {
	tf := &transformFlags{}
	cmd := &cobra.Command{
		Use:   "transform <input_csv>",
		Short: "Scale new records with a previously fitted scaler",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			cfg, logger, err := gf.load(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			return runTransform(cfg, logger, args[0], tf, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&tf.scalerPath, "scaler", "", "scaler.pkl written by a training run")
	cmd.Flags().StringVar(&tf.outDir, "out-dir", "", "directory for the scaled CSV (defaults to output_dir)")
	cmd.Flags().BoolVar(&tf.save, "save", false, "write the scaled features to <out-dir>/<output_file_name>")
	_ = cmd.MarkFlagRequired("scaler")
	return cmd
}

func runTransform(cfg *config.Config, logger *slog.Logger, inPath string, tf *transformFlags, w io.Writer) error {
	scaler, err := stats.LoadStandardScaler(tf.scalerPath)
	if err != nil {
		return err
	}
	raw, err := data.ReadCSVFile(inPath, cfg.StatusColumn)
	if err != nil {
		return err
	}
	p, err := pipeline.New(cfg.PipelineOptions(), logger)
	if err != nil {
		return err
	}
	res, err := p.Process(raw, pipeline.Request{
		Mode:      pipeline.Inference,
		Features:  scaler.Features,
		Scaler:    scaler,
		OutputDir: tf.outDir,
		Persist:   tf.save,
	})
	if err != nil {
		return fmt.Errorf("preprocess %s: %w", inPath, err)
	}
	logColumns(logger, res.Report)
	if res.Report.Persisted {
		fmt.Fprintf(w, "Preprocessing result saved to: %s\n", res.Report.OutputPath)
	} else {
		fmt.Fprintf(w, "Preprocessed %d rows, result not saved\n", res.Report.RowsOut)
	}
	return nil
}
