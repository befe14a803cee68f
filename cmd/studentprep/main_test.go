package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alouvre/Eksperimen-SML-Alifia-Mustika-Sari/pkg/data"
	"github.com/alouvre/Eksperimen-SML-Alifia-Mustika-Sari/pkg/dataprep"
	"github.com/alouvre/Eksperimen-SML-Alifia-Mustika-Sari/pkg/stats"
)

func writeRaw(t *testing.T, dir string) string {
	t.Helper()
	cols := dataprep.DefaultFeatureColumns()
	var b bytes.Buffer
	b.WriteString("Status")
	for _, c := range cols {
		b.WriteString("," + c)
	}
	b.WriteString("\n")
	for i, s := range []string{"Dropout", "Graduate", "Enrolled", "Graduate", "Dropout"} {
		b.WriteString(s)
		for j := range cols {
			b.WriteString("," + []string{"1", "4", "9", "16", "25"}[(i+j)%5])
		}
		b.WriteString("\n")
	}
	path := filepath.Join(dir, "data_student_raw.csv")
	require.NoError(t, os.WriteFile(path, b.Bytes(), 0o600))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append(args, "--env-file", ""))
	err := cmd.Execute()
	return out.String(), err
}

func TestTrainCommand(t *testing.T) {
	dir := t.TempDir()
	in := writeRaw(t, dir)
	out := filepath.Join(dir, "preprocessing_output", "data_student_preprocessed.csv")

	stdout, err := execute(t, in, out)
	require.NoError(t, err)
	scalerPath := filepath.Join(dir, "preprocessing_output", "scaler.pkl")
	assert.Contains(t, stdout, out)
	assert.Contains(t, stdout, scalerPath)

	df, err := data.ReadCSVFile(out, "Status")
	require.NoError(t, err)
	assert.Equal(t, append(dataprep.DefaultFeatureColumns(), "Status"), df.Names())
	assert.Equal(t, []string{"0", "1", "1", "0"}, df.Col("Status").Records())

	scaler, err := stats.LoadStandardScaler(scalerPath)
	require.NoError(t, err)
	assert.Equal(t, dataprep.DefaultFeatureColumns(), scaler.Features)
	assert.Equal(t, 4, scaler.NSamples)
}

func TestTransformCommand(t *testing.T) {
	dir := t.TempDir()
	in := writeRaw(t, dir)
	out := filepath.Join(dir, "train", "clean.csv")
	_, err := execute(t, in, out)
	require.NoError(t, err)

	saveDir := filepath.Join(dir, "predict")
	stdout, err := execute(t, "transform", in,
		"--scaler", filepath.Join(dir, "train", "scaler.pkl"),
		"--out-dir", saveDir, "--save")
	require.NoError(t, err)

	saved := filepath.Join(saveDir, "data_student_preprocessing.csv")
	assert.Contains(t, stdout, saved)
	df, err := data.ReadCSVFile(saved, "")
	require.NoError(t, err)
	assert.Equal(t, dataprep.DefaultFeatureColumns(), df.Names())
	assert.Equal(t, 4, df.Nrow())

	stdout, err = execute(t, "transform", in, "--scaler", filepath.Join(dir, "train", "scaler.pkl"))
	require.NoError(t, err)
	assert.Contains(t, stdout, "not saved")
}

func TestDebugLogsColumnSummaries(t *testing.T) {
	dir := t.TempDir()
	in := writeRaw(t, dir)
	out := filepath.Join(dir, "clean.csv")

	stdout, err := execute(t, in, out)
	require.NoError(t, err)
	assert.NotContains(t, stdout, `msg="scaled column"`)

	t.Setenv("STUDENTPREP_LOG_LEVEL", "debug")
	stdout, err = execute(t, in, out)
	require.NoError(t, err)
	assert.Contains(t, stdout, `msg="scaled column" column=MothersQualification`)
	assert.Contains(t, stdout, "column=CurricularUnits2ndSemGrade")

	stdout, err = execute(t, "transform", in, "--scaler", filepath.Join(dir, "scaler.pkl"))
	require.NoError(t, err)
	assert.Contains(t, stdout, `msg="scaled column" column=FathersOccupation`)
}

func TestWrongArgumentCount(t *testing.T) {
	for _, args := range [][]string{{}, {"only.csv"}, {"a.csv", "b.csv", "c.csv"}} {
		stdout, err := execute(t, args...)
		assert.Error(t, err, "%v", args)
		assert.Contains(t, stdout, "Usage:")
	}
}

func TestTransformRequiresScaler(t *testing.T) {
	_, err := execute(t, "transform", "in.csv")
	assert.Error(t, err)
}
