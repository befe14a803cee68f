package data

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// ReadCSV loads a headed CSV. statusCol, when non-empty, is always read as
// a string column so labels are never type-inferred.
func ReadCSV(r io.Reader, statusCol string) (dataframe.DataFrame, error) {
	opts := []dataframe.LoadOption{dataframe.HasHeader(true), dataframe.DetectTypes(true)}
	if statusCol != "" {
		opts = append(opts, dataframe.WithTypes(map[string]series.Type{statusCol: series.String}))
	}
	df := dataframe.ReadCSV(bufio.NewReader(r), opts...)
	if df.Err != nil {
		return df, fmt.Errorf("read csv: %w", df.Err)
	}
	return df, nil
}

// ReadCSVFile opens path and calls ReadCSV.
func ReadCSVFile(path, statusCol string) (dataframe.DataFrame, error) {
	f, err := os.Open(path)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()
	return ReadCSV(f, statusCol)
}

// WriteCSV writes df with a header row. Float cells use the shortest
// representation that parses back to the same float64.
func WriteCSV(w io.Writer, df dataframe.DataFrame) error {
	if df.Err != nil {
		return fmt.Errorf("write csv: %w", df.Err)
	}
	bw := bufio.NewWriter(w)
	cw := csv.NewWriter(bw)
	if err := cw.WriteAll(Records(df)); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return bw.Flush()
}

// Records returns the header followed by one string row per frame row.
func Records(df dataframe.DataFrame) [][]string {
	names := df.Names()
	cols := make([][]string, len(names))
	for j, name := range names {
		s := df.Col(name)
		if s.Type() != series.Float {
			cols[j] = s.Records()
			continue
		}
		vals := s.Float()
		cols[j] = make([]string, len(vals))
		for i, v := range vals {
			cols[j][i] = strconv.FormatFloat(v, 'g', -1, 64)
		}
	}
	out := make([][]string, 0, df.Nrow()+1)
	out = append(out, names)
	for i := 0; i < df.Nrow(); i++ {
		row := make([]string, len(cols))
		for j := range cols {
			row[j] = cols[j][i]
		}
		out = append(out, row)
	}
	return out
}

// WriteCSVFile writes df to path, creating the parent directory if absent.
// The file is written in place, a crash can leave it truncated.
func WriteCSVFile(path string, df dataframe.DataFrame) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	if err := WriteCSV(f, df); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
