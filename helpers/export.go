package helpers

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/parquet-go/parquet-go"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/spektr-org/teamcharts/engine"
	"github.com/spektr-org/teamcharts/teams"
)

// ============================================================================
// EXPORT — Results and datasets to files
// ============================================================================

// DatasetRow is one bucket in a parquet dataset export.
type DatasetRow struct {
	Dimension  string  `parquet:"dimension"`
	Bucket     string  `parquet:"bucket"`
	Count      int64   `parquet:"count"`
	Percentage float64 `parquet:"percentage"`
}

// DatasetRows flattens a dataset into export rows, in dataset order.
func DatasetRows(d engine.Dimension, ds engine.ChartDataset) []DatasetRow {
	rows := make([]DatasetRow, len(ds.Points))
	for i, p := range ds.Points {
		rows[i] = DatasetRow{
			Dimension:  d.String(),
			Bucket:     p.Label,
			Count:      int64(p.Value),
			Percentage: ds.Percentage(i),
		}
	}
	return rows
}

// WriteDatasetParquet writes the dataset as a parquet file.
func WriteDatasetParquet(w io.Writer, d engine.Dimension, ds engine.ChartDataset) error {
	if err := parquet.Write(w, DatasetRows(d, ds)); err != nil {
		return errors.Wrap(err, "failed to write parquet dataset")
	}
	return nil
}

// ReadDatasetParquet reads rows written by WriteDatasetParquet.
func ReadDatasetParquet(r io.ReaderAt, size int64) ([]DatasetRow, error) {
	rows, err := parquet.Read[DatasetRow](r, size)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read parquet dataset")
	}
	return rows, nil
}

// WriteTeamsParquet stores teams as a parquet file.
func WriteTeamsParquet(w io.Writer, list []teams.Team) error {
	if err := parquet.Write(w, list); err != nil {
		return errors.Wrap(err, "failed to write parquet teams")
	}
	return nil
}

// ReadTeamsParquet loads teams written by WriteTeamsParquet.
func ReadTeamsParquet(r io.ReaderAt, size int64) ([]teams.Team, error) {
	list, err := parquet.Read[teams.Team](r, size)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read parquet teams")
	}
	return list, nil
}

// WriteJSON encodes v as JSON, indented when pretty is set.
func WriteJSON(w io.Writer, v interface{}, pretty bool) error {
	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return errors.Wrap(enc.Encode(v), "failed to encode JSON")
}

// WriteYAML encodes v as YAML using its JSON field names and order.
func WriteYAML(w io.Writer, v interface{}) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return errors.Wrap(err, "failed to encode value")
	}

	var node yaml.Node
	if err := yaml.Unmarshal(raw, &node); err != nil {
		return errors.Wrap(err, "failed to convert JSON to YAML")
	}
	blockStyle(&node)

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&node); err != nil {
		return errors.Wrap(err, "failed to encode YAML")
	}
	if err := enc.Close(); err != nil {
		return errors.Wrap(err, "failed to encode YAML")
	}
	_, err = w.Write(buf.Bytes())
	return errors.Wrap(err, "failed to write YAML")
}

// blockStyle drops the flow and quoting styles the JSON parse leaves behind.
// Strings keep an explicit tag so the encoder re-quotes values like "12".
func blockStyle(n *yaml.Node) {
	if n.Kind == yaml.ScalarNode && n.ShortTag() == "!!str" {
		n.Tag = "!!str"
	}
	n.Style = 0
	for _, c := range n.Content {
		blockStyle(c)
	}
}
