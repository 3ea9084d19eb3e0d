package table

import (
	"bytes"
	"context"
	"fmt"

	"github.com/siherrmann/dataTable/model"
)

const (
	EXPORT_FILENAME  = "export-data.csv"
	EXPORT_MIME_TYPE = "text/csv;charset=utf-8"
)

// ArtifactSink persists generated bytes under a file name.
type ArtifactSink interface {
	WriteArtifact(ctx context.Context, name string, mimeType string, data []byte) error
}

// ExportCsv joins the keys of the first record as header and the values of
// every record in the same key order as rows. Values are not quoted, so commas
// or newlines inside a value break the row layout.
func ExportCsv(records []model.Record) []byte {
	if len(records) == 0 {
		return []byte{}
	}

	keys := records[0].Keys()
	buf := bytes.Buffer{}
	writeRow(&buf, keys)
	for _, record := range records {
		values := make([]string, len(keys))
		for i, key := range keys {
			value, _ := record.Get(key)
			values[i] = Stringify(value)
		}
		buf.WriteByte('\n')
		writeRow(&buf, values)
	}
	return buf.Bytes()
}

func writeRow(buf *bytes.Buffer, values []string) {
	for i, value := range values {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(value)
	}
}

// WriteCsv exports records into sink as export-data.csv.
func WriteCsv(ctx context.Context, sink ArtifactSink, records []model.Record) error {
	err := sink.WriteArtifact(ctx, EXPORT_FILENAME, EXPORT_MIME_TYPE, ExportCsv(records))
	if err != nil {
		return fmt.Errorf("error writing %s: %w", EXPORT_FILENAME, err)
	}
	return nil
}
