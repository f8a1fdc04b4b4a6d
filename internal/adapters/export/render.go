package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"

	"spacecore/internal/query"
)

// Render serializes the document in the requested format.
func Render(doc Document, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		return renderJSON(doc)
	case FormatCSV:
		return renderCSV(doc)
	default:
		return nil, fmt.Errorf("unsupported export format %q", format)
	}
}

func renderJSON(doc Document) ([]byte, error) {
	return json.MarshalIndent(doc, "", "  ")
}

// renderCSV emits one section per collection: an entity marker line, the
// header row, then data rows, separated by blank lines.
func renderCSV(doc Document) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	for i, col := range doc.Collections {
		if i > 0 {
			w.Flush()
			if err := w.Error(); err != nil {
				return nil, err
			}
			buf.WriteString("\n")
		}
		if err := w.Write([]string{"#", string(col.Entity)}); err != nil {
			return nil, err
		}
		if err := w.Write(col.Fields); err != nil {
			return nil, err
		}
		for _, record := range col.Records {
			row := make([]string, 0, len(record))
			for _, value := range record {
				row = append(row, query.FormatValue(value))
			}
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
