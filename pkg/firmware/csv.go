package firmware

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// SuffixMode selects how an output filename is decorated before ".csv".
type SuffixMode int

const (
	SuffixNone      SuffixMode = iota
	SuffixDatetime             // ISO datetime, ':' replaced by '.'
	SuffixTimestamp            // unix seconds
)

// OutputPath applies the suffix mode to a report path. The suffix lands
// before the ".csv" extension: report.csv → report_2026-08-30T10.42.07.csv.
func OutputPath(path string, mode SuffixMode, now time.Time) string {
	var suffix string
	switch mode {
	case SuffixDatetime:
		suffix = now.Format("2006-01-02T15.04.05")
	case SuffixTimestamp:
		suffix = fmt.Sprintf("%d", now.Unix())
	default:
		return path
	}
	if strings.HasSuffix(path, ".csv") {
		return strings.TrimSuffix(path, ".csv") + "_" + suffix + ".csv"
	}
	return path + "_" + suffix
}

// Headers computes the header row for a set of records: the union of all
// field keys, in first-seen order.
func Headers[R Record](rows []R) []string {
	var headers []string
	seen := map[string]bool{}
	for _, row := range rows {
		for _, f := range row.Fields() {
			if !seen[f.Key] {
				seen[f.Key] = true
				headers = append(headers, f.Key)
			}
		}
	}
	return headers
}

// WriteReport writes the report CSV: a #-prefixed comment line naming the
// scope, the header row, then one line per record. Fields a row does not
// define (never the case for the built-in row types, but the format allows
// it) render empty.
func WriteReport[R Record](w io.Writer, comment string, rows []R) error {
	headers := Headers(rows)

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"#" + comment}); err != nil {
		return err
	}
	if err := cw.Write(headers); err != nil {
		return err
	}
	for _, row := range rows {
		values := map[string]string{}
		for _, f := range row.Fields() {
			values[f.Key] = f.Value
		}
		line := make([]string, len(headers))
		for i, h := range headers {
			line[i] = values[h]
		}
		if err := cw.Write(line); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// SaveReport writes the report to a file, creating or truncating it.
func SaveReport[R Record](path, comment string, rows []R) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()
	if err := WriteReport(f, comment, rows); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}

// ReadReport reads a report CSV back as one map per data row, keyed by the
// header line. Lines starting with '#' are comments and skipped wherever
// they appear. The first non-comment line is the header.
func ReadReport(r io.Reader) ([]map[string]string, error) {
	var filtered strings.Builder
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "#") {
			continue
		}
		filtered.WriteString(line)
		filtered.WriteByte('\n')
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	cr := csv.NewReader(strings.NewReader(filtered.String()))
	cr.FieldsPerRecord = -1
	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}

	headers := records[0]
	rows := make([]map[string]string, 0, len(records)-1)
	for _, record := range records[1:] {
		row := map[string]string{}
		for i, h := range headers {
			if i < len(record) {
				row[h] = record[i]
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// ReadReportFile reads a report CSV from disk.
func ReadReportFile(path string) ([]map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()
	rows, err := ReadReport(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return rows, nil
}
