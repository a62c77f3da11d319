package loader

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// LoadCSV loads a raw table from a CSV file.
func LoadCSV(path string) (*RawTable, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, err
	}
	defer f.Close()

	return ReadCSV(f)
}

// ReadCSV loads a raw table from CSV data. The notes DataBank appends after
// the table are dropped; a short row that still names a country is a
// truncated record and makes the input malformed.
func ReadCSV(r io.Reader) (*RawTable, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: empty input", ErrMalformed)
	}

	records = trimTrailer(records)
	width := len(records[0])
	for i, rec := range records {
		if len(rec) != width {
			return nil, fmt.Errorf("%w: line %d has %d fields, header has %d", ErrMalformed, i+1, len(rec), width)
		}
	}

	return fromRecords(records)
}

// trimTrailer drops trailing records that cannot be data: blank rows and
// short note rows without both Country Name and Country Code.
func trimTrailer(records [][]string) [][]string {
	width := len(records[0])
	end := len(records)
	for end > 1 {
		rec := records[end-1]
		if isBlank(rec) || (len(rec) < width && !namesCountry(rec)) {
			end--
			continue
		}
		break
	}
	return records[:end]
}

// namesCountry reports whether the first two fields, Country Name and
// Country Code in a DataBank export, are both filled.
func namesCountry(rec []string) bool {
	return len(rec) >= 2 && strings.TrimSpace(rec[0]) != "" && strings.TrimSpace(rec[1]) != ""
}

func isBlank(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
