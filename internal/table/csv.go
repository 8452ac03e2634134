package table

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	apperrors "wqcli/internal/errors"
)

// LoadCSV reads a comma-delimited table from path
func LoadCSV(path string) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, apperrors.NewStorageError("open table", err).WithContext("file", path)
	}
	defer file.Close()

	return ReadCSV(path, file)
}

// ReadCSV reads a comma-delimited table from r. source names the input in errors.
func ReadCSV(source string, r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		var perr *csv.ParseError
		if errors.As(err, &perr) && errors.Is(perr.Err, csv.ErrFieldCount) {
			return nil, apperrors.NewParsingError(
				fmt.Sprintf("line %d has an inconsistent column count", perr.Line), err).
				WithContext("file", source).
				WithContext("line", perr.Line)
		}
		return nil, apperrors.NewParsingError("read CSV records", err).WithContext("file", source)
	}

	return FromRecords(source, records)
}
