package utils

import (
	"encoding/csv"
	"io"
)

// ParseCSV reads all records from r. The roster import feeds uploaded
// name,group files through here; rows are returned untrimmed.
func ParseCSV(r io.Reader) ([][]string, error) {
	return csv.NewReader(r).ReadAll()
}
