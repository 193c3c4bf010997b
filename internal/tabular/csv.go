package tabular

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/dmatsui/bookkeeping-service/internal/apperr"
)

// CSVParser parses delimited-text statements. The first record is the
// header; banks commonly export with a UTF-8 BOM, which is tolerated.
type CSVParser struct{}

// Format returns the parser name.
func (p *CSVParser) Format() string { return "csv" }

// Parse reads the whole stream and returns normalized rows in file order.
func (p *CSVParser) Parse(r io.Reader) ([]Row, error) {
	br := bufio.NewReader(r)
	if bom, err := br.Peek(3); err == nil && bom[0] == 0xEF && bom[1] == 0xBB && bom[2] == 0xBF {
		br.Discard(3)
	}

	cr := csv.NewReader(br)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: reading header: %v", apperr.ErrParse, err)
	}

	var rows []Row
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", apperr.ErrParse, line, err)
		}

		mapping := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(rec) {
				mapping[col] = rec[i]
			}
		}

		row, ok, err := rowFromRecord(mapping)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if !ok {
			continue
		}
		rows = append(rows, row)
	}
	return rows, nil
}
