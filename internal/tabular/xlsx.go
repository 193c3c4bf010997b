package tabular

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/beevik/etree"

	"github.com/dmatsui/bookkeeping-service/internal/apperr"
)

// XLSXParser parses Excel workbooks. An xlsx file is a zip container of
// XML parts; the header lives in worksheet row 1 and data begins at
// row 2. Only the first worksheet is read.
type XLSXParser struct{}

// Format returns the parser name.
func (p *XLSXParser) Format() string { return "xlsx" }

// Parse reads the whole stream and returns normalized rows in sheet order.
func (p *XLSXParser) Parse(r io.Reader) ([]Row, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading spreadsheet: %w", err)
	}

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: not a spreadsheet file: %v", apperr.ErrParse, err)
	}

	shared, err := readSharedStrings(zr)
	if err != nil {
		return nil, err
	}

	sheet, err := firstWorksheet(zr)
	if err != nil {
		return nil, err
	}

	return parseWorksheet(sheet, shared)
}

// readSharedStrings loads the shared-string table, empty if absent.
func readSharedStrings(zr *zip.Reader) ([]string, error) {
	raw, err := readZipPart(zr, "xl/sharedStrings.xml")
	if err != nil {
		return nil, nil
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(raw); err != nil {
		return nil, fmt.Errorf("%w: shared strings: %v", apperr.ErrParse, err)
	}

	var shared []string
	for _, si := range doc.FindElements("//si") {
		var sb strings.Builder
		for _, t := range si.FindElements(".//t") {
			sb.WriteString(t.Text())
		}
		shared = append(shared, sb.String())
	}
	return shared, nil
}

// firstWorksheet returns the XML of the first worksheet part.
func firstWorksheet(zr *zip.Reader) ([]byte, error) {
	var names []string
	for _, f := range zr.File {
		if strings.HasPrefix(f.Name, "xl/worksheets/") && strings.HasSuffix(f.Name, ".xml") {
			names = append(names, f.Name)
		}
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: workbook has no worksheets", apperr.ErrParse)
	}
	sort.Strings(names)
	return readZipPart(zr, names[0])
}

func readZipPart(zr *zip.Reader, name string) ([]byte, error) {
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("opening %s: %w", name, err)
		}
		defer rc.Close()
		return io.ReadAll(rc)
	}
	return nil, fmt.Errorf("part %s not found", name)
}

// parseWorksheet walks the sheet XML and normalizes every data row.
func parseWorksheet(sheet []byte, shared []string) ([]Row, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(sheet); err != nil {
		return nil, fmt.Errorf("%w: worksheet XML: %v", apperr.ErrParse, err)
	}

	xmlRows := doc.FindElements("//sheetData/row")
	if len(xmlRows) < 2 {
		return nil, nil
	}

	header := make(map[int]string)
	for _, c := range xmlRows[0].FindElements("c") {
		col := columnIndex(c.SelectAttrValue("r", ""))
		header[col] = cellValue(c, shared)
	}

	var rows []Row
	for i, xr := range xmlRows[1:] {
		mapping := make(map[string]string, len(header))
		for _, c := range xr.FindElements("c") {
			col := columnIndex(c.SelectAttrValue("r", ""))
			name, ok := header[col]
			if !ok {
				continue
			}
			val := cellValue(c, shared)
			// Native date cells hold a day serial, not text.
			if isDateColumn(name) && c.SelectAttrValue("t", "") == "" {
				if serial, err := strconv.ParseFloat(strings.TrimSpace(val), 64); err == nil {
					val = excelSerialDate(serial)
				}
			}
			mapping[name] = val
		}

		row, ok, err := rowFromRecord(mapping)
		if err != nil {
			return nil, fmt.Errorf("sheet row %d: %w", i+2, err)
		}
		if !ok {
			continue
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// cellValue resolves a cell to its textual value, following the shared
// string table for t="s" cells and inline strings for t="inlineStr".
func cellValue(c *etree.Element, shared []string) string {
	switch c.SelectAttrValue("t", "") {
	case "s":
		v := c.SelectElement("v")
		if v == nil {
			return ""
		}
		idx, err := strconv.Atoi(strings.TrimSpace(v.Text()))
		if err != nil || idx < 0 || idx >= len(shared) {
			return ""
		}
		return shared[idx]
	case "inlineStr":
		var sb strings.Builder
		for _, t := range c.FindElements(".//t") {
			sb.WriteString(t.Text())
		}
		return sb.String()
	default:
		if v := c.SelectElement("v"); v != nil {
			return v.Text()
		}
		return ""
	}
}

// columnIndex converts a cell reference like "B12" to a zero-based
// column number.
func columnIndex(ref string) int {
	idx := 0
	for _, r := range ref {
		if r < 'A' || r > 'Z' {
			break
		}
		idx = idx*26 + int(r-'A') + 1
	}
	return idx - 1
}

func isDateColumn(name string) bool {
	n := strings.ToLower(strings.TrimSpace(name))
	for _, alias := range dateAliases {
		if n == alias {
			return true
		}
	}
	return false
}
