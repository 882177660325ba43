// Package importer reads bulk client uploads in spreadsheet form. Row
// semantics (first column social reason, remainder joined into the
// address) live in the client service; this adapter only extracts cells.
package importer

import (
	"errors"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// ReadClientRows extracts every row of the workbook's first sheet.
func ReadClientRows(r io.Reader) ([][]string, error) {
	wb, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("import xlsx: open workbook: %w", err)
	}
	defer wb.Close()

	sheets := wb.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("import xlsx: workbook has no sheets")
	}

	rows, err := wb.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("import xlsx: read sheet %q: %w", sheets[0], err)
	}

	return rows, nil
}
