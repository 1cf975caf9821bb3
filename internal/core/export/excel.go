package export

import (
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"
)

// ExcelExporter renders a snapshot as an .xlsx workbook
type ExcelExporter struct {
	sheetName string
}

func NewExcelExporter() *ExcelExporter {
	return &ExcelExporter{sheetName: "Sheet1"}
}

func (e *ExcelExporter) Export(data *Data, writer io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	rowIndex := 1
	if data.Title != "" {
		f.SetCellValue(e.sheetName, fmt.Sprintf("A%d", rowIndex), data.Title)
		titleStyle, _ := f.NewStyle(&excelize.Style{
			Font: &excelize.Font{Bold: true, Size: 14},
		})
		f.SetCellStyle(e.sheetName, fmt.Sprintf("A%d", rowIndex), fmt.Sprintf("A%d", rowIndex), titleStyle)
		rowIndex += 2
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"4472C4"}},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	headerRow := rowIndex
	for colIndex, header := range data.Headers {
		cell := columnNumberToName(colIndex+1) + strconv.Itoa(rowIndex)
		f.SetCellValue(e.sheetName, cell, header)
		f.SetCellStyle(e.sheetName, cell, cell, headerStyle)
	}
	rowIndex++

	for _, row := range data.Rows {
		for colIndex, value := range row {
			cell := columnNumberToName(colIndex+1) + strconv.Itoa(rowIndex)
			f.SetCellValue(e.sheetName, cell, value)
		}
		rowIndex++
	}

	// Freeze the header row
	f.SetPanes(e.sheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      headerRow,
		TopLeftCell: fmt.Sprintf("A%d", headerRow+1),
		ActivePane:  "bottomLeft",
	})

	if len(data.Headers) > 0 {
		lastCol := columnNumberToName(len(data.Headers))
		f.AutoFilter(e.sheetName, fmt.Sprintf("A%d:%s%d", headerRow, lastCol, headerRow+len(data.Rows)), nil)
	}

	if err := f.Write(writer); err != nil {
		return fmt.Errorf("failed to write Excel file: %w", err)
	}

	return nil
}

func (e *ExcelExporter) GetContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

func (e *ExcelExporter) GetFileExtension() string {
	return ".xlsx"
}

// columnNumberToName converts a column number to its Excel name
// (1 -> A, 27 -> AA)
func columnNumberToName(col int) string {
	name := ""
	for col > 0 {
		col--
		name = string(rune('A'+(col%26))) + name
		col /= 26
	}
	return name
}
