// Package export writes transcription history to spreadsheet files.
package export

import (
	"fmt"
	"strconv"
	"time"

	"github.com/tealeg/xlsx"

	"memo-whisper/internal/app/model"
)

// ToExcel writes the given ledger rows to an .xlsx workbook at
// outputFilePath, one row per transcription plus a header row.
func ToExcel(transcriptions []model.Transcription, outputFilePath string) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Transcriptions")
	if err != nil {
		return fmt.Errorf("add sheet: %w", err)
	}

	headerRow := sheet.AddRow()
	headerRow.AddCell().Value = "ID"
	headerRow.AddCell().Value = "Run ID"
	headerRow.AddCell().Value = "Created At"
	headerRow.AddCell().Value = "Input Directory"
	headerRow.AddCell().Value = "File Name"
	headerRow.AddCell().Value = "Output File"
	headerRow.AddCell().Value = "Engine"
	headerRow.AddCell().Value = "Model"
	headerRow.AddCell().Value = "Duration (s)"
	headerRow.AddCell().Value = "Transcription"
	headerRow.AddCell().Value = "Error Message"

	for _, t := range transcriptions {
		row := sheet.AddRow()
		row.AddCell().Value = strconv.FormatInt(t.ID, 10)
		row.AddCell().Value = t.RunID
		row.AddCell().Value = t.CreatedAt.Format(time.RFC3339)
		row.AddCell().Value = t.InputDir
		row.AddCell().Value = t.FileName
		row.AddCell().Value = t.OutputFile
		row.AddCell().Value = t.Engine
		row.AddCell().Value = t.Model
		row.AddCell().Value = strconv.Itoa(t.AudioDuration)
		row.AddCell().Value = t.Text
		row.AddCell().Value = t.ErrorMessage
	}

	if err := file.Save(outputFilePath); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}
