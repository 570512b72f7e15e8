package importer

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"agrimitra/entities"
	"agrimitra/pkg/apperr"
	"agrimitra/pkg/market/service"
)

const ExportSheet = "prices"

// FromXLSX reads observations from sheet of the workbook at path. An empty
// sheet name selects the first sheet.
func FromXLSX(path, sheet string) ([]service.ObservationInput, error) {
	x, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer x.Close()
	return readSheet(x, sheet)
}

// ReadXLSX is FromXLSX over an already open stream.
func ReadXLSX(r io.Reader, sheet string) ([]service.ObservationInput, error) {
	x, err := excelize.OpenReader(r)
	if err != nil {
		return nil, apperr.Validation("not a workbook: %v", err)
	}
	defer x.Close()
	return readSheet(x, sheet)
}

func readSheet(x *excelize.File, sheet string) ([]service.ObservationInput, error) {
	if sheet == "" {
		sheet = x.GetSheetName(0)
	}
	rows, err := x.GetRows(sheet)
	if err != nil {
		return nil, apperr.Validation("sheet %q: %v", sheet, err)
	}
	if len(rows) == 0 {
		return nil, apperr.Validation("sheet %q is empty", sheet)
	}
	cols, err := parseHeader(rows[0])
	if err != nil {
		return nil, err
	}

	var out []service.ObservationInput
	for i, rec := range rows[1:] {
		obs, ok, err := cols.row(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		if ok {
			out = append(out, obs)
		}
	}
	return out, nil
}

// ToXLSX writes rows as a single-sheet workbook.
func ToXLSX(w io.Writer, rows []entities.MarketPrice) error {
	x := excelize.NewFile()
	defer x.Close()
	if err := x.SetSheetName(x.GetSheetName(0), ExportSheet); err != nil {
		return err
	}

	header := []any{"crop_name", "region", "min_price", "max_price", "avg_price", "unit", "updated_at"}
	if err := x.SetSheetRow(ExportSheet, "A1", &header); err != nil {
		return err
	}
	for i, mp := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		rec := []any{
			mp.CropName,
			mp.Region,
			mp.MinPrice.InexactFloat64(),
			mp.MaxPrice.InexactFloat64(),
			mp.AvgPrice.InexactFloat64(),
			mp.Unit,
			mp.UpdatedAt.UTC().Format("2006-01-02 15:04:05"),
		}
		if err := x.SetSheetRow(ExportSheet, cell, &rec); err != nil {
			return err
		}
	}
	_, err := x.WriteTo(w)
	return err
}
