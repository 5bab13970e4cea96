// Package export renders feeds as spreadsheets for coordinators working offline.
package export

import (
	"fmt"
	"io"
	"math"
	"time"

	"github.com/UnknownOlympus/foodbridge/internal/feed"
	"github.com/xuri/excelize/v2"
)

// SheetName is the worksheet holding the exported feed.
const SheetName = "Feed"

var headers = []any{
	"Rank", "Kind", "ID", "Title", "Status", "Distance (km)", "Address", "Directions", "Created",
}

var columnWidths = []float64{6, 10, 8, 32, 18, 14, 40, 60, 20}

// WriteFeed writes items, in the order given, as an xlsx workbook to w.
func WriteFeed(w io.Writer, items []feed.Item) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(SheetName)
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}

	sw, err := f.NewStreamWriter(SheetName)
	if err != nil {
		return fmt.Errorf("failed to open stream writer: %w", err)
	}

	for i, width := range columnWidths {
		if err = sw.SetColWidth(i+1, i+1, width); err != nil {
			return fmt.Errorf("failed to size column %d: %w", i+1, err)
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	if err = sw.SetRow("A1", headers, excelize.RowOpts{StyleID: bold}); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, item := range items {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err = sw.SetRow(cell, row(i+1, item)); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if err = sw.Flush(); err != nil {
		return fmt.Errorf("failed to flush sheet: %w", err)
	}

	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	if err = f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func row(rank int, item feed.Item) []any {
	var distance any = ""
	if item.DistanceKm != nil {
		distance = math.Round(*item.DistanceKm*100) / 100
	}

	created := ""
	if !item.CreatedAt.IsZero() {
		created = item.CreatedAt.UTC().Format(time.DateTime)
	}

	return []any{
		rank,
		string(item.Kind),
		item.ID,
		item.DisplayTitle(),
		item.StatusLabel,
		distance,
		item.Address,
		item.DirectionsURL,
		created,
	}
}
