package export_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Flaque/filet"
	"github.com/UnknownOlympus/foodbridge/internal/export"
	"github.com/UnknownOlympus/foodbridge/internal/feed"
	"github.com/UnknownOlympus/foodbridge/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteFeed(t *testing.T) {
	defer filet.CleanUp(t)
	dir := filet.TmpDir(t, "")

	distance := 2.5
	items := []feed.Item{
		{
			Listing: models.Listing{
				ID:        1,
				Kind:      models.KindDonation,
				Title:     "Bread",
				Address:   "1 Main St",
				CreatedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
			},
			DistanceKm:    &distance,
			StatusLabel:   "APPROVED",
			DirectionsURL: "https://www.google.com/maps/dir/?api=1&destination=1+Main+St",
		},
		{
			Listing:     models.Listing{ID: 2, Kind: models.KindRequest, FoodType: "Rice"},
			StatusLabel: "PENDING",
		},
	}

	path := filepath.Join(dir, "feed.xlsx")
	out, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, export.WriteFeed(out, items))
	require.NoError(t, out.Close())

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{export.SheetName}, f.GetSheetList())

	rows, err := f.GetRows(export.SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "Rank", rows[0][0])
	assert.Equal(t, "Created", rows[0][8])
	assert.Equal(t, []string{
		"1", "donation", "1", "Bread", "APPROVED", "2.5", "1 Main St",
		"https://www.google.com/maps/dir/?api=1&destination=1+Main+St", "2024-01-02 03:04:05",
	}, rows[1])
	assert.Equal(t, "Rice", rows[2][3])
	assert.Equal(t, "PENDING", rows[2][4])
}

func TestWriteFeed_Empty(t *testing.T) {
	defer filet.CleanUp(t)
	path := filepath.Join(filet.TmpDir(t, ""), "empty.xlsx")

	out, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, export.WriteFeed(out, nil))
	require.NoError(t, out.Close())

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(export.SheetName)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
