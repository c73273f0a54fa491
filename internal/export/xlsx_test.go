package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/mlindemann/menucard-importer/internal/menu"
)

func TestRenderXLSX_RoundTrip(t *testing.T) {
	items := []menu.ItemRecord{
		{Name: "Cola 0,33l", Quantity: 1, Price: 250, Warengruppe: "Getränke",
			Hauptgruppe: "THEKE", Steuersatz: 19, Ordergruppe: "THEKE", AusserHaus: 0},
		{Name: "Schnitzel", Quantity: 1, Price: 1290, Warengruppe: "Hauptgerichte",
			Hauptgruppe: "KÜCHE", Steuersatz: 7, Ordergruppe: "KÜCHE WARM", AusserHaus: 1},
	}

	data, err := RenderXLSX(items, nil)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Menu")
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "Name", rows[0][0])
	assert.Equal(t, "Cola 0,33l", rows[1][0])
	assert.Equal(t, "250", rows[1][2])
	assert.Equal(t, "Schnitzel", rows[2][0])
	assert.Equal(t, "KÜCHE WARM", rows[2][6])
}

func TestRenderXLSX_EmptyItems(t *testing.T) {
	data, err := RenderXLSX(nil, nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Menu")
	require.NoError(t, err)
	require.Len(t, rows, 1, "header only")
}
