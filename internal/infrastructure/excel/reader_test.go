package excel

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// writeFixture genera un xlsx con la estructura real del informe: título y
// leyenda en las primeras filas, cabecera en la fila 6 y datos debajo.
func writeFixture(t *testing.T) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	_, err := f.NewSheet(bookedUnitsSheet)
	require.NoError(t, err)

	require.NoError(t, f.SetCellValue(bookedUnitsSheet, "A1", "More House - Occupancy Report"))

	header := []string{"Count", "Name", "Floor", "Sqm", "Category", "Rate Agreed",
		"Residents Name", "Start Date", "End Date", "Contract Value", "Payment Plan"}
	require.NoError(t, f.SetSheetRow(bookedUnitsSheet, "A6", &header))

	require.NoError(t, f.SetSheetRow(bookedUnitsSheet, "A7", &[]any{
		1, "2.1", "2", 18.5, "Standard", 400, "Ana Pérez", "2026-01-01", "2026-06-30", 10400, "Installments",
	}))
	require.NoError(t, f.SetSheetRow(bookedUnitsSheet, "A8", &[]any{
		2, "2.2", "2", 20.0, "Deluxe", 450,
	}))

	path := filepath.Join(t.TempDir(), "informe.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestReadBookedUnits(t *testing.T) {
	path := writeFixture(t)

	rows, err := NewReader().ReadBookedUnits(path)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	first := rows[0]
	assert.Equal(t, "2.1", first.RoomID)
	assert.Equal(t, "2", first.Floor)
	assert.Equal(t, "Standard", first.Category)
	assert.Equal(t, "400", first.WeeklyRate)
	assert.Equal(t, "Ana Pérez", first.ResidentName)
	assert.Equal(t, "2026-01-01", first.StartDate)
	assert.Equal(t, "Installments", first.PaymentPlan)

	second := rows[1]
	assert.Equal(t, "2.2", second.RoomID)
	assert.Empty(t, second.ResidentName)
}

func TestReadBookedUnitsMissingFile(t *testing.T) {
	_, err := NewReader().ReadBookedUnits("/no/existe.xlsx")
	assert.Error(t, err)
}

func TestReadBookedUnitsMissingSheet(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	path := filepath.Join(t.TempDir(), "vacio.xlsx")
	require.NoError(t, f.SaveAs(path))

	_, err := NewReader().ReadBookedUnits(path)
	assert.Error(t, err)
}
