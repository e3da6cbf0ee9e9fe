// Package excel lee el informe de ocupación en formato xlsx.
package excel

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/AG-g1/more-house/internal/application/importer"
)

const (
	bookedUnitsSheet = "Booked Units"
	// La cabecera de la hoja está en la fila 6; encima hay título y leyenda.
	headerRowIndex = 5
)

// columnNames cabecera de la hoja -> campo de la fila normalizada.
var columnNames = map[string]func(*importer.BookedUnitRow, string){
	"Name":           func(r *importer.BookedUnitRow, v string) { r.RoomID = v },
	"Floor":          func(r *importer.BookedUnitRow, v string) { r.Floor = v },
	"Sqm":            func(r *importer.BookedUnitRow, v string) { r.Sqm = v },
	"Category":       func(r *importer.BookedUnitRow, v string) { r.Category = v },
	"Rate Agreed":    func(r *importer.BookedUnitRow, v string) { r.WeeklyRate = v },
	"Residents Name": func(r *importer.BookedUnitRow, v string) { r.ResidentName = v },
	"Weeks Booked":   func(r *importer.BookedUnitRow, v string) { r.WeeksBooked = v },
	"Start Date":     func(r *importer.BookedUnitRow, v string) { r.StartDate = v },
	"End Date":       func(r *importer.BookedUnitRow, v string) { r.EndDate = v },
	"Contract Value": func(r *importer.BookedUnitRow, v string) { r.TotalValue = v },
	"Nationality":    func(r *importer.BookedUnitRow, v string) { r.Nationality = v },
	"University":     func(r *importer.BookedUnitRow, v string) { r.University = v },
	"Level of Study": func(r *importer.BookedUnitRow, v string) { r.LevelOfStudy = v },
	"Source":         func(r *importer.BookedUnitRow, v string) { r.Source = v },
	"Lead Source":    func(r *importer.BookedUnitRow, v string) { r.LeadSource = v },
	"Payment Plan":   func(r *importer.BookedUnitRow, v string) { r.PaymentPlan = v },
}

// Reader lee informes de ocupación xlsx desde disco.
type Reader struct{}

var _ importer.SheetReader = (*Reader)(nil)

// NewReader crea el lector.
func NewReader() *Reader {
	return &Reader{}
}

// ReadBookedUnits abre el fichero y devuelve las filas de datos de la hoja
// Booked Units. Las columnas que no aparecen en la cabecera quedan vacías.
func (r *Reader) ReadBookedUnits(path string) ([]importer.BookedUnitRow, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("abrir xlsx: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(bookedUnitsSheet)
	if err != nil {
		return nil, fmt.Errorf("hoja %q: %w", bookedUnitsSheet, err)
	}
	if len(rows) <= headerRowIndex {
		return nil, fmt.Errorf("hoja %q: cabecera no encontrada en la fila %d", bookedUnitsSheet, headerRowIndex+1)
	}

	setters := make(map[int]func(*importer.BookedUnitRow, string))
	for col, name := range rows[headerRowIndex] {
		if set, ok := columnNames[strings.TrimSpace(name)]; ok {
			setters[col] = set
		}
	}
	if len(setters) == 0 {
		return nil, fmt.Errorf("hoja %q: ninguna columna conocida en la cabecera", bookedUnitsSheet)
	}

	var out []importer.BookedUnitRow
	for _, cells := range rows[headerRowIndex+1:] {
		var row importer.BookedUnitRow
		empty := true
		for col, value := range cells {
			set, ok := setters[col]
			if !ok {
				continue
			}
			value = strings.TrimSpace(value)
			if value != "" {
				empty = false
			}
			set(&row, value)
		}
		if empty {
			continue
		}
		out = append(out, row)
	}
	return out, nil
}
