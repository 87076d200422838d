package infra

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Tabular decoding for bulk imports. Both formats produce the same shape: an
// ordered slice of {header -> cell} maps, one per data row, so the importer
// can number errors by spreadsheet row (data row i maps to sheet row i+2).

var ErrArchivoVacio = errors.New("el archivo está vacío")

// DecodificarTabla decodes an .xlsx or .csv upload into row maps. The first
// row is the header; cells beyond the header width are dropped, missing
// trailing cells simply leave their key unset.
func DecodificarTabla(data []byte, filename string) ([]map[string]string, error) {
	if strings.HasSuffix(strings.ToLower(filename), ".csv") {
		return decodificarCSV(data)
	}
	return decodificarXLSX(data)
}

func decodificarXLSX(data []byte) ([]map[string]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("no se pudo leer el archivo Excel: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrArchivoVacio
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, err
	}
	return mapearFilas(rows), nil
}

func decodificarCSV(data []byte) ([]map[string]string, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1 // tolerate ragged rows, like the xlsx path
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("no se pudo leer el archivo CSV: %w", err)
	}
	return mapearFilas(rows), nil
}

func mapearFilas(rows [][]string) []map[string]string {
	if len(rows) < 2 {
		return nil
	}
	header := rows[0]
	for i, h := range header {
		header[i] = strings.TrimSpace(h)
	}

	filas := make([]map[string]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		fila := make(map[string]string, len(header))
		for i, h := range header {
			if h == "" || i >= len(row) {
				continue
			}
			fila[h] = row[i]
		}
		filas = append(filas, fila)
	}
	return filas
}

// ── Plantillas ───────────────────────────────────────────────────────────────

// XLSXContentType is the MIME type served with generated templates.
const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// PlantillaBonos emits the example import sheet for bonos: fixed header
// cliente / dni / tipo_documento / telefono plus two sample rows.
func PlantillaBonos() ([]byte, error) {
	return generarPlantilla("Bonos",
		[][]interface{}{
			{"cliente", "dni", "tipo_documento", "telefono"},
			{"Juan Pérez", "12345678", "DNI", "999888777"},
			{"María García", "87654321", "DNI", "988777666"},
		},
		[]float64{20, 12, 18, 12},
	)
}

// PlantillaUsuarios emits the example import sheet for usuarios.
func PlantillaUsuarios() ([]byte, error) {
	return generarPlantilla("Usuarios",
		[][]interface{}{
			{"nombre", "email", "password", "rol"},
			{"Juan Pérez", "juan.perez@example.com", "cambiar123", "user"},
			{"Ana Torres", "ana.torres@example.com", "cambiar123", "admin"},
		},
		[]float64{20, 28, 14, 8},
	)
}

func generarPlantilla(hoja string, filas [][]interface{}, anchos []float64) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", hoja); err != nil {
		return nil, err
	}
	for i, fila := range filas {
		cell := fmt.Sprintf("A%d", i+1)
		if err := f.SetSheetRow(hoja, cell, &fila); err != nil {
			return nil, err
		}
	}
	for i, ancho := range anchos {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetColWidth(hoja, col, col, ancho); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
