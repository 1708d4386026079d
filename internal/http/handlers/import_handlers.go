package handlers

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/rogerio-castellano/yard-tracker/internal/models"
	repo "github.com/rogerio-castellano/yard-tracker/internal/repo"
)

var vehicleCSVColumns = []string{"plate", "renavam", "chassis", "manufacturer", "model", "engine", "year", "fuel"}

// parseVehicleCSV maps rows by header name. Only plate and model are mandatory columns.
func parseVehicleCSV(file io.Reader) ([]models.Vehicle, []ImportError, error) {
	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if err != nil {
		return nil, nil, errors.New("invalid CSV header")
	}

	index := map[string]int{}
	for i, h := range headers {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, required := range []string{"plate", "model"} {
		if _, ok := index[required]; !ok {
			return nil, nil, fmt.Errorf("CSV header is missing the %q column", required)
		}
	}

	var rows []models.Vehicle
	var rowErrors []ImportError
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("CSV read error: %v", err)
		}

		field := func(name string) string {
			i, ok := index[name]
			if !ok || i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}

		v := models.Vehicle{
			Plate:        strings.ToUpper(field("plate")),
			Renavam:      field("renavam"),
			Chassis:      field("chassis"),
			Manufacturer: field("manufacturer"),
			Model:        field("model"),
			Engine:       field("engine"),
			Fuel:         field("fuel"),
		}
		if y := field("year"); y != "" {
			year, err := strconv.Atoi(y)
			if err != nil {
				rowErrors = append(rowErrors, ImportError{Row: line, Description: fmt.Sprintf("row %d: invalid year %q", line, y)})
				rows = append(rows, models.Vehicle{})
				continue
			}
			v.Year = year
		}
		rows = append(rows, v)
	}
	return rows, rowErrors, nil
}

func describeErrors(errs fieldErrors) string {
	parts := make([]string, 0, len(errs))
	for _, col := range vehicleCSVColumns {
		for _, msg := range errs[col] {
			parts = append(parts, msg)
		}
	}
	return strings.Join(parts, "; ")
}

// ImportVehiclesHandler godoc
// @Summary Import vehicles via CSV
// @Description Rows are keyed by plate. In skip mode existing plates are reported, in update mode they are overwritten.
// @Tags import
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "CSV file"
// @Param mode query string false "Import mode (skip|update)"
// @Success 200 {object} ImportVehiclesResult
// @Failure 400 {object} ErrorResponse
// @Router /vehicles/import [post]
// @Security BearerAuth
func ImportVehiclesHandler(w http.ResponseWriter, r *http.Request) {
	mode := strings.ToLower(r.URL.Query().Get("mode"))
	if mode != "update" {
		mode = "skip"
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing file")
		return
	}
	defer file.Close()

	records, errorsList, err := parseVehicleCSV(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	failed := map[int]bool{}
	for _, e := range errorsList {
		failed[e.Row] = true
	}

	var imported int
	for i, rec := range records {
		rowNum := i + 2 // header is row 1
		if failed[rowNum] {
			continue
		}

		if errs := validateVehicle(rec); len(errs) > 0 {
			errorsList = append(errorsList, ImportError{Row: rowNum, Description: fmt.Sprintf("row %d: invalid values: %s", rowNum, describeErrors(errs))})
			continue
		}

		existing, err := vehicleRepo.GetByPlate(rec.Plate)
		if err == nil {
			if mode == "skip" {
				errorsList = append(errorsList, ImportError{Row: rowNum, Description: fmt.Sprintf("row %d: vehicle '%s' already exists", rowNum, rec.Plate)})
				continue
			}
			rec.ID = existing.ID
			if _, err := vehicleRepo.Update(rec); err != nil {
				errorsList = append(errorsList, ImportError{Row: rowNum, Description: fmt.Sprintf("row %d: failed to update '%s'", rowNum, rec.Plate)})
				continue
			}
			imported++
			continue
		}
		if !errors.Is(err, repo.ErrNotFound) {
			errorsList = append(errorsList, ImportError{Row: rowNum, Description: fmt.Sprintf("row %d: lookup failed", rowNum)})
			continue
		}

		if _, err := vehicleRepo.Create(rec); err != nil {
			errorsList = append(errorsList, ImportError{Row: rowNum, Description: fmt.Sprintf("row %d: %v", rowNum, err)})
			continue
		}
		imported++
	}

	if imported > 0 {
		invalidate(r.Context(), "vehicles")
	}
	if errorsList == nil {
		errorsList = []ImportError{}
	}
	respond(w, http.StatusOK, ImportVehiclesResult{
		ImportedVehiclesCount: imported,
		Errors:                errorsList,
	})
}
