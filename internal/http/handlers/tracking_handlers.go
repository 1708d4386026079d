package handlers

import (
	"encoding/csv"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/rogerio-castellano/yard-tracker/internal/models"
	repo "github.com/rogerio-castellano/yard-tracker/internal/repo"
)

// fixTimezone reverses the + to space substitution query decoding applies
// to offsets, e.g. 2025-07-03T17:44:03 02:00.
func fixTimezone(s string) string {
	if len(s) == len(time.RFC3339) && s[len(s)-6] == ' ' {
		return s[:len(s)-6] + "+" + s[len(s)-5:]
	}
	return s
}

func parseTimePtr(s string) (*time.Time, error) {
	s = fixTimezone(s)
	if s == "" {
		return nil, nil
	}
	ts, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, err
	}
	return &ts, nil
}

// trackingFilter reads since/until/offset/limit. It writes a 400 and
// returns false when any of them is malformed.
func trackingFilter(w http.ResponseWriter, r *http.Request) (repo.TrackingFilter, bool) {
	q := r.URL.Query()
	var tf repo.TrackingFilter
	var err error

	if tf.Since, err = parseTimePtr(q.Get("since")); err != nil {
		writeError(w, http.StatusBadRequest, "invalid since date format")
		return tf, false
	}
	if tf.Until, err = parseTimePtr(q.Get("until")); err != nil {
		writeError(w, http.StatusBadRequest, "invalid until date format")
		return tf, false
	}
	if tf.Limit, err = parseIntPtr(q.Get("limit")); err != nil {
		writeError(w, http.StatusBadRequest, "invalid limit format")
		return tf, false
	}
	if tf.Limit != nil && *tf.Limit <= 0 {
		writeError(w, http.StatusBadRequest, "limit must be greater than zero")
		return tf, false
	}
	if tf.Offset, err = parseIntPtr(q.Get("offset")); err != nil {
		writeError(w, http.StatusBadRequest, "invalid offset format")
		return tf, false
	}
	if tf.Offset != nil && *tf.Offset < 0 {
		writeError(w, http.StatusBadRequest, "offset must be zero or positive")
		return tf, false
	}
	return tf, true
}

func existingVehicleID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, ok := pathID(w, r, "vehicle")
	if !ok {
		return 0, false
	}
	if _, err := vehicleRepo.GetByID(id); err != nil {
		writeRepoError(w, err, "vehicle", "fetch")
		return 0, false
	}
	return id, true
}

// LogTrackingHandler godoc
// @Summary Record a tracking point for a vehicle
// @Tags tracking
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Vehicle ID"
// @Param tracking body models.Tracking true "Position reading"
// @Success 201 {object} models.Tracking
// @Failure 400 {object} ValidationErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /vehicles/{id}/tracking [post]
func LogTrackingHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := existingVehicleID(w, r)
	if !ok {
		return
	}

	var t models.Tracking
	if err := readJSON(w, r, &t); err != nil {
		writeError(w, http.StatusBadRequest, "invalid input")
		return
	}
	t.ID = 0
	t.VehicleID = id

	if errs := validateTracking(t); len(errs) > 0 {
		writeValidation(w, errs)
		return
	}

	logged, err := trackingRepo.Log(t)
	if err != nil {
		writeRepoError(w, err, "tracking", "record")
		return
	}
	respond(w, http.StatusCreated, logged)
}

// GetTrackingHandler godoc
// @Summary Get the tracking history of a vehicle
// @Tags tracking
// @Produce json
// @Param id path int true "Vehicle ID"
// @Param since query string false "From this timestamp (RFC3339)"
// @Param until query string false "Until this timestamp (RFC3339)"
// @Param offset query int false "Offset for pagination"
// @Param limit query int false "Limit for pagination"
// @Success 200 {object} TrackingSearchResult
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /vehicles/{id}/tracking [get]
func GetTrackingHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := existingVehicleID(w, r)
	if !ok {
		return
	}
	tf, ok := trackingFilter(w, r)
	if !ok {
		return
	}

	readings, total, err := trackingRepo.GetByVehicleID(id, tf)
	if err != nil {
		writeRepoError(w, err, "tracking", "fetch")
		return
	}
	if readings == nil {
		readings = []models.Tracking{}
	}
	respond(w, http.StatusOK, TrackingSearchResult{Data: readings, Meta: Meta{TotalCount: total}})
}

// ExportTrackingHandler godoc
// @Summary Export the tracking history of a vehicle
// @Tags tracking
// @Produce text/csv, application/json
// @Param id path int true "Vehicle ID"
// @Param format query string true "Export format (csv or json)"
// @Param since query string false "From this timestamp (RFC3339)"
// @Param until query string false "Until this timestamp (RFC3339)"
// @Success 200 {file} file
// @Failure 400 {object} ErrorResponse
// @Router /vehicles/{id}/tracking/export [get]
func ExportTrackingHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := existingVehicleID(w, r)
	if !ok {
		return
	}

	format := r.URL.Query().Get("format")
	if format != "csv" && format != "json" {
		writeError(w, http.StatusBadRequest, "format must be 'csv' or 'json'")
		return
	}
	tf, ok := trackingFilter(w, r)
	if !ok {
		return
	}
	tf.Offset, tf.Limit = nil, nil

	readings, _, err := trackingRepo.GetByVehicleID(id, tf)
	if err != nil {
		writeRepoError(w, err, "tracking", "fetch")
		return
	}

	switch format {
	case "json":
		if readings == nil {
			readings = []models.Tracking{}
		}
		respond(w, http.StatusOK, readings)

	case "csv":
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="tracking.csv"`)

		csvWriter := csv.NewWriter(w)
		_ = csvWriter.Write([]string{"id", "vehicle_id", "ips_x", "ips_y", "ips_z", "latitude", "longitude", "altitude", "created_at"})
		for _, t := range readings {
			_ = csvWriter.Write([]string{
				strconv.Itoa(t.ID),
				strconv.Itoa(t.VehicleID),
				formatFloat(t.IPSX),
				formatFloat(t.IPSY),
				formatFloat(t.IPSZ),
				formatFloat(t.Latitude),
				formatFloat(t.Longitude),
				formatFloat(t.Altitude),
				t.CreatedAt,
			})
		}
		csvWriter.Flush()
		if err := csvWriter.Error(); err != nil {
			logger.Warn("failed to write CSV export", zap.Int("vehicle_id", id), zap.Error(err))
		}
	}
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
