package handlers

import (
	"cmp"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/rogerio-castellano/yard-tracker/internal/models"
	repo "github.com/rogerio-castellano/yard-tracker/internal/repo"
)

// mapColumns is the width of the yard map grid.
const mapColumns = 5

func normalizePlate(plate string) string {
	return strings.ToUpper(strings.TrimSpace(plate))
}

// releaseVehicle frees the box held by a deleted vehicle.
func releaseVehicle(id int) {
	p, err := parkingRepo.GetByVehicle(id)
	if err == nil {
		err = parkingRepo.Release(p.BoxID)
	}
	if err != nil && !errors.Is(err, repo.ErrNotFound) {
		logger.Warn("could not release parking", zap.Int("vehicle_id", id), zap.Error(err))
	}
}

func releaseBox(id int) {
	if err := parkingRepo.Release(id); err != nil && !errors.Is(err, repo.ErrNotFound) {
		logger.Warn("could not release parking", zap.Int("box_id", id), zap.Error(err))
	}
}

// freeBox picks the requested box, or the active box with the lowest id
// that nobody occupies. It writes the error response and returns false
// when no box can be used.
func freeBox(w http.ResponseWriter, wanted *int) (models.Box, bool) {
	if wanted != nil {
		box, err := boxRepo.GetByID(*wanted)
		if err != nil {
			writeRepoError(w, err, "box", "fetch")
			return models.Box{}, false
		}
		if !box.Active {
			writeError(w, http.StatusConflict, fmt.Sprintf("box %d is inactive", box.ID))
			return models.Box{}, false
		}
		_, err = parkingRepo.GetByBox(box.ID)
		switch {
		case err == nil:
			writeError(w, http.StatusConflict, fmt.Sprintf("box %d is already occupied", box.ID))
			return models.Box{}, false
		case !errors.Is(err, repo.ErrNotFound):
			writeRepoError(w, err, "parking", "fetch")
			return models.Box{}, false
		}
		return box, true
	}

	active, err := boxRepo.GetByStatus(true)
	if err != nil {
		writeRepoError(w, err, "box", "fetch")
		return models.Box{}, false
	}
	taken, err := parkingRepo.GetAll()
	if err != nil {
		writeRepoError(w, err, "parking", "fetch")
		return models.Box{}, false
	}
	slices.SortFunc(active, func(a, b models.Box) int { return cmp.Compare(a.ID, b.ID) })
	for _, box := range active {
		if !slices.ContainsFunc(taken, func(p models.Parking) bool { return p.BoxID == box.ID }) {
			return box, true
		}
	}
	writeError(w, http.StatusConflict, "no free boxes")
	return models.Box{}, false
}

// ParkVehicleHandler godoc
// @Summary Park a vehicle
// @Description Places the vehicle in the requested box, or in the first free active box when box_id is omitted.
// @Tags parking
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ParkRequest true "Plate and optional box"
// @Success 201 {object} models.Parking
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /parking/park [post]
func ParkVehicleHandler(w http.ResponseWriter, r *http.Request) {
	var req ParkRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid input")
		return
	}
	plate := normalizePlate(req.Plate)
	if plate == "" {
		writeError(w, http.StatusBadRequest, "plate is required")
		return
	}

	v, err := vehicleRepo.GetByPlate(plate)
	if err != nil {
		writeRepoError(w, err, "vehicle", "fetch")
		return
	}
	current, err := parkingRepo.GetByVehicle(v.ID)
	switch {
	case err == nil:
		writeError(w, http.StatusConflict, fmt.Sprintf("vehicle %s is already parked in box %d", v.Plate, current.BoxID))
		return
	case !errors.Is(err, repo.ErrNotFound):
		writeRepoError(w, err, "parking", "fetch")
		return
	}

	box, ok := freeBox(w, req.BoxID)
	if !ok {
		return
	}
	parked, err := parkingRepo.Park(models.Parking{BoxID: box.ID, VehicleID: v.ID})
	if err != nil {
		writeRepoError(w, err, "parking", "create")
		return
	}
	parked.BoxName, parked.Plate = box.Name, v.Plate

	audit(r, "vehicle", "parked", v.ID)
	respond(w, http.StatusCreated, parked)
}

// ReleaseBoxHandler godoc
// @Summary Release a box
// @Tags parking
// @Security BearerAuth
// @Param id path int true "Box ID"
// @Success 204 "Released"
// @Failure 404 {object} ErrorResponse
// @Router /parking/release/{id} [post]
func ReleaseBoxHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "box")
	if !ok {
		return
	}
	if err := parkingRepo.Release(id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			writeError(w, http.StatusNotFound, fmt.Sprintf("box %d is not occupied", id))
			return
		}
		writeRepoError(w, err, "parking", "delete")
		return
	}
	audit(r, "box", "released", id)
	w.WriteHeader(http.StatusNoContent)
}

// GetParkingByPlateHandler godoc
// @Summary Find the box a vehicle is parked in
// @Tags parking
// @Produce json
// @Param plate path string true "Plate"
// @Success 200 {object} models.Parking
// @Failure 404 {object} ErrorResponse
// @Router /parking/by-plate/{plate} [get]
func GetParkingByPlateHandler(w http.ResponseWriter, r *http.Request) {
	plate := normalizePlate(chi.URLParam(r, "plate"))
	if plate == "" {
		writeError(w, http.StatusBadRequest, "plate is required")
		return
	}
	v, err := vehicleRepo.GetByPlate(plate)
	if err != nil {
		writeRepoError(w, err, "vehicle", "fetch")
		return
	}
	p, err := parkingRepo.GetByVehicle(v.ID)
	if errors.Is(err, repo.ErrNotFound) {
		writeError(w, http.StatusNotFound, fmt.Sprintf("vehicle %s is not parked", v.Plate))
		return
	}
	if err != nil {
		writeRepoError(w, err, "parking", "fetch")
		return
	}
	box, err := boxRepo.GetByID(p.BoxID)
	if err != nil {
		writeRepoError(w, err, "box", "fetch")
		return
	}
	p.BoxName, p.Plate = box.Name, v.Plate
	respond(w, http.StatusOK, p)
}

// GetParkingMapHandler godoc
// @Summary Box occupancy map
// @Description Every box in id order with the plate parked in it, or null when free.
// @Tags parking
// @Produce json
// @Success 200 {object} models.ParkingMap
// @Router /parking/map [get]
func GetParkingMapHandler(w http.ResponseWriter, r *http.Request) {
	boxes, err := boxRepo.GetAll()
	if err != nil {
		writeRepoError(w, err, "box", "fetch")
		return
	}
	parked, err := parkingRepo.GetAll()
	if err != nil {
		writeRepoError(w, err, "parking", "fetch")
		return
	}

	plates := make(map[int]string, len(parked))
	for _, p := range parked {
		v, err := vehicleRepo.GetByID(p.VehicleID)
		if errors.Is(err, repo.ErrNotFound) {
			continue
		}
		if err != nil {
			writeRepoError(w, err, "vehicle", "fetch")
			return
		}
		plates[p.BoxID] = v.Plate
	}

	slices.SortFunc(boxes, func(a, b models.Box) int { return cmp.Compare(a.ID, b.ID) })
	out := models.ParkingMap{Cols: mapColumns, Boxes: make([]models.BoxSlot, 0, len(boxes))}
	out.Rows = (len(boxes) + mapColumns - 1) / mapColumns
	for _, b := range boxes {
		slot := models.BoxSlot{Box: b}
		if plate, ok := plates[b.ID]; ok {
			slot.Plate = &plate
		}
		out.Boxes = append(out.Boxes, slot)
	}
	respond(w, http.StatusOK, out)
}
