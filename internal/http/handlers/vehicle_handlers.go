package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/rogerio-castellano/yard-tracker/internal/models"
	repo "github.com/rogerio-castellano/yard-tracker/internal/repo"
)

func vehicleResource() resource[models.Vehicle] {
	return resource[models.Vehicle]{
		entity:    "vehicle",
		namespace: "vehicles",
		repo:      vehicleRepo,
		validate:  validateVehicle,
		withID: func(v models.Vehicle, id int) models.Vehicle {
			v.ID = id
			v.Plate = normalizePlate(v.Plate)
			return v
		},
		onDelete: releaseVehicle,
	}
}

// CreateVehicleHandler godoc
// @Summary Register a new vehicle
// @Tags vehicles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param vehicle body models.Vehicle true "Vehicle to add"
// @Success 201 {object} models.Vehicle
// @Failure 400 {object} ValidationErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /vehicles [post]
func CreateVehicleHandler(w http.ResponseWriter, r *http.Request) {
	createEntity(w, r, vehicleResource())
}

// GetVehiclesHandler godoc
// @Summary List all vehicles
// @Tags vehicles
// @Produce json
// @Success 200 {array} models.Vehicle
// @Router /vehicles [get]
func GetVehiclesHandler(w http.ResponseWriter, r *http.Request) {
	listCached(w, r, "vehicles", "all", "vehicle", vehicleRepo.GetAll)
}

// GetVehicleByIDHandler godoc
// @Summary Get vehicle by ID
// @Tags vehicles
// @Produce json
// @Param id path int true "Vehicle ID"
// @Success 200 {object} models.Vehicle
// @Failure 404 {object} ErrorResponse
// @Router /vehicles/{id} [get]
func GetVehicleByIDHandler(w http.ResponseWriter, r *http.Request) {
	getEntity(w, r, vehicleResource())
}

// UpdateVehicleHandler godoc
// @Summary Update a vehicle
// @Tags vehicles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Vehicle ID"
// @Param vehicle body models.Vehicle true "Updated vehicle"
// @Success 200 {object} models.Vehicle
// @Failure 400 {object} ValidationErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /vehicles/{id} [put]
func UpdateVehicleHandler(w http.ResponseWriter, r *http.Request) {
	updateEntity(w, r, vehicleResource())
}

// DeleteVehicleHandler godoc
// @Summary Delete a vehicle
// @Tags vehicles
// @Security BearerAuth
// @Param id path int true "Vehicle ID"
// @Success 204 "Deleted successfully"
// @Failure 404 {object} ErrorResponse
// @Router /vehicles/{id} [delete]
func DeleteVehicleHandler(w http.ResponseWriter, r *http.Request) {
	deleteEntity(w, r, vehicleResource())
}

// GetVehicleByPlateHandler godoc
// @Summary Find a vehicle by plate
// @Tags vehicles
// @Produce json
// @Param plate path string true "Plate"
// @Success 200 {object} models.Vehicle
// @Failure 404 {object} ErrorResponse
// @Router /vehicles/by-plate/{plate} [get]
func GetVehicleByPlateHandler(w http.ResponseWriter, r *http.Request) {
	plate := strings.TrimSpace(chi.URLParam(r, "plate"))
	if plate == "" {
		writeError(w, http.StatusBadRequest, "plate is required")
		return
	}
	v, err := vehicleRepo.GetByPlate(plate)
	if err != nil {
		writeRepoError(w, err, "vehicle", "fetch")
		return
	}
	respond(w, http.StatusOK, v)
}

// SearchVehiclesByModelHandler godoc
// @Summary Search vehicles by model
// @Tags vehicles
// @Produce json
// @Param model query string true "Model fragment"
// @Success 200 {array} models.Vehicle
// @Failure 400 {object} ErrorResponse
// @Router /vehicles/search-by-model [get]
func SearchVehiclesByModelHandler(w http.ResponseWriter, r *http.Request) {
	model := strings.TrimSpace(r.URL.Query().Get("model"))
	if model == "" {
		writeError(w, http.StatusBadRequest, "model is required")
		return
	}
	found, err := vehicleRepo.SearchByModel(model)
	writeList(w, found, err, "vehicle")
}

// GetVehicleLocationHandler godoc
// @Summary Current location of a vehicle
// @Description Returns the vehicle together with its most recent tracking point, if any.
// @Tags vehicles
// @Produce json
// @Param id path int true "Vehicle ID"
// @Success 200 {object} models.VehicleLocation
// @Failure 404 {object} ErrorResponse
// @Router /vehicles/{id}/location [get]
func GetVehicleLocationHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "vehicle")
	if !ok {
		return
	}
	v, err := vehicleRepo.GetByID(id)
	if err != nil {
		writeRepoError(w, err, "vehicle", "fetch")
		return
	}

	loc := models.VehicleLocation{
		VehicleID:    v.ID,
		Plate:        v.Plate,
		Model:        v.Model,
		Manufacturer: v.Manufacturer,
		QueriedAt:    time.Now().UTC().Format(time.RFC3339),
	}
	latest, err := trackingRepo.Latest(id)
	switch {
	case err == nil:
		loc.LastTracking = &latest
	case !errors.Is(err, repo.ErrNotFound):
		writeRepoError(w, err, "tracking", "fetch")
		return
	}
	respond(w, http.StatusOK, loc)
}
