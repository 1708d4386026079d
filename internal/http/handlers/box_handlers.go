package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/rogerio-castellano/yard-tracker/internal/models"
)

func boxResource() resource[models.Box] {
	return resource[models.Box]{
		entity:    "box",
		namespace: "boxes",
		repo:      boxRepo,
		validate:  validateBox,
		withID:    func(b models.Box, id int) models.Box { b.ID = id; return b },
		onDelete:  releaseBox,
	}
}

// CreateBoxHandler godoc
// @Summary Register a new box
// @Tags boxes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param box body models.Box true "Box to add"
// @Success 201 {object} models.Box
// @Failure 400 {object} ValidationErrorResponse
// @Router /boxes [post]
func CreateBoxHandler(w http.ResponseWriter, r *http.Request) {
	createEntity(w, r, boxResource())
}

// GetBoxesHandler godoc
// @Summary List all boxes
// @Tags boxes
// @Produce json
// @Success 200 {array} models.Box
// @Router /boxes [get]
func GetBoxesHandler(w http.ResponseWriter, r *http.Request) {
	listCached(w, r, "boxes", "all", "box", boxRepo.GetAll)
}

// GetBoxByIDHandler godoc
// @Summary Get box by ID
// @Tags boxes
// @Produce json
// @Param id path int true "Box ID"
// @Success 200 {object} models.Box
// @Failure 404 {object} ErrorResponse
// @Router /boxes/{id} [get]
func GetBoxByIDHandler(w http.ResponseWriter, r *http.Request) {
	getEntity(w, r, boxResource())
}

// UpdateBoxHandler godoc
// @Summary Update a box
// @Tags boxes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Box ID"
// @Param box body models.Box true "Updated box"
// @Success 200 {object} models.Box
// @Router /boxes/{id} [put]
func UpdateBoxHandler(w http.ResponseWriter, r *http.Request) {
	updateEntity(w, r, boxResource())
}

// DeleteBoxHandler godoc
// @Summary Delete a box
// @Tags boxes
// @Security BearerAuth
// @Param id path int true "Box ID"
// @Success 204 "Deleted successfully"
// @Router /boxes/{id} [delete]
func DeleteBoxHandler(w http.ResponseWriter, r *http.Request) {
	deleteEntity(w, r, boxResource())
}

// SearchBoxesByNameHandler godoc
// @Summary Search boxes by name
// @Tags boxes
// @Produce json
// @Param name query string true "Name fragment"
// @Success 200 {array} models.Box
// @Router /boxes/search-by-name [get]
func SearchBoxesByNameHandler(w http.ResponseWriter, r *http.Request) {
	name, ok := nameQuery(w, r)
	if !ok {
		return
	}
	found, err := boxRepo.SearchByName(name)
	writeList(w, found, err, "box")
}

// GetBoxesByStatusHandler godoc
// @Summary Boxes by status
// @Tags boxes
// @Produce json
// @Param status path string true "A (active) or I (inactive)"
// @Success 200 {array} models.Box
// @Failure 400 {object} ErrorResponse
// @Router /boxes/by-status/{status} [get]
func GetBoxesByStatusHandler(w http.ResponseWriter, r *http.Request) {
	var active bool
	switch strings.ToUpper(chi.URLParam(r, "status")) {
	case "A":
		active = true
	case "I":
	default:
		writeError(w, http.StatusBadRequest, "status must be A or I")
		return
	}
	found, err := boxRepo.GetByStatus(active)
	writeList(w, found, err, "box")
}
