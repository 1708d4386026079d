package handlers

import (
	"net/http"
	"strings"

	"github.com/rogerio-castellano/yard-tracker/internal/models"
	repo "github.com/rogerio-castellano/yard-tracker/internal/repo"
)

func yardResource() resource[models.Yard] {
	return resource[models.Yard]{
		entity:    "yard",
		namespace: "yards",
		repo:      yardRepo,
		validate:  validateYard,
		withID:    func(y models.Yard, id int) models.Yard { y.ID = id; return y },
	}
}

func zoneResource() resource[models.Zone] {
	return resource[models.Zone]{
		entity:    "zone",
		namespace: "zones",
		repo:      zoneRepo,
		validate:  validateZone,
		withID:    func(z models.Zone, id int) models.Zone { z.ID = id; return z },
	}
}

// byDateQuery reads date and type (entry by default) for the by-date lookups.
func byDateQuery(w http.ResponseWriter, r *http.Request) (string, repo.DateKind, bool) {
	q := r.URL.Query()
	date := strings.TrimSpace(q.Get("date"))
	if !validDate(date) {
		writeError(w, http.StatusBadRequest, "date must be formatted as YYYY-MM-DD")
		return "", "", false
	}
	kindStr := strings.ToLower(strings.TrimSpace(q.Get("type")))
	if kindStr == "" {
		kindStr = string(repo.DateEntry)
	}
	kind, err := repo.ParseDateKind(kindStr)
	if err != nil {
		writeError(w, http.StatusBadRequest, "type must be entry or exit")
		return "", "", false
	}
	return date, kind, true
}

func nameQuery(w http.ResponseWriter, r *http.Request) (string, bool) {
	name := strings.TrimSpace(r.URL.Query().Get("name"))
	if name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return "", false
	}
	return name, true
}

// CreateYardHandler godoc
// @Summary Register a new yard
// @Tags yards
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param yard body models.Yard true "Yard to add"
// @Success 201 {object} models.Yard
// @Failure 400 {object} ValidationErrorResponse
// @Router /yards [post]
func CreateYardHandler(w http.ResponseWriter, r *http.Request) {
	createEntity(w, r, yardResource())
}

// GetYardsHandler godoc
// @Summary List all yards
// @Tags yards
// @Produce json
// @Success 200 {array} models.Yard
// @Router /yards [get]
func GetYardsHandler(w http.ResponseWriter, r *http.Request) {
	listCached(w, r, "yards", "all", "yard", yardRepo.GetAll)
}

// GetYardByIDHandler godoc
// @Summary Get yard by ID
// @Tags yards
// @Produce json
// @Param id path int true "Yard ID"
// @Success 200 {object} models.Yard
// @Failure 404 {object} ErrorResponse
// @Router /yards/{id} [get]
func GetYardByIDHandler(w http.ResponseWriter, r *http.Request) {
	getEntity(w, r, yardResource())
}

// UpdateYardHandler godoc
// @Summary Update a yard
// @Tags yards
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Yard ID"
// @Param yard body models.Yard true "Updated yard"
// @Success 200 {object} models.Yard
// @Failure 400 {object} ValidationErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /yards/{id} [put]
func UpdateYardHandler(w http.ResponseWriter, r *http.Request) {
	updateEntity(w, r, yardResource())
}

// DeleteYardHandler godoc
// @Summary Delete a yard
// @Tags yards
// @Security BearerAuth
// @Param id path int true "Yard ID"
// @Success 204 "Deleted successfully"
// @Failure 404 {object} ErrorResponse
// @Router /yards/{id} [delete]
func DeleteYardHandler(w http.ResponseWriter, r *http.Request) {
	deleteEntity(w, r, yardResource())
}

// SearchYardsByNameHandler godoc
// @Summary Search yards by name
// @Tags yards
// @Produce json
// @Param name query string true "Name fragment"
// @Success 200 {array} models.Yard
// @Router /yards/search-by-name [get]
func SearchYardsByNameHandler(w http.ResponseWriter, r *http.Request) {
	name, ok := nameQuery(w, r)
	if !ok {
		return
	}
	found, err := yardRepo.SearchByName(name)
	writeList(w, found, err, "yard")
}

// GetYardsByDateHandler godoc
// @Summary Yards entered or left on a date
// @Tags yards
// @Produce json
// @Param date query string true "Date (YYYY-MM-DD)"
// @Param type query string false "entry (default) or exit"
// @Success 200 {array} models.Yard
// @Failure 400 {object} ErrorResponse
// @Router /yards/by-date [get]
func GetYardsByDateHandler(w http.ResponseWriter, r *http.Request) {
	date, kind, ok := byDateQuery(w, r)
	if !ok {
		return
	}
	found, err := yardRepo.GetByDate(date, kind)
	writeList(w, found, err, "yard")
}

// CreateZoneHandler godoc
// @Summary Register a new zone
// @Tags zones
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param zone body models.Zone true "Zone to add"
// @Success 201 {object} models.Zone
// @Failure 400 {object} ValidationErrorResponse
// @Router /zones [post]
func CreateZoneHandler(w http.ResponseWriter, r *http.Request) {
	createEntity(w, r, zoneResource())
}

// GetZonesHandler godoc
// @Summary List all zones
// @Tags zones
// @Produce json
// @Success 200 {array} models.Zone
// @Router /zones [get]
func GetZonesHandler(w http.ResponseWriter, r *http.Request) {
	listCached(w, r, "zones", "all", "zone", zoneRepo.GetAll)
}

// GetZoneByIDHandler godoc
// @Summary Get zone by ID
// @Tags zones
// @Produce json
// @Param id path int true "Zone ID"
// @Success 200 {object} models.Zone
// @Failure 404 {object} ErrorResponse
// @Router /zones/{id} [get]
func GetZoneByIDHandler(w http.ResponseWriter, r *http.Request) {
	getEntity(w, r, zoneResource())
}

// UpdateZoneHandler godoc
// @Summary Update a zone
// @Tags zones
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Zone ID"
// @Param zone body models.Zone true "Updated zone"
// @Success 200 {object} models.Zone
// @Router /zones/{id} [put]
func UpdateZoneHandler(w http.ResponseWriter, r *http.Request) {
	updateEntity(w, r, zoneResource())
}

// DeleteZoneHandler godoc
// @Summary Delete a zone
// @Tags zones
// @Security BearerAuth
// @Param id path int true "Zone ID"
// @Success 204 "Deleted successfully"
// @Router /zones/{id} [delete]
func DeleteZoneHandler(w http.ResponseWriter, r *http.Request) {
	deleteEntity(w, r, zoneResource())
}

// SearchZonesByNameHandler godoc
// @Summary Search zones by name
// @Tags zones
// @Produce json
// @Param name query string true "Name fragment"
// @Success 200 {array} models.Zone
// @Router /zones/search-by-name [get]
func SearchZonesByNameHandler(w http.ResponseWriter, r *http.Request) {
	name, ok := nameQuery(w, r)
	if !ok {
		return
	}
	found, err := zoneRepo.SearchByName(name)
	writeList(w, found, err, "zone")
}

// GetZonesByDateHandler godoc
// @Summary Zones entered or left on a date
// @Tags zones
// @Produce json
// @Param date query string true "Date (YYYY-MM-DD)"
// @Param type query string false "entry (default) or exit"
// @Success 200 {array} models.Zone
// @Router /zones/by-date [get]
func GetZonesByDateHandler(w http.ResponseWriter, r *http.Request) {
	date, kind, ok := byDateQuery(w, r)
	if !ok {
		return
	}
	found, err := zoneRepo.GetByDate(date, kind)
	writeList(w, found, err, "zone")
}
