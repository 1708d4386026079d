package handlers

import (
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/rogerio-castellano/yard-tracker/internal/models"
	repo "github.com/rogerio-castellano/yard-tracker/internal/repo"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
	maxPage         = math.MaxInt / maxPageSize // keeps page*size within an int
)

func clientResource() resource[models.Client] {
	return resource[models.Client]{
		entity:    "client",
		namespace: "clients",
		repo:      clientRepo,
		validate:  validateClient,
		withID:    func(c models.Client, id int) models.Client { c.ID = id; return c },
	}
}

// CreateClientHandler godoc
// @Summary Register a new client
// @Tags clients
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param client body models.Client true "Client to add"
// @Success 201 {object} models.Client
// @Failure 400 {object} ValidationErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /clients [post]
func CreateClientHandler(w http.ResponseWriter, r *http.Request) {
	createEntity(w, r, clientResource())
}

// GetClientByIDHandler godoc
// @Summary Get client by ID
// @Tags clients
// @Produce json
// @Param id path int true "Client ID"
// @Success 200 {object} models.Client
// @Failure 404 {object} ErrorResponse
// @Router /clients/{id} [get]
func GetClientByIDHandler(w http.ResponseWriter, r *http.Request) {
	getEntity(w, r, clientResource())
}

// UpdateClientHandler godoc
// @Summary Update a client
// @Tags clients
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Client ID"
// @Param client body models.Client true "Updated client"
// @Success 200 {object} models.Client
// @Failure 400 {object} ValidationErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /clients/{id} [put]
func UpdateClientHandler(w http.ResponseWriter, r *http.Request) {
	updateEntity(w, r, clientResource())
}

// DeleteClientHandler godoc
// @Summary Delete a client
// @Tags clients
// @Security BearerAuth
// @Param id path int true "Client ID"
// @Success 204 "Deleted successfully"
// @Failure 404 {object} ErrorResponse
// @Router /clients/{id} [delete]
func DeleteClientHandler(w http.ResponseWriter, r *http.Request) {
	deleteEntity(w, r, clientResource())
}

// GetClientByCPFHandler godoc
// @Summary Find a client by CPF
// @Description Formatting characters are ignored, 123.456.789-01 and 12345678901 are the same CPF.
// @Tags clients
// @Produce json
// @Param cpf path string true "CPF"
// @Success 200 {object} models.Client
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /clients/by-cpf/{cpf} [get]
func GetClientByCPFHandler(w http.ResponseWriter, r *http.Request) {
	cpf := models.Digits(chi.URLParam(r, "cpf"))
	if len(cpf) != 11 {
		writeError(w, http.StatusBadRequest, "CPF must have exactly 11 digits")
		return
	}
	c, err := clientRepo.GetByCPF(cpf)
	if err != nil {
		writeRepoError(w, err, "client", "fetch")
		return
	}
	respond(w, http.StatusOK, c)
}

// SearchClientsByNameHandler godoc
// @Summary Search clients by name or surname
// @Tags clients
// @Produce json
// @Param name query string true "Name fragment"
// @Success 200 {array} models.Client
// @Failure 400 {object} ErrorResponse
// @Router /clients/search-by-name [get]
func SearchClientsByNameHandler(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.URL.Query().Get("name"))
	if name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	found, err := clientRepo.SearchByName(name)
	writeList(w, found, err, "client")
}

// pageRequest reads page, size and sort ("field,asc|desc").
func pageRequest(r *http.Request) (page, size int, sortField string, desc bool, msg string) {
	q := r.URL.Query()
	page, size = 0, defaultPageSize

	if s := q.Get("page"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 0 {
			return 0, 0, "", false, "page must be zero or positive"
		}
		if v > maxPage {
			return 0, 0, "", false, "page is too large"
		}
		page = v
	}
	if s := q.Get("size"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v <= 0 {
			return 0, 0, "", false, "size must be greater than zero"
		}
		size = min(v, maxPageSize)
	}

	if s := q.Get("sort"); s != "" {
		field, dir, _ := strings.Cut(s, ",")
		sortField = strings.TrimSpace(field)
		switch strings.ToLower(strings.TrimSpace(dir)) {
		case "", "asc":
		case "desc":
			desc = true
		default:
			return 0, 0, "", false, "sort direction must be asc or desc"
		}
	}
	return page, size, sortField, desc, ""
}

// GetClientsHandler godoc
// @Summary List clients page by page
// @Description Every filter is optional and combined with AND. Text filters match substrings case-insensitively.
// @Tags clients
// @Produce json
// @Param page query int false "Zero-based page number"
// @Param size query int false "Page size (max 100)"
// @Param sort query string false "Sort as field,direction (id, name, surname, cpf, created_at, birth_date)"
// @Param name query string false "Name"
// @Param surname query string false "Surname"
// @Param cpf query string false "CPF"
// @Param sex query string false "Sex (M or F)"
// @Param profession query string false "Profession"
// @Param marital_status query string false "Marital status"
// @Param created_from query string false "Registered on or after (YYYY-MM-DD)"
// @Param created_to query string false "Registered on or before (YYYY-MM-DD)"
// @Param birth_from query string false "Born on or after (YYYY-MM-DD)"
// @Param birth_to query string false "Born on or before (YYYY-MM-DD)"
// @Param city query string false "City"
// @Param state query string false "State"
// @Param email query string false "Email"
// @Param mobile query string false "Mobile"
// @Success 200 {object} models.Page[models.Client]
// @Failure 400 {object} ErrorResponse
// @Router /clients [get]
func GetClientsHandler(w http.ResponseWriter, r *http.Request) {
	page, size, sortField, desc, msg := pageRequest(r)
	if msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	if sortField != "" && !repo.IsClientSortField(sortField) {
		writeError(w, http.StatusBadRequest, "cannot sort clients by "+sortField)
		return
	}

	q := r.URL.Query()
	filter := repo.ClientFilter{
		Name:          q.Get("name"),
		Surname:       q.Get("surname"),
		CPF:           models.Digits(q.Get("cpf")),
		Sex:           q.Get("sex"),
		Profession:    q.Get("profession"),
		MaritalStatus: q.Get("marital_status"),
		CreatedFrom:   q.Get("created_from"),
		CreatedTo:     q.Get("created_to"),
		BirthFrom:     q.Get("birth_from"),
		BirthTo:       q.Get("birth_to"),
		City:          q.Get("city"),
		State:         q.Get("state"),
		Email:         q.Get("email"),
		Mobile:        models.Digits(q.Get("mobile")),
		SortField:     sortField,
		SortDesc:      desc,
	}
	for field, v := range map[string]string{
		"created_from": filter.CreatedFrom, "created_to": filter.CreatedTo,
		"birth_from": filter.BirthFrom, "birth_to": filter.BirthTo,
	} {
		if v != "" && !validDate(v) {
			writeError(w, http.StatusBadRequest, field+" must be formatted as YYYY-MM-DD")
			return
		}
	}

	offset := page * size
	filter.Offset = &offset
	filter.Limit = &size

	listCached(w, r, "clients", q.Encode(), "client", func() (models.Page[models.Client], error) {
		clients, total, err := clientRepo.Filter(filter)
		if err != nil {
			return models.Page[models.Client]{}, err
		}
		return models.NewPage(clients, page, size, total), nil
	})
}
