package handlers

import "github.com/rogerio-castellano/yard-tracker/internal/models"

type ErrorResponse struct {
	Message string `json:"message"`
}

// ValidationErrorResponse maps each offending field to its messages.
type ValidationErrorResponse struct {
	Title  string              `json:"title"`
	Errors map[string][]string `json:"errors"`
}

type Meta struct {
	TotalCount int `json:"total_count"`
}

type TrackingSearchResult struct {
	Data []models.Tracking `json:"data"`
	Meta Meta              `json:"meta,omitempty"`
}

type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type RegisterAsAdminRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type LoginResult struct {
	Token string `json:"token"`
}

type RegisterResult struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

type ImportError struct {
	Row         int    `json:"row"`
	Description string `json:"description"`
}

type ImportVehiclesResult struct {
	ImportedVehiclesCount int           `json:"imported"`
	Errors                []ImportError `json:"errors"`
}

// ParkRequest names the vehicle by plate. BoxID is optional.
type ParkRequest struct {
	Plate string `json:"plate"`
	BoxID *int   `json:"box_id,omitempty"`
}
