package handlers

import (
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/rogerio-castellano/yard-tracker/internal/models"
)

var (
	cpfPattern   = regexp.MustCompile(`^\d{11}$`)
	zipPattern   = regexp.MustCompile(`^\d{8}$`)
	digitsOnly   = regexp.MustCompile(`^\d+$`)
	platePattern = regexp.MustCompile(`^[A-Za-z]{3}\d[A-Za-z0-9]\d{2}$`)
)

type fieldErrors map[string][]string

func (e fieldErrors) add(field, msg string) {
	e[field] = append(e[field], msg)
}

func validDate(s string) bool {
	_, err := time.Parse(time.DateOnly, s)
	return err == nil
}

func validateClient(c models.Client) fieldErrors {
	errs := fieldErrors{}
	if strings.TrimSpace(c.Name) == "" {
		errs.add("name", "Name is required")
	}
	if !cpfPattern.MatchString(c.CPF) {
		errs.add("cpf", "CPF must have exactly 11 digits")
	}
	if !validDate(c.BirthDate) {
		errs.add("birth_date", "Birth date must be formatted as YYYY-MM-DD")
	} else if c.BirthDate > time.Now().Format(time.DateOnly) {
		errs.add("birth_date", "Birth date cannot be in the future")
	}
	if c.Sex != "" && c.Sex != "M" && c.Sex != "F" {
		errs.add("sex", "Sex must be M or F")
	}
	if c.MaritalStatus != "" && !slices.Contains(models.MaritalStatuses, c.MaritalStatus) {
		errs.add("marital_status", "Marital status is not recognized")
	}
	if c.Address.ZipCode != "" && !zipPattern.MatchString(c.Address.ZipCode) {
		errs.add("address.zip_code", "Zip code must have exactly 8 digits")
	}
	if c.Contact.Email != "" && !strings.Contains(c.Contact.Email, "@") {
		errs.add("contact.email", "Email is invalid")
	}
	if c.Contact.Mobile != "" && !digitsOnly.MatchString(c.Contact.Mobile) {
		errs.add("contact.mobile", "Mobile must contain digits only")
	}
	return errs
}

func validateVehicle(v models.Vehicle) fieldErrors {
	errs := fieldErrors{}
	if !platePattern.MatchString(v.Plate) {
		errs.add("plate", "Plate must follow the AAA0A00 or AAA0000 format")
	}
	if strings.TrimSpace(v.Model) == "" {
		errs.add("model", "Model is required")
	}
	if v.Year != 0 && (v.Year < 1900 || v.Year > time.Now().Year()+1) {
		errs.add("year", "Year is out of range")
	}
	if v.Fuel != "" && !slices.Contains(models.Fuels, v.Fuel) {
		errs.add("fuel", "Fuel is not recognized")
	}
	return errs
}

// validatePeriod covers yards, zones and boxes, which share name and dates.
func validatePeriod(name, entry, exit string) fieldErrors {
	errs := fieldErrors{}
	if strings.TrimSpace(name) == "" {
		errs.add("name", "Name is required")
	}
	entryOK, exitOK := validDate(entry), validDate(exit)
	if !entryOK {
		errs.add("entry_date", "Entry date must be formatted as YYYY-MM-DD")
	}
	if !exitOK {
		errs.add("exit_date", "Exit date must be formatted as YYYY-MM-DD")
	}
	if entryOK && exitOK && exit < entry {
		errs.add("exit_date", "Exit date cannot be before entry date")
	}
	return errs
}

func validateYard(y models.Yard) fieldErrors { return validatePeriod(y.Name, y.EntryDate, y.ExitDate) }

func validateZone(z models.Zone) fieldErrors { return validatePeriod(z.Name, z.EntryDate, z.ExitDate) }

func validateBox(b models.Box) fieldErrors { return validatePeriod(b.Name, b.EntryDate, b.ExitDate) }

func validateTracking(t models.Tracking) fieldErrors {
	errs := fieldErrors{}
	if t.Latitude < -90 || t.Latitude > 90 {
		errs.add("latitude", "Latitude must be between -90 and 90")
	}
	if t.Longitude < -180 || t.Longitude > 180 {
		errs.add("longitude", "Longitude must be between -180 and 180")
	}
	if t.CreatedAt != "" {
		if _, err := time.Parse(time.RFC3339, t.CreatedAt); err != nil {
			errs.add("created_at", "Created at must be an RFC3339 timestamp")
		}
	}
	return errs
}
