package models

import "strings"

// Address is the postal address attached to a client.
type Address struct {
	ZipCode    string `json:"zip_code"`
	Street     string `json:"street"`
	Number     int    `json:"number"`
	District   string `json:"district"`
	City       string `json:"city"`
	State      string `json:"state"`
	Country    string `json:"country"`
	Complement string `json:"complement,omitempty"`
}

// Contact holds the ways a client can be reached. Phone fields carry digits only.
type Contact struct {
	Email  string `json:"email"`
	DDD    int    `json:"ddd"`
	DDI    int    `json:"ddi"`
	Phone  string `json:"phone,omitempty"`
	Mobile string `json:"mobile"`
}

// Client represents a person renting or owning vehicles parked in the yards.
type Client struct {
	ID            int     `json:"id"`
	Name          string  `json:"name"`
	Surname       string  `json:"surname"`
	Sex           string  `json:"sex"`
	BirthDate     string  `json:"birth_date"`
	CPF           string  `json:"cpf"`
	Profession    string  `json:"profession"`
	MaritalStatus string  `json:"marital_status"`
	CreatedAt     string  `json:"created_at,omitempty"`
	Address       Address `json:"address"`
	Contact       Contact `json:"contact"`
}

func (c Client) GetID() int { return c.ID }

// MaritalStatuses lists the accepted values for Client.MaritalStatus.
var MaritalStatuses = []string{"Solteiro", "Casado", "Divorciado", "Viúvo", "Separado", "União Estável"}

// Digits keeps only the ASCII digits of s, turning a masked CPF, phone or
// zip code into its stored form.
func Digits(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}
