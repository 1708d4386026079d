package models

// Yard is a parking lot ("pátio") where vehicles are kept.
type Yard struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	EntryDate string `json:"entry_date"`
	ExitDate  string `json:"exit_date"`
	Notes     string `json:"notes,omitempty"`
}

func (y Yard) GetID() int { return y.ID }

// Zone is an area inside a yard.
type Zone struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	EntryDate string `json:"entry_date"`
	ExitDate  string `json:"exit_date"`
	Notes     string `json:"notes,omitempty"`
}

func (z Zone) GetID() int { return z.ID }
