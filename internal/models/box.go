package models

// Box is a single parking spot. Active boxes are shown as status "A", inactive as "I".
type Box struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Active    bool   `json:"active"`
	EntryDate string `json:"entry_date"`
	ExitDate  string `json:"exit_date"`
	Notes     string `json:"notes,omitempty"`
}

func (b Box) GetID() int { return b.ID }

// Status returns the one-letter status code used by the by-status lookup.
func (b Box) Status() string {
	if b.Active {
		return "A"
	}
	return "I"
}
