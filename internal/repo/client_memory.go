package repo

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"github.com/rogerio-castellano/yard-tracker/internal/models"
)

// InMemoryClientRepository is an in-memory implementation of ClientRepository.
type InMemoryClientRepository struct {
	table *memoryTable[models.Client]
}

// NewInMemoryClientRepository creates a new instance of InMemoryClientRepository.
func NewInMemoryClientRepository() *InMemoryClientRepository {
	return &InMemoryClientRepository{
		table: newMemoryTable(func(c *models.Client, id int) { c.ID = id }),
	}
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

// inDateRange compares YYYY-MM-DD strings, which order lexically.
func inDateRange(date, from, to string) bool {
	if from != "" && date < from {
		return false
	}
	if to != "" && date > to {
		return false
	}
	return true
}

func matchesClientFilter(c models.Client, cf ClientFilter) bool {
	switch {
	case cf.Name != "" && !containsFold(c.Name, cf.Name):
		return false
	case cf.Surname != "" && !containsFold(c.Surname, cf.Surname):
		return false
	case cf.CPF != "" && c.CPF != cf.CPF:
		return false
	case cf.Sex != "" && !strings.EqualFold(c.Sex, cf.Sex):
		return false
	case cf.Profession != "" && !containsFold(c.Profession, cf.Profession):
		return false
	case cf.MaritalStatus != "" && c.MaritalStatus != cf.MaritalStatus:
		return false
	case !inDateRange(c.CreatedAt, cf.CreatedFrom, cf.CreatedTo):
		return false
	case !inDateRange(c.BirthDate, cf.BirthFrom, cf.BirthTo):
		return false
	case cf.City != "" && !containsFold(c.Address.City, cf.City):
		return false
	case cf.State != "" && !strings.EqualFold(c.Address.State, cf.State):
		return false
	case cf.Email != "" && !strings.EqualFold(c.Contact.Email, cf.Email):
		return false
	case cf.Mobile != "" && c.Contact.Mobile != cf.Mobile:
		return false
	}
	return true
}

func compareClients(a, b models.Client, field string) int {
	var c int
	switch field {
	case "name":
		c = cmp.Compare(a.Name, b.Name)
	case "surname":
		c = cmp.Compare(a.Surname, b.Surname)
	case "cpf":
		c = cmp.Compare(a.CPF, b.CPF)
	case "created_at":
		c = cmp.Compare(a.CreatedAt, b.CreatedAt)
	case "birth_date":
		c = cmp.Compare(a.BirthDate, b.BirthDate)
	}
	if c == 0 {
		c = cmp.Compare(a.ID, b.ID)
	}
	return c
}

// Filter returns the requested window of matching clients and the total match count.
func (r *InMemoryClientRepository) Filter(cf ClientFilter) ([]models.Client, int, error) {
	filtered := r.table.find(func(c models.Client) bool { return matchesClientFilter(c, cf) })

	slices.SortStableFunc(filtered, func(a, b models.Client) int {
		c := compareClients(a, b, cf.SortField)
		if cf.SortDesc {
			return -c
		}
		return c
	})

	return window(filtered, cf.Offset, cf.Limit), len(filtered), nil
}

// Create adds a new client to the repository. CPF must be unique. The
// registration date is always today.
func (r *InMemoryClientRepository) Create(client models.Client) (models.Client, error) {
	client.CreatedAt = time.Now().Format(time.DateOnly)
	return r.table.insert(client, func(existing models.Client) bool { return existing.CPF == client.CPF })
}

// GetByID retrieves a client by its ID.
func (r *InMemoryClientRepository) GetByID(id int) (models.Client, error) {
	return r.table.get(id)
}

// GetByCPF retrieves a client by its digits-only CPF.
func (r *InMemoryClientRepository) GetByCPF(cpf string) (models.Client, error) {
	found := r.table.find(func(c models.Client) bool { return c.CPF == cpf })
	if len(found) == 0 {
		return models.Client{}, ErrNotFound
	}
	return found[0], nil
}

// SearchByName returns clients whose name or surname contains name.
func (r *InMemoryClientRepository) SearchByName(name string) ([]models.Client, error) {
	return r.table.find(func(c models.Client) bool {
		return containsFold(c.Name, name) || containsFold(c.Surname, name)
	}), nil
}

// Update modifies an existing client, keeping its registration date.
func (r *InMemoryClientRepository) Update(client models.Client) (models.Client, error) {
	current, err := r.table.get(client.ID)
	if err != nil {
		return models.Client{}, err
	}
	client.CreatedAt = current.CreatedAt
	return r.table.replace(client, func(existing models.Client) bool { return existing.CPF == client.CPF })
}

// Delete removes a client from the repository by its ID.
func (r *InMemoryClientRepository) Delete(id int) error {
	return r.table.remove(id)
}

func (r *InMemoryClientRepository) Count() int {
	return r.table.len()
}

func (r *InMemoryClientRepository) Clear() {
	r.table.clear()
}
