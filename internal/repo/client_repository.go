package repo

import "github.com/rogerio-castellano/yard-tracker/internal/models"

// ClientRepository defines the interface for client data operations.
type ClientRepository interface {
	Create(client models.Client) (models.Client, error)
	GetByID(id int) (models.Client, error)
	GetByCPF(cpf string) (models.Client, error)
	SearchByName(name string) ([]models.Client, error)
	Filter(cf ClientFilter) ([]models.Client, int, error)
	Update(client models.Client) (models.Client, error)
	Delete(id int) error
}
