package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rogerio-castellano/yard-tracker/internal/models"
)

const queryTimeout = 3 * time.Second

const dateLayout = "2006-01-02"

type PostgresClientRepository struct {
	db *sql.DB
}

func NewPostgresClientRepository(db *sql.DB) *PostgresClientRepository {
	return &PostgresClientRepository{db: db}
}

const clientColumns = `id, name, surname, sex, birth_date, cpf, profession, marital_status, created_at,
	zip_code, street, number, district, city, state, country, complement,
	email, ddd, ddi, phone, mobile`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanClient(row rowScanner) (models.Client, error) {
	var c models.Client
	var birth, created time.Time
	err := row.Scan(&c.ID, &c.Name, &c.Surname, &c.Sex, &birth, &c.CPF, &c.Profession, &c.MaritalStatus, &created,
		&c.Address.ZipCode, &c.Address.Street, &c.Address.Number, &c.Address.District, &c.Address.City,
		&c.Address.State, &c.Address.Country, &c.Address.Complement,
		&c.Contact.Email, &c.Contact.DDD, &c.Contact.DDI, &c.Contact.Phone, &c.Contact.Mobile)
	if err != nil {
		return models.Client{}, err
	}
	c.BirthDate = birth.Format(dateLayout)
	c.CreatedAt = created.Format(dateLayout)
	return c, nil
}

func (r *PostgresClientRepository) queryClients(query string, args ...any) ([]models.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	clients := []models.Client{}
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		clients = append(clients, c)
	}
	return clients, rows.Err()
}

func (r *PostgresClientRepository) Create(c models.Client) (models.Client, error) {
	query := `INSERT INTO clients (name, surname, sex, birth_date, cpf, profession, marital_status, created_at,
		zip_code, street, number, district, city, state, country, complement,
		email, ddd, ddi, phone, mobile)
		VALUES ($1, $2, $3, $4, $5, $6, $7, CURRENT_DATE, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
		RETURNING ` + clientColumns
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	row := r.db.QueryRowContext(ctx, query, c.Name, c.Surname, c.Sex, c.BirthDate, c.CPF, c.Profession, c.MaritalStatus,
		c.Address.ZipCode, c.Address.Street, c.Address.Number, c.Address.District, c.Address.City, c.Address.State,
		c.Address.Country, c.Address.Complement,
		c.Contact.Email, c.Contact.DDD, c.Contact.DDI, c.Contact.Phone, c.Contact.Mobile)
	created, err := scanClient(row)
	if err != nil {
		return models.Client{}, translatePgError(err)
	}
	return created, nil
}

func (r *PostgresClientRepository) GetByID(id int) (models.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	c, err := scanClient(r.db.QueryRowContext(ctx, `SELECT `+clientColumns+` FROM clients WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Client{}, ErrNotFound
	}
	return c, err
}

func (r *PostgresClientRepository) GetByCPF(cpf string) (models.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	c, err := scanClient(r.db.QueryRowContext(ctx, `SELECT `+clientColumns+` FROM clients WHERE cpf = $1`, cpf))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Client{}, ErrNotFound
	}
	return c, err
}

func (r *PostgresClientRepository) SearchByName(name string) ([]models.Client, error) {
	return r.queryClients(`SELECT `+clientColumns+` FROM clients WHERE name ILIKE $1 OR surname ILIKE $1 ORDER BY id`, "%"+name+"%")
}

func (r *PostgresClientRepository) Update(c models.Client) (models.Client, error) {
	query := `UPDATE clients SET name = $1, surname = $2, sex = $3, birth_date = $4, cpf = $5, profession = $6,
		marital_status = $7, zip_code = $8, street = $9, number = $10, district = $11, city = $12, state = $13,
		country = $14, complement = $15, email = $16, ddd = $17, ddi = $18, phone = $19, mobile = $20
		WHERE id = $21
		RETURNING ` + clientColumns
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	row := r.db.QueryRowContext(ctx, query, c.Name, c.Surname, c.Sex, c.BirthDate, c.CPF, c.Profession, c.MaritalStatus,
		c.Address.ZipCode, c.Address.Street, c.Address.Number, c.Address.District, c.Address.City, c.Address.State,
		c.Address.Country, c.Address.Complement,
		c.Contact.Email, c.Contact.DDD, c.Contact.DDI, c.Contact.Phone, c.Contact.Mobile, c.ID)
	updated, err := scanClient(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Client{}, ErrNotFound
	}
	if err != nil {
		return models.Client{}, translatePgError(err)
	}
	return updated, nil
}

func (r *PostgresClientRepository) Delete(id int) error {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresClientRepository) Filter(cf ClientFilter) ([]models.Client, int, error) {
	conditions, args, argIdx := clientFilterConditions(cf)

	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	var totalCount int
	countQuery := "SELECT COUNT(*) FROM clients WHERE 1=1" + conditions
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, err
	}

	column, ok := clientSortColumns[cf.SortField]
	if !ok {
		column = "id"
	}
	direction := "ASC"
	if cf.SortDesc {
		direction = "DESC"
	}

	query := `SELECT ` + clientColumns + ` FROM clients WHERE 1=1` + conditions
	query += fmt.Sprintf(" ORDER BY %s %s, id %s", column, direction, direction)

	if cf.Limit != nil && *cf.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIdx)
		args = append(args, *cf.Limit)
		argIdx++
	}
	if cf.Offset != nil && *cf.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argIdx)
		args = append(args, *cf.Offset)
	}

	clients, err := r.queryClients(query, args...)
	if err != nil {
		return nil, 0, err
	}
	return clients, totalCount, nil
}

func clientFilterConditions(cf ClientFilter) (string, []any, int) {
	query := ""
	argIdx := 1
	args := []any{}

	add := func(clause string, value any) {
		query += fmt.Sprintf(clause, argIdx)
		args = append(args, value)
		argIdx++
	}

	if cf.Name != "" {
		add(" AND name ILIKE $%d", "%"+cf.Name+"%")
	}
	if cf.Surname != "" {
		add(" AND surname ILIKE $%d", "%"+cf.Surname+"%")
	}
	if cf.CPF != "" {
		add(" AND cpf = $%d", cf.CPF)
	}
	if cf.Sex != "" {
		add(" AND UPPER(sex) = UPPER($%d)", cf.Sex)
	}
	if cf.Profession != "" {
		add(" AND profession ILIKE $%d", "%"+cf.Profession+"%")
	}
	if cf.MaritalStatus != "" {
		add(" AND marital_status = $%d", cf.MaritalStatus)
	}
	if cf.CreatedFrom != "" {
		add(" AND created_at >= $%d", cf.CreatedFrom)
	}
	if cf.CreatedTo != "" {
		add(" AND created_at <= $%d", cf.CreatedTo)
	}
	if cf.BirthFrom != "" {
		add(" AND birth_date >= $%d", cf.BirthFrom)
	}
	if cf.BirthTo != "" {
		add(" AND birth_date <= $%d", cf.BirthTo)
	}
	if cf.City != "" {
		add(" AND city ILIKE $%d", "%"+cf.City+"%")
	}
	if cf.State != "" {
		add(" AND UPPER(state) = UPPER($%d)", cf.State)
	}
	if cf.Email != "" {
		add(" AND LOWER(email) = LOWER($%d)", cf.Email)
	}
	if cf.Mobile != "" {
		add(" AND mobile = $%d", cf.Mobile)
	}

	return query, args, argIdx
}
