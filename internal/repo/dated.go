package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// DateKind selects which date column a by-date lookup compares against.
type DateKind string

const (
	DateEntry DateKind = "entry"
	DateExit  DateKind = "exit"
)

// ParseDateKind accepts "entry"/"exit" and their original Portuguese spellings.
func ParseDateKind(s string) (DateKind, error) {
	switch s {
	case "entry", "entrada":
		return DateEntry, nil
	case "exit", "saida", "saída":
		return DateExit, nil
	}
	return "", fmt.Errorf("invalid date type %q: must be entry or exit", s)
}

func onDate(entry, exit, date string, kind DateKind) bool {
	if kind == DateExit {
		return exit == date
	}
	return entry == date
}

// datedRow is the column set shared by yards and zones.
type datedRow struct {
	ID        int
	Name      string
	EntryDate string
	ExitDate  string
	Notes     string
}

// datedTable runs the queries shared by the yards and zones tables.
type datedTable struct {
	db    *sql.DB
	table string
}

const datedColumns = `id, name, entry_date, exit_date, notes`

func scanDated(row rowScanner) (datedRow, error) {
	var d datedRow
	var entry, exit time.Time
	if err := row.Scan(&d.ID, &d.Name, &entry, &exit, &d.Notes); err != nil {
		return datedRow{}, err
	}
	d.EntryDate = entry.Format(dateLayout)
	d.ExitDate = exit.Format(dateLayout)
	return d, nil
}

func (t datedTable) list(where string, args ...any) ([]datedRow, error) {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	rows, err := t.db.QueryContext(ctx, fmt.Sprintf("SELECT %s FROM %s %s ORDER BY id", datedColumns, t.table, where), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []datedRow{}
	for rows.Next() {
		d, err := scanDated(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (t datedTable) one(query string, args ...any) (datedRow, error) {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	d, err := scanDated(t.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return datedRow{}, ErrNotFound
	}
	return d, err
}

func (t datedTable) create(d datedRow) (datedRow, error) {
	return t.one(fmt.Sprintf(`INSERT INTO %s (name, entry_date, exit_date, notes) VALUES ($1, $2, $3, $4) RETURNING %s`, t.table, datedColumns),
		d.Name, d.EntryDate, d.ExitDate, d.Notes)
}

func (t datedTable) get(id int) (datedRow, error) {
	return t.one(fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, datedColumns, t.table), id)
}

func (t datedTable) update(d datedRow) (datedRow, error) {
	return t.one(fmt.Sprintf(`UPDATE %s SET name = $1, entry_date = $2, exit_date = $3, notes = $4 WHERE id = $5 RETURNING %s`, t.table, datedColumns),
		d.Name, d.EntryDate, d.ExitDate, d.Notes, d.ID)
}

func (t datedTable) searchByName(name string) ([]datedRow, error) {
	return t.list("WHERE name ILIKE $1", "%"+name+"%")
}

func (t datedTable) byDate(date string, kind DateKind) ([]datedRow, error) {
	column := "entry_date"
	if kind == DateExit {
		column = "exit_date"
	}
	return t.list(fmt.Sprintf("WHERE %s = $1", column), date)
}

func (t datedTable) delete(id int) error {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	res, err := t.db.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, t.table), id)
	if err != nil {
		return err
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func mapRows[T any](conv func(datedRow) T) func([]datedRow, error) ([]T, error) {
	return func(rows []datedRow, err error) ([]T, error) {
		if err != nil {
			return nil, err
		}
		out := make([]T, len(rows))
		for i, r := range rows {
			out[i] = conv(r)
		}
		return out, nil
	}
}
