package source

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"surveymatch/internal/survey/models"
	"surveymatch/pkg/platform/sentinel"
)

// DefaultTable holds survey answers when the population lives in PostgreSQL.
const DefaultTable = "survey_participants"

// Postgres reads the reference population from a table with one text column
// per attribute. Rows are read in OrderBy order so labeling is reproducible.
type Postgres struct {
	db      *sql.DB
	table   string
	orderBy string
}

// NewPostgres constructs a PostgreSQL-backed population source.
func NewPostgres(db *sql.DB, table, orderBy string) *Postgres {
	if strings.TrimSpace(table) == "" {
		table = DefaultTable
	}
	if strings.TrimSpace(orderBy) == "" {
		orderBy = "id"
	}
	return &Postgres{db: db, table: table, orderBy: orderBy}
}

func (p *Postgres) query() string {
	return fmt.Sprintf(
		"SELECT age, edu_level, fav_animals, fav_place, gender FROM %s ORDER BY %s",
		pq.QuoteIdentifier(p.table), pq.QuoteIdentifier(p.orderBy),
	)
}

// People loads every row of the table.
func (p *Postgres) People(ctx context.Context) ([]models.Person, error) {
	rows, err := p.db.QueryContext(ctx, p.query())
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "undefined_table" {
			return nil, fmt.Errorf("table %s: %w", p.table, sentinel.ErrNotFound)
		}
		return nil, fmt.Errorf("query population: %w: %v", sentinel.ErrUnavailable, err)
	}
	defer rows.Close()

	var people []models.Person
	n := 0
	for rows.Next() {
		n++
		var a models.Answers
		if err := rows.Scan(&a.Age, &a.EduLevel, &a.FavAnimals, &a.FavPlace, &a.Gender); err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", sentinel.ErrMalformed, n, err)
		}
		person, err := models.NewPerson(a)
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", sentinel.ErrMalformed, n, err)
		}
		people = append(people, person)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate population: %w: %v", sentinel.ErrUnavailable, err)
	}
	return people, nil
}
