package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/consultavoz/backend/internal/model/profile"
)

// ErrNotFound indicates the identifier matched no usuarios row.
var ErrNotFound = errors.New("no usuarios rows for identifier")

// Repository wraps the single read query this service issues against the
// usuarios table. The caller owns the *sql.DB lifecycle.
type Repository struct {
	db *sql.DB
}

// NewRepository constructs a Repository from an open connection pool.
func NewRepository(db *sql.DB) *Repository { return &Repository{db: db} }

// FindByIDGeneral returns every usuarios row matching the identifier, in the
// order the store yields them. The list columns may hold JSON-encoded
// strings; they are normalized here so callers always see decoded lists.
func (r *Repository) FindByIDGeneral(ctx context.Context, idGeneral string) ([]profile.Profile, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT idgeneral, primernombre, profesionuoficio, antecedentesfamiliares, encuestasalud
         FROM usuarios
         WHERE "idgeneral" = $1`, idGeneral)
	if err != nil {
		return nil, fmt.Errorf("query usuarios: %w", err)
	}
	defer rows.Close()

	var profiles []profile.Profile
	for rows.Next() {
		var (
			p                   profile.Profile
			oficio              sql.NullString
			antecedentes, salud sql.NullString
		)
		if err := rows.Scan(&p.IDGeneral, &p.PrimerNombre, &oficio, &antecedentes, &salud); err != nil {
			return nil, fmt.Errorf("scan usuarios row: %w", err)
		}
		p.ProfesionUOficio = oficio.String
		p.AntecedentesFamiliares = profile.ParseList(antecedentes.String)
		p.EncuestaSalud = profile.ParseList(salud.String)
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate usuarios rows: %w", err)
	}
	if len(profiles) == 0 {
		return nil, ErrNotFound
	}
	return profiles, nil
}
