// Package library manages the user's saved named commands.
package library

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Entry is one saved command. Field names follow the wire contract of the
// accounting backend.
type Entry struct {
	ID      int    `json:"id"`
	Titulo  string `json:"titulo"`
	Comando string `json:"comando"`
}

var ErrNotFound = errors.New("library entry not found")

// Service is the CRUD owner of the assistant_library table. Callers re-list
// after every mutation instead of merging client-side — consistency over
// latency, the collection is small.
type Service struct {
	pool *pgxpool.Pool
}

func NewService(pool *pgxpool.Pool) *Service {
	return &Service{pool: pool}
}

// List returns all entries ordered by title.
func (s *Service) List(ctx context.Context) ([]Entry, error) {
	rows, err := s.pool.Query(ctx,
		"SELECT id, titulo, comando FROM assistant_library ORDER BY titulo")
	if err != nil {
		return nil, fmt.Errorf("failed to list library: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Titulo, &e.Comando); err != nil {
			return nil, fmt.Errorf("failed to scan library entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Create saves a new entry and returns it with its assigned ID.
func (s *Service) Create(ctx context.Context, titulo, comando string) (*Entry, error) {
	titulo = strings.TrimSpace(titulo)
	comando = strings.TrimSpace(comando)
	if titulo == "" || comando == "" {
		return nil, errors.New("titulo and comando are required")
	}

	e := &Entry{Titulo: titulo, Comando: comando}
	err := s.pool.QueryRow(ctx,
		"INSERT INTO assistant_library (titulo, comando) VALUES ($1, $2) RETURNING id",
		titulo, comando,
	).Scan(&e.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to create library entry: %w", err)
	}
	return e, nil
}

// Update replaces both fields of an existing entry.
func (s *Service) Update(ctx context.Context, id int, titulo, comando string) error {
	titulo = strings.TrimSpace(titulo)
	comando = strings.TrimSpace(comando)
	if titulo == "" || comando == "" {
		return errors.New("titulo and comando are required")
	}

	tag, err := s.pool.Exec(ctx,
		"UPDATE assistant_library SET titulo = $2, comando = $3 WHERE id = $1",
		id, titulo, comando)
	if err != nil {
		return fmt.Errorf("failed to update library entry %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes an entry.
func (s *Service) Delete(ctx context.Context, id int) error {
	tag, err := s.pool.Exec(ctx, "DELETE FROM assistant_library WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete library entry %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Get returns one entry by ID.
func (s *Service) Get(ctx context.Context, id int) (*Entry, error) {
	var e Entry
	err := s.pool.QueryRow(ctx,
		"SELECT id, titulo, comando FROM assistant_library WHERE id = $1", id,
	).Scan(&e.ID, &e.Titulo, &e.Comando)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get library entry %d: %w", id, err)
	}
	return &e, nil
}
