package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"drivehub-backend/internal/domain"
	"drivehub-backend/internal/repository"
)

type contactRepository struct {
	db *sql.DB
}

func NewContactRepository(db *sql.DB) repository.ContactRepository {
	return &contactRepository{db: db}
}

func (r *contactRepository) GetContact(ctx context.Context, role domain.ActorRole, actorID int32) (string, string, error) {
	var email, name string
	query := `SELECT email, name FROM contacts WHERE actor_role = $1 AND actor_id = $2`
	err := r.db.QueryRowContext(ctx, query, role, actorID).Scan(&email, &name)
	if errors.Is(err, sql.ErrNoRows) {
		return "", "", domain.ErrNotFound
	}
	if err != nil {
		return "", "", fmt.Errorf("select contact %s/%d: %w", role, actorID, err)
	}
	return email, name, nil
}
