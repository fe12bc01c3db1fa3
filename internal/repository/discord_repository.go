package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/peakplay/coaching-api/internal/models"
)

// DiscordRepository persists OAuth identity links.
type DiscordRepository struct {
	db *sqlx.DB
}

// NewDiscordRepository constructs the repository.
func NewDiscordRepository(db *sqlx.DB) *DiscordRepository {
	return &DiscordRepository{db: db}
}

// UpsertLink creates or refreshes the link for a Discord user id.
func (r *DiscordRepository) UpsertLink(ctx context.Context, link *models.DiscordLink) error {
	const query = `INSERT INTO discord_links (id, email, discord_id, discord_username, avatar_hash, linked_at)
VALUES (:id, :email, :discord_id, :discord_username, :avatar_hash, :linked_at)
ON CONFLICT (discord_id)
DO UPDATE SET email = EXCLUDED.email, discord_username = EXCLUDED.discord_username,
              avatar_hash = EXCLUDED.avatar_hash, linked_at = EXCLUDED.linked_at`
	link.LinkedAt = time.Now().UTC()
	if _, err := r.db.NamedExecContext(ctx, query, link); err != nil {
		return fmt.Errorf("upsert discord link: %w", err)
	}
	return nil
}

// FindByEmail fetches the link for a visitor email.
func (r *DiscordRepository) FindByEmail(ctx context.Context, email string) (*models.DiscordLink, error) {
	const query = `SELECT id, email, discord_id, discord_username, avatar_hash, linked_at
FROM discord_links WHERE email = $1`
	var link models.DiscordLink
	if err := r.db.GetContext(ctx, &link, query, email); err != nil {
		return nil, err
	}
	return &link, nil
}
