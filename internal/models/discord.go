package models

import "time"

// DiscordLink pairs a site visitor's email with their Discord identity,
// established through the OAuth authorize/callback flow.
type DiscordLink struct {
	ID              string    `db:"id" json:"id"`
	Email           string    `db:"email" json:"email"`
	DiscordID       string    `db:"discord_id" json:"discord_id"`
	DiscordUsername string    `db:"discord_username" json:"discord_username"`
	AvatarHash      *string   `db:"avatar_hash" json:"avatar_hash,omitempty"`
	LinkedAt        time.Time `db:"linked_at" json:"linked_at"`
}
