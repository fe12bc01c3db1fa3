package dto

// AuthorizeResponse carries the provider redirect for the OAuth flow.
type AuthorizeResponse struct {
	URL string `json:"url"`
}

// DiscordLinkResponse is returned after a successful callback.
type DiscordLinkResponse struct {
	DiscordID       string `json:"discord_id"`
	DiscordUsername string `json:"discord_username"`
	Email           string `json:"email"`
	ReturnTo        string `json:"return_to,omitempty"`
}
