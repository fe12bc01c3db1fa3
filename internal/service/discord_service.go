package service

import (
	"context"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"github.com/peakplay/coaching-api/internal/dto"
	"github.com/peakplay/coaching-api/internal/models"
	appErrors "github.com/peakplay/coaching-api/pkg/errors"
)

const discordUserInfoURL = "https://discord.com/api/users/@me"

// discordEndpoint is the provider's OAuth2 endpoint pair.
var discordEndpoint = oauth2.Endpoint{
	AuthURL:  "https://discord.com/api/oauth2/authorize",
	TokenURL: "https://discord.com/api/oauth2/token",
}

type discordLinkRepository interface {
	UpsertLink(ctx context.Context, link *models.DiscordLink) error
	FindByEmail(ctx context.Context, email string) (*models.DiscordLink, error)
}

type oauthExchanger interface {
	AuthCodeURL(state string, opts ...oauth2.AuthCodeOption) string
	Exchange(ctx context.Context, code string, opts ...oauth2.AuthCodeOption) (*oauth2.Token, error)
	Client(ctx context.Context, t *oauth2.Token) *http.Client
}

// DiscordOAuthConfig configures the authorize/callback flow.
type DiscordOAuthConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	StateSecret  string
	StateTTL     time.Duration
}

// DiscordService links visitor emails to Discord identities through the
// OAuth authorize/callback flow. The CSRF state token is HMAC-signed and
// carries an expiry plus the post-auth return path.
type DiscordService struct {
	repo        discordLinkRepository
	oauth       oauthExchanger
	stateSecret []byte
	stateTTL    time.Duration
	userInfoURL string
	logger      *zap.Logger
}

// NewDiscordService constructs a DiscordService.
func NewDiscordService(repo discordLinkRepository, cfg DiscordOAuthConfig, logger *zap.Logger) *DiscordService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.StateTTL <= 0 {
		cfg.StateTTL = 10 * time.Minute
	}
	return &DiscordService{
		repo: repo,
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       []string{"identify", "email"},
			Endpoint:     discordEndpoint,
		},
		stateSecret: []byte(cfg.StateSecret),
		stateTTL:    cfg.StateTTL,
		userInfoURL: discordUserInfoURL,
		logger:      logger,
	}
}

// Authorize builds the provider redirect URL with a signed state token.
func (s *DiscordService) Authorize(returnTo string) (*dto.AuthorizeResponse, error) {
	state, err := s.issueState(returnTo)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to create oauth state")
	}
	return &dto.AuthorizeResponse{URL: s.oauth.AuthCodeURL(state)}, nil
}

// discordUser is the subset of the provider's user object we consume.
type discordUser struct {
	ID       string  `json:"id"`
	Username string  `json:"username"`
	Email    string  `json:"email"`
	Avatar   *string `json:"avatar"`
}

// Callback verifies the state, exchanges the code and stores the link.
func (s *DiscordService) Callback(ctx context.Context, code, state string) (*dto.DiscordLinkResponse, error) {
	returnTo, err := s.verifyState(state)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "invalid oauth state")
	}

	token, err := s.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to exchange authorization code")
	}

	user, err := s.fetchUser(ctx, token)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to load discord profile")
	}
	if user.Email == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "discord account has no verified email")
	}

	link := &models.DiscordLink{
		ID:              uuid.NewString(),
		Email:           strings.ToLower(user.Email),
		DiscordID:       user.ID,
		DiscordUsername: user.Username,
		AvatarHash:      user.Avatar,
		LinkedAt:        time.Now().UTC(),
	}
	if err := s.repo.UpsertLink(ctx, link); err != nil {
		return nil, appErrors.Internal(err, "failed to store discord link")
	}

	return &dto.DiscordLinkResponse{
		DiscordID:       link.DiscordID,
		DiscordUsername: link.DiscordUsername,
		Email:           link.Email,
		ReturnTo:        returnTo,
	}, nil
}

// LinkByEmail looks up an existing linkage.
func (s *DiscordService) LinkByEmail(ctx context.Context, email string) (*models.DiscordLink, error) {
	link, err := s.repo.FindByEmail(ctx, strings.ToLower(email))
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "no discord link for this email")
	}
	return link, nil
}

func (s *DiscordService) fetchUser(ctx context.Context, token *oauth2.Token) (*discordUser, error) {
	client := s.oauth.Client(ctx, token)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.userInfoURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("discord user endpoint returned status %d", resp.StatusCode)
	}
	var user discordUser
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("decode discord user: %w", err)
	}
	return &user, nil
}

// issueState signs "nonce|expiry|returnTo" so the callback can verify both
// freshness and the redirect target.
func (s *DiscordService) issueState(returnTo string) (string, error) {
	nonce := make([]byte, 16)
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}
	expiry := time.Now().UTC().Add(s.stateTTL).Unix()
	payload := fmt.Sprintf("%s|%d|%s", hex.EncodeToString(nonce), expiry, returnTo)
	sig := s.sign(payload)
	return base64.RawURLEncoding.EncodeToString([]byte(payload + "|" + sig)), nil
}

func (s *DiscordService) verifyState(state string) (string, error) {
	raw, err := base64.RawURLEncoding.DecodeString(state)
	if err != nil {
		return "", fmt.Errorf("malformed state")
	}

	parts := strings.Split(string(raw), "|")
	if len(parts) != 4 {
		return "", fmt.Errorf("malformed state")
	}
	nonce, expiryStr, returnTo, sig := parts[0], parts[1], parts[2], parts[3]

	payload := fmt.Sprintf("%s|%s|%s", nonce, expiryStr, returnTo)
	if !hmac.Equal([]byte(sig), []byte(s.sign(payload))) {
		return "", fmt.Errorf("state signature mismatch")
	}

	expiry, err := strconv.ParseInt(expiryStr, 10, 64)
	if err != nil || time.Now().UTC().Unix() > expiry {
		return "", fmt.Errorf("state expired")
	}
	return returnTo, nil
}

func (s *DiscordService) sign(payload string) string {
	mac := hmac.New(sha256.New, s.stateSecret)
	mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil))
}
