package oauth

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"

	"github.com/minhng/typing-game-backend/internal/models"
)

const (
	defaultGithubAuthURL     = "https://github.com/login/oauth/authorize"
	defaultGithubTokenURL    = "https://github.com/login/oauth/access_token"
	defaultGithubUserInfoURL = "https://api.github.com/user"
	defaultGithubEmailsURL   = "https://api.github.com/user/emails"
)

type GithubConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string

	// Overridable endpoints for tests.
	AuthURL     string
	TokenURL    string
	UserInfoURL string
	EmailsURL   string
}

type GithubClient struct {
	config GithubConfig
}

func NewGithubClient(config GithubConfig) *GithubClient {
	if config.AuthURL == "" {
		config.AuthURL = defaultGithubAuthURL
	}
	if config.TokenURL == "" {
		config.TokenURL = defaultGithubTokenURL
	}
	if config.UserInfoURL == "" {
		config.UserInfoURL = defaultGithubUserInfoURL
	}
	if config.EmailsURL == "" {
		config.EmailsURL = defaultGithubEmailsURL
	}
	return &GithubClient{config: config}
}

func (c *GithubClient) Provider() models.AuthProvider {
	return models.ProviderGithub
}

func (c *GithubClient) LoginURL(state string) string {
	params := url.Values{
		"client_id":    {c.config.ClientID},
		"redirect_uri": {c.config.RedirectURL},
		"scope":        {"read:user user:email"},
		"state":        {state},
	}
	return c.config.AuthURL + "?" + params.Encode()
}

// FetchAttributes returns the /user attributes. When the profile email is
// hidden it tries the emails endpoint for the primary verified address; a
// missing email is left to the reconciler's placeholder synthesis.
func (c *GithubClient) FetchAttributes(ctx context.Context, code string) (map[string]interface{}, error) {
	data := url.Values{
		"code":          {code},
		"client_id":     {c.config.ClientID},
		"client_secret": {c.config.ClientSecret},
		"redirect_uri":  {c.config.RedirectURL},
		"grant_type":    {"authorization_code"},
	}

	accessToken, err := exchangeCode(ctx, c.config.TokenURL, data)
	if err != nil {
		return nil, err
	}

	attrs, err := fetchJSON(ctx, c.config.UserInfoURL, accessToken)
	if err != nil {
		return nil, err
	}

	if email, ok := attrs["email"].(string); !ok || email == "" {
		if primary := c.fetchPrimaryEmail(ctx, accessToken); primary != "" {
			attrs["email"] = primary
		}
	}
	return attrs, nil
}

func (c *GithubClient) fetchPrimaryEmail(ctx context.Context, accessToken string) string {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.EmailsURL, nil)
	if err != nil {
		return ""
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ""
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return ""
	}

	var emails []struct {
		Email    string `json:"email"`
		Primary  bool   `json:"primary"`
		Verified bool   `json:"verified"`
	}
	if err := json.Unmarshal(body, &emails); err != nil {
		return ""
	}
	for _, e := range emails {
		if e.Primary && e.Verified {
			return e.Email
		}
	}
	return ""
}

var _ Client = (*GithubClient)(nil)
