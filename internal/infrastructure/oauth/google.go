// Package oauth implements the Google and LINE authorization-code flows on
// top of golang.org/x/oauth2. Both providers share the same shape: exchange
// the callback code for an access token, then fetch the profile with it.
package oauth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/fusandy452/aistudent-backend/internal/core/domain"
)

// ErrTokenExchange and ErrProfileFetch let callers distinguish which step of
// the flow failed; browser callbacks redirect with different error codes.
var ErrTokenExchange = errors.New("oauth token exchange failed")
var ErrProfileFetch = errors.New("oauth profile fetch failed")

const googleUserinfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

// GoogleProvider wraps the Google authorization-code flow.
type GoogleProvider struct {
	config     *oauth2.Config
	profileURL string
}

func NewGoogleProvider(clientID, clientSecret, redirectURL string) *GoogleProvider {
	return &GoogleProvider{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
		profileURL: googleUserinfoURL,
	}
}

func (p *GoogleProvider) Name() string { return domain.ProviderGoogle }

func (p *GoogleProvider) Configured() bool {
	return p.config.ClientID != "" && p.config.ClientSecret != ""
}

func (p *GoogleProvider) AuthURL(state string) string {
	return p.config.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

// googleUser is the slice of the userinfo response this service reads.
type googleUser struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// Exchange trades the authorization code for the user's identity.
func (p *GoogleProvider) Exchange(ctx context.Context, code string) (*domain.ExternalIdentity, error) {
	token, err := p.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenExchange, err)
	}

	var u googleUser
	if err := fetchProfile(ctx, p.config.Client(ctx, token), p.profileURL, &u); err != nil {
		return nil, err
	}
	if u.ID == "" {
		return nil, fmt.Errorf("%w: userinfo response has no id", ErrProfileFetch)
	}

	return &domain.ExternalIdentity{
		Provider:   domain.ProviderGoogle,
		ExternalID: u.ID,
		Email:      u.Email,
		Name:       u.Name,
		AvatarURL:  u.Picture,
	}, nil
}

// fetchProfile GETs a provider profile endpoint with the bearer client and
// decodes the JSON body into out.
func fetchProfile(ctx context.Context, client *http.Client, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrProfileFetch, err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrProfileFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", ErrProfileFetch, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %v", ErrProfileFetch, err)
	}
	return nil
}
