// Package oauth implements the authorization-code flow against the supported
// identity providers. Each client exchanges a code for an access token and
// returns the provider's raw userinfo attributes for reconciliation.
package oauth

import (
	"context"

	"github.com/minhng/typing-game-backend/internal/models"
)

// Client is one provider's authorization-code flow.
type Client interface {
	Provider() models.AuthProvider
	// LoginURL builds the provider's authorization URL with the given state.
	LoginURL(state string) string
	// FetchAttributes exchanges the authorization code and returns the raw
	// userinfo attribute bag.
	FetchAttributes(ctx context.Context, code string) (map[string]interface{}, error)
}
