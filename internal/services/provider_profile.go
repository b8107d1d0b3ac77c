package services

import (
	"strconv"
	"strings"

	"github.com/minhng/typing-game-backend/internal/models"
)

// ProviderAttributes is the raw attribute bag returned by a provider's
// userinfo endpoint, as decoded from JSON.
type ProviderAttributes map[string]interface{}

// ProfileData holds the mutable profile fields extracted from a login payload.
type ProfileData struct {
	FirstName *string
	LastName  *string
	AvatarURL *string
}

// providerProfile extracts identity and profile fields from a provider's
// attribute shape. One variant per supported provider keeps new providers
// additive instead of growing a central switch.
type providerProfile interface {
	// ExtractProviderID returns the external subject identifier.
	ExtractProviderID(attrs ProviderAttributes) (string, bool)
	// ExtractEmail resolves the user's email. placeholder reports whether the
	// address was synthesized because the provider withheld the real one.
	ExtractEmail(attrs ProviderAttributes) (email string, placeholder bool, ok bool)
	ExtractProfile(attrs ProviderAttributes) ProfileData
}

func profileForProvider(provider models.AuthProvider) providerProfile {
	switch provider {
	case models.ProviderGoogle:
		return googleProfile{}
	case models.ProviderGithub:
		return githubProfile{}
	default:
		return genericProfile{}
	}
}

// googleProfile reads the OpenID Connect shape: sub, given_name, family_name,
// picture. Google always supplies email.
type googleProfile struct{}

func (googleProfile) ExtractProviderID(attrs ProviderAttributes) (string, bool) {
	return stringAttr(attrs, "sub")
}

func (googleProfile) ExtractEmail(attrs ProviderAttributes) (string, bool, bool) {
	email, ok := stringAttr(attrs, "email")
	return email, false, ok
}

func (googleProfile) ExtractProfile(attrs ProviderAttributes) ProfileData {
	return ProfileData{
		FirstName: optionalAttr(attrs, "given_name"),
		LastName:  optionalAttr(attrs, "family_name"),
		AvatarURL: optionalAttr(attrs, "picture"),
	}
}

// githubProfile reads GitHub's user shape: numeric id, login, a single display
// name field and avatar_url. GitHub commonly withholds email, so a
// deterministic placeholder is synthesized from login or the provider id.
type githubProfile struct{}

const githubPlaceholderDomain = "@github.local"

func (githubProfile) ExtractProviderID(attrs ProviderAttributes) (string, bool) {
	return idAttr(attrs, "id")
}

func (p githubProfile) ExtractEmail(attrs ProviderAttributes) (string, bool, bool) {
	if email, ok := stringAttr(attrs, "email"); ok {
		return email, false, true
	}
	if login, ok := stringAttr(attrs, "login"); ok {
		return login + githubPlaceholderDomain, true, true
	}
	if providerID, ok := p.ExtractProviderID(attrs); ok {
		return "user" + providerID + githubPlaceholderDomain, true, true
	}
	return "", false, false
}

func (githubProfile) ExtractProfile(attrs ProviderAttributes) ProfileData {
	data := ProfileData{
		AvatarURL: optionalAttr(attrs, "avatar_url"),
	}
	name, ok := stringAttr(attrs, "name")
	if !ok {
		return data
	}
	if first, last, found := strings.Cut(name, " "); found {
		data.FirstName = &first
		data.LastName = &last
	} else {
		data.FirstName = &name
	}
	return data
}

// genericProfile covers unrecognized providers: id plus a single name field.
type genericProfile struct{}

func (genericProfile) ExtractProviderID(attrs ProviderAttributes) (string, bool) {
	return idAttr(attrs, "id")
}

func (genericProfile) ExtractEmail(attrs ProviderAttributes) (string, bool, bool) {
	email, ok := stringAttr(attrs, "email")
	return email, false, ok
}

func (genericProfile) ExtractProfile(attrs ProviderAttributes) ProfileData {
	return ProfileData{FirstName: optionalAttr(attrs, "name")}
}

// isPlaceholderEmail reports whether the address was synthesized rather than
// supplied by a provider. Placeholder addresses never participate in
// email-based account merging.
func isPlaceholderEmail(email string) bool {
	return strings.HasSuffix(email, ".local")
}

func stringAttr(attrs ProviderAttributes, key string) (string, bool) {
	s, ok := attrs[key].(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

func optionalAttr(attrs ProviderAttributes, key string) *string {
	s, ok := stringAttr(attrs, key)
	if !ok {
		return nil
	}
	return &s
}

// idAttr stringifies an identifier attribute that providers deliver either as
// a JSON number or a string.
func idAttr(attrs ProviderAttributes, key string) (string, bool) {
	switch v := attrs[key].(type) {
	case string:
		if v == "" {
			return "", false
		}
		return v, true
	case float64:
		return strconv.FormatInt(int64(v), 10), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case int:
		return strconv.Itoa(v), true
	}
	return "", false
}
