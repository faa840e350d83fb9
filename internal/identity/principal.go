package identity

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"
)

// PrincipalHeader is injected by the perimeter after it has verified the
// caller. Its value is a base64-encoded JSON envelope.
const PrincipalHeader = "X-MS-Client-Principal"

// Principal is the identity the perimeter vouches for. A nil *Principal
// means the request is anonymous.
type Principal struct {
	UserID           string   `json:"userId"`
	UserDetails      string   `json:"userDetails"`
	UserRoles        []string `json:"userRoles"`
	IdentityProvider string   `json:"identityProvider"`
}

// HasRole reports case-insensitively whether the principal carries role.
func (p *Principal) HasRole(role string) bool {
	if p == nil {
		return false
	}
	needle := strings.ToLower(role)
	for _, r := range p.UserRoles {
		if r == needle {
			return true
		}
	}
	return false
}

// Provider resolves a request to a principal. Implementations are injected
// so the trust-header format is never hard-wired into business logic.
type Provider interface {
	FromRequest(r *http.Request) *Principal
}

// HeaderProvider decodes the perimeter trust header. Any decode failure is
// treated as anonymous, never surfaced as an error.
type HeaderProvider struct{}

func NewHeaderProvider() *HeaderProvider {
	return &HeaderProvider{}
}

func (hp *HeaderProvider) FromRequest(r *http.Request) *Principal {
	return DecodePrincipal(r.Header.Get(PrincipalHeader))
}

// DecodePrincipal parses the base64 JSON envelope. Role strings are
// normalised to lowercase. Returns nil for a missing or undecodable header.
func DecodePrincipal(header string) *Principal {
	if header == "" {
		return nil
	}

	raw, err := base64.StdEncoding.DecodeString(header)
	if err != nil {
		return nil
	}

	var p Principal
	if err = json.Unmarshal(raw, &p); err != nil {
		return nil
	}

	for i, r := range p.UserRoles {
		p.UserRoles[i] = strings.ToLower(r)
	}

	return &p
}
