// internal/domain/session/identity.go
package session

// Identity is the authenticated user attached to a browsing session
type Identity struct {
	UserID   uint   `json:"user_id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
}

// DisplayName is the name a seller lists seeds under
func (i Identity) DisplayName() string {
	if i.FullName == "" {
		return "Unknown"
	}
	return i.FullName
}

// Holder keeps the current identity of one session. It is written only by
// authentication events and read by everything else; it does no validation
// of its own.
type Holder struct {
	current *Identity
}

// Current returns the signed-in identity, if any
func (h *Holder) Current() (Identity, bool) {
	if h.current == nil {
		return Identity{}, false
	}
	return *h.current, true
}

// SignedIn reports whether an identity is present
func (h *Holder) SignedIn() bool {
	return h.current != nil
}

// Set replaces the identity. A nil identity means signed out.
func (h *Holder) Set(identity *Identity) {
	if identity == nil {
		h.current = nil
		return
	}
	id := *identity
	h.current = &id
}
