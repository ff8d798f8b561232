package ports

import "github.com/selectshop/shop-api/internal/core/domain"

// TokenService issues and verifies the signed credential that authenticates
// every protected request. Both operations are pure computations over the
// signing secret and the clock; neither touches storage.
type TokenService interface {
	// Issue creates a signed credential for the subject/role pair. The
	// returned string carries no scheme prefix; the transport layer adds
	// "Bearer " when the credential travels in a header.
	Issue(subject, role string) (string, error)

	// Verify checks structure, signature, and expiry, in that order, and
	// returns the embedded claims. Failures are reported as
	// domain.ErrTokenMalformed, domain.ErrTokenSignatureInvalid, or
	// domain.ErrTokenExpired.
	Verify(token string) (*domain.Claims, error)
}
