package auth

import "crypto/subtle" // Constant-time comparison

// CredentialVerifier decides whether an admin credential presented at the
// HTTP boundary is valid. Keeping this behind an interface lets a real auth
// mechanism replace the shared-secret check without touching payout logic.
type CredentialVerifier interface {
	Verify(credential string) bool
}

// SharedSecretVerifier accepts exactly one configured secret. This is the
// placeholder check carried over from the original deployment, not a real
// authentication scheme.
type SharedSecretVerifier struct {
	secret string
}

// NewSharedSecretVerifier builds a verifier around the configured secret.
func NewSharedSecretVerifier(secret string) SharedSecretVerifier {
	return SharedSecretVerifier{secret: secret}
}

// Verify compares in constant time. An empty configured secret rejects
// everything rather than accepting everything.
func (v SharedSecretVerifier) Verify(credential string) bool {
	if v.secret == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(credential), []byte(v.secret)) == 1
}
