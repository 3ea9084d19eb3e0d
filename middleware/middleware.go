package middleware

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

const CSRF_KEY_LENGTH = 32

type Options struct {
	// CsrfKey is the hex encoded CSRF key. A random key is generated if empty,
	// which invalidates issued tokens on every restart.
	CsrfKey        string
	TrustedOrigins []string
	SecureCookie   bool
}

type Middleware struct {
	csrfKey        []byte
	trustedOrigins []string
	secureCookie   bool
}

func NewMiddleware(options Options) (*Middleware, error) {
	csrfKey, err := csrfKeyFromOptions(options.CsrfKey)
	if err != nil {
		return nil, err
	}

	return &Middleware{
		csrfKey:        csrfKey,
		trustedOrigins: options.TrustedOrigins,
		secureCookie:   options.SecureCookie,
	}, nil
}

func csrfKeyFromOptions(encoded string) ([]byte, error) {
	if encoded == "" {
		csrfKey := make([]byte, CSRF_KEY_LENGTH)
		if _, err := rand.Read(csrfKey); err != nil {
			return nil, fmt.Errorf("error generating CSRF key: %w", err)
		}
		return csrfKey, nil
	}

	csrfKey, err := hex.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("error decoding CSRF key: %w", err)
	}
	if len(csrfKey) != CSRF_KEY_LENGTH {
		return nil, fmt.Errorf("CSRF key must be %d bytes, got %d", CSRF_KEY_LENGTH, len(csrfKey))
	}
	return csrfKey, nil
}
