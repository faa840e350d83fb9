// Package approvaltoken signs and verifies the one-click approval links
// embedded in chapter-application review emails.
package approvaltoken

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Validity is how long a generated token is accepted.
const Validity = 7 * 24 * time.Hour

var (
	ErrNoSecret     = errors.New("approval token secret is not configured")
	ErrInvalidToken = errors.New("invalid approval token")
	ErrExpiredToken = errors.New("expired approval token")
)

type Signer struct {
	secret []byte
	now    func() time.Time
}

func NewSigner(secret string) *Signer {
	return &Signer{
		secret: []byte(secret),
		now:    time.Now,
	}
}

// Generate signs applicationID and action together with the issue time.
// The token format is "<unix>.<hex hmac-sha256>".
func (s *Signer) Generate(applicationID, action string) (string, error) {
	if len(s.secret) == 0 {
		return "", ErrNoSecret
	}

	issued := s.now().Unix()
	return fmt.Sprintf("%d.%s", issued, s.sign(applicationID, action, issued)), nil
}

// Verify checks the signature with a fixed-time comparison and enforces
// the validity window.
func (s *Signer) Verify(applicationID, action, token string) error {
	if len(s.secret) == 0 {
		return ErrNoSecret
	}

	issuedPart, mac, found := strings.Cut(token, ".")
	if !found {
		return ErrInvalidToken
	}

	issued, err := strconv.ParseInt(issuedPart, 10, 64)
	if err != nil {
		return ErrInvalidToken
	}

	expected := s.sign(applicationID, action, issued)
	if subtle.ConstantTimeCompare([]byte(mac), []byte(expected)) != 1 {
		return ErrInvalidToken
	}

	age := s.now().Sub(time.Unix(issued, 0))
	if age < 0 || age > Validity {
		return ErrExpiredToken
	}

	return nil
}

func (s *Signer) sign(applicationID, action string, issued int64) string {
	h := hmac.New(sha256.New, s.secret)
	fmt.Fprintf(h, "%s:%s:%d", applicationID, action, issued)
	return hex.EncodeToString(h.Sum(nil))
}
