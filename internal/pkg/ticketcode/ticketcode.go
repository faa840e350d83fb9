// Package ticketcode generates check-in ticket codes and their QR images.
package ticketcode

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"

	qrcode "github.com/skip2/go-qrcode"
)

// Length is the number of characters in a ticket code.
const Length = 8

// New returns an 8-character uppercase hex code from a cryptographically
// secure source.
func New() (string, error) {
	buf := make([]byte, 5)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("rand.Read -> %w", err)
	}

	return strings.ToUpper(hex.EncodeToString(buf)[:Length]), nil
}

// QRDataURL renders the code as a 200px PNG data URI for embedding in
// emails and ticket pages. Returns "" on render failure; a missing QR is
// cosmetic, the code itself still works at check-in.
func QRDataURL(code string) string {
	png, err := qrcode.Encode(code, qrcode.Medium, 200)
	if err != nil {
		return ""
	}

	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png)
}
