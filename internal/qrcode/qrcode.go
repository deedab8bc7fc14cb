package qrcode

import (
	"fmt"
	"net/url"

	qr "github.com/skip2/go-qrcode"
)

// DefaultSize is the edge length in pixels of generated images.
const DefaultSize = 256

// JoinURL is the link a phone opens to join the lobby gameID served on
// host.
func JoinURL(host, gameID string) string {
	return fmt.Sprintf("http://%s/api/join?game=%s", host, url.QueryEscape(gameID))
}

// Generate creates a QR code PNG image for the given URL. A size of zero
// or less uses DefaultSize.
func Generate(link string, size int) ([]byte, error) {
	if size <= 0 {
		size = DefaultSize
	}
	return qr.Encode(link, qr.Medium, size)
}
