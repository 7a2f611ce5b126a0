// services/qrcode_service.go
package services

import (
	"errors"

	"github.com/skip2/go-qrcode"
)

// GenerateContactQRCode renders the site's Telegram (or other contact) URL
// as a QR code PNG for the contact page.
func GenerateContactQRCode(url string, size int) ([]byte, error) {
	if url == "" || url == "#" {
		return nil, errors.New("no contact URL configured")
	}
	png, err := qrcode.Encode(url, qrcode.Medium, size)
	if err != nil {
		return nil, err
	}
	return png, nil
}
