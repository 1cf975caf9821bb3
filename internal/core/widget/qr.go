package widget

import (
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
	"github.com/google/uuid"
)

// GenerateShareQR renders a PNG QR code pointing at the tenant's
// hosted chat page, for sharing the assistant without a website
func GenerateShareQR(appBaseURL string, clientID uuid.UUID, size int) ([]byte, error) {
	if size <= 0 {
		size = 256
	}

	chatURL := fmt.Sprintf("%s/chat/%s", appBaseURL, clientID.String())

	png, err := qrcode.Encode(chatURL, qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("failed to generate QR code: %w", err)
	}

	return png, nil
}
