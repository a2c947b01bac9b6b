// Package qrcode generates storefront QR codes.
package qrcode

import (
	"fmt"
	"strings"

	"bazaar/config"
	"bazaar/internal/domain/service"

	"github.com/skip2/go-qrcode"
)

const defaultQRSize = 256

type qrcodeService struct {
	size                 int
	errorCorrectionLevel qrcode.RecoveryLevel
	baseURL              string
}

// NewQRCodeService creates a new QR code service instance
func NewQRCodeService(cfg *config.Config) service.QRCodeService {
	size := defaultQRSize
	level := qrcode.Medium
	baseURL := ""

	if cfg != nil && cfg.QRCode != nil {
		if cfg.QRCode.Size > 0 {
			size = cfg.QRCode.Size
		}
		level = parseRecoveryLevel(cfg.QRCode.ErrorCorrectionLevel)
		baseURL = strings.TrimRight(cfg.QRCode.BaseURL, "/")
	}

	return &qrcodeService{
		size:                 size,
		errorCorrectionLevel: level,
		baseURL:              baseURL,
	}
}

// GenerateStorefrontQR renders the public storefront URL for a slug as a PNG
// QR code, for vendors to print and display in their shops.
func (s *qrcodeService) GenerateStorefrontQR(slug string) ([]byte, error) {
	target := fmt.Sprintf("%s/store/%s", s.baseURL, slug)

	qrCode, err := qrcode.New(target, s.errorCorrectionLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to create QR code: %w", err)
	}

	pngBytes, err := qrCode.PNG(s.size)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PNG: %w", err)
	}

	return pngBytes, nil
}

func parseRecoveryLevel(level string) qrcode.RecoveryLevel {
	switch level {
	case "L":
		return qrcode.Low
	case "M":
		return qrcode.Medium
	case "Q":
		return qrcode.High
	case "H":
		return qrcode.Highest
	default:
		return qrcode.Medium
	}
}
