package service

// QRCodeService defines the interface for QR code generation services
type QRCodeService interface {
	// GenerateStorefrontQR generates a PNG QR code pointing at the vendor's
	// public storefront URL.
	GenerateStorefrontQR(slug string) ([]byte, error)
}
