package impl

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"time"

	deliverycontext "bazaar/internal/delivery/context"
	"bazaar/internal/domain/entity"
	domainerrors "bazaar/internal/domain/errors"
	"bazaar/internal/domain/repository"
	"bazaar/internal/domain/service"
	"bazaar/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// vendorService implements the VendorUsecase interface.
type vendorService struct {
	vendorRepo    repository.VendorRepository
	qrcodeService service.QRCodeService
	objectStore   service.ObjectStore
	logger        *slog.Logger
}

// VendorServiceParams holds dependencies for VendorService, injected by Fx.
type VendorServiceParams struct {
	fx.In

	VendorRepo    repository.VendorRepository
	QRCodeService service.QRCodeService
	ObjectStore   service.ObjectStore
	Logger        *slog.Logger
}

// NewVendorService is the constructor for vendorService.
func NewVendorService(params VendorServiceParams) usecase.VendorUsecase {
	return &vendorService{
		vendorRepo:    params.VendorRepo,
		qrcodeService: params.QRCodeService,
		objectStore:   params.ObjectStore,
		logger:        params.Logger,
	}
}

func (srv *vendorService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// GetStorefront fetches the public profile behind a storefront slug.
func (srv *vendorService) GetStorefront(ctx context.Context, slug string) (*entity.VendorProfile, error) {
	profile, err := srv.vendorRepo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, repository.ErrVendorNotFound) {
			return nil, domainerrors.ErrNotFound
		}

		return nil, errors.Wrap(err, "failed to find vendor by slug")
	}

	return profile, nil
}

// GetStorefrontQR renders a PNG QR code linking to the storefront.
func (srv *vendorService) GetStorefrontQR(ctx context.Context, slug string) ([]byte, error) {
	// Resolve the slug first so unknown stores 404 instead of producing a
	// dead QR code.
	if _, err := srv.GetStorefront(ctx, slug); err != nil {
		return nil, err
	}

	png, err := srv.qrcodeService.GenerateStorefrontQR(slug)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate storefront QR code")
	}

	return png, nil
}

// UpdateProfile applies self-service edits to the caller's storefront.
func (srv *vendorService) UpdateProfile(ctx context.Context, input *usecase.UpdateVendorProfileInput) (*entity.VendorProfile, error) {
	profile, err := srv.vendorRepo.FindByUserID(ctx, input.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrVendorNotFound) {
			return nil, domainerrors.ErrNotFound
		}

		return nil, errors.Wrap(err, "failed to load vendor profile")
	}

	// The slug never changes after approval; edits only touch display and
	// location fields.
	if input.StoreName != nil {
		profile.StoreName = *input.StoreName
	}
	if input.Tagline != nil {
		profile.Tagline = *input.Tagline
	}
	if input.AddressLine1 != nil {
		profile.AddressLine1 = *input.AddressLine1
	}
	if input.AddressLine2 != nil {
		profile.AddressLine2 = *input.AddressLine2
	}
	if input.City != nil {
		profile.City = *input.City
	}
	if input.State != nil {
		profile.State = *input.State
	}
	if input.PostalCode != nil {
		profile.PostalCode = *input.PostalCode
	}
	if input.Latitude != nil {
		profile.Latitude = input.Latitude
	}
	if input.Longitude != nil {
		profile.Longitude = input.Longitude
	}
	if input.DeliveryRadiusKm != nil && *input.DeliveryRadiusKm > 0 {
		profile.DeliveryRadiusKm = *input.DeliveryRadiusKm
	}

	if err := srv.vendorRepo.UpdateProfile(ctx, profile); err != nil {
		return nil, errors.Wrap(err, "failed to update vendor profile")
	}

	srv.log(ctx).Info("Vendor profile updated", slog.Any("userID", input.UserID), slog.String("slug", profile.Slug))

	return profile, nil
}

// UploadAsset stores a logo or banner image and records its URL on the profile.
func (srv *vendorService) UploadAsset(ctx context.Context, input *usecase.UploadAssetInput) (string, error) {
	if input.Kind != "logo" && input.Kind != "banner" {
		return "", domainerrors.ErrValidation.WithDetails("asset kind must be logo or banner")
	}

	profile, err := srv.vendorRepo.FindByUserID(ctx, input.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrVendorNotFound) {
			return "", domainerrors.ErrNotFound
		}

		return "", errors.Wrap(err, "failed to load vendor profile for upload")
	}

	key := fmt.Sprintf("vendors/%s/%s-%d%s",
		input.UserID, input.Kind, time.Now().UnixNano(), path.Ext(input.Filename))

	url, err := srv.objectStore.Upload(ctx, key, input.ContentType, input.Content)
	if err != nil {
		return "", errors.Wrap(err, "failed to upload vendor asset")
	}

	switch input.Kind {
	case "logo":
		profile.LogoURL = url
	case "banner":
		profile.BannerURL = url
	}

	if err := srv.vendorRepo.UpdateProfile(ctx, profile); err != nil {
		return "", errors.Wrap(err, "failed to record asset URL on profile")
	}

	srv.log(ctx).Info("Vendor asset uploaded", slog.Any("userID", input.UserID), slog.String("kind", input.Kind))

	return url, nil
}
