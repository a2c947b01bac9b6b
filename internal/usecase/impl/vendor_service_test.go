package impl

import (
	"context"
	"strings"
	"testing"

	"bazaar/internal/domain/entity"
	domainerrors "bazaar/internal/domain/errors"
	"bazaar/internal/domain/repository"
	"bazaar/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newVendorServiceFixture() (usecase.VendorUsecase, *mockVendorRepo, *mockQRCodeService, *mockObjectStore) {
	vendorRepo := new(mockVendorRepo)
	qrSvc := new(mockQRCodeService)
	store := new(mockObjectStore)

	svc := NewVendorService(VendorServiceParams{
		VendorRepo:    vendorRepo,
		QRCodeService: qrSvc,
		ObjectStore:   store,
		Logger:        testLogger(),
	})

	return svc, vendorRepo, qrSvc, store
}

func TestVendorService_GetStorefront(t *testing.T) {
	svc, vendorRepo, _, _ := newVendorServiceFixture()
	ctx := context.Background()

	profile := &entity.VendorProfile{Slug: "chai-point", StoreName: "Chai Point"}
	vendorRepo.On("FindBySlug", ctx, "chai-point").Return(profile, nil)

	got, err := svc.GetStorefront(ctx, "chai-point")
	require.NoError(t, err)
	assert.Equal(t, "Chai Point", got.StoreName)
}

func TestVendorService_GetStorefront_UnknownSlug(t *testing.T) {
	svc, vendorRepo, _, _ := newVendorServiceFixture()
	ctx := context.Background()

	vendorRepo.On("FindBySlug", ctx, "nope").Return(nil, repository.ErrVendorNotFound)

	_, err := svc.GetStorefront(ctx, "nope")

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "NOT_FOUND", appErr.ErrorCode())
}

func TestVendorService_GetStorefrontQR_ResolvesSlugFirst(t *testing.T) {
	svc, vendorRepo, qrSvc, _ := newVendorServiceFixture()
	ctx := context.Background()

	vendorRepo.On("FindBySlug", ctx, "missing").Return(nil, repository.ErrVendorNotFound)

	_, err := svc.GetStorefrontQR(ctx, "missing")

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "NOT_FOUND", appErr.ErrorCode())
	qrSvc.AssertNotCalled(t, "GenerateStorefrontQR", mock.Anything)
}

func TestVendorService_GetStorefrontQR(t *testing.T) {
	svc, vendorRepo, qrSvc, _ := newVendorServiceFixture()
	ctx := context.Background()

	vendorRepo.On("FindBySlug", ctx, "chai-point").Return(&entity.VendorProfile{Slug: "chai-point"}, nil)
	qrSvc.On("GenerateStorefrontQR", "chai-point").Return([]byte{0x89, 'P', 'N', 'G'}, nil)

	png, err := svc.GetStorefrontQR(ctx, "chai-point")
	require.NoError(t, err)
	assert.Equal(t, byte(0x89), png[0])
}

func TestVendorService_UpdateProfile_OnlySetFieldsChange(t *testing.T) {
	svc, vendorRepo, _, _ := newVendorServiceFixture()
	ctx := context.Background()
	userID := uuid.New()

	current := &entity.VendorProfile{
		UserID:    userID,
		Slug:      "chai-point",
		StoreName: "Chai Point",
		Tagline:   "Cutting chai",
		City:      "Pune",
	}
	vendorRepo.On("FindByUserID", ctx, userID).Return(current, nil)
	vendorRepo.On("UpdateProfile", ctx, mock.Anything).Return(nil)

	newName := "Chai Point Deluxe"
	got, err := svc.UpdateProfile(ctx, &usecase.UpdateVendorProfileInput{
		UserID:    userID,
		StoreName: &newName,
	})
	require.NoError(t, err)

	assert.Equal(t, "Chai Point Deluxe", got.StoreName)
	assert.Equal(t, "Cutting chai", got.Tagline)
	assert.Equal(t, "Pune", got.City)
	assert.Equal(t, "chai-point", got.Slug)
}

func TestVendorService_UploadAsset(t *testing.T) {
	svc, vendorRepo, _, store := newVendorServiceFixture()
	ctx := context.Background()
	userID := uuid.New()

	profile := &entity.VendorProfile{UserID: userID, Slug: "chai-point"}
	vendorRepo.On("FindByUserID", ctx, userID).Return(profile, nil)
	store.On("Upload", ctx, mock.MatchedBy(func(key string) bool {
		return strings.HasPrefix(key, "vendors/"+userID.String()+"/logo-") && strings.HasSuffix(key, ".png")
	}), "image/png", mock.Anything).Return("https://cdn.example.com/logo.png", nil)
	vendorRepo.On("UpdateProfile", ctx, mock.Anything).Return(nil)

	url, err := svc.UploadAsset(ctx, &usecase.UploadAssetInput{
		UserID:      userID,
		Kind:        "logo",
		Filename:    "logo.png",
		ContentType: "image/png",
		Content:     strings.NewReader("fake image"),
	})
	require.NoError(t, err)

	assert.Equal(t, "https://cdn.example.com/logo.png", url)
	assert.Equal(t, "https://cdn.example.com/logo.png", profile.LogoURL)
}

func TestVendorService_UploadAsset_RejectsUnknownKind(t *testing.T) {
	svc, _, _, store := newVendorServiceFixture()
	ctx := context.Background()

	_, err := svc.UploadAsset(ctx, &usecase.UploadAssetInput{
		UserID: uuid.New(),
		Kind:   "avatar",
	})
	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "VALIDATION_FAILED", appErr.ErrorCode())
	store.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
