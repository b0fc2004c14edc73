package services

import (
	"bytes"
	"context"
	"testing"

	"cvbuilder_backend/internal/models"
	"cvbuilder_backend/internal/repositories"
	"cvbuilder_backend/internal/services/dto"
	"cvbuilder_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUploadService_AvatarReplacesPrevious(t *testing.T) {
	db := newTestDB(t)
	blobs := newFakeBlobs()
	svc := NewUploadService(repositories.NewUserRepository(), blobs, nil)
	ctx := context.Background()

	user := createUser(t, db, "u@example.com", models.UserRoleUser)
	old := fakeBlobBase + "images/avatars/old.png"
	require.NoError(t, db.Model(user).Update("avatar_url", old).Error)

	resp, err := svc.UploadAvatar(ctx, db, user.ID, &dto.PendingFile{Filename: "me.png", ContentType: "image/png", Data: pngBytes(t)})
	require.NoError(t, err)
	assert.Contains(t, resp.Path, "images/avatars/")
	assert.Equal(t, []string{old}, blobs.retries)

	var stored models.User
	require.NoError(t, db.First(&stored, "id = ?", user.ID).Error)
	require.NotNil(t, stored.AvatarURL)
	assert.Equal(t, resp.URL, *stored.AvatarURL)

	require.NoError(t, svc.DeleteAvatar(ctx, db, user.ID))
	require.NoError(t, db.First(&stored, "id = ?", user.ID).Error)
	assert.Nil(t, stored.AvatarURL)
}

func TestUploadService_OversizedAvatarTouchesNothing(t *testing.T) {
	db := newTestDB(t)
	blobs := newFakeBlobs()
	svc := NewUploadService(repositories.NewUserRepository(), blobs, nil)
	user := createUser(t, db, "u@example.com", models.UserRoleUser)

	big := append(pngBytes(t), bytes.Repeat([]byte{0}, 3<<20)...)
	_, err := svc.UploadAvatar(context.Background(), db, user.ID, &dto.PendingFile{Filename: "big.png", ContentType: "image/png", Data: big})
	appErr := requireAppCode(t, err, apperrors.CodeLimitExceeded)
	assert.Equal(t, 413, appErr.HTTPCode)

	assert.Empty(t, blobs.uploads)
	assert.Empty(t, blobs.retries)
}

func TestCheckImage_RejectsNonImages(t *testing.T) {
	cfg := GetDefaultUploadConfig()

	err := CheckImage(&dto.PendingFile{Filename: "a.txt", ContentType: "text/plain", Data: []byte("hello world")}, cfg.PhotoMaxSize, cfg.AllowedTypes)
	requireAppCode(t, err, apperrors.CodeValidationFailed)

	err = CheckImage(&dto.PendingFile{Filename: "a.png", ContentType: "application/pdf", Data: pngBytes(t)}, cfg.PhotoMaxSize, cfg.AllowedTypes)
	requireAppCode(t, err, apperrors.CodeValidationFailed)

	file := &dto.PendingFile{Filename: "a.png", Data: pngBytes(t)}
	require.NoError(t, CheckImage(file, cfg.PhotoMaxSize, cfg.AllowedTypes))
	assert.Equal(t, "image/png", file.ContentType)
}
