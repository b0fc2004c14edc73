package services

import (
	"context"
	"testing"

	"cvbuilder_backend/internal/models"
	"cvbuilder_backend/internal/repositories"
	"cvbuilder_backend/internal/services/dto"
	"cvbuilder_backend/internal/validator"
	"cvbuilder_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type resumeFixture struct {
	db    *gorm.DB
	blobs *fakeBlobs
	svc   ResumeService
	user  *models.User
}

func newResumeFixture(t *testing.T) *resumeFixture {
	t.Helper()
	db := newTestDB(t)
	blobs := newFakeBlobs()
	return &resumeFixture{
		db:    db,
		blobs: blobs,
		svc:   NewResumeService(repositories.NewResumeRepository(), blobs, validator.New(), nil),
		user:  createUser(t, db, "an@example.com", models.UserRoleUser),
	}
}

func (f *resumeFixture) save(t *testing.T, values dto.ResumeValues) *dto.ResumeResponse {
	t.Helper()
	resp, err := f.svc.Save(context.Background(), f.db, f.user.ID, values)
	require.NoError(t, err)
	require.NotEmpty(t, resp.ID)
	return resp
}

func TestResumeService_SaveRoundTripsWorkExperiences(t *testing.T) {
	f := newResumeFixture(t)

	in := []dto.WorkExperienceValues{
		{Position: "Intern", Company: "Acme", StartDate: "2018-06-01", EndDate: "2018-09-30", Description: "tests"},
		{Position: "Engineer", Company: "Globex", StartDate: "2019-01-15", EndDate: "2021-12-31"},
		{Position: "Lead", Company: "Initech", StartDate: "2022-02-01"},
		{Company: "Hooli"},
	}
	resp := f.save(t, dto.ResumeValues{Title: "CV", FirstName: "An", WorkExperiences: in})

	got, err := f.svc.Get(context.Background(), f.db, f.user.ID, resp.ID)
	require.NoError(t, err)
	assert.Equal(t, in, got.WorkExperiences)
	assert.Equal(t, "CV", got.Title)
	assert.Equal(t, "#000000", got.ColorHex)
	assert.Equal(t, string(models.TemplateBlank), got.TemplateType)
}

func TestResumeService_UpdateReplacesChildren(t *testing.T) {
	f := newResumeFixture(t)
	ctx := context.Background()

	first := f.save(t, dto.ResumeValues{
		Title:    "CV",
		Projects: []dto.ProjectValues{{Name: "one"}, {Name: "two"}, {Name: "three", TechStack: []string{"go"}}},
		Hobbies:  []dto.HobbyValues{{Name: "chess"}},
		Skills:   []string{"Go", "SQL"},
	})
	require.Len(t, first.Projects, 3)

	values := first.ResumeValues
	values.Projects = []dto.ProjectValues{{Name: "only", TechStack: []string{"gin", "gorm"}}}
	values.Hobbies = nil
	values.Skills = []string{"Go"}

	updated, err := f.svc.Save(ctx, f.db, f.user.ID, values)
	require.NoError(t, err)
	assert.Equal(t, first.ID, updated.ID)
	require.Len(t, updated.Projects, 1)
	assert.Equal(t, "only", updated.Projects[0].Name)
	assert.Equal(t, []string{"gin", "gorm"}, updated.Projects[0].TechStack)
	assert.Empty(t, updated.Hobbies)
	assert.Equal(t, []string{"Go"}, updated.Skills)

	var projects int64
	require.NoError(t, f.db.Model(&models.Project{}).Where("resume_id = ?", first.ID).Count(&projects).Error)
	assert.EqualValues(t, 1, projects)
}

func TestResumeService_SaveRequiresUser(t *testing.T) {
	f := newResumeFixture(t)

	_, err := f.svc.Save(context.Background(), f.db, "", dto.ResumeValues{Title: "CV"})
	requireAppCode(t, err, apperrors.CodeUnauthorized)

	var count int64
	require.NoError(t, f.db.Model(&models.Resume{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestResumeService_SaveRejectsInvalidValues(t *testing.T) {
	f := newResumeFixture(t)

	_, err := f.svc.Save(context.Background(), f.db, f.user.ID, dto.ResumeValues{
		Email:           "not-an-email",
		WorkExperiences: []dto.WorkExperienceValues{{Position: "x", StartDate: "01/2020"}},
	})
	appErr := requireAppCode(t, err, apperrors.CodeValidationFailed)

	details, ok := appErr.Details.(map[string]string)
	require.True(t, ok)
	assert.Contains(t, details, "email")
	assert.Contains(t, details, "workExperiences[0].startDate")
}

func TestResumeService_OtherUsersResumeIsNotFound(t *testing.T) {
	f := newResumeFixture(t)
	ctx := context.Background()
	resp := f.save(t, dto.ResumeValues{Title: "mine"})

	other := createUser(t, f.db, "other@example.com", models.UserRoleUser)

	_, err := f.svc.Get(ctx, f.db, other.ID, resp.ID)
	assert.ErrorIs(t, err, apperrors.ErrResumeNotFound)

	values := resp.ResumeValues
	values.Title = "stolen"
	_, err = f.svc.Save(ctx, f.db, other.ID, values)
	assert.ErrorIs(t, err, apperrors.ErrResumeNotFound)

	assert.ErrorIs(t, f.svc.Delete(ctx, f.db, other.ID, resp.ID), apperrors.ErrResumeNotFound)

	got, err := f.svc.Get(ctx, f.db, f.user.ID, resp.ID)
	require.NoError(t, err)
	assert.Equal(t, "mine", got.Title)
}

func TestResumeService_PendingPhotoUploadsAndReleasesPrevious(t *testing.T) {
	f := newResumeFixture(t)
	ctx := context.Background()

	created := f.save(t, dto.ResumeValues{Title: "CV", Photo: pendingPhoto(t)})
	require.Equal(t, dto.PhotoURL, created.Photo.Kind)
	firstURL := created.Photo.URL
	assert.Contains(t, firstURL, "images/resume_photos/")
	assert.Empty(t, f.blobs.retries)

	values := created.ResumeValues
	values.Photo = pendingPhoto(t)
	updated, err := f.svc.Save(ctx, f.db, f.user.ID, values)
	require.NoError(t, err)

	assert.Equal(t, []string{firstURL}, f.blobs.retries)
	assert.Len(t, f.blobs.uploads, 2)
	assert.NotEqual(t, firstURL, updated.Photo.URL)
}

func TestResumeService_PhotoNoneReleasesAndClears(t *testing.T) {
	f := newResumeFixture(t)
	created := f.save(t, dto.ResumeValues{Title: "CV", Photo: pendingPhoto(t)})

	values := created.ResumeValues
	values.Photo = dto.NoPhoto()
	updated, err := f.svc.Save(context.Background(), f.db, f.user.ID, values)
	require.NoError(t, err)

	assert.Equal(t, dto.PhotoNone, updated.Photo.Kind)
	assert.Equal(t, []string{created.Photo.URL}, f.blobs.retries)
}

func TestResumeService_PhotoKeepLeavesPhoto(t *testing.T) {
	f := newResumeFixture(t)
	created := f.save(t, dto.ResumeValues{Title: "CV", Photo: pendingPhoto(t)})

	values := created.ResumeValues
	values.Photo = dto.Photo{}
	values.Title = "CV v2"
	updated, err := f.svc.Save(context.Background(), f.db, f.user.ID, values)
	require.NoError(t, err)

	assert.Equal(t, created.Photo.URL, updated.Photo.URL)
	assert.Empty(t, f.blobs.retries)
}

func TestResumeService_UploadFailureWritesNothing(t *testing.T) {
	f := newResumeFixture(t)
	ctx := context.Background()
	created := f.save(t, dto.ResumeValues{Title: "before", Photo: pendingPhoto(t)})

	f.blobs.failUpload = true
	values := created.ResumeValues
	values.Title = "after"
	values.Photo = pendingPhoto(t)

	_, err := f.svc.Save(ctx, f.db, f.user.ID, values)
	appErr := requireAppCode(t, err, apperrors.CodeExternalServiceError)
	assert.Equal(t, 502, appErr.HTTPCode)

	assert.Empty(t, f.blobs.retries)
	got, err := f.svc.Get(ctx, f.db, f.user.ID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "before", got.Title)
	assert.Equal(t, created.Photo.URL, got.Photo.URL)
}

func TestResumeService_DeleteAttemptsPhotoExactlyOnce(t *testing.T) {
	for _, deleteOK := range []bool{true, false} {
		f := newResumeFixture(t)
		ctx := context.Background()
		created := f.save(t, dto.ResumeValues{
			Title:           "CV",
			Photo:           pendingPhoto(t),
			WorkExperiences: []dto.WorkExperienceValues{{Position: "Engineer"}},
		})
		f.blobs.deleteOK = deleteOK

		require.NoError(t, f.svc.Delete(ctx, f.db, f.user.ID, created.ID))

		assert.Equal(t, []string{created.Photo.URL}, f.blobs.deletes)
		assert.Empty(t, f.blobs.retries)

		_, err := f.svc.Get(ctx, f.db, f.user.ID, created.ID)
		assert.ErrorIs(t, err, apperrors.ErrResumeNotFound)

		var children int64
		require.NoError(t, f.db.Model(&models.WorkExperience{}).Where("resume_id = ?", created.ID).Count(&children).Error)
		assert.Zero(t, children)
	}
}

func TestResumeService_DeleteWithoutPhotoSkipsGateway(t *testing.T) {
	f := newResumeFixture(t)
	created := f.save(t, dto.ResumeValues{Title: "CV"})

	require.NoError(t, f.svc.Delete(context.Background(), f.db, f.user.ID, created.ID))
	assert.Empty(t, f.blobs.deletes)
}

func TestResumeService_ListOwnOnly(t *testing.T) {
	f := newResumeFixture(t)
	ctx := context.Background()
	f.save(t, dto.ResumeValues{Title: "a"})
	f.save(t, dto.ResumeValues{Title: "b"})

	other := createUser(t, f.db, "other@example.com", models.UserRoleUser)
	_, err := f.svc.Save(ctx, f.db, other.ID, dto.ResumeValues{Title: "c"})
	require.NoError(t, err)

	list, err := f.svc.List(ctx, f.db, f.user.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	titles := []string{list[0].Title, list[1].Title}
	assert.ElementsMatch(t, []string{"a", "b"}, titles)
}
