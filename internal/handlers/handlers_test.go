package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io/fs"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"path/filepath"
	"strings"
	"testing"

	"cvbuilder_backend/database"
	"cvbuilder_backend/internal/app"
	"cvbuilder_backend/internal/config"
	"cvbuilder_backend/internal/models"
	"cvbuilder_backend/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type testServer struct {
	router   *gin.Engine
	db       *gorm.DB
	filesDir string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.Default()
	cfg.Server.Env = "test"
	cfg.JWT.Secret = "test-secret"
	cfg.Storage.BasePath = t.TempDir()
	cfg.Storage.BaseURL = "http://localhost:4000/files"
	cfg.Blob.RetryUnitMs = 1

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_pragma=foreign_keys(1)", uuid.NewString())
	db, err := database.Open(context.Background(), database.Config{Driver: database.DriverSQLite, DSN: dsn})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	store, err := storage.NewStorage(storage.Config{
		Type:     "local",
		BasePath: cfg.Storage.BasePath,
		BaseURL:  cfg.Storage.BaseURL,
	})
	require.NoError(t, err)

	return &testServer{
		router:   app.SetupRouter(cfg, db, store, nil),
		db:       db,
		filesDir: cfg.Storage.BasePath,
	}
}

func (s *testServer) do(t *testing.T, method, path, token string, body []byte, contentType string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) doJSON(t *testing.T, method, path, token string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	var body []byte
	if payload != nil {
		var err error
		body, err = json.Marshal(payload)
		require.NoError(t, err)
	}
	return s.do(t, method, path, token, body, "application/json")
}

func (s *testServer) register(t *testing.T, email string) (token, userID string) {
	t.Helper()
	w := s.doJSON(t, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"email":    email,
		"password": "Secret1!",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Token string `json:"token"`
		User  struct {
			ID string `json:"id"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token, resp.User.ID
}

func (s *testServer) storedFiles(t *testing.T) []string {
	t.Helper()
	var files []string
	err := filepath.WalkDir(s.filesDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			files = append(files, path)
		}
		return nil
	})
	require.NoError(t, err)
	return files
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) (code string) {
	t.Helper()
	var resp struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return resp.Error.Code
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{B: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

// multipartBody собирает форму с одним файлом и текстовыми полями.
func multipartBody(t *testing.T, field, filename, contentType string, data []byte, values map[string]string) ([]byte, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range values {
		require.NoError(t, mw.WriteField(k, v))
	}
	if field != "" {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, field, filename))
		h.Set("Content-Type", contentType)
		part, err := mw.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return buf.Bytes(), mw.FormDataContentType()
}

// ============================================
// AUTH & AVATAR
// ============================================

func TestAvatarUpload_TooLargeIsRejectedBeforeAnyWrite(t *testing.T) {
	s := newTestServer(t)
	token, userID := s.register(t, "an@example.com")

	body, ct := multipartBody(t, "avatar", "big.png", "image/png", make([]byte, 3*1024*1024), nil)
	w := s.do(t, http.MethodPost, "/api/v1/auth/upload-avatar", token, body, ct)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Equal(t, "LIMIT_EXCEEDED", decodeError(t, w))
	assert.Empty(t, s.storedFiles(t))

	var user models.User
	require.NoError(t, s.db.First(&user, "id = ?", userID).Error)
	assert.Nil(t, user.AvatarURL)
}

func TestAvatarUpload_StoresImageAndUpdatesUser(t *testing.T) {
	s := newTestServer(t)
	token, userID := s.register(t, "an@example.com")

	body, ct := multipartBody(t, "avatar", "me.png", "image/png", pngBytes(t), nil)
	w := s.do(t, http.MethodPost, "/api/v1/auth/upload-avatar", token, body, ct)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Len(t, s.storedFiles(t), 1)

	var user models.User
	require.NoError(t, s.db.First(&user, "id = ?", userID).Error)
	require.NotNil(t, user.AvatarURL)
	assert.True(t, strings.HasPrefix(*user.AvatarURL, "http://localhost:4000/files/images/avatars/"))

	w = s.do(t, http.MethodDelete, "/api/v1/auth/delete-avatar", token, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, s.storedFiles(t))
}

func TestAvatarUpload_SVGIsRejected(t *testing.T) {
	s := newTestServer(t)
	token, userID := s.register(t, "an@example.com")

	svg := []byte(`<svg xmlns="http://www.w3.org/2000/svg"><script>fetch('/api/v1/auth/me')</script></svg>`)
	body, ct := multipartBody(t, "avatar", "x.svg", "image/svg+xml", svg, nil)
	w := s.do(t, http.MethodPost, "/api/v1/auth/upload-avatar", token, body, ct)

	assert.Equal(t, http.StatusUnsupportedMediaType, w.Code, w.Body.String())
	assert.Empty(t, s.storedFiles(t))

	var user models.User
	require.NoError(t, s.db.First(&user, "id = ?", userID).Error)
	assert.Nil(t, user.AvatarURL)
}

func TestAuth_MeRequiresSession(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/api/v1/auth/me", "", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(t, http.MethodGet, "/api/v1/auth/me", "not-a-token", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "INVALID_TOKEN", decodeError(t, w))

	token, _ := s.register(t, "an@example.com")
	w = s.do(t, http.MethodGet, "/api/v1/auth/me", token, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"premiumModal":false`)
}

func TestAuth_LoginSetsCookie(t *testing.T) {
	s := newTestServer(t)
	s.register(t, "an@example.com")

	w := s.doJSON(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    "an@example.com",
		"password": "Secret1!",
	})
	require.Equal(t, http.StatusOK, w.Code)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "auth_token", cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)

	// cookie принимается вместо заголовка Authorization
	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	req.AddCookie(cookies[0])
	me := httptest.NewRecorder()
	s.router.ServeHTTP(me, req)
	assert.Equal(t, http.StatusOK, me.Code)
}

func TestAuth_WeakPasswordRejected(t *testing.T) {
	s := newTestServer(t)
	w := s.doJSON(t, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"email":    "an@example.com",
		"password": "password",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_FAILED", decodeError(t, w))
}

// ============================================
// RESUMES
// ============================================

func TestResumes_CRUDAndPreview(t *testing.T) {
	s := newTestServer(t)
	token, _ := s.register(t, "an@example.com")

	w := s.doJSON(t, http.MethodPost, "/api/v1/resumes", token, map[string]any{
		"title":     "CV",
		"firstName": "An",
		"lastName":  "Nguyen",
		"workExperiences": []map[string]string{
			{"position": "Dev", "company": "X", "startDate": "2020-01-01"},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created struct {
		Message string `json:"message"`
		Resume  struct {
			ID string `json:"id"`
		} `json:"resume"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.NotEmpty(t, created.Resume.ID)
	assert.NotEmpty(t, created.Message)

	w = s.do(t, http.MethodGet, "/api/v1/resumes", token, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), created.Resume.ID)

	w = s.do(t, http.MethodGet, "/api/v1/resumes/"+created.Resume.ID+"/preview?template=professional", token, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), "An Nguyen")
	assert.Contains(t, w.Body.String(), "01/2020 - Hiện tại")

	w = s.do(t, http.MethodDelete, "/api/v1/resumes/"+created.Resume.ID, token, nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodGet, "/api/v1/resumes/"+created.Resume.ID, token, nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestResumes_OtherUsersResumeIsNotFound(t *testing.T) {
	s := newTestServer(t)
	owner, _ := s.register(t, "owner@example.com")
	other, _ := s.register(t, "other@example.com")

	w := s.doJSON(t, http.MethodPost, "/api/v1/resumes", owner, map[string]any{"title": "Mine"})
	require.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		Resume struct {
			ID string `json:"id"`
		} `json:"resume"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = s.doJSON(t, http.MethodPut, "/api/v1/resumes/"+created.Resume.ID, other, map[string]any{"title": "Stolen"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, http.MethodDelete, "/api/v1/resumes/"+created.Resume.ID, other, nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestResumes_RequireAuth(t *testing.T) {
	s := newTestServer(t)
	w := s.do(t, http.MethodGet, "/api/v1/resumes", "", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestResumes_MultipartPhotoIsStoredAndServed(t *testing.T) {
	s := newTestServer(t)
	token, _ := s.register(t, "an@example.com")

	body, ct := multipartBody(t, "photo", "me.png", "image/png", pngBytes(t), map[string]string{
		"data": `{"title":"With photo","firstName":"An"}`,
	})
	w := s.do(t, http.MethodPost, "/api/v1/resumes", token, body, ct)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created struct {
		Resume struct {
			Photo string `json:"photo"`
		} `json:"resume"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.True(t, strings.HasPrefix(created.Resume.Photo, "http://localhost:4000/files/images/resume_photos/"))
	assert.Len(t, s.storedFiles(t), 1)

	path := strings.TrimPrefix(created.Resume.Photo, "http://localhost:4000")
	w = s.do(t, http.MethodGet, path, "", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Contains(t, w.Header().Get("Content-Security-Policy"), "sandbox")
	assert.Equal(t, pngBytes(t), w.Body.Bytes())
}

func TestResumes_ValidationErrorHasDetails(t *testing.T) {
	s := newTestServer(t)
	token, _ := s.register(t, "an@example.com")

	w := s.doJSON(t, http.MethodPost, "/api/v1/resumes", token, map[string]any{
		"colorHex": "blue",
		"workExperiences": []map[string]string{
			{"position": "Dev", "startDate": "01/2020"},
		},
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Error struct {
			Details map[string]string `json:"details"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Error.Details, "colorHex")
	assert.Contains(t, resp.Error.Details, "workExperiences[0].startDate")
}

func TestResumes_SectionUpdateReplacesOnlyThatSlice(t *testing.T) {
	s := newTestServer(t)
	token, _ := s.register(t, "an@example.com")

	w := s.doJSON(t, http.MethodPost, "/api/v1/resumes", token, map[string]any{
		"title":  "CV",
		"skills": []string{"Go"},
		"projects": []map[string]any{
			{"name": "A"}, {"name": "B"}, {"name": "C"},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		Resume struct {
			ID string `json:"id"`
		} `json:"resume"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = s.doJSON(t, http.MethodPut, "/api/v1/resumes/"+created.Resume.ID+"/sections/projects", token, map[string]any{
		"projects": []map[string]any{{"name": "Only"}},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		NextStep string `json:"nextStep"`
		Resume   struct {
			Projects []struct {
				Name string `json:"name"`
			} `json:"projects"`
			Skills []string `json:"skills"`
		} `json:"resume"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Resume.Projects, 1)
	assert.Equal(t, "Only", resp.Resume.Projects[0].Name)
	assert.Equal(t, []string{"Go"}, resp.Resume.Skills)
	assert.Equal(t, "hobbies", resp.NextStep)

	w = s.doJSON(t, http.MethodPut, "/api/v1/resumes/"+created.Resume.ID+"/sections/nope", token, map[string]any{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestResumes_SectionBodyTooLarge(t *testing.T) {
	s := newTestServer(t)
	token, _ := s.register(t, "an@example.com")

	w := s.doJSON(t, http.MethodPost, "/api/v1/resumes", token, map[string]any{"title": "CV"})
	require.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		Resume struct {
			ID string `json:"id"`
		} `json:"resume"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	body := []byte(`{"summary":"` + strings.Repeat("a", 2<<20) + `"}`)
	w = s.do(t, http.MethodPut, "/api/v1/resumes/"+created.Resume.ID+"/sections/career-goals", token, body, "application/json")
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Equal(t, "LIMIT_EXCEEDED", decodeError(t, w))
}

func TestResumes_StyleUpdate(t *testing.T) {
	s := newTestServer(t)
	token, _ := s.register(t, "an@example.com")

	w := s.doJSON(t, http.MethodPost, "/api/v1/resumes", token, map[string]any{
		"title":        "CV",
		"skills":       []string{"Go"},
		"colorHex":     "#000000",
		"templateType": "minimal",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		Resume struct {
			ID string `json:"id"`
		} `json:"resume"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = s.doJSON(t, http.MethodPut, "/api/v1/resumes/"+created.Resume.ID+"/style", token, map[string]any{
		"colorHex": "#2563EB",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Resume struct {
			ColorHex     string   `json:"colorHex"`
			TemplateType string   `json:"templateType"`
			Skills       []string `json:"skills"`
		} `json:"resume"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "#2563eb", resp.Resume.ColorHex)
	assert.Equal(t, "minimal", resp.Resume.TemplateType)
	assert.Equal(t, []string{"Go"}, resp.Resume.Skills)

	w = s.doJSON(t, http.MethodPut, "/api/v1/resumes/"+created.Resume.ID+"/style", token, map[string]any{
		"colorHex": "blue",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestResumes_PreviewDraftDoesNotPersist(t *testing.T) {
	s := newTestServer(t)
	token, _ := s.register(t, "an@example.com")

	w := s.doJSON(t, http.MethodPost, "/api/v1/resumes/preview?template=minimal", token, map[string]any{
		"firstName": "An",
		"lastName":  "Nguyen",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "An Nguyen")

	var count int64
	require.NoError(t, s.db.Model(&models.Resume{}).Count(&count).Error)
	assert.Zero(t, count)
}

// ============================================
// TEMPLATES, ADMIN, OPS
// ============================================

func TestTemplates_ListAndDraft(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/api/v1/templates", "", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	var list []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list, 4)

	w = s.do(t, http.MethodGet, "/api/v1/templates/professional/draft", "", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token, _ := s.register(t, "an@example.com")
	w = s.do(t, http.MethodGet, "/api/v1/templates/professional/draft", token, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"templateType":"professional"`)
	assert.Contains(t, w.Body.String(), `"key":"general-info"`)

	w = s.do(t, http.MethodGet, "/api/v1/templates/unknown/draft", token, nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdmin_RequiresAdminRole(t *testing.T) {
	s := newTestServer(t)
	token, userID := s.register(t, "an@example.com")

	w := s.do(t, http.MethodGet, "/api/v1/admin/users", token, nil, "")
	assert.Equal(t, http.StatusForbidden, w.Code)

	// повышаем роль и выпускаем новый токен через login
	require.NoError(t, s.db.Model(&models.User{}).Where("id = ?", userID).Update("role", models.UserRoleAdmin).Error)
	w = s.doJSON(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{"email": "an@example.com", "password": "Secret1!"})
	require.Equal(t, http.StatusOK, w.Code)
	var login struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &login))

	w = s.do(t, http.MethodGet, "/api/v1/admin/users?page=1&limit=5", login.Token, nil, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"total":1`)

	w = s.do(t, http.MethodDelete, "/api/v1/admin/users/"+userID, login.Token, nil, "")
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(t, http.MethodGet, "/api/v1/admin/dashboard", login.Token, nil, "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodGet, "/api/v1/admin/dashboard/monthly?months=3", login.Token, nil, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var monthly struct {
		MonthlyData []struct {
			Users int64 `json:"users"`
		} `json:"monthlyData"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &monthly))
	require.Len(t, monthly.MonthlyData, 3)
	assert.EqualValues(t, 1, monthly.MonthlyData[2].Users)

	w = s.do(t, http.MethodGet, "/api/v1/admin/dashboard/monthly?months=99", login.Token, nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHealthAndRequestID(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/health", "", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestCORS_Preflight(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/resumes", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))

	req = httptest.NewRequest(http.MethodOptions, "/api/v1/resumes", nil)
	req.Header.Set("Origin", "http://evil.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w = httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestAuth_LogoutRevokesToken(t *testing.T) {
	s := newTestServer(t)
	token, _ := s.register(t, "an@example.com")

	w := s.do(t, http.MethodGet, "/api/v1/auth/me", token, nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodPost, "/api/v1/auth/logout", token, nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodGet, "/api/v1/auth/me", token, nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "INVALID_TOKEN", decodeError(t, w))

	// logout без сессии не ошибка
	w = s.do(t, http.MethodPost, "/api/v1/auth/logout", "", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
}
