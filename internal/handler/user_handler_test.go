package handler

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"userhub/internal/auth"
	"userhub/internal/model"
	"userhub/internal/upload"
)

// MockUserService is a mock implementation of service.UserService; it also
// satisfies auth.UserResolver for the guard.
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetUser(ctx context.Context, id uint) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserService) UpdateAvatar(ctx context.Context, userID uint, avatar *upload.File) (string, error) {
	args := m.Called(ctx, userID, avatar)
	return args.String(0), args.Error(1)
}

func guardedApp(t *testing.T, mockSvc *MockUserService) (*echo.Echo, *auth.JWTService) {
	t.Helper()
	e := newTestEcho()
	jwtService := auth.NewJWTService("test-secret")
	guard := auth.Guard(jwtService, mockSvc)

	h := NewUserHandler(mockSvc)
	e.GET("/current", h.Current, guard...)
	avatarChain := append(append([]echo.MiddlewareFunc{}, guard...), upload.Receive(t.TempDir(), "avatar"))
	e.PATCH("/avatars", h.UpdateAvatar, avatarChain...)
	return e, jwtService
}

func TestUserHandler_Current(t *testing.T) {
	mockSvc := new(MockUserService)
	mockSvc.On("GetUser", mock.Anything, uint(42)).Return(&model.User{
		ID:           42,
		Email:        "test@example.com",
		PasswordHash: "secret-hash",
		Subscription: model.SubscriptionStarter,
		AvatarURL:    "/avatars/x.png",
	}, nil)

	e, jwtService := guardedApp(t, mockSvc)
	token, err := jwtService.GenerateToken(42)
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/current", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	// exactly email and subscription, nothing else
	assert.JSONEq(t, `{"email":"test@example.com","subscription":"starter"}`, rec.Body.String())
}

func TestUserHandler_Current_Unauthorized(t *testing.T) {
	mockSvc := new(MockUserService)
	mockSvc.On("GetUser", mock.Anything, uint(99)).Return(nil, gorm.ErrRecordNotFound)

	e, jwtService := guardedApp(t, mockSvc)

	validToken, err := jwtService.GenerateToken(99)
	assert.NoError(t, err)

	goodToken, err := jwtService.GenerateToken(1)
	assert.NoError(t, err)
	parts := strings.Split(goodToken, ".")
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	parts[2] = string(sig)
	tamperedToken := strings.Join(parts, ".")

	tests := []struct {
		name   string
		header string
	}{
		{name: "missing header", header: ""},
		{name: "malformed header", header: "Token abc"},
		{name: "tampered token", header: "Bearer " + tamperedToken},
		{name: "valid token for deleted user", header: "Bearer " + validToken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/current", nil)
			if tt.header != "" {
				req.Header.Set(echo.HeaderAuthorization, tt.header)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func avatarRequest(t *testing.T, token string) *http.Request {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 30, 30))
	for x := 0; x < 30; x++ {
		for y := 0; y < 30; y++ {
			img.Set(x, y, color.RGBA{R: 10, G: 20, B: 30, A: 255})
		}
	}
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("avatar", "photo.png")
	assert.NoError(t, err)
	assert.NoError(t, png.Encode(part, img))
	assert.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPatch, "/avatars", &body)
	req.Header.Set(echo.HeaderContentType, writer.FormDataContentType())
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	return req
}

func TestUserHandler_UpdateAvatar(t *testing.T) {
	mockSvc := new(MockUserService)
	mockSvc.On("GetUser", mock.Anything, uint(42)).Return(&model.User{ID: 42, Email: "test@example.com"}, nil)
	mockSvc.On("UpdateAvatar", mock.Anything, uint(42), mock.AnythingOfType("*upload.File")).Return("/avatars/uuid_photo.png", nil)

	e, jwtService := guardedApp(t, mockSvc)
	token, err := jwtService.GenerateToken(42)
	assert.NoError(t, err)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, avatarRequest(t, token))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"avatarURL":"/avatars/uuid_photo.png"}`, rec.Body.String())
	mockSvc.AssertExpectations(t)
}

func TestUserHandler_UpdateAvatar_MissingFile(t *testing.T) {
	mockSvc := new(MockUserService)
	mockSvc.On("GetUser", mock.Anything, uint(42)).Return(&model.User{ID: 42, Email: "test@example.com"}, nil)

	e, jwtService := guardedApp(t, mockSvc)
	token, err := jwtService.GenerateToken(42)
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodPatch, "/avatars", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	mockSvc.AssertNotCalled(t, "UpdateAvatar", mock.Anything, mock.Anything, mock.Anything)
}

func TestUserHandler_UpdateAvatar_RequiresAuth(t *testing.T) {
	e, _ := guardedApp(t, new(MockUserService))

	req := httptest.NewRequest(http.MethodPatch, "/avatars", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
