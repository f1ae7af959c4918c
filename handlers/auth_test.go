package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"voltport/models"
	"voltport/services/user"
)

type stubUserService struct {
	adminLoginErr error
}

func (s *stubUserService) RegisterUser(req user.SignupRequest) (*user.AuthResponse, error) {
	return nil, nil
}

func (s *stubUserService) AuthenticateUser(email, password string) (*user.AuthResponse, error) {
	return nil, nil
}

func (s *stubUserService) AuthenticateAdmin(email, password string) (*user.AuthResponse, error) {
	return nil, s.adminLoginErr
}

func (s *stubUserService) RevokeUserAuthToken(userID string) error { return nil }

func (s *stubUserService) GetUserByID(userID string) (*models.User, error) { return nil, nil }

func (s *stubUserService) UpdateUser(userID string, req user.UpdateUserRequest) (*models.User, error) {
	return nil, nil
}

func (s *stubUserService) DeleteUser(userID string) error { return nil }

func (s *stubUserService) GetAllUsers() ([]models.AdminUserView, error) { return nil, nil }

func (s *stubUserService) UpdateUserAdmin(userID string, req user.AdminUpdateUserRequest) (*models.User, error) {
	return nil, nil
}

func adminLogin(svc user.UserService) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/auth/admin/login", NewAuthHandler(svc).AdminLoginHandler)

	body := `{"email":"driver@example.com","password":"Sw0rdfish"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/admin/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAdminLogin_NonAdminGets403(t *testing.T) {
	w := adminLogin(&stubUserService{adminLoginErr: user.ErrAdminRequired})

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "admin access required")
}

func TestAdminLogin_BadCredentialsGet401(t *testing.T) {
	w := adminLogin(&stubUserService{adminLoginErr: errors.New("invalid email or password")})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
