package middleware_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"moviewatch/internal/domain"
	apperror "moviewatch/internal/errors"
	"moviewatch/internal/pkg/middleware"
	"moviewatch/internal/pkg/token"
)

// MockTokenValidator é um mock da validação de JWT usada pelo middleware.
type MockTokenValidator struct {
	mock.Mock
}

func (m *MockTokenValidator) ValidateToken(tokenString string) (*token.CustomClaims, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*token.CustomClaims), args.Error(1)
}

// MockUserLoader é um mock da carga do usuário dono do token.
type MockUserLoader struct {
	mock.Mock
}

func (m *MockUserLoader) FindByID(ctx domain.Context, id string) (domain.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.User), args.Error(1)
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) domain.ErrorResponse {
	t.Helper()
	var body domain.ErrorResponse
	assert.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

// TestAuthMiddleware_Fail_NoToken testa requisição sem token algum: 401 e parada.
func TestAuthMiddleware_Fail_NoToken(t *testing.T) {
	mockValidator := new(MockTokenValidator)
	mockUsers := new(MockUserLoader)

	nextCalled := false
	handler := middleware.NewAuthMiddleware(mockValidator, mockUsers)(func(w http.ResponseWriter, r *http.Request) {
		nextCalled = true
	})

	req := httptest.NewRequest(http.MethodGet, "/watchlist", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, nextCalled)
	body := decodeError(t, rec)
	assert.Equal(t, "UNAUTHORIZED", body.Category)
	mockValidator.AssertNotCalled(t, "ValidateToken", mock.Anything)
}

// TestAuthMiddleware_Fail_InvalidToken testa token inválido/expirado: 401 e parada.
func TestAuthMiddleware_Fail_InvalidToken(t *testing.T) {
	mockValidator := new(MockTokenValidator)
	mockUsers := new(MockUserLoader)

	mockValidator.On("ValidateToken", "token-podre").Return(nil, errors.New("token inválido"))

	nextCalled := false
	handler := middleware.NewAuthMiddleware(mockValidator, mockUsers)(func(w http.ResponseWriter, r *http.Request) {
		nextCalled = true
	})

	req := httptest.NewRequest(http.MethodGet, "/watchlist", nil)
	req.Header.Set("Authorization", "Bearer token-podre")
	rec := httptest.NewRecorder()
	handler(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, nextCalled)
	mockUsers.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

// TestAuthMiddleware_Fail_UserDeleted testa token válido de usuário removido: 401.
func TestAuthMiddleware_Fail_UserDeleted(t *testing.T) {
	mockValidator := new(MockTokenValidator)
	mockUsers := new(MockUserLoader)

	userID := uuid.New().String()
	mockValidator.On("ValidateToken", "token-orfao").Return(&token.CustomClaims{UserID: userID}, nil)
	mockUsers.On("FindByID", mock.Anything, userID).
		Return(domain.User{}, apperror.NewNotFoundError("Usuário não encontrado."))

	nextCalled := false
	handler := middleware.NewAuthMiddleware(mockValidator, mockUsers)(func(w http.ResponseWriter, r *http.Request) {
		nextCalled = true
	})

	req := httptest.NewRequest(http.MethodGet, "/watchlist", nil)
	req.Header.Set("Authorization", "Bearer token-orfao")
	rec := httptest.NewRecorder()
	handler(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, nextCalled)
	mockUsers.AssertExpectations(t)
}

// TestAuthMiddleware_Success_BearerHeader testa o caminho feliz via header Bearer:
// a identidade (com a role atual do banco) fica disponível no contexto.
func TestAuthMiddleware_Success_BearerHeader(t *testing.T) {
	mockValidator := new(MockTokenValidator)
	mockUsers := new(MockUserLoader)

	user := domain.User{ID: uuid.New().String(), Email: "ana@example.com", Role: domain.RoleAdmin}
	mockValidator.On("ValidateToken", "token-bom").Return(&token.CustomClaims{UserID: user.ID}, nil)
	mockUsers.On("FindByID", mock.Anything, user.ID).Return(user, nil)

	var gotClaims middleware.UserClaims
	var gotOK bool
	handler := middleware.NewAuthMiddleware(mockValidator, mockUsers)(func(w http.ResponseWriter, r *http.Request) {
		gotClaims, gotOK = middleware.GetUserClaimsFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/watchlist", nil)
	req.Header.Set("Authorization", "Bearer token-bom")
	rec := httptest.NewRecorder()
	handler(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, gotOK)
	assert.Equal(t, user.ID, gotClaims.UserID)
	assert.Equal(t, user.Email, gotClaims.Email)
	assert.Equal(t, domain.RoleAdmin, gotClaims.Role)
}

// TestAuthMiddleware_Success_Cookie testa o caminho feliz via cookie de sessão.
func TestAuthMiddleware_Success_Cookie(t *testing.T) {
	mockValidator := new(MockTokenValidator)
	mockUsers := new(MockUserLoader)

	user := domain.User{ID: uuid.New().String(), Email: "ana@example.com", Role: domain.RoleUser}
	mockValidator.On("ValidateToken", "token-cookie").Return(&token.CustomClaims{UserID: user.ID}, nil)
	mockUsers.On("FindByID", mock.Anything, user.ID).Return(user, nil)

	handler := middleware.NewAuthMiddleware(mockValidator, mockUsers)(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/watchlist", nil)
	req.AddCookie(&http.Cookie{Name: token.CookieName, Value: "token-cookie"})
	rec := httptest.NewRecorder()
	handler(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func requestWithClaims(claims middleware.UserClaims) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/movies/add", nil)
	ctx := context.WithValue(req.Context(), middleware.UserClaimsKey, claims)
	return req.WithContext(ctx)
}

// TestPermissionMiddleware_Fail_NoClaims testa rota protegida sem identidade no contexto.
func TestPermissionMiddleware_Fail_NoClaims(t *testing.T) {
	nextCalled := false
	handler := middleware.PermissionMiddleware(domain.RoleAdmin)(func(w http.ResponseWriter, r *http.Request) {
		nextCalled = true
	})

	req := httptest.NewRequest(http.MethodPost, "/movies/add", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, nextCalled)
}

// TestPermissionMiddleware_Fail_RoleDenied testa que a negação de role responde 403
// e interrompe a cadeia: o próximo handler nunca executa.
func TestPermissionMiddleware_Fail_RoleDenied(t *testing.T) {
	nextCalled := false
	handler := middleware.PermissionMiddleware(domain.RoleAdmin, domain.RoleSuperAdmin)(func(w http.ResponseWriter, r *http.Request) {
		nextCalled = true
	})

	req := requestWithClaims(middleware.UserClaims{UserID: uuid.New().String(), Role: domain.RoleUser})
	rec := httptest.NewRecorder()
	handler(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, nextCalled)
	body := decodeError(t, rec)
	assert.Equal(t, "FORBIDDEN", body.Category)
}

// TestPermissionMiddleware_Success_AllowedRole testa a permissão concedida.
func TestPermissionMiddleware_Success_AllowedRole(t *testing.T) {
	nextCalled := false
	handler := middleware.PermissionMiddleware(domain.RoleAdmin, domain.RoleSuperAdmin)(func(w http.ResponseWriter, r *http.Request) {
		nextCalled = true
		w.WriteHeader(http.StatusOK)
	})

	req := requestWithClaims(middleware.UserClaims{UserID: uuid.New().String(), Role: domain.RoleSuperAdmin})
	rec := httptest.NewRecorder()
	handler(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, nextCalled)
}
