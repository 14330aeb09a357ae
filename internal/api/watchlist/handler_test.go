package watchlist_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"moviewatch/internal/api/watchlist"
	"moviewatch/internal/domain"
	apperror "moviewatch/internal/errors"
	"moviewatch/internal/pkg/logger"
	"moviewatch/internal/pkg/middleware"
)

// MockWatchlistService é um mock da camada de serviço da watchlist.
type MockWatchlistService struct {
	mock.Mock
}

func (m *MockWatchlistService) AddToWatchlist(ctx domain.Context, userID string, req domain.AddToWatchlistRequest) (domain.WatchlistItem, error) {
	args := m.Called(ctx, userID, req)
	return args.Get(0).(domain.WatchlistItem), args.Error(1)
}

func (m *MockWatchlistService) UpdateItem(ctx domain.Context, itemID, requesterID string, patch domain.WatchlistPatch) (domain.WatchlistItem, error) {
	args := m.Called(ctx, itemID, requesterID, patch)
	return args.Get(0).(domain.WatchlistItem), args.Error(1)
}

func (m *MockWatchlistService) RemoveItem(ctx domain.Context, itemID, requesterID string) error {
	args := m.Called(ctx, itemID, requesterID)
	return args.Error(0)
}

func (m *MockWatchlistService) ListItemsForUser(ctx domain.Context, userID string) ([]domain.WatchlistItem, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.WatchlistItem), args.Error(1)
}

func (m *MockWatchlistService) ListMoviesForUser(ctx domain.Context, userID string) ([]domain.Movie, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Movie), args.Error(1)
}

func authenticatedRequest(method, path, body string, userID string) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	claims := middleware.UserClaims{UserID: userID, Email: "ana@example.com", Role: domain.RoleUser}
	return req.WithContext(context.WithValue(req.Context(), middleware.UserClaimsKey, claims))
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) domain.ErrorResponse {
	t.Helper()
	var body domain.ErrorResponse
	assert.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

// TestUpdateWatchlist_ForeignItemLooksLikeNotFound testa que a falha de posse
// sai para o cliente como 404, indistinguível de item inexistente.
func TestUpdateWatchlist_ForeignItemLooksLikeNotFound(t *testing.T) {
	mockSvc := new(MockWatchlistService)
	handler := watchlist.NewHandler(mockSvc, logger.NewLogger("debug"), true)

	itemID := uuid.New().String()
	requesterID := uuid.New().String()
	mockSvc.On("UpdateItem", mock.Anything, itemID, requesterID, mock.Anything).
		Return(domain.WatchlistItem{}, apperror.NewForbiddenError("O item não pertence ao usuário autenticado."))

	req := authenticatedRequest(http.MethodPut, "/watchlist/"+itemID, `{"status":"COMPLETED"}`, requesterID)
	rec := httptest.NewRecorder()
	handler.UpdateWatchlistHandler(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, "NOT_FOUND", body.Category)
	// Nenhum vestígio da razão real (posse) pode vazar na mensagem
	assert.NotContains(t, body.Message, "pertence")
}

// TestRemoveWatchlist_ForeignItemLooksLikeNotFound cobre o mesmo mascaramento no DELETE.
func TestRemoveWatchlist_ForeignItemLooksLikeNotFound(t *testing.T) {
	mockSvc := new(MockWatchlistService)
	handler := watchlist.NewHandler(mockSvc, logger.NewLogger("debug"), true)

	itemID := uuid.New().String()
	requesterID := uuid.New().String()
	mockSvc.On("RemoveItem", mock.Anything, itemID, requesterID).
		Return(apperror.NewForbiddenError("O item não pertence ao usuário autenticado."))

	req := authenticatedRequest(http.MethodDelete, "/watchlist/"+itemID, "", requesterID)
	rec := httptest.NewRecorder()
	handler.RemoveWatchlistHandler(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NOT_FOUND", decodeError(t, rec).Category)
}

// TestAddToWatchlist_Success testa o caminho feliz do POST /watchlist.
func TestAddToWatchlist_Success(t *testing.T) {
	mockSvc := new(MockWatchlistService)
	handler := watchlist.NewHandler(mockSvc, logger.NewLogger("debug"), true)

	userID := uuid.New().String()
	movieID := uuid.New().String()
	created := domain.WatchlistItem{ID: uuid.New().String(), UserID: userID, MovieID: movieID, Status: domain.StatusPlanned}

	mockSvc.On("AddToWatchlist", mock.Anything, userID, domain.AddToWatchlistRequest{MovieID: movieID}).
		Return(created, nil)

	req := authenticatedRequest(http.MethodPost, "/watchlist", `{"movie_id":"`+movieID+`"}`, userID)
	rec := httptest.NewRecorder()
	handler.AddToWatchlistHandler(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	mockSvc.AssertExpectations(t)
}

// TestAddToWatchlist_Fail_Conflict testa que a duplicata sai como 409.
func TestAddToWatchlist_Fail_Conflict(t *testing.T) {
	mockSvc := new(MockWatchlistService)
	handler := watchlist.NewHandler(mockSvc, logger.NewLogger("debug"), true)

	userID := uuid.New().String()
	movieID := uuid.New().String()
	mockSvc.On("AddToWatchlist", mock.Anything, userID, mock.Anything).
		Return(domain.WatchlistItem{}, apperror.NewConflictError("O filme já está na watchlist!"))

	req := authenticatedRequest(http.MethodPost, "/watchlist", `{"movie_id":"`+movieID+`"}`, userID)
	rec := httptest.NewRecorder()
	handler.AddToWatchlistHandler(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "CONFLICT", decodeError(t, rec).Category)
}

// TestListWatchlist_Fail_NoClaims testa rota chamada sem identidade no contexto.
func TestListWatchlist_Fail_NoClaims(t *testing.T) {
	mockSvc := new(MockWatchlistService)
	handler := watchlist.NewHandler(mockSvc, logger.NewLogger("debug"), true)

	req := httptest.NewRequest(http.MethodGet, "/watchlist", nil)
	rec := httptest.NewRecorder()
	handler.ListWatchlistHandler(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	mockSvc.AssertNotCalled(t, "ListMoviesForUser", mock.Anything, mock.Anything)
}

// TestListWatchlist_Success_Empty testa a listagem vazia de um usuário novo.
func TestListWatchlist_Success_Empty(t *testing.T) {
	mockSvc := new(MockWatchlistService)
	handler := watchlist.NewHandler(mockSvc, logger.NewLogger("debug"), true)

	userID := uuid.New().String()
	mockSvc.On("ListMoviesForUser", mock.Anything, userID).Return([]domain.Movie{}, nil)

	req := authenticatedRequest(http.MethodGet, "/watchlist", "", userID)
	rec := httptest.NewRecorder()
	handler.ListWatchlistHandler(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	assert.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, float64(0), body["total"])
}
