package watchlist

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"moviewatch/internal/domain"
	apperror "moviewatch/internal/errors"
	"moviewatch/internal/pkg/logger"
	"moviewatch/internal/pkg/middleware"
)

// WatchlistService define o contrato que o Handler espera da camada de Serviço.
type WatchlistService interface {
	AddToWatchlist(ctx domain.Context, userID string, req domain.AddToWatchlistRequest) (domain.WatchlistItem, error)
	UpdateItem(ctx domain.Context, itemID, requesterID string, patch domain.WatchlistPatch) (domain.WatchlistItem, error)
	RemoveItem(ctx domain.Context, itemID, requesterID string) error
	ListItemsForUser(ctx domain.Context, userID string) ([]domain.WatchlistItem, error)
	ListMoviesForUser(ctx domain.Context, userID string) ([]domain.Movie, error)
}

// Handler agrupa todos os métodos de Handler da watchlist.
// Todas as rotas deste handler passam pelo AuthMiddleware no roteador.
type Handler struct {
	Service WatchlistService
	Logger  logger.Logger
	devMode bool
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc WatchlistService, log logger.Logger, devMode bool) *Handler {
	return &Handler{
		Service: svc,
		Logger:  log,
		devMode: devMode,
	}
}

// handleServiceResponse processa erros de serviço e envia respostas padronizadas ao cliente.
func (h *Handler) handleServiceResponse(w http.ResponseWriter, r *http.Request, data interface{}, err error, successStatus int) {
	if err == nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(successStatus)
		if data != nil {
			if jsonErr := json.NewEncoder(w).Encode(data); jsonErr != nil {
				h.Logger.Error("Falha ao codificar JSON de resposta", jsonErr)
			}
		}
		return
	}

	// TRATAMENTO DE ERROS

	// Falha de posse é um tipo próprio no serviço, mas sai daqui como 404:
	// quem não é dono de um item não descobre nem que ele existe.
	var forbiddenErr *apperror.ForbiddenError
	if errors.As(err, &forbiddenErr) {
		err = apperror.NewNotFoundError("Item de watchlist não encontrado")
	}

	status, category, message := apperror.MapToHTTPStatus(err)

	if status >= 500 {
		h.Logger.Error(fmt.Sprintf("Erro de Servidor: %s", category), err)
		if !h.devMode {
			message = "Erro interno do servidor. Tente novamente mais tarde."
		}
	} else {
		h.Logger.Debug(fmt.Sprintf("Requisição rejeitada com status %d. Categoria: %s", status, category), map[string]interface{}{"path": r.URL.Path})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(domain.ErrorResponse{
		Code:     status,
		Category: category,
		Message:  message,
	})
}

// requireClaims extrai a identidade autenticada ou responde 401.
func (h *Handler) requireClaims(w http.ResponseWriter, r *http.Request) (middleware.UserClaims, bool) {
	claims, ok := middleware.GetUserClaimsFromContext(r.Context())
	if !ok {
		h.handleServiceResponse(w, r, nil, apperror.NewUnauthorizedError("Autorização necessária."), http.StatusOK)
		return middleware.UserClaims{}, false
	}
	return claims, true
}

// ListWatchlistHandler lida com a requisição GET /watchlist.
// Retorna os filmes da watchlist do usuário autenticado (join com o catálogo).
// @Summary Lista os filmes da watchlist do usuário autenticado
// @Tags watchlist
// @Produce json
// @Success 200 {object} map[string]interface{} "Filmes da watchlist"
// @Failure 401 {object} domain.ErrorResponse "Não autenticado"
// @Router /watchlist [get]
func (h *Handler) ListWatchlistHandler(w http.ResponseWriter, r *http.Request) {
	claims, ok := h.requireClaims(w, r)
	if !ok {
		return
	}

	movies, err := h.Service.ListMoviesForUser(r.Context(), claims.UserID)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	response := map[string]interface{}{
		"movies": movies,
		"total":  len(movies),
	}
	h.handleServiceResponse(w, r, response, nil, http.StatusOK)
}

// GetUserWatchlistHandler lida com a requisição GET /watchlist/{id}.
// Retorna os itens de watchlist de um usuário específico.
// @Summary Lista os itens de watchlist de um usuário
// @Tags watchlist
// @Produce json
// @Param id path string true "ID do usuário (UUID)"
// @Success 200 {object} map[string]interface{} "Itens de watchlist"
// @Failure 400 {object} domain.ErrorResponse "ID não é um UUID válido"
// @Router /watchlist/{id} [get]
func (h *Handler) GetUserWatchlistHandler(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.requireClaims(w, r); !ok {
		return
	}

	userID := extractIDSegment(r.URL.Path)
	if userID == "" {
		h.handleServiceResponse(w, r, nil, apperror.NewValidationError("Formato de URL inválido ou ID ausente."), http.StatusOK)
		return
	}

	items, err := h.Service.ListItemsForUser(r.Context(), userID)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	response := map[string]interface{}{
		"items": items,
		"total": len(items),
	}
	h.handleServiceResponse(w, r, response, nil, http.StatusOK)
}

// AddToWatchlistHandler lida com a requisição POST /watchlist.
// @Summary Adiciona um filme à watchlist do usuário autenticado
// @Tags watchlist
// @Accept json
// @Produce json
// @Param item body domain.AddToWatchlistRequest true "Filme e estado inicial"
// @Success 201 {object} map[string]interface{} "Item criado"
// @Failure 404 {object} domain.ErrorResponse "Filme não existe no catálogo"
// @Failure 409 {object} domain.ErrorResponse "Filme já está na watchlist"
// @Router /watchlist [post]
func (h *Handler) AddToWatchlistHandler(w http.ResponseWriter, r *http.Request) {
	claims, ok := h.requireClaims(w, r)
	if !ok {
		return
	}

	var req domain.AddToWatchlistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.handleServiceResponse(w, r, nil, apperror.NewValidationError("Payload inválido. Verifique o formato JSON."), http.StatusCreated)
		return
	}

	item, err := h.Service.AddToWatchlist(r.Context(), claims.UserID, req)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusCreated)
		return
	}

	response := map[string]interface{}{
		"message": "Filme adicionado à watchlist com sucesso!",
		"data":    item,
	}
	h.handleServiceResponse(w, r, response, nil, http.StatusCreated)
}

// UpdateWatchlistHandler lida com a requisição PUT /watchlist/{id}.
// Atualização parcial: apenas os campos presentes no payload são alterados.
// @Summary Atualiza um item da watchlist do usuário autenticado
// @Tags watchlist
// @Accept json
// @Produce json
// @Param id path string true "ID do item (UUID)"
// @Param patch body domain.WatchlistPatch true "Campos a atualizar"
// @Success 200 {object} map[string]interface{} "Item atualizado"
// @Failure 404 {object} domain.ErrorResponse "Item não encontrado ou não pertence ao usuário"
// @Router /watchlist/{id} [put]
func (h *Handler) UpdateWatchlistHandler(w http.ResponseWriter, r *http.Request) {
	claims, ok := h.requireClaims(w, r)
	if !ok {
		return
	}

	itemID := extractIDSegment(r.URL.Path)
	if itemID == "" {
		h.handleServiceResponse(w, r, nil, apperror.NewValidationError("Formato de URL inválido ou ID ausente."), http.StatusOK)
		return
	}

	var patch domain.WatchlistPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		h.handleServiceResponse(w, r, nil, apperror.NewValidationError("Payload inválido. Verifique o formato JSON."), http.StatusOK)
		return
	}

	item, err := h.Service.UpdateItem(r.Context(), itemID, claims.UserID, patch)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	response := map[string]interface{}{
		"message": "Item atualizado com sucesso!",
		"data":    item,
	}
	h.handleServiceResponse(w, r, response, nil, http.StatusOK)
}

// RemoveWatchlistHandler lida com a requisição DELETE /watchlist/{id}.
// @Summary Remove um item da watchlist do usuário autenticado
// @Tags watchlist
// @Produce json
// @Param id path string true "ID do item (UUID)"
// @Success 200 {object} map[string]string "Item removido"
// @Failure 404 {object} domain.ErrorResponse "Item não encontrado ou não pertence ao usuário"
// @Router /watchlist/{id} [delete]
func (h *Handler) RemoveWatchlistHandler(w http.ResponseWriter, r *http.Request) {
	claims, ok := h.requireClaims(w, r)
	if !ok {
		return
	}

	itemID := extractIDSegment(r.URL.Path)
	if itemID == "" {
		h.handleServiceResponse(w, r, nil, apperror.NewValidationError("Formato de URL inválido ou ID ausente."), http.StatusOK)
		return
	}

	if err := h.Service.RemoveItem(r.Context(), itemID, claims.UserID); err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	response := map[string]string{"message": "Item removido da watchlist com sucesso!"}
	h.handleServiceResponse(w, r, response, nil, http.StatusOK)
}

// extractIDSegment extrai o último segmento do path (/watchlist/{id} -> id).
func extractIDSegment(path string) string {
	segments := strings.Split(strings.Trim(path, "/"), "/")
	if len(segments) != 2 {
		return ""
	}
	return segments[1]
}
