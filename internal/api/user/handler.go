package user

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"moviewatch/internal/domain"
	apperror "moviewatch/internal/errors"
	"moviewatch/internal/pkg/logger"
)

// UserService define o contrato administrativo que o Handler espera da camada de Serviço.
type UserService interface {
	ListUsers(ctx domain.Context) ([]domain.User, error)
	GetUserByID(ctx domain.Context, id string) (domain.User, error)
	DeleteUser(ctx domain.Context, id string) error
}

// Handler agrupa os métodos administrativos de usuário.
// Todas as rotas deste handler exigem Auth Gate + Role Gate (Admin/Super_Admin).
type Handler struct {
	Service UserService
	Logger  logger.Logger
	devMode bool
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc UserService, log logger.Logger, devMode bool) *Handler {
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

// GetAllUsersHandler lida com a requisição GET /users.
// @Summary Lista todos os usuários (Admin/Super_Admin)
// @Tags users
// @Produce json
// @Success 200 {object} map[string]interface{} "Usuários cadastrados"
// @Failure 403 {object} domain.ErrorResponse "Role sem permissão"
// @Router /users [get]
func (h *Handler) GetAllUsersHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
		return
	}

	users, err := h.Service.ListUsers(r.Context())
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	// O hash de senha nunca sai daqui: domain.User usa a tag `json:"-"`.
	response := map[string]interface{}{
		"users": users,
		"total": len(users),
	}
	h.handleServiceResponse(w, r, response, nil, http.StatusOK)
}

// GetUserByIDHandler lida com a requisição GET /users/{id}.
// @Summary Busca um usuário pelo ID (Admin/Super_Admin)
// @Tags users
// @Produce json
// @Param id path string true "ID do usuário (UUID)"
// @Success 200 {object} domain.User "Usuário encontrado"
// @Failure 400 {object} domain.ErrorResponse "ID não é um UUID válido"
// @Failure 404 {object} domain.ErrorResponse "Usuário não encontrado"
// @Router /users/{id} [get]
func (h *Handler) GetUserByIDHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.extractValidID(w, r)
	if !ok {
		return
	}

	foundUser, err := h.Service.GetUserByID(r.Context(), userID)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	h.handleServiceResponse(w, r, foundUser, nil, http.StatusOK)
}

// DeleteUserHandler lida com a requisição DELETE /users/{id}.
// @Summary Remove um usuário (Admin/Super_Admin)
// @Tags users
// @Produce json
// @Param id path string true "ID do usuário (UUID)"
// @Success 200 {object} map[string]string "Usuário removido"
// @Failure 404 {object} domain.ErrorResponse "Usuário não encontrado"
// @Router /users/{id} [delete]
func (h *Handler) DeleteUserHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.extractValidID(w, r)
	if !ok {
		return
	}

	if err := h.Service.DeleteUser(r.Context(), userID); err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	response := map[string]string{"message": "Usuário removido com sucesso."}
	h.handleServiceResponse(w, r, response, nil, http.StatusOK)
}

// extractValidID extrai o segmento de ID do path e valida o formato UUID.
func (h *Handler) extractValidID(w http.ResponseWriter, r *http.Request) (string, bool) {
	segments := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if len(segments) != 2 || segments[1] == "" {
		h.handleServiceResponse(w, r, nil, apperror.NewValidationError("Formato de URL inválido ou ID ausente."), http.StatusOK)
		return "", false
	}

	if _, err := uuid.Parse(segments[1]); err != nil {
		h.handleServiceResponse(w, r, nil, apperror.NewValidationError("O ID do usuário deve ser um UUID válido."), http.StatusOK)
		return "", false
	}

	return segments[1], true
}
