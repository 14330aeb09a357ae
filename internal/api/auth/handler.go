package auth

import (
	"encoding/json"
	"net/http"

	"moviewatch/internal/domain"
	apperror "moviewatch/internal/errors"
	"moviewatch/internal/pkg/logger"
)

// UserService define o contrato que o Handler espera da camada de Serviço.
type UserService interface {
	Register(ctx domain.Context, registration domain.UserRegistration) (domain.User, error)
	Login(ctx domain.Context, email string, password string) (domain.User, string, error)
}

// CookieWriter é o subconjunto do serviço de token que o Handler usa para
// gravar/limpar o cookie de sessão.
type CookieWriter interface {
	SetTokenCookie(w http.ResponseWriter, tokenString string)
	ClearTokenCookie(w http.ResponseWriter)
}

// LoginRequest representa o payload de entrada para o login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Handler agrupa todos os métodos de Handler de autenticação.
type Handler struct {
	Service UserService
	Cookies CookieWriter
	Logger  logger.Logger
	devMode bool
}

// NewHandler cria uma nova instância do Handler, injetando o Service, o
// escritor de cookie e o Logger.
func NewHandler(svc UserService, cookies CookieWriter, log logger.Logger, devMode bool) *Handler {
	return &Handler{
		Service: svc,
		Cookies: cookies,
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
	status, category, message := apperror.MapToHTTPStatus(err)

	if status >= 500 {
		// O log do servidor carrega a causa raiz; o cliente recebe mensagem
		// genérica fora do modo desenvolvimento.
		h.Logger.Error("Erro interno no serviço de autenticação:", err)
		if !h.devMode {
			message = "Erro interno do servidor. Tente novamente mais tarde."
		}
	} else {
		h.Logger.Debug("Requisição de autenticação rejeitada.", map[string]interface{}{
			"path":     r.URL.Path,
			"status":   status,
			"category": category,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(domain.ErrorResponse{
		Code:     status,
		Category: category,
		Message:  message,
	})
}

// RegisterUserHandler lida com a requisição POST /auth/register.
// @Summary Registra um novo usuário
// @Description Cria um novo usuário, hasheia a senha e salva no banco de dados.
// @Tags auth
// @Accept json
// @Produce json
// @Param registration body domain.UserRegistration true "Credenciais de registro (nome, email e senha)"
// @Success 201 {object} map[string]interface{} "Usuário criado com sucesso"
// @Failure 400 {object} domain.ErrorResponse "Payload inválido ou política de senha não atendida"
// @Failure 409 {object} domain.ErrorResponse "Email já cadastrado"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /auth/register [post]
func (h *Handler) RegisterUserHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()

	var reg domain.UserRegistration
	if err := json.NewDecoder(r.Body).Decode(&reg); err != nil {
		h.handleServiceResponse(w, r, nil, apperror.NewValidationError("Payload JSON inválido."), http.StatusCreated)
		return
	}

	newUser, err := h.Service.Register(ctx, reg)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusCreated)
		return
	}

	// A resposta de registro expõe apenas nome e email.
	response := map[string]interface{}{
		"user": map[string]string{
			"name":  newUser.Name,
			"email": newUser.Email,
		},
	}
	h.handleServiceResponse(w, r, response, nil, http.StatusCreated)
}

// LoginUserHandler lida com a requisição POST /auth/login.
// @Summary Autentica um usuário e retorna um JWT
// @Description Recebe email/senha, verifica a validade, emite um JWT e grava o cookie de sessão.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body LoginRequest true "Credenciais do usuário (email e senha)"
// @Success 200 {object} map[string]interface{} "Usuário autenticado e token JWT emitido"
// @Failure 401 {object} domain.ErrorResponse "Credenciais inválidas"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /auth/login [post]
func (h *Handler) LoginUserHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()

	var loginReq LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&loginReq); err != nil {
		h.handleServiceResponse(w, r, nil, apperror.NewValidationError("Payload JSON inválido."), http.StatusOK)
		return
	}

	user, tokenString, err := h.Service.Login(ctx, loginReq.Email, loginReq.Password)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	// O token vai no corpo E no cookie HTTP-only (transporte dos dois jeitos).
	h.Cookies.SetTokenCookie(w, tokenString)

	response := map[string]interface{}{
		"user": map[string]interface{}{
			"id":    user.ID,
			"email": user.Email,
			"role":  user.Role,
		},
		"token": tokenString,
	}
	h.handleServiceResponse(w, r, response, nil, http.StatusOK)
}

// LogoutUserHandler lida com a requisição POST /auth/logout.
// Sobrescreve o cookie com valor vazio já expirado. Revogação stateless:
// o token em si permanece válido até a expiração natural.
// @Summary Encerra a sessão do usuário
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]string "Cookie de sessão limpo"
// @Router /auth/logout [post]
func (h *Handler) LogoutUserHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
		return
	}

	h.Cookies.ClearTokenCookie(w)

	response := map[string]string{"message": "Logout efetuado com sucesso."}
	h.handleServiceResponse(w, r, response, nil, http.StatusOK)
}
