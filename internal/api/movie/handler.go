package movie

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"moviewatch/internal/domain"
	apperror "moviewatch/internal/errors"
	"moviewatch/internal/pkg/logger"
	"moviewatch/internal/pkg/middleware"
)

// MovieService define o contrato que o Handler espera da camada de Serviço.
type MovieService interface {
	CreateMovie(ctx domain.Context, movie domain.Movie) (domain.Movie, error)
	GetMovieByID(ctx domain.Context, id string) (domain.Movie, error)
	ListMovies(ctx domain.Context) ([]domain.Movie, error)
}

// CreateMovieRequest representa o payload de entrada para criação de filme.
type CreateMovieRequest struct {
	Title       string   `json:"title"`
	Overview    string   `json:"overview,omitempty"`
	ReleaseYear int      `json:"release_year"`
	Genres      []string `json:"genres"`
	Runtime     *int     `json:"runtime,omitempty"`
	PosterURL   *string  `json:"poster_url,omitempty"`
}

// Handler agrupa todos os métodos de Handler do catálogo de filmes.
type Handler struct {
	Service MovieService
	Logger  logger.Logger
	devMode bool
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc MovieService, log logger.Logger, devMode bool) *Handler {
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

// ListMoviesHandler lida com a requisição GET /movies.
// @Summary Lista o catálogo de filmes
// @Tags movies
// @Produce json
// @Success 200 {object} map[string]interface{} "Catálogo completo"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /movies [get]
func (h *Handler) ListMoviesHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
		return
	}

	movies, err := h.Service.ListMovies(r.Context())
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

// GetMovieByIDHandler lida com a requisição GET /movies/{id}.
// O ID do criador é omitido da resposta de filme individual.
// @Summary Busca um filme pelo ID
// @Tags movies
// @Produce json
// @Param id path string true "ID do filme (UUID)"
// @Success 200 {object} domain.Movie "Filme encontrado"
// @Failure 400 {object} domain.ErrorResponse "ID não é um UUID válido"
// @Failure 404 {object} domain.ErrorResponse "Filme não encontrado"
// @Router /movies/{id} [get]
func (h *Handler) GetMovieByIDHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
		return
	}

	movieID := extractIDSegment(r.URL.Path)
	if movieID == "" {
		h.handleServiceResponse(w, r, nil, apperror.NewValidationError("Formato de URL inválido ou ID ausente."), http.StatusOK)
		return
	}

	movie, err := h.Service.GetMovieByID(r.Context(), movieID)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	// A resposta individual não expõe quem criou o registro.
	movie.CreatedBy = ""
	h.handleServiceResponse(w, r, movie, nil, http.StatusOK)
}

// CreateMovieHandler lida com a requisição POST /movies/add.
// Rota protegida: Auth Gate + Role Gate (Admin/Super_Admin) aplicados no roteador.
// @Summary Adiciona um filme ao catálogo
// @Tags movies
// @Accept json
// @Produce json
// @Param movie body CreateMovieRequest true "Dados do filme"
// @Success 200 {object} domain.Movie "Filme criado"
// @Failure 400 {object} domain.ErrorResponse "Payload inválido"
// @Failure 401 {object} domain.ErrorResponse "Não autenticado"
// @Failure 403 {object} domain.ErrorResponse "Role sem permissão"
// @Failure 409 {object} domain.ErrorResponse "Filme duplicado (título, ano)"
// @Router /movies/add [post]
func (h *Handler) CreateMovieHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()

	claims, ok := middleware.GetUserClaimsFromContext(ctx)
	if !ok {
		// Só aconteceria se a rota fosse registrada sem o AuthMiddleware.
		h.handleServiceResponse(w, r, nil, apperror.NewUnauthorizedError("Autorização necessária."), http.StatusOK)
		return
	}

	var req CreateMovieRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.handleServiceResponse(w, r, nil, apperror.NewValidationError("Payload inválido. Verifique o formato JSON."), http.StatusOK)
		return
	}

	movie := domain.Movie{
		Title:       req.Title,
		Overview:    req.Overview,
		ReleaseYear: req.ReleaseYear,
		Genres:      req.Genres,
		Runtime:     req.Runtime,
		PosterURL:   req.PosterURL,
		CreatedBy:   claims.UserID,
	}

	createdMovie, err := h.Service.CreateMovie(ctx, movie)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	h.Logger.Info("Filme criado por usuário privilegiado.", map[string]interface{}{
		"user_id": claims.UserID,
		"role":    claims.Role,
		"movie":   createdMovie.Title,
	})
	h.handleServiceResponse(w, r, createdMovie, nil, http.StatusOK)
}

// extractIDSegment extrai o último segmento do path (/movies/{id} -> id).
func extractIDSegment(path string) string {
	segments := strings.Split(strings.Trim(path, "/"), "/")
	if len(segments) != 2 {
		return ""
	}
	return segments[1]
}
