package router

import (
	"net/http"
	"time"

	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "moviewatch/docs" // Registro do documento OpenAPI gerado pelo swag
	"moviewatch/internal/api/auth"
	"moviewatch/internal/api/movie"
	"moviewatch/internal/api/user"
	"moviewatch/internal/api/watchlist"
	"moviewatch/internal/domain"
	"moviewatch/internal/pkg/cache"
	"moviewatch/internal/pkg/middleware"
)

// NewRouter configura e retorna o roteador HTTP principal.
// Recebe os Handlers já inicializados por injeção de dependências e monta
// as cadeias de middleware por rota: Auth Gate nas rotas protegidas e
// Role Gate (Admin/Super_Admin) nas rotas restritas.
func NewRouter(
	authHandler *auth.Handler,
	movieHandler *movie.Handler,
	watchlistHandler *watchlist.Handler,
	userHandler *user.Handler,
	tokenSvc middleware.TokenValidator,
	users middleware.UserLoader,
	cacheClient cache.Client,
	rateLimitMax int,
	rateLimitPeriod time.Duration,
) http.Handler {

	// Usamos o ServeMux padrão do net/http para roteamento
	mux := http.NewServeMux()

	// Cadeias de middleware reutilizáveis
	requireAuth := middleware.NewAuthMiddleware(tokenSvc, users)
	requireAdmin := middleware.PermissionMiddleware(domain.RoleAdmin, domain.RoleSuperAdmin)

	// --- 1. Rotas públicas ---
	mux.HandleFunc("/", HomeHandler)
	mux.HandleFunc("/ping", PingHandler)
	mux.Handle("/swagger/", httpSwagger.Handler())

	// --- 2. Autenticação ---
	mux.HandleFunc("/auth/register", authHandler.RegisterUserHandler)
	mux.HandleFunc("/auth/login", authHandler.LoginUserHandler)
	mux.HandleFunc("/auth/logout", authHandler.LogoutUserHandler)

	// --- 3. Catálogo de filmes ---
	// Leitura é pública; criação exige Auth Gate + Role Gate.
	// "/movies/add" é mais específico que "/movies/" e vence no ServeMux.
	mux.HandleFunc("/movies", movieHandler.ListMoviesHandler)
	mux.HandleFunc("/movies/add", requireAuth(requireAdmin(movieHandler.CreateMovieHandler)))
	mux.HandleFunc("/movies/", movieHandler.GetMovieByIDHandler)

	// --- 4. Watchlist (todas as rotas autenticadas) ---
	mux.HandleFunc("/watchlist", requireAuth(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			watchlistHandler.ListWatchlistHandler(w, r)
		case http.MethodPost:
			watchlistHandler.AddToWatchlistHandler(w, r)
		default:
			http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
		}
	}))
	mux.HandleFunc("/watchlist/", requireAuth(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			watchlistHandler.GetUserWatchlistHandler(w, r)
		case http.MethodPut:
			watchlistHandler.UpdateWatchlistHandler(w, r)
		case http.MethodDelete:
			watchlistHandler.RemoveWatchlistHandler(w, r)
		default:
			http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
		}
	}))

	// --- 5. Administração de usuários (Auth Gate + Role Gate) ---
	mux.HandleFunc("/users", requireAuth(requireAdmin(userHandler.GetAllUsersHandler)))
	mux.HandleFunc("/users/", requireAuth(requireAdmin(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			userHandler.GetUserByIDHandler(w, r)
		case http.MethodDelete:
			userHandler.DeleteUserHandler(w, r)
		default:
			http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
		}
	})))

	// --- 6. Middleware global: rate limiting por IP (Redis) ---
	return middleware.RateLimiter(cacheClient, rateLimitMax, rateLimitPeriod)(mux)
}

// HomeHandler responde a raiz da API com uma mensagem de boas-vindas.
func HomeHandler(w http.ResponseWriter, r *http.Request) {
	// O padrão "/" do ServeMux captura qualquer rota não registrada.
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"message":"This is the Home Page of the Movie Watchlist API"}`))
}

// PingHandler é uma função utilitária para o health check.
func PingHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("pong"))
}
