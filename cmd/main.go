package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	// Pacotes de infraestrutura e utilitários
	"moviewatch/config"
	"moviewatch/internal/pkg/cache"
	"moviewatch/internal/pkg/database"
	"moviewatch/internal/pkg/logger"
	"moviewatch/internal/pkg/token"

	// Camadas da aplicação para Injeção de Dependências
	"moviewatch/internal/api/auth"
	"moviewatch/internal/api/movie"
	"moviewatch/internal/api/router"
	"moviewatch/internal/api/user"
	"moviewatch/internal/api/watchlist"
	"moviewatch/internal/repository/movierepo"
	"moviewatch/internal/repository/userrepo"
	"moviewatch/internal/repository/watchlistrepo"
	"moviewatch/internal/service/movieservice"
	"moviewatch/internal/service/userservice"
	"moviewatch/internal/service/watchlistservice"
)

// @title Movie Watchlist API
// @version 1.0
// @description API REST para catálogo de filmes e watchlists por usuário, com autenticação JWT.
// @BasePath /
func main() {
	// 1. Configuração e Inicialização
	log.Println("⚡ Inicializando Movie Watchlist API...")

	// O godotenv.Load() procura por um arquivo chamado .env na raiz.
	if err := godotenv.Load(); err != nil {
		// Se o .env não existir, as variáveis essenciais podem estar no
		// ambiente do sistema (ex: Docker); LoadConfig valida o que for fatal.
		log.Println("⚠️ Aviso: Arquivo .env não encontrado ou erro de leitura. Carregando configs apenas do ambiente do sistema.")
	}

	cfg := config.LoadConfig() // Aborta o processo se a config for inválida
	appLog := logger.NewLogger(cfg.LogLevel)
	appLog.Info("Configurações carregadas.", map[string]interface{}{"env": cfg.Environment})

	// 2. Conexão com Recursos de Infraestrutura

	// A. Banco de Dados (PostgreSQL) — store inacessível é fatal
	db, err := database.NewPostgresDB(cfg.DatabaseURL)
	if err != nil {
		appLog.Fatal("Falha ao conectar ao banco de dados.", err)
	}
	defer db.Close()
	appLog.Info("Conexão PostgreSQL estabelecida.", nil)

	// B. Cache (Redis)
	cacheClient := cache.NewRedisClient(cfg.RedisAddr)
	appLog.Info("Cliente Redis inicializado.", nil)

	// C. Serviço de Tokens (JWT + cookie de sessão)
	tokenSvc := token.NewService(cfg.JWTSecretKey, cfg.TokenExpiry, cfg.IsProduction())
	appLog.Debug("Serviço de Tokens JWT inicializado.", nil)

	// 3. INJEÇÃO DE DEPENDÊNCIAS (Repository -> Service -> Handler)

	userRepo := userrepo.NewUserRepository(db, cfg.DBTimeout, appLog)
	movieRepo := movierepo.NewMovieRepository(db, cacheClient, cfg.DBTimeout)
	watchlistRepo := watchlistrepo.NewWatchlistRepository(db, cfg.DBTimeout, appLog)
	appLog.Debug("Repositórios inicializados.", nil)

	userSvc := userservice.NewService(userRepo, tokenSvc, appLog)
	movieSvc := movieservice.NewService(movieRepo, appLog)
	watchlistSvc := watchlistservice.NewService(watchlistRepo, movieRepo, appLog)
	appLog.Debug("Serviços inicializados.", nil)

	authHandler := auth.NewHandler(userSvc, tokenSvc, appLog, cfg.IsDevelopment())
	movieHandler := movie.NewHandler(movieSvc, appLog, cfg.IsDevelopment())
	watchlistHandler := watchlist.NewHandler(watchlistSvc, appLog, cfg.IsDevelopment())
	userHandler := user.NewHandler(userSvc, appLog, cfg.IsDevelopment())
	appLog.Debug("Handlers inicializados.", nil)

	// 4. Configuração e Início do Roteador/Servidor

	r := router.NewRouter(
		authHandler,
		movieHandler,
		watchlistHandler,
		userHandler,
		tokenSvc,
		userRepo,
		cacheClient,
		cfg.RateLimitMaxRequests,
		cfg.RateLimitPeriod,
	)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// 5. Execução e Graceful Shutdown
	go func() {
		appLog.Info("Servidor ouvindo na porta", map[string]interface{}{"port": cfg.Port})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLog.Fatal("Servidor falhou.", err)
		}
	}()

	// Lógica do Graceful Shutdown (captura de sinal)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	appLog.Info("Sinal de encerramento recebido. Desligando servidor...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		appLog.Error("Desligamento do servidor forçado.", err)
	}

	appLog.Info("Servidor encerrado com sucesso.", nil)
}
