package movierepo

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"moviewatch/internal/domain"
	apperror "moviewatch/internal/errors"
	"moviewatch/internal/pkg/cache"
)

// MovieRepository implementa a interface domain.MovieRepository.
// Ela contém as conexões necessárias para acessar dados.
type MovieRepository struct {
	DB        *sql.DB      // Conexão principal com o banco de dados (PostgreSQL)
	Cache     cache.Client // Cliente para operações de cache (Redis)
	DBTimeout time.Duration
}

// NewMovieRepository cria e retorna uma nova instância do Repositório.
// Aqui injetamos as dependências de Infraestrutura (DB e Cache).
func NewMovieRepository(db *sql.DB, cacheClient cache.Client, dbTimeout time.Duration) *MovieRepository {
	return &MovieRepository{
		DB:        db,
		Cache:     cacheClient,
		DBTimeout: dbTimeout,
	}
}

// Chave de cache para filmes individuais. O catálogo nunca muda depois de
// criado (sem update/delete de filmes), então o TTL é só uma proteção.
const movieCacheKey = "movie:%s"
const movieCacheTTL = 5 * time.Minute

// Save persiste um novo filme no banco de dados.
func (r *MovieRepository) Save(ctx domain.Context, movie domain.Movie) (domain.Movie, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx.(context.Context), r.DBTimeout)
	defer cancel()

	const insertSQL = `INSERT INTO movies (id, title, overview, release_year, genres, runtime, poster_url, created_by, created_at)
	                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.DB.ExecContext(ctxTimeout, insertSQL,
		movie.ID,
		movie.Title,
		movie.Overview,
		movie.ReleaseYear,
		pq.Array(movie.Genres),
		movie.Runtime,
		movie.PosterURL,
		movie.CreatedBy,
		movie.CreatedAt,
	)

	if err != nil {
		return domain.Movie{}, apperror.NewDBError("failed to insert movie", err)
	}

	return movie, nil
}

// FindByID busca um filme pelo ID, utilizando a estratégia Cache-Aside.
func (r *MovieRepository) FindByID(ctx domain.Context, id string) (domain.Movie, error) {
	ctxGo, cancel := context.WithTimeout(ctx.(context.Context), r.DBTimeout)
	defer cancel()

	key := fmt.Sprintf(movieCacheKey, id)
	var movie domain.Movie

	// --- Estratégia Cache-Aside (READ) ---
	cachedData, err := r.Cache.Get(ctxGo, key)
	if err == nil {
		if json.Unmarshal([]byte(cachedData), &movie) == nil {
			// Cache HIT
			return movie, nil
		}
		// Se a desserialização falhar, continua para o DB
	}
	// Erros reais de cache (conexão perdida etc.) também caem no DB.

	// --- Busca no Banco de Dados (PostgreSQL) ---
	const query = `
		SELECT id, title, overview, release_year, genres, runtime, poster_url, created_by, created_at
		FROM movies
		WHERE id = $1`

	row := r.DB.QueryRowContext(ctxGo, query, id)

	err = row.Scan(
		&movie.ID,
		&movie.Title,
		&movie.Overview,
		&movie.ReleaseYear,
		pq.Array(&movie.Genres),
		&movie.Runtime,
		&movie.PosterURL,
		&movie.CreatedBy,
		&movie.CreatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return domain.Movie{}, apperror.NewNotFoundError(fmt.Sprintf("Filme com ID %s não existe na base de dados.", id))
	}
	if err != nil {
		return domain.Movie{}, apperror.NewDBError("Falha ao buscar filme no DB", err)
	}

	// --- Estratégia Cache-Aside (WRITE) ---
	// Se encontrado no DB, populamos o cache para futuras requisições.
	if movieJSON, marshalErr := json.Marshal(movie); marshalErr == nil {
		r.Cache.Set(ctxGo, key, movieJSON, movieCacheTTL)
	}

	return movie, nil
}

// FindAll retorna o catálogo completo de filmes.
func (r *MovieRepository) FindAll(ctx domain.Context) ([]domain.Movie, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx.(context.Context), r.DBTimeout)
	defer cancel()

	const query = `
		SELECT id, title, overview, release_year, genres, runtime, poster_url, created_by, created_at
		FROM movies
		ORDER BY created_at DESC`

	rows, err := r.DB.QueryContext(ctxTimeout, query)
	if err != nil {
		return nil, apperror.NewDBError("failed to list movies", err)
	}
	defer rows.Close()

	movies := []domain.Movie{}
	for rows.Next() {
		var movie domain.Movie
		if err := rows.Scan(
			&movie.ID,
			&movie.Title,
			&movie.Overview,
			&movie.ReleaseYear,
			pq.Array(&movie.Genres),
			&movie.Runtime,
			&movie.PosterURL,
			&movie.CreatedBy,
			&movie.CreatedAt,
		); err != nil {
			return nil, apperror.NewDBError("failed to scan movie row", err)
		}
		movies = append(movies, movie)
	}

	if err := rows.Err(); err != nil {
		return nil, apperror.NewDBError("failed to iterate movie rows", err)
	}

	return movies, nil
}

// ExistsByTitleAndYear informa se já existe um filme com o mesmo par
// (título, ano de lançamento). Checado na criação; não é constraint de DB.
func (r *MovieRepository) ExistsByTitleAndYear(ctx domain.Context, title string, releaseYear int) (bool, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx.(context.Context), r.DBTimeout)
	defer cancel()

	const query = `SELECT EXISTS (SELECT 1 FROM movies WHERE title = $1 AND release_year = $2)`

	var exists bool
	if err := r.DB.QueryRowContext(ctxTimeout, query, title, releaseYear).Scan(&exists); err != nil {
		return false, apperror.NewDBError("failed to check movie duplicate", err)
	}

	return exists, nil
}
