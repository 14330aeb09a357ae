package watchlistrepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"moviewatch/internal/domain"
	apperror "moviewatch/internal/errors"
	"moviewatch/internal/pkg/logger"
)

// Código do PostgreSQL para violação de constraint de unicidade.
const uniqueViolation = "23505"

// WatchlistRepository implementa a interface domain.WatchlistRepository.
type WatchlistRepository struct {
	DB        *sql.DB
	DBTimeout time.Duration
	logger    logger.Logger
}

// NewWatchlistRepository cria uma nova instância do repositório de watchlist.
func NewWatchlistRepository(db *sql.DB, dbTimeout time.Duration, logger logger.Logger) *WatchlistRepository {
	return &WatchlistRepository{
		DB:        db,
		DBTimeout: dbTimeout,
		logger:    logger,
	}
}

// Save insere um novo item de watchlist.
// A constraint UNIQUE (user_id, movie_id) do banco é o guard definitivo contra
// duplicatas: duas requisições concorrentes podem passar pelo pré-check do
// serviço, mas apenas uma insere; a outra recebe ConflictError daqui.
func (r *WatchlistRepository) Save(ctx domain.Context, item domain.WatchlistItem) (domain.WatchlistItem, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx.(context.Context), r.DBTimeout)
	defer cancel()

	item.ID = uuid.NewString()
	item.CreatedAt = time.Now()
	item.UpdatedAt = item.CreatedAt

	const insertSQL = `INSERT INTO watchlist_items (id, user_id, movie_id, status, rating, note, created_at, updated_at)
	                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.DB.ExecContext(ctxTimeout, insertSQL,
		item.ID,
		item.UserID,
		item.MovieID,
		item.Status,
		item.Rating,
		item.Note,
		item.CreatedAt,
		item.UpdatedAt,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			r.logger.Info("Inserção duplicada bloqueada pela constraint (user_id, movie_id).", map[string]interface{}{
				"user_id":  item.UserID,
				"movie_id": item.MovieID,
			})
			return domain.WatchlistItem{}, apperror.NewConflictError("O filme já está na watchlist!")
		}
		r.logger.Error("Falha ao inserir item de watchlist no DB.", err)
		return domain.WatchlistItem{}, apperror.NewDBError("failed to insert watchlist item", err)
	}

	return item, nil
}

// FindByID busca um item de watchlist pelo ID.
func (r *WatchlistRepository) FindByID(ctx domain.Context, id string) (domain.WatchlistItem, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx.(context.Context), r.DBTimeout)
	defer cancel()

	const query = `SELECT id, user_id, movie_id, status, rating, note, created_at, updated_at
	               FROM watchlist_items WHERE id = $1`

	return r.scanOne(r.DB.QueryRowContext(ctxTimeout, query, id), fmt.Sprintf("Item de watchlist com ID '%s' não encontrado", id))
}

// FindByUserAndMovie busca o item de um usuário para um filme específico.
// Usado como pré-check de duplicata (caminho rápido, mensagem de erro melhor).
func (r *WatchlistRepository) FindByUserAndMovie(ctx domain.Context, userID, movieID string) (domain.WatchlistItem, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx.(context.Context), r.DBTimeout)
	defer cancel()

	const query = `SELECT id, user_id, movie_id, status, rating, note, created_at, updated_at
	               FROM watchlist_items WHERE user_id = $1 AND movie_id = $2`

	return r.scanOne(r.DB.QueryRowContext(ctxTimeout, query, userID, movieID), "Item de watchlist não encontrado para este usuário e filme")
}

// FindByUser retorna todos os itens de watchlist de um usuário.
func (r *WatchlistRepository) FindByUser(ctx domain.Context, userID string) ([]domain.WatchlistItem, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx.(context.Context), r.DBTimeout)
	defer cancel()

	const query = `SELECT id, user_id, movie_id, status, rating, note, created_at, updated_at
	               FROM watchlist_items WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := r.DB.QueryContext(ctxTimeout, query, userID)
	if err != nil {
		r.logger.Error("Falha ao listar itens de watchlist no DB.", err)
		return nil, apperror.NewDBError("failed to list watchlist items", err)
	}
	defer rows.Close()

	items := []domain.WatchlistItem{}
	for rows.Next() {
		var item domain.WatchlistItem
		if err := rows.Scan(
			&item.ID,
			&item.UserID,
			&item.MovieID,
			&item.Status,
			&item.Rating,
			&item.Note,
			&item.CreatedAt,
			&item.UpdatedAt,
		); err != nil {
			return nil, apperror.NewDBError("failed to scan watchlist row", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, apperror.NewDBError("failed to iterate watchlist rows", err)
	}

	return items, nil
}

// FindMoviesByUser faz o join dos itens de watchlist do usuário com os registros
// de filme correspondentes. A sequência é materializada no escopo da requisição.
func (r *WatchlistRepository) FindMoviesByUser(ctx domain.Context, userID string) ([]domain.Movie, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx.(context.Context), r.DBTimeout)
	defer cancel()

	const query = `
		SELECT m.id, m.title, m.overview, m.release_year, m.genres, m.runtime, m.poster_url, m.created_by, m.created_at
		FROM watchlist_items w
		JOIN movies m ON m.id = w.movie_id
		WHERE w.user_id = $1
		ORDER BY w.created_at DESC`

	rows, err := r.DB.QueryContext(ctxTimeout, query, userID)
	if err != nil {
		r.logger.Error("Falha ao buscar filmes da watchlist no DB.", err)
		return nil, apperror.NewDBError("failed to join watchlist movies", err)
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
			return nil, apperror.NewDBError("failed to scan joined movie row", err)
		}
		movies = append(movies, movie)
	}

	if err := rows.Err(); err != nil {
		return nil, apperror.NewDBError("failed to iterate joined movie rows", err)
	}

	return movies, nil
}

// Update persiste o estado completo de um item já existente.
// A checagem de posse acontece no serviço, antes de chegar aqui.
func (r *WatchlistRepository) Update(ctx domain.Context, item domain.WatchlistItem) (domain.WatchlistItem, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx.(context.Context), r.DBTimeout)
	defer cancel()

	item.UpdatedAt = time.Now()

	const updateSQL = `UPDATE watchlist_items
	                   SET status = $1, rating = $2, note = $3, updated_at = $4
	                   WHERE id = $5`

	result, err := r.DB.ExecContext(ctxTimeout, updateSQL,
		item.Status,
		item.Rating,
		item.Note,
		item.UpdatedAt,
		item.ID,
	)
	if err != nil {
		r.logger.Error("Falha ao atualizar item de watchlist no DB.", err)
		return domain.WatchlistItem{}, apperror.NewDBError("failed to update watchlist item", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return domain.WatchlistItem{}, apperror.NewDBError("failed to read affected rows", err)
	}
	if affected == 0 {
		return domain.WatchlistItem{}, apperror.NewNotFoundError(fmt.Sprintf("Item de watchlist com ID '%s' não encontrado", item.ID))
	}

	return item, nil
}

// Delete remove um item de watchlist pelo ID.
// Deletar um item inexistente é NotFound, não um sucesso silencioso.
func (r *WatchlistRepository) Delete(ctx domain.Context, id string) error {
	ctxTimeout, cancel := context.WithTimeout(ctx.(context.Context), r.DBTimeout)
	defer cancel()

	result, err := r.DB.ExecContext(ctxTimeout, `DELETE FROM watchlist_items WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Falha ao deletar item de watchlist no DB.", err)
		return apperror.NewDBError("failed to delete watchlist item", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperror.NewDBError("failed to read affected rows", err)
	}
	if affected == 0 {
		return apperror.NewNotFoundError(fmt.Sprintf("Item de watchlist com ID '%s' não encontrado", id))
	}

	return nil
}

// scanOne mapeia uma linha única para a struct WatchlistItem.
func (r *WatchlistRepository) scanOne(row *sql.Row, notFoundMsg string) (domain.WatchlistItem, error) {
	var item domain.WatchlistItem
	err := row.Scan(
		&item.ID,
		&item.UserID,
		&item.MovieID,
		&item.Status,
		&item.Rating,
		&item.Note,
		&item.CreatedAt,
		&item.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.WatchlistItem{}, apperror.NewNotFoundError(notFoundMsg)
		}
		r.logger.Error("Falha ao buscar item de watchlist no DB.", err)
		return domain.WatchlistItem{}, apperror.NewDBError("failed to find watchlist item", err)
	}

	return item, nil
}
