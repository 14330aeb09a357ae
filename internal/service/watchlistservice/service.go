package watchlistservice

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"moviewatch/internal/domain"
	apperror "moviewatch/internal/errors"
	"moviewatch/internal/pkg/logger"
)

// Service é a estrutura que implementa a interface domain.WatchlistService.
// Concentra as invariantes da watchlist: unicidade por (usuário, filme),
// enum de status, validação de nota e checagem de posse em toda mutação.
type Service struct {
	repo      domain.WatchlistRepository
	movieRepo domain.MovieRepository
	logger    logger.Logger
}

// NewService cria e retorna uma nova instância do Serviço de Watchlist.
func NewService(repo domain.WatchlistRepository, movieRepo domain.MovieRepository, logger logger.Logger) *Service {
	return &Service{repo: repo, movieRepo: movieRepo, logger: logger}
}

// AddToWatchlist adiciona um filme à watchlist do usuário.
// Fluxo: filme existe (senão NotFound) -> sem item para (usuário, filme)
// (senão Conflict) -> status padrão PLANNED -> persiste.
func (s *Service) AddToWatchlist(ctx domain.Context, userID string, req domain.AddToWatchlistRequest) (domain.WatchlistItem, error) {
	s.logger.Debug("Iniciando adição à watchlist no serviço.", map[string]interface{}{
		"user_id":  userID,
		"movie_id": req.MovieID,
	})

	// 1. Validação de formato do ID do filme
	if _, err := uuid.Parse(req.MovieID); err != nil {
		return domain.WatchlistItem{}, apperror.NewValidationError("O ID do filme deve ser um UUID válido.")
	}

	// 2. O filme precisa existir no catálogo
	if _, err := s.movieRepo.FindByID(ctx, req.MovieID); err != nil {
		var notFoundErr *apperror.NotFoundError
		if errors.As(err, &notFoundErr) {
			return domain.WatchlistItem{}, apperror.NewNotFoundError("Filme não encontrado!")
		}
		return domain.WatchlistItem{}, err
	}

	// 3. Pré-check de duplicata (caminho rápido; a constraint UNIQUE
	// (user_id, movie_id) do banco é o guard real sob concorrência)
	if _, err := s.repo.FindByUserAndMovie(ctx, userID, req.MovieID); err == nil {
		return domain.WatchlistItem{}, apperror.NewConflictError("O filme já está na watchlist!")
	} else {
		var notFoundErr *apperror.NotFoundError
		if !errors.As(err, &notFoundErr) {
			return domain.WatchlistItem{}, err
		}
	}

	// 4. Monta o item com status padrão PLANNED
	item := domain.WatchlistItem{
		UserID:  userID,
		MovieID: req.MovieID,
		Status:  domain.StatusPlanned,
		Rating:  req.Rating,
		Note:    req.Note,
	}

	if req.Status != nil {
		status := domain.NormalizeWatchStatus(*req.Status)
		if !status.IsValid() {
			return domain.WatchlistItem{}, apperror.NewValidationError(
				"Status deve ser um de: PLANNED, WATCHING, COMPLETED, DROPPED.",
			)
		}
		item.Status = status
	}

	if err := validateRating(item.Rating); err != nil {
		return domain.WatchlistItem{}, err
	}

	// 5. Persiste (duplicata concorrente volta daqui como ConflictError)
	created, err := s.repo.Save(ctx, item)
	if err != nil {
		return domain.WatchlistItem{}, err
	}

	s.logger.Info("Filme adicionado à watchlist.", map[string]interface{}{
		"item_id":  created.ID,
		"user_id":  created.UserID,
		"movie_id": created.MovieID,
		"status":   created.Status,
	})
	return created, nil
}

// UpdateItem aplica uma atualização parcial a um item da watchlist.
// Apenas o dono do item pode mutá-lo; campos ausentes no patch (nil) nunca
// são tocados — ausência é diferente de valor explícito.
func (s *Service) UpdateItem(ctx domain.Context, itemID, requesterID string, patch domain.WatchlistPatch) (domain.WatchlistItem, error) {
	// 1. Carregar o item (senão NotFound)
	item, err := s.loadOwned(ctx, itemID, requesterID)
	if err != nil {
		return domain.WatchlistItem{}, err
	}

	if patch.IsEmpty() {
		return domain.WatchlistItem{}, apperror.NewValidationError(
			"Informe ao menos um campo para atualizar (status, rating ou note).",
		)
	}

	// 2. Aplicar somente os campos presentes
	if patch.Status != nil {
		status := domain.NormalizeWatchStatus(*patch.Status)
		if !status.IsValid() {
			return domain.WatchlistItem{}, apperror.NewValidationError(
				"Status deve ser um de: PLANNED, WATCHING, COMPLETED, DROPPED.",
			)
		}
		item.Status = status
	}

	if patch.Rating != nil {
		if err := validateRating(patch.Rating); err != nil {
			return domain.WatchlistItem{}, err
		}
		item.Rating = patch.Rating
	}

	if patch.Note != nil {
		item.Note = patch.Note
	}

	// 3. Persistir o estado resultante
	updated, err := s.repo.Update(ctx, item)
	if err != nil {
		return domain.WatchlistItem{}, err
	}

	s.logger.Info("Item de watchlist atualizado.", map[string]interface{}{
		"item_id": updated.ID,
		"user_id": updated.UserID,
	})
	return updated, nil
}

// RemoveItem remove um item da watchlist do usuário.
// Mesma checagem de carga + posse do update; remover item inexistente é NotFound.
func (s *Service) RemoveItem(ctx domain.Context, itemID, requesterID string) error {
	item, err := s.loadOwned(ctx, itemID, requesterID)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, item.ID); err != nil {
		return err
	}

	s.logger.Info("Item removido da watchlist.", map[string]interface{}{
		"item_id": item.ID,
		"user_id": item.UserID,
	})
	return nil
}

// ListItemsForUser retorna os itens de watchlist de um usuário.
func (s *Service) ListItemsForUser(ctx domain.Context, userID string) ([]domain.WatchlistItem, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, apperror.NewValidationError("O ID do usuário deve ser um UUID válido.")
	}
	return s.repo.FindByUser(ctx, userID)
}

// ListMoviesForUser retorna os filmes da watchlist do usuário
// (join dos itens com os registros de filme, materializado na requisição).
func (s *Service) ListMoviesForUser(ctx domain.Context, userID string) ([]domain.Movie, error) {
	return s.repo.FindMoviesByUser(ctx, userID)
}

// loadOwned carrega um item e verifica a posse do requisitante.
// Item inexistente -> NotFoundError. Item de outro usuário -> ForbiddenError,
// tipo distinto do NotFound mesmo que o handler os apresente com o mesmo
// status (defesa contra enumeração de itens alheios).
func (s *Service) loadOwned(ctx domain.Context, itemID, requesterID string) (domain.WatchlistItem, error) {
	if _, err := uuid.Parse(itemID); err != nil {
		return domain.WatchlistItem{}, apperror.NewValidationError("O ID do item deve ser um UUID válido.")
	}

	item, err := s.repo.FindByID(ctx, itemID)
	if err != nil {
		return domain.WatchlistItem{}, err
	}

	if item.UserID != requesterID {
		s.logger.Warn("Tentativa de mutação de item alheio bloqueada.", map[string]interface{}{
			"item_id":      itemID,
			"owner_id":     item.UserID,
			"requester_id": requesterID,
		})
		return domain.WatchlistItem{}, apperror.NewForbiddenError(
			fmt.Sprintf("O item '%s' não pertence ao usuário autenticado.", itemID),
		)
	}

	return item, nil
}

// validateRating valida a nota quando presente: inteiro entre 1 e 10.
func validateRating(rating *int) error {
	if rating == nil {
		return nil
	}
	if *rating < 1 || *rating > 10 {
		return apperror.NewValidationError("A nota deve ser um inteiro entre 1 e 10.")
	}
	return nil
}
