package movieservice

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"moviewatch/internal/domain"
	apperror "moviewatch/internal/errors"
	"moviewatch/internal/pkg/logger"
)

// Ano do primeiro filme exibido comercialmente; limite inferior de sanidade.
const minReleaseYear = 1888

// Service é a estrutura que implementa a interface domain.MovieService.
type Service struct {
	repo   domain.MovieRepository
	logger logger.Logger
}

// NewService cria e retorna uma nova instância do Serviço de Catálogo.
func NewService(repo domain.MovieRepository, logger logger.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// CreateMovie cria um novo filme no catálogo após validações de negócio.
// O par (título, ano de lançamento) deve ser único; a checagem acontece aqui,
// antes do insert (não há constraint de DB para este par).
func (s *Service) CreateMovie(ctx domain.Context, movie domain.Movie) (domain.Movie, error) {
	s.logger.Debug("Iniciando criação de filme no serviço.", map[string]interface{}{"title": movie.Title})

	// 1. Validação de Regras de Negócio
	if movie.Title == "" {
		return domain.Movie{}, apperror.NewValidationError("O título do filme é obrigatório.")
	}
	if movie.ReleaseYear < minReleaseYear || movie.ReleaseYear > time.Now().Year()+1 {
		return domain.Movie{}, apperror.NewValidationError(
			fmt.Sprintf("O ano de lançamento deve estar entre %d e %d.", minReleaseYear, time.Now().Year()+1),
		)
	}
	if movie.Runtime != nil && *movie.Runtime <= 0 {
		return domain.Movie{}, apperror.NewValidationError("A duração do filme deve ser positiva.")
	}

	// 2. Checagem de duplicata (título, ano)
	exists, err := s.repo.ExistsByTitleAndYear(ctx, movie.Title, movie.ReleaseYear)
	if err != nil {
		return domain.Movie{}, err
	}
	if exists {
		return domain.Movie{}, apperror.NewConflictError(
			fmt.Sprintf("O filme '%s' (%d) já existe no catálogo.", movie.Title, movie.ReleaseYear),
		)
	}

	// 3. Preenchimento de ID, genres e timestamp
	movie.ID = uuid.NewString()
	if movie.Genres == nil {
		movie.Genres = []string{}
	}
	movie.CreatedAt = time.Now().UTC()

	// 4. Delegação para a Camada de Persistência (Repository)
	createdMovie, err := s.repo.Save(ctx, movie)
	if err != nil {
		s.logger.Error("Falha ao salvar filme no repositório.", err)
		return domain.Movie{}, err
	}

	s.logger.Info("Filme criado no catálogo.", map[string]interface{}{
		"movie_id": createdMovie.ID,
		"title":    createdMovie.Title,
		"year":     createdMovie.ReleaseYear,
	})
	return createdMovie, nil
}

// GetMovieByID busca um filme pelo ID após validações de formato.
func (s *Service) GetMovieByID(ctx domain.Context, id string) (domain.Movie, error) {
	// 1. Validação de Formato
	if _, err := uuid.Parse(id); err != nil {
		return domain.Movie{}, apperror.NewValidationError("O ID do filme deve ser um UUID válido.")
	}

	// 2. Delegação para o Repositório (cache-aside acontece lá)
	movie, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Movie{}, err
	}

	return movie, nil
}

// ListMovies retorna o catálogo completo de filmes.
func (s *Service) ListMovies(ctx domain.Context) ([]domain.Movie, error) {
	movies, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("Falha ao listar filmes no repositório.", err)
		return nil, err
	}
	return movies, nil
}
