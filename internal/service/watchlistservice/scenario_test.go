package watchlistservice_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"moviewatch/internal/domain"
	apperror "moviewatch/internal/errors"
	"moviewatch/internal/pkg/logger"
	"moviewatch/internal/pkg/token"
	"moviewatch/internal/service/movieservice"
	"moviewatch/internal/service/userservice"
	"moviewatch/internal/service/watchlistservice"
)

// Fakes em memória para o cenário ponta a ponta na camada de serviço.
// Diferente dos mocks, eles guardam estado entre as chamadas.

type fakeUserRepo struct {
	users map[string]domain.User // por ID
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]domain.User{}}
}

func (r *fakeUserRepo) Save(_ domain.Context, user domain.User) (domain.User, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return domain.User{}, apperror.NewConflictError("Email já cadastrado.")
		}
	}
	user.ID = uuid.New().String()
	r.users[user.ID] = user
	return user, nil
}

func (r *fakeUserRepo) FindByEmail(_ domain.Context, email string) (domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return domain.User{}, apperror.NewNotFoundError("Usuário não encontrado.")
}

func (r *fakeUserRepo) FindByID(_ domain.Context, id string) (domain.User, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return domain.User{}, apperror.NewNotFoundError("Usuário não encontrado.")
}

func (r *fakeUserRepo) FindAll(_ domain.Context) ([]domain.User, error) {
	out := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u)
	}
	return out, nil
}

func (r *fakeUserRepo) Delete(_ domain.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return apperror.NewNotFoundError("Usuário não encontrado.")
	}
	delete(r.users, id)
	return nil
}

type fakeMovieRepo struct {
	movies map[string]domain.Movie
}

func newFakeMovieRepo() *fakeMovieRepo {
	return &fakeMovieRepo{movies: map[string]domain.Movie{}}
}

func (r *fakeMovieRepo) Save(_ domain.Context, movie domain.Movie) (domain.Movie, error) {
	r.movies[movie.ID] = movie
	return movie, nil
}

func (r *fakeMovieRepo) FindByID(_ domain.Context, id string) (domain.Movie, error) {
	if m, ok := r.movies[id]; ok {
		return m, nil
	}
	return domain.Movie{}, apperror.NewNotFoundError("Filme não encontrado.")
}

func (r *fakeMovieRepo) FindAll(_ domain.Context) ([]domain.Movie, error) {
	out := make([]domain.Movie, 0, len(r.movies))
	for _, m := range r.movies {
		out = append(out, m)
	}
	return out, nil
}

func (r *fakeMovieRepo) ExistsByTitleAndYear(_ domain.Context, title string, year int) (bool, error) {
	for _, m := range r.movies {
		if m.Title == title && m.ReleaseYear == year {
			return true, nil
		}
	}
	return false, nil
}

type fakeWatchlistRepo struct {
	items map[string]domain.WatchlistItem
}

func newFakeWatchlistRepo() *fakeWatchlistRepo {
	return &fakeWatchlistRepo{items: map[string]domain.WatchlistItem{}}
}

func (r *fakeWatchlistRepo) Save(_ domain.Context, item domain.WatchlistItem) (domain.WatchlistItem, error) {
	for _, existing := range r.items {
		// Espelha a constraint UNIQUE (user_id, movie_id) do banco
		if existing.UserID == item.UserID && existing.MovieID == item.MovieID {
			return domain.WatchlistItem{}, apperror.NewConflictError("O filme já está na watchlist!")
		}
	}
	item.ID = uuid.New().String()
	item.CreatedAt = time.Now().UTC()
	item.UpdatedAt = item.CreatedAt
	r.items[item.ID] = item
	return item, nil
}

func (r *fakeWatchlistRepo) FindByID(_ domain.Context, id string) (domain.WatchlistItem, error) {
	if item, ok := r.items[id]; ok {
		return item, nil
	}
	return domain.WatchlistItem{}, apperror.NewNotFoundError("Item de watchlist não encontrado.")
}

func (r *fakeWatchlistRepo) FindByUserAndMovie(_ domain.Context, userID, movieID string) (domain.WatchlistItem, error) {
	for _, item := range r.items {
		if item.UserID == userID && item.MovieID == movieID {
			return item, nil
		}
	}
	return domain.WatchlistItem{}, apperror.NewNotFoundError("Item de watchlist não encontrado.")
}

func (r *fakeWatchlistRepo) FindByUser(_ domain.Context, userID string) ([]domain.WatchlistItem, error) {
	out := []domain.WatchlistItem{}
	for _, item := range r.items {
		if item.UserID == userID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *fakeWatchlistRepo) FindMoviesByUser(_ domain.Context, userID string) ([]domain.Movie, error) {
	return []domain.Movie{}, nil
}

func (r *fakeWatchlistRepo) Update(_ domain.Context, item domain.WatchlistItem) (domain.WatchlistItem, error) {
	if _, ok := r.items[item.ID]; !ok {
		return domain.WatchlistItem{}, apperror.NewNotFoundError("Item de watchlist não encontrado.")
	}
	item.UpdatedAt = time.Now().UTC()
	r.items[item.ID] = item
	return item, nil
}

func (r *fakeWatchlistRepo) Delete(_ domain.Context, id string) error {
	if _, ok := r.items[id]; !ok {
		return apperror.NewNotFoundError("Item de watchlist não encontrado.")
	}
	delete(r.items, id)
	return nil
}

// TestWatchlistLifecycle_Scenario percorre o ciclo completo na camada de serviço:
// registro -> login -> adicionar filme -> atualizar -> remover -> lista vazia.
func TestWatchlistLifecycle_Scenario(t *testing.T) {
	ctx := context.Background()
	appLog := logger.NewLogger("error")

	userRepo := newFakeUserRepo()
	movieRepo := newFakeMovieRepo()
	watchRepo := newFakeWatchlistRepo()

	tokenSvc := token.NewService("chave-de-teste-bem-longa", time.Hour, false)
	userSvc := userservice.NewService(userRepo, tokenSvc, appLog)
	movieSvc := movieservice.NewService(movieRepo, appLog)
	watchSvc := watchlistservice.NewService(watchRepo, movieRepo, appLog)

	// 1. Registro
	user, err := userSvc.Register(ctx, domain.UserRegistration{
		Name:     "Ana Souza",
		Email:    "ana@example.com",
		Password: "Sup3r@Segura",
	})
	assert.NoError(t, err)
	assert.Equal(t, domain.RoleUser, user.Role)

	// 2. Login (o token emitido deve validar e apontar para o mesmo usuário)
	logged, tokenString, err := userSvc.Login(ctx, "ana@example.com", "Sup3r@Segura")
	assert.NoError(t, err)
	assert.Equal(t, user.ID, logged.ID)

	claims, err := tokenSvc.ValidateToken(tokenString)
	assert.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)

	// 3. Um filme no catálogo e adicionado à watchlist
	movie, err := movieSvc.CreateMovie(ctx, domain.Movie{Title: "Whiplash", ReleaseYear: 2014})
	assert.NoError(t, err)

	item, err := watchSvc.AddToWatchlist(ctx, user.ID, domain.AddToWatchlistRequest{MovieID: movie.ID})
	assert.NoError(t, err)
	assert.Equal(t, domain.StatusPlanned, item.Status)

	// Adição repetida do mesmo filme deve conflitar
	_, err = watchSvc.AddToWatchlist(ctx, user.ID, domain.AddToWatchlistRequest{MovieID: movie.ID})
	assert.IsType(t, &apperror.ConflictError{}, err)

	// 4. Atualização parcial: só o status muda
	rating := 9
	updated, err := watchSvc.UpdateItem(ctx, item.ID, user.ID, domain.WatchlistPatch{
		Status: strPtr("completed"),
		Rating: &rating,
	})
	assert.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, updated.Status)
	assert.Equal(t, 9, *updated.Rating)

	// 5. Remoção pelo dono
	assert.NoError(t, watchSvc.RemoveItem(ctx, item.ID, user.ID))

	// 6. A watchlist termina vazia
	items, err := watchSvc.ListItemsForUser(ctx, user.ID)
	assert.NoError(t, err)
	assert.Len(t, items, 0)
}
