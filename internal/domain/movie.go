package domain

import (
	"time"
)

// Movie representa o item principal do catálogo (a Entidade).
type Movie struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Overview    string    `json:"overview,omitempty"`
	ReleaseYear int       `json:"release_year"`
	Genres      []string  `json:"genres"`
	Runtime     *int      `json:"runtime,omitempty"`    // Duração em minutos (opcional)
	PosterURL   *string   `json:"poster_url,omitempty"` // URL do pôster (opcional)
	CreatedBy   string    `json:"created_by,omitempty"` // Referência fraca ao usuário criador
	CreatedAt   time.Time `json:"created_at"`
}

// --- Interfaces de Contrato (O CORAÇÃO DA ARQUITETURA LIMPA) ---

// MovieService é a interface que a camada de Serviço (Business Logic) DEVE implementar.
// Ela define o que o Handler (Camada API) pode pedir para a camada de Serviço fazer.
type MovieService interface {
	CreateMovie(ctx Context, movie Movie) (Movie, error)
	GetMovieByID(ctx Context, id string) (Movie, error)
	ListMovies(ctx Context) ([]Movie, error)
}

// MovieRepository é a interface que a camada de Repositório (Data Access) DEVE implementar.
// Ela define o que a camada de Serviço pode pedir para a camada de Persistência (DB/Cache) fazer.
type MovieRepository interface {
	Save(ctx Context, movie Movie) (Movie, error)
	FindByID(ctx Context, id string) (Movie, error)
	FindAll(ctx Context) ([]Movie, error)
	ExistsByTitleAndYear(ctx Context, title string, releaseYear int) (bool, error)
}

// Context é uma interface que encapsula o Go context.Context.
// É usado para propagar o timeout e sinais de cancelamento pelas camadas.
// Isso evita a dependência direta do pacote "context".
type Context interface{}
