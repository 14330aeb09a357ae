package domain

import (
	"strings"
	"time"
)

// WatchStatus representa o estado de acompanhamento de um filme na watchlist.
type WatchStatus string

// Conjunto fechado de status válidos. O padrão na criação é StatusPlanned.
const (
	StatusPlanned   WatchStatus = "PLANNED"
	StatusWatching  WatchStatus = "WATCHING"
	StatusCompleted WatchStatus = "COMPLETED"
	StatusDropped   WatchStatus = "DROPPED"
)

// NormalizeWatchStatus converte a entrada para a forma canônica (maiúsculas).
func NormalizeWatchStatus(s string) WatchStatus {
	return WatchStatus(strings.ToUpper(strings.TrimSpace(s)))
}

// IsValid verifica se o status pertence ao enum.
func (s WatchStatus) IsValid() bool {
	switch s {
	case StatusPlanned, StatusWatching, StatusCompleted, StatusDropped:
		return true
	}
	return false
}

// WatchlistItem representa a relação de acompanhamento entre um usuário e um filme.
// Invariante: no máximo um item por par (UserID, MovieID).
type WatchlistItem struct {
	ID        string      `json:"id"`
	UserID    string      `json:"user_id"`
	MovieID   string      `json:"movie_id"`
	Status    WatchStatus `json:"status"`
	Rating    *int        `json:"rating,omitempty"` // Nota de 1 a 10 (opcional)
	Note      *string     `json:"note,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// AddToWatchlistRequest é o payload de entrada para adicionar um filme à watchlist.
type AddToWatchlistRequest struct {
	MovieID string  `json:"movie_id"`
	Status  *string `json:"status,omitempty"`
	Rating  *int    `json:"rating,omitempty"`
	Note    *string `json:"note,omitempty"`
}

// WatchlistPatch é o payload de atualização parcial de um item.
// Cada campo usa ponteiro para distinguir "campo ausente" (nil, não altera)
// de "campo presente" (valor aplicado).
type WatchlistPatch struct {
	Status *string `json:"status,omitempty"`
	Rating *int    `json:"rating,omitempty"`
	Note   *string `json:"note,omitempty"`
}

// IsEmpty informa se o patch não contém nenhum campo a aplicar.
func (p WatchlistPatch) IsEmpty() bool {
	return p.Status == nil && p.Rating == nil && p.Note == nil
}

// WatchlistRepository define o contrato de persistência para itens de watchlist.
// A unicidade (user_id, movie_id) é garantida por constraint no banco; o Save
// deve traduzir a violação dessa constraint para um erro de Conflito.
type WatchlistRepository interface {
	Save(ctx Context, item WatchlistItem) (WatchlistItem, error)
	FindByID(ctx Context, id string) (WatchlistItem, error)
	FindByUserAndMovie(ctx Context, userID, movieID string) (WatchlistItem, error)
	FindByUser(ctx Context, userID string) ([]WatchlistItem, error)
	FindMoviesByUser(ctx Context, userID string) ([]Movie, error)
	Update(ctx Context, item WatchlistItem) (WatchlistItem, error)
	Delete(ctx Context, id string) error
}

// WatchlistService define o contrato de lógica de negócio da watchlist.
type WatchlistService interface {
	AddToWatchlist(ctx Context, userID string, req AddToWatchlistRequest) (WatchlistItem, error)
	UpdateItem(ctx Context, itemID, requesterID string, patch WatchlistPatch) (WatchlistItem, error)
	RemoveItem(ctx Context, itemID, requesterID string) error
	ListItemsForUser(ctx Context, userID string) ([]WatchlistItem, error)
	ListMoviesForUser(ctx Context, userID string) ([]Movie, error)
}
