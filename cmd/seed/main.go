package main

import (
	"context"
	"errors"
	"log"

	"github.com/joho/godotenv"

	"moviewatch/config"
	"moviewatch/internal/domain"
	apperror "moviewatch/internal/errors"
	"moviewatch/internal/pkg/cache"
	"moviewatch/internal/pkg/database"
	"moviewatch/internal/pkg/logger"
	"moviewatch/internal/repository/movierepo"
	"moviewatch/internal/service/movieservice"
)

// intPtr e strPtr ajudam a montar os campos opcionais do seed.
func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

// Catálogo inicial de filmes. O criador vem de SEED_CREATOR_ID (opcional).
var movies = []domain.Movie{
	{
		Title:       "Inception",
		Overview:    "A skilled thief leads a team into dreams to steal secrets from the subconscious.",
		ReleaseYear: 2010,
		Genres:      []string{"Sci-Fi", "Thriller"},
		Runtime:     intPtr(148),
		PosterURL:   strPtr("https://example.com/inception.jpg"),
	},
	{
		Title:       "The Dark Knight",
		Overview:    "Batman faces the Joker, a criminal mastermind spreading chaos in Gotham.",
		ReleaseYear: 2008,
		Genres:      []string{"Action", "Crime", "Drama"},
		Runtime:     intPtr(152),
		PosterURL:   strPtr("https://example.com/dark-knight.jpg"),
	},
	{
		Title:       "Interstellar",
		Overview:    "Explorers travel through a wormhole in space to save humanity.",
		ReleaseYear: 2014,
		Genres:      []string{"Sci-Fi", "Adventure", "Drama"},
		Runtime:     intPtr(169),
		PosterURL:   strPtr("https://example.com/interstellar.jpg"),
	},
	{
		Title:       "The Matrix",
		Overview:    "A hacker discovers reality is a simulation controlled by machines.",
		ReleaseYear: 1999,
		Genres:      []string{"Sci-Fi", "Action"},
		Runtime:     intPtr(136),
		PosterURL:   strPtr("https://example.com/matrix.jpg"),
	},
	{
		Title:       "Gladiator",
		Overview:    "A former Roman general seeks revenge against a corrupt emperor.",
		ReleaseYear: 2000,
		Genres:      []string{"Action", "Drama", "History"},
		Runtime:     intPtr(155),
		PosterURL:   strPtr("https://example.com/gladiator.jpg"),
	},
	{
		Title:       "The Shawshank Redemption",
		Overview:    "Two imprisoned men bond over years, finding hope and redemption.",
		ReleaseYear: 1994,
		Genres:      []string{"Drama"},
		Runtime:     intPtr(142),
		PosterURL:   strPtr("https://example.com/shawshank.jpg"),
	},
	{
		Title:       "Fight Club",
		Overview:    "An office worker forms an underground fight club with a soap salesman.",
		ReleaseYear: 1999,
		Genres:      []string{"Drama", "Thriller"},
		Runtime:     intPtr(139),
		PosterURL:   strPtr("https://example.com/fight-club.jpg"),
	},
	{
		Title:       "Forrest Gump",
		Overview:    "The life journey of a man with a low IQ who influences major events.",
		ReleaseYear: 1994,
		Genres:      []string{"Drama", "Romance"},
		Runtime:     intPtr(142),
		PosterURL:   strPtr("https://example.com/forrest-gump.jpg"),
	},
	{
		Title:       "The Lord of the Rings: The Fellowship of the Ring",
		Overview:    "A hobbit begins a journey to destroy a powerful ring.",
		ReleaseYear: 2001,
		Genres:      []string{"Fantasy", "Adventure"},
		Runtime:     intPtr(178),
		PosterURL:   strPtr("https://example.com/lotr-fellowship.jpg"),
	},
	{
		Title:       "The Godfather",
		Overview:    "The aging patriarch of a crime family transfers control to his son.",
		ReleaseYear: 1972,
		Genres:      []string{"Crime", "Drama"},
		Runtime:     intPtr(175),
		PosterURL:   strPtr("https://example.com/godfather.jpg"),
	},
	{
		Title:       "Pulp Fiction",
		Overview:    "Interconnected stories of crime unfold in Los Angeles.",
		ReleaseYear: 1994,
		Genres:      []string{"Crime", "Drama"},
		Runtime:     intPtr(154),
		PosterURL:   strPtr("https://example.com/pulp-fiction.jpg"),
	},
	{
		Title:       "Avatar",
		Overview:    "A marine explores an alien planet and becomes torn between two worlds.",
		ReleaseYear: 2009,
		Genres:      []string{"Sci-Fi", "Adventure"},
		Runtime:     intPtr(162),
		PosterURL:   strPtr("https://example.com/avatar.jpg"),
	},
	{
		Title:       "Titanic",
		Overview:    "A romance blossoms aboard a doomed luxury ship.",
		ReleaseYear: 1997,
		Genres:      []string{"Romance", "Drama"},
		Runtime:     intPtr(195),
		PosterURL:   strPtr("https://example.com/titanic.jpg"),
	},
	{
		Title:       "Whiplash",
		Overview:    "A young drummer faces intense pressure from an abusive instructor.",
		ReleaseYear: 2014,
		Genres:      []string{"Drama", "Music"},
		Runtime:     intPtr(106),
		PosterURL:   strPtr("https://example.com/whiplash.jpg"),
	},
	{
		Title:       "Parasite",
		Overview:    "A poor family schemes to infiltrate a wealthy household.",
		ReleaseYear: 2019,
		Genres:      []string{"Thriller", "Drama"},
		Runtime:     intPtr(132),
		PosterURL:   strPtr("https://example.com/parasite.jpg"),
	},
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ Aviso: Arquivo .env não encontrado. Carregando configs apenas do ambiente do sistema.")
	}

	cfg := config.LoadConfig()
	appLog := logger.NewLogger(cfg.LogLevel)

	db, err := database.NewPostgresDB(cfg.DatabaseURL)
	if err != nil {
		appLog.Fatal("seed: falha ao conectar ao banco de dados.", err)
	}
	defer db.Close()

	// O seed passa pelo serviço de catálogo para reaproveitar a checagem de
	// duplicata (título, ano): rodar o seed duas vezes não duplica o catálogo.
	movieRepo := movierepo.NewMovieRepository(db, cache.NewRedisClient(cfg.RedisAddr), cfg.DBTimeout)
	movieSvc := movieservice.NewService(movieRepo, appLog)

	ctx := context.Background()
	created := 0

	for _, movie := range movies {
		movie.CreatedBy = cfg.SeedCreatorID

		if _, err := movieSvc.CreateMovie(ctx, movie); err != nil {
			var conflictErr *apperror.ConflictError
			if errors.As(err, &conflictErr) {
				log.Printf("Filme '%s' (%d) já existe, pulando.", movie.Title, movie.ReleaseYear)
				continue
			}
			appLog.Fatal("seed: falha ao criar filme.", err)
		}

		log.Printf("Created movie %s Successfully", movie.Title)
		created++
	}

	log.Printf("Seeding Completed (%d filmes criados)", created)
}
