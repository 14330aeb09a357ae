package userrepo

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

// UserRepository implementa a interface domain.UserRepository
type UserRepository struct {
	DB        *sql.DB
	DBTimeout time.Duration
	logger    logger.Logger
}

// NewUserRepository cria uma nova instância do UserRepository, injetando o DB.
func NewUserRepository(db *sql.DB, dbTimeout time.Duration, logger logger.Logger) *UserRepository {
	return &UserRepository{
		DB:        db,
		DBTimeout: dbTimeout,
		logger:    logger,
	}
}

// Save insere um novo usuário no banco de dados.
// A coluna email tem constraint UNIQUE: a violação é traduzida para ConflictError,
// o guard definitivo contra registros duplicados (o pré-check do serviço é só o
// caminho rápido).
func (r *UserRepository) Save(ctx domain.Context, user domain.User) (domain.User, error) {
	r.logger.Debug("Iniciando Save de usuário no repositório.", map[string]interface{}{"email": user.Email})

	// 1. Configura Contexto com Timeout
	ctxTimeout, cancel := context.WithTimeout(ctx.(context.Context), r.DBTimeout)
	defer cancel()

	// 2. Prepara dados e ID
	user.ID = uuid.NewString()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt

	// 3. Executa o INSERT
	const insertSQL = `INSERT INTO users (id, name, email, password_hash, role, created_at, updated_at)
	                   VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.DB.ExecContext(
		ctxTimeout,
		insertSQL,
		user.ID,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.Role,
		user.CreatedAt,
		user.UpdatedAt,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			r.logger.Info("Tentativa de registro com email duplicado.", map[string]interface{}{"email": user.Email})
			return domain.User{}, apperror.NewConflictError(fmt.Sprintf("O email '%s' já está em uso.", user.Email))
		}
		r.logger.Error("Falha ao inserir usuário no DB.", err)
		return domain.User{}, apperror.NewDBError("failed to insert user", err)
	}

	r.logger.Info("Usuário salvo com sucesso no repositório.", map[string]interface{}{"user_id": user.ID, "email": user.Email})
	return user, nil
}

// FindByEmail busca um usuário pelo endereço de e-mail.
func (r *UserRepository) FindByEmail(ctx domain.Context, email string) (domain.User, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx.(context.Context), r.DBTimeout)
	defer cancel()

	const query = `SELECT id, name, email, password_hash, role, created_at, updated_at
	               FROM users WHERE email = $1`

	row := r.DB.QueryRowContext(ctxTimeout, query, email)

	var user domain.User
	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.logger.Debug("Usuário não encontrado no DB por email.", map[string]interface{}{"email": email})
			return domain.User{}, apperror.NewNotFoundError(fmt.Sprintf("Usuário com email '%s' não encontrado", email))
		}
		r.logger.Error("Falha ao buscar usuário por email no DB.", err)
		return domain.User{}, apperror.NewDBError("failed to find user by email", err)
	}

	return user, nil
}

// FindByID busca um usuário pelo ID. Usado pelo Auth Gate a cada requisição
// autenticada para confirmar que o dono do token ainda existe.
func (r *UserRepository) FindByID(ctx domain.Context, id string) (domain.User, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx.(context.Context), r.DBTimeout)
	defer cancel()

	const query = `SELECT id, name, email, password_hash, role, created_at, updated_at
	               FROM users WHERE id = $1`

	row := r.DB.QueryRowContext(ctxTimeout, query, id)

	var user domain.User
	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, apperror.NewNotFoundError(fmt.Sprintf("Usuário com ID '%s' não encontrado", id))
		}
		r.logger.Error("Falha ao buscar usuário por ID no DB.", err)
		return domain.User{}, apperror.NewDBError("failed to find user by id", err)
	}

	return user, nil
}

// FindAll retorna todos os usuários cadastrados, dos mais recentes para os mais antigos.
func (r *UserRepository) FindAll(ctx domain.Context) ([]domain.User, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx.(context.Context), r.DBTimeout)
	defer cancel()

	const query = `SELECT id, name, email, password_hash, role, created_at, updated_at
	               FROM users ORDER BY created_at DESC`

	rows, err := r.DB.QueryContext(ctxTimeout, query)
	if err != nil {
		r.logger.Error("Falha ao listar usuários no DB.", err)
		return nil, apperror.NewDBError("failed to list users", err)
	}
	defer rows.Close()

	users := []domain.User{}
	for rows.Next() {
		var user domain.User
		if err := rows.Scan(
			&user.ID,
			&user.Name,
			&user.Email,
			&user.PasswordHash,
			&user.Role,
			&user.CreatedAt,
			&user.UpdatedAt,
		); err != nil {
			return nil, apperror.NewDBError("failed to scan user row", err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, apperror.NewDBError("failed to iterate user rows", err)
	}

	return users, nil
}

// Delete remove um usuário pelo ID. Deletar um usuário inexistente é NotFound,
// não um sucesso silencioso.
func (r *UserRepository) Delete(ctx domain.Context, id string) error {
	ctxTimeout, cancel := context.WithTimeout(ctx.(context.Context), r.DBTimeout)
	defer cancel()

	result, err := r.DB.ExecContext(ctxTimeout, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Falha ao deletar usuário no DB.", err)
		return apperror.NewDBError("failed to delete user", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperror.NewDBError("failed to read affected rows", err)
	}
	if affected == 0 {
		return apperror.NewNotFoundError(fmt.Sprintf("Usuário com ID '%s' não encontrado", id))
	}

	r.logger.Info("Usuário removido do repositório.", map[string]interface{}{"user_id": id})
	return nil
}
