package userservice

import (
	"errors"
	"fmt"
	"net/mail"
	"unicode"

	"golang.org/x/crypto/bcrypt"

	"moviewatch/internal/domain"
	apperror "moviewatch/internal/errors"
	"moviewatch/internal/pkg/logger"
	"moviewatch/internal/pkg/token"
)

// UserService define o serviço de lógica de negócio para a entidade User.
type UserService struct {
	UserRepo domain.UserRepository
	TokenSvc TokenService
	logger   logger.Logger
}

// TokenService é o contrato da camada de token (internal/pkg/token).
type TokenService interface {
	GenerateToken(userID string) (string, error)
	ValidateToken(tokenString string) (*token.CustomClaims, error)
}

// NewService cria uma nova instância do UserService, injetando o Repositório.
func NewService(repo domain.UserRepository, tokenSvc TokenService, logger logger.Logger) *UserService {
	return &UserService{
		UserRepo: repo,
		TokenSvc: tokenSvc,
		logger:   logger,
	}
}

// Register registra um novo usuário no sistema.
// Ele valida o payload, faz o hashing da senha e persiste o usuário com a role padrão.
func (s *UserService) Register(ctx domain.Context, registration domain.UserRegistration) (domain.User, error) {
	// 1. Validação de entrada (campos obrigatórios + política de senha)
	if registration.Name == "" || registration.Email == "" || registration.Password == "" {
		return domain.User{}, apperror.NewValidationError("Nome, email e senha são obrigatórios.")
	}
	if _, err := mail.ParseAddress(registration.Email); err != nil {
		return domain.User{}, apperror.NewValidationError("Informe um email válido.")
	}
	if err := validatePassword(registration.Password); err != nil {
		return domain.User{}, err
	}

	// 2. Pré-check de duplicata (caminho rápido; a constraint UNIQUE do banco
	// é o guard definitivo, traduzida para ConflictError pelo repositório)
	if _, err := s.UserRepo.FindByEmail(ctx, registration.Email); err == nil {
		return domain.User{}, apperror.NewConflictError(
			fmt.Sprintf("O email '%s' já está em uso.", registration.Email),
		)
	} else {
		var notFoundErr *apperror.NotFoundError
		if !errors.As(err, &notFoundErr) {
			// Falha real de infraestrutura, não "usuário inexistente"
			return domain.User{}, err
		}
	}

	// 3. Hashing da Senha
	// bcrypt gera o salt aleatório internamente; DefaultCost = 10 rounds.
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(registration.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, apperror.NewInternalError("Falha ao gerar hash da senha.", err)
	}

	// 4. Criação do Objeto User (role padrão, sem privilégios)
	newUser := domain.User{
		Name:         registration.Name,
		Email:        registration.Email,
		PasswordHash: string(hashedPassword),
		Role:         domain.RoleUser,
	}

	// 5. Chamada ao Repositório para Persistência
	user, err := s.UserRepo.Save(ctx, newUser)
	if err != nil {
		// O repositório já traduz violação de unicidade para ConflictError.
		return domain.User{}, err
	}

	s.logger.Info("Usuário registrado.", map[string]interface{}{"user_id": user.ID, "email": user.Email})
	return user, nil
}

// Login autentica um usuário, verifica a senha e gera um JWT.
// Retorna o usuário autenticado e o token assinado.
func (s *UserService) Login(ctx domain.Context, email string, password string) (domain.User, string, error) {
	// 1. Validação Básica
	if email == "" || password == "" {
		return domain.User{}, "", apperror.NewUnauthorizedError("Email e senha são obrigatórios.")
	}

	// 2. Buscar Usuário pelo Email
	user, err := s.UserRepo.FindByEmail(ctx, email)
	if err != nil {
		// Se for um NotFoundError (404), tratamos como Unauthorized (401)
		// para não dar dicas a invasores.
		var notFoundErr *apperror.NotFoundError
		if errors.As(err, &notFoundErr) {
			return domain.User{}, "", apperror.NewUnauthorizedError("Credenciais inválidas.")
		}
		return domain.User{}, "", err
	}

	// 3. Comparar Senhas (comparação em tempo constante, dentro do bcrypt)
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return domain.User{}, "", apperror.NewUnauthorizedError("Credenciais inválidas.")
	}

	// 4. Gerar JWT
	tokenString, err := s.TokenSvc.GenerateToken(user.ID)
	if err != nil {
		return domain.User{}, "", apperror.NewInternalError("Falha ao gerar token de autenticação.", err)
	}

	s.logger.Info("Login efetuado.", map[string]interface{}{"user_id": user.ID})
	return user, tokenString, nil
}

// ListUsers retorna todos os usuários (operação administrativa).
func (s *UserService) ListUsers(ctx domain.Context) ([]domain.User, error) {
	users, err := s.UserRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return users, nil
}

// GetUserByID busca um usuário pelo ID (operação administrativa).
func (s *UserService) GetUserByID(ctx domain.Context, id string) (domain.User, error) {
	return s.UserRepo.FindByID(ctx, id)
}

// DeleteUser remove um usuário pelo ID (operação administrativa).
func (s *UserService) DeleteUser(ctx domain.Context, id string) error {
	if err := s.UserRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Usuário removido por ação administrativa.", map[string]interface{}{"user_id": id})
	return nil
}

// validatePassword aplica a política de senha do registro:
// mínimo de 8 caracteres, ao menos uma maiúscula, um dígito e um caractere especial.
func validatePassword(password string) error {
	if len(password) < 8 {
		return apperror.NewValidationError("A senha deve ter pelo menos 8 caracteres.")
	}

	var hasUpper, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		case !unicode.IsLetter(r) && !unicode.IsDigit(r):
			hasSpecial = true
		}
	}

	if !hasUpper {
		return apperror.NewValidationError("A senha deve conter pelo menos uma letra maiúscula.")
	}
	if !hasDigit {
		return apperror.NewValidationError("A senha deve conter pelo menos um número.")
	}
	if !hasSpecial {
		return apperror.NewValidationError("A senha deve conter pelo menos um caractere especial.")
	}

	return nil
}
