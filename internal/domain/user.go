package domain

import "time"

// User representa a entidade do usuário no sistema.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Oculta o hash da senha no JSON de resposta
	Role         UserRole  `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// UserRole é um tipo string para representar o papel do usuário no sistema.
type UserRole string

// Constantes para os papéis de usuário. O papel padrão (sem privilégios) é RoleUser.
const (
	RoleUser       UserRole = "User"
	RoleAdmin      UserRole = "Admin"
	RoleSuperAdmin UserRole = "Super_Admin"
)

// IsValid verifica se a role pertence ao conjunto fechado de papéis conhecidos.
func (r UserRole) IsValid() bool {
	switch r {
	case RoleUser, RoleAdmin, RoleSuperAdmin:
		return true
	}
	return false
}

// UserRegistration representa o payload de entrada para o registro.
type UserRegistration struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserRepository define o contrato de persistência para a entidade User.
type UserRepository interface {
	Save(ctx Context, user User) (User, error)
	FindByEmail(ctx Context, email string) (User, error)
	FindByID(ctx Context, id string) (User, error)
	FindAll(ctx Context) ([]User, error)
	Delete(ctx Context, id string) error
}

// UserService define o contrato de lógica de negócio para a entidade User.
type UserService interface {
	Register(ctx Context, registration UserRegistration) (User, error)
	Login(ctx Context, email string, password string) (User, string, error)
	ListUsers(ctx Context) ([]User, error)
	GetUserByID(ctx Context, id string) (User, error)
	DeleteUser(ctx Context, id string) error
}
