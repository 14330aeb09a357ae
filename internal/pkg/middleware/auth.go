package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"moviewatch/internal/domain"
	apperror "moviewatch/internal/errors"
	"moviewatch/internal/pkg/token"
)

// ContextKey é um tipo próprio para chaves de contexto.
// Usamos um tipo int para garantir que esta chave seja única e não haja conflito
// com outras chaves string (Context Keys devem ser não-exportadas e de um tipo único).
type ContextKey int

const (
	// UserClaimsKey é a chave usada para armazenar a identidade autenticada no contexto.
	UserClaimsKey ContextKey = iota
)

// UserClaims representa a identidade autenticada anexada ao contexto da requisição.
// A Role vem do registro atual do usuário no banco, não do token.
type UserClaims struct {
	UserID string
	Email  string
	Role   domain.UserRole
}

// TokenValidator define o contrato de validação necessário para o middleware.
type TokenValidator interface {
	ValidateToken(tokenString string) (*token.CustomClaims, error)
}

// UserLoader define o subconjunto do repositório de usuários que o middleware usa
// para confirmar que o dono do token ainda existe.
type UserLoader interface {
	FindByID(ctx domain.Context, id string) (domain.User, error)
}

// writeError envia uma resposta de erro JSON padronizada ({code, category, message}).
func writeError(w http.ResponseWriter, err apperror.AppError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(err.HTTPStatus())
	json.NewEncoder(w).Encode(domain.ErrorResponse{
		Code:     err.HTTPStatus(),
		Category: err.Category(),
		Message:  err.Error(),
	})
}

// extractToken procura o token primeiro no header Authorization (Bearer) e,
// na ausência dele, no cookie de sessão.
func extractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}

	if cookie, err := r.Cookie(token.CookieName); err == nil {
		return cookie.Value
	}

	return ""
}

// NewAuthMiddleware cria uma função de middleware que valida um JWT, confirma que
// o usuário ainda existe no banco e anexa a identidade ao contexto da requisição.
//
// Máquina de estados por requisição (falha sempre fechada, 401 e parada):
//
//	sem token            -> 401
//	token inválido       -> 401
//	token ok, sem user   -> 401 (usuário removido após emissão do token)
//	token ok, user ok    -> identidade no contexto, próximo handler
func NewAuthMiddleware(tokenSvc TokenValidator, users UserLoader) func(next http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {

			// 1. Extrair o Token (header Bearer ou cookie)
			tokenString := extractToken(r)
			if tokenString == "" {
				writeError(w, apperror.NewUnauthorizedError("Token de autorização ausente."))
				return
			}

			// 2. Validar o Token
			// Todas as falhas (expirado, adulterado, malformado) colapsam em 401.
			claims, err := tokenSvc.ValidateToken(tokenString)
			if err != nil {
				writeError(w, apperror.NewUnauthorizedError("Token inválido ou expirado."))
				return
			}

			// 3. Confirmar que o usuário ainda existe
			// Um token pode sobreviver à deleção do usuário; sem o registro, 401.
			user, err := users.FindByID(r.Context(), claims.UserID)
			if err != nil {
				writeError(w, apperror.NewUnauthorizedError("Usuário não existe mais."))
				return
			}

			// 4. Anexar a identidade ao Contexto
			userClaims := UserClaims{
				UserID: user.ID,
				Email:  user.Email,
				Role:   user.Role,
			}

			ctx := context.WithValue(r.Context(), UserClaimsKey, userClaims)

			// Chama o próximo handler com o novo contexto
			next.ServeHTTP(w, r.WithContext(ctx))
		}
	}
}

// GetUserClaimsFromContext é uma função utilitária para extrair a identidade no handler.
func GetUserClaimsFromContext(ctx context.Context) (UserClaims, bool) {
	claims, ok := ctx.Value(UserClaimsKey).(UserClaims)
	return claims, ok
}

// PermissionMiddleware autoriza a requisição apenas se a role da identidade
// autenticada estiver na lista de roles permitidas. A negação interrompe a
// cadeia: o próximo handler nunca executa após um 403.
// Deve rodar somente depois do AuthMiddleware ter populado a identidade.
func PermissionMiddleware(requiredRoles ...domain.UserRole) func(next http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {

			// 1. Tentar extrair a identidade do contexto
			// Se o AuthMiddleware não foi executado ou falhou em anexar as claims,
			// tratamos como não autorizado (erro de configuração de rota).
			claims, ok := GetUserClaimsFromContext(r.Context())
			if !ok {
				writeError(w, apperror.NewUnauthorizedError("Autorização necessária. Token não processado."))
				return
			}

			// 2. Verificar Permissão (AuthZ)
			isAuthorized := false
			for _, requiredRole := range requiredRoles {
				if claims.Role == requiredRole {
					isAuthorized = true
					break
				}
			}

			if !isAuthorized {
				writeError(w, apperror.NewForbiddenError("Você não tem permissão para executar esta ação."))
				return
			}

			// 3. Permissão concedida: Chama o próximo handler
			next.ServeHTTP(w, r)
		}
	}
}
