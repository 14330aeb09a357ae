package token

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CookieName é o nome do cookie HTTP que transporta o token de sessão.
const CookieName = "jwt"

// TokenService define o contrato para manipulação de JWTs.
type TokenService interface {
	GenerateToken(userID string) (string, error)
	ValidateToken(tokenString string) (*CustomClaims, error)
	SetTokenCookie(w http.ResponseWriter, tokenString string)
	ClearTokenCookie(w http.ResponseWriter)
}

// CustomClaims define as informações específicas que queremos armazenar no JWT.
// O token carrega apenas a identidade (subject = ID do usuário); a role é lida
// do banco a cada requisição, para refletir mudanças de permissão imediatamente.
// É obrigatório incorporar jwt.RegisteredClaims.
type CustomClaims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// Service implementa a interface TokenService.
// O token é stateless: a validade é determinada apenas por assinatura + expiração,
// nunca por um registro no servidor. O logout apenas expira o cookie do cliente;
// um token capturado permanece válido até a expiração natural.
type Service struct {
	secretKey []byte
	expiry    time.Duration
	secure    bool // Cookie marcado como Secure (modo produção)
}

// NewService cria uma nova instância do serviço Token.
// A validação do tamanho mínimo da chave acontece na camada de config;
// aqui assumimos uma chave já validada.
func NewService(secretKey string, expiry time.Duration, secure bool) *Service {
	return &Service{
		secretKey: []byte(secretKey),
		expiry:    expiry,
		secure:    secure,
	}
}

// GenerateToken cria um novo JWT assinado contendo o ID do usuário como subject.
func (s *Service) GenerateToken(userID string) (string, error) {
	now := time.Now()
	claims := CustomClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    "MovieWatchlist-API",
			Subject:   userID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	// Assina o token com a chave secreta
	tokenString, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", fmt.Errorf("falha ao assinar o token: %w", err)
	}

	return tokenString, nil
}

// ValidateToken valida o token string e retorna as claims se for válido.
// Qualquer falha (assinatura, expiração, token malformado) resulta em erro;
// o chamador deve tratar todas indistintamente como "não autorizado".
func (s *Service) ValidateToken(tokenString string) (*CustomClaims, error) {
	claims := &CustomClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		// Verifica se o método de assinatura é o esperado (HS256)
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de assinatura inesperado: %v", token.Header["alg"])
		}
		return s.secretKey, nil
	})

	if err != nil {
		return nil, fmt.Errorf("token inválido: %w", err)
	}

	if !token.Valid {
		return nil, errors.New("token não é válido")
	}

	// O claims já foi preenchido durante o ParseWithClaims
	return claims, nil
}

// SetTokenCookie grava o token como cookie HTTP-only de mesma origem.
// Secure é ligado apenas em produção para não quebrar o desenvolvimento local.
func (s *Service) SetTokenCookie(w http.ResponseWriter, tokenString string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    tokenString,
		Path:     "/",
		MaxAge:   int(s.expiry.Seconds()),
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteStrictMode,
	})
}

// ClearTokenCookie sobrescreve o cookie com valor vazio já expirado (logout).
// Revogação stateless: não existe blacklist no servidor.
func (s *Service) ClearTokenCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteStrictMode,
	})
}
