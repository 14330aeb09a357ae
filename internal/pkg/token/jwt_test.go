package token_test

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"moviewatch/internal/pkg/token"
)

const testSecret = "chave-de-teste-bem-longa"

// TestGenerateAndValidateToken_RoundTrip testa que um token gerado valida
// e devolve a mesma identidade.
func TestGenerateAndValidateToken_RoundTrip(t *testing.T) {
	svc := token.NewService(testSecret, time.Hour, false)
	userID := uuid.New().String()

	tokenString, err := svc.GenerateToken(userID)
	assert.NoError(t, err)
	assert.NotEmpty(t, tokenString)

	claims, err := svc.ValidateToken(tokenString)
	assert.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, userID, claims.Subject)
	assert.Equal(t, "MovieWatchlist-API", claims.Issuer)
}

// TestValidateToken_Fail_WrongSecret testa que um token assinado com outra
// chave é rejeitado.
func TestValidateToken_Fail_WrongSecret(t *testing.T) {
	svc := token.NewService(testSecret, time.Hour, false)
	other := token.NewService("outra-chave-completamente-diferente", time.Hour, false)

	tokenString, err := other.GenerateToken(uuid.New().String())
	assert.NoError(t, err)

	_, err = svc.ValidateToken(tokenString)
	assert.Error(t, err)
}

// TestValidateToken_Fail_Expired testa que um token expirado é rejeitado.
func TestValidateToken_Fail_Expired(t *testing.T) {
	svc := token.NewService(testSecret, -time.Minute, false)

	tokenString, err := svc.GenerateToken(uuid.New().String())
	assert.NoError(t, err)

	_, err = svc.ValidateToken(tokenString)
	assert.Error(t, err)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

// TestValidateToken_Fail_Tampered testa que um token adulterado é rejeitado.
func TestValidateToken_Fail_Tampered(t *testing.T) {
	svc := token.NewService(testSecret, time.Hour, false)

	tokenString, err := svc.GenerateToken(uuid.New().String())
	assert.NoError(t, err)

	// Corrompe o último caractere da assinatura
	tampered := tokenString[:len(tokenString)-1] + "x"
	if tampered == tokenString {
		tampered = tokenString[:len(tokenString)-1] + "y"
	}

	_, err = svc.ValidateToken(tampered)
	assert.Error(t, err)
}

// TestValidateToken_Fail_Garbage testa que uma string arbitrária é rejeitada.
func TestValidateToken_Fail_Garbage(t *testing.T) {
	svc := token.NewService(testSecret, time.Hour, false)

	_, err := svc.ValidateToken("isso.nao.eh-um-jwt")
	assert.Error(t, err)
}

// TestSetTokenCookie testa os atributos de segurança do cookie de sessão.
func TestSetTokenCookie(t *testing.T) {
	svc := token.NewService(testSecret, time.Hour, false)

	rec := httptest.NewRecorder()
	svc.SetTokenCookie(rec, "token-qualquer")

	cookies := rec.Result().Cookies()
	assert.Len(t, cookies, 1)

	cookie := cookies[0]
	assert.Equal(t, token.CookieName, cookie.Name)
	assert.Equal(t, "token-qualquer", cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.False(t, cookie.Secure) // Secure apenas em produção
	assert.Equal(t, int(time.Hour.Seconds()), cookie.MaxAge)
}

// TestSetTokenCookie_SecureInProduction testa que o modo produção liga o Secure.
func TestSetTokenCookie_SecureInProduction(t *testing.T) {
	svc := token.NewService(testSecret, time.Hour, true)

	rec := httptest.NewRecorder()
	svc.SetTokenCookie(rec, "token-qualquer")

	cookies := rec.Result().Cookies()
	assert.Len(t, cookies, 1)
	assert.True(t, cookies[0].Secure)
}

// TestClearTokenCookie testa que o logout grava um cookie vazio já expirado.
func TestClearTokenCookie(t *testing.T) {
	svc := token.NewService(testSecret, time.Hour, false)

	rec := httptest.NewRecorder()
	svc.ClearTokenCookie(rec)

	cookies := rec.Result().Cookies()
	assert.Len(t, cookies, 1)

	cookie := cookies[0]
	assert.Equal(t, token.CookieName, cookie.Name)
	assert.Empty(t, cookie.Value)
	assert.Negative(t, cookie.MaxAge)
}
