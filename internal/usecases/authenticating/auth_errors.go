package authenticating

import (
	"errors"
	"fmt"
)

// Erros específicos para o contexto de autenticação
var (
	// Erros de credenciais e conta
	ErrInvalidCredentials = errors.New("credenciais inválidas")
	ErrUserDisabled       = errors.New("usuário desativado")
	ErrUserNotFound       = errors.New("usuário não encontrado")
	ErrUserAlreadyExists  = errors.New("usuário já existe")

	// Erros de validação
	ErrMissingRequiredData = errors.New("dados obrigatórios ausentes")

	// Erros de banco de dados
	ErrDatabaseOperation = errors.New("erro ao realizar operação no banco de dados")
)

// AuthError é um erro com contexto adicional para autenticação
type AuthError struct {
	Err     error  // Erro base
	Code    string // Código de erro para API
	UserID  int    // ID do usuário envolvido (quando aplicável)
	Details string // Detalhes adicionais
}

func (e *AuthError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

func NewAuthError(err error, code string, details string) *AuthError {
	return &AuthError{
		Err:     err,
		Code:    code,
		Details: details,
	}
}

// NewUserAuthError cria um erro de autenticação com contexto de usuário
func NewUserAuthError(err error, code string, userID int, details string) *AuthError {
	return &AuthError{
		Err:     err,
		Code:    code,
		UserID:  userID,
		Details: details,
	}
}
