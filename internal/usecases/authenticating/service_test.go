package authenticating

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/autoads-api/infrastructure/repository/mocks"
	"github.com/vfg2006/autoads-api/internal/config"
	"github.com/vfg2006/autoads-api/internal/domain"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

func newTestService(t *testing.T) (*Service, *mocks.MockUserRepository) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	userRepo := mocks.NewMockUserRepository(ctrl)

	service := &Service{
		userRepo: userRepo,
		cfg: &config.Config{
			Auth: config.Auth{Secret: "test-secret"},
		},
	}

	return service, userRepo
}

func TestService_LoginUser(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("Correct@123"), bcrypt.MinCost)
	assert.NoError(t, err)

	activeUser := &domain.User{
		ID:           1,
		Name:         "Maria",
		Email:        "maria@example.com",
		PasswordHash: string(hash),
		Active:       true,
		RoleID:       2,
	}

	tests := []struct {
		name     string
		email    string
		password string
		setup    func(userRepo *mocks.MockUserRepository)
		validate func(t *testing.T, token string, err error)
	}{
		{
			name:     "Credenciais válidas retornam token com as claims do usuário",
			email:    "maria@example.com",
			password: "Correct@123",
			setup: func(userRepo *mocks.MockUserRepository) {
				userRepo.EXPECT().GetUserByEmail("maria@example.com").Return(activeUser, nil)
			},
			validate: func(t *testing.T, token string, err error) {
				assert.NoError(t, err)
				assert.NotEmpty(t, token)
			},
		},
		{
			name:     "Email é normalizado antes da consulta",
			email:    "  MARIA@Example.COM  ",
			password: "Correct@123",
			setup: func(userRepo *mocks.MockUserRepository) {
				userRepo.EXPECT().GetUserByEmail("maria@example.com").Return(activeUser, nil)
			},
			validate: func(t *testing.T, token string, err error) {
				assert.NoError(t, err)
				assert.NotEmpty(t, token)
			},
		},
		{
			name:     "Senha incorreta é rejeitada",
			email:    "maria@example.com",
			password: "Wrong@123",
			setup: func(userRepo *mocks.MockUserRepository) {
				userRepo.EXPECT().GetUserByEmail("maria@example.com").Return(activeUser, nil)
			},
			validate: func(t *testing.T, token string, err error) {
				assert.Empty(t, token)
				assert.ErrorIs(t, err, ErrInvalidCredentials)
			},
		},
		{
			name:     "Usuário desativado não autentica",
			email:    "maria@example.com",
			password: "Correct@123",
			setup: func(userRepo *mocks.MockUserRepository) {
				disabled := *activeUser
				disabled.Active = false
				userRepo.EXPECT().GetUserByEmail("maria@example.com").Return(&disabled, nil)
			},
			validate: func(t *testing.T, token string, err error) {
				assert.Empty(t, token)
				assert.ErrorIs(t, err, ErrUserDisabled)
			},
		},
		{
			name:     "Usuário inexistente não autentica",
			email:    "maria@example.com",
			password: "Correct@123",
			setup: func(userRepo *mocks.MockUserRepository) {
				userRepo.EXPECT().GetUserByEmail("maria@example.com").Return(nil, nil)
			},
			validate: func(t *testing.T, token string, err error) {
				assert.Empty(t, token)
				assert.ErrorIs(t, err, ErrUserNotFound)
			},
		},
		{
			name:     "Email e senha vazios são rejeitados sem consulta",
			email:    "",
			password: "",
			setup:    func(userRepo *mocks.MockUserRepository) {},
			validate: func(t *testing.T, token string, err error) {
				assert.Empty(t, token)
				assert.ErrorIs(t, err, ErrMissingRequiredData)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, userRepo := newTestService(t)
			tt.setup(userRepo)

			token, err := service.LoginUser(tt.email, tt.password)
			tt.validate(t, token, err)
		})
	}
}

func TestService_ValidateToken(t *testing.T) {
	t.Run("Token emitido pelo próprio serviço é aceito", func(t *testing.T) {
		service, userRepo := newTestService(t)

		hash, err := bcrypt.GenerateFromPassword([]byte("Correct@123"), bcrypt.MinCost)
		assert.NoError(t, err)

		userRepo.EXPECT().GetUserByEmail("maria@example.com").Return(&domain.User{
			ID:           1,
			Name:         "Maria",
			Email:        "maria@example.com",
			PasswordHash: string(hash),
			Active:       true,
			RoleID:       2,
		}, nil)

		token, err := service.LoginUser("maria@example.com", "Correct@123")
		assert.NoError(t, err)

		claims, err := service.ValidateToken(token)

		assert.NoError(t, err)
		assert.Equal(t, 1, claims.UserID)
		assert.Equal(t, "maria@example.com", claims.UserEmail)
		assert.Equal(t, 2, claims.UserRoleID)
	})

	t.Run("Token adulterado é rejeitado", func(t *testing.T) {
		service, _ := newTestService(t)

		claims, err := service.ValidateToken("not-a-valid-token")

		assert.Error(t, err)
		assert.Nil(t, claims)
	})
}

func TestService_ValidatePasswordStrength(t *testing.T) {
	tests := []struct {
		name     string
		password string
		valid    bool
	}{
		{name: "Senha forte é aceita", password: "Correct@123", valid: true},
		{name: "Menos de 8 caracteres", password: "Ab@1", valid: false},
		{name: "Sem letra maiúscula", password: "correct@123", valid: false},
		{name: "Sem letra minúscula", password: "CORRECT@123", valid: false},
		{name: "Sem número", password: "Correct@abc", valid: false},
		{name: "Sem caractere especial", password: "Correct123", valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, _ := newTestService(t)

			err := service.ValidatePasswordStrength(tt.password)

			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestGenerateStrongPassword(t *testing.T) {
	service, _ := newTestService(t)

	for i := 0; i < 10; i++ {
		password, err := generateStrongPassword(12)

		assert.NoError(t, err)
		assert.Len(t, password, 12)
		// Toda senha gerada passa na própria validação de força
		assert.NoError(t, service.ValidatePasswordStrength(password))
	}
}
