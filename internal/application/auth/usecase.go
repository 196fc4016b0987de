package auth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/zoo-api/internal/application/dto"
	"github.com/jhoicas/zoo-api/internal/domain"
	"github.com/jhoicas/zoo-api/internal/domain/entity"
	"github.com/jhoicas/zoo-api/internal/domain/repository"
	"github.com/jhoicas/zoo-api/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// TokenIssuer emite el token de sesión (pkg/jwt.Signer).
type TokenIssuer interface {
	Issue(id jwt.Identity) (string, error)
}

// AuthUseCase casos de uso de autenticación: registro de empleados y login.
type AuthUseCase struct {
	employeeRepo repository.EmployeeRepository
	tokens       TokenIssuer
	hashCost     int
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(employeeRepo repository.EmployeeRepository, tokens TokenIssuer) *AuthUseCase {
	return &AuthUseCase{employeeRepo: employeeRepo, tokens: tokens, hashCost: bcrypt.DefaultCost}
}

// RegisterEmployee crea un empleado: hashea password con bcrypt y persiste.
// Devuelve domain.ErrDuplicate si el username ya existe.
func (uc *AuthUseCase) RegisterEmployee(ctx context.Context, in dto.RegisterEmployeeRequest) (*dto.EmployeeResponse, error) {
	username := strings.ToLower(strings.TrimSpace(in.Username))
	fullName := strings.TrimSpace(in.FullName)
	if username == "" || fullName == "" || len(in.Password) < 8 || !entity.IsValidRole(in.Role) {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.employeeRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), uc.hashCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	employee := &entity.Employee{
		ID:           uuid.New().String(),
		FullName:     fullName,
		Username:     username,
		PasswordHash: string(hash),
		Phone:        strings.TrimSpace(in.Phone),
		Role:         in.Role,
		Status:       entity.EmployeeStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.employeeRepo.Create(ctx, employee); err != nil {
		return nil, err
	}
	return toEmployeeResponse(employee), nil
}

// Login verifica username/password, genera JWT y retorna token + empleado.
// Username desconocido y password incorrecto dan el mismo error.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	employee, err := uc.employeeRepo.FindByUsername(ctx, strings.ToLower(strings.TrimSpace(in.Username)))
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(employee.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if employee.Status != entity.EmployeeStatusActive {
		return nil, domain.ErrForbidden
	}
	token, err := uc.tokens.Issue(jwt.Identity{EmployeeID: employee.ID, Role: employee.Role})
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:    token,
		Employee: *toEmployeeResponse(employee),
	}, nil
}

// EnsureAdmin crea el administrador inicial si el username todavía no existe.
// created=false cuando ya estaba registrado; no modifica su password.
func (uc *AuthUseCase) EnsureAdmin(ctx context.Context, username, password string) (created bool, err error) {
	existing, err := uc.employeeRepo.FindByUsername(ctx, strings.ToLower(strings.TrimSpace(username)))
	if err != nil {
		return false, err
	}
	if existing != nil {
		return false, nil
	}
	_, err = uc.RegisterEmployee(ctx, dto.RegisterEmployeeRequest{
		FullName: "Administrador",
		Username: username,
		Password: password,
		Role:     entity.RoleAdmin,
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

func toEmployeeResponse(e *entity.Employee) *dto.EmployeeResponse {
	if e == nil {
		return nil
	}
	return &dto.EmployeeResponse{
		ID:        e.ID,
		FullName:  e.FullName,
		Username:  e.Username,
		Phone:     e.Phone,
		Role:      e.Role,
		Status:    e.Status,
		CreatedAt: e.CreatedAt,
	}
}
