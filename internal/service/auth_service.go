package service

import (
	"context"
	"errors"
	"time"

	"ai-docchat-be/internal/constant"
	"ai-docchat-be/internal/dto"
	"ai-docchat-be/internal/entity"
	"ai-docchat-be/internal/pkg/logger"
	"ai-docchat-be/internal/repository/specification"
	"ai-docchat-be/internal/repository/unitofwork"
	"ai-docchat-be/pkg/session"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid employee id or password")
	ErrUserExists         = errors.New("employee id already registered")
	ErrInvalidRole        = errors.New("unknown role")
)

type IAuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	Logout(ctx context.Context, employeeId string) error
	Register(ctx context.Context, req *dto.RegisterUserRequest) (*dto.UserResponse, error)
	ChangePassword(ctx context.Context, employeeId string, req *dto.ChangePasswordRequest) error
}

type authService struct {
	uowFactory    unitofwork.RepositoryFactory
	jwtSecret     string
	tokenTTL      time.Duration
	ghostTTLHours int
	log           logger.ILogger
}

func NewAuthService(
	uowFactory unitofwork.RepositoryFactory,
	jwtSecret string,
	tokenTTLHours int,
	ghostTTLHours int,
	log logger.ILogger,
) IAuthService {
	return &authService{
		uowFactory:    uowFactory,
		jwtSecret:     jwtSecret,
		tokenTTL:      time.Duration(tokenTTLHours) * time.Hour,
		ghostTTLHours: ghostTTLHours,
		log:           log,
	}
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByEmployeeId{EmployeeId: req.EmployeeId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.log.Warn("auth", "failed login attempt", map[string]interface{}{"employee_id": req.EmployeeId})
		return nil, ErrInvalidCredentials
	}

	registry := session.NewRegistry(uow, s.ghostTTLHours)
	if err := registry.Login(ctx, user.EmployeeId); err != nil {
		return nil, err
	}

	claims := jwt.MapClaims{
		"employee_id": user.EmployeeId,
		"role":        user.Role,
		"exp":         time.Now().Add(s.tokenTTL).Unix(),
		"iat":         time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return nil, err
	}

	s.log.Info("auth", "user logged in", map[string]interface{}{"employee_id": user.EmployeeId, "role": user.Role})

	return &dto.LoginResponse{
		Token:      signed,
		EmployeeId: user.EmployeeId,
		Name:       user.Name,
		Surname:    user.Surname,
		Role:       user.Role,
	}, nil
}

func (s *authService) Logout(ctx context.Context, employeeId string) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	registry := session.NewRegistry(uow, s.ghostTTLHours)
	if err := registry.Logout(ctx, employeeId); err != nil {
		return err
	}
	s.log.Info("auth", "user logged out", map[string]interface{}{"employee_id": employeeId})
	return nil
}

func (s *authService) Register(ctx context.Context, req *dto.RegisterUserRequest) (*dto.UserResponse, error) {
	if !constant.IsValidRole(req.Role) {
		return nil, ErrInvalidRole
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.UserRepository().FindOne(ctx, specification.ByEmployeeId{EmployeeId: req.EmployeeId})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUserExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		EmployeeId:   req.EmployeeId,
		Name:         req.Name,
		Surname:      req.Surname,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         req.Role,
		CreatedAt:    time.Now(),
	}

	if err := uow.UserRepository().Create(ctx, user); err != nil {
		return nil, err
	}

	s.log.Info("auth", "user registered", map[string]interface{}{"employee_id": user.EmployeeId, "role": user.Role})

	return &dto.UserResponse{
		EmployeeId: user.EmployeeId,
		Name:       user.Name,
		Surname:    user.Surname,
		Email:      user.Email,
		Role:       user.Role,
		CreatedAt:  user.CreatedAt,
	}, nil
}

func (s *authService) ChangePassword(ctx context.Context, employeeId string, req *dto.ChangePasswordRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByEmployeeId{EmployeeId: employeeId})
	if err != nil {
		return err
	}
	if user == nil {
		return ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.OldPassword)); err != nil {
		return ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)

	return uow.UserRepository().Update(ctx, user)
}
