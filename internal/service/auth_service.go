package service

import (
	"errors"

	"go-toko-api/internal/model"
	"go-toko-api/internal/repository"
	"go-toko-api/pkg/jwt"

	"github.com/google/uuid"
)

type AuthService interface {
	Login(email, password string) (*LoginResponse, error)
	Register(actor *model.User, req *RegisterRequest) (*model.User, error)
	UpdateUser(actor *model.User, userID uuid.UUID, req *UpdateUserRequest) (*model.User, error)
	ListUsers(req *ListUsersRequest) ([]model.UserResponse, int64, error)
}

type LoginResponse struct {
	Token string             `json:"token"`
	User  model.UserResponse `json:"user"`
}

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	FullName string `json:"full_name" validate:"required"`
	Role     string `json:"role"`
}

// UpdateUserRequest is a partial update; nil fields are left untouched.
type UpdateUserRequest struct {
	Email    *string `json:"email" validate:"omitempty,email"`
	Password *string `json:"password" validate:"omitempty,min=6"`
	FullName *string `json:"full_name"`
	Role     *string `json:"role"`
}

type ListUsersRequest struct {
	Role    string
	TokoID  *uuid.UUID
	Search  string
	Page    int
	PerPage int
}

type authService struct {
	userRepo repository.UserRepository
}

func NewAuthService(userRepo repository.UserRepository) AuthService {
	return &authService{userRepo: userRepo}
}

func (s *authService) Login(email, password string) (*LoginResponse, error) {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if !user.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}

	token, err := jwt.GenerateToken(user.ID, user.Email, user.FullName, string(user.Role))
	if err != nil {
		return nil, errors.New("failed to generate token")
	}

	return &LoginResponse{
		Token: token,
		User:  user.ToResponse(),
	}, nil
}

// Register creates a new account. Superadmin may assign any role; admin
// registrations are always forced to kasir.
func (s *authService) Register(actor *model.User, req *RegisterRequest) (*model.User, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	var role model.Role
	switch actor.Role {
	case model.RoleSuperadmin:
		parsed, err := model.ParseRole(req.Role)
		if err != nil {
			return nil, err
		}
		role = parsed
	case model.RoleAdmin:
		role = model.RoleKasir
	default:
		return nil, ErrForbidden
	}

	if existing, _ := s.userRepo.FindByEmail(req.Email); existing != nil {
		return nil, ErrEmailExists
	}

	user := &model.User{
		Role:     role,
		Email:    req.Email,
		FullName: req.FullName,
	}
	user.CreatedBy = actor.ID.String()
	user.UpdatedBy = actor.ID.String()

	if err := user.SetPassword(req.Password); err != nil {
		return nil, errors.New("failed to hash password")
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	return user, nil
}

// UpdateUser applies a partial update under role-conditioned rules:
// self-service edits of non-role fields are always allowed, editing another
// account requires superadmin/admin, and the role field may only be set by
// superadmin (any role) or admin (kasir only).
func (s *authService) UpdateUser(actor *model.User, userID uuid.UUID, req *UpdateUserRequest) (*model.User, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	isSelf := actor.ID == userID
	if !isSelf && actor.Role != model.RoleSuperadmin && actor.Role != model.RoleAdmin {
		return nil, ErrForbidden
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	if req.Role != nil {
		role, err := model.ParseRole(*req.Role)
		if err != nil {
			return nil, err
		}
		switch actor.Role {
		case model.RoleSuperadmin:
			user.Role = role
		case model.RoleAdmin:
			if role != model.RoleKasir {
				return nil, ErrForbidden
			}
			user.Role = role
		default:
			return nil, ErrForbidden
		}
	}

	if req.Email != nil && *req.Email != user.Email {
		if existing, _ := s.userRepo.FindByEmail(*req.Email); existing != nil {
			return nil, ErrEmailExists
		}
		user.Email = *req.Email
	}

	if req.FullName != nil {
		user.FullName = *req.FullName
	}

	if req.Password != nil && *req.Password != "" {
		if err := user.SetPassword(*req.Password); err != nil {
			return nil, errors.New("failed to hash password")
		}
	}

	user.UpdatedBy = actor.ID.String()

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *authService) ListUsers(req *ListUsersRequest) ([]model.UserResponse, int64, error) {
	filter := repository.UserListFilter{
		TokoID:  req.TokoID,
		Search:  req.Search,
		Page:    req.Page,
		PerPage: req.PerPage,
	}

	if req.Role != "" {
		role, err := model.ParseRole(req.Role)
		if err != nil {
			return nil, 0, err
		}
		filter.Role = &role
	}

	users, total, err := s.userRepo.List(filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]model.UserResponse, len(users))
	for i, user := range users {
		responses[i] = user.ToResponse()
	}
	return responses, total, nil
}
