package user

import (
	"log/slog"
	"time"

	"github.com/frahmantamala/inventory-management/internal/auth"
)

// Repository defines the data access methods for users and role grants.
type Repository interface {
	Create(u *User) error
	GetByID(id int64) (*User, error)
	GetByEmail(email string) (*User, error)
	GetRoles(userID int64) ([]string, error)
	List(limit, offset int) ([]*User, error)
	Update(u *User) error
	Delete(id int64) error
	GrantRole(userID, roleID int64, grantedBy *int64) error
	RevokeRole(userID, roleID int64) error
	GetRoleByName(name string) (*Role, error)
}

type Service struct {
	repo       Repository
	bcryptCost int
	logger     *slog.Logger
}

func NewService(repo Repository, bcryptCost int, logger *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

// CreateUser registers a new account with the employee role implied by
// having no grants at all.
func (s *Service) CreateUser(dto CreateUserDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if existing, err := s.repo.GetByEmail(dto.Email); err == nil && existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := auth.HashPassword(dto.Password, s.bcryptCost)
	if err != nil {
		s.logger.Error("failed to hash password", "error", err)
		return nil, err
	}

	now := time.Now()
	u := &User{
		Email:        dto.Email,
		Name:         dto.Name,
		PasswordHash: hash,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Create(u); err != nil {
		s.logger.Error("failed to create user", "error", err, "email", dto.Email)
		return nil, err
	}

	s.logger.Info("user created", "user_id", u.ID, "email", u.Email)
	return u, nil
}

func (s *Service) GetByID(id int64) (*User, error) {
	u, err := s.repo.GetByID(id)
	if err != nil {
		return nil, ErrUserNotFound
	}

	roles, err := s.repo.GetRoles(id)
	if err != nil {
		s.logger.Error("failed to get user roles", "error", err, "user_id", id)
		return nil, err
	}
	u.Roles = roles

	return u, nil
}

func (s *Service) ListUsers(limit, offset int) ([]*User, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.repo.List(limit, offset)
}

func (s *Service) UpdateUser(id int64, dto UpdateUserDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	u, err := s.repo.GetByID(id)
	if err != nil {
		return nil, ErrUserNotFound
	}

	if dto.Name != nil {
		u.Name = *dto.Name
	}
	if dto.IsActive != nil {
		u.IsActive = *dto.IsActive
	}
	u.UpdatedAt = time.Now()

	if err := s.repo.Update(u); err != nil {
		s.logger.Error("failed to update user", "error", err, "user_id", id)
		return nil, err
	}
	return u, nil
}

func (s *Service) DeleteUser(id int64) error {
	if _, err := s.repo.GetByID(id); err != nil {
		return ErrUserNotFound
	}
	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete user", "error", err, "user_id", id)
		return err
	}
	s.logger.Info("user deleted", "user_id", id)
	return nil
}

// GrantRole gives a user a named role. Granting a role the user already
// holds is a conflict.
func (s *Service) GrantRole(userID int64, dto GrantRoleDTO, grantedBy *int64) error {
	if err := dto.Validate(); err != nil {
		return err
	}

	u, err := s.repo.GetByID(userID)
	if err != nil {
		return ErrUserNotFound
	}

	role, err := s.repo.GetRoleByName(dto.Role)
	if err != nil {
		return ErrRoleNotFound
	}

	roles, err := s.repo.GetRoles(userID)
	if err != nil {
		return err
	}
	for _, r := range roles {
		if r == role.Name {
			return ErrRoleAlreadyGranted
		}
	}

	if err := s.repo.GrantRole(userID, role.ID, grantedBy); err != nil {
		s.logger.Error("failed to grant role", "error", err, "user_id", userID, "role", dto.Role)
		return err
	}

	s.logger.Info("role granted", "user_id", u.ID, "role", role.Name)
	return nil
}

// RevokeRole removes a role grant. Revoking a role the user never had is
// a not-found.
func (s *Service) RevokeRole(userID int64, dto GrantRoleDTO) error {
	if err := dto.Validate(); err != nil {
		return err
	}

	if _, err := s.repo.GetByID(userID); err != nil {
		return ErrUserNotFound
	}

	role, err := s.repo.GetRoleByName(dto.Role)
	if err != nil {
		return ErrRoleNotFound
	}

	if err := s.repo.RevokeRole(userID, role.ID); err != nil {
		s.logger.Error("failed to revoke role", "error", err, "user_id", userID, "role", dto.Role)
		return err
	}

	s.logger.Info("role revoked", "user_id", userID, "role", role.Name)
	return nil
}

// Exists satisfies the assignee check used by the item module.
func (s *Service) Exists(userID int64) (bool, error) {
	_, err := s.repo.GetByID(userID)
	if err != nil {
		if err == ErrUserNotFound {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
