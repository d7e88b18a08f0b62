package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/craneworks/craneops_backend/internal/apperrors"
	"github.com/craneworks/craneops_backend/internal/core/domain"
	portsrepo "github.com/craneworks/craneops_backend/internal/core/ports/repositories"
	portssvc "github.com/craneworks/craneops_backend/internal/core/ports/services"
	"github.com/craneworks/craneops_backend/internal/dto"
	"github.com/craneworks/craneops_backend/internal/utils"
	"github.com/google/uuid"
)

type userService struct {
	BaseService
	userRepo portsrepo.UserRepository
}

// NewUserService creates the staff management service.
func NewUserService(userRepo portsrepo.UserRepository) portssvc.UserSvcFacade {
	return &userService{userRepo: userRepo}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

// usernameBase squashes a display name into a username candidate. Korean
// names survive as-is since usernames are unicode.
func usernameBase(name string) string {
	base := strings.ToLower(strings.Join(strings.Fields(name), ""))
	if base == "" {
		base = "user"
	}
	return base
}

// generateUsername probes the base name and numeric suffixes until a free
// username is found.
func generateUsername(ctx context.Context, userRepo portsrepo.UserRepository, name string) (string, error) {
	base := usernameBase(name)
	candidate := base
	for suffix := 1; ; suffix++ {
		_, err := userRepo.FindUserByUsername(ctx, candidate)
		if errors.Is(err, apperrors.ErrNotFound) {
			return candidate, nil
		}
		if err != nil {
			return "", fmt.Errorf("failed to probe username %q: %w", candidate, err)
		}
		candidate = fmt.Sprintf("%s%d", base, suffix)
	}
}

// buildUser assembles a user with a generated ID, username and hashed password.
func buildUser(ctx context.Context, userRepo portsrepo.UserRepository, companyID, name, phone, password string, role domain.UserRole, status domain.UserStatus, creatorUserID string) (*domain.User, error) {
	username, err := generateUsername(ctx, userRepo, name)
	if err != nil {
		return nil, err
	}
	passwordHash, err := utils.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	now := time.Now()
	user := &domain.User{
		UserID:       uuid.NewString(),
		Username:     username,
		Name:         name,
		Phone:        phone,
		PasswordHash: passwordHash,
		Role:         role,
		Status:       status,
		CompanyID:    companyID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	// Self-registrations have no creator; the user is their own audit trail.
	if creatorUserID == "" {
		user.CreatedBy = user.UserID
		user.LastUpdatedBy = user.UserID
	}
	return user, nil
}

func (s *userService) CreateUser(ctx context.Context, companyID string, req dto.CreateUserRequest, creatorUserID string) (*domain.User, error) {
	if _, err := s.userRepo.FindUserByPhone(ctx, req.Phone); err == nil {
		return nil, fmt.Errorf("phone already registered: %w", apperrors.ErrDuplicate)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check phone: %w", err)
	}

	user, err := buildUser(ctx, s.userRepo, companyID, req.Name, req.Phone, req.Password, req.Role, domain.UserStatusActive, creatorUserID)
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.SaveUser(ctx, *user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	s.LogInfo(ctx, "staff member created",
		slog.String("user_id", user.UserID), slog.String("company_id", companyID))
	return user, nil
}

func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}
	return user, nil
}

func (s *userService) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}
	return user, nil
}

func (s *userService) GetUserByPhone(ctx context.Context, phone string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByPhone(ctx, phone)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by phone: %w", err)
	}
	return user, nil
}

func (s *userService) ListCompanyStaff(ctx context.Context, companyID string) ([]domain.User, error) {
	users, err := s.userRepo.ListUsersByCompany(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list company staff: %w", err)
	}
	return users, nil
}

// findCompanyUser loads a user and hides the account behind ErrNotFound when
// it belongs to another company.
func (s *userService) findCompanyUser(ctx context.Context, companyID, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.CompanyID != companyID {
		return nil, fmt.Errorf("user %s: %w", userID, apperrors.ErrNotFound)
	}
	return user, nil
}

func (s *userService) UpdateUser(ctx context.Context, companyID string, userID string, req dto.UpdateUserRequest, requestingUserID string) (*domain.User, error) {
	user, err := s.findCompanyUser(ctx, companyID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user for update: %w", err)
	}
	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}
	if req.Role != nil {
		user.Role = *req.Role
	}
	user.LastUpdatedAt = time.Now()
	user.LastUpdatedBy = requestingUserID
	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

func (s *userService) RequestPhoneChange(ctx context.Context, userID string, newPhone string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user for phone change: %w", err)
	}
	user.PendingPhone = &newPhone
	user.LastUpdatedAt = time.Now()
	user.LastUpdatedBy = userID
	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		return nil, fmt.Errorf("failed to record phone change request: %w", err)
	}
	s.LogInfo(ctx, "phone change requested", slog.String("user_id", userID))
	return user, nil
}

func (s *userService) UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, refreshTokenExpiryTime time.Time) error {
	return s.userRepo.UpdateRefreshToken(ctx, userID, refreshTokenHash, refreshTokenExpiryTime)
}

func (s *userService) ClearRefreshToken(ctx context.Context, userID string) error {
	return s.userRepo.ClearRefreshToken(ctx, userID)
}

func (s *userService) ApproveWorker(ctx context.Context, companyID string, userID string, approverUserID string) (*domain.User, error) {
	user, err := s.findCompanyUser(ctx, companyID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user for approval: %w", err)
	}
	if user.Status != domain.UserStatusPending {
		return nil, fmt.Errorf("user is not awaiting approval: %w", apperrors.ErrValidation)
	}
	user.Status = domain.UserStatusActive
	user.LastUpdatedAt = time.Now()
	user.LastUpdatedBy = approverUserID
	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		return nil, fmt.Errorf("failed to approve worker: %w", err)
	}
	s.LogInfo(ctx, "worker approved",
		slog.String("user_id", userID), slog.String("approved_by", approverUserID))
	return user, nil
}

func (s *userService) ApprovePhoneChange(ctx context.Context, companyID string, userID string, approverUserID string) (*domain.User, error) {
	user, err := s.findCompanyUser(ctx, companyID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user for phone approval: %w", err)
	}
	if user.PendingPhone == nil {
		return nil, fmt.Errorf("no phone change pending: %w", apperrors.ErrValidation)
	}
	user.Phone = *user.PendingPhone
	user.PendingPhone = nil
	user.LastUpdatedAt = time.Now()
	user.LastUpdatedBy = approverUserID
	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		return nil, fmt.Errorf("failed to apply phone change: %w", err)
	}
	return user, nil
}

func (s *userService) DeactivateUser(ctx context.Context, companyID string, userID string, requestingUserID string) error {
	if _, err := s.findCompanyUser(ctx, companyID, userID); err != nil {
		return fmt.Errorf("failed to find user for deactivation: %w", err)
	}
	if err := s.userRepo.MarkUserDeleted(ctx, userID, time.Now(), requestingUserID); err != nil {
		return fmt.Errorf("failed to deactivate user: %w", err)
	}
	s.LogInfo(ctx, "user deactivated",
		slog.String("user_id", userID), slog.String("deleted_by", requestingUserID))
	return nil
}
