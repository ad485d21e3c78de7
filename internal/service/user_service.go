package service

import (
	"context"
	"fmt"

	"github.com/secureexam/portal-backend/internal/model"
	"github.com/secureexam/portal-backend/internal/repository"
)

// UserService handles account management for both self-service
// registration and the admin user console.
type UserService struct {
	userRepo *repository.UserRepository
	auth     *AuthService
}

// NewUserService creates a new UserService.
func NewUserService(userRepo *repository.UserRepository, auth *AuthService) *UserService {
	return &UserService{userRepo: userRepo, auth: auth}
}

// Register creates a student account from the public registration form.
func (s *UserService) Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error) {
	return s.create(ctx, req.Username, req.Email, req.Password, false)
}

// Create creates an account from the admin console.
func (s *UserService) Create(ctx context.Context, req *model.CreateUserRequest) (*model.User, error) {
	return s.create(ctx, req.Username, req.Email, req.Password, req.IsAdmin)
}

func (s *UserService) create(ctx context.Context, username, email, password string, isAdmin bool) (*model.User, error) {
	hash, err := s.auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: &hash,
		IsAdmin:      isAdmin,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrDuplicateUser
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// GetByUsername retrieves an account by its login name.
func (s *UserService) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	return s.userRepo.GetByUsername(ctx, username)
}

// GetByID retrieves an account.
func (s *UserService) GetByID(ctx context.Context, id int) (*model.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// List retrieves all accounts.
func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	return s.userRepo.List(ctx)
}

// Update applies partial edits to an account. Empty request fields keep
// the current values; a non-empty password is re-hashed.
func (s *UserService) Update(ctx context.Context, id int, req *model.UpdateUserRequest) (*model.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Username != "" {
		user.Username = req.Username
	}
	if req.Email != "" {
		user.Email = req.Email
	}
	if req.Password != "" {
		hash, err := s.auth.HashPassword(req.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = &hash
	}
	if req.IsAdmin != nil {
		user.IsAdmin = *req.IsAdmin
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrDuplicateUser
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}

// Delete removes an account. Accounts that still own ledger entries are
// protected; the admin has to delete the results first.
func (s *UserService) Delete(ctx context.Context, id int) error {
	if _, err := s.userRepo.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.userRepo.Delete(ctx, id); err != nil {
		if repository.IsForeignKeyViolation(err) {
			return ErrUserHasResults
		}
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

// ResolveFederated finds or creates the account for a federated identity.
// An existing account matched by email gets the external id linked; a
// brand-new identity gets a student account with no local password.
func (s *UserService) ResolveFederated(ctx context.Context, info *GoogleUserInfo) (*model.User, error) {
	user, err := s.userRepo.GetByGoogleOrEmail(ctx, info.ID, info.Email)
	if err == nil {
		if user.GoogleID == nil || *user.GoogleID != info.ID {
			if err := s.userRepo.UpdateGoogleInfo(ctx, user.ID, info.ID, info.Picture); err != nil {
				return nil, fmt.Errorf("link federated identity: %w", err)
			}
			user.GoogleID = &info.ID
			user.Picture = &info.Picture
		}
		return user, nil
	}
	if !repository.IsNotFound(err) {
		return nil, fmt.Errorf("resolve federated identity: %w", err)
	}

	username := info.Name
	if username == "" {
		username = info.Email
	}
	user = &model.User{
		Username: username,
		Email:    info.Email,
		GoogleID: &info.ID,
		Picture:  &info.Picture,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if repository.IsUniqueViolation(err) {
			// Display name collides with an existing username; fall back
			// to the email, which the unique email check already cleared.
			user.Username = info.Email
			if err2 := s.userRepo.Create(ctx, user); err2 == nil {
				return user, nil
			}
			return nil, ErrDuplicateUser
		}
		return nil, fmt.Errorf("create federated user: %w", err)
	}
	return user, nil
}
