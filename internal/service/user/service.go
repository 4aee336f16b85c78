package user

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/willykudo/pionix/internal/domain/user"
	"github.com/willykudo/pionix/internal/pkg/pagination"
)

// TokenRevoker cuts off access tokens already issued to a user.
type TokenRevoker interface {
	RevokeUserTokens(ctx context.Context, userID string) error
}

type UserServiceImpl struct {
	user.UserRepository
	tokens TokenRevoker
}

func NewUserService(userRepository user.UserRepository, tokens TokenRevoker) user.UserService {
	return &UserServiceImpl{UserRepository: userRepository, tokens: tokens}
}

func (s *UserServiceImpl) Profile(ctx context.Context) (user.UserResponse, error) {
	session, err := user.SessionFromContext(ctx)
	if err != nil {
		return user.UserResponse{}, err
	}

	u, err := s.UserRepository.GetByID(ctx, session.UserID)
	if err != nil {
		return user.UserResponse{}, err
	}
	return user.NewUserResponse(u), nil
}

func (s *UserServiceImpl) List(ctx context.Context, filter user.UserFilter) (user.ListUserResponse, error) {
	session, err := user.SessionFromContext(ctx)
	if err != nil {
		return user.ListUserResponse{}, err
	}
	if !session.Can(user.PermissionUserManage) {
		return user.ListUserResponse{}, user.ErrInsufficientPermissions
	}

	if err := filter.Validate(); err != nil {
		return user.ListUserResponse{}, err
	}

	users, total, err := s.UserRepository.List(ctx, filter)
	if err != nil {
		return user.ListUserResponse{}, fmt.Errorf("failed to list users: %w", err)
	}

	resp := user.ListUserResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: pagination.TotalPages(total, filter.Limit),
		Showing:    pagination.Showing(filter.Page, filter.Limit, total),
		Users:      make([]user.UserResponse, 0, len(users)),
	}
	for _, u := range users {
		resp.Users = append(resp.Users, user.NewUserResponse(u))
	}
	return resp, nil
}

// Get returns any user for admins; others may only read themselves.
func (s *UserServiceImpl) Get(ctx context.Context, id string) (user.UserResponse, error) {
	session, err := user.SessionFromContext(ctx)
	if err != nil {
		return user.UserResponse{}, err
	}
	if id != session.UserID && !session.Can(user.PermissionUserManage) {
		return user.UserResponse{}, user.ErrInsufficientPermissions
	}

	u, err := s.UserRepository.GetByID(ctx, id)
	if err != nil {
		return user.UserResponse{}, err
	}
	return user.NewUserResponse(u), nil
}

// Update edits a user. Non-admins may edit only themselves and cannot change their role.
func (s *UserServiceImpl) Update(ctx context.Context, req user.UpdateUserRequest) (user.UserResponse, error) {
	session, err := user.SessionFromContext(ctx)
	if err != nil {
		return user.UserResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}

	isManager := session.Can(user.PermissionUserManage)
	if req.ID != session.UserID && !isManager {
		return user.UserResponse{}, user.ErrInsufficientPermissions
	}
	if req.Role != nil && !isManager {
		return user.UserResponse{}, user.ErrAdminPrivilegeRequired
	}

	existing, err := s.UserRepository.GetByID(ctx, req.ID)
	if err != nil {
		return user.UserResponse{}, err
	}

	if req.Username != nil && *req.Username != existing.Username {
		exists, err := s.UserRepository.ExistsByUsername(ctx, *req.Username)
		if err != nil {
			return user.UserResponse{}, fmt.Errorf("failed to check username: %w", err)
		}
		if exists {
			return user.UserResponse{}, user.ErrUsernameExists
		}
		existing.Username = *req.Username
	}
	if req.Name != nil {
		existing.Name = *req.Name
	}
	roleChanged := req.Role != nil && user.Role(*req.Role) != existing.Role
	if req.Role != nil {
		existing.Role = user.Role(*req.Role)
	}
	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return user.UserResponse{}, fmt.Errorf("failed to hash password: %w", err)
		}
		existing.PasswordHash = string(hash)
	}

	if err := s.UserRepository.Update(ctx, existing); err != nil {
		return user.UserResponse{}, fmt.Errorf("failed to update user: %w", err)
	}

	// The role travels inside access tokens, so old tokens would keep the old role.
	if roleChanged {
		if err := s.tokens.RevokeUserTokens(ctx, existing.ID); err != nil {
			return user.UserResponse{}, fmt.Errorf("failed to revoke user tokens: %w", err)
		}
	}

	updated, err := s.UserRepository.GetByID(ctx, req.ID)
	if err != nil {
		return user.UserResponse{}, err
	}
	return user.NewUserResponse(updated), nil
}

func (s *UserServiceImpl) Delete(ctx context.Context, id string) error {
	session, err := user.SessionFromContext(ctx)
	if err != nil {
		return err
	}
	if !session.Can(user.PermissionUserManage) {
		return user.ErrInsufficientPermissions
	}
	if id == session.UserID {
		return user.ErrCannotDeleteSelf
	}

	if _, err := s.UserRepository.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.UserRepository.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.tokens.RevokeUserTokens(ctx, id); err != nil {
		return fmt.Errorf("failed to revoke user tokens: %w", err)
	}
	return nil
}
