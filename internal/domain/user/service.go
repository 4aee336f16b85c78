package user

import "context"

type UserService interface {
	// Profile returns the authenticated caller.
	Profile(ctx context.Context) (UserResponse, error)
	List(ctx context.Context, filter UserFilter) (ListUserResponse, error)
	Get(ctx context.Context, id string) (UserResponse, error)
	Update(ctx context.Context, req UpdateUserRequest) (UserResponse, error)
	Delete(ctx context.Context, id string) error
}
