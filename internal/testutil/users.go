package testutil

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/willykudo/pionix/internal/domain/user"
	"github.com/willykudo/pionix/internal/pkg/pagination"
)

type UserRepo struct {
	mu    sync.Mutex
	users []user.User
	seq   int
}

func NewUserRepo(users ...user.User) *UserRepo {
	return &UserRepo{users: append([]user.User(nil), users...)}
}

func (r *UserRepo) GetByUsername(ctx context.Context, username string) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (r *UserRepo) GetByIDs(ctx context.Context, ids []string) ([]user.User, error) {
	var out []user.User
	for _, id := range ids {
		if u, err := r.GetByID(ctx, id); err == nil {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *UserRepo) List(ctx context.Context, filter user.UserFilter) ([]user.User, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []user.User
	for _, u := range r.users {
		if filter.Role != nil && string(u.Role) != *filter.Role {
			continue
		}
		if filter.Search != nil {
			q := strings.ToLower(*filter.Search)
			if !strings.Contains(strings.ToLower(u.Name), q) &&
				!strings.Contains(strings.ToLower(u.Username), q) &&
				!strings.Contains(string(u.Role), q) {
				continue
			}
		}
		matched = append(matched, u)
	}
	return page(matched, filter.Page, filter.Limit), int64(len(matched)), nil
}

func (r *UserRepo) Count(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.users)), nil
}

func (r *UserRepo) Create(ctx context.Context, u user.User) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	if u.ID == "" {
		u.ID = fmt.Sprintf("user-%d", r.seq)
	}
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	r.users = append(r.users, u)
	return u, nil
}

func (r *UserRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	_, err := r.GetByUsername(ctx, username)
	return err == nil, nil
}

func (r *UserRepo) Update(ctx context.Context, u user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.users {
		if r.users[i].ID == u.ID {
			r.users[i] = u
			return nil
		}
	}
	return user.ErrUserNotFound
}

func (r *UserRepo) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.users {
		if r.users[i].ID == userID {
			r.users[i].PasswordHash = passwordHash
			return nil
		}
	}
	return user.ErrUserNotFound
}

func (r *UserRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.users {
		if r.users[i].ID == id {
			r.users = append(r.users[:i], r.users[i+1:]...)
			return nil
		}
	}
	return user.ErrUserNotFound
}

func page[T any](items []T, p, limit int) []T {
	if limit <= 0 {
		return items
	}
	from := pagination.Offset(p, limit)
	if from >= len(items) {
		return []T{}
	}
	return items[from:min(from+limit, len(items))]
}
