package user

import "context"

// Repository resolves user identities. GetByID returns (nil, nil) when the
// user does not exist; callers decide whether that is an error.
type Repository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id uint) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Exists(ctx context.Context, id uint) (bool, error)
}
