package domain

import "context"

type UsersRepo interface {
	Close()
	Ping(context.Context) error
	CreateUser(ctx context.Context, login string, passHash []byte) (User, error)
	UserByLogin(ctx context.Context, login string) (User, error)
	UserByID(ctx context.Context, id UserID) (User, error)
}
