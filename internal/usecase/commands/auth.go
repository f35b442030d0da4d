package commands

import (
	"context"
	"log/slog"

	"github.com/abdulsamad100/books-cave-api/internal/domain/user"
	"github.com/abdulsamad100/books-cave-api/internal/infra"
	"github.com/abdulsamad100/books-cave-api/internal/pkg/clock"
	"github.com/abdulsamad100/books-cave-api/internal/pkg/errs"
	"github.com/abdulsamad100/books-cave-api/internal/pkg/jwt"
	"github.com/abdulsamad100/books-cave-api/internal/pkg/password"
	"github.com/abdulsamad100/books-cave-api/internal/usecase/queries"
	"github.com/abdulsamad100/books-cave-api/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrUserNotFound         = errs.New("user not found")
	ErrInvalidCredentials   = errs.New("invalid credentials")
	ErrUserInactive         = errs.New("user inactive")
	ErrEmailAlreadyTaken    = errs.New("email already registered")
	ErrAuthenticationFailed = errs.New("authentication failed")
	ErrTokenGeneration      = errs.New("token generation failed")
)

type RegisterRequest struct {
	Email       string
	Password    string
	DisplayName string
}

type RegisterResult struct {
	UserID uuid.UUID
}

type LoginRequest struct {
	Email    string
	Password string
}

type LoginResult struct {
	UserID uuid.UUID
	Token  string
}

type AuthCommands interface {
	Register(ctx context.Context, req RegisterRequest) (*RegisterResult, error)
	Login(ctx context.Context, req LoginRequest) (*LoginResult, error)
}

type authCommandsImpl struct {
	uow        shared.UnitOfWork
	readStore  queries.UserReadStore
	jwtService *jwt.Service
	clock      clock.Clock
}

func NewAuthCommands(uow shared.UnitOfWork, readStore queries.UserReadStore, jwtService *jwt.Service, clk clock.Clock) AuthCommands {
	return &authCommandsImpl{
		uow:        uow,
		readStore:  readStore,
		jwtService: jwtService,
		clock:      clk,
	}
}

func (a *authCommandsImpl) Register(ctx context.Context, req RegisterRequest) (*RegisterResult, error) {
	credentials, err := user.NewCredentials(req.Email, req.Password)
	if err != nil {
		return nil, err
	}
	displayName, err := user.NewDisplayName(req.DisplayName)
	if err != nil {
		return nil, err
	}

	hash, err := password.HashPassword(credentials.Password().Value())
	if err != nil {
		return nil, errs.Mark(err, ErrAuthenticationFailed)
	}

	newUser := user.NewUser(credentials.Email(), displayName, a.clock.Now())

	var createdID uuid.UUID
	err = a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		id, derr := tx.Users().Create(ctx, tx.DB(), newUser, hash)
		if derr != nil {
			if infra.IsKind(derr, infra.KindDuplicateKey) {
				return ErrEmailAlreadyTaken
			}
			return derr
		}
		createdID = id
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &RegisterResult{UserID: createdID}, nil
}

func (a *authCommandsImpl) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	credentials, err := user.NewCredentials(req.Email, req.Password)
	if err != nil {
		return nil, errs.Mark(err, ErrAuthenticationFailed)
	}

	userView, err := a.validateUser(ctx, credentials)
	if err != nil {
		return nil, err
	}

	role, err := user.NewRole(userView.Role)
	if err != nil {
		return nil, errs.Mark(err, ErrAuthenticationFailed)
	}

	token, err := a.jwtService.GenerateToken(userView.ID, role)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenGeneration)
	}

	err = a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if updateErr := tx.Users().UpdateLastLogin(ctx, tx.DB(), userView.ID); updateErr != nil {
			slog.Warn("failed to update last login", "user_id", userView.ID, "error", updateErr.Error())
			// Continue without failing - this is not critical
		}
		return nil
	})
	if err != nil {
		slog.Warn("transaction failed during login", "user_id", userView.ID, "error", err.Error())
		// Continue without failing - login was successful, only last_login update failed
	}

	return &LoginResult{
		UserID: userView.ID,
		Token:  token,
	}, nil
}

func (a *authCommandsImpl) validateUser(ctx context.Context, credentials user.Credentials) (*queries.AuthorizedUserView, error) {
	userView, hashedPassword, err := a.readStore.FindByEmail(ctx, credentials.Email().Value())
	if err != nil {
		// Return same error as password mismatch to prevent user enumeration attacks
		return nil, ErrInvalidCredentials
	}

	if !userView.IsActive {
		return nil, ErrUserInactive
	}

	if err := password.ComparePassword(hashedPassword, credentials.Password().Value()); err != nil {
		return nil, ErrInvalidCredentials
	}

	return userView, nil
}
