package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/solbazaar/solbazaar-backend/internal/identity"
	pkgauth "github.com/solbazaar/solbazaar-backend/pkg/auth"
	"github.com/solbazaar/solbazaar-backend/pkg/config"
	"github.com/solbazaar/solbazaar-backend/pkg/db"
	"github.com/solbazaar/solbazaar-backend/pkg/db/models"
	"github.com/solbazaar/solbazaar-backend/pkg/enums"
	pkgerrors "github.com/solbazaar/solbazaar-backend/pkg/errors"
	"github.com/solbazaar/solbazaar-backend/pkg/logger"
	"github.com/solbazaar/solbazaar-backend/pkg/security"
	"gorm.io/gorm"
)

// Service exposes registration and login for all three account roles.
type Service interface {
	Register(ctx context.Context, input RegisterInput) (*Session, error)
	Login(ctx context.Context, input LoginInput) (*Session, error)
}

type service struct {
	accounts    identity.Repository
	jwtConfig   config.JWTConfig
	passwordCfg config.PasswordConfig
	logg        *logger.Logger
	now         func() time.Time
}

// NewService builds the auth service with the required dependencies.
func NewService(accounts identity.Repository, jwtCfg config.JWTConfig, passwordCfg config.PasswordConfig, logg *logger.Logger) (Service, error) {
	if accounts == nil {
		return nil, fmt.Errorf("identity repository required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		accounts:    accounts,
		jwtConfig:   jwtCfg,
		passwordCfg: passwordCfg,
		logg:        logg,
		now:         time.Now,
	}, nil
}

func (s *service) Register(ctx context.Context, input RegisterInput) (*Session, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	name := strings.TrimSpace(input.Name)

	hash, err := security.HashPassword(input.Password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	var principal identity.Principal

	switch input.Role {
	case enums.RoleUser:
		user := &models.User{
			ID:           uuid.New(),
			Name:         name,
			Email:        email,
			PasswordHash: hash,
			Address:      input.Address,
			Phone:        input.Phone,
		}
		if err := s.accounts.CreateUser(ctx, user); err != nil {
			return nil, registrationError(err)
		}
		principal = identity.Principal{ID: user.ID, Role: enums.RoleUser, Name: user.Name, Email: user.Email}

	case enums.RoleSeller:
		seller := &models.Seller{
			ID:           uuid.New(),
			Name:         name,
			Email:        email,
			PasswordHash: hash,
			Company:      input.Company,
			Address:      input.Address,
			Phone:        input.Phone,
		}
		if err := s.accounts.CreateSeller(ctx, seller); err != nil {
			return nil, registrationError(err)
		}
		principal = identity.Principal{ID: seller.ID, Role: enums.RoleSeller, Name: seller.Name, Email: seller.Email}

	case enums.RoleAdmin:
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "admin accounts cannot be self-registered")

	default:
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown role %q", input.Role))
	}

	return s.mintSession(principal)
}

func (s *service) Login(ctx context.Context, input LoginInput) (*Session, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	principal, hash, err := s.findAccount(ctx, email)
	if err != nil {
		return nil, err
	}

	ok, err := security.VerifyPassword(input.Password, hash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
	}

	return s.mintSession(*principal)
}

// findAccount resolves an email across the three account tables. Users are
// checked first, then sellers, then admins.
func (s *service) findAccount(ctx context.Context, email string) (*identity.Principal, string, error) {
	user, err := s.accounts.FindUserByEmail(ctx, email)
	if err == nil {
		return &identity.Principal{ID: user.ID, Role: enums.RoleUser, Name: user.Name, Email: user.Email}, user.PasswordHash, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "look up user account")
	}

	seller, err := s.accounts.FindSellerByEmail(ctx, email)
	if err == nil {
		return &identity.Principal{ID: seller.ID, Role: enums.RoleSeller, Name: seller.Name, Email: seller.Email}, seller.PasswordHash, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "look up seller account")
	}

	admin, err := s.accounts.FindAdminByEmail(ctx, email)
	if err == nil {
		return &identity.Principal{ID: admin.ID, Role: enums.RoleAdmin, Name: admin.Name, Email: admin.Email}, admin.PasswordHash, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "look up admin account")
	}

	return nil, "", pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
}

func (s *service) mintSession(principal identity.Principal) (*Session, error) {
	token, err := pkgauth.MintAccessToken(s.jwtConfig, s.now(), pkgauth.AccessTokenPayload{
		PrincipalID: principal.ID,
		Role:        principal.Role,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint access token")
	}
	return &Session{Token: token, Principal: principal}, nil
}

func registrationError(err error) error {
	if db.IsUniqueViolation(err, "") {
		return pkgerrors.New(pkgerrors.CodeConflict, "an account with this email already exists")
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create account")
}
