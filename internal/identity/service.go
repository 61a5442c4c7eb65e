package identity

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/solbazaar/solbazaar-backend/pkg/enums"
	pkgerrors "github.com/solbazaar/solbazaar-backend/pkg/errors"
	"github.com/solbazaar/solbazaar-backend/pkg/logger"
	"github.com/solbazaar/solbazaar-backend/pkg/pagination"
	"gorm.io/gorm"
)

type service struct {
	repo Repository
	logg *logger.Logger
}

// NewService builds the identity service with the required dependencies.
func NewService(repo Repository, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("identity repository required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, logg: logg}, nil
}

func (s *service) GetPrincipal(ctx context.Context, id uuid.UUID, role enums.Role) (*Principal, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "principal identity missing")
	}

	switch role {
	case enums.RoleUser:
		user, err := s.repo.FindUserByID(ctx, id)
		if err != nil {
			return nil, notFoundOrDependency(err, "user")
		}
		return &Principal{ID: user.ID, Role: enums.RoleUser, Name: user.Name, Email: user.Email}, nil
	case enums.RoleSeller:
		seller, err := s.repo.FindSellerByID(ctx, id)
		if err != nil {
			return nil, notFoundOrDependency(err, "seller")
		}
		return &Principal{ID: seller.ID, Role: enums.RoleSeller, Name: seller.Name, Email: seller.Email}, nil
	case enums.RoleAdmin:
		admin, err := s.repo.FindAdminByID(ctx, id)
		if err != nil {
			return nil, notFoundOrDependency(err, "admin")
		}
		return &Principal{ID: admin.ID, Role: enums.RoleAdmin, Name: admin.Name, Email: admin.Email}, nil
	default:
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, fmt.Sprintf("unknown role %q", role))
	}
}

func (s *service) GetUser(ctx context.Context, id uuid.UUID) (*UserView, error) {
	user, err := s.repo.FindUserByID(ctx, id)
	if err != nil {
		return nil, notFoundOrDependency(err, "user")
	}
	view := userView(user)
	return &view, nil
}

func (s *service) UpdateUserProfile(ctx context.Context, id uuid.UUID, input UpdateUserInput) (*UserView, error) {
	updates := map[string]any{}
	if input.Name != nil {
		updates["name"] = *input.Name
	}
	if input.Address != nil {
		updates["address"] = *input.Address
	}
	if input.Phone != nil {
		updates["phone"] = *input.Phone
	}
	if len(updates) == 0 {
		return s.GetUser(ctx, id)
	}

	if _, err := s.repo.FindUserByID(ctx, id); err != nil {
		return nil, notFoundOrDependency(err, "user")
	}
	if err := s.repo.UpdateUser(ctx, id, updates); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update user profile")
	}
	return s.GetUser(ctx, id)
}

func (s *service) ListUsers(ctx context.Context, params pagination.Params, filters ListFilters) (*UserList, error) {
	users, err := s.repo.ListUsers(ctx, params, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list users")
	}

	limit := pagination.NormalizeLimit(params.Limit)
	list := &UserList{Items: make([]UserView, 0, len(users))}
	for i := range users {
		if i == limit {
			cursor := pagination.EncodeCursor(pagination.Cursor{
				CreatedAt: users[limit-1].CreatedAt,
				ID:        users[limit-1].ID,
			})
			list.NextCursor = &cursor
			break
		}
		list.Items = append(list.Items, userView(&users[i]))
	}
	return list, nil
}

func (s *service) SetUserVerified(ctx context.Context, id uuid.UUID, verified bool) (*UserView, error) {
	if _, err := s.repo.FindUserByID(ctx, id); err != nil {
		return nil, notFoundOrDependency(err, "user")
	}
	if err := s.repo.UpdateUser(ctx, id, map[string]any{"verified": verified}); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update user verification")
	}
	return s.GetUser(ctx, id)
}

// DeleteUser removes the account. Deleting a user that is already gone is a
// no-op, so retried deletions succeed.
func (s *service) DeleteUser(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.repo.DeleteUser(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete user")
	}
	if !deleted {
		s.logg.Info(s.logg.WithField(ctx, "user_id", id.String()), "delete user skipped, account already removed")
	}
	return nil
}

func (s *service) GetSeller(ctx context.Context, id uuid.UUID) (*SellerView, error) {
	seller, err := s.repo.FindSellerByID(ctx, id)
	if err != nil {
		return nil, notFoundOrDependency(err, "seller")
	}
	view := sellerView(seller)
	return &view, nil
}

func (s *service) UpdateSellerProfile(ctx context.Context, id uuid.UUID, input UpdateSellerInput) (*SellerView, error) {
	updates := map[string]any{}
	if input.Name != nil {
		updates["name"] = *input.Name
	}
	if input.Company != nil {
		updates["company"] = *input.Company
	}
	if input.Address != nil {
		updates["address"] = *input.Address
	}
	if input.Phone != nil {
		updates["phone"] = *input.Phone
	}
	if input.Certifications != nil {
		updates["certifications"] = pq.StringArray(*input.Certifications)
	}
	if input.Services != nil {
		updates["services"] = pq.StringArray(*input.Services)
	}
	if len(updates) == 0 {
		return s.GetSeller(ctx, id)
	}

	if _, err := s.repo.FindSellerByID(ctx, id); err != nil {
		return nil, notFoundOrDependency(err, "seller")
	}
	if err := s.repo.UpdateSeller(ctx, id, updates); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update seller profile")
	}
	return s.GetSeller(ctx, id)
}

func (s *service) ListSellers(ctx context.Context, params pagination.Params, filters ListFilters) (*SellerList, error) {
	sellers, err := s.repo.ListSellers(ctx, params, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list sellers")
	}

	limit := pagination.NormalizeLimit(params.Limit)
	list := &SellerList{Items: make([]SellerView, 0, len(sellers))}
	for i := range sellers {
		if i == limit {
			cursor := pagination.EncodeCursor(pagination.Cursor{
				CreatedAt: sellers[limit-1].CreatedAt,
				ID:        sellers[limit-1].ID,
			})
			list.NextCursor = &cursor
			break
		}
		list.Items = append(list.Items, sellerView(&sellers[i]))
	}
	return list, nil
}

func (s *service) SetSellerVerified(ctx context.Context, id uuid.UUID, verified bool) (*SellerView, error) {
	if _, err := s.repo.FindSellerByID(ctx, id); err != nil {
		return nil, notFoundOrDependency(err, "seller")
	}
	if err := s.repo.UpdateSeller(ctx, id, map[string]any{"verified": verified}); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update seller verification")
	}
	return s.GetSeller(ctx, id)
}

// DeleteSeller removes the account with the same idempotent contract as
// DeleteUser.
func (s *service) DeleteSeller(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.repo.DeleteSeller(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete seller")
	}
	if !deleted {
		s.logg.Info(s.logg.WithField(ctx, "seller_id", id.String()), "delete seller skipped, account already removed")
	}
	return nil
}

func (s *service) GetAdmin(ctx context.Context, id uuid.UUID) (*AdminView, error) {
	admin, err := s.repo.FindAdminByID(ctx, id)
	if err != nil {
		return nil, notFoundOrDependency(err, "admin")
	}
	view := adminView(admin)
	return &view, nil
}

func notFoundOrDependency(err error, entity string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, entity+" not found")
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load "+entity)
}
