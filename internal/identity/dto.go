package identity

import (
	"time"

	"github.com/google/uuid"
	"github.com/solbazaar/solbazaar-backend/pkg/db/models"
	"github.com/solbazaar/solbazaar-backend/pkg/enums"
)

// Principal identifies an authenticated actor of any role.
type Principal struct {
	ID    uuid.UUID  `json:"id"`
	Role  enums.Role `json:"role"`
	Name  string     `json:"name"`
	Email string     `json:"email"`
}

// UserView is the serialized customer account.
type UserView struct {
	ID               uuid.UUID   `json:"id"`
	Name             string      `json:"name"`
	Email            string      `json:"email"`
	Address          *string     `json:"address,omitempty"`
	Phone            *string     `json:"phone,omitempty"`
	Verified         bool        `json:"verified"`
	SurveyRequestIDs []uuid.UUID `json:"survey_request_ids"`
	CreatedAt        time.Time   `json:"created_at"`
}

// SellerView is the serialized vendor account.
type SellerView struct {
	ID               uuid.UUID   `json:"id"`
	Name             string      `json:"name"`
	Email            string      `json:"email"`
	Company          *string     `json:"company,omitempty"`
	Address          *string     `json:"address,omitempty"`
	Phone            *string     `json:"phone,omitempty"`
	Certifications   []string    `json:"certifications"`
	Services         []string    `json:"services"`
	InventoryIDs     []uuid.UUID `json:"inventory_ids"`
	SurveyRequestIDs []uuid.UUID `json:"survey_request_ids"`
	Verified         bool        `json:"verified"`
	CreatedAt        time.Time   `json:"created_at"`
}

// AdminView is the serialized platform operator account.
type AdminView struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// UpdateUserInput carries the user-editable profile fields.
type UpdateUserInput struct {
	Name    *string `json:"name" validate:"omitempty,min=1,max=120"`
	Address *string `json:"address" validate:"omitempty,max=500"`
	Phone   *string `json:"phone" validate:"omitempty,max=40"`
}

// UpdateSellerInput carries the seller-editable profile fields.
type UpdateSellerInput struct {
	Name           *string   `json:"name" validate:"omitempty,min=1,max=120"`
	Company        *string   `json:"company" validate:"omitempty,max=200"`
	Address        *string   `json:"address" validate:"omitempty,max=500"`
	Phone          *string   `json:"phone" validate:"omitempty,max=40"`
	Certifications *[]string `json:"certifications" validate:"omitempty,dive,max=200"`
	Services       *[]string `json:"services" validate:"omitempty,dive,max=200"`
}

// ListFilters narrows admin account listings.
type ListFilters struct {
	Search   string
	Verified *bool
}

// UserList is one page of user accounts.
type UserList struct {
	Items      []UserView `json:"items"`
	NextCursor *string    `json:"next_cursor,omitempty"`
}

// SellerList is one page of seller accounts.
type SellerList struct {
	Items      []SellerView `json:"items"`
	NextCursor *string      `json:"next_cursor,omitempty"`
}

func userView(u *models.User) UserView {
	return UserView{
		ID:               u.ID,
		Name:             u.Name,
		Email:            u.Email,
		Address:          u.Address,
		Phone:            u.Phone,
		Verified:         u.Verified,
		SurveyRequestIDs: u.SurveyRequestIDs,
		CreatedAt:        u.CreatedAt,
	}
}

func sellerView(s *models.Seller) SellerView {
	return SellerView{
		ID:               s.ID,
		Name:             s.Name,
		Email:            s.Email,
		Company:          s.Company,
		Address:          s.Address,
		Phone:            s.Phone,
		Certifications:   s.Certifications,
		Services:         s.Services,
		InventoryIDs:     s.InventoryIDs,
		SurveyRequestIDs: s.SurveyRequestIDs,
		Verified:         s.Verified,
		CreatedAt:        s.CreatedAt,
	}
}

func adminView(a *models.Admin) AdminView {
	return AdminView{
		ID:        a.ID,
		Name:      a.Name,
		Email:     a.Email,
		CreatedAt: a.CreatedAt,
	}
}
