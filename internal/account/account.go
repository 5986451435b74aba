package account

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrNotFound           = errors.New("account not found")
	ErrExists             = errors.New("account already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// Role controls access to the admin surface.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// BusinessType categorizes the account's business.
type BusinessType string

const (
	BusinessRetailShop   BusinessType = "retail_shop"
	BusinessRestaurant   BusinessType = "restaurant"
	BusinessGroceryStore BusinessType = "grocery_store"
	BusinessElectronics  BusinessType = "electronics"
	BusinessClothing     BusinessType = "clothing"
	BusinessServices     BusinessType = "services"
	BusinessOther        BusinessType = "other"
)

func ParseBusinessType(s string) (BusinessType, error) {
	switch BusinessType(s) {
	case BusinessRetailShop, BusinessRestaurant, BusinessGroceryStore,
		BusinessElectronics, BusinessClothing, BusinessServices, BusinessOther:
		return BusinessType(s), nil
	default:
		return "", fmt.Errorf("unknown business type %q", s)
	}
}

// Account represents a registered business owner. The username is the key
// every record collection hangs off.
type Account struct {
	Username     string       `json:"username"`
	PasswordHash string       `json:"password_hash"`
	Role         Role         `json:"role"`
	BusinessName string       `json:"business_name"`
	BusinessType BusinessType `json:"business_type"`
	CreatedAt    time.Time    `json:"created_at"`
}
