package models

import (
	"strings"
	"time"
)

// AccountStatusDeleted is the status reported after an account is removed.
const AccountStatusDeleted = "Deleted successfully!"

// Account is a registered principal allowed to call the API.
type Account struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	Name         string    `gorm:"not null" json:"name"`
	Username     string    `gorm:"not null" json:"username"`
	UsernameKey  string    `gorm:"uniqueIndex;not null" json:"-"` // lower-cased Username
	PasswordHash string    `gorm:"not null" json:"-"`
	CreatedAt    time.Time `json:"-"`
}

// NormalizeUsername returns the key usernames are compared and indexed by.
func NormalizeUsername(username string) string {
	return strings.ToLower(username)
}

// Response returns the public projection of the account.
func (a *Account) Response() AccountResponse {
	return AccountResponse{
		ID:       a.ID,
		Name:     a.Name,
		Username: a.Username,
	}
}

type CreateAccountInput struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type AccountResponse struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
}

type DeleteAccountResponse struct {
	Username string `json:"username"`
	Status   string `json:"status"`
}
