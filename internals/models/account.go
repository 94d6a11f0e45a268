package models

import "time"

// Account roles. The role is fixed at creation and never changes afterwards.
const (
	RoleEmployee = "employee"
	RoleEmployer = "employer"
)

type Account struct {
	ID       uint   `gorm:"column:account_id;primaryKey" json:"id"`
	Email    string `gorm:"column:account_email;uniqueIndex" json:"email"`
	Password string `gorm:"column:account_password" json:"-"` // bcrypt hash; empty for SSO-only accounts
	Role     string `gorm:"column:account_role" json:"role"`

	// OAuth2 / Social Login. Populated only for accounts that originated from
	// (or were later linked to) an SSO provider.
	SSOProvider string     `gorm:"column:sso_provider;index:idx_account_sso" json:"-"`
	SSOID       string     `gorm:"column:sso_id;index:idx_account_sso" json:"-"`
	SSOToken    string     `gorm:"column:sso_token" json:"-"`
	SSOExpiry   *time.Time `gorm:"column:sso_expiry" json:"-"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (Account) TableName() string {
	return "account"
}

// IsSSOLinked reports whether the account has an identity provider attached.
func (a *Account) IsSSOLinked() bool {
	return a.SSOProvider != "" && a.SSOID != ""
}
