// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Role represents a user's permission level. Admin and shop manager
// accounts can use the builder API; customer is the storefront role
// user_role conditions usually target.
type Role string

const (
	RoleAdmin       Role = "admin"
	RoleShopManager Role = "shop_manager"
	RoleCustomer    Role = "customer"
)

// User represents an account with authentication and 2FA fields.
// Builder staff must complete TOTP enrollment before using the admin API.
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never serialize the hash
	DisplayName  string    `json:"display_name"`
	Role         Role      `json:"role"`
	TOTPSecret   *string   `json:"-"` // Nullable; set during 2FA setup
	TOTPEnabled  bool      `json:"totp_enabled"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// IsAdmin returns true if the user has the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsStaff returns true for roles allowed into the builder admin API.
func (u *User) IsStaff() bool {
	return u.Role == RoleAdmin || u.Role == RoleShopManager
}

// Needs2FASetup returns true if the user has not completed 2FA enrollment.
// All staff must set up 2FA on their first login.
func (u *User) Needs2FASetup() bool {
	return !u.TOTPEnabled
}
