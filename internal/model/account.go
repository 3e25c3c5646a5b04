package model

import "time"

// Account represents a staff account record as stored in the
// `accounts` table. Accounts are created once through the allow-listed
// signup flow and are never updated or deleted by the application.
//
// Fields:
//  ID           – primary key identifier of the account.
//  Email        – unique, lower-cased email address.
//  PasswordHash – bcrypt hashed password.
//  CreatedAt    – timestamp of creation.
type Account struct {
	ID           uint64    // accounts.id
	Email        string    // accounts.email
	PasswordHash string    // accounts.password_hash
	CreatedAt    time.Time // accounts.created_at
}
