package model

import "time"

// User represents an application user record as stored in the
// `users` table.  Each field corresponds to a column in the
// database.  The json tags are omitted here because these structs
// are primarily used internally by the repository layer; handlers
// define separate response types with appropriate JSON tags.
//
// Fields:
//  ID           – primary key identifier of the user.
//  Email        – unique email address.
//  PasswordHash – bcrypt hashed password.
//  Role         – name of the role (CUSTOMER or ADMIN).
//  CreatedAt    – timestamp of creation.
type User struct {
	ID           uint64    // users.id
	Email        string    // users.email
	PasswordHash string    // users.password_hash
	Role         string    // users.role
	CreatedAt    time.Time // users.created_at
}

// Roles recognized by the role middleware.  ADMIN unlocks the
// /v1/admin catalog management endpoints; everyone else registers as
// CUSTOMER.
const (
	RoleCustomer = "CUSTOMER"
	RoleAdmin    = "ADMIN"
)
