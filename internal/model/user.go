package model

import "time"

// RoleCustomer is the role given to every self-registered account.
const RoleCustomer = "customer"

// User represents an application account as stored in the `users`
// table.  Handlers never expose PasswordHash.
//
// Fields:
//
//	ID           – primary key identifier of the user.
//	Username     – unique login name.
//	PasswordHash – bcrypt hashed password.
//	Role         – role name (customer).
//	CreatedAt    – timestamp of creation.
type User struct {
	ID           uint64    // users.id
	Username     string    // users.username
	PasswordHash string    // users.password_hash
	Role         string    // users.role
	CreatedAt    time.Time // users.created_at
}
