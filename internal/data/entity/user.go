package entity

import "time"

type UserRole string

const (
	RoleCustomer UserRole = "customer"
	RoleAdmin    UserRole = "admin"
)

// User carries the identity provider's opaque ID as its primary key.
// Rows are materialized lazily on a user's first booking.
type User struct {
	ID        string    `db:"id"`
	FirstName string    `db:"first_name"`
	LastName  string    `db:"last_name"`
	Email     string    `db:"email"`
	Role      UserRole  `db:"role"`
	CreatedAt time.Time `db:"created_at"`
}
