// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import "time"

// User is the application-side user record, separate from the identity
// provider's own directory. The email is the natural lookup key for
// authentication and is unique across all records.
type User struct {
	ID           int64     // Surrogate key, assigned by the store on creation. Never reused or mutated.
	ExternalID   string    // The identity provider's stable subject identifier ("sub"). Set once at first signin.
	FirstName    string    // Optional display name.
	LastName     string    // Optional display name.
	Age          int       // Accepted by the signup contract, but the provider keeps no age attribute, so signin reconciliation cannot recover it and it stays zero.
	Email        string    // Unique login identifier.
	PasswordHash string    // bcrypt digest of the password. Plaintext is never persisted.
	CreatedAt    time.Time // Timestamp of when this record was created.
	UpdatedAt    time.Time // Timestamp of the last modification.
}
