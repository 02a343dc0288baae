// Package entity contains the core business objects of the project.
package entity

import "time"

// Post is a blog entry. UserID references the author but is intentionally
// not enforced as a foreign key against the users table.
type Post struct {
	ID        int64     // Surrogate key, assigned by the store on creation.
	Content   string    // The post body.
	UserID    int64     // The authoring user's id.
	CreatedAt time.Time // Timestamp of when this post was created.
}
