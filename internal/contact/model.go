// internal/contact/model.go
//
// Persisted contact-message entity.
//
// Context
// -------
// `contact_messages` is a single flat table with no relations.  `id` is
// never reused, `created_at` is set by the store and immutable, and
// `is_read` is the only field that changes after insert (via the admin
// update route).
package contact

import "time"

// Message mirrors one row of contact_messages.  JSON tags match the wire
// shape the frontend and admin dashboard consume.
type Message struct {
	ID          int64     `db:"id"           json:"id"`
	Name        string    `db:"name"         json:"name"`
	PhoneNumber string    `db:"phone_number" json:"phone_number"`
	Email       string    `db:"email"        json:"email"`
	Body        string    `db:"message"      json:"message"`
	IsRead      bool      `db:"is_read"      json:"is_read"`
	CreatedAt   time.Time `db:"created_at"   json:"created_at"`
}
