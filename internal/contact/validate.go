// internal/contact/validate.go
//
// Server-side validation for contact-form submissions.
//
// Context
// -------
// The public endpoint must reject bad input with a per-field error map and
// MUST NOT touch the database or enqueue email on any violation.  Rules:
//
//	name          2–255 characters after trimming, required.
//	email         valid syntax, ≤254 characters, required.
//	message       10–5000 characters after trimming, required.
//	phone_number  optional, ≤30 characters.
//
// Validation runs through the package-level go-playground/validator
// instance; rule failures map onto the fixed user-facing messages the
// frontend already displays.
package contact

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// Submission is the decoded request body of POST /api/contact/.
type Submission struct {
	Name  string `json:"name"         validate:"required,min=2,max=255"`
	Email string `json:"email"        validate:"required,email,max=254"`
	Body  string `json:"message"      validate:"required,min=10,max=5000"`
	Phone string `json:"phone_number" validate:"omitempty,max=30"`
}

//
// validator instance (package-level singleton)
//

var v = validator.New()

// fieldMessages are the user-facing strings, keyed by struct field.  One
// message per field regardless of which rule tripped, matching the
// frontend's expectations.
var fieldMessages = map[string]struct{ key, msg string }{
	"Name":  {"name", "Name must be between 2 and 255 characters."},
	"Email": {"email", "A valid email is required."},
	"Body":  {"message", "Message must be between 10 and 5000 characters."},
	"Phone": {"phone_number", "Phone number must not exceed 30 characters."},
}

// Validate trims the submission in place and returns a field→message map.
// An empty map means the payload is clean and safe to persist.
func (s *Submission) Validate() map[string]string {
	s.Name = strings.TrimSpace(s.Name)
	s.Email = strings.TrimSpace(s.Email)
	s.Body = strings.TrimSpace(s.Body)
	s.Phone = strings.TrimSpace(s.Phone)

	errs := make(map[string]string)
	err := v.Struct(s)
	if err == nil {
		return errs
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		// Struct-level failure outside the rule set; surface generically.
		errs["body"] = "Invalid request body."
		return errs
	}
	for _, fe := range verrs {
		if fm, known := fieldMessages[fe.StructField()]; known {
			errs[fm.key] = fm.msg
		}
	}
	return errs
}
