package service

import (
	"strings"

	"github.com/lenshive/admin-console/internal/core/domain"
	"github.com/lenshive/admin-console/internal/core/ports"
)

// UserSpec configures the users controller. User rows carry every editable
// field, so edit mode works from the list row.
func UserSpec() ResourceSpec[domain.User, domain.UserDraft] {
	return ResourceSpec[domain.User, domain.UserDraft]{
		Name:      "user",
		Label:     "User",
		Plural:    "users",
		Identity:  func(u domain.User) string { return u.ID },
		NewDraft:  NewUserDraft,
		DraftFrom: UserDraftFrom,
		Serialize: SerializeUser,
		Redact:    redactUserDraft,
	}
}

// redactUserDraft keeps a typed password out of every view.
func redactUserDraft(d domain.UserDraft) domain.UserDraft {
	d.Password = ""
	return d
}

func NewUserDraft() domain.UserDraft {
	return domain.UserDraft{Role: domain.RoleCustomer, IsActive: true}
}

// UserDraftFrom never carries the password over.
func UserDraftFrom(u domain.User) domain.UserDraft {
	return domain.UserDraft{
		FullName: u.FullName,
		Email:    u.Email,
		Role:     u.Role,
		IsActive: u.IsActive,
	}
}

// SerializeUser builds the JSON payload. A password is required on create
// and sent on update only when the operator typed one.
func SerializeUser(d domain.UserDraft, editing bool) (ports.Payload, error) {
	if !editing && d.Password == "" {
		return ports.Payload{}, &domain.ValidationError{
			Field:   "password",
			Message: "Password is required for new users",
		}
	}

	var p ports.Payload
	setText(&p, "full_name", d.FullName)
	setText(&p, "email", strings.ToLower(d.Email))
	setText(&p, "role", string(d.Role))
	p.Set("is_active", d.IsActive)
	setText(&p, "password", d.Password)
	return p, nil
}
