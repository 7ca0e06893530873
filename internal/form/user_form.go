// Package form holds the user edit form state and its validation.
package form

import (
	"errors"
	"fmt"
	"strings"

	"adminpanel/internal/domain"
)

const (
	FieldName  = "name"
	FieldEmail = "email"
	FieldRole  = "role"
)

// UserForm is bound to name, email and role. It validates with the rule set
// declared on domain.UserFormData.
type UserForm struct {
	data    domain.UserFormData
	errs    map[string]string
	editing bool
}

// NewUserForm pre-fills from u, or starts from the create defaults when u is nil.
func NewUserForm(u *domain.User) *UserForm {
	f := &UserForm{data: domain.NewUserFormData(), errs: map[string]string{}}
	if u != nil {
		f.data = u.FormData()
		f.editing = true
	}
	return f
}

// Editing reports whether the form edits an existing user.
func (f *UserForm) Editing() bool { return f.editing }

func (f *UserForm) Data() domain.UserFormData { return f.data }

// Set changes one field and clears its error.
func (f *UserForm) Set(field, value string) error {
	switch field {
	case FieldName:
		f.data.Name = value
	case FieldEmail:
		f.data.Email = value
	case FieldRole:
		f.data.Role = domain.Role(strings.ToUpper(strings.TrimSpace(value)))
	default:
		return fmt.Errorf("unknown form field %q", field)
	}
	delete(f.errs, field)
	return nil
}

// Validate runs the rules and records one message per failing field.
func (f *UserForm) Validate() bool {
	f.errs = map[string]string{}
	err := f.data.Validate()
	if err == nil {
		return true
	}
	var verrs domain.ValidationErrors
	if errors.As(err, &verrs) {
		f.errs = verrs.Fields()
	} else {
		f.errs[""] = err.Error()
	}
	return false
}

// Errors returns a copy of the current per-field messages.
func (f *UserForm) Errors() map[string]string {
	out := make(map[string]string, len(f.errs))
	for k, v := range f.errs {
		out[k] = v
	}
	return out
}

func (f *UserForm) Error(field string) string { return f.errs[field] }

// Submit validates and returns the normalized data, or the validation errors.
func (f *UserForm) Submit() (domain.UserFormData, error) {
	if !f.Validate() {
		return domain.UserFormData{}, f.data.Validate()
	}
	return f.data.Normalize(), nil
}
