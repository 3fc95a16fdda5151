package registration

import (
	"github.com/geocoder89/inscricoes/internal/validate"
)

// Field keys as submitted by clients and stored as column names.
const (
	FieldName   = "nome"
	FieldEmail  = "email"
	FieldCourse = "curso"
)

const (
	nameMinLen   = 2
	nameMaxLen   = 120
	emailMinLen  = 5
	emailMaxLen  = validate.EmailMaxLen
	courseMinLen = 2
	courseMaxLen = 120
)

// Registration is one validated submission. The zero value is not valid;
// use FromInput.
type Registration struct {
	name   string
	email  string
	course string
}

// Row is a persisted registration as read back for the listing.
type Row struct {
	Name   string `json:"nome"`
	Email  string `json:"email"`
	Course string `json:"curso"`
}

// PublicView is what the API returns for a registration. ID is only set once
// the store has assigned one.
type PublicView struct {
	Name   string `json:"nome"`
	Email  string `json:"email"`
	Course string `json:"curso"`
	ID     *int64 `json:"id,omitempty"`
}

// FromInput builds a Registration from an untyped payload. Fields are checked
// in order nome, email, curso and the first failure is returned.
func FromInput(fields map[string]any) (Registration, error) {
	name, err := validate.RequireText(fields, FieldName, nameMinLen, nameMaxLen)
	if err != nil {
		return Registration{}, err
	}

	email, err := validate.RequireText(fields, FieldEmail, emailMinLen, emailMaxLen)
	if err != nil {
		return Registration{}, err
	}

	email, err = validate.Email(email)
	if err != nil {
		return Registration{}, err
	}

	course, err := validate.RequireText(fields, FieldCourse, courseMinLen, courseMaxLen)
	if err != nil {
		return Registration{}, err
	}

	return Registration{name: name, email: email, course: course}, nil
}

func (r Registration) Name() string   { return r.name }
func (r Registration) Email() string  { return r.email }
func (r Registration) Course() string { return r.course }

// StorageTuple returns the values in insert column order: nome, email, curso.
func (r Registration) StorageTuple() (name, email, course string) {
	return r.name, r.email, r.course
}

func (r Registration) PublicView(insertedID *int64) PublicView {
	v := PublicView{
		Name:   r.name,
		Email:  r.email,
		Course: r.course,
	}

	if insertedID != nil {
		id := *insertedID
		v.ID = &id
	}

	return v
}
