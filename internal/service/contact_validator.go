package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/portfolio/backend/internal/model"
)

// ContactForm is the raw contact form payload as submitted by a visitor.
type ContactForm struct {
	Name    string `form:"name" validate:"required,max=100"`
	Email   string `form:"email" validate:"required,max=254,email"`
	Subject string `form:"subject" validate:"required,max=200"`
	Message string `form:"message" validate:"required"`
}

// trimmed returns a copy of f with surrounding whitespace removed from every field.
func (f ContactForm) trimmed() ContactForm {
	return ContactForm{
		Name:    strings.TrimSpace(f.Name),
		Email:   strings.TrimSpace(f.Email),
		Subject: strings.TrimSpace(f.Subject),
		Message: strings.TrimSpace(f.Message),
	}
}

// FieldErrors maps a form field name to its validation messages.
type FieldErrors map[string][]string

// Add appends msg to the errors of field.
func (e FieldErrors) Add(field, msg string) {
	e[field] = append(e[field], msg)
}

// Has reports whether field has at least one error.
func (e FieldErrors) Has(field string) bool {
	return len(e[field]) > 0
}

// NonFieldKey holds errors that do not belong to a single field.
const NonFieldKey = "__all__"

const (
	msgRequired     = "This field is required."
	msgInvalidEmail = "Enter a valid email address."
)

var formValidator = newFormValidator()

func newFormValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if name := f.Tag.Get("form"); name != "" {
			return name
		}
		return f.Name
	})
	return v
}

// ValidateContactForm checks form and returns either the message to store or the
// per-field errors. Exactly one of the two results is non-nil.
func ValidateContactForm(form ContactForm) (*model.ContactMessage, FieldErrors) {
	form = form.trimmed()

	err := formValidator.Struct(form)
	if err == nil {
		return &model.ContactMessage{
			Name:    form.Name,
			Email:   form.Email,
			Subject: form.Subject,
			Message: form.Message,
			Status:  model.ContactStatusNew,
		}, nil
	}

	errs := FieldErrors{}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		errs.Add(NonFieldKey, err.Error())
		return nil, errs
	}
	for _, fe := range verrs {
		errs.Add(fe.Field(), fieldMessage(fe))
	}
	return nil, errs
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return msgRequired
	case "email":
		return msgInvalidEmail
	case "max":
		s, _ := fe.Value().(string)
		return fmt.Sprintf("Ensure this value has at most %s characters (it has %d).", fe.Param(), utf8.RuneCountInString(s))
	default:
		return fmt.Sprintf("Invalid value (%s).", fe.Tag())
	}
}
