package services

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	domain "github.com/maison-field/storefront/internal/domain"
)

var (
	contactEmail = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	contactPhone = regexp.MustCompile(`^\+?[1-9][0-9\s\-()]{7,15}$`)
)

// ContactSubmission carries the contact form field values as submitted.
type ContactSubmission struct {
	Name    string `form:"name" validate:"required"`
	Email   string `form:"email" validate:"required,contact_email"`
	Phone   string `form:"phone" validate:"required,contact_phone"`
	Message string `form:"message" validate:"required"`
}

// ContactService validates contact form submissions. Validation is stateless
// and re-run from scratch on every submit attempt.
type ContactService struct {
	validate *validator.Validate
}

// NewContactService builds the validator with the contact-specific rules. The
// email and phone shapes are registered as custom rules so that loose inputs
// like "a@b" stay rejected.
func NewContactService() *ContactService {
	v := validator.New()
	_ = v.RegisterValidation("contact_email", func(fl validator.FieldLevel) bool {
		return contactEmail.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("contact_phone", func(fl validator.FieldLevel) bool {
		return contactPhone.MatchString(fl.Field().String())
	})
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &ContactService{validate: v}
}

// Validate trims every field and returns one error per failing field, in
// field order. An empty result means the submission is acceptable.
func (s *ContactService) Validate(sub ContactSubmission) []domain.FieldError {
	trimmed := ContactSubmission{
		Name:    strings.TrimSpace(sub.Name),
		Email:   strings.TrimSpace(sub.Email),
		Phone:   strings.TrimSpace(sub.Phone),
		Message: strings.TrimSpace(sub.Message),
	}

	err := s.validate.Struct(trimmed)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []domain.FieldError{{Field: "form", Message: "This field is required"}}
	}

	out := make([]domain.FieldError, 0, len(verrs))
	for _, verr := range verrs {
		out = append(out, domain.FieldError{
			Field:   verr.Field(),
			Message: contactMessage(verr.Tag()),
		})
	}
	return out
}

func contactMessage(tag string) string {
	switch tag {
	case "contact_email":
		return "Invalid email address"
	case "contact_phone":
		return "Invalid phone number"
	default:
		return "This field is required"
	}
}
