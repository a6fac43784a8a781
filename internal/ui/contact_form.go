package ui

import (
	"fmt"

	domain "github.com/maison-field/storefront/internal/domain"
	"github.com/maison-field/storefront/internal/platform/surface"
	"github.com/maison-field/storefront/internal/services"
)

// ContactForm reads and annotates the contact form on the page. Field state
// lives in the document; this presenter only projects validation results.
type ContactForm struct {
	surf *surface.Surface
}

// NewContactForm constructs the presenter.
func NewContactForm(surf *surface.Surface) (*ContactForm, error) {
	if surf == nil {
		return nil, fmt.Errorf("contact form: surface is required")
	}
	return &ContactForm{surf: surf}, nil
}

// Read collects the current field values.
func (f *ContactForm) Read() services.ContactSubmission {
	return services.ContactSubmission{
		Name:    f.field("name").Attr("value"),
		Email:   f.field("email").Attr("value"),
		Phone:   f.field("phone").Attr("value"),
		Message: f.field("message").Text(),
	}
}

// ShowErrors clears previous annotations, then renders each error adjacent to
// its field.
func (f *ContactForm) ShowErrors(errs []domain.FieldError) {
	f.ClearErrors()
	for _, fieldErr := range errs {
		field := f.field(fieldErr.Field)
		if !field.Exists() {
			continue
		}
		field.AddClass("error")
		field.Parent().AppendHTML(`<div class="error-message"></div>`)
		field.Parent().Find(".error-message").SetText(fieldErr.Message)
	}
}

// ClearErrors removes every inline error annotation.
func (f *ContactForm) ClearErrors() {
	form := f.surf.Find("#contactForm")
	form.Find(".error-message").Remove()
	form.Find(".error").RemoveClass("error")
}

// Reset empties every field value.
func (f *ContactForm) Reset() {
	for _, name := range []string{"name", "email", "phone"} {
		f.field(name).SetAttr("value", "")
	}
	f.field("message").SetText("")
}

// ShowConfirmation reveals the confirmation region.
func (f *ContactForm) ShowConfirmation() {
	f.surf.Find("#confirmationMessage").SetStyle("display", "block")
}

func (f *ContactForm) field(name string) surface.Selection {
	return f.surf.Find(fmt.Sprintf("#contactForm [name=%s]", name))
}
