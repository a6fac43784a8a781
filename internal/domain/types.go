package domain

// CartEntry represents one purchase-intent line held by the cart service.
// Entries are immutable once created; removal replaces the sequence rather
// than mutating a member in place.
type CartEntry struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Image string  `json:"image"`
}

// CarouselItem is one displayable unit inside a popup or lightbox session.
// Popup items carry name, display price and description; lightbox items only
// populate Image and Alt.
type CarouselItem struct {
	Name        string
	Price       string
	Image       string
	Alt         string
	Description string
}

// NotificationKind selects the accent applied to a transient notification.
type NotificationKind string

const (
	// NotificationSuccess marks confirmations (item added, checkout done).
	NotificationSuccess NotificationKind = "success"
	// NotificationError marks user-correctable failures.
	NotificationError NotificationKind = "error"
	// NotificationInfo marks neutral updates (item removed).
	NotificationInfo NotificationKind = "info"
)

// FieldError annotates a contact-form field that failed validation. Created
// during a validation pass and cleared at the start of the next one.
type FieldError struct {
	Field   string
	Message string
}
