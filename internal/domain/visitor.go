package domain

// TokenSet maps an opaque token name to its secret value.
type TokenSet map[string]string

// Contains reports whether value matches one of the token values.
func (s TokenSet) Contains(value string, equal func(a, b string) bool) bool {
	for _, v := range s {
		if equal(v, value) {
			return true
		}
	}
	return false
}

// VisitorRecord is a document from the visitor collection.
// VisitorID is empty when the stored document lacks a usable visitor_id.
type VisitorRecord struct {
	UserID    string
	VisitorID string
}

// Document field names shared by every store backend.
const (
	FieldUserID    = "user_id"
	FieldVisitorID = "visitor_id"
)
