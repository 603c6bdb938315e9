package document

// Document is a stored aggregate keyed by its string identifier.
type Document interface {
	GetID() string
}
