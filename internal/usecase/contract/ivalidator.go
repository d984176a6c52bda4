package usecasecontract

// IValidator validates externally supplied identifiers before they reach
// either store.
type IValidator interface {
	ValidateID(name, id string) error
	ValidateIDs(name string, ids []string) error
}
