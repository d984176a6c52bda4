package validator

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	usecasecontract "github.com/mihretgbr/applaud/internal/usecase/contract"
)

// AppValidator implements the usecase IValidator interface.
type AppValidator struct {
	validate *validator.Validate
}

// NewValidator creates a new validator that implements the usecase
// IValidator interface.
func NewValidator() usecasecontract.IValidator {
	v := validator.New()
	return &AppValidator{validate: v}
}

// ValidateID checks that an externally supplied identifier is present and
// within a sane length.
func (av *AppValidator) ValidateID(name, id string) error {
	if err := av.validate.Var(id, "required,min=1,max=128"); err != nil {
		return fmt.Errorf("%s is required", name)
	}
	return nil
}

// ValidateIDs checks a batch of identifiers.
func (av *AppValidator) ValidateIDs(name string, ids []string) error {
	if len(ids) == 0 {
		return fmt.Errorf("%s must not be empty", name)
	}
	for _, id := range ids {
		if err := av.ValidateID(name, id); err != nil {
			return err
		}
	}
	return nil
}

// Ensure AppValidator implements the contract.
var _ usecasecontract.IValidator = (*AppValidator)(nil)
