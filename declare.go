package oparse

import (
	"sync"

	"github.com/go-playground/validator/v10"
)

// Declaration is the bulk-registration form of a flag definition.
// Optional texts are pointers so that "absent" and "empty" stay
// distinct.
type Declaration struct {
	Name         string `validate:"required"`
	Shorthand    string `validate:"omitempty,len=1"`
	Usage        string
	Value        Value `validate:"required"`
	Default      *string
	NoOptDefault *string
	Aliases      []string
	Hidden       bool
	Annotations  map[string][]string
}

var defaultValidatorOnce sync.Once
var defaultValidator *validator.Validate

func declarationValidator() Validate {
	defaultValidatorOnce.Do(func() {
		defaultValidator = validator.New()
	})
	return defaultValidator
}

// Declare registers an ordered list of declarations, stopping at the
// first invalid or conflicting one.  Each declaration is validated
// structurally (with the registry's validator, or a package default)
// before it touches the registry.
func (r *Registry) Declare(declarations []Declaration) error {
	v := r.validator
	if v == nil {
		v = declarationValidator()
	}
	for _, decl := range declarations {
		if err := v.Struct(decl); err != nil {
			return programmerErrorf(ErrInvalidFlagName, "declaration %q: %s", decl.Name, err)
		}
		flag := &Flag{
			Name:        decl.Name,
			Shorthand:   decl.Shorthand,
			Usage:       decl.Usage,
			Value:       decl.Value,
			DefValue:    decl.Value.String(),
			Aliases:     decl.Aliases,
			Hidden:      decl.Hidden,
			Annotations: decl.Annotations,
		}
		if decl.Value.Type() == "bool" {
			flag.NoOptDefVal = "true"
		}
		if err := r.AddFlag(flag); err != nil {
			return err
		}
		if decl.Default != nil {
			if err := r.SetDefault(decl.Name, *decl.Default); err != nil {
				return err
			}
		}
		if decl.NoOptDefault != nil {
			flag.NoOptDefVal = *decl.NoOptDefault
		}
	}
	return nil
}
