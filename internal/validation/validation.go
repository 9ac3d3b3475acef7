// Package validation checks user input before it reaches the network.
package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var hexColorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// Known frequency type tags. The detail payload is loosely typed and passed
// through to the backend untouched.
var frequencyTypes = map[string]bool{
	"daily":                 true,
	"specific_days_of_week": true,
	"weekly_x_times":        true,
	"every_x_days":          true,
}

// HabitForm is the add/edit habit input.
type HabitForm struct {
	Name          string `validate:"required,min=1,max=100"`
	Description   string `validate:"max=500"`
	ColorHex      string `validate:"omitempty,hexcolor6"`
	FrequencyType string `validate:"omitempty,frequencytype"`
}

var (
	errNameRequired     = errors.New("habit name must not be empty")
	errNameTooLong      = errors.New("habit name must be at most 100 characters")
	errDescTooLong      = errors.New("description must be at most 500 characters")
	errBadColor         = errors.New("color must be a hex string like #4ade80")
	errBadFrequencyType = errors.New("unknown frequency type")
)

var friendlyErrors = map[string]error{
	"HabitForm.Name.required":               errNameRequired,
	"HabitForm.Name.min":                    errNameRequired,
	"HabitForm.Name.max":                    errNameTooLong,
	"HabitForm.Description.max":             errDescTooLong,
	"HabitForm.ColorHex.hexcolor6":          errBadColor,
	"HabitForm.FrequencyType.frequencytype": errBadFrequencyType,
}

// Validator wraps a configured validator instance.
type Validator struct {
	validate *validator.Validate
}

// New creates a Validator with the custom habit checks registered.
func New() *Validator {
	v := validator.New()
	_ = v.RegisterValidation("hexcolor6", func(fl validator.FieldLevel) bool {
		return hexColorPattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("frequencytype", func(fl validator.FieldLevel) bool {
		return frequencyTypes[fl.Field().String()]
	})
	return &Validator{validate: v}
}

// CheckHabitForm validates the form, trimming the name first. Returns a
// single user-facing error for the first failing field.
func (v *Validator) CheckHabitForm(form HabitForm) error {
	form.Name = strings.TrimSpace(form.Name)
	err := v.validate.Struct(form)
	if err == nil {
		return nil
	}

	var validationErr validator.ValidationErrors
	if errors.As(err, &validationErr) && len(validationErr) > 0 {
		e := validationErr[0]
		key := e.StructNamespace() + "." + e.Tag()
		if friendly, ok := friendlyErrors[key]; ok {
			return friendly
		}
		return fmt.Errorf("%s is invalid", e.Field())
	}
	return err
}
