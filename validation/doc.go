// Package validation inspects handler inputs for missing or invalid fields.
//
// FirstMissing performs the loose nil check used for required parameters:
// only nil values count as missing, zero values such as 0, "" and false
// are present. Struct reports struct-tag violations using the validator
// library.
//
//	if field, ok := validation.FirstMissing(input); ok {
//	    // field is absent
//	}
//
//	type CreateUserCmd struct {
//	    Name  string `json:"name" validate:"required,min=2"`
//	    Email string `json:"email" validate:"required,email"`
//	}
//	fields, err := validation.Struct(cmd)
package validation
