// Package validator provides rule based validation that collects every failure
// instead of stopping at the first one.
//
//	err := validator.Apply(
//		validator.RequiredString("name", rec.Name),
//		validator.ValidEmail("email", rec.Email),
//	)
//	if ve := validator.ExtractValidationErrors(err); ve != nil {
//		fmt.Println(ve.Fields())
//	}
package validator
