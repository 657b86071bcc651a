// Package errs provides the error types shared by the order service.
//
// Every type follows the same shape:
//   - a sentinel error variable (e.g. ErrObjectNotFound) usable with errors.Is
//   - a struct carrying the details (field name, identifier, reason)
//   - constructors with and without a cause
//   - Error() for formatting and Unwrap() returning the sentinel
//
// The HTTP adapter classifies failures by sentinel:
//   - ErrValidation, ErrValueIsInvalid, ErrValueIsRequired: client-fixable input, 400
//   - ErrMalformedReference: identifier with the wrong shape, 400
//   - ErrObjectNotFound: 404
//   - ErrConflict: business rule violated by the current state, 409
//
// Anything else is treated as an internal error.
package errs
