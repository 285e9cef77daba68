// Package errs provides the typed errors shared by the order visibility and
// assignment service.
//
// Every error type follows the same shape:
//   - a sentinel (ErrObjectNotFound, ErrValueIsInvalid, ErrValueIsOutOfRange, ErrValueIsRequired)
//   - a struct carrying the offending parameter and an optional Cause
//   - New...Error and New...ErrorWithCause constructors
//   - Unwrap returning the sentinel, so callers branch with errors.Is
//
// The HTTP adapter maps these to status codes; repositories return
// ObjectNotFoundError instead of gorm.ErrRecordNotFound so the core never
// depends on the store's error vocabulary.
package errs
