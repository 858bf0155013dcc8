// Package errs provides the standardized error types of the logistics core.
//
// The package includes:
//   - ObjectNotFoundError: a referenced customer, order, driver, invoice or task is absent
//   - ValueIsRequiredError: a required input is missing
//   - ValueIsInvalidError: an input or state transition is invalid
//   - ValueIsOutOfRangeError: a numeric input is outside its allowed bounds
//   - ConflictError: a write collided with existing state (unique or foreign key violation)
//
// Each error type follows the same pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type carrying the error details
//   - Constructor functions with and without cause
//   - Error() for formatting and Unwrap() so errors.Is matches both the
//     sentinel and the cause
//
// Adapters classify errors by sentinel: the HTTP layer maps ErrObjectNotFound
// to 404, ErrValueIs* to 400 and ErrConflict to 409, and the workflow
// dispatcher treats ErrObjectNotFound as "skip the task".
package errs
