package domain

import "errors"

// ValidationError rejects a request before anything is written. Message is
// returned to the caller verbatim.
type ValidationError struct {
	Field   string
	Code    string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

var (
	ErrNameRequired        = &ValidationError{Field: "name", Code: "name_required", Message: "name required"}
	ErrInvalidPrice        = &ValidationError{Field: "price", Code: "invalid_price", Message: "price must be positive"}
	ErrCategoryRequired    = &ValidationError{Field: "categoryId", Code: "category_required", Message: "category required"}
	ErrSubcategoryNotFound = &ValidationError{Field: "subcategoryId", Code: "subcategory_not_found", Message: "subcategory not found"}
	ErrSubcategoryMismatch = &ValidationError{Field: "subcategoryId", Code: "subcategory_mismatch", Message: "subcategory/category mismatch"}
	ErrSizeGroupRequired   = &ValidationError{Field: "sizeGroups", Code: "size_group_required", Message: "at least one size group with a price required"}
)

var (
	ErrNotFound  = errors.New("not_found")
	ErrInvalidID = errors.New("invalid_id")
)

// PersistenceError wraps a storage failure. Callers must not expose the
// wrapped error.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return "product: " + e.Op + ": " + e.Err.Error()
}

func (e *PersistenceError) Unwrap() error { return e.Err }

func IsValidation(err error) bool {
	var vErr *ValidationError
	return errors.As(err, &vErr)
}

func IsPersistence(err error) bool {
	var pErr *PersistenceError
	return errors.As(err, &pErr)
}
