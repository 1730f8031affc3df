package ingestion

import "errors"

var (
	// ErrMaterialRepositoryRequired is returned when a material repository is not provided.
	ErrMaterialRepositoryRequired = errors.New("material repository required")

	// ErrStudentRepositoryRequired is returned when a student repository is not provided.
	ErrStudentRepositoryRequired = errors.New("student repository required")

	// ErrStudentIDRequired is returned when an import names no student.
	ErrStudentIDRequired = errors.New("student id required")

	// ErrInvalidBatchSize indicates a non-positive batch size.
	ErrInvalidBatchSize = errors.New("batch size must be positive")

	// ErrInvalidPayload indicates a raw material that cannot become a Material.
	ErrInvalidPayload = errors.New("invalid material payload")

	// ErrUnsupportedFormat indicates a fixture file with an unknown extension.
	ErrUnsupportedFormat = errors.New("unsupported file format")
)
