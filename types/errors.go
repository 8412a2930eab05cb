package types

const (
	ErrInvalidInput    = "Invalid input"
	ErrDatabaseError   = "Database error"
	ErrMissingFields   = "Missing required employee fields"
	ErrInvalidDept     = "Invalid department"
	ErrInvalidDesig    = "Invalid designation"
	ErrAddEmployeeFail = "Failed to add employee"
)
