package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Token errors
	ErrDecode = fmt.Errorf("invalid or corrupted code")

	// Authentication and roster errors
	ErrInvalidCredentials = fmt.Errorf("invalid credentials")
	ErrNotApproved        = fmt.Errorf("account not yet approved")
	ErrDuplicateLoginKey  = fmt.Errorf("login key already registered")
	ErrNotAuthenticated   = fmt.Errorf("not authenticated")
	ErrUserNotFound       = fmt.Errorf("user not found")
	ErrAdminImmutable     = fmt.Errorf("primary admin cannot be removed")

	// Catalog errors
	ErrSongNotFound = fmt.Errorf("song not found")
	ErrInvalidScore = fmt.Errorf("score must be between 1 and 5")

	// API and service errors
	ErrAPIRequest         = fmt.Errorf("API request failed")
	ErrServiceUnavailable = fmt.Errorf("service unavailable")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
)
