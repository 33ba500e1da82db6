package utils

import "time"

// Application Constants
const (
	AppName    = "WingzAPI"
	AppVersion = "1.0.0"

	// Defaults
	DefaultTimeZone = "UTC"

	// Pagination
	DefaultPageSize = 20
	MaxPageSize     = 100
	MinPageSize     = 1

	// User listings use a tighter window than rides
	UserDefaultPageSize = 10
	UserMaxPageSize     = 50

	// Geo
	EarthRadiusKM = 6371.0

	// Distance sorting materializes the candidate set in memory; above this
	// many rows the listing refuses instead of sorting.
	DefaultDistanceSortMaxResults = 10000

	// Authentication
	JWTAccessTokenTTL  = 24 * time.Hour
	JWTRefreshTokenTTL = 7 * 24 * time.Hour
	PasswordMinLength  = 8
	PasswordMaxLength  = 128
)

// HTTP Status Messages
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Error Messages
const (
	ErrInvalidCredentials = "invalid credentials"
	ErrUserNotFound       = "user not found"
	ErrUserExists         = "user already exists"
	ErrInvalidToken       = "invalid token"
	ErrInvalidInput       = "invalid input"
	ErrInternalServer     = "internal server error"
	ErrUnauthorized       = "unauthorized"
	ErrForbidden          = "forbidden"
	ErrValidationFailed   = "validation failed"
	ErrRideNotFound       = "ride not found"
)

// Cache Keys
const (
	CacheKeyRide = "ride:"
	CacheKeyUser = "user:"
	CacheRideTTL = 5 * time.Minute
	CacheUserTTL = 15 * time.Minute
)
