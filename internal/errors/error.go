package errors

import (
	"errors"
)

var (
	ErrEmptyAuth           = errors.New("missing authorization")
	ErrEmptySubject        = errors.New("missing subject")
	ErrTokenInvalid        = errors.New("invalid token")
	ErrFailedHashToken     = errors.New("failed hashing token")
	ErrInvalidCredentials  = errors.New("Invalid credentials")
	ErrUserAlreadyExists   = errors.New("User already exists")
	ErrUserNotFound        = errors.New("User not found")
	ErrCartNotFound        = errors.New("Cart not found")
	ErrCartEmpty           = errors.New("Cart is empty")
	ErrHotelNotFound       = errors.New("Hotel not found")
	ErrVehicleNotFound     = errors.New("Vehicle not found")
	ErrItemNotFound        = errors.New("Item not found")
	ErrReviewExists        = errors.New("You have already reviewed this item")
	ErrLocationUnavailable = errors.New("User location not available")
	ErrCacheMissed         = errors.New("cache missed")
)
