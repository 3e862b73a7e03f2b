package serviceerrs

import "errors"

var (
	ErrCustomerNotFound   = errors.New("customer not found")
	ErrRewardNotFound     = errors.New("reward not found")
	ErrDuplicateEmail     = errors.New("email is already registered")
	ErrEmptyName          = errors.New("customer name must not be empty")
	ErrInvalidEmail       = errors.New("email is not valid")
	ErrInvalidAmount      = errors.New("purchase amount must be positive")
	ErrInsufficientPoints = errors.New("insufficient points")
	ErrInvalidCardNumber  = errors.New("affiliated card number is not valid")
)
