package service

import "errors"

var (
	ErrMealPlanNotFound      = errors.New("meal plan not found")
	ErrShoppingListNotFound  = errors.New("shopping list not found")
	ErrScheduledMealNotFound = errors.New("scheduled meal not found")
	ErrRecipeNotFound        = errors.New("recipe not found")
	ErrNoItems               = errors.New("items required")
	ErrInvalidToken          = errors.New("invalid token")
	ErrTokenExpired          = errors.New("token has expired")
	ErrExportDisabled        = errors.New("checklist export is not configured")
	ErrInvalidDateRange      = errors.New("start date is after end date")

	// ErrValidation is wrapped by every input validation failure.
	ErrValidation = errors.New("invalid request")
)
