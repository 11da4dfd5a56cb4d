package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Item errors
	ErrMsgItemNotFound = "item not found"

	// Recipe errors
	ErrMsgRecipeNotFound = "recipe not found"

	// Mob errors
	ErrMsgMobNotFound = "mob not found"

	// Input errors
	ErrMsgInvalidInput = "invalid input"

	// Database/System errors
	ErrMsgDatabaseError = "database error"
	ErrMsgTxClosed      = "tx is closed"
)

// Sentinel errors
var (
	// Item errors
	ErrItemNotFound = errors.New(ErrMsgItemNotFound)

	// Recipe errors
	ErrRecipeNotFound = errors.New(ErrMsgRecipeNotFound)

	// Mob errors
	ErrMobNotFound = errors.New(ErrMsgMobNotFound)

	// Input errors
	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)
