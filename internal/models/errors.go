package models

import (
	"errors"
)

// Project-related errors
var (
	// ErrProjectNotFound is returned when no saved project matches an id or name
	ErrProjectNotFound = errors.New("project not found")

	// ErrNoImage is returned when a project is saved without an image
	ErrNoImage = errors.New("project has no image")
)

// Goal-related errors
var (
	// ErrGoalNotFound is returned when a goal id or index does not exist in the session
	ErrGoalNotFound = errors.New("goal not found")

	// ErrInvalidAmount is returned when a progress amount is not in (0, remaining]
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrEmptyGoalText is returned when a goal is added without a description
	ErrEmptyGoalText = errors.New("goal text cannot be empty")

	// ErrUnknownUnit is returned when a unit symbol or alias is not recognised
	ErrUnknownUnit = errors.New("unknown unit")
)

// Calendar-related errors
var (
	// ErrEventNotFound is returned when a calendar event is not found
	ErrEventNotFound = errors.New("event not found")

	// ErrEmptyTitle is returned when an event is created without a title
	ErrEmptyTitle = errors.New("event title cannot be empty")
)
