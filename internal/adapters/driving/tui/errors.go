package tui

import "errors"

// ErrMissingController is returned when no controller factory is provided.
var ErrMissingController = errors.New("tui: controller factory is required")

// ErrInvalidPorts is returned when ports validation fails.
var ErrInvalidPorts = errors.New("tui: invalid ports configuration")
