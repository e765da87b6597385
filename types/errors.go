package types

import "errors"

var (
	ErrValidationRejected = errors.New("validation rejected")
	ErrUserCancelled      = errors.New("cancelled by user")
	ErrNoActiveSession    = errors.New("no active session")
	ErrTemplateLoad       = errors.New("template load failed")
	ErrTemplateRender     = errors.New("template render failed")
	ErrStateUpdate        = errors.New("session state update failed")
)
