package profile

import "errors"

// Module errors.
var (
	ErrSubjectNotFound  = errors.New("subject not found")
	ErrAlreadyMember    = errors.New("user is already a member")
	ErrAlreadyConnected = errors.New("users are already connected")
)
