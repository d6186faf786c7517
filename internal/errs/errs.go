// Package errs holds domain sentinel errors that handlers map to HTTP codes.
package errs

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrRoomNotFound       = errors.New("room not found")
	ErrSessionNotFound    = errors.New("session not found")
	ErrMemeNotFound       = errors.New("meme not found")
	ErrNotParticipant     = errors.New("not a participant of this session")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrSessionFinished    = errors.New("session already finished")
	ErrRoundConflict      = errors.New("round already advanced by another caller")
	ErrValidation         = errors.New("invalid input")
)

// NotFound reports whether err is one of the missing-entity sentinels.
func NotFound(err error) bool {
	return errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrRoomNotFound) ||
		errors.Is(err, ErrSessionNotFound) ||
		errors.Is(err, ErrMemeNotFound)
}
