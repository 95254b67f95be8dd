package session

import (
	"errors"
	"fmt"
)

// ErrAuth is the parent of every authentication failure.
var ErrAuth = errors.New("session: authentication failed")

var (
	ErrInvalidCredentials = fmt.Errorf("%w: invalid credentials", ErrAuth)
	ErrUndecodableToken   = fmt.Errorf("%w: token cannot be decoded", ErrAuth)
	ErrExpiredToken       = fmt.Errorf("%w: token expired", ErrAuth)
)
