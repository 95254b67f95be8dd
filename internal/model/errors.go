package model

import "errors"

// ErrNotConfirmed is returned when a delete is requested without the user's confirmation.
var ErrNotConfirmed = errors.New("delete not confirmed")

// ErrAlreadyReviewed is returned when an approved or rejected leave request is reviewed again.
var ErrAlreadyReviewed = errors.New("leave request already reviewed")
