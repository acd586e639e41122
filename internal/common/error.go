package common

import "errors"

// Repository-level errors.
var ErrorAlreadyExists = errors.New("already exists")
