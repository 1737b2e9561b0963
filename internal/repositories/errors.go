package repositories

import "errors"

// ErrNotFound is wrapped by every repository when a lookup misses, so
// services can branch with errors.Is regardless of the backing store.
var ErrNotFound = errors.New("record not found")

// ErrAlreadyExists is wrapped when a create collides with an existing
// record on a unique key.
var ErrAlreadyExists = errors.New("record already exists")
