package access

import "errors"

var (
	ErrForbidden       = errors.New("not allowed to perform this operation on the resource")
	ErrUnauthenticated = errors.New("no authenticated principal")
)
