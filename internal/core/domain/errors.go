package domain

import "errors"

// Authentication and authorization failures.
var (
	ErrInvalidToken         = errors.New("invalid token")
	ErrUnauthenticated      = errors.New("authentication required")
	ErrUnauthorized         = errors.New("you can't manage other users' data, even if you are an admin")
	ErrAuthenticationFailed = errors.New("bad credentials")
)

var (
	ErrUserNotFound    = errors.New("this user does not exist")
	ErrProjectNotFound = errors.New("this project does not exist")
	ErrRecordNotFound  = errors.New("this record does not exist")
	ErrRoleNotFound    = errors.New("this role does not exist, role should start with prefix ROLE_, for example: ROLE_Admin")
)

var (
	ErrDuplicateUser    = errors.New("this username is already in use")
	ErrDuplicateProject = errors.New("this project was created before")
	ErrDuplicateRole    = errors.New("this role already exists")
	ErrUserInProject    = errors.New("this user is already in the project")
	ErrUserNotInProject = errors.New("user does not belong to the project")
	ErrProjectUnchanged = errors.New("the name of the project is the same as its current name")
	ErrInvalidInput     = errors.New("invalid input")
)
