package user

import "errors"

var (
	ErrUserIDRequired         = errors.New("user id is required")
	ErrAdminPrivilegeRequired = errors.New("admin privilege required")
)
