package builder

import "errors"

var (
	ErrBuild = errors.New("build failed")
	ErrPush  = errors.New("push failed")
	ErrClean = errors.New("clean failed")
)
