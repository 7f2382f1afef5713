package modeling

import "errors"

// Configuration errors. They are reported while a scene is being set up,
// never from the shading hot path.
var (
	ErrUnknownModel   = errors.New("unknown model")
	ErrDuplicateModel = errors.New("model already registered")
	ErrUnknownInput   = errors.New("unknown input")
	ErrMissingInput   = errors.New("required input is not bound")
	ErrInvalidParam   = errors.New("invalid parameter")
)
