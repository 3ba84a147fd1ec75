package credentials

import "errors"

var (
	ErrTokenNotFound   = errors.New("token not found")
	ErrWrongPassphrase = errors.New("storage passphrase does not match credential store")
	ErrEmptyKey        = errors.New("empty token key")
)
