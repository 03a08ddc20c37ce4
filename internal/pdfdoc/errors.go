package pdfdoc

import (
	"errors"
	"fmt"
)

// ErrEncrypted is wrapped by ReadError when a document needs a password.
var ErrEncrypted = errors.New("document is encrypted")

// ReadError reports a PDF that could not be opened or parsed
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("failed to read PDF '%s': %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

// DecodeError reports a metadata value that could not be turned into text
type DecodeError struct {
	Key string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode metadata value '%s': %v", e.Key, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// readError wraps err for path unless it already is a ReadError
func readError(path string, err error) error {
	var re *ReadError
	if errors.As(err, &re) {
		return err
	}

	return &ReadError{Path: path, Err: err}
}

// recoverRead turns a panic inside a PDF library into a ReadError.
// Use as: defer recoverRead(path, &err)
func recoverRead(path string, err *error) {
	if r := recover(); r != nil {
		*err = &ReadError{Path: path, Err: fmt.Errorf("malformed document: %v", r)}
	}
}
