package errs

import (
	"fmt"
)

// Wrap attaches err to a package sentinel so callers can match with errors.Is.
func Wrap(sentinel, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %v", sentinel, err)
}

func WrapMsg(sentinel error, msg string) error {
	return fmt.Errorf("%w: %s", sentinel, msg)
}

func WrapMsgErr(sentinel error, msg string, err error) error {
	if err == nil {
		return WrapMsg(sentinel, msg)
	}
	return fmt.Errorf("%w: %s: %v", sentinel, msg, err)
}
