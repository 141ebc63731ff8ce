package common

import (
	"errors"
	"fmt"
	"strings"

	"pinboard/logger"
)

func NewErrorf(format string, a ...any) error {
	msg := fmt.Sprintf(format, a...)
	return errors.New(msg)
}

func NewError(a ...any) error {
	msg := fmt.Sprintln(a...)
	return errors.New(msg)
}

// Combine joins multiple errors into one, skipping nils.
func Combine(errs ...error) error {
	errorsTexts := []string{}
	for _, err := range errs {
		if err != nil {
			errorsTexts = append(errorsTexts, err.Error())
		}
	}
	if len(errorsTexts) > 0 {
		return errors.New(strings.Join(errorsTexts, ", "))
	}
	return nil
}

func Recover(msg string) any {
	panicErr := recover()
	if panicErr != nil {
		if msg != "" {
			logger.Error(msg, "panic:", panicErr)
		}
	}
	return panicErr
}
