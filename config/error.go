package config

import "fmt"

// Error describes why the value of the environment variable Key is invalid.
type Error struct {
	Key     string
	Message string
}

func newError(key, message string) Error {
	return Error{
		Key:     key,
		Message: message,
	}
}

func newErrorf(key, format string, args ...any) Error {
	return newError(key, fmt.Sprintf(format, args...))
}

func (c Error) Error() string {
	return fmt.Sprintf("config: %s: %s", c.Key, c.Message)
}
