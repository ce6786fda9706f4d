package client

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/userdir/internal/common"
)

var (
	ErrNetwork  = errors.New("network error")
	ErrTimeout  = fmt.Errorf("%w: request timeout", ErrNetwork)
	ErrNotFound = fmt.Errorf("user %w", common.ErrorNotFound)

	ErrUnavailable  = errors.New("bridge unavailable")
	ErrUnauthorized = common.ErrorUnauthorized
)

// Messages for failures with no known cause.
const (
	FallbackListMessage = "Failed to fetch users"
	FallbackUserMessage = "Failed to load user"
)

// Describe converts err into a human-readable message for the presentation
// layer. It returns "" for a nil error.
func Describe(err error) string {
	return DescribeWith(err, FallbackListMessage)
}

// DescribeWith is Describe with the message used for unclassified errors.
func DescribeWith(err error, fallback string) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTimeout):
		return "Request timeout - please check your connection"
	case errors.Is(err, common.ErrorNotFound):
		return "User not found"
	case errors.Is(err, common.ErrValidation):
		return "Invalid user: " + err.Error()
	case errors.Is(err, ErrNetwork):
		detail := strings.TrimPrefix(err.Error(), ErrNetwork.Error()+": ")
		return "Network error: " + detail
	case errors.Is(err, ErrUnavailable):
		return "Directory bridge is unavailable"
	case errors.Is(err, ErrUnauthorized):
		return "Not authorized"
	default:
		return fallback
	}
}
