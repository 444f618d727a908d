package clients

import (
	"context"
	"errors"
	"fmt"
	"net"
	"syscall"
)

var (
	ErrUpstreamTimeout    = errors.New("upstream request timed out")
	ErrUpstreamConnection = errors.New("upstream connection failed")
	ErrUpstreamStatus     = errors.New("upstream returned unexpected status")
	ErrUpstreamMalformed  = errors.New("upstream returned malformed body")
)

// IsTimeout reports whether err is a deadline, a network timeout or a connection reset.
// A reset is what an aborted request looks like from the client side.
func IsTimeout(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrUpstreamTimeout) || errors.Is(err, context.DeadlineExceeded) || errors.Is(err, syscall.ECONNRESET) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

// wrapTransportError tags a transport-level failure as timeout or connection error.
func wrapTransportError(err error) error {
	if IsTimeout(err) {
		return fmt.Errorf("%w: %w", ErrUpstreamTimeout, err)
	}
	return fmt.Errorf("%w: %w", ErrUpstreamConnection, err)
}

func statusError(code int) error {
	return fmt.Errorf("%w: %d", ErrUpstreamStatus, code)
}
