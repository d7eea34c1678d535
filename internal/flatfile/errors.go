package flatfile

import (
	"errors"
	"fmt"

	"github.com/mesh-intelligence/mockstore/pkg/types"
)

func invalidInput(format string, args ...any) error {
	return fmt.Errorf("%w: %s", types.ErrInvalidInput, fmt.Sprintf(format, args...))
}

func notFound(format string, args ...any) error {
	return fmt.Errorf("%w: %s", types.ErrNotFound, fmt.Sprintf(format, args...))
}

func conflict(format string, args ...any) error {
	return fmt.Errorf("%w: %s", types.ErrConflict, fmt.Sprintf(format, args...))
}

func writeFailed(err error, format string, args ...any) error {
	return fmt.Errorf("%w: %s: %w", types.ErrWriteFailed, fmt.Sprintf(format, args...), err)
}

func readFailed(err error, format string, args ...any) error {
	return fmt.Errorf("%w: %s: %w", types.ErrReadFailed, fmt.Sprintf(format, args...), err)
}

func isNotFound(err error) bool {
	return errors.Is(err, types.ErrNotFound)
}
