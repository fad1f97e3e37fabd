package battle

import (
	"errors"
	"fmt"
)

var (
	// ErrConfig marks a battle that cannot be built or resolved from its inputs:
	// unknown template ids, skill arguments that name no variant, bad team sizes.
	ErrConfig = errors.New("battle configuration error")
	// ErrInvariant marks an engine state that should be unreachable,
	// such as reviving a card that is alive.
	ErrInvariant = errors.New("battle invariant violated")
)

// abort carries a fatal error from deep inside the turn loop up to Run.
type abort struct{ err error }

func fail(err error) {
	panic(abort{err: err})
}

func invariantf(format string, args ...any) {
	fail(fmt.Errorf(format+": %w", append(args, ErrInvariant)...))
}

func configf(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrConfig)...)
}
