package world

import (
	"errors"
	"fmt"

	"github.com/kitchensim/server/internal/core/ecs"
)

// ErrInvariant marks corrupted bookkeeping: a reference that must resolve did
// not. It is never a transient condition.
var ErrInvariant = errors.New("invariant violated")

func invariantf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvariant}, args...)...)
}

func missing(kind string, id ecs.EntityID) error {
	return invariantf("%s %d/%d does not exist", kind, id.Index(), id.Generation())
}
