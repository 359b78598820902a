package executor

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aretw0/reel/pkg/domain"
)

// FrameError locates a failure in the frame and command that caused it.
// Command is zero when the failure happened outside the replay (e.g. while
// saving the frame artifact).
type FrameError struct {
	Frame   int
	Command domain.Command
	Err     error
}

func (e *FrameError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "frame %d: ", e.Frame)
	if e.Command.Line > 0 {
		fmt.Fprintf(&b, "line %d: ", e.Command.Line)
	}
	var argErr *domain.ArgumentError
	if e.Command.Op != 0 && !errors.As(e.Err, &argErr) {
		fmt.Fprintf(&b, "%s: ", e.Command.Op)
	}
	b.WriteString(e.Err.Error())
	return b.String()
}

func (e *FrameError) Unwrap() error { return e.Err }
