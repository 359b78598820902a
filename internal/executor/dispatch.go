package executor

import (
	"context"
	"fmt"

	"github.com/aretw0/reel/internal/geometry"
	"github.com/aretw0/reel/internal/transform"
	"github.com/aretw0/reel/pkg/domain"
	"github.com/aretw0/reel/pkg/imageio"
)

// dispatch applies one command to the frame.
func (e *Executor) dispatch(ctx context.Context, f *frame, cmd domain.Command) error {
	if cmd.Knob != "" && cmd.Op.Knobbable() {
		k, ok := f.symbols.Knob(cmd.Knob)
		if !ok {
			return argErr(cmd, fmt.Sprintf("unknown knob %q", cmd.Knob))
		}
		cmd = cmd.Scaled(k)
	}

	if e.hooks.OnCommand != nil {
		e.hooks.OnCommand(ctx, &domain.CommandEvent{
			EventBase: domain.EventBase{Type: domain.EventCommand},
			Frame:     f.index,
			Command:   cmd,
		})
	}

	switch cmd.Op {
	case domain.OpFrames, domain.OpBasename, domain.OpVary:
		// consumed by the timeline

	case domain.OpBox:
		n, err := numbers(cmd, 6)
		if err != nil {
			return err
		}
		mesh, err := geometry.Box(n[0], n[1], n[2], n[3], n[4], n[5])
		if err != nil {
			return argErr(cmd, err.Error())
		}
		f.fb.DrawPolygons(mesh.Transform(f.stack.Top()), e.lighting)

	case domain.OpSphere:
		n, err := numbers(cmd, 4)
		if err != nil {
			return err
		}
		mesh, err := geometry.Sphere(n[0], n[1], n[2], n[3], e.step)
		if err != nil {
			return argErr(cmd, err.Error())
		}
		f.fb.DrawPolygons(mesh.Transform(f.stack.Top()), e.lighting)

	case domain.OpTorus:
		n, err := numbers(cmd, 5)
		if err != nil {
			return err
		}
		mesh, err := geometry.Torus(n[0], n[1], n[2], n[3], n[4], e.step)
		if err != nil {
			return argErr(cmd, err.Error())
		}
		f.fb.DrawPolygons(mesh.Transform(f.stack.Top()), e.lighting)

	case domain.OpLine:
		n, err := numbers(cmd, 6)
		if err != nil {
			return err
		}
		edges := geometry.Line(n[0], n[1], n[2], n[3], n[4], n[5])
		f.fb.DrawLines(edges.Transform(f.stack.Top()), e.foreground)

	case domain.OpMove:
		n, err := exactNumbers(cmd, 3)
		if err != nil {
			return err
		}
		f.stack.Compose(transform.Translate(n[0], n[1], n[2]))

	case domain.OpScale:
		n, err := exactNumbers(cmd, 3)
		if err != nil {
			return err
		}
		f.stack.Compose(transform.Scale(n[0], n[1], n[2]))

	case domain.OpRotate:
		if len(cmd.Args) != 2 || cmd.Args[0].IsNumeric() || !cmd.Args[1].IsNumeric() {
			return argErr(cmd, "expected an axis and an angle")
		}
		axis := transform.ParseAxis(cmd.Args[0].Sym)
		f.stack.Compose(transform.Rotate(axis, cmd.Args[1].Num))

	case domain.OpPush:
		f.stack.Push()

	case domain.OpPop:
		if err := f.stack.Pop(); err != nil {
			return err
		}

	case domain.OpDisplay:
		if !f.outputs {
			return nil
		}
		if e.viewer == nil {
			e.logger.Debug("display ignored, no viewer configured", "frame", f.index)
			return nil
		}
		if err := e.viewer.Display(ctx, f.fb.Image()); err != nil {
			return fmt.Errorf("display: %w", err)
		}

	case domain.OpSave:
		syms := cmd.Symbols()
		if len(syms) != 1 || len(cmd.Args) != 1 {
			return argErr(cmd, "expected a file name")
		}
		if _, err := imageio.FormatOf(syms[0]); err != nil {
			return argErr(cmd, err.Error())
		}
		if !f.outputs {
			return nil
		}
		if err := e.store.Save(ctx, syms[0], f.fb.Image()); err != nil {
			return fmt.Errorf("save %s: %w", syms[0], err)
		}

	default:
		return argErr(cmd, "unknown operator")
	}
	return nil
}

// numbers returns the numeric arguments of a geometry command. Symbolic
// tokens (constants and coordinate-system names) are skipped.
func numbers(cmd domain.Command, want int) ([]float64, error) {
	n := cmd.Numbers()
	if len(n) != want {
		return nil, argErr(cmd, fmt.Sprintf("expected %d numbers, got %d", want, len(n)))
	}
	return n, nil
}

// exactNumbers is numbers for commands that accept no symbolic arguments.
func exactNumbers(cmd domain.Command, want int) ([]float64, error) {
	if len(cmd.Args) != want {
		return nil, argErr(cmd, fmt.Sprintf("expected %d numbers", want))
	}
	return numbers(cmd, want)
}

func argErr(cmd domain.Command, reason string) error {
	// the line is reported by the enclosing FrameError
	return &domain.ArgumentError{Op: cmd.Op, Reason: reason, Args: cmd.Args}
}
