package process

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"strconv"
)

// Registry names used by the viewer and encoder.
const (
	ViewerCommand  = "viewer"
	EncoderCommand = "encoder"
)

// DefaultCommands registers the ImageMagick programs used when the
// configuration names none.
func DefaultCommands() map[string]ProcessConfig {
	return map[string]ProcessConfig{
		ViewerCommand: {
			Command:     "display",
			Args:        []string{"-"},
			Description: "show a frame read from stdin",
		},
		EncoderCommand: {
			Command:     "convert",
			Args:        []string{"-delay", "1.7"},
			Description: "combine frames into an animated gif",
		},
	}
}

// Viewer pipes a PNG of each displayed frame to the registered viewer.
type Viewer struct {
	runner *Runner
}

// NewViewer creates a viewer on top of runner.
func NewViewer(runner *Runner) *Viewer {
	return &Viewer{runner: runner}
}

func (v *Viewer) Display(ctx context.Context, img image.Image) error {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("failed to encode frame for display: %w", err)
	}
	_, err := v.runner.Execute(ctx, Call{
		Name:  ViewerCommand,
		Stdin: &buf,
		Vars: map[string]string{
			"width":  strconv.Itoa(img.Bounds().Dx()),
			"height": strconv.Itoa(img.Bounds().Dy()),
		},
	})
	return err
}

// Encoder runs the registered encoder with the frame names followed by
// <basename>.gif. Frame names are resolved against the runner's base dir, so
// the runner should share its directory with the image store.
type Encoder struct {
	runner *Runner
}

// NewEncoder creates an encoder on top of runner.
func NewEncoder(runner *Runner) *Encoder {
	return &Encoder{runner: runner}
}

func (e *Encoder) Encode(ctx context.Context, frames []string, basename string) error {
	if len(frames) == 0 {
		return fmt.Errorf("encode %s: no frames", basename)
	}
	args := append(append([]string{}, frames...), basename+".gif")
	_, err := e.runner.Execute(ctx, Call{
		Name: EncoderCommand,
		Args: args,
		Vars: map[string]string{
			"basename": basename,
			"frames":   strconv.Itoa(len(frames)),
		},
	})
	return err
}
