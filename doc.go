/*
Package reel renders scene scripts into still images and animations.

A script is an ordered stream of commands: geometry (box, sphere, torus,
line), transforms (move, scale, rotate) threaded through a push/pop stack,
outputs (display, save) and animation directives (frames, basename, vary).
When a script animates, every frame replays the whole stream with the knob
values of that frame, each frame is saved as an image, and the frames are
assembled into a single animation at the end.

# Concepts

  - Knobs are named scalars. A vary directive interpolates a knob linearly
    over an inclusive frame range; move, scale and rotate may bind a knob,
    which multiplies their numeric arguments. A knob keeps its last value in
    frames that do not write it.
  - The transform stack starts each frame as a single identity matrix.
    Geometry is transformed by the top of the stack when it is drawn.
  - Scripts without frames, basename or vary render exactly one frame and
    produce no per-frame artifacts.

# Usage

	eng := reel.New(
		reel.WithImageStore(file.New("out")),
		reel.WithLogger(logging.New(slog.LevelInfo)),
	)

	res, err := eng.RunFile(ctx, "spin.mdl")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(res.Animation)

Scripts can also be built in code with the pkg/dsl builder.
*/
package reel
