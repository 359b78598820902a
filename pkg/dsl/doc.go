/*
Package dsl provides a Go DSL for programmatically constructing reel scripts.

It builds the same domain.Script the parser produces, using a fluent builder
instead of script text. This is useful for tests, generated scenes and
embedding reel in other programs.

Example usage:

	script := dsl.New().
		Frames(10).
		Basename("walk").
		Vary("theta", 0, 9, 0, 90).
		Push().
		Rotate("y", 1).With("theta").
		Box(-50, 50, 50, 100, 100, 100).
		Pop().
		MustBuild()
*/
package dsl
