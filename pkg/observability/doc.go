/*
Package observability provides tools for monitoring a render.

It turns the engine's lifecycle hooks into Prometheus metrics and structured
log lines, and combines several hook sets into one.
*/
package observability
