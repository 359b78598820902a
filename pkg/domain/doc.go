/*
Package domain contains the data model shared by the reel parser, timeline and executor.

It defines the command stream produced by the parser, the symbol table that holds
knob values, the error taxonomy and the lifecycle events emitted while frames are
rendered. This package is kept pure and free of I/O.

# Key Entities

  - Command: an operator, its tagged arguments and an optional knob binding.
  - Script: the ordered command stream together with its symbol table.
  - SymbolTable: knob values that persist across frames ("sticky" knobs).
  - LifecycleHooks: callbacks invoked around frames and commands.
*/
package domain
