/*
Package scriptx cuts down on the boilerplate of writing command-line scripts in Go.
It's a collection of small packages rather than a framework, so a script can pull in exactly the parts it needs.

  - [script] wraps top-level flag parsing, subcommand dispatch, leveled logging, and clean exits.
  - [pathcache] answers "which executables named X are on my PATH, and in what order".
  - [proc] runs external commands interactively or captured, with one normalized error type.
  - [workers] tracks background goroutines and shuts them down cooperatively on interrupt.
  - [termx] holds the odd OS-specific string bits: terminal titles, Unicode path normalization, config directories.

Nothing here persists state or talks to the network. The packages compute, spawn, and print.
*/
package scriptx
