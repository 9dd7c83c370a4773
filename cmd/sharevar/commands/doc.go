// Package commands wires the sharevar CLI.
//
// The root command resolves configuration (defaults, environment, flags)
// and sets up logging; each data command opens its own store bound to the
// configured file and lock strategy. Values print on stdout, logs on
// stderr.
//
// Exit status: 0 on success, 1 when get finds no value for the key, 2 on
// any other failure.
package commands
