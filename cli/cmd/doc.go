// Package cmd provides the render and vars subcommands for working with
// bempline templates.
package cmd
