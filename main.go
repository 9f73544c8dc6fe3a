// Package main is the entry point for the darkskin CLI.
package main

import "darkskin.dev/pkg/darkskin/cmd"

func main() {
	cmd.Execute()
}
