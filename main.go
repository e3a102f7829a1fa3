package main

import (
	"fmt"
	"os"

	"github.com/davidpdrsn/git-branch-picker/cmd/cli"
)

const (
	exitErrorTemplateConstant = "%v\n"
)

// main executes the git-branch-picker command-line application.
func main() {
	if executionError := cli.Execute(); executionError != nil {
		fmt.Fprintf(os.Stderr, exitErrorTemplateConstant, executionError)
		os.Exit(1)
	}
}
