// Package cli constructs the git-branch-picker command-line interface. The
// root command runs the interactive branch switch; persistent flags select the
// configuration file and logging options shared by every command.
package cli
