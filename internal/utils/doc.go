// Package utils hosts the ambient plumbing shared by the branch picker CLI:
// configuration loading through Viper, zap logger construction, command
// context values, and small helpers for paths and flag usage text.
package utils
