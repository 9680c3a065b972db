//go:build tools
// +build tools

// Package main declares tool dependencies for this module.
//
// These imports are not used at runtime. They keep mockgen, which
// regenerates mocks/ through go generate, tracked in go.mod and go.sum.
package main

import (
	_ "go.uber.org/mock/mockgen"
)
