//go:build mage

package main

import (
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

var Default = Build

const binDir = "_build"

// Build compiles the padmap CLI into _build/.
func Build() error {
	if err := os.MkdirAll(binDir, 0755); err != nil {
		return err
	}
	return sh.RunV("go", "build", "-o", filepath.Join(binDir, "padmap"), "./cmd/padmap")
}

func Test() error {
	return sh.RunV("go", "test", "-race", "./...")
}

func Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Check runs vet and the tests.
func Check() {
	mg.SerialDeps(Vet, Test)
}

func Clean() error {
	return sh.Rm(binDir)
}
