package main

import (
	"os"

	"github.com/lcyvin/i3wm-master-layout/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
