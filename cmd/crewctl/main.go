package main

import (
	"fmt"
	"os"

	"github.com/crewbase/crewbase/internal/crewctl"
)

func main() {
	if err := crewctl.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
