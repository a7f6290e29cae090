package main

import (
	"fmt"
	"os"

	"github.com/gdps-go/gdps/services/gdps/internal/ctl"
)

func main() {
	if err := ctl.New().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "gdpsctl:", err)
		os.Exit(1)
	}
}
