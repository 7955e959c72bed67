package main

import (
	"fmt"
	"os"

	"fractalviewer/internal/app"
	"fractalviewer/internal/config"
)

func main() {
	fmt.Println("Fractal Viewer - WebGPU")
	fmt.Println("Controls:")
	fmt.Println("  Mouse wheel   : Zoom")
	fmt.Println("  WASD / Arrows : Pan")
	fmt.Println("  Middle click  : Reset view")
	fmt.Println("  Escape        : Exit")
	fmt.Println()

	application, err := app.New(config.Get())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer application.Cleanup()

	if err := application.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
