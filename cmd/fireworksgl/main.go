// Command fireworksgl is a fireworks screensaver. Run with /s for fullscreen
// or /p for a preview window.
package main

import (
	"os"

	"fireworksgl/internal/cli"
	"fireworksgl/internal/game"
)

func main() {
	os.Exit(int(cli.Run(os.Args[1:], os.Stdout, game.Run)))
}
