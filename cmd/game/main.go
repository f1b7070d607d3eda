package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/Garsondee/Tank-Arena/internal/config"
	"github.com/Garsondee/Tank-Arena/internal/screen"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "tank-arena:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg, err := config.Load(flag.NewFlagSet("game", flag.ExitOnError), args)
	if err != nil {
		return err
	}
	logger := cfg.Logger(os.Stderr, "arena")

	app, err := screen.NewApp(cfg, logger)
	if err != nil {
		return err
	}
	w, h := app.Layout(0, 0)
	ebiten.SetWindowTitle("Tank Arena")
	ebiten.SetWindowSize(int(float64(w)*cfg.WindowScale), int(float64(h)*cfg.WindowScale))
	return ebiten.RunGame(app)
}
