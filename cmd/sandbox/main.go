package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	debug := flag.Bool("debug", false, "draw physics shapes and sensor contacts")
	demo := flag.Bool("demo", true, "spawn the scripted demo runner")
	watch := flag.Bool("watch", true, "reload prefabs/actions.yaml and scripts when they change on disk")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	levelName := flag.String("level", defaultLevel, "level name in levels/ (basename, .tmx optional)")
	flag.Parse()

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth*2, baseHeight*2)
	ebiten.SetWindowTitle("sidescroller movement sandbox")

	game, err := NewGame(Options{
		Level: *levelName,
		Debug: *debug,
		Demo:  *demo,
		Watch: *watch,
	})
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
