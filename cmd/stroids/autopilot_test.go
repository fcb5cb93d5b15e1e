package main

import (
	"io"
	"math/rand/v2"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/tomz197/stroids/internal/config"
	"github.com/tomz197/stroids/internal/loop"
	"github.com/tomz197/stroids/internal/physics"
)

func TestNearest(t *testing.T) {
	s := loop.Snapshot{
		Player: &loop.ShipView{},
		Asteroids: []loop.AsteroidView{
			{Pos: physics.Vec{X: 300}},
			{Pos: physics.Vec{X: -50, Y: 20}},
			{Pos: physics.Vec{Y: 200}},
		},
	}
	got, ok := nearest(s)
	if !ok || got != (physics.Vec{X: -50, Y: 20}) {
		t.Errorf("nearest: got %v ok=%v", got, ok)
	}
	if _, ok := nearest(loop.Snapshot{Player: &loop.ShipView{}}); ok {
		t.Error("no asteroids, no target")
	}
}

func TestAutopilotPlaysRounds(t *testing.T) {
	game, err := loop.New(config.Default(), loop.WithRand(rand.New(rand.NewPCG(3, 4))))
	if err != nil {
		t.Fatal(err)
	}
	pilot := newAutopilot(game, rand.New(rand.NewPCG(5, 6)))
	report := &roundReport{logger: log.New(io.Discard)}

	f, quit := pilot.Poll()
	if quit || !f.Confirm {
		t.Fatalf("menu frame should confirm, got %+v", f)
	}
	if err := game.Update(f); err != nil {
		t.Fatal(err)
	}
	if game.State() != loop.StateInGame {
		t.Fatalf("expected in-game, got %v", game.State())
	}

	for i := 0; i < 2000; i++ {
		f, _ := pilot.Poll()
		f.Delta = config.Default().InitialSpawnPeriod / 10
		if err := game.Update(f); err != nil {
			t.Fatal(err)
		}
		report.Present(game.Snapshot())
	}
	if report.rounds == 0 && game.State() != loop.StateInGame {
		t.Error("game left InGame without a recorded round")
	}
}
