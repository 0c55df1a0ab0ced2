// Package renderer draws simulation snapshots with raylib.
package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/dilemma/strategy"
)

var strategyColors = [strategy.Count]rl.Color{
	strategy.AlwaysCooperate:  {R: 90, G: 200, B: 120, A: 255},
	strategy.AlwaysDefect:     {R: 220, G: 70, B: 70, A: 255},
	strategy.TitForTat:        {R: 80, G: 150, B: 230, A: 255},
	strategy.TitForTwoTats:    {R: 140, G: 200, B: 240, A: 255},
	strategy.GrimTrigger:      {R: 150, G: 90, B: 200, A: 255},
	strategy.WinStayLoseShift: {R: 240, G: 180, B: 60, A: 255},
	strategy.Random:           {R: 170, G: 170, B: 170, A: 255},
}

// FoodColor is the fill of food items.
var FoodColor = rl.Color{R: 200, G: 230, B: 90, A: 220}

// WorldBg is the fill of the world rectangle.
var WorldBg = rl.Color{R: 18, G: 24, B: 32, A: 255}

// StrategyColor returns the display color of a strategy.
func StrategyColor(s strategy.Strategy) rl.Color {
	if !s.Valid() {
		return rl.White
	}
	return strategyColors[s]
}

// resourceAlpha fades agents as their resources approach zero. full is the
// resource level drawn fully opaque.
func resourceAlpha(resources, full float64) uint8 {
	if full <= 0 {
		return 255
	}
	ratio := resources / full
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}
	return uint8(90 + ratio*165)
}
