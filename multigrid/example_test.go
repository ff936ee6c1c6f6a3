package multigrid_test

import (
	"fmt"
	"math"

	"penrose-multigrid/multigrid"
)

func ExampleBuild() {
	mg, err := multigrid.Build(multigrid.DefaultParams(5))
	if err != nil {
		fmt.Println(err)
		return
	}

	tiles := 0
	for range mg.Tiles() {
		tiles++
	}
	fmt.Println(len(mg.Pairs()), "pairs,", tiles, "tiles")
	// Output: 10 pairs, 1000 tiles
}

func ExampleMultigrid_NeighbourhoodOf() {
	mg, err := multigrid.Build(multigrid.Params{
		GridCount:    2,
		Angles:       []float64{0, math.Pi / 2},
		UnitInterval: 1,
		LineCount:    3,
	})
	if err != nil {
		fmt.Println(err)
		return
	}

	keys, err := mg.NeighbourhoodOf("0,0,1,0", true)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(len(keys), "neighbours")
	// Output: 4 neighbours
}

func ExampleParseCell() {
	c, err := multigrid.ParseCell("3,-1,0,2")
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(c)
	// Output: 0,2,3,-1
}
