package board

// This file contains some sample positions in board notation, used by the
// tests of this and other packages.

const (
	// DragonsOnly has every number card retired and three dragon colors
	// left. All four green dragons are on top of columns.
	DragonsOnly = "..,..,.. F 9/9/9 DRDG/DWDG/DG/DRDG/DWDR/DWDR/DW/"

	// LateGame has green and white collected and an empty column; it
	// generates 13 column-to-column moves and nothing else.
	LateGame = "CO,CO,.. F 6/6/6 G7DRB9/R7DRG8/B7R8/DR/DRR9/B8/G9/"

	// Stuck has no tableau moves at all, so the only moves park a column
	// top in the last holding cell.
	Stuck = "CO,CO,.. F 6/6/5 R6DR/G8DR/B7DR/B8DRR7/G9/R8B9/R9/G7"

	// NinesLeft is not simplified: all foundations are at 8 and the three
	// nines sit on top of columns.
	NinesLeft = "CO,CO,CO F 8/8/8 R9/G9B9//////"
)
