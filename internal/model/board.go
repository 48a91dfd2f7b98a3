package model

import (
	"iter"
	"slices"
)

// Location addresses a cell on the board, 1..9 in reading order
type Location int

const (
	MinLocation    Location = 1
	MaxLocation    Location = 9
	CenterLocation Location = 5

	// BoardSize is the number of cells on the board
	BoardSize = 9
)

// Valid returns true if the location is on the board
func (l Location) Valid() bool {
	return l >= MinLocation && l <= MaxLocation
}

// WinningLines lists every line whose uniform occupation ends a round.
// Order is rows, then columns, then diagonals; Winner scans in this order.
var WinningLines = [8][3]Location{
	{1, 2, 3}, {4, 5, 6}, {7, 8, 9},
	{1, 4, 7}, {2, 5, 8}, {3, 6, 9},
	{1, 5, 9}, {3, 5, 7},
}

// Cell is a single board position
type Cell struct {
	location Location
	Occupant Marker
}

// Location returns the cell's fixed position on the board
func (c Cell) Location() Location {
	return c.location
}

// IsEmpty returns true if no marker occupies the cell
func (c Cell) IsEmpty() bool {
	return c.Occupant == NoMarker
}

// Snapshot is a read-only copy of every cell occupant, indexed by location-1
type Snapshot [BoardSize]Marker

// At returns the occupant at the given location, or NoMarker if off the board
func (s Snapshot) At(loc Location) Marker {
	if !loc.Valid() {
		return NoMarker
	}
	return s[loc-1]
}

// Board is the 3x3 grid. Cells are stored in ascending location order.
type Board struct {
	cells [BoardSize]Cell
}

// NewBoard creates a board with all cells empty
func NewBoard() *Board {
	b := &Board{}
	for i := range b.cells {
		b.cells[i] = Cell{location: Location(i + 1)}
	}
	return b
}

// Place puts a marker on an empty cell. A rejected placement leaves the board unchanged.
func (b *Board) Place(loc Location, marker Marker) error {
	if !loc.Valid() {
		return ErrInvalidLocation
	}
	if !marker.IsPlayer() {
		return ErrInvalidMarker
	}
	if !b.cells[loc-1].IsEmpty() {
		return ErrAlreadyOccupied
	}
	b.cells[loc-1].Occupant = marker
	return nil
}

// Cell returns the cell at the given location
func (b *Board) Cell(loc Location) (Cell, error) {
	if !loc.Valid() {
		return Cell{}, ErrInvalidLocation
	}
	return b.cells[loc-1], nil
}

// At returns the occupant at the given location, or NoMarker if off the board
func (b *Board) At(loc Location) Marker {
	if !loc.Valid() {
		return NoMarker
	}
	return b.cells[loc-1].Occupant
}

// EmptyLocations yields the empty locations in ascending order.
// The sequence is recomputed on every iteration.
func (b *Board) EmptyLocations() iter.Seq[Location] {
	return func(yield func(Location) bool) {
		for _, cell := range b.cells {
			if cell.IsEmpty() && !yield(cell.location) {
				return
			}
		}
	}
}

// EmptyLocationList collects EmptyLocations into a slice
func (b *Board) EmptyLocationList() []Location {
	return slices.Collect(b.EmptyLocations())
}

// IsFull returns true if no empty location remains
func (b *Board) IsFull() bool {
	for range b.EmptyLocations() {
		return false
	}
	return true
}

// CenterAvailable returns true if the center cell is empty
func (b *Board) CenterAvailable() bool {
	return b.cells[CenterLocation-1].IsEmpty()
}

// Winner returns the marker occupying a complete line, scanning WinningLines in order
func (b *Board) Winner() (Marker, bool) {
	for _, line := range WinningLines {
		first := b.At(line[0])
		if first == NoMarker {
			continue
		}
		if b.At(line[1]) == first && b.At(line[2]) == first {
			return first, true
		}
	}
	return NoMarker, false
}

// HasWinner returns true if some line is complete
func (b *Board) HasWinner() bool {
	_, ok := b.Winner()
	return ok
}

// IsTerminal returns true if the round cannot continue
func (b *Board) IsTerminal() bool {
	return b.HasWinner() || b.IsFull()
}

// WinningMovesFor returns the empty locations that would complete a line for the
// marker, deduplicated in line-scan order. Returns nil if there are none.
func (b *Board) WinningMovesFor(marker Marker) []Location {
	var moves []Location
	for _, line := range WinningLines {
		owned := 0
		empty := Location(0)
		for _, loc := range line {
			switch b.At(loc) {
			case marker:
				owned++
			case NoMarker:
				empty = loc
			}
		}
		if owned == 2 && empty != 0 && !slices.Contains(moves, empty) {
			moves = append(moves, empty)
		}
	}
	return moves
}

// Reset empties every cell
func (b *Board) Reset() {
	for i := range b.cells {
		b.cells[i].Occupant = NoMarker
	}
}

// Snapshot returns a copy of all occupants for rendering
func (b *Board) Snapshot() Snapshot {
	var s Snapshot
	for i, cell := range b.cells {
		s[i] = cell.Occupant
	}
	return s
}
