package model_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/tictactoe-go/internal/model"
)

type BoardSuite struct {
	suite.Suite
	board *model.Board
}

func TestBoardSuite(t *testing.T) {
	suite.Run(t, new(BoardSuite))
}

func (s *BoardSuite) SetupTest() {
	s.board = model.NewBoard()
}

func (s *BoardSuite) place(marker model.Marker, locs ...model.Location) {
	for _, loc := range locs {
		s.Require().NoError(s.board.Place(loc, marker))
	}
}

// NewBoard tests

func (s *BoardSuite) TestNewBoardIsEmpty() {
	s.Equal([]model.Location{1, 2, 3, 4, 5, 6, 7, 8, 9}, s.board.EmptyLocationList())
	s.False(s.board.IsFull())
	s.True(s.board.CenterAvailable())
	s.False(s.board.HasWinner())
}

func (s *BoardSuite) TestCellLocationsAreAscending() {
	for loc := model.MinLocation; loc <= model.MaxLocation; loc++ {
		cell, err := s.board.Cell(loc)
		s.Require().NoError(err)
		s.Equal(loc, cell.Location())
		s.True(cell.IsEmpty())
	}
}

func (s *BoardSuite) TestCellInvalidLocation() {
	_, err := s.board.Cell(0)
	s.ErrorIs(err, model.ErrInvalidLocation)
}

// Place tests

func (s *BoardSuite) TestPlaceSucceeds() {
	err := s.board.Place(3, model.HumanMarker)
	s.Require().NoError(err)
	s.Equal(model.HumanMarker, s.board.At(3))
	s.NotContains(s.board.EmptyLocationList(), model.Location(3))
}

func (s *BoardSuite) TestPlaceInvalidLocation() {
	before := s.board.Snapshot()

	s.ErrorIs(s.board.Place(0, model.HumanMarker), model.ErrInvalidLocation)
	s.ErrorIs(s.board.Place(10, model.HumanMarker), model.ErrInvalidLocation)
	s.ErrorIs(s.board.Place(-1, model.HumanMarker), model.ErrInvalidLocation)

	s.Equal(before, s.board.Snapshot())
}

func (s *BoardSuite) TestPlaceAlreadyOccupiedLeavesBoardUnchanged() {
	s.place(model.HumanMarker, 5)
	before := s.board.Snapshot()

	err := s.board.Place(5, model.OpponentMarker)
	s.ErrorIs(err, model.ErrAlreadyOccupied)
	s.Equal(before, s.board.Snapshot())
	s.Equal(model.HumanMarker, s.board.At(5))
}

func (s *BoardSuite) TestPlaceEmptyMarker() {
	err := s.board.Place(1, model.NoMarker)
	s.ErrorIs(err, model.ErrInvalidMarker)
}

// EmptyLocations tests

func (s *BoardSuite) TestEmptyLocationsIsRestartable() {
	s.place(model.HumanMarker, 1, 9)

	first := s.board.EmptyLocationList()
	second := s.board.EmptyLocationList()
	s.Equal(first, second)
	s.Equal([]model.Location{2, 3, 4, 5, 6, 7, 8}, first)
}

func (s *BoardSuite) TestEmptyLocationsReflectsLaterPlacements() {
	seq := s.board.EmptyLocations()
	s.place(model.OpponentMarker, 2)

	var got []model.Location
	for loc := range seq {
		got = append(got, loc)
	}
	s.Equal([]model.Location{1, 3, 4, 5, 6, 7, 8, 9}, got)
}

func (s *BoardSuite) TestEmptyLocationsEarlyBreak() {
	var got []model.Location
	for loc := range s.board.EmptyLocations() {
		got = append(got, loc)
		if len(got) == 2 {
			break
		}
	}
	s.Equal([]model.Location{1, 2}, got)
}

// IsFull tests

func (s *BoardSuite) TestIsFullMatchesEmptyLocations() {
	order := []model.Location{1, 2, 3, 5, 4, 6, 8, 7, 9}
	marker := model.HumanMarker
	for _, loc := range order {
		s.Equal(len(s.board.EmptyLocationList()) == 0, s.board.IsFull())
		s.place(marker, loc)
		marker = marker.Other()
	}
	s.True(s.board.IsFull())
	s.Empty(s.board.EmptyLocationList())
}

// CenterAvailable tests

func (s *BoardSuite) TestCenterAvailable() {
	s.place(model.HumanMarker, 1)
	s.True(s.board.CenterAvailable())

	s.place(model.OpponentMarker, 5)
	s.False(s.board.CenterAvailable())
}

// Winner tests

func (s *BoardSuite) TestWinnerEveryLine() {
	for _, line := range model.WinningLines {
		for _, marker := range []model.Marker{model.HumanMarker, model.OpponentMarker} {
			s.board.Reset()
			s.place(marker, line[0], line[1], line[2])

			winner, ok := s.board.Winner()
			s.True(ok, "line %v", line)
			s.Equal(marker, winner, "line %v", line)
			s.True(s.board.HasWinner())
			s.True(s.board.IsTerminal())
		}
	}
}

func (s *BoardSuite) TestWinnerTwoInALineIsNotAWin() {
	for _, line := range model.WinningLines {
		s.board.Reset()
		s.place(model.HumanMarker, line[0], line[1])

		_, ok := s.board.Winner()
		s.False(ok, "line %v", line)
	}
}

func (s *BoardSuite) TestWinnerMixedLineIsNotAWin() {
	s.place(model.HumanMarker, 1, 2)
	s.place(model.OpponentMarker, 3)

	winner, ok := s.board.Winner()
	s.False(ok)
	s.Equal(model.NoMarker, winner)
}

func (s *BoardSuite) TestWinnerPrefersEarlierLine() {
	// Not reachable with alternating play, but the scan order must be stable
	s.place(model.OpponentMarker, 4, 5, 6)
	s.place(model.HumanMarker, 1, 2, 3)

	winner, ok := s.board.Winner()
	s.True(ok)
	s.Equal(model.HumanMarker, winner)
}

func (s *BoardSuite) TestFullBoardWithoutWinnerIsTie() {
	// X O X
	// X O O
	// O X X
	s.place(model.HumanMarker, 1, 3, 4, 8, 9)
	s.place(model.OpponentMarker, 2, 5, 6, 7)

	_, ok := s.board.Winner()
	s.False(ok)
	s.True(s.board.IsFull())
	s.True(s.board.IsTerminal())
}

// WinningMovesFor tests

func (s *BoardSuite) TestWinningMovesForRowCompletion() {
	s.place(model.HumanMarker, 1, 2)

	s.Equal([]model.Location{3}, s.board.WinningMovesFor(model.HumanMarker))
	s.Nil(s.board.WinningMovesFor(model.OpponentMarker))
}

func (s *BoardSuite) TestWinningMovesForEmptyBoard() {
	s.Nil(s.board.WinningMovesFor(model.HumanMarker))
	s.Nil(s.board.WinningMovesFor(model.OpponentMarker))
}

func (s *BoardSuite) TestWinningMovesForBlockedLine() {
	s.place(model.HumanMarker, 1, 2)
	s.place(model.OpponentMarker, 3)

	s.Nil(s.board.WinningMovesFor(model.HumanMarker))
}

func (s *BoardSuite) TestWinningMovesForGapInMiddle() {
	s.place(model.OpponentMarker, 3, 7)

	s.Equal([]model.Location{5}, s.board.WinningMovesFor(model.OpponentMarker))
}

func (s *BoardSuite) TestWinningMovesForDeduplicates() {
	// 1 completes both the top row (2,3) and the left column (4,7); O at 5 blocks 3-5-7
	s.place(model.HumanMarker, 2, 3, 4, 7)
	s.place(model.OpponentMarker, 5)

	s.Equal([]model.Location{1}, s.board.WinningMovesFor(model.HumanMarker))
}

func (s *BoardSuite) TestWinningMovesForMultipleInLineOrder() {
	// X at 1 and 5: diagonal needs 9. X at 4 too: column 1-4-7 needs 7, row 4-5-6 needs 6
	s.place(model.HumanMarker, 1, 4, 5)

	s.Equal([]model.Location{6, 7, 9}, s.board.WinningMovesFor(model.HumanMarker))
}

func (s *BoardSuite) TestWinningMovesForMatchesDefinition() {
	s.place(model.HumanMarker, 1, 5, 8)
	s.place(model.OpponentMarker, 2, 9)

	for _, marker := range []model.Marker{model.HumanMarker, model.OpponentMarker} {
		var want []model.Location
		for _, line := range model.WinningLines {
			owned := 0
			var empty []model.Location
			for _, loc := range line {
				switch s.board.At(loc) {
				case marker:
					owned++
				case model.NoMarker:
					empty = append(empty, loc)
				}
			}
			if owned == 2 && len(empty) == 1 {
				want = append(want, empty[0])
			}
		}
		s.ElementsMatch(want, s.board.WinningMovesFor(marker))
	}
}

// Reset tests

func (s *BoardSuite) TestResetEmptiesEveryCell() {
	s.place(model.HumanMarker, 1, 2, 3)
	s.place(model.OpponentMarker, 4, 5)

	s.board.Reset()

	s.Equal(model.Snapshot{}, s.board.Snapshot())
	s.Len(s.board.EmptyLocationList(), model.BoardSize)
	for loc := model.MinLocation; loc <= model.MaxLocation; loc++ {
		cell, _ := s.board.Cell(loc)
		s.Equal(loc, cell.Location())
	}
}

// Snapshot tests

func (s *BoardSuite) TestSnapshotIsACopy() {
	s.place(model.HumanMarker, 5)
	snap := s.board.Snapshot()

	s.place(model.OpponentMarker, 1)

	s.Equal(model.HumanMarker, snap.At(5))
	s.Equal(model.NoMarker, snap.At(1))
	s.Equal(model.NoMarker, snap.At(0))
}
