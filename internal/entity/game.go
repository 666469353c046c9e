package entity

import (
	"fmt"
	"strings"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
)

type Mark string

const (
	Empty Mark = ""
	MarkX Mark = "X"
	MarkO Mark = "O"

	// HumanMark is the side a human plays against the computer.
	HumanMark    = MarkX
	ComputerMark = MarkO
)

const (
	StatusInProgress = "in_progress"
	StatusWon        = "won"
	StatusDraw       = "draw"
)

type Mode string

const (
	HumanVsHuman    Mode = "human_vs_human"
	HumanVsComputer Mode = "human_vs_computer"
)

const BoardSize = 9

// WinCombos - rows, columns and diagonals of the board.
var WinCombos = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

func (that Mark) Opponent() Mark {
	switch that {
	case MarkX:
		return MarkO
	case MarkO:
		return MarkX
	default:
		return Empty
	}
}

func (that Mark) IsPlayer() bool {
	return that == MarkX || that == MarkO
}

func ParseMode(raw string) (Mode, error) {
	switch mode := Mode(strings.ToLower(strings.TrimSpace(raw))); mode {
	case HumanVsHuman, "hvh":
		return HumanVsHuman, nil
	case HumanVsComputer, "hvc":
		return HumanVsComputer, nil
	default:
		return "", fmt.Errorf("%w: %q", apperror.ErrUnknownMode, raw)
	}
}

type GameStatus struct {
	State  string `json:"state"`
	Winner Mark   `json:"winner,omitempty"`
}

func (that GameStatus) IsInProgress() bool {
	return that.State == StatusInProgress
}

func (that GameStatus) IsFinished() bool {
	return !that.IsInProgress()
}

type Board [BoardSize]Mark

// Winner returns the mark that owns a full line, or Empty.
func (that Board) Winner() Mark {
	for _, combo := range WinCombos {
		a, b, c := that[combo[0]], that[combo[1]], that[combo[2]]
		if a != Empty && a == b && b == c {
			return a
		}
	}

	return Empty
}

func (that Board) HasLine(mark Mark) bool {
	for _, combo := range WinCombos {
		if that[combo[0]] == mark && that[combo[1]] == mark && that[combo[2]] == mark {
			return true
		}
	}

	return false
}

func (that Board) IsFull() bool {
	for _, cell := range that {
		if cell == Empty {
			return false
		}
	}

	return true
}

// EmptyCells returns free cell indexes in ascending order.
func (that Board) EmptyCells() []int {
	cells := make([]int, 0, BoardSize)
	for i, cell := range that {
		if cell == Empty {
			cells = append(cells, i)
		}
	}

	return cells
}

func (that Board) Status() GameStatus {
	if winner := that.Winner(); winner != Empty {
		return GameStatus{State: StatusWon, Winner: winner}
	}

	// the game will continue until all the squares are full
	if !that.IsFull() {
		return GameStatus{State: StatusInProgress}
	}

	return GameStatus{State: StatusDraw}
}

func (that Board) String() string {
	var sb strings.Builder

	for i, cell := range that {
		if cell == Empty {
			sb.WriteByte('.')
		} else {
			sb.WriteString(string(cell))
		}

		if i%3 == 2 && i != BoardSize-1 {
			sb.WriteByte('/')
		}
	}

	return sb.String()
}

// Session is the state of a single game, owned by whoever drives the game loop.
type Session struct {
	ID    string `json:"id"`
	Board Board  `json:"board"`
	Turn  Mark   `json:"turn"`
	Mode  Mode   `json:"mode"`
}

func NewSession(id string, mode Mode) *Session {
	return &Session{
		ID:   id,
		Turn: MarkX,
		Mode: mode,
	}
}

func (that *Session) Status() GameStatus {
	return that.Board.Status()
}

func (that *Session) IsWithComputer() bool {
	return that.Mode == HumanVsComputer
}

// AwaitsComputer reports whether the next move belongs to the computer.
func (that *Session) AwaitsComputer() bool {
	return that.IsWithComputer() && that.Turn == ComputerMark && that.Status().IsInProgress()
}

// GameView is the session as presentation layers show it.
type GameView struct {
	ID     string     `json:"id"`
	Board  Board      `json:"board"`
	Turn   Mark       `json:"turn"`
	Mode   Mode       `json:"mode"`
	Status GameStatus `json:"status"`
}

func (that *Session) View() *GameView {
	return &GameView{
		ID:     that.ID,
		Board:  that.Board,
		Turn:   that.Turn,
		Mode:   that.Mode,
		Status: that.Status(),
	}
}
