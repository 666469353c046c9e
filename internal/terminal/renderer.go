package terminal

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/muesli/termenv"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

const (
	colorX  = "#E88388"
	colorO  = "#66C2CD"
	colorOK = "#A8CC8C"
)

// Renderer draws the board and game messages on a terminal.
type Renderer struct {
	output *termenv.Output
}

func NewRenderer(w io.Writer, opts ...termenv.OutputOption) *Renderer {
	return &Renderer{output: termenv.NewOutput(w, opts...)}
}

// Board - draws the grid. Empty cells show their index so they can be typed in.
func (that *Renderer) Board(board entity.Board) {
	var sb strings.Builder

	for row := range 3 {
		if row > 0 {
			sb.WriteString("---+---+---\n")
		}

		cells := make([]string, 0, 3)
		for col := range 3 {
			cells = append(cells, " "+that.cell(board, row*3+col)+" ")
		}

		sb.WriteString(strings.Join(cells, "|"))
		sb.WriteByte('\n')
	}

	that.print(sb.String())
}

func (that *Renderer) cell(board entity.Board, idx int) string {
	switch board[idx] {
	case entity.MarkX:
		return that.output.String(string(entity.MarkX)).Foreground(that.output.Color(colorX)).Bold().String()
	case entity.MarkO:
		return that.output.String(string(entity.MarkO)).Foreground(that.output.Color(colorO)).Bold().String()
	default:
		return that.output.String(strconv.Itoa(idx)).Faint().String()
	}
}

func (that *Renderer) Mark(mark entity.Mark) string {
	switch mark {
	case entity.MarkX:
		return that.output.String(string(mark)).Foreground(that.output.Color(colorX)).Bold().String()
	case entity.MarkO:
		return that.output.String(string(mark)).Foreground(that.output.Color(colorO)).Bold().String()
	default:
		return string(mark)
	}
}

// Status - announces the result or whose turn it is.
func (that *Renderer) Status(session *entity.Session) {
	status := session.Status()

	switch status.State {
	case entity.StatusWon:
		that.print(that.output.String(fmt.Sprintf("%s wins!", status.Winner)).Foreground(that.output.Color(colorOK)).Bold().String() + "\n")
		that.print("r to play again, q to quit\n")
	case entity.StatusDraw:
		that.print(that.output.String("Draw.").Bold().String() + "\n")
		that.print("r to play again, q to quit\n")
	default:
		if session.AwaitsComputer() {
			that.print(fmt.Sprintf("%s is thinking...\n", that.Mark(session.Turn)))
			return
		}

		that.print(fmt.Sprintf("%s to move (0-8, r, q): ", that.Mark(session.Turn)))
	}
}

func (that *Renderer) Message(format string, args ...any) {
	that.print(fmt.Sprintf(format, args...) + "\n")
}

func (that *Renderer) Error(err error) {
	that.print(that.output.String(err.Error()).Foreground(that.output.Color(colorX)).String() + "\n")
}

func (that *Renderer) print(s string) {
	_, _ = fmt.Fprint(that.output, s)
}
