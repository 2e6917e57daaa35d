// Command play runs an interactive console game: each side is either a
// human entering board coordinates or the backtracking AI searching to a
// chosen depth.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/calebwray/gambit-backend/internal/engine"
)

type player struct {
	ai *engine.AI // nil for a human
}

const maxTurns = 10000

func main() {
	whiteKind := flag.String("white", "user", `white player: "user" or "ai"`)
	blackKind := flag.String("black", "ai", `black player: "user" or "ai"`)
	whiteDepth := flag.Int("white-depth", 3, "search depth for an AI playing white")
	blackDepth := flag.Int("black-depth", 3, "search depth for an AI playing black")
	seed := flag.Int64("seed", 0, "tie-break seed (0 for a random seed)")
	flag.Parse()

	players := [2]player{
		makePlayer(*whiteKind, *whiteDepth, *seed),
		makePlayer(*blackKind, *blackDepth, *seed),
	}

	board := engine.NewBoard()
	in := bufio.NewScanner(os.Stdin)
	turn := 0

	fmt.Println(board.Render())
	for turn < maxTurns {
		if over := doTurn(board, in, players, engine.White, turn); over {
			return
		}
		if over := doTurn(board, in, players, engine.Black, turn); over {
			return
		}
		turn++
	}
}

func makePlayer(kind string, depth int, seed int64) player {
	switch kind {
	case "user":
		return player{}
	case "ai":
		if seed != 0 {
			return player{ai: engine.NewSeededAI(depth, seed)}
		}
		return player{ai: engine.NewAI(depth)}
	default:
		log.Fatalf("player kind must be \"user\" or \"ai\", got %q", kind)
		return player{}
	}
}

// doTurn plays one ply for the side and reports whether the game ended.
func doTurn(board *engine.Board, in *bufio.Scanner, players [2]player, side engine.Side, turn int) bool {
	fmt.Println()
	p := players[side]
	if p.ai == nil {
		makeUserMove(board, in, side)
	} else {
		move := p.ai.ChooseMove(board, side)
		if move.IsNull() {
			fmt.Printf("%s has no legal moves, game over\n", side)
			return true
		}
		fmt.Printf("%s is moving %s to position %s for %.2f\n",
			capitalize(side.String()), move.Piece.Label(), move.To, move.ScoreChange)
		board.MakeMove(&move)
	}
	fmt.Println(board.Render())

	for _, s := range []engine.Side{engine.White, engine.Black} {
		if !board.HasLost(s) && board.InCheck(s) {
			fmt.Printf("PLAYER %s IS IN CHECK!\n", strings.ToUpper(s.String()))
		}
	}
	for _, s := range []engine.Side{engine.White, engine.Black} {
		if board.HasLost(s.Opponent()) {
			fmt.Printf("PLAYER %s WON! Score: %d\n", strings.ToUpper(s.String()), board.Score())
			return true
		}
	}

	fmt.Printf("%s's turn, Turn %d, Score %d, Pieces %d...\n",
		capitalize(side.Opponent().String()), turn+1, board.Score(), board.NumPieces())
	return false
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// makeUserMove prompts until the user enters a legal move, then commits it.
func makeUserMove(board *engine.Board, in *bufio.Scanner, side engine.Side) {
	for {
		from, ok := readSquare(in, "STARTING")
		if !ok {
			continue
		}
		to, ok := readSquare(in, "ENDING")
		if !ok {
			continue
		}
		if !engine.InBounds(from) {
			fmt.Println("Starting position was out of bounds")
			continue
		}
		if !engine.InBounds(to) {
			fmt.Println("Ending position was out of bounds")
			continue
		}
		piece := board.At(from)
		if piece == nil {
			fmt.Println("No piece at the starting position")
			continue
		}
		if piece.Side != side {
			fmt.Println("You can't move the other player's piece")
			continue
		}
		for _, m := range board.MovesFor(piece) {
			if m.To == to {
				board.MakeMove(&m)
				return
			}
		}
		fmt.Println("Move was not valid")
	}
}

// readSquare prompts for the x then y coordinate of one square.
func readSquare(in *bufio.Scanner, label string) (engine.Square, bool) {
	x, ok := readInt(in, fmt.Sprintf("%s X position: ", label))
	if !ok {
		return engine.Square{}, false
	}
	y, ok := readInt(in, fmt.Sprintf("%s Y position: ", label))
	if !ok {
		return engine.Square{}, false
	}
	return engine.Square{X: x, Y: y}, true
}

func readInt(in *bufio.Scanner, prompt string) (int, bool) {
	fmt.Print(prompt)
	if !in.Scan() {
		fmt.Println()
		os.Exit(0)
	}
	n, err := strconv.Atoi(strings.TrimSpace(in.Text()))
	if err != nil {
		fmt.Println("Not a valid input")
		return 0, false
	}
	return n, true
}
