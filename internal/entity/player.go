package entity

import (
	"fmt"
	"strings"
)

type PlayerID int

const (
	Player1 PlayerID = iota + 1
	Player2
)

type Result int

const (
	ResultNone Result = iota
	ResultWin
	ResultLose
	ResultDraw
)

var resultNames = map[Result]string{
	ResultNone: "none",
	ResultWin:  "win",
	ResultLose: "lose",
	ResultDraw: "draw",
}

func (that Result) String() string {
	if name, ok := resultNames[that]; ok {
		return name
	}

	return fmt.Sprintf("result(%d)", int(that))
}

func (that Result) MarshalText() ([]byte, error) {
	name, ok := resultNames[that]
	if !ok {
		return nil, fmt.Errorf("unknown result %d", int(that))
	}

	return []byte(name), nil
}

func (that *Result) UnmarshalText(text []byte) error {
	for result, name := range resultNames {
		if strings.EqualFold(name, string(text)) {
			*that = result
			return nil
		}
	}

	return fmt.Errorf("unknown result %q", text)
}

type Player struct {
	ID     PlayerID `json:"id"`
	IsCPU  bool     `json:"is_cpu"`
	Score  int      `json:"score"`
	Choice *Choice  `json:"choice"`
	Result Result   `json:"result"`
}

func NewPlayer(id PlayerID, isCPU bool) *Player {
	return &Player{
		ID:     id,
		IsCPU:  isCPU,
		Result: ResultNone,
	}
}

func (that *Player) HasChoice() bool {
	return that.Choice != nil
}

func (that *Player) Win() {
	that.Score++
	that.Result = ResultWin
}

func (that *Player) Lose() {
	that.Result = ResultLose
}

func (that *Player) Draw() {
	that.Result = ResultDraw
}
