// internal/httpserver/views.go
//
// JSON view models rendered by the game endpoints.
// The score table mirrors the paper scorecard: upper section on the left,
// lower section on the right, seven rows.

package httpserver

import (
	"github.com/robalobadob/yams/internal/dice"
	"github.com/robalobadob/yams/internal/game"
	"github.com/robalobadob/yams/internal/results"
	"github.com/robalobadob/yams/internal/score"
)

var scoreLabels = map[score.Category]string{
	score.Ones:          "Ones",
	score.Twos:          "Twos",
	score.Threes:        "Threes",
	score.Fours:         "Fours",
	score.Fives:         "Fives",
	score.Sixes:         "Sixes",
	score.ThreeOfAKind:  "Three of a kind",
	score.FourOfAKind:   "Four of a kind",
	score.FullHouse:     "Full house",
	score.SmallStraight: "Small straight",
	score.LargeStraight: "Large straight",
	score.Yams:          "Yams",
	score.Chance:        "Chance",
	score.Bonus:         "Bonus (if more than 62)",
}

var scoreTableLayout = [7][2]score.Category{
	{score.Ones, score.ThreeOfAKind},
	{score.Twos, score.FourOfAKind},
	{score.Threes, score.FullHouse},
	{score.Fours, score.SmallStraight},
	{score.Fives, score.LargeStraight},
	{score.Sixes, score.Yams},
	{score.Bonus, score.Chance},
}

var faceClasses = [dice.Faces + 1]string{"", "one", "two", "three", "four", "five", "six"}

const (
	throwLabelFirst = "Throw dice"
	throwLabelAgain = "Throw not selected dice"
)

type scoreCell struct {
	ScoreType score.Category `json:"scoreType"`
	Label     string         `json:"label"`
	Score     *int           `json:"score"` // null until set
}

type scoreRow struct {
	First  scoreCell `json:"first"`
	Second scoreCell `json:"second"`
}

type dieView struct {
	Index    int    `json:"index"`
	Number   int    `json:"number"`
	Class    string `json:"class"`
	Selected bool   `json:"selected"`
}

type optionView struct {
	ScoreType score.Category `json:"scoreType"`
	Label     string         `json:"label"`
	Score     int            `json:"score"`
}

type gameView struct {
	GameID     string     `json:"gameId"`
	Round      int        `json:"round"`
	Dice       []dieView  `json:"dice"`
	CanThrow   bool       `json:"canThrow"`
	ThrowLabel string     `json:"throwLabel,omitempty"`
	ScoreTable []scoreRow `json:"scoreTable"`
	Total      int        `json:"total"`
	Over       bool       `json:"over"`
}

type leaderboardRow struct {
	Rank int `json:"rank"`
	results.Result
}

func newScoreCell(g game.Game, c score.Category) scoreCell {
	cell := scoreCell{ScoreType: c, Label: scoreLabels[c]}
	if pts, ok := g.ScoreFor(c); ok {
		cell.Score = &pts
	}
	return cell
}

func newScoreTable(g game.Game) []scoreRow {
	rows := make([]scoreRow, 0, len(scoreTableLayout))
	for _, pair := range scoreTableLayout {
		rows = append(rows, scoreRow{First: newScoreCell(g, pair[0]), Second: newScoreCell(g, pair[1])})
	}
	return rows
}

func newDieView(i int, d dice.Die) dieView {
	return dieView{Index: i, Number: int(d.Number), Class: faceClasses[d.Number], Selected: d.Selected}
}

func newDiceView(g game.Game) []dieView {
	out := []dieView{}
	if g.Dice == nil {
		return out
	}
	for i, d := range g.Dice {
		out = append(out, newDieView(i, d))
	}
	return out
}

func newGameView(g game.Game) gameView {
	v := gameView{
		GameID:     g.ID.String(),
		Round:      int(g.Round),
		Dice:       newDiceView(g),
		CanThrow:   g.CanThrowDice(),
		ScoreTable: newScoreTable(g),
		Total:      g.TotalScore(),
		Over:       g.IsOver(),
	}
	if v.CanThrow {
		v.ThrowLabel = throwLabelFirst
		if g.State() == game.StateWithDice {
			v.ThrowLabel = throwLabelAgain
		}
	}
	return v
}

func newOptionViews(opts []score.Option) []optionView {
	out := make([]optionView, 0, len(opts))
	for _, o := range opts {
		out = append(out, optionView{ScoreType: o.Category, Label: scoreLabels[o.Category], Score: o.Points})
	}
	return out
}

func newLeaderboard(rs []results.Result) []leaderboardRow {
	out := make([]leaderboardRow, 0, len(rs))
	for i, r := range rs {
		out = append(out, leaderboardRow{Rank: i + 1, Result: r})
	}
	return out
}
