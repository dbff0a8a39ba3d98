package api

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	fantasyservice "github.com/aegis-league/aegis-fantasy/app/modules/fantasy/application"
)

// chartTopN caps the bar chart at the users who fit legibly in one image.
const chartTopN = 16

var (
	chartBackground = drawing.Color{R: 0x14, G: 0x17, B: 0x1c, A: 0xff}
	chartBarColor   = drawing.Color{R: 0x3f, G: 0x8e, B: 0xfc, A: 0xff}
	chartTextColor  = drawing.Color{R: 0xe6, G: 0xe6, B: 0xe6, A: 0xff}
)

// GetRosterLeaderboardChart renders the roster leaderboard as a PNG bar
// chart, one bar per user, ranked left to right.
func (h *Handlers) GetRosterLeaderboardChart(w http.ResponseWriter, r *http.Request) {
	result, err := h.fantasy.GetRosterScoreLeaderboard(r.Context())
	if err != nil {
		respondError(w, h.logger, r, err)
		return
	}
	if result.Failure != nil {
		respondFailure(w, result.Failure.Reason, result.Failure.Message)
		return
	}

	var rows []fantasyservice.RosterLeaderboardRow
	if result.Success != nil {
		rows = *result.Success
	}

	png, err := renderRosterLeaderboardChart(rows)
	if err != nil {
		respondError(w, h.logger, r, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}

func renderRosterLeaderboardChart(rows []fantasyservice.RosterLeaderboardRow) ([]byte, error) {
	if len(rows) == 0 {
		return renderEmptyLeaderboard()
	}
	if len(rows) > chartTopN {
		rows = rows[:chartTopN]
	}

	bars := make([]chart.Value, len(rows))
	for i, row := range rows {
		bars[i] = chart.Value{
			Label: fmt.Sprintf("#%d %s", row.Rank, row.UserID),
			Value: row.TotalScore,
			Style: chart.Style{
				FillColor:   chartBarColor,
				StrokeColor: chartBarColor,
			},
		}
	}

	graph := chart.BarChart{
		Title:  "Roster Scores",
		Width:  1024,
		Height: 480,
		Background: chart.Style{
			FillColor: chartBackground,
		},
		Canvas: chart.Style{
			FillColor: chartBackground,
		},
		XAxis: chart.Style{
			FontColor: chartTextColor,
		},
		YAxis: chart.YAxis{
			Style: chart.Style{
				FontColor: chartTextColor,
			},
		},
		BarWidth: 40,
		Bars:     bars,
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("api.renderRosterLeaderboardChart: %w", err)
	}
	return buffer.Bytes(), nil
}

func renderEmptyLeaderboard() ([]byte, error) {
	const msg = "No roster scores yet"

	graph := chart.Chart{
		Width:  400,
		Height: 200,
		Background: chart.Style{
			FillColor: chartBackground,
		},
		Canvas: chart.Style{
			FillColor: chartBackground,
		},
		Elements: []chart.Renderable{
			func(r chart.Renderer, cb chart.Box, chartDefaults chart.Style) {
				r.SetFontColor(chartTextColor)
				r.SetFontSize(12.0)
				tb := r.MeasureText(msg)
				x := (cb.Width() - tb.Width()) / 2
				y := (cb.Height() + tb.Height()) / 2
				r.Text(msg, x, y)
			},
		},
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("api.renderEmptyLeaderboard: %w", err)
	}
	return buffer.Bytes(), nil
}
