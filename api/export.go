package api

import (
	"fmt"
	"net/http"

	"github.com/xuri/excelize/v2"

	fantasyservice "github.com/aegis-league/aegis-fantasy/app/modules/fantasy/application"
)

const exportSheet = "Roster Scores"

// ExportRosterLeaderboard serves the roster leaderboard as an XLSX workbook
// with one row per user and one column per role score.
func (h *Handlers) ExportRosterLeaderboard(w http.ResponseWriter, r *http.Request) {
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

	f, err := buildRosterScoreWorkbook(rows)
	if err != nil {
		respondError(w, h.logger, r, err)
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="roster_scores.xlsx"`)
	w.WriteHeader(http.StatusOK)
	if _, err := f.WriteTo(w); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to stream workbook", "error", err)
	}
}

func buildRosterScoreWorkbook(rows []fantasyservice.RosterLeaderboardRow) (*excelize.File, error) {
	f := excelize.NewFile()

	index, err := f.NewSheet(exportSheet)
	if err != nil {
		return nil, fmt.Errorf("api.buildRosterScoreWorkbook: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("api.buildRosterScoreWorkbook: %w", err)
	}

	header := []any{"Rank", "User", "Carry", "Mid", "Offlane", "Soft Support", "Hard Support", "Total"}
	if err := f.SetSheetRow(exportSheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("api.buildRosterScoreWorkbook: %w", err)
	}

	for i, row := range rows {
		cell := fmt.Sprintf("A%d", i+2)
		values := []any{
			row.Rank,
			string(row.UserID),
			row.CarryScore,
			row.MidScore,
			row.OfflaneScore,
			row.SoftSupportScore,
			row.HardSupportScore,
			row.TotalScore,
		}
		if err := f.SetSheetRow(exportSheet, cell, &values); err != nil {
			return nil, fmt.Errorf("api.buildRosterScoreWorkbook: %w", err)
		}
	}

	return f, nil
}
