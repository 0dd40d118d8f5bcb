package handlers

import (
	"net/http"

	"github.com/Dosada05/euchre-tournament/services"
)

type StandingsHandler struct {
	standingsService services.StandingsService
}

func NewStandingsHandler(ss services.StandingsService) *StandingsHandler {
	return &StandingsHandler{standingsService: ss}
}

type RankAdjInput struct {
	RankAdj *int `json:"rank_adj"`
}

// TabulateHandler godoc
// @Summary Recompute standings for a stage
// @Tags standings
// @Produce json
// @Param tournamentID path int true "Tournament ID"
// @Param stage path string true "Stage" Enums(seed, round_robin, semis, finals)
// @Success 200 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Failure 422 {object} map[string]interface{}
// @Security BearerAuth
// @Router /tournaments/{tournamentID}/stages/{stage}/standings [post]
func (h *StandingsHandler) TabulateHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	stage, err := getStageFromURL(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	rows, err := h.standingsService.Tabulate(r.Context(), tournamentID, stage)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"stage": stage, "standings": rows}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListHandler godoc
// @Summary List stored standings for a stage
// @Tags standings
// @Produce json
// @Param tournamentID path int true "Tournament ID"
// @Param stage path string true "Stage" Enums(seed, round_robin, semis, finals)
// @Success 200 {object} map[string]interface{}
// @Router /tournaments/{tournamentID}/stages/{stage}/standings [get]
func (h *StandingsHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	stage, err := getStageFromURL(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	rows, err := h.standingsService.List(r.Context(), tournamentID, stage)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"stage": stage, "standings": rows}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// SetRankAdjHandler godoc
// @Summary Override the final rank of a standing
// @Description A null rank_adj removes the override.
// @Tags standings
// @Accept json
// @Produce json
// @Param standingID path int true "Standing ID"
// @Param body body RankAdjInput true "Adjusted rank"
// @Success 204
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Security BearerAuth
// @Router /standings/{standingID}/rank-adj [put]
func (h *StandingsHandler) SetRankAdjHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "standingID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input RankAdjInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.standingsService.SetRankAdjustment(r.Context(), id, input.RankAdj); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
