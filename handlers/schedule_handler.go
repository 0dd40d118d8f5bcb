package handlers

import (
	"net/http"

	"github.com/Dosada05/euchre-tournament/models"
	"github.com/Dosada05/euchre-tournament/services"
)

type ScheduleHandler struct {
	scheduleService services.ScheduleService
}

func NewScheduleHandler(ss services.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{scheduleService: ss}
}

// GenerateHandler godoc
// @Summary Generate the games for a stage
// @Description Replaces the stage's schedule. Fails with 409 once any game in the stage has been scored.
// @Tags schedule
// @Produce json
// @Param tournamentID path int true "Tournament ID"
// @Param stage path string true "Stage" Enums(seed, round_robin, semis, finals)
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Failure 422 {object} map[string]interface{}
// @Security BearerAuth
// @Router /tournaments/{tournamentID}/stages/{stage}/schedule [post]
func (h *ScheduleHandler) GenerateHandler(w http.ResponseWriter, r *http.Request) {
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

	var games []models.Game
	switch stage {
	case models.StageSeed:
		games, err = h.scheduleService.GenerateSeedRound(r.Context(), tournamentID)
	case models.StageRoundRobin:
		games, err = h.scheduleService.GenerateRoundRobin(r.Context(), tournamentID)
	default:
		games, err = h.scheduleService.GeneratePlayoffRound(r.Context(), tournamentID, stage)
	}
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"stage": stage, "games": games}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListGamesHandler godoc
// @Summary List the games of a stage
// @Tags schedule
// @Produce json
// @Param tournamentID path int true "Tournament ID"
// @Param stage path string true "Stage" Enums(seed, round_robin, semis, finals)
// @Success 200 {object} map[string]interface{}
// @Router /tournaments/{tournamentID}/stages/{stage}/games [get]
func (h *ScheduleHandler) ListGamesHandler(w http.ResponseWriter, r *http.Request) {
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

	games, err := h.scheduleService.ListGames(r.Context(), tournamentID, stage)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"stage": stage, "games": games}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
