package brackets

import (
	"fmt"

	"github.com/Dosada05/euchre-tournament/models"
)

// GenerateParams is the input to a Generator. Entities must carry the seeds
// the stage schedules by: draw numbers for the seed round, division seeds
// for round robin, ranks for playoffs.
type GenerateParams struct {
	Entities []models.Entity
	Rounds   int
	Division int
	BestOf   int
}

// Generator builds the games of one stage.
type Generator interface {
	Generate(params GenerateParams) ([]models.Game, error)

	Stage() models.Stage
}

// NewGenerator returns the generator for a stage.
func NewGenerator(stage models.Stage) (Generator, error) {
	switch stage {
	case models.StageSeed:
		return seedRoundGenerator{}, nil
	case models.StageRoundRobin:
		return roundRobinGenerator{}, nil
	case models.StageSemis, models.StageFinals:
		return playoffGenerator{stage: stage}, nil
	default:
		return nil, fmt.Errorf("no schedule generator for stage %q", stage)
	}
}

type seedRoundGenerator struct{}

func (seedRoundGenerator) Stage() models.Stage { return models.StageSeed }

func (g seedRoundGenerator) Generate(params GenerateParams) ([]models.Game, error) {
	sched, err := BuildSeedSchedule(len(params.Entities), params.Rounds)
	if err != nil {
		return nil, err
	}
	return BindSchedule(g.Stage(), sched, params.Entities)
}

type roundRobinGenerator struct{}

func (roundRobinGenerator) Stage() models.Stage { return models.StageRoundRobin }

func (g roundRobinGenerator) Generate(params GenerateParams) ([]models.Game, error) {
	sched, err := BuildDivisionSchedule(len(params.Entities), params.Rounds)
	if err != nil {
		return nil, err
	}
	sched.Division = params.Division
	return BindSchedule(g.Stage(), sched, params.Entities)
}

type playoffGenerator struct {
	stage models.Stage
}

func (g playoffGenerator) Stage() models.Stage { return g.stage }

func (g playoffGenerator) Generate(params GenerateParams) ([]models.Game, error) {
	matchups, err := BuildPlayoffRound(params.Entities)
	if err != nil {
		return nil, err
	}
	bestOf := params.BestOf
	if bestOf <= 0 {
		bestOf = DefaultBestOf
	}
	return BindPlayoffRound(g.stage, matchups, params.Entities, bestOf)
}
