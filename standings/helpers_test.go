package standings

import "github.com/Dosada05/euchre-tournament/models"

// duelGame is a concluded one-on-one game: a scored pa, b scored pb.
func duelGame(a, b models.EntityID, pa, pb int) models.Game {
	return models.Game{
		Stage: models.StageRoundRobin,
		Round: 1,
		Table: models.IntPtr(1),
		Label: "test",
		Side1: models.Side{Entities: []models.EntityID{a}, Points: models.IntPtr(pa)},
		Side2: models.Side{Entities: []models.EntityID{b}, Points: models.IntPtr(pb)},
	}
}

// beat is a 10-5 win for winner over loser.
func beat(winner, loser models.EntityID) models.Game {
	return duelGame(winner, loser, 10, 5)
}

func entities(ids ...models.EntityID) []models.Entity {
	out := make([]models.Entity, len(ids))
	for i, id := range ids {
		out[i] = models.Entity{ID: id, Seed: i + 1}
	}
	return out
}
