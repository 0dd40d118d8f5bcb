// Command euchrectl is the offline companion to the server. It prints
// seed-space schedules for checking table layouts before an event and
// hashes the admin password for ADMIN_PASSWORD_HASH.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/Dosada05/euchre-tournament/brackets"
	"github.com/Dosada05/euchre-tournament/models"
	"github.com/Dosada05/euchre-tournament/services"
)

const (
	formatFlag = "format"
	roundsFlag = "rounds"
)

var version = "v0.1.0-dev"

func newApp() *cli.App {
	return &cli.App{
		Name:    "euchrectl",
		Usage:   "Euchre tournament schedules and admin helpers",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    formatFlag,
				Aliases: []string{"f"},
				Usage:   "Output format: yaml or json",
				Value:   "yaml",
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "seed",
				Usage: "Individual seed rounds with rotating partners",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "players", Aliases: []string{"p"}, Usage: "Number of players", Required: true},
					&cli.IntFlag{Name: roundsFlag, Aliases: []string{"r"}, Usage: "Number of rounds", Value: models.DefaultSeedRounds},
				},
				Action: func(cCtx *cli.Context) error {
					players, rounds := cCtx.Int("players"), cCtx.Int(roundsFlag)
					sched, err := brackets.BuildSeedSchedule(players, rounds)
					if err != nil {
						return cli.Exit(err, 2)
					}
					fmt.Fprintf(cCtx.App.ErrWriter, "max byes per player: %d\n", brackets.MaxSeedByes(players, rounds))
					return render(cCtx.App.Writer, cCtx.String(formatFlag), sched)
				},
			},
			{
				Name:  "division",
				Usage: "Team round robin for one division",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "teams", Aliases: []string{"t"}, Usage: "Number of teams in the division", Required: true},
					&cli.IntFlag{Name: roundsFlag, Aliases: []string{"r"}, Usage: "Number of rounds, 0 for one full pass"},
				},
				Action: func(cCtx *cli.Context) error {
					teams, rounds := cCtx.Int("teams"), cCtx.Int(roundsFlag)
					if rounds == 0 {
						rounds = brackets.PassLength(teams)
					}
					sched, err := brackets.BuildDivisionSchedule(teams, rounds)
					if err != nil {
						return cli.Exit(err, 2)
					}
					return render(cCtx.App.Writer, cCtx.String(formatFlag), sched)
				},
			},
			{
				Name:  "playoff",
				Usage: "First playoff round for a seeded field",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "field", Usage: "Field size, a power of two", Value: 4},
				},
				Action: func(cCtx *cli.Context) error {
					field := make([]models.Entity, cCtx.Int("field"))
					for i := range field {
						field[i] = models.Entity{ID: models.EntityID(i + 1), Seed: i + 1}
					}
					matchups, err := brackets.BuildPlayoffRound(field)
					if err != nil {
						return cli.Exit(err, 2)
					}
					return render(cCtx.App.Writer, cCtx.String(formatFlag), models.Schedule{
						Rounds: []models.Round{{Number: 1, Matchups: matchups}},
					})
				},
			},
			{
				Name:      "hash-password",
				Usage:     "Print a bcrypt hash for ADMIN_PASSWORD_HASH",
				ArgsUsage: "<password>",
				Action: func(cCtx *cli.Context) error {
					hash, err := services.HashPassword(cCtx.Args().First())
					if err != nil {
						return cli.Exit(err, 1)
					}
					_, err = fmt.Fprintln(cCtx.App.Writer, hash)
					return err
				},
			},
		},
	}
}

func render(w io.Writer, format string, v any) error {
	switch format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encoding to YAML failed: %w", err)
		}
		return enc.Close()
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	default:
		return cli.Exit(fmt.Sprintf("unknown format %q", format), 1)
	}
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
