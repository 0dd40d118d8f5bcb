package storage

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/Dosada05/euchre-tournament/models"
)

// StandingsReport is one tabulated group ready for publishing.
type StandingsReport struct {
	TournamentID int
	Stage        models.Stage
	Division     int
	Rows         []models.RankedEntity
	Names        map[models.EntityID]string
}

// Key is the object key the report is stored under.
func (r StandingsReport) Key() string {
	if r.Division > 0 {
		return fmt.Sprintf("reports/tournament-%d/%s-d%d.csv", r.TournamentID, r.Stage, r.Division)
	}
	return fmt.Sprintf("reports/tournament-%d/%s.csv", r.TournamentID, r.Stage)
}

var reportHeader = []string{
	"pos", "name", "w", "l", "win_pct", "pf", "pa", "pts_pct",
	"h2h_w", "h2h_l", "h2h_pf", "h2h_pa", "cyclic",
}

// WriteCSV renders the report with tie markers and rounded percentages.
func (r StandingsReport) WriteCSV(buf *bytes.Buffer) error {
	w := csv.NewWriter(buf)
	if err := w.Write(reportHeader); err != nil {
		return err
	}
	for _, row := range r.Rows {
		rec, h2h := row.Record, row.HeadToHead
		name := r.Names[row.EntityID]
		if name == "" {
			name = strconv.Itoa(int(row.EntityID))
		}
		line := []string{
			row.PositionLabel(),
			name,
			strconv.Itoa(rec.Wins),
			strconv.Itoa(rec.Losses),
			models.FormatPct(rec.WinPct(), rec.Played() > 0),
			strconv.Itoa(rec.PointsFor),
			strconv.Itoa(rec.PointsAgainst),
			models.FormatPct(rec.PointsPct(), rec.HasPoints()),
			"", "", "", "",
			"",
		}
		if row.CohortSize > 1 {
			line[8] = strconv.Itoa(h2h.Wins)
			line[9] = strconv.Itoa(h2h.Losses)
			line[10] = strconv.Itoa(h2h.PointsFor)
			line[11] = strconv.Itoa(h2h.PointsAgainst)
		}
		if row.Cyclic {
			line[12] = "yes"
		}
		if err := w.Write(line); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// reportCacheControl keeps viewers from holding a report across re-tabulations.
const reportCacheControl = "no-cache, max-age=0"

// ReportPublisher uploads standings reports as CSV objects.
type ReportPublisher struct {
	store ObjectStore
}

func NewReportPublisher(store ObjectStore) *ReportPublisher {
	return &ReportPublisher{store: store}
}

func (p *ReportPublisher) Publish(ctx context.Context, report StandingsReport) (*UploadResult, error) {
	var buf bytes.Buffer
	if err := report.WriteCSV(&buf); err != nil {
		return nil, fmt.Errorf("render standings report: %w", err)
	}
	return p.store.Put(ctx, Object{
		Key:          report.Key(),
		ContentType:  "text/csv",
		CacheControl: reportCacheControl,
		Body:         &buf,
	})
}
