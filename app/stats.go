package app

import (
	"github.com/moyu-x/vibecleaner/pkg/config"
	"github.com/moyu-x/vibecleaner/pkg/database"
)

// 最近运行记录的显示条数
const recentRuns = 10

type StatsResult struct {
	Totals *database.Totals
	Recent []database.RunRecord
}

func RunStats(cfg *config.Config) (*StatsResult, error) {
	db, err := database.NewDatabase(cfg.History.Path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	totals, err := db.Totals()
	if err != nil {
		return nil, err
	}
	recent, err := db.Latest(recentRuns)
	if err != nil {
		return nil, err
	}
	return &StatsResult{Totals: totals, Recent: recent}, nil
}
