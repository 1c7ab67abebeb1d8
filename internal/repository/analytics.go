package repository

import (
	"context"

	"perma/internal/model"

	"github.com/Masterminds/squirrel"
)

type platformStats struct {
	TotalUsers  int `db:"total_users"`
	TotalViews  int `db:"total_views"`
	TotalClicks int `db:"total_clicks"`
}

func (r *Repository) GetPlatformStats(ctx context.Context) (*model.PlatformStats, error) {
	query, args, err := squirrel.
		Select(
			"COUNT(*) AS total_users",
			"COALESCE(SUM(total_views), 0) AS total_views",
			"COALESCE(SUM(total_clicks), 0) AS total_clicks",
		).
		From("users").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	var stats platformStats
	err = r.db.GetContext(ctx, &stats, query, args...)
	if err != nil {
		return nil, err
	}

	return &model.PlatformStats{
		TotalUsers:  stats.TotalUsers,
		TotalViews:  stats.TotalViews,
		TotalClicks: stats.TotalClicks,
	}, nil
}
