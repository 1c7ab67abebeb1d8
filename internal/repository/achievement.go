package repository

import (
	"context"
	"time"

	"perma/internal/model"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type EarnedAchievement struct {
	UserID        uuid.UUID `db:"user_id"`
	AchievementID string    `db:"achievement_id"`
	EarnedAt      time.Time `db:"earned_at"`
}

func (r *Repository) GetEarnedAchievements(ctx context.Context, userID uuid.UUID) ([]model.EarnedAchievement, error) {
	query, args, err := squirrel.
		Select("user_id", "achievement_id", "earned_at").
		From("user_achievements").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("earned_at ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	var rows []EarnedAchievement
	err = r.db.SelectContext(ctx, &rows, query, args...)
	if err != nil {
		return nil, err
	}

	earned := make([]model.EarnedAchievement, len(rows))
	for i, row := range rows {
		earned[i] = model.EarnedAchievement{
			AchievementID: row.AchievementID,
			EarnedAt:      row.EarnedAt,
		}
	}

	return earned, nil
}

// AppendAchievements records newly earned achievements and bumps the running
// points total in one transaction. The (user_id, achievement_id) primary key
// makes the append idempotent: rows that already exist are skipped and their
// points are not counted again, so two concurrent award attempts cannot
// double-award an id. Returns the ids actually inserted and the points delta
// actually applied.
func (r *Repository) AppendAchievements(ctx context.Context, userID uuid.UUID, earned []model.EarnedAchievement, points map[string]int) ([]string, int, error) {
	var inserted []string
	total := 0

	err := r.Transaction(ctx, func(tx *sqlx.Tx) error {
		for _, ea := range earned {
			query, args, err := squirrel.
				Insert("user_achievements").
				Columns("user_id", "achievement_id", "earned_at").
				Values(userID, ea.AchievementID, ea.EarnedAt).
				Suffix("ON CONFLICT (user_id, achievement_id) DO NOTHING").
				PlaceholderFormat(squirrel.Dollar).
				ToSql()
			if err != nil {
				return err
			}

			result, err := tx.ExecContext(ctx, query, args...)
			if err != nil {
				return err
			}

			rows, err := result.RowsAffected()
			if err != nil {
				return err
			}
			if rows == 0 {
				continue
			}

			inserted = append(inserted, ea.AchievementID)
			total += points[ea.AchievementID]
		}

		if total == 0 {
			return nil
		}

		query, args, err := squirrel.
			Update("users").
			Set("achievement_points", squirrel.Expr("achievement_points + ?", total)).
			Where(squirrel.Eq{"id": userID}).
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return err
		}

		result, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return err
		}

		rows, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if rows == 0 {
			return ErrNotFound
		}

		return nil
	})
	if err != nil {
		return nil, 0, err
	}

	return inserted, total, nil
}

func (r *Repository) UpdateStreak(ctx context.Context, userID uuid.UUID, streakDays int, lastActiveDate time.Time) error {
	query, args, err := squirrel.
		Update("users").
		SetMap(map[string]interface{}{
			"streak_days":      streakDays,
			"last_active_date": lastActiveDate,
		}).
		Where(squirrel.Eq{"id": userID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}
