package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"perma/internal/model"

	"github.com/Masterminds/squirrel"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
)

const pgUniqueViolation = "23505"

type User struct {
	ID                uuid.UUID  `db:"id"`
	Email             string     `db:"email"`
	PasswordHash      string     `db:"password_hash"`
	Username          string     `db:"username"`
	DisplayName       string     `db:"display_name"`
	Bio               string     `db:"bio"`
	ProfileImage      string     `db:"profile_image"`
	Theme             string     `db:"theme"`
	IsPublic          bool       `db:"is_public"`
	TotalViews        int        `db:"total_views"`
	TotalClicks       int        `db:"total_clicks"`
	MonthlyViews      int        `db:"monthly_views"`
	MonthlyClicks     int        `db:"monthly_clicks"`
	AchievementPoints int        `db:"achievement_points"`
	StreakDays        int        `db:"streak_days"`
	LastActiveDate    *time.Time `db:"last_active_date"`
	Subscription      []byte     `db:"subscription"`
	CreatedAt         time.Time  `db:"created_at"`
	UpdatedAt         time.Time  `db:"updated_at"`
}

var userColumns = []string{
	"id", "email", "password_hash", "username", "display_name", "bio",
	"profile_image", "theme", "is_public", "total_views", "total_clicks",
	"monthly_views", "monthly_clicks", "achievement_points", "streak_days",
	"last_active_date", "subscription", "created_at", "updated_at",
}

type publicProfile struct {
	Username     string    `db:"username"`
	DisplayName  string    `db:"display_name"`
	Bio          string    `db:"bio"`
	ProfileImage string    `db:"profile_image"`
	TotalViews   int       `db:"total_views"`
	TotalClicks  int       `db:"total_clicks"`
	LinkCount    int       `db:"link_count"`
	CreatedAt    time.Time `db:"created_at"`
}

func (u *User) toModel() (*model.User, error) {
	subscription := model.Subscription{Type: "free"}
	if len(u.Subscription) > 0 {
		if err := json.Unmarshal(u.Subscription, &subscription); err != nil {
			return nil, fmt.Errorf("failed to decode subscription: %w", err)
		}
	}

	return &model.User{
		ID:           u.ID,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Username:     u.Username,
		DisplayName:  u.DisplayName,
		Bio:          u.Bio,
		ProfileImage: u.ProfileImage,
		Theme:        u.Theme,
		IsPublic:     u.IsPublic,
		Analytics: model.Analytics{
			TotalViews:    u.TotalViews,
			TotalClicks:   u.TotalClicks,
			MonthlyViews:  u.MonthlyViews,
			MonthlyClicks: u.MonthlyClicks,
		},
		AchievementPoints: u.AchievementPoints,
		StreakDays:        u.StreakDays,
		LastActiveDate:    u.LastActiveDate,
		Subscription:      subscription,
		CreatedAt:         u.CreatedAt,
		UpdatedAt:         u.UpdatedAt,
	}, nil
}

func (r *Repository) CreateUser(ctx context.Context, user *model.User) error {
	subscription, err := json.Marshal(user.Subscription)
	if err != nil {
		return fmt.Errorf("failed to encode subscription: %w", err)
	}

	query, args, err := squirrel.
		Insert("users").
		SetMap(map[string]interface{}{
			"id":                 user.ID,
			"email":              user.Email,
			"password_hash":      user.PasswordHash,
			"username":           user.Username,
			"display_name":       user.DisplayName,
			"bio":                user.Bio,
			"profile_image":      user.ProfileImage,
			"theme":              user.Theme,
			"is_public":          user.IsPublic,
			"achievement_points": user.AchievementPoints,
			"streak_days":        user.StreakDays,
			"last_active_date":   user.LastActiveDate,
			"subscription":       subscription,
			"created_at":         user.CreatedAt,
			"updated_at":         user.UpdatedAt,
		}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build user insert query: %w", err)
	}

	_, err = r.db.ExecContext(ctx, query, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			switch pgErr.ConstraintName {
			case "users_email_key":
				return ErrDuplicateEmail
			case "users_username_key":
				return ErrDuplicateUsername
			}
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}

	return nil
}

func (r *Repository) getUserWhere(ctx context.Context, pred interface{}) (*model.User, error) {
	var user User
	query, args, err := squirrel.
		Select(userColumns...).
		From("users").
		Where(pred).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	err = r.db.GetContext(ctx, &user, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return user.toModel()
}

func (r *Repository) GetUserByID(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	return r.getUserWhere(ctx, squirrel.Eq{"id": userID})
}

func (r *Repository) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.getUserWhere(ctx, squirrel.Eq{"email": email})
}

func (r *Repository) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	return r.getUserWhere(ctx, squirrel.Eq{"username": username})
}

func (r *Repository) UpdateUserProfile(ctx context.Context, userID uuid.UUID, update model.ProfileUpdate) (*model.User, error) {
	query, args, err := squirrel.
		Update("users").
		SetMap(map[string]interface{}{
			"username":      update.Username,
			"display_name":  update.DisplayName,
			"bio":           update.Bio,
			"profile_image": update.ProfileImage,
			"theme":         update.Theme,
			"is_public":     update.IsPublic,
			"updated_at":    time.Now().UTC(),
		}).
		Where(squirrel.Eq{"id": userID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to update user profile: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, ErrNotFound
	}

	return r.GetUserByID(ctx, userID)
}

func (r *Repository) UpdateUserPassword(ctx context.Context, userID uuid.UUID, passwordHash string) error {
	query, args, err := squirrel.
		Update("users").
		SetMap(map[string]interface{}{
			"password_hash": passwordHash,
			"updated_at":    time.Now().UTC(),
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

// IncrementProfileViews bumps the lifetime and monthly view counters in a
// single atomic update.
func (r *Repository) IncrementProfileViews(ctx context.Context, userID uuid.UUID) error {
	query, args, err := squirrel.
		Update("users").
		Set("total_views", squirrel.Expr("total_views + 1")).
		Set("monthly_views", squirrel.Expr("monthly_views + 1")).
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

func directoryFilter(search string) squirrel.Sqlizer {
	filter := squirrel.And{squirrel.Eq{"is_public": true}}
	if search != "" {
		pattern := "%" + search + "%"
		filter = append(filter, squirrel.Or{
			squirrel.ILike{"username": pattern},
			squirrel.ILike{"display_name": pattern},
			squirrel.ILike{"bio": pattern},
		})
	}
	return filter
}

func (r *Repository) ListPublicProfiles(ctx context.Context, search, orderBy string, limit, offset uint64) ([]*model.PublicProfile, error) {
	query, args, err := squirrel.
		Select(
			"username",
			"display_name",
			"bio",
			"profile_image",
			"total_views",
			"total_clicks",
			"(SELECT COUNT(*) FROM links WHERE links.user_id = users.id) AS link_count",
			"created_at",
		).
		From("users").
		Where(directoryFilter(search)).
		OrderBy(orderBy).
		Limit(limit).
		Offset(offset).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build directory query: %w", err)
	}

	var profiles []publicProfile
	err = r.db.SelectContext(ctx, &profiles, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list public profiles: %w", err)
	}

	out := make([]*model.PublicProfile, len(profiles))
	for i, p := range profiles {
		out[i] = &model.PublicProfile{
			Username:     p.Username,
			DisplayName:  p.DisplayName,
			Bio:          p.Bio,
			ProfileImage: p.ProfileImage,
			TotalViews:   p.TotalViews,
			TotalClicks:  p.TotalClicks,
			LinkCount:    p.LinkCount,
			CreatedAt:    p.CreatedAt,
		}
	}

	return out, nil
}

func (r *Repository) CountPublicProfiles(ctx context.Context, search string) (int, error) {
	query, args, err := squirrel.
		Select("COUNT(*)").
		From("users").
		Where(directoryFilter(search)).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, err
	}

	var count int
	err = r.db.GetContext(ctx, &count, query, args...)
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (r *Repository) getUserWithTx(ctx context.Context, tx *sqlx.Tx, pred interface{}) (*model.User, error) {
	var user User
	query, args, err := squirrel.
		Select(userColumns...).
		From("users").
		Where(pred).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	err = tx.GetContext(ctx, &user, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return user.toModel()
}
