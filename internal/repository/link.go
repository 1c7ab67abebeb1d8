package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"perma/internal/model"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type Link struct {
	ID              uuid.UUID `db:"id"`
	UserID          uuid.UUID `db:"user_id"`
	Title           string    `db:"title"`
	URL             string    `db:"url"`
	Description     string    `db:"description"`
	IsActive        bool      `db:"is_active"`
	Clicks          int       `db:"clicks"`
	Position        int       `db:"position"`
	BackgroundColor string    `db:"background_color"`
	TextColor       string    `db:"text_color"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
}

var linkColumns = []string{
	"id", "user_id", "title", "url", "description", "is_active", "clicks",
	"position", "background_color", "text_color", "created_at", "updated_at",
}

func (l *Link) toModel() *model.Link {
	return &model.Link{
		ID:              l.ID,
		UserID:          l.UserID,
		Title:           l.Title,
		URL:             l.URL,
		Description:     l.Description,
		IsActive:        l.IsActive,
		Clicks:          l.Clicks,
		Position:        l.Position,
		BackgroundColor: l.BackgroundColor,
		TextColor:       l.TextColor,
		CreatedAt:       l.CreatedAt,
		UpdatedAt:       l.UpdatedAt,
	}
}

func (r *Repository) GetLinks(ctx context.Context, userID uuid.UUID) ([]*model.Link, error) {
	query, args, err := squirrel.
		Select(linkColumns...).
		From("links").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("position ASC", "created_at ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	var links []Link
	err = r.db.SelectContext(ctx, &links, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get links: %w", err)
	}

	out := make([]*model.Link, len(links))
	for i := range links {
		out[i] = links[i].toModel()
	}

	return out, nil
}

func (r *Repository) GetLinkByID(ctx context.Context, userID, linkID uuid.UUID) (*model.Link, error) {
	query, args, err := squirrel.
		Select(linkColumns...).
		From("links").
		Where(squirrel.Eq{"id": linkID, "user_id": userID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	var link Link
	err = r.db.GetContext(ctx, &link, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return link.toModel(), nil
}

func (r *Repository) AddLink(ctx context.Context, link *model.Link) error {
	query, args, err := squirrel.
		Insert("links").
		SetMap(map[string]interface{}{
			"id":               link.ID,
			"user_id":          link.UserID,
			"title":            link.Title,
			"url":              link.URL,
			"description":      link.Description,
			"is_active":        link.IsActive,
			"clicks":           link.Clicks,
			"position":         squirrel.Expr("(SELECT COALESCE(MAX(position) + 1, 0) FROM links WHERE user_id = ?)", link.UserID),
			"background_color": link.BackgroundColor,
			"text_color":       link.TextColor,
			"created_at":       link.CreatedAt,
			"updated_at":       link.UpdatedAt,
		}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build link insert query: %w", err)
	}

	_, err = r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to insert link: %w", err)
	}

	return nil
}

func (r *Repository) UpdateLink(ctx context.Context, userID, linkID uuid.UUID, update model.LinkUpdate) (*model.Link, error) {
	query, args, err := squirrel.
		Update("links").
		SetMap(map[string]interface{}{
			"title":            update.Title,
			"url":              update.URL,
			"description":      update.Description,
			"is_active":        update.IsActive,
			"background_color": update.BackgroundColor,
			"text_color":       update.TextColor,
			"updated_at":       time.Now().UTC(),
		}).
		Where(squirrel.Eq{"id": linkID, "user_id": userID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, ErrNotFound
	}

	return r.GetLinkByID(ctx, userID, linkID)
}

func (r *Repository) DeleteLink(ctx context.Context, userID, linkID uuid.UUID) error {
	query, args, err := squirrel.
		Delete("links").
		Where(squirrel.Eq{"id": linkID, "user_id": userID}).
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

// ReorderLinks rewrites link positions to match the given id order inside a
// single transaction. Ids not owned by the user are ignored.
func (r *Repository) ReorderLinks(ctx context.Context, userID uuid.UUID, linkIDs []uuid.UUID) ([]*model.Link, error) {
	err := r.Transaction(ctx, func(tx *sqlx.Tx) error {
		ownedQuery, ownedArgs, err := squirrel.
			Select("id").
			From("links").
			Where(squirrel.Eq{"user_id": userID}).
			Where(squirrel.Expr("id = ANY(?)", pq.Array(linkIDs))).
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build owned links query: %w", err)
		}

		var owned []uuid.UUID
		err = tx.SelectContext(ctx, &owned, ownedQuery, ownedArgs...)
		if err != nil {
			return fmt.Errorf("failed to get owned links: %w", err)
		}

		ownedSet := make(map[uuid.UUID]struct{}, len(owned))
		for _, id := range owned {
			ownedSet[id] = struct{}{}
		}

		position := 0
		for _, id := range linkIDs {
			if _, ok := ownedSet[id]; !ok {
				continue
			}

			query, args, err := squirrel.
				Update("links").
				Set("position", position).
				Where(squirrel.Eq{"id": id, "user_id": userID}).
				PlaceholderFormat(squirrel.Dollar).
				ToSql()
			if err != nil {
				return err
			}

			_, err = tx.ExecContext(ctx, query, args...)
			if err != nil {
				return fmt.Errorf("failed to update link position: %w", err)
			}

			position++
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return r.GetLinks(ctx, userID)
}

// TrackClick increments the link's click counter together with the owner's
// lifetime and monthly click counters in one transaction.
func (r *Repository) TrackClick(ctx context.Context, username string, linkID uuid.UUID) error {
	return r.Transaction(ctx, func(tx *sqlx.Tx) error {
		user, err := r.getUserWithTx(ctx, tx, squirrel.Eq{"username": username})
		if err != nil {
			return err
		}

		linkQuery, linkArgs, err := squirrel.
			Update("links").
			Set("clicks", squirrel.Expr("clicks + 1")).
			Where(squirrel.Eq{"id": linkID, "user_id": user.ID}).
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return err
		}

		result, err := tx.ExecContext(ctx, linkQuery, linkArgs...)
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

		userQuery, userArgs, err := squirrel.
			Update("users").
			Set("total_clicks", squirrel.Expr("total_clicks + 1")).
			Set("monthly_clicks", squirrel.Expr("monthly_clicks + 1")).
			Where(squirrel.Eq{"id": user.ID}).
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx, userQuery, userArgs...)
		if err != nil {
			return err
		}

		return nil
	})
}
