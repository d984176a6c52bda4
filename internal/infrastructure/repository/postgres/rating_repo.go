package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mihretgbr/applaud/internal/domain/contract"
	"github.com/mihretgbr/applaud/internal/domain/entity"
)

const uniqueViolation = "23505"

// RatingRepository is the PostgreSQL implementation of IRatingRepository.
// It also implements ILikeStore directly, serving as the durable side of
// the fallback composition: Toggle runs the whole flip in one transaction.
type RatingRepository struct {
	pool *pgxpool.Pool
}

// NewRatingRepository creates and returns a new RatingRepository instance.
func NewRatingRepository(pool *pgxpool.Pool) *RatingRepository {
	return &RatingRepository{pool: pool}
}

// identityColumn maps the identity kind to its ratings column.
func identityColumn(ident entity.Identity) string {
	if ident.IsProfile() {
		return "profile_id"
	}
	return "session_id"
}

func identityValues(ident entity.Identity) (sessionID, profileID *string) {
	if ident.IsProfile() {
		return nil, &ident.ID
	}
	return &ident.ID, nil
}

// EnsureItem inserts a zero-count item row if none exists yet.
func (r *RatingRepository) EnsureItem(ctx context.Context, itemID string) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO items (id, count) VALUES ($1, 0) ON CONFLICT (id) DO NOTHING`, itemID)
	if err != nil {
		return fmt.Errorf("failed to ensure item row: %w", err)
	}
	return nil
}

// ItemCount reads the denormalized count column. A missing item reads as 0.
func (r *RatingRepository) ItemCount(ctx context.Context, itemID string) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `SELECT count FROM items WHERE id = $1`, itemID).Scan(&count)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read item count: %w", err)
	}
	return count, nil
}

// ItemCounts batch-reads count columns. Items without a row read as 0.
func (r *RatingRepository) ItemCounts(ctx context.Context, itemIDs []string) (map[string]int64, error) {
	counts := make(map[string]int64, len(itemIDs))
	for _, id := range itemIDs {
		counts[id] = 0
	}

	rows, err := r.pool.Query(ctx, `SELECT id, count FROM items WHERE id = ANY($1)`, itemIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to read item counts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		var count int64
		if err := rows.Scan(&id, &count); err != nil {
			return nil, fmt.Errorf("failed to scan item count: %w", err)
		}
		counts[id] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read item counts: %w", err)
	}
	return counts, nil
}

// SetItemCount writes the count column with an absolute SET, creating the
// item row if needed. Never incremental, so the column cannot drift further
// than the value it was last set to.
func (r *RatingRepository) SetItemCount(ctx context.Context, itemID string, count int64) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO items (id, count) VALUES ($1, $2)
		 ON CONFLICT (id) DO UPDATE SET count = EXCLUDED.count`, itemID, count)
	if err != nil {
		return fmt.Errorf("failed to set item count: %w", err)
	}
	return nil
}

// AllItemIDs lists every item id. Reconciliation only.
func (r *RatingRepository) AllItemIDs(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT id FROM items`)
	if err != nil {
		return nil, fmt.Errorf("failed to list item ids: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan item id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list item ids: %w", err)
	}
	return ids, nil
}

// UpsertRating inserts a rating row unless one already exists.
func (r *RatingRepository) UpsertRating(ctx context.Context, itemID string, ident entity.Identity) error {
	if err := r.EnsureItem(ctx, itemID); err != nil {
		return err
	}
	sessionID, profileID := identityValues(ident)
	_, err := r.pool.Exec(ctx,
		`INSERT INTO ratings (id, item_id, session_id, profile_id)
		 VALUES ($1, $2, $3, $4) ON CONFLICT DO NOTHING`,
		uuid.New().String(), itemID, sessionID, profileID)
	if err != nil {
		return fmt.Errorf("failed to upsert rating: %w", err)
	}
	return nil
}

// DeleteRating removes the rating row for (item, identity).
func (r *RatingRepository) DeleteRating(ctx context.Context, itemID string, ident entity.Identity) error {
	query := fmt.Sprintf(`DELETE FROM ratings WHERE item_id = $1 AND %s = $2`, identityColumn(ident))
	ct, err := r.pool.Exec(ctx, query, itemID, ident.ID)
	if err != nil {
		return fmt.Errorf("failed to delete rating: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return contract.ErrRatingNotFound
	}
	return nil
}

// HasRating reports whether a rating row exists for (item, identity).
func (r *RatingRepository) HasRating(ctx context.Context, itemID string, ident entity.Identity) (bool, error) {
	query := fmt.Sprintf(
		`SELECT EXISTS (SELECT 1 FROM ratings WHERE item_id = $1 AND %s = $2)`, identityColumn(ident))
	var exists bool
	if err := r.pool.QueryRow(ctx, query, itemID, ident.ID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check rating: %w", err)
	}
	return exists, nil
}

// ToggleTx flips like state in a single durable transaction: the rating row
// insert-or-delete and the count column update commit together. A
// duplicate-insert race reports the pre-existing liked state instead of
// erroring.
func (r *RatingRepository) ToggleTx(ctx context.Context, itemID string, ident entity.Identity) (bool, int64, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return false, 0, fmt.Errorf("failed to begin toggle transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`INSERT INTO items (id, count) VALUES ($1, 0) ON CONFLICT (id) DO NOTHING`, itemID); err != nil {
		return false, 0, fmt.Errorf("failed to ensure item row: %w", err)
	}

	selectQuery := fmt.Sprintf(
		`SELECT id FROM ratings WHERE item_id = $1 AND %s = $2 FOR UPDATE`, identityColumn(ident))
	var ratingID string
	err = tx.QueryRow(ctx, selectQuery, itemID, ident.ID).Scan(&ratingID)

	var liked bool
	var newCount int64
	switch {
	case err == nil:
		// Existing like: delete the row and decrement, clamped at zero.
		if _, err := tx.Exec(ctx, `DELETE FROM ratings WHERE id = $1`, ratingID); err != nil {
			return false, 0, fmt.Errorf("failed to delete rating: %w", err)
		}
		if err := tx.QueryRow(ctx,
			`UPDATE items SET count = GREATEST(count - 1, 0) WHERE id = $1 RETURNING count`,
			itemID).Scan(&newCount); err != nil {
			return false, 0, fmt.Errorf("failed to decrement item count: %w", err)
		}
		liked = false

	case errors.Is(err, pgx.ErrNoRows):
		sessionID, profileID := identityValues(ident)
		ct, err := tx.Exec(ctx,
			`INSERT INTO ratings (id, item_id, session_id, profile_id)
			 VALUES ($1, $2, $3, $4) ON CONFLICT DO NOTHING`,
			uuid.New().String(), itemID, sessionID, profileID)
		if err != nil {
			return false, 0, fmt.Errorf("failed to insert rating: %w", err)
		}
		if ct.RowsAffected() == 0 {
			// Benign conflict: the same identity completed a concurrent
			// like. Report the pre-existing state.
			if err := tx.QueryRow(ctx,
				`SELECT count FROM items WHERE id = $1`, itemID).Scan(&newCount); err != nil {
				return false, 0, fmt.Errorf("failed to read item count: %w", err)
			}
			liked = true
			break
		}
		if err := tx.QueryRow(ctx,
			`UPDATE items SET count = count + 1 WHERE id = $1 RETURNING count`,
			itemID).Scan(&newCount); err != nil {
			return false, 0, fmt.Errorf("failed to increment item count: %w", err)
		}
		liked = true

	default:
		return false, 0, fmt.Errorf("failed to look up rating: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return false, 0, fmt.Errorf("failed to commit toggle transaction: %w", err)
	}
	return liked, newCount, nil
}

// AllRatings lists every rating row. Reconciliation only.
func (r *RatingRepository) AllRatings(ctx context.Context) ([]entity.Rating, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, item_id, session_id, profile_id, created_at FROM ratings`)
	if err != nil {
		return nil, fmt.Errorf("failed to list ratings: %w", err)
	}
	defer rows.Close()
	return scanRatings(rows)
}

// RatingsBySession lists the session's rating rows, the authoritative input
// for identity migration.
func (r *RatingRepository) RatingsBySession(ctx context.Context, sessionID string) ([]entity.Rating, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, item_id, session_id, profile_id, created_at
		 FROM ratings WHERE session_id = $1`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list session ratings: %w", err)
	}
	defer rows.Close()
	return scanRatings(rows)
}

// RekeyRatingToProfile rewrites a session row's identity to a profile in
// place. The row keeps its id and created_at; only the identity changes.
func (r *RatingRepository) RekeyRatingToProfile(ctx context.Context, ratingID, profileID string) error {
	ct, err := r.pool.Exec(ctx,
		`UPDATE ratings SET session_id = NULL, profile_id = $2 WHERE id = $1`,
		ratingID, profileID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return contract.ErrDuplicateRating
		}
		return fmt.Errorf("failed to rekey rating: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return contract.ErrRatingNotFound
	}
	return nil
}

// DeleteRatingByID removes one rating row by its unique id.
func (r *RatingRepository) DeleteRatingByID(ctx context.Context, ratingID string) error {
	ct, err := r.pool.Exec(ctx, `DELETE FROM ratings WHERE id = $1`, ratingID)
	if err != nil {
		return fmt.Errorf("failed to delete rating: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return contract.ErrRatingNotFound
	}
	return nil
}

// LikedItemIDs reports which of the given items the identity has rated.
func (r *RatingRepository) LikedItemIDs(ctx context.Context, itemIDs []string, ident entity.Identity) (map[string]bool, error) {
	statuses := make(map[string]bool, len(itemIDs))
	for _, id := range itemIDs {
		statuses[id] = false
	}

	query := fmt.Sprintf(
		`SELECT item_id FROM ratings WHERE %s = $1 AND item_id = ANY($2)`, identityColumn(ident))
	rows, err := r.pool.Query(ctx, query, ident.ID, itemIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to read liked statuses: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan liked item id: %w", err)
		}
		statuses[id] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read liked statuses: %w", err)
	}
	return statuses, nil
}

// Toggle implements the durable side of ILikeStore.
func (r *RatingRepository) Toggle(ctx context.Context, itemID string, ident entity.Identity) (*entity.ToggleOutcome, error) {
	liked, newCount, err := r.ToggleTx(ctx, itemID, ident)
	if err != nil {
		return nil, err
	}
	return &entity.ToggleOutcome{IsLiked: liked, NewCount: newCount, Durable: true}, nil
}

// Counts implements the durable side of ILikeStore.
func (r *RatingRepository) Counts(ctx context.Context, itemIDs []string) (map[string]int64, error) {
	return r.ItemCounts(ctx, itemIDs)
}

// LikedStatuses implements the durable side of ILikeStore.
func (r *RatingRepository) LikedStatuses(ctx context.Context, itemIDs []string, ident entity.Identity) (map[string]bool, error) {
	return r.LikedItemIDs(ctx, itemIDs, ident)
}

func scanRatings(rows pgx.Rows) ([]entity.Rating, error) {
	var ratings []entity.Rating
	for rows.Next() {
		var rating entity.Rating
		if err := rows.Scan(&rating.ID, &rating.ItemID, &rating.SessionID,
			&rating.ProfileID, &rating.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan rating: %w", err)
		}
		ratings = append(ratings, rating)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read ratings: %w", err)
	}
	return ratings, nil
}

// Ensure RatingRepository implements both contracts.
var (
	_ contract.IRatingRepository = (*RatingRepository)(nil)
	_ contract.ILikeStore        = (*RatingRepository)(nil)
)
