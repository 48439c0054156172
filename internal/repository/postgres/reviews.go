package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nirajd1102/shopping-website/internal/domain"
)

type reviewRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewReviewRepository creates a new review repository
func NewReviewRepository(db *sql.DB, logger *zap.Logger) *reviewRepository {
	return &reviewRepository{
		db:     db,
		logger: logger,
	}
}

func (r *reviewRepository) ListByProductID(ctx context.Context, productID uuid.UUID) ([]*domain.Review, error) {
	query := `
		SELECT id, product_id, customer_name, rating, comment, audio_url, created_at
		FROM reviews
		WHERE product_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, productID)
	if err != nil {
		r.logger.Error("Failed to list reviews", zap.String("product_id", productID.String()), zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var reviews []*domain.Review
	for rows.Next() {
		var review domain.Review
		var comment sql.NullString
		var audioURL sql.NullString

		err := rows.Scan(
			&review.ID,
			&review.ProductID,
			&review.CustomerName,
			&review.Rating,
			&comment,
			&audioURL,
			&review.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		if comment.Valid {
			review.Comment = &comment.String
		}
		if audioURL.Valid {
			review.AudioURL = &audioURL.String
		}
		reviews = append(reviews, &review)
	}
	return reviews, rows.Err()
}

func (r *reviewRepository) Create(ctx context.Context, review *domain.Review) error {
	if review.ID == uuid.Nil {
		review.ID = uuid.New()
	}
	if review.CreatedAt.IsZero() {
		review.CreatedAt = time.Now()
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO reviews (id, product_id, customer_name, rating, comment, audio_url, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		review.ID,
		review.ProductID,
		review.CustomerName,
		review.Rating,
		review.Comment,
		review.AudioURL,
		review.CreatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create review", zap.Error(err))
		return err
	}
	return nil
}
