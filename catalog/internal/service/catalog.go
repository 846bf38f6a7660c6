package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/Alturino/tourism/catalog/internal/otel"
	"github.com/Alturino/tourism/catalog/pkg/request"
	"github.com/Alturino/tourism/internal/constants"
	inErrors "github.com/Alturino/tourism/internal/errors"
	inOtel "github.com/Alturino/tourism/internal/otel"
	"github.com/Alturino/tourism/internal/repository"
)

const (
	REVIEW_MESSAGE        = "Review added successfully"
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

type CatalogService struct {
	pool    *pgxpool.Pool
	queries *repository.Queries
	cache   *redis.Client
}

func NewCatalogService(pool *pgxpool.Pool, queries *repository.Queries, cache *redis.Client) *CatalogService {
	return &CatalogService{pool: pool, queries: queries, cache: cache}
}

func isPgError(err error, code string) bool {
	pgErr := &pgconn.PgError{}
	return errors.As(err, &pgErr) && pgErr.Code == code
}

// reviewOps binds the review statements of one catalog kind to a
// transaction.
type reviewOps struct {
	notFound     error
	exists       func(c context.Context, q *repository.Queries, id uuid.UUID) error
	countByUser  func(c context.Context, q *repository.Queries, id, userId uuid.UUID) (int64, error)
	insert       func(c context.Context, q *repository.Queries, arg repository.InsertReviewParams) (repository.Review, error)
	updateRating func(c context.Context, q *repository.Queries, id uuid.UUID) error
}

// addReview stores one review per user and refreshes the item rating in the
// same transaction.
func (svc *CatalogService) addReview(
	c context.Context,
	ops reviewOps,
	itemId uuid.UUID,
	userId uuid.UUID,
	param request.Review,
) error {
	c, span := otel.Tracer.Start(c, "CatalogService addReview")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "CatalogService addReview").
		Str(constants.KEY_ITEM_ID, itemId.String()).
		Str(constants.KEY_USER_ID, userId.String()).
		Logger()

	logger = logger.With().Str(constants.KEY_PROCESS, "initializing transaction").Logger()
	logger.Trace().Msg("initializing transaction")
	tx, err := svc.pool.BeginTx(c, pgx.TxOptions{})
	if err != nil {
		err = fmt.Errorf("failed initializing transaction with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	defer func(lg zerolog.Logger) {
		l := lg.With().Str(constants.KEY_PROCESS, "rolling back transaction").Logger()
		if err := tx.Rollback(c); err != nil {
			if errors.Is(err, pgx.ErrTxClosed) {
				return
			}
			err = fmt.Errorf("failed rolling back transaction with error=%w", err)
			inOtel.RecordError(err, span)
			l.Error().Err(err).Msg(err.Error())
			return
		}
		l.Trace().Msg("rolled back transaction")
	}(logger)
	logger.Trace().Msg("initialized transaction")
	queries := svc.queries.WithTx(tx)

	logger = logger.With().Str(constants.KEY_PROCESS, "finding item").Logger()
	logger.Trace().Msg("finding item")
	if err = ops.exists(c, queries, itemId); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = ops.notFound
		}
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Trace().Msg("found item")

	logger = logger.With().Str(constants.KEY_PROCESS, "checking existing review").Logger()
	logger.Trace().Msg("checking existing review")
	count, err := ops.countByUser(c, queries, itemId, userId)
	if err != nil {
		err = fmt.Errorf("failed counting reviews with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	if count > 0 {
		err = inErrors.ErrReviewExists
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Trace().Msg("checked existing review")

	logger = logger.With().Str(constants.KEY_PROCESS, "inserting review").Logger()
	logger.Info().Msg("inserting review")
	_, err = ops.insert(c, queries, repository.InsertReviewParams{
		ItemID:  itemId,
		UserID:  userId,
		Rating:  int16(param.Rating),
		Comment: param.Comment,
	})
	switch {
	case isPgError(err, pgUniqueViolation):
		err = inErrors.ErrReviewExists
	case isPgError(err, pgForeignKeyViolation):
		err = inErrors.ErrUserNotFound
	case err != nil:
		err = fmt.Errorf("failed inserting review with error=%w", err)
	}
	if err != nil {
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Info().Msg("inserted review")

	logger = logger.With().Str(constants.KEY_PROCESS, "updating rating").Logger()
	logger.Trace().Msg("updating rating")
	if err = ops.updateRating(c, queries, itemId); err != nil {
		err = fmt.Errorf("failed updating rating with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Trace().Msg("updated rating")

	logger = logger.With().Str(constants.KEY_PROCESS, "committing transaction").Logger()
	logger.Trace().Msg("committing transaction")
	if err = tx.Commit(c); err != nil {
		err = fmt.Errorf("failed committing transaction with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Trace().Msg("committed transaction")
	return nil
}

func findCached[T any](c context.Context, client *redis.Client, key string) (T, error) {
	var v T
	if client == nil {
		return v, inErrors.ErrCacheMissed
	}
	b, err := client.Get(c, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return v, inErrors.ErrCacheMissed
	}
	if err != nil {
		return v, fmt.Errorf("failed getting cache with error=%w", err)
	}
	if err = json.Unmarshal(b, &v); err != nil {
		return v, fmt.Errorf("failed unmarshaling cache with error=%w", err)
	}
	return v, nil
}

func storeCached(c context.Context, client *redis.Client, key string, v interface{}, ttl time.Duration) {
	if client == nil {
		return
	}
	logger := zerolog.Ctx(c).With().Str(constants.KEY_PROCESS, "caching").Str(constants.KEY_CACHE_KEY, key).Logger()
	b, err := json.Marshal(v)
	if err != nil {
		logger.Warn().Err(err).Msg("failed marshaling for cache")
		return
	}
	if err = client.Set(c, key, b, ttl).Err(); err != nil {
		logger.Warn().Err(err).Msg("failed caching")
	}
}

func invalidate(c context.Context, client *redis.Client, key string) {
	if client == nil {
		return
	}
	if err := client.Del(c, key).Err(); err != nil {
		zerolog.Ctx(c).Warn().Err(err).Str(constants.KEY_CACHE_KEY, key).Msg(err.Error())
	}
}
