package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"

	"github.com/Alturino/tourism/cart/internal/cache"
	cartEvent "github.com/Alturino/tourism/cart/internal/event"
	"github.com/Alturino/tourism/cart/internal/otel"
	"github.com/Alturino/tourism/cart/pkg/event"
	"github.com/Alturino/tourism/cart/pkg/pricing"
	"github.com/Alturino/tourism/cart/pkg/request"
	"github.com/Alturino/tourism/cart/pkg/response"
	"github.com/Alturino/tourism/internal/constants"
	inErrors "github.com/Alturino/tourism/internal/errors"
	inOtel "github.com/Alturino/tourism/internal/otel"
	"github.com/Alturino/tourism/internal/repository"
)

const CHECKOUT_MESSAGE = "Payment processed successfully"

var ErrCartConflict = errors.New("cart was modified concurrently")

type CartService struct {
	pool      *pgxpool.Pool
	queries   *repository.Queries
	cache     *redis.Client
	publisher cartEvent.CheckoutPublisher
	checkouts metric.Int64Counter
	now       func() time.Time
}

func NewCartService(
	pool *pgxpool.Pool,
	queries *repository.Queries,
	cache *redis.Client,
	publisher cartEvent.CheckoutPublisher,
) *CartService {
	checkouts, err := otel.Meter.Int64Counter(
		"cart.checkouts",
		metric.WithDescription("number of carts checked out"),
	)
	if err != nil {
		checkouts = noop.Int64Counter{}
	}
	return &CartService{
		pool:      pool,
		queries:   queries,
		cache:     cache,
		publisher: publisher,
		checkouts: checkouts,
		now:       time.Now,
	}
}

// GetCart returns the cart of userId, creating an empty one on first access.
func (svc *CartService) GetCart(c context.Context, userId uuid.UUID) (response.Cart, error) {
	c, span := otel.Tracer.Start(c, "CartService GetCart")
	defer span.End()

	cacheKey := cache.CartKey(userId)
	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "CartService GetCart").
		Str(constants.KEY_USER_ID, userId.String()).
		Str(constants.KEY_CACHE_KEY, cacheKey).
		Logger()

	logger = logger.With().Str(constants.KEY_PROCESS, "finding cart in cache").Logger()
	logger.Trace().Msg("finding cart in cache")
	cached, err := svc.findCachedCart(c, cacheKey)
	if err == nil {
		logger.Trace().Msg("found cart in cache")
		return cached, nil
	}
	if !errors.Is(err, inErrors.ErrCacheMissed) {
		logger.Warn().Err(err).Msg(err.Error())
	}
	logger.Trace().Msg("cart not found in cache")

	logger = logger.With().Str(constants.KEY_PROCESS, "finding cart in database").Logger()
	logger.Info().Msg("finding cart in database")
	row, err := svc.queries.FindCartByUserId(c, userId)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		err = fmt.Errorf("failed finding cart with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	if errors.Is(err, pgx.ErrNoRows) {
		logger.Info().Msg("cart not found, creating empty cart")
		row, err = svc.queries.InsertCart(c, userId)
		if err != nil {
			err = fmt.Errorf("failed inserting cart with error=%w", err)
			inOtel.RecordError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return response.Cart{}, err
		}
		logger.Info().Msg("created empty cart")
	}
	logger.Info().Msg("found cart in database")

	cart, err := cartFromRow(row)
	if err != nil {
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}

	if err = verifyStoredTotals(row, cart); err != nil {
		logger.Warn().Err(err).Msg("repairing stored cart totals")
		cart, err = svc.mutateCart(c, userId, false, func(*pricing.Cart) error { return nil })
		if err != nil {
			err = fmt.Errorf("failed repairing cart totals with error=%w", err)
			inOtel.RecordError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return response.Cart{}, err
		}
	}

	res := response.FromCart(cart)
	svc.cacheCart(c, cacheKey, res)
	return res, nil
}

func (svc *CartService) AddItem(
	c context.Context,
	userId uuid.UUID,
	param request.AddItem,
) (response.Cart, error) {
	c, span := otel.Tracer.Start(c, "CartService AddItem")
	defer span.End()

	span.SetAttributes(
		attribute.String(constants.KEY_ITEM_TYPE, param.ItemType),
		attribute.String(constants.KEY_ITEM_ID, param.ItemId.String()),
	)
	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "CartService AddItem").
		Str(constants.KEY_USER_ID, userId.String()).
		Str(constants.KEY_ITEM_TYPE, param.ItemType).
		Str(constants.KEY_ITEM_ID, param.ItemId.String()).
		Logger()

	itemType, err := pricing.ParseItemType(param.ItemType)
	if err != nil {
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}

	logger = logger.With().Str(constants.KEY_PROCESS, "resolving catalog item").Logger()
	logger.Info().Msg("resolving catalog item")
	c = logger.WithContext(c)
	pricePerDay, details, err := svc.resolveItem(c, itemType, param.ItemId)
	if err != nil {
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	logger.Info().Msg("resolved catalog item")

	logger = logger.With().Str(constants.KEY_PROCESS, "pricing line item").Logger()
	logger.Trace().Msg("pricing line item")
	item, err := pricing.NewLineItem(
		itemType,
		param.ItemId,
		pricePerDay,
		param.StartDate.Time,
		param.EndDate.Time,
		param.QuantityOrDefault(),
		details,
	)
	if err != nil {
		err = fmt.Errorf("failed pricing line item with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	logger.Trace().Str(constants.KEY_CART_ITEM, item.TotalPrice.String()).Msg("priced line item")

	logger = logger.With().Str(constants.KEY_PROCESS, "upserting line item").Logger()
	logger.Info().Msg("upserting line item")
	c = logger.WithContext(c)
	cart, err := svc.mutateCart(c, userId, true, func(cart *pricing.Cart) error {
		cart.Upsert(item)
		return nil
	})
	if err != nil {
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	logger.Info().Msg("upserted line item")

	return response.FromCart(cart), nil
}

func (svc *CartService) RemoveItem(
	c context.Context,
	userId uuid.UUID,
	param request.RemoveItem,
) (response.Cart, error) {
	c, span := otel.Tracer.Start(c, "CartService RemoveItem")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "CartService RemoveItem").
		Str(constants.KEY_USER_ID, userId.String()).
		Str(constants.KEY_ITEM_TYPE, param.ItemType).
		Str(constants.KEY_ITEM_ID, param.ItemId.String()).
		Logger()

	itemType, err := pricing.ParseItemType(param.ItemType)
	if err != nil {
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}

	logger = logger.With().Str(constants.KEY_PROCESS, "removing line item").Logger()
	logger.Info().Msg("removing line item")
	c = logger.WithContext(c)
	cart, err := svc.mutateCart(c, userId, false, func(cart *pricing.Cart) error {
		removed := cart.Remove(param.ItemId, itemType)
		logger.Info().Int("removed", removed).Msg("removed matching lines")
		return nil
	})
	if err != nil {
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	logger.Info().Msg("removed line item")

	return response.FromCart(cart), nil
}

func (svc *CartService) ClearCart(c context.Context, userId uuid.UUID) (response.Cart, error) {
	c, span := otel.Tracer.Start(c, "CartService ClearCart")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "CartService ClearCart").
		Str(constants.KEY_USER_ID, userId.String()).
		Str(constants.KEY_PROCESS, "clearing cart").
		Logger()

	logger.Info().Msg("clearing cart")
	c = logger.WithContext(c)
	cart, err := svc.mutateCart(c, userId, false, func(cart *pricing.Cart) error {
		cart.Clear()
		return nil
	})
	if err != nil {
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	logger.Info().Msg("cleared cart")

	return response.FromCart(cart), nil
}

// Checkout empties the cart and reports the total it had before clearing.
func (svc *CartService) Checkout(
	c context.Context,
	userId uuid.UUID,
	param request.Checkout,
) (response.Checkout, error) {
	c, span := otel.Tracer.Start(c, "CartService Checkout")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "CartService Checkout").
		Str(constants.KEY_USER_ID, userId.String()).
		Logger()

	now := svc.now().UTC()
	orderId := "ORD-" + strconv.FormatInt(now.UnixMilli(), 10)
	logger = logger.With().Str(constants.KEY_ORDER_ID, orderId).Logger()

	var checkedOut event.CartCheckedOut
	logger = logger.With().Str(constants.KEY_PROCESS, "checking out cart").Logger()
	logger.Info().Msg("checking out cart")
	c = logger.WithContext(c)
	_, err := svc.mutateCart(c, userId, false, func(cart *pricing.Cart) error {
		if cart.IsEmpty() {
			return inErrors.ErrCartEmpty
		}
		checkedOut = event.CartCheckedOut{
			EventType:     event.TYPE_CART_CHECKED_OUT,
			OrderID:       orderId,
			CartID:        cart.ID,
			UserID:        cart.UserID,
			PaymentMethod: param.PaymentMethod,
			Items:         checkedOutItems(cart.Items()),
			Subtotal:      cart.Subtotal().Round(response.MONEY_PLACES),
			Tax:           cart.Tax().Round(response.MONEY_PLACES),
			Total:         cart.Total().Round(response.MONEY_PLACES),
			CheckedOutAt:  now,
		}
		cart.Clear()
		return nil
	})
	if errors.Is(err, inErrors.ErrCartNotFound) {
		err = inErrors.ErrCartEmpty
	}
	if err != nil {
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Checkout{}, err
	}
	logger.Info().Msg("checked out cart")

	svc.checkouts.Add(c, 1, metric.WithAttributes(attribute.String("payment_method", param.PaymentMethod)))

	if svc.publisher != nil {
		logger = logger.With().Str(constants.KEY_PROCESS, "publishing checkout event").Logger()
		logger.Info().Msg("publishing checkout event")
		if err := svc.publisher.PublishCartCheckedOut(c, checkedOut); err != nil {
			err = fmt.Errorf("failed publishing checkout event with error=%w", err)
			inOtel.RecordError(err, span)
			logger.Error().Err(err).Msg(err.Error())
		} else {
			logger.Info().Msg("published checkout event")
		}
	}

	return response.Checkout{
		Message: CHECKOUT_MESSAGE,
		OrderId: orderId,
		Total:   checkedOut.Total,
	}, nil
}

// mutateCart applies mutate to the locked cart of userId and persists the
// recomputed totals in one transaction. Without createIfMissing a missing cart
// is ErrCartNotFound.
func (svc *CartService) mutateCart(
	c context.Context,
	userId uuid.UUID,
	createIfMissing bool,
	mutate func(cart *pricing.Cart) error,
) (*pricing.Cart, error) {
	c, span := otel.Tracer.Start(c, "CartService mutateCart")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "CartService mutateCart").
		Str(constants.KEY_USER_ID, userId.String()).
		Logger()

	logger = logger.With().Str(constants.KEY_PROCESS, "initializing transaction").Logger()
	logger.Trace().Msg("initializing transaction")
	tx, err := svc.pool.BeginTx(c, pgx.TxOptions{})
	if err != nil {
		err = fmt.Errorf("failed initializing transaction with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
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

	logger = logger.With().Str(constants.KEY_PROCESS, "locking cart").Logger()
	logger.Trace().Msg("locking cart")
	row, err := queries.FindCartByUserIdForUpdate(c, userId)
	if errors.Is(err, pgx.ErrNoRows) {
		if !createIfMissing {
			err = fmt.Errorf("failed locking cart with error=%w", inErrors.ErrCartNotFound)
			inOtel.RecordError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return nil, inErrors.ErrCartNotFound
		}
		logger.Info().Msg("cart not found, creating empty cart")
		row, err = queries.InsertCart(c, userId)
	}
	if err != nil {
		err = fmt.Errorf("failed locking cart with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	logger.Trace().Msg("locked cart")

	cart, err := cartFromRow(row)
	if err != nil {
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	if err := verifyStoredTotals(row, cart); err != nil {
		logger.Warn().Err(err).Msg("overwriting stored cart totals")
	}

	if err = mutate(cart); err != nil {
		return nil, err
	}

	logger = logger.With().Str(constants.KEY_PROCESS, "saving cart").Logger()
	logger.Trace().Msg("saving cart")
	params, err := updateParamsFromCart(cart)
	if err != nil {
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	saved, err := queries.UpdateCart(c, params)
	if errors.Is(err, pgx.ErrNoRows) {
		err = ErrCartConflict
	}
	if err != nil {
		err = fmt.Errorf("failed saving cart with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	cart.Version = saved.Version
	cart.UpdatedAt = saved.UpdatedAt.Time
	logger.Trace().Msg("saved cart")

	logger = logger.With().Str(constants.KEY_PROCESS, "committing transaction").Logger()
	logger.Trace().Msg("committing transaction")
	if err = tx.Commit(c); err != nil {
		err = fmt.Errorf("failed committing transaction with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	logger.Trace().Msg("committed transaction")

	svc.invalidateCart(c, userId)
	return cart, nil
}

func (svc *CartService) resolveItem(
	c context.Context,
	itemType pricing.ItemType,
	itemId uuid.UUID,
) (*decimal.Decimal, pricing.Details, error) {
	switch itemType {
	case pricing.ItemTypeHotel:
		hotel, err := svc.queries.FindHotelById(c, itemId)
		if errors.Is(err, pgx.ErrNoRows) || (err == nil && !hotel.IsActive) {
			return nil, pricing.Details{}, inErrors.ErrItemNotFound
		}
		if err != nil {
			return nil, pricing.Details{}, fmt.Errorf("failed finding hotel with error=%w", err)
		}
		price := repository.DecimalFromNumeric(hotel.PriceMin)
		return &price, hotelLineDetails(hotel), nil
	case pricing.ItemTypeVehicle:
		vehicle, err := svc.queries.FindVehicleById(c, itemId)
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, pricing.Details{}, inErrors.ErrItemNotFound
		}
		if err != nil {
			return nil, pricing.Details{}, fmt.Errorf("failed finding vehicle with error=%w", err)
		}
		price := repository.DecimalFromNumeric(vehicle.PricePerDay)
		return &price, vehicleLineDetails(vehicle), nil
	}
	return nil, pricing.Details{}, pricing.ErrInvalidItemType
}

func (svc *CartService) findCachedCart(c context.Context, key string) (response.Cart, error) {
	if svc.cache == nil {
		return response.Cart{}, inErrors.ErrCacheMissed
	}
	b, err := svc.cache.Get(c, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return response.Cart{}, inErrors.ErrCacheMissed
	}
	if err != nil {
		return response.Cart{}, fmt.Errorf("failed getting cache with error=%w", err)
	}
	cart := response.Cart{}
	if err = json.Unmarshal(b, &cart); err != nil {
		return response.Cart{}, fmt.Errorf("failed unmarshaling cached cart with error=%w", err)
	}
	return cart, nil
}

func (svc *CartService) cacheCart(c context.Context, key string, cart response.Cart) {
	if svc.cache == nil {
		return
	}
	logger := zerolog.Ctx(c).With().Str(constants.KEY_PROCESS, "caching cart").Logger()
	b, err := json.Marshal(cart)
	if err != nil {
		logger.Warn().Err(err).Msg("failed marshaling cart for cache")
		return
	}
	if err = svc.cache.Set(c, key, b, cache.CART_TTL).Err(); err != nil {
		logger.Warn().Err(err).Msg("failed caching cart")
	}
}

func (svc *CartService) invalidateCart(c context.Context, userId uuid.UUID) {
	if svc.cache == nil {
		return
	}
	if err := svc.cache.Del(c, cache.CartKey(userId)).Err(); err != nil {
		zerolog.Ctx(c).Warn().Err(err).Str(constants.KEY_PROCESS, "invalidating cart cache").Msg(err.Error())
	}
}
