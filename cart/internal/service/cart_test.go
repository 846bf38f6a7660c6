package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alturino/tourism/cart/internal/cache"
	"github.com/Alturino/tourism/cart/pkg/event"
	"github.com/Alturino/tourism/cart/pkg/pricing"
	"github.com/Alturino/tourism/cart/pkg/request"
	inErrors "github.com/Alturino/tourism/internal/errors"
	"github.com/Alturino/tourism/internal/repository"
	"github.com/Alturino/tourism/internal/testutil"
)

var (
	travellerId   = uuid.MustParse("6f1a2b3c-0000-4000-8000-000000000001")
	otherUserId   = uuid.MustParse("6f1a2b3c-0000-4000-8000-000000000002")
	seaViewId     = uuid.MustParse("7a1b2c3d-0000-4000-8000-000000000001")
	closedHotelId = uuid.MustParse("7a1b2c3d-0000-4000-8000-000000000003")
	scooterId     = uuid.MustParse("8b1c2d3e-0000-4000-8000-000000000001")
	suvId         = uuid.MustParse("8b1c2d3e-0000-4000-8000-000000000002")
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []event.CartCheckedOut
}

func (p *recordingPublisher) PublishCartCheckedOut(c context.Context, ev event.CartCheckedOut) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return nil
}

func date(s string) request.Date {
	t, err := time.Parse(request.DATE_LAYOUT, s)
	if err != nil {
		panic(err)
	}
	return request.Date{Time: t}
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func setup(t *testing.T) (*CartService, *recordingPublisher) {
	c := context.Background()
	pool := testutil.NewPostgres(t, c, testutil.SeedPath())
	redisClient := testutil.NewRedis(t, c)
	publisher := &recordingPublisher{}
	svc := NewCartService(pool, repository.New(pool), redisClient, publisher)
	svc.now = func() time.Time { return time.UnixMilli(1704844800000) }
	return svc, publisher
}

func TestCartLifecycle(t *testing.T) {
	c := context.Background()
	svc, publisher := setup(t)

	t.Run("given new user should lazily create empty cart and cache it", func(t *testing.T) {
		cart, err := svc.GetCart(c, travellerId)
		require.NoError(t, err)
		assert.Equal(t, travellerId, cart.UserId)
		assert.Empty(t, cart.Items)
		assert.True(t, cart.Total.IsZero())

		exists, err := svc.cache.Exists(c, cache.CartKey(travellerId)).Result()
		require.NoError(t, err)
		assert.Equal(t, int64(1), exists)

		again, err := svc.GetCart(c, travellerId)
		require.NoError(t, err)
		assert.Equal(t, cart.ID, again.ID)
	})

	t.Run("given hotel for three nights should price from minimum room rate", func(t *testing.T) {
		cart, err := svc.AddItem(c, travellerId, request.AddItem{
			ItemType:  "hotel",
			ItemId:    seaViewId,
			StartDate: date("2024-01-10"),
			EndDate:   date("2024-01-13"),
		})
		require.NoError(t, err)
		require.Len(t, cart.Items, 1)
		assert.True(t, dec("6000").Equal(cart.Items[0].TotalPrice))
		assert.Equal(t, 1, cart.Items[0].Quantity)
		assert.Equal(t, "Sea View Residency", cart.Items[0].ItemDetails.Name)
		assert.Equal(t, "https://img.example.com/seaview.jpg", cart.Items[0].ItemDetails.Image)
		assert.Equal(t, "Panaji, Goa", cart.Items[0].ItemDetails.Location)
		assert.True(t, dec("6000").Equal(cart.Subtotal))
		assert.True(t, dec("1080").Equal(cart.Tax))
		assert.True(t, dec("7080").Equal(cart.Total))

		exists, err := svc.cache.Exists(c, cache.CartKey(travellerId)).Result()
		require.NoError(t, err)
		assert.Equal(t, int64(0), exists)
	})

	t.Run("given same hotel again should replace the line in place", func(t *testing.T) {
		cart, err := svc.AddItem(c, travellerId, request.AddItem{
			ItemType:  "hotel",
			ItemId:    seaViewId,
			StartDate: date("2024-01-10"),
			EndDate:   date("2024-01-13"),
			Quantity:  2,
		})
		require.NoError(t, err)
		require.Len(t, cart.Items, 1)
		assert.Equal(t, 2, cart.Items[0].Quantity)
		assert.True(t, dec("12000").Equal(cart.Subtotal))
	})

	t.Run("given vehicle for two days should append a second line", func(t *testing.T) {
		cart, err := svc.AddItem(c, travellerId, request.AddItem{
			ItemType:  "vehicle",
			ItemId:    scooterId,
			StartDate: date("2024-01-10"),
			EndDate:   date("2024-01-12"),
		})
		require.NoError(t, err)
		require.Len(t, cart.Items, 2)
		assert.Equal(t, "vehicle", cart.Items[1].ItemType)
		assert.True(t, dec("1000").Equal(cart.Items[1].TotalPrice))
		assert.True(t, dec("13000").Equal(cart.Subtotal))
		assert.True(t, dec("15340").Equal(cart.Total))
	})

	t.Run("given unknown or inactive items should return item not found", func(t *testing.T) {
		for _, param := range []request.AddItem{
			{ItemType: "hotel", ItemId: closedHotelId, StartDate: date("2024-01-10"), EndDate: date("2024-01-11")},
			{ItemType: "vehicle", ItemId: uuid.New(), StartDate: date("2024-01-10"), EndDate: date("2024-01-11")},
			{ItemType: "hotel", ItemId: scooterId, StartDate: date("2024-01-10"), EndDate: date("2024-01-11")},
		} {
			_, err := svc.AddItem(c, travellerId, param)
			assert.ErrorIs(t, err, inErrors.ErrItemNotFound)
		}
	})

	t.Run("given reversed dates should reject the item", func(t *testing.T) {
		_, err := svc.AddItem(c, travellerId, request.AddItem{
			ItemType:  "vehicle",
			ItemId:    suvId,
			StartDate: date("2024-01-12"),
			EndDate:   date("2024-01-10"),
		})
		assert.ErrorIs(t, err, pricing.ErrInvalidDateRange)
	})

	t.Run("given vehicle removal should drop only that line", func(t *testing.T) {
		cart, err := svc.RemoveItem(c, travellerId, request.RemoveItem{ItemType: "vehicle", ItemId: scooterId})
		require.NoError(t, err)
		require.Len(t, cart.Items, 1)
		assert.Equal(t, seaViewId, cart.Items[0].ItemId)
		assert.True(t, dec("12000").Equal(cart.Subtotal))
	})

	t.Run("given user without cart should not find a cart to mutate", func(t *testing.T) {
		_, err := svc.RemoveItem(c, otherUserId, request.RemoveItem{ItemType: "hotel", ItemId: seaViewId})
		assert.ErrorIs(t, err, inErrors.ErrCartNotFound)

		_, err = svc.ClearCart(c, otherUserId)
		assert.ErrorIs(t, err, inErrors.ErrCartNotFound)

		_, err = svc.Checkout(c, otherUserId, request.Checkout{})
		assert.ErrorIs(t, err, inErrors.ErrCartEmpty)
	})

	t.Run("given filled cart checkout should report pre-clear total and empty the cart", func(t *testing.T) {
		res, err := svc.Checkout(c, travellerId, request.Checkout{PaymentMethod: "upi"})
		require.NoError(t, err)
		assert.Equal(t, CHECKOUT_MESSAGE, res.Message)
		assert.Equal(t, "ORD-1704844800000", res.OrderId)
		assert.True(t, dec("14160").Equal(res.Total))

		require.Len(t, publisher.events, 1)
		ev := publisher.events[0]
		assert.Equal(t, event.TYPE_CART_CHECKED_OUT, ev.EventType)
		assert.Equal(t, travellerId, ev.UserID)
		assert.Equal(t, "upi", ev.PaymentMethod)
		require.Len(t, ev.Items, 1)
		assert.True(t, dec("12000").Equal(ev.Subtotal))

		cart, err := svc.GetCart(c, travellerId)
		require.NoError(t, err)
		assert.Empty(t, cart.Items)
		assert.True(t, cart.Total.IsZero())

		_, err = svc.Checkout(c, travellerId, request.Checkout{})
		assert.ErrorIs(t, err, inErrors.ErrCartEmpty)
	})
}

func TestConcurrentAddItem(t *testing.T) {
	c := context.Background()
	svc, _ := setup(t)

	before, err := svc.GetCart(c, otherUserId)
	require.NoError(t, err)

	writers := 8
	wg := sync.WaitGroup{}
	errs := make(chan error, writers)
	for i := 1; i <= writers; i++ {
		wg.Add(1)
		go func(quantity int) {
			defer wg.Done()
			_, err := svc.AddItem(c, otherUserId, request.AddItem{
				ItemType:  "vehicle",
				ItemId:    suvId,
				StartDate: date("2024-02-01"),
				EndDate:   date("2024-02-02"),
				Quantity:  quantity,
			})
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	after, err := svc.GetCart(c, otherUserId)
	require.NoError(t, err)
	require.Len(t, after.Items, 1)
	assert.Equal(t, before.Version+int64(writers), after.Version)
	expected := dec("3000").Mul(decimal.NewFromInt(int64(after.Items[0].Quantity)))
	assert.True(t, expected.Equal(after.Subtotal))
}
