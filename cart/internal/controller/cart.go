package controller

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/Alturino/tourism/cart/internal/otel"
	"github.com/Alturino/tourism/cart/internal/service"
	"github.com/Alturino/tourism/cart/pkg/pricing"
	"github.com/Alturino/tourism/cart/pkg/request"
	"github.com/Alturino/tourism/cart/pkg/response"
	"github.com/Alturino/tourism/internal"
	"github.com/Alturino/tourism/internal/constants"
	inErrors "github.com/Alturino/tourism/internal/errors"
	inHttp "github.com/Alturino/tourism/internal/http"
	inOtel "github.com/Alturino/tourism/internal/otel"
)

type CartService interface {
	GetCart(c context.Context, userId uuid.UUID) (response.Cart, error)
	AddItem(c context.Context, userId uuid.UUID, param request.AddItem) (response.Cart, error)
	RemoveItem(c context.Context, userId uuid.UUID, param request.RemoveItem) (response.Cart, error)
	ClearCart(c context.Context, userId uuid.UUID) (response.Cart, error)
	Checkout(c context.Context, userId uuid.UUID, param request.Checkout) (response.Checkout, error)
}

var _ CartService = (*service.CartService)(nil)

type CartController struct {
	service  CartService
	validate *validator.Validate
}

func AttachCartController(mux *mux.Router, service CartService) {
	controller := CartController{
		service:  service,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}

	router := mux.PathPrefix("/cart").Subrouter()
	router.HandleFunc("", controller.GetCart).Methods(http.MethodGet)
	router.HandleFunc("/add", controller.AddItem).Methods(http.MethodPost)
	router.HandleFunc("/remove/{itemId}/{itemType}", controller.RemoveItem).Methods(http.MethodDelete)
	router.HandleFunc("/clear", controller.ClearCart).Methods(http.MethodDelete)
	router.HandleFunc("/checkout", controller.Checkout).Methods(http.MethodPost)
}

// statusFromError maps service errors to http status codes.
func statusFromError(err error) int {
	switch {
	case errors.Is(err, inErrors.ErrItemNotFound),
		errors.Is(err, pricing.ErrItemNotFound),
		errors.Is(err, inErrors.ErrCartNotFound):
		return http.StatusNotFound
	case errors.Is(err, inErrors.ErrCartEmpty),
		errors.Is(err, pricing.ErrInvalidDateRange),
		errors.Is(err, pricing.ErrInvalidQuantity),
		errors.Is(err, pricing.ErrInvalidPrice),
		errors.Is(err, pricing.ErrInvalidItemType):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrCartConflict):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func (t CartController) GetCart(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController GetCart")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "CartController GetCart").
		Logger()

	logger = logger.With().Str(constants.KEY_PROCESS, "getting userId from jwtToken").Logger()
	logger.Info().Msg("getting userId from jwtToken")
	userId, err := internal.UserIdFromJwtToken(c)
	if err != nil {
		err = fmt.Errorf("failed getting userId from jwtToken with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteFailed(c, w, http.StatusUnauthorized, err)
		return
	}
	logger = logger.With().Str(constants.KEY_USER_ID, userId.String()).Logger()
	logger.Info().Msgf("got userId=%s", userId.String())

	logger = logger.With().Str(constants.KEY_PROCESS, "getting cart").Logger()
	logger.Info().Msg("getting cart")
	c = logger.WithContext(c)
	cart, err := t.service.GetCart(c, userId)
	if err != nil {
		err = fmt.Errorf("failed getting cart with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteFailed(c, w, statusFromError(err), err)
		return
	}
	logger.Info().Msg("got cart")

	inHttp.WriteSuccess(c, w, http.StatusOK, "cart found", map[string]interface{}{"cart": cart})
}

func (t CartController) AddItem(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController AddItem")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "CartController AddItem").
		Logger()

	logger = logger.With().Str(constants.KEY_PROCESS, "decoding requestbody").Logger()
	logger.Info().Msg("decoding requestbody")
	reqBody := request.AddItem{}
	if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
		err = fmt.Errorf("failed decoding request body with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteFailed(c, w, http.StatusBadRequest, err)
		return
	}
	logger = logger.With().Any(constants.KEY_REQUEST_BODY, reqBody).Logger()
	logger.Info().Msg("decoded request body")

	logger = logger.With().Str(constants.KEY_PROCESS, "validating requestbody").Logger()
	logger.Info().Msg("validating request body")
	if err := t.validate.StructCtx(c, reqBody); err != nil {
		err = fmt.Errorf("failed validating request body with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteFailed(c, w, http.StatusBadRequest, err)
		return
	}
	logger.Info().Msg("validated request body")

	logger = logger.With().Str(constants.KEY_PROCESS, "getting userId from jwtToken").Logger()
	logger.Info().Msg("getting userId from jwtToken")
	userId, err := internal.UserIdFromJwtToken(c)
	if err != nil {
		err = fmt.Errorf("failed getting userId from jwtToken with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteFailed(c, w, http.StatusUnauthorized, err)
		return
	}
	logger = logger.With().Str(constants.KEY_USER_ID, userId.String()).Logger()
	logger.Info().Msgf("got userId=%s", userId.String())

	logger = logger.With().Str(constants.KEY_PROCESS, "adding item to cart").Logger()
	logger.Info().Msg("adding item to cart")
	c = logger.WithContext(c)
	cart, err := t.service.AddItem(c, userId, reqBody)
	if err != nil {
		err = fmt.Errorf("failed adding item to cart with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteFailed(c, w, statusFromError(err), err)
		return
	}
	logger.Info().Msg("added item to cart")

	inHttp.WriteSuccess(c, w, http.StatusOK, "Item added to cart", map[string]interface{}{"cart": cart})
}

func (t CartController) RemoveItem(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController RemoveItem")
	defer span.End()

	pathValues := mux.Vars(r)
	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "CartController RemoveItem").
		Any(constants.KEY_PATH_VALUES, pathValues).
		Logger()

	logger = logger.With().Str(constants.KEY_PROCESS, "parsing path values").Logger()
	logger.Info().Msg("parsing path values")
	itemId, err := uuid.Parse(pathValues["itemId"])
	if err != nil {
		err = fmt.Errorf("failed parsing itemId=%s with error=%w", pathValues["itemId"], err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteFailed(c, w, http.StatusBadRequest, err)
		return
	}
	param := request.RemoveItem{ItemType: pathValues["itemType"], ItemId: itemId}
	if err = t.validate.StructCtx(c, param); err != nil {
		err = fmt.Errorf("failed validating path values with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteFailed(c, w, http.StatusBadRequest, err)
		return
	}
	logger.Info().Msg("parsed path values")

	logger = logger.With().Str(constants.KEY_PROCESS, "getting userId from jwtToken").Logger()
	logger.Info().Msg("getting userId from jwtToken")
	userId, err := internal.UserIdFromJwtToken(c)
	if err != nil {
		err = fmt.Errorf("failed getting userId from jwtToken with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteFailed(c, w, http.StatusUnauthorized, err)
		return
	}
	logger = logger.With().Str(constants.KEY_USER_ID, userId.String()).Logger()

	logger = logger.With().Str(constants.KEY_PROCESS, "removing item from cart").Logger()
	logger.Info().Msg("removing item from cart")
	c = logger.WithContext(c)
	cart, err := t.service.RemoveItem(c, userId, param)
	if err != nil {
		err = fmt.Errorf("failed removing item from cart with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteFailed(c, w, statusFromError(err), err)
		return
	}
	logger.Info().Msg("removed item from cart")

	inHttp.WriteSuccess(c, w, http.StatusOK, "Item removed from cart", map[string]interface{}{"cart": cart})
}

func (t CartController) ClearCart(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController ClearCart")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "CartController ClearCart").
		Logger()

	logger = logger.With().Str(constants.KEY_PROCESS, "getting userId from jwtToken").Logger()
	logger.Info().Msg("getting userId from jwtToken")
	userId, err := internal.UserIdFromJwtToken(c)
	if err != nil {
		err = fmt.Errorf("failed getting userId from jwtToken with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteFailed(c, w, http.StatusUnauthorized, err)
		return
	}
	logger = logger.With().Str(constants.KEY_USER_ID, userId.String()).Logger()

	logger = logger.With().Str(constants.KEY_PROCESS, "clearing cart").Logger()
	logger.Info().Msg("clearing cart")
	c = logger.WithContext(c)
	cart, err := t.service.ClearCart(c, userId)
	if err != nil {
		err = fmt.Errorf("failed clearing cart with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteFailed(c, w, statusFromError(err), err)
		return
	}
	logger.Info().Msg("cleared cart")

	inHttp.WriteSuccess(c, w, http.StatusOK, "Cart cleared", map[string]interface{}{"cart": cart})
}

func (t CartController) Checkout(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController Checkout")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "CartController Checkout").
		Logger()

	logger = logger.With().Str(constants.KEY_PROCESS, "decoding requestbody").Logger()
	logger.Info().Msg("decoding requestbody")
	reqBody := request.Checkout{}
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
			err = fmt.Errorf("failed decoding request body with error=%w", err)
			inOtel.RecordError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			inHttp.WriteFailed(c, w, http.StatusBadRequest, err)
			return
		}
	}
	if err := t.validate.StructCtx(c, reqBody); err != nil {
		err = fmt.Errorf("failed validating request body with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteFailed(c, w, http.StatusBadRequest, err)
		return
	}
	logger.Info().Msg("decoded request body")

	logger = logger.With().Str(constants.KEY_PROCESS, "getting userId from jwtToken").Logger()
	logger.Info().Msg("getting userId from jwtToken")
	userId, err := internal.UserIdFromJwtToken(c)
	if err != nil {
		err = fmt.Errorf("failed getting userId from jwtToken with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteFailed(c, w, http.StatusUnauthorized, err)
		return
	}
	logger = logger.With().Str(constants.KEY_USER_ID, userId.String()).Logger()

	logger = logger.With().Str(constants.KEY_PROCESS, "checking out cart").Logger()
	logger.Info().Msg("checking out cart")
	c = logger.WithContext(c)
	checkout, err := t.service.Checkout(c, userId, reqBody)
	if err != nil {
		err = fmt.Errorf("failed checking out cart with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteFailed(c, w, statusFromError(err), err)
		return
	}
	logger.Info().Str(constants.KEY_ORDER_ID, checkout.OrderId).Msg("checked out cart")

	inHttp.WriteSuccess(c, w, http.StatusOK, checkout.Message, map[string]interface{}{
		"orderId": checkout.OrderId,
		"total":   checkout.Total,
	})
}
