// Package accountdelivery manages delivery layer of accounts.
package accountdelivery

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/go-fin/ledger-bank/internal/domain"
	"github.com/go-fin/ledger-bank/pkg/errorspkg"
	"github.com/go-fin/ledger-bank/pkg/web"
)

// Service provides service layer interface needed by account delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package accountdelivery
type Service interface {
	Create(ctx context.Context, holderName, initialBalance string) (domain.Account, error)
	Get(ctx context.Context, id int64) (domain.Account, error)
	List(ctx context.Context) ([]domain.Account, error)
	Delete(ctx context.Context, id int64) error
}

// Handler facilitates account delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns account handler.
func NewHandler(as Service) Handler {
	return Handler{service: as}
}

func bindingErrorMsg(err error) string {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		field := ve[0]
		return field.Field() + web.GetErrorMsg(field)
	}

	return err.Error()
}

type data struct {
	Account domain.Account `json:"account"`
}
type response struct {
	Data data `json:"data,omitempty"`
}

type createRequest struct {
	HolderName     string `json:"holder_name" binding:"required"`
	InitialBalance string `json:"initial_balance"`
}

// Create handles http request to create an account.
func (h *Handler) Create(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req createRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: bindingErrorMsg(err)})

		return
	}

	if req.InitialBalance == "" {
		req.InitialBalance = "0"
	}

	createdAccount, err := h.service.Create(ctx, req.HolderName, req.InitialBalance)
	if err != nil {
		switch err {
		case domain.ErrInvalidAmount, domain.ErrNegativeAmount:
			gctx.JSON(http.StatusBadRequest, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	res := response{
		Data: data{createdAccount},
	}

	gctx.JSON(http.StatusCreated, res)
}

type uriRequest struct {
	ID int64 `uri:"id" binding:"required,min=1"`
}

// Get handles http request to get an account.
func (h *Handler) Get(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req uriRequest
	if err := gctx.ShouldBindUri(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: bindingErrorMsg(err)})

		return
	}

	acc, err := h.service.Get(ctx, req.ID)
	if err != nil {
		if err == domain.ErrAccountNotFound {
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	res := response{
		Data: data{acc},
	}

	gctx.JSON(http.StatusOK, res)
}

type dataAccounts struct {
	Accounts []domain.Account `json:"accounts"`
}
type responseAccounts struct {
	Data dataAccounts `json:"data,omitempty"`
}

// List handles http request to list all accounts.
func (h *Handler) List(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	accounts, err := h.service.List(ctx)
	if err != nil {
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	res := responseAccounts{
		Data: dataAccounts{accounts},
	}

	gctx.JSON(http.StatusOK, res)
}

type dataDeleted struct {
	Message string `json:"message"`
}
type responseDeleted struct {
	Data dataDeleted `json:"data,omitempty"`
}

// Delete handles http request to delete an account.
// Deleting an absent account is confirmed all the same.
func (h *Handler) Delete(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req uriRequest
	if err := gctx.ShouldBindUri(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: bindingErrorMsg(err)})

		return
	}

	if err := h.service.Delete(ctx, req.ID); err != nil {
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	res := responseDeleted{
		Data: dataDeleted{Message: "account deleted"},
	}

	gctx.JSON(http.StatusOK, res)
}
