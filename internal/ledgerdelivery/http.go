// Package ledgerdelivery manages delivery layer of balance mutations.
package ledgerdelivery

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

// Service provides service layer interface needed by ledger delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package ledgerdelivery
type Service interface {
	Deposit(ctx context.Context, accountID int64, amount string) (domain.Account, error)
	Withdraw(ctx context.Context, accountID int64, amount string) (domain.Account, error)
	TransferFunds(ctx context.Context, arg domain.TransferFundsParams) (domain.TransferTxResult, error)
	ListTransactions(ctx context.Context, accountID int64) ([]domain.Transaction, error)
}

// Handler facilitates ledger delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns ledger handler.
func NewHandler(ls Service) Handler {
	return Handler{service: ls}
}

func bindingErrorMsg(err error) string {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		field := ve[0]
		return field.Field() + web.GetErrorMsg(field)
	}

	return err.Error()
}

func statusFromError(err error) int {
	switch err {
	case domain.ErrAccountNotFound:
		return http.StatusNotFound
	case domain.ErrInvalidAmount, domain.ErrNegativeAmount, domain.ErrInsufficientBalance:
		return http.StatusBadRequest
	}

	return http.StatusInternalServerError
}

type uriRequest struct {
	ID int64 `uri:"id" binding:"required,min=1"`
}

type amountRequest struct {
	Amount string `json:"amount" binding:"required"`
}

type data struct {
	Account domain.Account `json:"account"`
}
type response struct {
	Data data `json:"data,omitempty"`
}

// Deposit handles http request to deposit money into an account.
func (h *Handler) Deposit(gctx *gin.Context) {
	h.mutateBalance(gctx, h.service.Deposit)
}

// Withdraw handles http request to withdraw money from an account.
func (h *Handler) Withdraw(gctx *gin.Context) {
	h.mutateBalance(gctx, h.service.Withdraw)
}

func (h *Handler) mutateBalance(gctx *gin.Context, mutate func(context.Context, int64, string) (domain.Account, error)) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var uri uriRequest
	if err := gctx.ShouldBindUri(&uri); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: bindingErrorMsg(err)})

		return
	}

	var req amountRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: bindingErrorMsg(err)})

		return
	}

	account, err := mutate(ctx, uri.ID, req.Amount)
	if err != nil {
		l.Info().Err(err).Send()

		status := statusFromError(err)
		if status == http.StatusInternalServerError {
			err = errorspkg.ErrInternal
		}

		gctx.JSON(status, web.Error(err))

		return
	}

	res := response{
		Data: data{account},
	}

	gctx.JSON(http.StatusOK, res)
}

type transferRequest struct {
	FromAccountID int64  `json:"from_account_id" binding:"required,min=1"`
	ToAccountID   int64  `json:"to_account_id" binding:"required,min=1"`
	Amount        string `json:"amount" binding:"required"`
}

type dataTransfer struct {
	Transfer domain.TransferTxResult `json:"transfer"`
}
type responseTransfer struct {
	Data dataTransfer `json:"data,omitempty"`
}

// Transfer handles http request to transfer money between two accounts.
func (h *Handler) Transfer(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req transferRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: bindingErrorMsg(err)})

		return
	}

	arg := domain.TransferFundsParams{
		FromAccountID: req.FromAccountID,
		ToAccountID:   req.ToAccountID,
		Amount:        req.Amount,
	}

	result, err := h.service.TransferFunds(ctx, arg)
	if err != nil {
		l.Info().Err(err).Send()

		status := statusFromError(err)
		if status == http.StatusInternalServerError {
			err = errorspkg.ErrInternal
		}

		gctx.JSON(status, web.Error(err))

		return
	}

	res := responseTransfer{
		Data: dataTransfer{result},
	}

	gctx.JSON(http.StatusOK, res)
}

type dataTransactions struct {
	Transactions []domain.Transaction `json:"transactions"`
}
type responseTransactions struct {
	Data dataTransactions `json:"data,omitempty"`
}

// ListTransactions handles http request to list an account's transactions.
func (h *Handler) ListTransactions(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var uri uriRequest
	if err := gctx.ShouldBindUri(&uri); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: bindingErrorMsg(err)})

		return
	}

	transactions, err := h.service.ListTransactions(ctx, uri.ID)
	if err != nil {
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	res := responseTransactions{
		Data: dataTransactions{transactions},
	}

	gctx.JSON(http.StatusOK, res)
}
