package handlers

import (
	"context"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/fundstream/fundstream/internal/handlers/middleware"
	"github.com/fundstream/fundstream/internal/logger"
	"github.com/fundstream/fundstream/internal/models"
	"github.com/fundstream/fundstream/internal/service/account"
)

// chain applies middlewares in the given order: m1(m2(...(h)))
func chain(h http.Handler, mds ...func(next http.Handler) http.Handler) http.Handler {
	for i := len(mds) - 1; i >= 0; i-- {
		h = mds[i](h)
	}
	return h
}

func NewRouter(
	chargeService chargeService,
	paymentService paymentService,
	refundService refundService,
	queryService accountQueryService,
	transactionService transactionService,
	logger logger.Logger,
) http.Handler {
	api := http.NewServeMux()

	api.Handle("POST /accounts/{accountID}/charge", handleChargeByAccountID(chargeService, logger))
	api.Handle("POST /accounts/charge", handleChargeByUsername(chargeService, logger))
	api.Handle("POST /accounts/{accountID}/payment", handlePaymentByAccountID(paymentService, logger))
	api.Handle("POST /accounts/payment", handlePaymentByUsername(paymentService, logger))
	api.Handle("POST /accounts/{accountID}/refund", handleRefund(refundService, logger))
	api.Handle("GET /accounts/{accountID}", handleGetAccount(queryService, logger))
	api.Handle("GET /accounts", handleFindAccount(queryService, logger))
	api.Handle("GET /transactions/{transactionID}", handleGetTransaction(transactionService, logger))

	root := http.NewServeMux()
	root.Handle("/api/", http.StripPrefix("/api", api))

	handler := chain(root,
		middleware.RequestIDMiddleware(),
		middleware.LoggerMiddleware(logger),
	)

	return handler
}

type chargeService interface {
	// Credit an account from outside the ledger.
	// Has to return apperrors.ErrAccountNotFound for unknown accounts.
	ChargeByAccountID(ctx context.Context, accountID int64, amount decimal.Decimal) (account.PaymentResult, error)
	ChargeByUsername(ctx context.Context, username string, amount decimal.Decimal) (account.PaymentResult, error)
}

type paymentService interface {
	// Pay amount from the backer's account into the project.
	// Has to return apperrors.ErrProjectNotFound / ErrAccountNotFound for
	// unknown parties and ErrBalanceInsufficient when the payer is short.
	PayByAccountID(ctx context.Context, accountID int64, projectID int64, amount decimal.Decimal) (account.PaymentResult, error)
	PayByUsername(ctx context.Context, username string, projectID int64, amount decimal.Decimal) (account.PaymentResult, error)
}

type refundService interface {
	// Reverse a prior payment in full.
	// Has to return apperrors.ErrFundingAlreadyCancelled on a second refund.
	Refund(ctx context.Context, payerAccountID int64, transactionID int64) (account.RefundResult, error)
}

type accountQueryService interface {
	GetAccount(ctx context.Context, id int64, forUpdate bool) (models.Account, error)
	GetAccountByUsername(ctx context.Context, username string, forUpdate bool) (models.Account, error)
	GetAccountByProjectID(ctx context.Context, projectID int64, forUpdate bool) (models.Account, error)
}

type transactionService interface {
	GetTransaction(ctx context.Context, id int64) (models.Transaction, error)
}
