package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fundstream/fundstream/internal/apperrors"
	"github.com/fundstream/fundstream/internal/handlers/render"
	"github.com/fundstream/fundstream/internal/logger"
	"github.com/fundstream/fundstream/internal/service/account"
)

type paymentResponse struct {
	AccountID     int64     `json:"accountId"`
	BalanceBefore int64     `json:"balanceBefore"`
	Amount        int64     `json:"amount"`
	BalanceAfter  int64     `json:"balanceAfter"`
	TransactionID int64     `json:"transactionId"`
	ProcessedAt   time.Time `json:"processedAt"`
}

func toPaymentResponse(r account.PaymentResult) paymentResponse {
	return paymentResponse{
		AccountID:     r.AccountID,
		BalanceBefore: r.BalanceBefore.IntPart(),
		Amount:        r.Amount.IntPart(),
		BalanceAfter:  r.BalanceAfter.IntPart(),
		TransactionID: r.TransactionID,
		ProcessedAt:   r.ProcessedAt,
	}
}

func handleChargeByAccountID(s chargeService, l logger.Logger) http.Handler {
	type request struct {
		Amount decimal.Decimal `json:"amount"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		accountID, ok := pathID(w, r, "accountID")
		if !ok {
			return
		}

		req, err := render.BindAndValidate[request](w, r)
		if err != nil {
			return
		}
		if !validAmount(w, req.Amount) {
			return
		}

		result, err := s.ChargeByAccountID(r.Context(), accountID, req.Amount)
		if err != nil {
			renderLedgerError(w, l, err)
			return
		}

		render.JSON(w, toPaymentResponse(result))
	})
}

func handleChargeByUsername(s chargeService, l logger.Logger) http.Handler {
	type request struct {
		Username string          `json:"username" validate:"required"`
		Amount   decimal.Decimal `json:"amount"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req, err := render.BindAndValidate[request](w, r)
		if err != nil {
			return
		}
		if !validAmount(w, req.Amount) {
			return
		}

		result, err := s.ChargeByUsername(r.Context(), req.Username, req.Amount)
		if err != nil {
			renderLedgerError(w, l, err)
			return
		}

		render.JSON(w, toPaymentResponse(result))
	})
}

func handlePaymentByAccountID(s paymentService, l logger.Logger) http.Handler {
	type request struct {
		ProjectID int64           `json:"projectId" validate:"required,gt=0"`
		Amount    decimal.Decimal `json:"amount"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		accountID, ok := pathID(w, r, "accountID")
		if !ok {
			return
		}

		req, err := render.BindAndValidate[request](w, r)
		if err != nil {
			return
		}
		if !validAmount(w, req.Amount) {
			return
		}

		result, err := s.PayByAccountID(r.Context(), accountID, req.ProjectID, req.Amount)
		if err != nil {
			renderLedgerError(w, l, err)
			return
		}

		render.JSON(w, toPaymentResponse(result))
	})
}

func handlePaymentByUsername(s paymentService, l logger.Logger) http.Handler {
	type request struct {
		Username  string          `json:"username" validate:"required"`
		ProjectID int64           `json:"projectId" validate:"required,gt=0"`
		Amount    decimal.Decimal `json:"amount"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req, err := render.BindAndValidate[request](w, r)
		if err != nil {
			return
		}
		if !validAmount(w, req.Amount) {
			return
		}

		result, err := s.PayByUsername(r.Context(), req.Username, req.ProjectID, req.Amount)
		if err != nil {
			renderLedgerError(w, l, err)
			return
		}

		render.JSON(w, toPaymentResponse(result))
	})
}

func handleRefund(s refundService, l logger.Logger) http.Handler {
	type request struct {
		TransactionID int64 `json:"transactionId" validate:"required,gt=0"`
	}

	type response struct {
		AccountID             int64     `json:"accountId"`
		BalanceBefore         int64     `json:"balanceBefore"`
		Amount                int64     `json:"amount"`
		BalanceAfter          int64     `json:"balanceAfter"`
		RefundTransactionID   int64     `json:"refundTransactionId"`
		OriginalTransactionID int64     `json:"originalTransactionId"`
		ProcessedAt           time.Time `json:"processedAt"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		accountID, ok := pathID(w, r, "accountID")
		if !ok {
			return
		}

		req, err := render.BindAndValidate[request](w, r)
		if err != nil {
			return
		}

		result, err := s.Refund(r.Context(), accountID, req.TransactionID)
		if err != nil {
			renderLedgerError(w, l, err)
			return
		}

		render.JSON(w, response{
			AccountID:             result.AccountID,
			BalanceBefore:         result.BalanceBefore.IntPart(),
			Amount:                result.Amount.IntPart(),
			BalanceAfter:          result.BalanceAfter.IntPart(),
			RefundTransactionID:   result.RefundTransactionID,
			OriginalTransactionID: result.OriginalTransactionID,
			ProcessedAt:           result.ProcessedAt,
		})
	})
}

// pathID parses a positive integer path segment; renders the error response
// itself, the caller just returns on !ok.
func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id <= 0 {
		render.ServiceError(w, "Invalid "+name, http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

// validAmount enforces the upstream contract the ledger core relies on:
// amounts are positive whole currency units.
func validAmount(w http.ResponseWriter, amount decimal.Decimal) bool {
	if !amount.IsPositive() {
		render.ServiceError(w, "Amount must be positive", http.StatusBadRequest)
		return false
	}
	if !amount.Truncate(0).Equal(amount) {
		render.ServiceError(w, "Amount must be whole currency units", http.StatusBadRequest)
		return false
	}
	return true
}

func renderLedgerError(w http.ResponseWriter, l logger.Logger, err error) {
	switch {
	case errors.Is(err, apperrors.ErrAccountNotFound):
		render.ServiceError(w, "Account not found", http.StatusNotFound)
	case errors.Is(err, apperrors.ErrProjectNotFound):
		render.ServiceError(w, "Project not found", http.StatusNotFound)
	case errors.Is(err, apperrors.ErrTransactionNotFound):
		render.ServiceError(w, "Transaction not found", http.StatusNotFound)
	case errors.Is(err, apperrors.ErrFundingNotFound):
		render.ServiceError(w, "Funding not found", http.StatusNotFound)
	case errors.Is(err, apperrors.ErrFundingAlreadyCancelled):
		render.ServiceError(w, "Funding already cancelled", http.StatusConflict)
	case errors.Is(err, apperrors.ErrBalanceInsufficient):
		render.ServiceError(w, "Insufficient balance", http.StatusPaymentRequired)
	default:
		l.Error("Ledger operation failed", "error", err)
		render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
	}
}
