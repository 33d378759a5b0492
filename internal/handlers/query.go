package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/fundstream/fundstream/internal/handlers/render"
	"github.com/fundstream/fundstream/internal/logger"
	"github.com/fundstream/fundstream/internal/models"
)

type accountResponse struct {
	AccountID    int64     `json:"accountId"`
	Username     string    `json:"username"`
	ProjectID    *int64    `json:"projectId,omitempty"`
	Balance      int64     `json:"balance"`
	FundingBlock bool      `json:"fundingBlock"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func toAccountResponse(a models.Account) accountResponse {
	return accountResponse{
		AccountID:    a.ID,
		Username:     a.Username,
		ProjectID:    a.ProjectID,
		Balance:      a.Balance.IntPart(),
		FundingBlock: a.FundingBlock,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}

func handleGetAccount(s accountQueryService, l logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		accountID, ok := pathID(w, r, "accountID")
		if !ok {
			return
		}

		found, err := s.GetAccount(r.Context(), accountID, false)
		if err != nil {
			renderLedgerError(w, l, err)
			return
		}

		render.JSON(w, toAccountResponse(found))
	})
}

// handleFindAccount resolves an account by ?username= or ?projectId=.
func handleFindAccount(s accountQueryService, l logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		username := r.URL.Query().Get("username")
		projectID := r.URL.Query().Get("projectId")

		switch {
		case username != "":
			found, err := s.GetAccountByUsername(r.Context(), username, false)
			if err != nil {
				renderLedgerError(w, l, err)
				return
			}
			render.JSON(w, toAccountResponse(found))

		case projectID != "":
			id, err := strconv.ParseInt(projectID, 10, 64)
			if err != nil || id <= 0 {
				render.ServiceError(w, "Invalid projectId", http.StatusBadRequest)
				return
			}
			found, err := s.GetAccountByProjectID(r.Context(), id, false)
			if err != nil {
				renderLedgerError(w, l, err)
				return
			}
			render.JSON(w, toAccountResponse(found))

		default:
			render.ServiceError(w, "Provide username or projectId", http.StatusBadRequest)
		}
	})
}

func handleGetTransaction(s transactionService, l logger.Logger) http.Handler {
	type response struct {
		TransactionID int64     `json:"transactionId"`
		FundingID     *int64    `json:"fundingId,omitempty"`
		SenderID      int64     `json:"senderId"`
		ReceiverID    int64     `json:"receiverId"`
		Amount        int64     `json:"amount"`
		Type          string    `json:"type"`
		CreatedAt     time.Time `json:"createdAt"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		transactionID, ok := pathID(w, r, "transactionID")
		if !ok {
			return
		}

		found, err := s.GetTransaction(r.Context(), transactionID)
		if err != nil {
			renderLedgerError(w, l, err)
			return
		}

		render.JSON(w, response{
			TransactionID: found.ID,
			FundingID:     found.FundingID,
			SenderID:      found.SenderID,
			ReceiverID:    found.ReceiverID,
			Amount:        found.Amount.IntPart(),
			Type:          found.Type,
			CreatedAt:     found.CreatedAt,
		})
	})
}
