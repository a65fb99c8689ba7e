package web

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"telegram-lookup-bot/internal/domain"
	"telegram-lookup-bot/internal/domain/model"
)

type codeResponse struct {
	Code      string     `json:"code"`
	Amount    int64      `json:"amount"`
	CreatedBy int64      `json:"created_by"`
	CreatedAt time.Time  `json:"created_at"`
	UsedBy    *int64     `json:"used_by,omitempty"`
	UsedAt    *time.Time `json:"used_at,omitempty"`
}

func toCodeResponse(c *model.RedeemCode) codeResponse {
	return codeResponse{
		Code:      c.Code,
		Amount:    c.Amount,
		CreatedBy: c.CreatedBy,
		CreatedAt: c.CreatedAt,
		UsedBy:    c.UsedBy,
		UsedAt:    c.UsedAt,
	}
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Key string `json:"key"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if s.adminKey == "" || subtle.ConstantTimeCompare([]byte(req.Key), []byte(s.adminKey)) != 1 {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}
	if _, err := s.auth.Mint(w); err != nil {
		s.log.Error().Err(err).Msg("minting admin session failed")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListCodes(w http.ResponseWriter, r *http.Request) {
	limit := 100
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
		limit = n
	}
	codes, err := s.codeUC.List(r.Context(), limit)
	if err != nil {
		s.log.Error().Err(err).Msg("list codes failed")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	out := make([]codeResponse, 0, len(codes))
	for _, c := range codes {
		out = append(out, toCodeResponse(c))
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleIssueCode(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Amount int64 `json:"amount"`
		Issuer int64 `json:"issuer"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	rc, err := s.codeUC.Issue(r.Context(), req.Amount, req.Issuer)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidAmount) {
			http.Error(w, "amount must be a positive integer", http.StatusBadRequest)
			return
		}
		s.log.Error().Err(err).Msg("issue code failed")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	s.writeJSON(w, http.StatusCreated, toCodeResponse(rc))
}

func (s *Server) handleGetCredits(w http.ResponseWriter, r *http.Request) {
	tgID, err := parseUserID(r)
	if err != nil {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}
	balance, err := s.ledgerUC.GetBalance(r.Context(), tgID)
	if err != nil {
		s.log.Error().Err(err).Int64("tg_id", tgID).Msg("get balance failed")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]int64{"user_id": tgID, "credits": balance})
}

func (s *Server) handleAdjustCredits(w http.ResponseWriter, r *http.Request) {
	tgID, err := parseUserID(r)
	if err != nil {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}
	var req struct {
		Delta int64 `json:"delta"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	balance, err := s.ledgerUC.Adjust(r.Context(), tgID, req.Delta)
	if err != nil {
		s.log.Error().Err(err).Int64("tg_id", tgID).Msg("adjust balance failed")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]int64{"user_id": tgID, "credits": balance})
}

func parseUserID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error().Err(err).Msg("encoding response failed")
	}
}
