package server

import (
	"net/http"

	"StockProphet/internal/model"

	"github.com/gin-gonic/gin"
)

func (s *Server) signup(c *gin.Context) {
	var profile model.Profile
	if err := c.ShouldBindJSON(&profile); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	if err := s.validate.Struct(profile); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	sess, err := s.deps.Auth.Signup(c.Request.Context(), profile)
	if err != nil {
		respondError(c, authStatus(err), err)
		return
	}
	respond(c, http.StatusCreated, sess, "account created")
}

func (s *Server) login(c *gin.Context) {
	var creds model.Credentials
	if err := c.ShouldBindJSON(&creds); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	if err := s.validate.Struct(creds); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	sess, err := s.deps.Auth.Login(c.Request.Context(), creds)
	if err != nil {
		respondError(c, authStatus(err), err)
		return
	}
	respond(c, http.StatusOK, sess, "logged in")
}

func (s *Server) logout(c *gin.Context) {
	if err := s.deps.Auth.Logout(c.Request.Context(), c.GetString(ctxToken)); err != nil {
		respondError(c, authStatus(err), err)
		return
	}
	respond(c, http.StatusOK, nil, "logged out")
}

func (s *Server) me(c *gin.Context) {
	respond(c, http.StatusOK, currentUser(c), "")
}

type premiumRequest struct {
	Premium *bool `json:"premium" validate:"required"`
}

func (s *Server) setPremium(c *gin.Context) {
	var req premiumRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	if err := s.validate.Struct(req); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	user, err := s.deps.Auth.SetPremium(c.Request.Context(), c.GetString(ctxToken), *req.Premium)
	if err != nil {
		respondError(c, authStatus(err), err)
		return
	}
	respond(c, http.StatusOK, user, "settings updated")
}

func (s *Server) portfolio(c *gin.Context) {
	reports := s.deps.Predictions.Portfolio(c.Request.Context(), s.deps.Watchlist, s.deps.WatchlistMonths)
	respond(c, http.StatusOK, reports, "")
}
