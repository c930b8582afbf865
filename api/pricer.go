package api

import (
	"errors"
	"net/http"

	"github.com/banachtech/digicall/bsm"
	"github.com/banachtech/digicall/logging"
	"github.com/banachtech/digicall/payoff"
	"github.com/banachtech/digicall/pricer"
	"github.com/gin-gonic/gin"
)

type pricerRequest struct {
	UnderlyingPrice   float64 `json:"underlying_price" binding:"required,gt=0"`
	StrikePrice       float64 `json:"strike_price" binding:"required,gt=0"`
	BarrierPrice      float64 `json:"barrier_price" binding:"required,gt=0"`
	ImpliedVolatility float64 `json:"implied_volatility" binding:"gte=0"`
	TimeToMaturity    float64 `json:"time_to_maturity" binding:"gte=0"`
	RiskFreeRate      float64 `json:"risk_free_rate"`
	Method            string  `json:"method" binding:"required"`
}

func (req pricerRequest) digital() payoff.Digital {
	return payoff.NewDigital(req.UnderlyingPrice, req.StrikePrice, req.BarrierPrice, req.ImpliedVolatility, req.TimeToMaturity, req.RiskFreeRate)
}

func (server *Server) pricer(c *gin.Context) {
	var req pricerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse(err))
		return
	}

	method, err := pricer.ParseMethod(req.Method)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse(err))
		return
	}

	id := c.GetString(requestIDKey)
	q, err := server.quoter.Quote(req.digital(), method)
	if err != nil {
		logger := logging.WithRequestID(server.logger, id)
		logger.Warn().Err(err).Str("method", req.Method).Msg("pricing failed")
		c.AbortWithStatusJSON(statusFor(err), errorResponse(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": id, "contract": req, "quote": q})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, pricer.ErrInvalidMethod), errors.Is(err, payoff.ErrInvalidParameter):
		return http.StatusBadRequest
	case errors.Is(err, bsm.ErrDegenerate):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
