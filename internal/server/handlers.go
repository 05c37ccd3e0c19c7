package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/yanun0323/errors"

	"tradingapp/internal/adapter"
	"tradingapp/internal/model"
	"tradingapp/internal/settlement"
	"tradingapp/pkg/exception"
)

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) debugMetrics(c *gin.Context) {
	c.JSON(http.StatusOK, s.metrics.Snapshot())
}

func (s *Server) register(c *gin.Context) {
	var payload adapter.RegisterPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		s.abort(c, errors.Wrap(exception.ErrMalformedPayload, err.Error()))
		return
	}
	user, trader, err := s.identity.Register(c.Request.Context(), payload.Username)
	if err != nil {
		s.abort(c, err)
		return
	}
	c.JSON(http.StatusCreated, adapter.NewProfileView(user, trader, s.cfg.Currency, true))
}

func (s *Server) profile(c *gin.Context) {
	c.JSON(http.StatusOK, adapter.NewProfileView(currentUser(c), currentTrader(c), s.cfg.Currency, false))
}

func (s *Server) createOrder(c *gin.Context) {
	var payload adapter.OrderPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		s.abort(c, errors.Wrap(exception.ErrMalformedPayload, err.Error()))
		return
	}
	if payload.Quantity == nil {
		s.abort(c, errors.Wrap(exception.ErrMissingField, "quantity"))
		return
	}

	req, err := settlement.NewRequest(currentTrader(c).ID, payload.Stock, payload.OrderType, *payload.Quantity)
	if err != nil {
		s.abort(c, err)
		return
	}
	order, err := s.settlement.Settle(c.Request.Context(), req)
	if err != nil {
		s.abort(c, err)
		return
	}
	c.JSON(http.StatusCreated, adapter.NewOrderView(order, order.PricePerShare()))
}

func (s *Server) listOrders(c *gin.Context) {
	ctx := c.Request.Context()
	orders, err := s.settlement.Orders(ctx, currentTrader(c).ID)
	if err != nil {
		s.abort(c, err)
		return
	}
	prices, err := s.prices(c)
	if err != nil {
		s.abort(c, err)
		return
	}
	c.JSON(http.StatusOK, adapter.NewOrderViews(orders, prices))
}

func (s *Server) getOrder(c *gin.Context) {
	id, err := orderID(c)
	if err != nil {
		s.abort(c, err)
		return
	}
	order, err := s.settlement.Order(c.Request.Context(), currentTrader(c).ID, id)
	if err != nil {
		s.abort(c, err)
		return
	}
	s.renderOrder(c, order)
}

func (s *Server) remarkOrder(c *gin.Context) {
	id, err := orderID(c)
	if err != nil {
		s.abort(c, err)
		return
	}
	var payload adapter.RemarksPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		s.abort(c, errors.Wrap(exception.ErrMalformedPayload, err.Error()))
		return
	}
	if payload.Remarks == nil {
		s.abort(c, errors.Wrap(exception.ErrMissingField, "remarks"))
		return
	}
	order, err := s.settlement.Remark(c.Request.Context(), currentTrader(c).ID, id, *payload.Remarks)
	if err != nil {
		s.abort(c, err)
		return
	}
	s.renderOrder(c, order)
}

// renderOrder values the order at the live price of its stock, or at its
// execution price when the stock is gone.
func (s *Server) renderOrder(c *gin.Context, order model.Order) {
	price := order.PricePerShare()
	stock, err := s.catalog.Get(c.Request.Context(), order.StockName)
	switch {
	case err == nil:
		price = stock.Price
	case !errors.Is(err, exception.ErrUnknownStock):
		s.abort(c, err)
		return
	}
	c.JSON(http.StatusOK, adapter.NewOrderView(order, price))
}

func (s *Server) listStocks(c *gin.Context) {
	stocks, err := s.settlement.Stocks(c.Request.Context(), currentTrader(c).ID)
	if err != nil {
		s.abort(c, err)
		return
	}
	views := make([]adapter.StockView, 0, len(stocks))
	for _, sp := range stocks {
		views = append(views, adapter.NewStockView(sp.Stock, sp.Position))
	}
	c.JSON(http.StatusOK, views)
}

func (s *Server) getStock(c *gin.Context) {
	sp, err := s.settlement.Stock(c.Request.Context(), currentTrader(c).ID, c.Param("name"))
	if err != nil {
		s.abort(c, err)
		return
	}
	c.JSON(http.StatusOK, adapter.NewStockView(sp.Stock, sp.Position))
}

func (s *Server) prices(c *gin.Context) (map[string]decimal.Decimal, error) {
	stocks, err := s.catalog.List(c.Request.Context())
	if err != nil {
		return nil, err
	}
	prices := make(map[string]decimal.Decimal, len(stocks))
	for _, stock := range stocks {
		prices[stock.Name] = stock.Price
	}
	return prices, nil
}

func orderID(c *gin.Context) (uint64, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, exception.ErrUnknownOrder
	}
	return id, nil
}
