package main

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	app "github.com/tradecore/matching-engine/internal/app/engine"
	orderbookv1 "github.com/tradecore/matching-engine/internal/domain/orderbook/v1"
	"github.com/tradecore/matching-engine/internal/usecase/orderbook"
	"github.com/tradecore/matching-engine/pkg/config"
	"github.com/tradecore/matching-engine/pkg/errors"
	"github.com/tradecore/matching-engine/pkg/logger"
	"github.com/tradecore/matching-engine/pkg/util"
)

var cfg *config.Config
var log *logger.Logger

func init() {
	cfg = &config.Config{}
	config.MustLoad(cfg)

	l, err := logger.NewLogger(logger.WithLoggingLevel(logger.Level(cfg.LogLevel)))
	if err != nil {
		panic(err)
	}

	log = l
}

func main() {
	defer log.Sync()

	ctx := util.WithRequestID(context.Background(), "")

	ob := orderbook.NewOrderbook()
	engine := app.NewEngine(ob, log, cfg)

	log.InfoContext(ctx, "Matching engine started", logger.Field{
		Key:   "pair",
		Value: cfg.Pair,
	})

	buy, err := orderbookv1.NewOrder(orderbookv1.SideBuy, decimal.NewFromInt(100), 10)
	if err != nil {
		log.ErrorContext(ctx, errors.TracerFromError(err))
		return
	}
	if err := engine.PlaceOrder(ctx, buy); err != nil {
		log.ErrorContext(ctx, errors.TracerFromError(err))
		return
	}
	fmt.Println(engine.OrderBookText())

	sell, err := orderbookv1.NewOrder(orderbookv1.SideSell, decimal.NewFromInt(99), 11)
	if err != nil {
		log.ErrorContext(ctx, errors.TracerFromError(err))
		return
	}
	if err := engine.PlaceOrder(ctx, sell); err != nil {
		log.ErrorContext(ctx, errors.TracerFromError(err))
		return
	}
	fmt.Println(engine.OrderBookText())
	fmt.Println(engine.TradingHistoryText())
}
