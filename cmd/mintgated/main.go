// Command mintgated runs the x402-metered NFT mint gateway.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mintgate/mintgate"
	"github.com/mintgate/mintgate/config"
	"github.com/mintgate/mintgate/gateway"
	"github.com/mintgate/mintgate/ledger"
	"github.com/mintgate/mintgate/mint"
	"github.com/mintgate/mintgate/paygate"
	"github.com/mintgate/mintgate/sequencer"
)

func main() {
	log := slog.Default()

	if err := run(log); err != nil {
		log.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run(log *slog.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	ledgerClient, err := ledger.Dial(ctx, cfg.RPCURL, cfg.ContractAddress, cfg.PrivateKey)
	cancel()
	if err != nil {
		return err
	}
	defer ledgerClient.Close()

	log.Info("connected to ledger",
		"signer", ledgerClient.Address(),
		"contract", cfg.ContractAddress)

	seq := sequencer.New(ledgerClient,
		sequencer.WithQueueDepth(cfg.QueueDepth),
		sequencer.WithLogger(log))
	defer seq.Close()

	svc := mint.NewService(seq, ledgerClient, log)

	facilitator := paygate.NewFacilitatorClient(cfg.FacilitatorURL)
	gates, err := buildGates(facilitator, cfg)
	if err != nil {
		return err
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gateway.New(svc, gates, log).Engine()

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: engine,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("gateway listening", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		log.Info("shutting down", "signal", sig)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// buildGates creates one payment-gate middleware per priced route.
func buildGates(facilitator *paygate.FacilitatorClient, cfg *config.Config) (map[string]gin.HandlerFunc, error) {
	gates := make(map[string]gin.HandlerFunc)
	for _, route := range mintgate.DefaultRoutes() {
		requirement, err := route.Requirement(cfg.PayTo, cfg.PaymentAsset, cfg.PaymentAssetDecimals)
		if err != nil {
			return nil, err
		}
		gates[gateway.GateKey(route.Method, route.Path)] = paygate.Middleware(facilitator, requirement)
	}
	return gates, nil
}
