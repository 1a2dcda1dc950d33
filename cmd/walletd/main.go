package main

import (
	"context"
	"time"

	"github.com/stackboard/walletd/internal/handlers/cli"
	"github.com/stackboard/walletd/internal/infra/indexer/blockcypher"
	"github.com/stackboard/walletd/internal/infra/indexer/hiro"
	"github.com/stackboard/walletd/internal/infra/intent/rulebased"
	"github.com/stackboard/walletd/internal/infra/signer/connectrpc"
	redisstorage "github.com/stackboard/walletd/internal/infra/storage/redis"
	"github.com/stackboard/walletd/internal/intent"
	"github.com/stackboard/walletd/internal/network"
	"github.com/stackboard/walletd/internal/pkg/logger"
	"github.com/stackboard/walletd/internal/pkg/telemetry"
	httpx "github.com/stackboard/walletd/internal/pkg/transport/http"
	"github.com/stackboard/walletd/internal/pkg/transport/jsonrpc"
	"github.com/stackboard/walletd/internal/txdispatch"
	"github.com/stackboard/walletd/internal/walletsession"

	"github.com/google/uuid"
	"github.com/kelseyhightower/envconfig"
)

// serviceName identifies the daemon on telemetry exports.
const serviceName = "walletd"

// config is loaded from WALLETD_* environment variables.
type config struct {
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	TelemetryEnabled bool `envconfig:"TELEMETRY_ENABLED" default:"false"`

	RedisAddr     string `envconfig:"REDIS_ADDR"`
	RedisUsername string `envconfig:"REDIS_USERNAME"`
	RedisPassword string `envconfig:"REDIS_PASSWORD"`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`

	SignerEndpoint string `envconfig:"SIGNER_ENDPOINT" required:"true"`

	STXAddressMainnet string `envconfig:"STX_ADDRESS_MAINNET"`
	STXAddressTestnet string `envconfig:"STX_ADDRESS_TESTNET"`
	BTCAddressMainnet string `envconfig:"BTC_ADDRESS_MAINNET"`
	BTCAddressTestnet string `envconfig:"BTC_ADDRESS_TESTNET"`

	HTTPTimeout   time.Duration `envconfig:"HTTP_TIMEOUT" default:"5s"`
	SettlingDelay time.Duration `envconfig:"SETTLING_DELAY" default:"3s"`
}

// identity builds the wallet identity connected by the CLI commands.
func (c config) identity() walletsession.Identity {
	return walletsession.Identity{
		SessionID: uuid.NewString(),
		Profile: walletsession.Profile{
			STX: walletsession.AddressSet{
				Mainnet: c.STXAddressMainnet,
				Testnet: c.STXAddressTestnet,
			},
			BTC: walletsession.AddressSet{
				Mainnet: c.BTCAddressMainnet,
				Testnet: c.BTCAddressTestnet,
			},
		},
	}
}

func main() {
	ctx := context.Background()

	var cfg config
	envconfig.MustProcess(serviceName, &cfg)

	if cfg.TelemetryEnabled {
		shutdown, err := telemetry.Init(ctx, serviceName)
		if err != nil {
			panic(err)
		}
		defer shutdown(ctx)
	}

	if err := logger.Init(cfg.LogLevel); err != nil {
		panic(err)
	}
	defer logger.Sync()

	registryOpts := make([]network.Option, 0, 1)
	if cfg.RedisAddr != "" {
		redisClient, err := redisstorage.NewClient(ctx, cfg.RedisAddr, cfg.RedisUsername, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			logger.Fatal(ctx, "failed to connect to redis", "error", err)
		}
		defer redisClient.Close()

		registryOpts = append(registryOpts, network.WithSelectionStorage(redisClient))
	}

	registry := network.New(ctx, registryOpts...)

	indexer := hiro.NewClient(httpx.WithTimeout(cfg.HTTPTimeout))
	btcBalances := blockcypher.NewClient(
		blockcypher.WithHTTPOptions(httpx.WithTimeout(cfg.HTTPTimeout)),
	)

	sessions := walletsession.New(registry, indexer, btcBalances, indexer)

	signer := connectrpc.NewClient(jsonrpc.NewClient(
		cfg.SignerEndpoint,
		jsonrpc.WithTimeout(cfg.HTTPTimeout),
	))
	dispatcher := txdispatch.New(sessions, signer,
		txdispatch.WithSettlingDelay(cfg.SettlingDelay),
	)

	intents := intent.New(rulebased.NewResolver(), sessions)

	if err := cli.Run(ctx, registry, sessions, dispatcher, intents, cfg.identity()); err != nil {
		logger.Fatal(ctx, "walletd exited with error", "error", err)
	}
}
