package main

import (
	"context"
	"flag"

	"github.com/redis/go-redis/v9"

	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/mooncakehq/mooncake/internal/app"
)

func main() {
	var configPath = flag.String("config", "config.toml", "Path to config file")
	var user = flag.String("user", "", "User email to mint or fetch a token for")
	var revoke = flag.Bool("revoke", false, "Revoke the user's token instead")
	flag.Parse()

	if *user == "" {
		logger.Error.Fatalf("Specify -user")
	}

	cfg, err := app.LoadConfig(*configPath)
	if err != nil {
		logger.Error.Fatalf("Failed to load config: %v", err)
	}

	opt, err := redis.ParseURL(cfg.Auth.RedisURL)
	if err != nil {
		logger.Error.Fatalf("Failed to parse redis URL: %v", err)
	}

	tm := app.NewTokenManager(redis.NewClient(opt))
	defer tm.Close()

	ctx := context.Background()

	if *revoke {
		if err := tm.RevokeUserToken(ctx, *user); err != nil {
			logger.Error.Fatalf("Failed to revoke token: %v", err)
		}
		logger.Info.Printf("Token for %s revoked", *user)
		return
	}

	info, created, err := tm.FetchOrCreateUserToken(ctx, *user)
	if err != nil {
		logger.Error.Fatalf("Failed to fetch token: %v", err)
	}

	if created {
		logger.Info.Printf("Minted new token for %s: %s", *user, info.Token)
	} else {
		logger.Info.Printf("Existing token for %s: %s (requests: %d)", *user, info.Token, info.RequestCount)
	}
}
