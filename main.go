package main

import (
	"fmt"
	"log"

	"goshortly/auth"
	"goshortly/cache"
	"goshortly/cache/redis"
	"goshortly/codegen"
	"goshortly/config"
	"goshortly/logger"
	"goshortly/repository"
	"goshortly/server"
	"goshortly/shortener"
	"goshortly/tokens"
)

func main() {
	zaplogger, err := logger.Init()
	if err != nil {
		log.Fatalf("failed to initialize logger: %s", err)
	}

	env, err := config.Process()
	if err != nil {
		log.Fatalf("failed to process env: %s", err)
	}

	db, err := repository.NewPGRepo(env.DBPort, env.DBHost, env.DBUser, env.DBName, env.DBPassword)
	if err != nil {
		log.Fatalf("failed to connect db: %s", err)
	}

	cached := cache.New(db)
	if env.CacheEngine == "redis" {
		cached = cache.NewWithEngine(db, redis.New(env.CacheHost, env.CachePort, zaplogger))
	}

	issuer := tokens.NewIssuer(env.JWTSecret, env.TokenTTL)
	authService := auth.NewService(db, issuer, zaplogger)
	// the generator's existence check goes straight to the db, not the cache
	urlService := shortener.NewService(cached, codegen.New(db, zaplogger), zaplogger)

	r := server.NewRouter(authService, urlService, issuer, zaplogger, env.BaseUrl)
	if err := r.Run(fmt.Sprintf(":%d", env.AppPort)); err != nil {
		log.Fatalf("server stopped: %s", err)
	}
}
