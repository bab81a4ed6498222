// Package main rentall API.
//
// @title           rentall API
// @version         1.0
// @description     rental marketplace backend (requests, counter-offers, rents, hubs, KYC).
// @BasePath        /
// @schemes         http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description  Use:  Bearer <JWT>
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/Aashutosh1201/rentall-web-sub001/app/echoServer"
	authctrl "github.com/Aashutosh1201/rentall-web-sub001/app/echoServer/controller/auth"
	hubctrl "github.com/Aashutosh1201/rentall-web-sub001/app/echoServer/controller/hub"
	offerctrl "github.com/Aashutosh1201/rentall-web-sub001/app/echoServer/controller/offer"
	paymentctrl "github.com/Aashutosh1201/rentall-web-sub001/app/echoServer/controller/payment"
	rentctrl "github.com/Aashutosh1201/rentall-web-sub001/app/echoServer/controller/rent"
	requestctrl "github.com/Aashutosh1201/rentall-web-sub001/app/echoServer/controller/request"
	userctrl "github.com/Aashutosh1201/rentall-web-sub001/app/echoServer/controller/user"
	"github.com/Aashutosh1201/rentall-web-sub001/app/echoServer/validation"
	"github.com/Aashutosh1201/rentall-web-sub001/config"
	hubrepo "github.com/Aashutosh1201/rentall-web-sub001/repository/hub"
	offerrepo "github.com/Aashutosh1201/rentall-web-sub001/repository/offer"
	paymentrepo "github.com/Aashutosh1201/rentall-web-sub001/repository/payment"
	rentrepo "github.com/Aashutosh1201/rentall-web-sub001/repository/rent"
	requestrepo "github.com/Aashutosh1201/rentall-web-sub001/repository/request"
	storagerepo "github.com/Aashutosh1201/rentall-web-sub001/repository/storage"
	tempuserrepo "github.com/Aashutosh1201/rentall-web-sub001/repository/tempuser"
	userrepo "github.com/Aashutosh1201/rentall-web-sub001/repository/user"
	authsvc "github.com/Aashutosh1201/rentall-web-sub001/service/auth"
	hubsvc "github.com/Aashutosh1201/rentall-web-sub001/service/hub"
	offersvc "github.com/Aashutosh1201/rentall-web-sub001/service/offer"
	paymentsvc "github.com/Aashutosh1201/rentall-web-sub001/service/payment"
	rentsvc "github.com/Aashutosh1201/rentall-web-sub001/service/rent"
	requestsvc "github.com/Aashutosh1201/rentall-web-sub001/service/request"
	usersvc "github.com/Aashutosh1201/rentall-web-sub001/service/user"
	"github.com/Aashutosh1201/rentall-web-sub001/util/database"
)

const sweepInterval = 5 * time.Minute

func main() {

	cfg := config.Load()
	ctx := context.Background()

	// logger
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// DB: *sql.DB
	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	// repos
	ur := userrepo.New(db)
	tr := tempuserrepo.New(db)
	hr := hubrepo.New(db)
	rr := requestrepo.New(db)
	or := offerrepo.New(db)
	nr := rentrepo.New(db)
	pr := paymentrepo.NewHTTP(cfg.PaymentAPIKey, cfg.PaymentCallbackToken)
	sr := storagerepo.NewHTTP(cfg.StorageUploadURL, cfg.StorageAPIKey, cfg.StorageRootFolder)

	// services
	as := authsvc.New(tr, ur, cfg.JWTSecret)
	us := usersvc.New(ur, sr)
	hs := hubsvc.New(hr)
	qs := requestsvc.New(rr, hr)
	os_ := offersvc.New(rr, or, nr, ur, pr)
	ns := rentsvc.New(nr)
	ps := paymentsvc.New(pr, nr)

	// controllers
	v := validator.New()
	authC := &authctrl.Controller{Svc: as, V: v, Log: log}
	userC := &userctrl.Controller{Svc: us, Log: log}
	hubC := &hubctrl.Controller{Svc: hs, Log: log}
	requestC := &requestctrl.Controller{Svc: qs, V: v, Log: log}
	offerC := &offerctrl.Controller{Svc: os_, V: v, Log: log}
	rentC := &rentctrl.Controller{Svc: ns, Log: log}
	paymentC := &paymentctrl.Controller{Svc: ps, Log: log}

	// echo
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = echoServer.ErrorHandler(log)
	echoServer.RegisterMiddlewares(e)
	e.Validator = validation.New()

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]any{
			"status":  "ok",
			"message": "Service is healthy and connected",
		})
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	echoServer.Register(e, echoServer.C{
		Auth:    authC,
		User:    userC,
		Hub:     hubC,
		Request: requestC,
		Offer:   offerC,
		Rent:    rentC,
		Payment: paymentC,

		Users:     ur,
		JWTSecret: cfg.JWTSecret,
	})

	// background sweeps: stale signups, lapsed requests, unpaid rents
	go runSweeps(ctx, log, authsvc.NewCleaner(tr), requestsvc.NewCleaner(rr), rentsvc.NewCleaner(nr))

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}
	if port == "" {
		port = "8080"
	}

	log.Info("starting server", "port", port, "env", cfg.Env)

	e.Logger.Fatal(e.Start(":" + port))
}

func runSweeps(ctx context.Context, log *slog.Logger,
	signups authsvc.Cleaner, requests requestsvc.Cleaner, rents rentsvc.Cleaner) {

	t := time.NewTicker(sweepInterval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
		}

		if n, err := signups.PurgeExpiredSignups(ctx); err != nil {
			log.Error("signup sweep failed", "err", err)
		} else if n > 0 {
			log.Info("purged expired signups", "count", n)
		}

		if n, err := requests.ExpireOverdue(ctx); err != nil {
			log.Error("request sweep failed", "err", err)
		} else if n > 0 {
			log.Info("expired overdue requests", "count", n)
		}

		if n, err := rents.ReleaseExpired(ctx); err != nil {
			log.Error("rent sweep failed", "err", err)
		} else if n > 0 {
			log.Info("cancelled unpaid rents", "count", n)
		}
	}
}
