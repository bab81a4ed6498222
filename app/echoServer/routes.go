package echoServer

import (
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"github.com/Aashutosh1201/rentall-web-sub001/app/echoServer/controller/auth"
	"github.com/Aashutosh1201/rentall-web-sub001/app/echoServer/controller/hub"
	"github.com/Aashutosh1201/rentall-web-sub001/app/echoServer/controller/offer"
	"github.com/Aashutosh1201/rentall-web-sub001/app/echoServer/controller/payment"
	"github.com/Aashutosh1201/rentall-web-sub001/app/echoServer/controller/rent"
	"github.com/Aashutosh1201/rentall-web-sub001/app/echoServer/controller/request"
	"github.com/Aashutosh1201/rentall-web-sub001/app/echoServer/controller/user"
	userrepo "github.com/Aashutosh1201/rentall-web-sub001/repository/user"
)

type C struct {
	Auth    *auth.Controller
	User    *user.Controller
	Hub     *hub.Controller
	Request *request.Controller
	Offer   *offer.Controller
	Rent    *rent.Controller
	Payment *payment.Controller

	Users     userrepo.Repo
	JWTSecret string
}

func Register(e *echo.Echo, c C) {
	// Public
	pub := e.Group("/v1")
	pub.POST("/users/register", c.Auth.Register)
	pub.POST("/users/verify-email", c.Auth.VerifyEmail)
	pub.POST("/users/verify-phone", c.Auth.VerifyPhone)
	pub.POST("/users/login", c.Auth.Login)

	// payment provider webhook
	pub.POST("/payment/callback", c.Payment.HandleCallback)

	// Auth
	authed := e.Group("/v1")
	authed.Use(echojwt.WithConfig(echojwt.Config{
		SigningKey: []byte(c.JWTSecret),

		NewClaimsFunc: func(c echo.Context) jwt.Claims { return jwt.MapClaims{} },
		TokenLookup:   "header:Authorization",
	}))
	authed.Use(extractClaims())

	authed.GET("/users/me", c.User.Me)
	authed.POST("/users/me/kyc", c.User.SubmitKYC)
	// Operator endpoint
	authed.POST("/users/:id/kyc/decision", c.User.DecideKYC)

	authed.GET("/hubs", c.Hub.List)
	authed.GET("/hubs/near", c.Hub.Near)

	authed.GET("/requests", c.Request.List)
	authed.GET("/requests/:id", c.Request.Detail)
	authed.GET("/requests/:id/offers", c.Offer.ListByRequest)

	authed.GET("/rents/my", c.Rent.MyRents)
	authed.GET("/rents/:id", c.Rent.Detail)

	// Mutations require a verified identity.
	gated := authed.Group("", KYCGate(c.Users))
	gated.POST("/requests", c.Request.Create)
	gated.POST("/requests/:id/offers", c.Offer.Submit)
	gated.POST("/offers/:id/accept", c.Offer.Accept)
	gated.POST("/rents/:id/activate", c.Rent.Activate)
	gated.POST("/rents/:id/complete", c.Rent.Complete)
	gated.POST("/rents/:id/cancel", c.Rent.Cancel)
}

// extractClaims pulls sub/role out of the parsed token and puts them
// on the context for handlers and the KYC gate.
func extractClaims() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			tok, ok := ctx.Get("user").(*jwt.Token)
			if !ok || tok == nil {
				return ctx.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
			}
			claims, ok := tok.Claims.(jwt.MapClaims)
			if !ok {
				return ctx.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
			}
			sub, ok := claims["sub"].(float64)
			if !ok {
				return ctx.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
			}

			ctx.Set("user_id", int64(sub))
			if role, ok := claims["role"].(string); ok {
				ctx.Set("role", role)
			}
			return next(ctx)
		}
	}
}
