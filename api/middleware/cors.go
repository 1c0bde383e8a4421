package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

var defaultCORSOrigins = []string{
	"http://localhost:3000",      // local dev
	"http://localhost:5173",      // vite dev server
	"https://evercart.shop",      // storefront
	"https://www.evercart.shop",  // storefront alias
	"https://admin.evercart.shop", // admin console
}

// CORS returns middleware that applies the API's allowed origin policy.
func CORS() func(http.Handler) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins:   defaultCORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-EC-Token", "X-Requested-With"},
		ExposedHeaders:   []string{"X-EC-Token"},
		AllowCredentials: true,
		MaxAge:           300,
	}).Handler
}
