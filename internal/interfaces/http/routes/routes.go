// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/your-org/seed-marketplace/internal/interfaces/http/handlers"
	"github.com/your-org/seed-marketplace/internal/interfaces/http/middleware"
)

// Handlers bundles every API handler
type Handlers struct {
	Auth     *handlers.AuthHandler
	Seeds    *handlers.SeedHandler
	Cart     *handlers.CartHandler
	Checkout *handlers.CheckoutHandler
	Voice    *handlers.VoiceHandler
}

// SetupAuthRoutes sets up authentication related routes
func SetupAuthRoutes(rg *gin.RouterGroup, h *Handlers) {
	auth := rg.Group("/auth")
	{
		auth.POST("/signup", h.Auth.SignUp)
		auth.POST("/signin", h.Auth.SignIn)
		auth.POST("/signout", h.Auth.SignOut)
		auth.GET("/session", h.Auth.Session)
	}
}

// SetupSeedRoutes sets up marketplace routes
func SetupSeedRoutes(rg *gin.RouterGroup, h *Handlers) {
	seeds := rg.Group("/seeds")
	{
		seeds.GET("", h.Seeds.ListSeeds)
		seeds.GET("/images", h.Seeds.ResolveImage)
	}
}

// SetupFarmerRoutes sets up the seller dashboard routes
func SetupFarmerRoutes(rg *gin.RouterGroup, h *Handlers) {
	farmer := rg.Group("/farmer")
	farmer.Use(middleware.RequireSignIn("User not authenticated"))
	{
		farmer.GET("/seeds", h.Seeds.ListFarmerSeeds)
		farmer.POST("/seeds", h.Seeds.CreateSeed)
		farmer.POST("/seeds/verify", h.Seeds.VerifyQuality)
	}
}

// SetupCartRoutes sets up cart routes. Anyone may add to their session's
// cart; viewing and editing it requires sign-in.
func SetupCartRoutes(rg *gin.RouterGroup, h *Handlers) {
	cart := rg.Group("/cart")
	{
		cart.POST("/items", h.Cart.AddItem)

		protected := cart.Group("")
		protected.Use(middleware.RequireSignIn(handlers.LoginRequiredNotice))
		{
			protected.GET("", h.Cart.GetCart)
			protected.PUT("/items/:id", h.Cart.UpdateItem)
			protected.DELETE("/items/:id", h.Cart.RemoveItem)
			protected.DELETE("", h.Cart.ClearCart)
		}
	}
}

// SetupCheckoutRoutes sets up checkout routes
func SetupCheckoutRoutes(rg *gin.RouterGroup, h *Handlers) {
	checkout := rg.Group("/checkout")
	checkout.Use(middleware.RequireSignIn(handlers.LoginRequiredNotice))
	{
		checkout.GET("", h.Checkout.GetCheckout)
		checkout.POST("/pay", h.Checkout.Pay)
		checkout.GET("/receipt.pdf", h.Checkout.DownloadReceipt)
	}
}

// SetupVoiceRoutes sets up voice command routes
func SetupVoiceRoutes(rg *gin.RouterGroup, h *Handlers) {
	rg.POST("/voice/commands", h.Voice.Command)
}

// SetupRoutes sets up all API routes
func SetupRoutes(rg *gin.RouterGroup, h *Handlers) {
	SetupAuthRoutes(rg, h)
	SetupSeedRoutes(rg, h)
	SetupFarmerRoutes(rg, h)
	SetupCartRoutes(rg, h)
	SetupCheckoutRoutes(rg, h)
	SetupVoiceRoutes(rg, h)
}
