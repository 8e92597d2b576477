package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"fnp-marketplace/app/controller"
	"fnp-marketplace/app/middleware"
	"fnp-marketplace/metrics"
)

// Controllers groups every HTTP handler the router mounts
type Controllers struct {
	PriceList *controller.PriceListController
	Grade     *controller.GradeController
	Auth      *controller.AuthController
	User      *controller.UserController
	Catalog   *controller.CatalogController
	Image     *controller.ImageController
}

// Options carries what the router needs besides the controllers
type Options struct {
	Tokens  middleware.TokenParser
	Metrics *metrics.Manager
	// ImageDir is served under /images/ when images are stored locally. Empty disables it.
	ImageDir string
}

// pingHandler handles GET /ping
func pingHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

// SetupRoutes builds the HTTP handler for the whole API
func SetupRoutes(c *Controllers, opts Options) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.Instrument(opts.Metrics))

	r.Get("/ping", pingHandler)
	if opts.Metrics != nil {
		r.Handle("/metrics", opts.Metrics.Handler())
	}
	if opts.ImageDir != "" {
		r.Handle("/images/*", http.StripPrefix("/images/", http.FileServer(http.Dir(opts.ImageDir))))
	}

	// Public routes
	r.Post("/auth/sign-in", c.Auth.SignIn)

	r.Get("/grades", c.Grade.List)
	r.Get("/grades/{category}", c.Grade.ByCategory)

	r.Get("/brands", c.Catalog.ListBrands)
	r.Get("/brands/{id}", c.Catalog.GetBrand)
	r.Get("/products", c.Catalog.ListProducts)
	r.Get("/products/{id}", c.Catalog.GetProduct)
	r.Get("/farm-produce", c.Catalog.ListFarmProduce)
	r.Get("/farm-produce/{id}", c.Catalog.GetFarmProduce)

	// Signed-in, non-banned users
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(opts.Tokens))

		r.Get("/producer-price-lists", c.PriceList.List)
		r.Get("/producer-price-lists/{id}", c.PriceList.Get)
		r.Get("/producer-price-lists/{id}/breakdown", c.PriceList.Breakdown)
		r.Get("/producer-price-lists/{id}/render", c.PriceList.Render)
		r.Get("/producer-price-lists/{id}/pdf", c.PriceList.PDF)
	})

	// Admin routes
	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.RequireAuth(opts.Tokens))
		r.Use(middleware.RequireAdmin)

		r.Route("/producer-price-lists", func(r chi.Router) {
			r.Get("/", c.PriceList.List)
			r.Post("/", c.PriceList.Create)
			r.Get("/new", c.PriceList.New)
			r.Get("/{id}", c.PriceList.Edit)
			r.Put("/{id}", c.PriceList.Update)
			r.Delete("/{id}", c.PriceList.Delete)
			r.Post("/{id}/bulk-fill", c.PriceList.BulkFill)
		})

		r.Route("/users", func(r chi.Router) {
			r.Get("/", c.User.List)
			r.Post("/", c.User.Create)
			r.Get("/{id}", c.User.Get)
			r.Put("/{id}", c.User.Update)
			r.Delete("/{id}", c.User.Delete)
		})

		r.Post("/brands", c.Catalog.CreateBrand)
		r.Put("/brands/{id}", c.Catalog.UpdateBrand)
		r.Delete("/brands/{id}", c.Catalog.DeleteBrand)

		r.Post("/products", c.Catalog.CreateProduct)
		r.Put("/products/{id}", c.Catalog.UpdateProduct)
		r.Delete("/products/{id}", c.Catalog.DeleteProduct)

		r.Post("/farm-produce", c.Catalog.CreateFarmProduce)
		r.Put("/farm-produce/{id}", c.Catalog.UpdateFarmProduce)
		r.Delete("/farm-produce/{id}", c.Catalog.DeleteFarmProduce)

		r.Post("/images", c.Image.Upload)
		r.Delete("/images/{id}", c.Image.Delete)
	})

	return r
}
