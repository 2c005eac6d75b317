package handlers

import (
	"net/http"

	"modublock/internal/config"
	"modublock/internal/repos"
	"modublock/internal/services"

	"github.com/jmoiron/sqlx"
)

type Deps struct {
	CatalogHandler   *CatalogHandler
	EstimateHandler  *EstimateHandler
	CartHandler      *CartHandler
	OrderHandler     *OrderHandler
	TrackingHandler  *TrackingHandler
	PartnerHandler   *PartnerHandler
	ShortlistHandler *ShortlistHandler
	AdvisorHandler   *AdvisorHandler
	AdminHandler     *AdminHandler
}

func NewDeps(db *sqlx.DB, cfg config.Config, auth *services.AuthService) *Deps {
	prodRepo := repos.NewProductRepo(db)
	cartRepo := repos.NewCartRepo(db)
	orderRepo := repos.NewOrderRepo(db)
	partnerRepo := repos.NewPartnerRepo(db)
	shortRepo := repos.NewShortlistRepo(db)
	userRepo := repos.NewUserRepo(db)

	// one guard per process; cart and order services share it so a
	// session's cart freezes while its checkout runs
	guard := services.NewCheckoutGuard()

	catalogSvc := services.NewCatalogService(prodRepo)
	cartSvc := services.NewCartService(cartRepo, prodRepo, orderRepo, guard)
	orderSvc := services.NewOrderService(db, cartRepo, orderRepo, guard)
	partnerSvc := services.NewPartnerService(partnerRepo)
	shortSvc := services.NewShortlistService(shortRepo)
	advisorSvc := services.NewAdvisorService(cfg.AdvisorURL, cfg.AdvisorKey, &http.Client{Timeout: cfg.AdvisorTimeout})

	return &Deps{
		CatalogHandler:   &CatalogHandler{Catalog: catalogSvc},
		EstimateHandler:  &EstimateHandler{},
		CartHandler:      &CartHandler{Cart: cartSvc},
		OrderHandler:     &OrderHandler{Cart: cartSvc, Order: orderSvc, Repo: orderRepo, Auth: auth},
		TrackingHandler:  &TrackingHandler{Order: orderSvc},
		PartnerHandler:   &PartnerHandler{Partners: partnerSvc},
		ShortlistHandler: &ShortlistHandler{Short: shortSvc},
		AdvisorHandler:   &AdvisorHandler{Advisor: advisorSvc, Timeout: cfg.AdvisorTimeout},
		AdminHandler:     &AdminHandler{OrderRepo: orderRepo, Order: orderSvc, Partners: partnerSvc, Prods: prodRepo, Users: userRepo},
	}
}
