// Command erp-dashboard serves server-rendered list fragments for the ERP
// dashboard, driving the collection engine end to end: fetch, filter,
// paginate and render per request.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/gestorpme/erp-client/pkg/api"
	"github.com/gestorpme/erp-client/pkg/controller"
	"github.com/gestorpme/erp-client/pkg/erp"
	"github.com/gestorpme/erp-client/pkg/filter"
	"github.com/gestorpme/erp-client/pkg/logging"
	"github.com/gestorpme/erp-client/pkg/paginate"
	"github.com/gestorpme/erp-client/pkg/render"
	"github.com/gestorpme/erp-client/pkg/store"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	logger := logging.Setup(logging.Config{
		Level:  logging.LogLevel(getEnv("LOG_LEVEL", "info")),
		Pretty: getEnv("LOG_PRETTY", "") == "true",
		Output: os.Stderr,
	})

	apiURL := getEnv("ERP_API_URL", "http://localhost:3000")
	token := getEnv("ERP_TOKEN", "")
	port := getEnv("PORT", "8080")
	redisURL := getEnv("REDIS_URL", "")

	ctx := context.Background()

	// Redis-backed state when configured, in-memory otherwise.
	var backend store.Store = store.NewMemory()
	if redisURL != "" {
		redisClient := redis.NewClient(&redis.Options{Addr: redisURL})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Fatal().Err(err).Str("addr", redisURL).Msg("Failed to connect to Redis")
		}
		backend = store.NewRedis(redisClient)
		logger.Info().Str("addr", redisURL).Msg("Connected to Redis")
	}

	session := store.NewSession(backend)
	if token != "" {
		if err := session.SetToken(ctx, token); err != nil {
			logger.Fatal().Err(err).Msg("Failed to store token")
		}
	}
	prefs := store.NewPrefs(backend)

	client, err := api.New(api.Config{
		BaseURL: apiURL,
		Session: session,
		OnUnauthorized: func() {
			logger.Warn().Msg("Session expired - login required")
		},
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create API client")
	}

	deps := erp.Deps{Client: client, Prefs: prefs}

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())

	e.GET("/health", func(ec echo.Context) error {
		return ec.String(http.StatusOK, "OK")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	e.GET("/ui/clientes", listHandler(deps, erp.NewClientesPage))
	e.GET("/ui/produtos", listHandler(deps, erp.NewProdutosPage))
	e.GET("/ui/vendas", listHandler(deps, erp.NewVendasPage))
	e.GET("/ui/usuarios", listHandler(deps, erp.NewUsuariosPage))

	logger.Info().Str("port", port).Str("api", apiURL).Msg("Starting ERP dashboard")
	if err := e.Start(":" + port); err != nil && err != http.ErrServerClosed {
		logger.Fatal().Err(err).Msg("Server failed")
	}
}

// listHandler builds one page controller per request, applies the query
// parameters as state changes and answers with the rendered fragment.
func listHandler[T filter.Searchable](deps erp.Deps, newPage func(erp.Deps) (*controller.Controller[T], error)) echo.HandlerFunc {
	return func(ec echo.Context) error {
		ctrl, err := newPage(deps)
		if err != nil {
			return ec.String(http.StatusInternalServerError, err.Error())
		}

		if err := ctrl.Load(ec.Request().Context()); err != nil {
			if apiErr, ok := err.(*api.APIError); ok && apiErr.Unauthorized() {
				return ec.String(http.StatusUnauthorized, "sessão expirada")
			}
			return ec.String(http.StatusBadGateway, err.Error())
		}

		applyQuery(ec, ctrl)

		var b strings.Builder
		if banner := ctrl.Banner(); banner != "" {
			fmt.Fprintf(&b, `<div class="banner banner-error">%s</div>`, render.EscapeHTML(banner))
		}
		b.WriteString(ctrl.Fragment())
		writeControls(&b, ctrl.Page(), ctrl.PageButtons())

		return ec.HTML(http.StatusOK, b.String())
	}
}

// applyQuery maps request query parameters to controller state changes.
func applyQuery[T filter.Searchable](ec echo.Context, ctrl *controller.Controller[T]) {
	if search := ec.QueryParam("search"); search != "" {
		ctrl.SetSearch(search)
	}
	for _, name := range []string{erp.FilterStatus, erp.FilterCategoria, erp.FilterPerfil, erp.FilterEstoque} {
		if value := ec.QueryParam(name); value != "" {
			ctrl.SetFilter(name, value)
		}
	}
	if sortField := ec.QueryParam("sort"); sortField != "" {
		ctrl.SetSort(sortField, ec.QueryParam("dir"))
	}
	if limit := ec.QueryParam("limit"); limit != "" {
		if n, err := strconv.Atoi(limit); err == nil {
			ctrl.SetPerPage(n)
		}
	}
	if page := ec.QueryParam("page"); page != "" {
		if n, err := strconv.Atoi(page); err == nil {
			ctrl.SetPage(n)
		}
	}
	if view := ec.QueryParam("view"); view != "" {
		ctrl.SetView(render.ParseView(view))
	}
}

// writeControls renders the page-button strip under the fragment.
func writeControls(b *strings.Builder, current int, buttons []int) {
	if len(buttons) == 0 {
		return
	}
	b.WriteString(`<nav class="pagination">`)
	for _, page := range buttons {
		if page == paginate.Ellipsis {
			b.WriteString(`<span class="ellipsis">…</span>`)
			continue
		}
		class := "page"
		if page == current {
			class = "page page-current"
		}
		fmt.Fprintf(b, `<button class="%s" data-page="%d">%d</button>`, class, page, page)
	}
	b.WriteString("</nav>")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
