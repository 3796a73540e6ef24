package inkwell

import (
	"crypto/subtle"
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/shkcodes/inkwell/theme"
)

func (s *Server) setupRoutes() {
	e := s.echo

	api := e.Group("/api")
	api.GET("/site", s.handleSite)
	api.GET("/meta", s.handleMeta)
	api.GET("/theme", s.handleTheme)
	api.GET("/theme/modes/:mode", s.handleThemeMode)
	api.GET("/plugins", s.handlePlugins)
	api.GET("/articles", s.handleArticles)
	api.GET("/articles/:slug", s.handleArticle)
	api.GET("/tags", s.handleTags)
	api.POST("/reload", s.handleReload)

	e.GET("/healthz", s.handleHealth)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: prometheus.Gatherers{prometheus.DefaultGatherer, s.registry},
	}))
}

func (s *Server) handleSite(c echo.Context) error {
	return c.JSON(http.StatusOK, s.descriptor())
}

func (s *Server) handleMeta(c echo.Context) error {
	return c.JSON(http.StatusOK, s.descriptor().Site)
}

func (s *Server) handleTheme(c echo.Context) error {
	return c.JSON(http.StatusOK, s.descriptor().Theme)
}

func (s *Server) handleThemeMode(c echo.Context) error {
	mode := c.Param("mode")
	colors, ok := theme.FromTree(s.descriptor().Theme).ModeColors(mode)
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "unknown mode: "+mode)
	}
	return c.JSON(http.StatusOK, colors)
}

func (s *Server) handlePlugins(c echo.Context) error {
	return c.JSON(http.StatusOK, s.descriptor().Plugins)
}

func (s *Server) handleArticles(c echo.Context) error {
	tag := c.QueryParam("tag")
	articles, err := s.site.Cache.List(tag)
	if err != nil {
		return err
	}
	dateFormat := s.descriptor().DateFormat
	refs := make([]ArticleRef, 0, len(articles))
	for _, a := range articles {
		refs = append(refs, articleRef(a, dateFormat))
	}
	return c.JSON(http.StatusOK, refs)
}

func (s *Server) handleArticle(c echo.Context) error {
	article, err := s.site.Cache.Get(c.Param("slug"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, article)
}

func (s *Server) handleTags(c echo.Context) error {
	tags, err := s.site.Cache.Tags()
	if err != nil {
		return err
	}
	if tags == nil {
		tags = []string{}
	}
	return c.JSON(http.StatusOK, tags)
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// handleReload rescans content on demand. Requests are rate-limited per
// IP; when a reload token is configured it must be presented as a bearer
// token.
func (s *Server) handleReload(c echo.Context) error {
	if token := s.site.Config().Server.ReloadToken; token != "" {
		presented := bearerToken(c)
		if subtle.ConstantTimeCompare([]byte(presented), []byte(token)) != 1 {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid reload token")
		}
	}
	if !s.limiter.Allow(c.RealIP()) {
		return echo.NewHTTPError(http.StatusTooManyRequests, "too many reload requests")
	}
	if err := s.rebuild(c.Request().Context()); err != nil {
		s.logger.Error().Err(err).Msg("manual reload failed")
		return echo.NewHTTPError(http.StatusInternalServerError, "reload failed")
	}
	desc := s.descriptor()
	return c.JSON(http.StatusOK, map[string]any{
		"status":   "ok",
		"buildId":  desc.BuildID,
		"articles": len(desc.Articles),
	})
}
