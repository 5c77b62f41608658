// Package httpapi exposes the recommendation engine over HTTP. The
// engine is fully built before the server starts, so no request ever
// sees a partial snapshot; all handlers are read-only against it.
package httpapi

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/abhi017z/Movie-Recommender-System/internal/engine"
	"github.com/abhi017z/Movie-Recommender-System/internal/globaltime"
)

const defaultRecommendations = 10

// Options configures the HTTP server. Zero values pick sensible
// defaults in NewServer.
type Options struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	AllowedOrigins  []string
}

type Server struct {
	engine *engine.Engine
	logger zerolog.Logger
	opts   Options
}

type recommendRequest struct {
	MovieName          string `json:"movieName"`
	NumRecommendations int    `json:"numRecommendations"`
}

func NewServer(eng *engine.Engine, logger zerolog.Logger, opts Options) *Server {
	host := strings.TrimSpace(opts.Host)
	if host == "" {
		host = "0.0.0.0"
	}
	port := opts.Port
	if port <= 0 {
		port = 8090
	}
	readTimeout := opts.ReadTimeout
	if readTimeout <= 0 {
		readTimeout = 10 * time.Second
	}
	writeTimeout := opts.WriteTimeout
	if writeTimeout <= 0 {
		writeTimeout = 30 * time.Second
	}
	shutdownTimeout := opts.ShutdownTimeout
	if shutdownTimeout <= 0 {
		shutdownTimeout = 10 * time.Second
	}
	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	return &Server{
		engine: eng,
		logger: logger,
		opts: Options{
			Host:            host,
			Port:            port,
			ReadTimeout:     readTimeout,
			WriteTimeout:    writeTimeout,
			ShutdownTimeout: shutdownTimeout,
			AllowedOrigins:  origins,
		},
	}
}

func (s *Server) Start(ctx context.Context) error {
	if s == nil || s.engine == nil {
		return fmt.Errorf("server is not initialized")
	}

	e, err := s.buildEcho()
	if err != nil {
		return err
	}

	addr := fmt.Sprintf("%s:%d", s.opts.Host, s.opts.Port)
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      e,
		ReadTimeout:  s.opts.ReadTimeout,
		WriteTimeout: s.opts.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.opts.ShutdownTimeout)
		defer cancel()
		if shutdownErr := e.Shutdown(shutdownCtx); shutdownErr != nil {
			s.logger.Error().Err(shutdownErr).Msg("server shutdown failed")
		}
	}()

	s.logger.Info().Str("addr", addr).Int("catalog_items", s.engine.Size()).Msg("cinemaai web server started")

	if err := e.StartServer(httpServer); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("start server: %w", err)
	}
	s.logger.Info().Msg("cinemaai web server stopped")
	return nil
}

func (s *Server) buildEcho() (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = s.httpErrorHandler

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: s.opts.AllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept"},
		MaxAge:       3600,
	}))
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogLatency:   true,
		LogRemoteIP:  true,
		LogRequestID: true,
		LogError:     true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			if v.Error != nil {
				s.logger.Error().
					Err(v.Error).
					Str("method", v.Method).
					Str("uri", v.URI).
					Int("status", v.Status).
					Dur("latency", v.Latency).
					Str("remote_ip", v.RemoteIP).
					Str("request_id", v.RequestID).
					Msg("http request failed")
				return nil
			}

			s.logger.Info().
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("remote_ip", v.RemoteIP).
				Str("request_id", v.RequestID).
				Msg("http request")
			return nil
		},
	}))

	assetsSub, err := fs.Sub(embeddedAssets, "assets")
	if err != nil {
		return nil, fmt.Errorf("load embedded assets: %w", err)
	}
	indexHTML, err := fs.ReadFile(assetsSub, "index.html")
	if err != nil {
		return nil, fmt.Errorf("load index.html: %w", err)
	}

	e.GET("/", func(c echo.Context) error {
		return c.Blob(http.StatusOK, "text/html; charset=utf-8", indexHTML)
	})

	api := e.Group("/api/v1")
	api.GET("/health", s.handleHealth)
	api.POST("/recommend", s.handleRecommend)
	api.GET("/search", s.handleSearch)

	return e, nil
}

func (s *Server) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	message := "Internal server error"
	if he, ok := err.(*echo.HTTPError); ok {
		status = he.Code
		switch v := he.Message.(type) {
		case string:
			if strings.TrimSpace(v) != "" {
				message = v
			}
		default:
			if text := strings.TrimSpace(http.StatusText(status)); text != "" {
				message = text
			}
		}
	} else if err != nil {
		message = err.Error()
	}

	if strings.HasPrefix(c.Request().URL.Path, "/api/") {
		if status >= 500 {
			_ = internalError(c, "Internal server error")
			return
		}
		_ = fail(c, status, message, nil)
		return
	}

	_ = c.String(status, message)
}

func (s *Server) handleHealth(c echo.Context) error {
	return success(c, map[string]any{
		"service":       "cinemaai",
		"time":          globaltime.UTC(),
		"catalog_items": s.engine.Size(),
		"vocabulary":    s.engine.VocabularySize(),
	})
}

func (s *Server) handleRecommend(c echo.Context) error {
	var req recommendRequest
	if err := c.Bind(&req); err != nil {
		return failValidation(c, map[string]string{"body": "must be valid JSON"})
	}

	count := req.NumRecommendations
	if count == 0 {
		count = defaultRecommendations
	}

	result, err := s.engine.Recommend(req.MovieName, count)
	if err != nil {
		switch {
		case errors.Is(err, engine.ErrInvalidArgument):
			return fail(c, http.StatusBadRequest, userMessage(err), nil)
		case errors.Is(err, engine.ErrNotFound):
			return failNotFound(c, fmt.Sprintf("Movie %q not found in the catalog. Please try a different movie name.", strings.TrimSpace(req.MovieName)))
		default:
			s.logger.Error().Err(err).Str("movie", req.MovieName).Msg("recommend failed")
			return internalError(c, "Failed to compute recommendations")
		}
	}

	s.logger.Info().
		Str("movie", result.InputMovie).
		Int("count", len(result.Recommendations)).
		Msg("recommendations served")
	return success(c, result)
}

func (s *Server) handleSearch(c echo.Context) error {
	limit := engine.DefaultSearchLimit
	if raw := strings.TrimSpace(c.QueryParam("limit")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			return failValidation(c, map[string]string{"limit": "must be a positive integer"})
		}
		limit = parsed
	}

	query := c.QueryParam("q")
	return success(c, map[string]any{
		"items": s.engine.SearchTitles(query, limit),
		"query": strings.TrimSpace(query),
	})
}

// userMessage strips the sentinel prefix from a wrapped request error,
// leaving the human-readable remainder with its first rune upper-cased.
func userMessage(err error) string {
	msg := err.Error()
	if idx := strings.LastIndex(msg, ": "); idx >= 0 {
		msg = msg[idx+2:]
	}
	first, size := utf8.DecodeRuneInString(msg)
	if size == 0 || first == utf8.RuneError {
		return msg
	}
	return string(unicode.ToUpper(first)) + msg[size:]
}
