package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"weatherproxy.app/config"
	weathererr "weatherproxy.app/errors"
	"weatherproxy.app/models"
	"weatherproxy.app/service"
)

// Server represents the HTTP server and API handler
type Server struct {
	router         *gin.Engine
	config         *config.Config
	weatherService service.WeatherServiceInterface
	historyService service.HistoryServiceInterface
}

// NewServer creates and configures a new HTTP server
func NewServer(
	config *config.Config,
	weatherService service.WeatherServiceInterface,
	historyService service.HistoryServiceInterface,
) *Server {
	router := gin.Default()
	router.Use(RequestID())

	server := &Server{
		router:         router,
		config:         config,
		weatherService: weatherService,
		historyService: historyService,
	}

	server.setupRoutes()
	return server
}

func (s *Server) setupRoutes() {
	weather := s.router.Group("/weather")
	{
		weather.GET("", s.getWeather)
		weather.GET("/forecast", s.getForecast)
		weather.GET("/history", s.getHistory)
		weather.DELETE("/history", s.clearHistory)
	}

	s.router.GET("/health", s.healthCheck)
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// Start begins the HTTP server
func (s *Server) Start() error {
	return s.router.Run(fmt.Sprintf(":%d", s.config.Server.Port))
}

// GetRouter returns the router for testing purposes
func (s *Server) GetRouter() *gin.Engine {
	return s.router
}

type weatherQuery struct {
	City string   `form:"city"`
	Lat  *float64 `form:"lat" binding:"omitempty,min=-90,max=90"`
	Lon  *float64 `form:"lon" binding:"omitempty,min=-180,max=180"`
}

type forecastQuery struct {
	City string `form:"city" binding:"required"`
	Days int    `form:"days,default=5" binding:"min=1,max=5"`
}

type historyQuery struct {
	Limit  int `form:"limit,default=100" binding:"min=1,max=1000"`
	Offset int `form:"offset,default=0" binding:"min=0"`
}

func (s *Server) getWeather(c *gin.Context) {
	var query weatherQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		slog.Error("Query binding error", "error", err)
		s.handleError(c, weathererr.NewValidationError("invalid query parameters"))
		return
	}

	slog.Debug("Getting current weather", "city", query.City, "request_id", c.GetString(requestIDKey))
	weather, err := s.weatherService.GetCurrentWeather(query.City, query.Lat, query.Lon)
	if err != nil {
		slog.Error("Weather service error", "error", err, "city", query.City)
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, weather)
}

func (s *Server) getForecast(c *gin.Context) {
	var query forecastQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		slog.Error("Query binding error", "error", err)
		s.handleError(c, weathererr.NewValidationError("city is required and days must be between 1 and 5"))
		return
	}

	slog.Debug("Getting forecast", "city", query.City, "days", query.Days, "request_id", c.GetString(requestIDKey))
	forecast, err := s.weatherService.GetForecast(query.City, query.Days)
	if err != nil {
		slog.Error("Forecast service error", "error", err, "city", query.City)
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, forecast)
}

func (s *Server) getHistory(c *gin.Context) {
	var query historyQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		slog.Error("Query binding error", "error", err)
		s.handleError(c, weathererr.NewValidationError("limit must be between 1 and 1000 and offset must be non-negative"))
		return
	}

	page, err := s.historyService.List(query.Limit, query.Offset)
	if err != nil {
		slog.Error("History list error", "error", err)
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

func (s *Server) clearHistory(c *gin.Context) {
	result, err := s.historyService.Clear()
	if err != nil {
		slog.Error("History clear error", "error", err)
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (s *Server) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": "Weather API"})
}

// handleError handles different types of application errors
func (s *Server) handleError(c *gin.Context, err error) {
	var appErr *weathererr.AppError
	var statusCode int
	var message string

	if errors.As(err, &appErr) {
		switch appErr.Type {
		case weathererr.ValidationError:
			statusCode = http.StatusBadRequest
			message = appErr.Message
		case weathererr.NotFoundError:
			statusCode = http.StatusNotFound
			message = appErr.Message
		case weathererr.ExternalAPIError:
			statusCode = http.StatusInternalServerError
			message = appErr.Message
		case weathererr.PayloadError:
			statusCode = http.StatusInternalServerError
			message = appErr.Message
		case weathererr.DatabaseError:
			statusCode = http.StatusInternalServerError
			message = "Internal server error"
		default:
			statusCode = http.StatusInternalServerError
			message = "Internal server error"
		}
	} else {
		statusCode = http.StatusInternalServerError
		message = "Internal server error"
	}

	c.JSON(statusCode, models.ErrorResponse{Error: message})
}
