package apiservice

import (
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/pingcap/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/syncpointhq/src2dw/pkg/metrics"
	"go.uber.org/zap"
)

type APIService struct {
	APIInfo *APIInfo
	router  *gin.Engine
}

var GlobalInstance = New()

func New() *APIService {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())

	apiInfo := NewAPIInfo()
	apiInfo.registerRouter(r)
	registerMetric(r)

	return &APIService{
		APIInfo: apiInfo,
		router:  r,
	}
}

// registerMetric exposes the extraction metrics on /metrics.
func registerMetric(router *gin.Engine) {
	registry := prometheus.NewRegistry()
	metrics.RegisterTo(registry)

	handler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
	router.GET("/metrics", func(c *gin.Context) {
		handler.ServeHTTP(c.Writer, c.Request)
	})
}

// Router exposes the gin engine, mainly for tests.
func (service *APIService) Router() *gin.Engine {
	return service.router
}

// Serve blocks until SIGINT/SIGTERM, serving /info and /metrics.
func (service *APIService) Serve(l net.Listener) {
	go func() {
		if err := service.router.RunListener(l); err != nil {
			log.Panic("Serve failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	s := <-quit
	log.Info("Received exit signal, shutting down API service ...", zap.String("signal", s.String()))

	_ = l.Close()
}
