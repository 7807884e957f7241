package server

import (
	"context"
	"errors"
	"net/http"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rfernando-oulu/eComSync/internal/apikey"
	apikeydomain "github.com/rfernando-oulu/eComSync/internal/apikey/domain"
	"github.com/rfernando-oulu/eComSync/internal/authorization"
	"github.com/rfernando-oulu/eComSync/internal/config"
	"github.com/rfernando-oulu/eComSync/internal/manufacturer"
	manufacturerdomain "github.com/rfernando-oulu/eComSync/internal/manufacturer/domain"
	"github.com/rfernando-oulu/eComSync/internal/observability"
	obsmiddleware "github.com/rfernando-oulu/eComSync/internal/observability/logger"
	obsmetrics "github.com/rfernando-oulu/eComSync/internal/observability/metrics"
	obstracing "github.com/rfernando-oulu/eComSync/internal/observability/tracing"
	"github.com/rfernando-oulu/eComSync/internal/option"
	optiondomain "github.com/rfernando-oulu/eComSync/internal/option/domain"
	"github.com/rfernando-oulu/eComSync/internal/order"
	orderdomain "github.com/rfernando-oulu/eComSync/internal/order/domain"
	"github.com/rfernando-oulu/eComSync/internal/product"
	productdomain "github.com/rfernando-oulu/eComSync/internal/product/domain"
	"github.com/rfernando-oulu/eComSync/internal/ratelimit"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	authorization.Module,
	apikey.Module,
	manufacturer.Module,
	option.Module,
	product.Module,
	order.Module,
	ratelimit.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

var registerValidatorOnce sync.Once

// useJSONFieldNames makes binding errors report json keys instead of Go field names.
func useJSONFieldNames() {
	registerValidatorOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return field.Name
			}
			return name
		})
	})
}

func NewEngine(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	useJSONFieldNames()

	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(gin.Recovery())
	r.Use(obsmiddleware.GinMiddleware(obsmiddleware.MiddlewareConfig{
		Debug:           obsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obstracing.GinMiddleware())
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.NoRoute(func(c *gin.Context) {
		AbortWithError(c, ErrNotFound)
	})
	r.NoMethod(func(c *gin.Context) {
		AbortWithError(c, ErrMethodNotAllowed)
	})

	return r
}

func registerGin(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	return NewEngine(obsCfg, httpMetrics)
}

func run(lc fx.Lifecycle, shutdowner fx.Shutdowner, cfg config.Config, log *zap.Logger, r *gin.Engine) {
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Info("http server listening", zap.String("addr", srv.Addr))
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("http server stopped", zap.Error(err))
					_ = shutdowner.Shutdown(fx.ExitCode(1))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine          *gin.Engine
	apiKeySvc       apikeydomain.Service
	authzSvc        authorization.Service
	adminKeyLimiter *ratelimit.AdminKeyLimiter
	manufacturerSvc manufacturerdomain.Service
	productSvc      productdomain.Service
	optionSvc       optiondomain.Service
	orderSvc        orderdomain.Service
	obsMetrics      *obsmetrics.Metrics
}

type ServerParams struct {
	fx.In

	Gin             *gin.Engine
	APIKeySvc       apikeydomain.Service
	AuthzSvc        authorization.Service
	ManufacturerSvc manufacturerdomain.Service
	ProductSvc      productdomain.Service
	OptionSvc       optiondomain.Service
	OrderSvc        orderdomain.Service
	ObsMetrics      *obsmetrics.Metrics        `optional:"true"`
	AdminKeyLimiter *ratelimit.AdminKeyLimiter `optional:"true"`
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:          p.Gin,
		apiKeySvc:       p.APIKeySvc,
		authzSvc:        p.AuthzSvc,
		adminKeyLimiter: p.AdminKeyLimiter,
		manufacturerSvc: p.ManufacturerSvc,
		productSvc:      p.ProductSvc,
		optionSvc:       p.OptionSvc,
		orderSvc:        p.OrderSvc,
		obsMetrics:      p.ObsMetrics,
	}

	svc.registerAPIRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api")
	api.GET("/", s.Home)

	manufacturers := api.Group("/manufacturer")
	{
		manufacturers.GET("/", s.Authorize(authorization.ObjectManufacturer, authorization.ActionManufacturerList), s.ListManufacturers)
		manufacturers.POST("/", s.Authorize(authorization.ObjectManufacturer, authorization.ActionManufacturerCreate), RequireJSON(), s.CreateManufacturer)
		manufacturers.GET("/:id", s.Authorize(authorization.ObjectManufacturer, authorization.ActionManufacturerView), s.ManufacturerParam(), s.GetManufacturer)
		manufacturers.PUT("/:id", s.Authorize(authorization.ObjectManufacturer, authorization.ActionManufacturerUpdate), RequireJSON(), s.ManufacturerParam(), s.UpdateManufacturer)
		manufacturers.DELETE("/:id", s.Authorize(authorization.ObjectManufacturer, authorization.ActionManufacturerDelete), s.ManufacturerParam(), s.DeleteManufacturer)
	}

	products := api.Group("/product")
	{
		products.GET("/", s.Authorize(authorization.ObjectProduct, authorization.ActionProductList), s.ListProducts)
		products.POST("/", s.Authorize(authorization.ObjectProduct, authorization.ActionProductCreate), RequireJSON(), s.CreateProduct)
		products.GET("/:id", s.Authorize(authorization.ObjectProduct, authorization.ActionProductView), s.ProductParam(), s.GetProduct)
		products.PUT("/:id", s.Authorize(authorization.ObjectProduct, authorization.ActionProductUpdate), RequireJSON(), s.ProductParam(), s.UpdateProduct)
		products.DELETE("/:id", s.Authorize(authorization.ObjectProduct, authorization.ActionProductDelete), s.ProductParam(), s.DeleteProduct)
	}

	orders := api.Group("/order")
	{
		orders.GET("/", s.Authorize(authorization.ObjectOrder, authorization.ActionOrderList), s.ListOrders)
		orders.POST("/", s.Authorize(authorization.ObjectOrder, authorization.ActionOrderCreate), RequireJSON(), s.CreateOrder)
	}

	options := api.Group("/option")
	{
		options.GET("/", s.Authorize(authorization.ObjectOption, authorization.ActionOptionList), s.ListOptions)
		options.POST("/", s.Authorize(authorization.ObjectOption, authorization.ActionOptionCreate), RequireJSON(), s.CreateOption)
		options.PUT("/:id", s.Authorize(authorization.ObjectOption, authorization.ActionOptionUpdate), RequireJSON(), s.UpdateOption)
		options.DELETE("/:id", s.Authorize(authorization.ObjectOption, authorization.ActionOptionDelete), s.DeleteOption)
	}
}

// bindJSON decodes the body into dst and runs its binding rules.
func bindJSON(c *gin.Context, dst any) error {
	if err := c.ShouldBindJSON(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return fieldErrors(verrs)
		}
		return invalidRequestError()
	}
	return nil
}

func created(c *gin.Context, location, message string, id int64) {
	c.Header("Location", location)
	c.JSON(http.StatusCreated, gin.H{"message": message, "id": id})
}

func ok(c *gin.Context, message string) {
	c.JSON(http.StatusOK, gin.H{"message": message})
}
