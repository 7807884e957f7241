package server

import (
	"github.com/gin-gonic/gin"
	manufacturerdomain "github.com/rfernando-oulu/eComSync/internal/manufacturer/domain"
	productdomain "github.com/rfernando-oulu/eComSync/internal/product/domain"
)

const (
	contextManufacturerKey = "manufacturer"
	contextProductKey      = "product"
)

// RequireJSON rejects write requests whose body is not JSON.
func RequireJSON() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.ContentType() != gin.MIMEJSON {
			AbortWithError(c, ErrUnsupportedMediaType)
			return
		}
		c.Next()
	}
}

// ManufacturerParam resolves :id into a manufacturer before the handler runs.
func (s *Server) ManufacturerParam() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := parseID(c.Param("id"))
		if err != nil {
			AbortWithError(c, err)
			return
		}
		m, err := s.manufacturerSvc.Get(c.Request.Context(), id)
		if err != nil {
			AbortWithError(c, err)
			return
		}
		c.Set(contextManufacturerKey, m)
		c.Next()
	}
}

// ProductParam resolves :id into a product before the handler runs.
func (s *Server) ProductParam() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := parseID(c.Param("id"))
		if err != nil {
			AbortWithError(c, err)
			return
		}
		p, err := s.productSvc.Get(c.Request.Context(), id)
		if err != nil {
			AbortWithError(c, err)
			return
		}
		c.Set(contextProductKey, p)
		c.Next()
	}
}

func manufacturerFromContext(c *gin.Context) *manufacturerdomain.Manufacturer {
	m, _ := c.MustGet(contextManufacturerKey).(*manufacturerdomain.Manufacturer)
	return m
}

func productFromContext(c *gin.Context) *productdomain.Product {
	p, _ := c.MustGet(contextProductKey).(*productdomain.Product)
	return p
}
