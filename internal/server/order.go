package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	orderdomain "github.com/rfernando-oulu/eComSync/internal/order/domain"
	"github.com/rfernando-oulu/eComSync/pkg/form"
)

type createOrderRequest struct {
	Firstname       string     `json:"firstname" binding:"required,max=64"`
	Lastname        string     `json:"lastname" binding:"max=64"`
	Email           string     `json:"email" binding:"required,max=128"`
	Telephone       string     `json:"telephone" binding:"max=32"`
	ProductID       *flexInt   `json:"product_id" binding:"required"`
	PaymentAddress1 string     `json:"payment_address_1" binding:"max=128"`
	PaymentCity     string     `json:"payment_city" binding:"max=128"`
	PaymentPostcode string     `json:"payment_postcode" binding:"max=10"`
	PaymentCountry  string     `json:"payment_country" binding:"max=128"`
	Total           *flexFloat `json:"total" binding:"required"`
	DateAdded       *flexTime  `json:"date_added"`
}

func (s *Server) ListOrders(c *gin.Context) {
	f, err := parseFormQuery(c, form.Long)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	items, err := s.orderSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	orders := make([]orderdomain.Response, 0, len(items))
	for i := range items {
		orders = append(orders, orderdomain.ToResponse(&items[i], f))
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

func (s *Server) CreateOrder(c *gin.Context) {
	var req createOrderRequest
	if err := bindJSON(c, &req); err != nil {
		AbortWithError(c, err)
		return
	}

	ctx := c.Request.Context()
	o, err := s.orderSvc.Create(ctx, orderdomain.CreateRequest{
		Firstname:       strings.TrimSpace(req.Firstname),
		Lastname:        strings.TrimSpace(req.Lastname),
		Email:           strings.TrimSpace(req.Email),
		Telephone:       strings.TrimSpace(req.Telephone),
		ProductID:       int64(*req.ProductID),
		PaymentAddress1: strings.TrimSpace(req.PaymentAddress1),
		PaymentCity:     strings.TrimSpace(req.PaymentCity),
		PaymentPostcode: strings.TrimSpace(req.PaymentPostcode),
		PaymentCountry:  strings.TrimSpace(req.PaymentCountry),
		Total:           floatOrZero(req.Total),
		DateAdded:       timeOrNil(req.DateAdded),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.obsMetrics.RecordCatalogWrite(ctx, "order", "create")
	c.JSON(http.StatusCreated, gin.H{"message": "Order Added Successfully", "id": o.ID})
}
