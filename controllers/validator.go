package controllers

import (
	"errors"
	"strconv"
	"time"

	"catalog-service/models"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// Validation constants
const (
	MaxPageNumber = 100
	MaxPageSize   = 50
)

var dateLayouts = []string{time.RFC3339, "2006-01-02"}

// productQueryParams is the raw query-string shape of the listing filters.
type productQueryParams struct {
	SKU      string   `form:"sku"`
	Name     string   `form:"name"`
	Brand    string   `form:"brand"`
	Model    string   `form:"model"`
	Category string   `form:"category"`
	Color    string   `form:"color"`
	MinPrice *float64 `form:"minPrice" validate:"omitempty,gte=0"`
	MaxPrice *float64 `form:"maxPrice" validate:"omitempty,gte=0"`
	Currency string   `form:"currency"`
	Page     int      `form:"page" validate:"omitempty,min=1,max=100"`
	Limit    int      `form:"limit" validate:"omitempty,min=1,max=50"`
}

// RequestValidator handles all query-parameter validation.
type RequestValidator struct {
	validate *validator.Validate
}

func NewRequestValidator() *RequestValidator {
	return &RequestValidator{validate: validator.New()}
}

// ParseProductQuery validates and parses the listing filter set.
func (rv *RequestValidator) ParseProductQuery(c *gin.Context) (*models.ProductQuery, error) {
	var params productQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		return nil, errors.New("invalid query parameters")
	}
	if err := rv.validate.Struct(&params); err != nil {
		return nil, errors.New("query parameters out of range")
	}

	return &models.ProductQuery{
		SKU:      params.SKU,
		Name:     params.Name,
		Brand:    params.Brand,
		Model:    params.Model,
		Category: params.Category,
		Color:    params.Color,
		MinPrice: params.MinPrice,
		MaxPrice: params.MaxPrice,
		Currency: params.Currency,
		Page:     params.Page,
		Limit:    params.Limit,
	}, nil
}

// ParseStatsQuery validates and parses the report filters.
func (rv *RequestValidator) ParseStatsQuery(c *gin.Context) (*models.StatsQuery, error) {
	q := &models.StatsQuery{}

	if raw, ok := c.GetQuery("hasPrice"); ok {
		switch raw {
		case "true":
			v := true
			q.HasPrice = &v
		case "false":
			v := false
			q.HasPrice = &v
		default:
			return nil, errors.New("hasPrice must be true or false")
		}
	}

	if raw, ok := c.GetQuery("startDate"); ok {
		t, err := parseDate(raw)
		if err != nil {
			return nil, errors.New("startDate must be a valid date")
		}
		q.StartDate = &t
	}

	if raw, ok := c.GetQuery("endDate"); ok {
		t, err := parseDate(raw)
		if err != nil {
			return nil, errors.New("endDate must be a valid date")
		}
		q.EndDate = &t
	}

	return q, nil
}

// ParseLowStockThreshold validates the required stock query parameter.
func (rv *RequestValidator) ParseLowStockThreshold(c *gin.Context) (int, error) {
	raw, ok := c.GetQuery("stock")
	if !ok || raw == "" {
		return 0, errors.New("stock query parameter is required")
	}
	threshold, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.New("stock must be an integer")
	}
	return threshold, nil
}

// ParseProductID validates the numeric id path parameter.
func (rv *RequestValidator) ParseProductID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, errors.New("id must be a positive integer")
	}
	return uint(id), nil
}

func parseDate(raw string) (time.Time, error) {
	var lastErr error
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, raw)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
