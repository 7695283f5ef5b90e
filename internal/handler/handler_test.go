package handler

import (
	"backoffice-service/internal/model"
	"backoffice-service/internal/service"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func newTestServer() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()

	e.POST("/brands", CreateBrand)
	e.GET("/brands/:id", GetBrand)
	e.GET("/brands/:id/products", ListBrandProducts)
	e.DELETE("/brands/:id", DeleteBrand)
	e.POST("/products", CreateProduct)
	e.GET("/products/search", SearchProducts)
	e.GET("/orders", ListOrders)
	e.GET("/orders/:id", GetOrder)
	e.POST("/orders", CreateOrder)
	e.PUT("/orders/:id", UpdateOrder)
	e.PATCH("/orders/:id/status", UpdateOrderStatus)
	e.GET("/dashboard/orders-by-status", OrdersByStatus)
	e.GET("/dashboard/products-per-month", ProductsPerMonth)
	e.GET("/dashboard/navigation-badge", NavigationBadge)
	e.GET("/health", HealthCheck)
	return e
}

func doRequest(e *echo.Echo, method, target, body string, headers ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func sampleOrder() *model.Order {
	return &model.Order{
		ID:            7,
		Number:        "OR-123456",
		CustomerID:    3,
		Customer:      &model.Customer{ID: 3, Name: "Ana"},
		Status:        model.StatusPending,
		ShippingPrice: decimal.RequireFromString("3.50"),
		Version:       2,
		Items: []model.OrderItem{
			{ID: 1, ProductID: 10, Quantity: 2, UnitPrice: decimal.RequireFromString("10.00")},
			{ID: 2, ProductID: 11, Quantity: 1, UnitPrice: decimal.RequireFromString("5.00")},
		},
	}
}

func TestCreateBrandValidation(t *testing.T) {
	InitBrandHandler(&stubBrandService{})
	e := newTestServer()

	rec := doRequest(e, http.MethodPost, "/brands", `{"name":"Acme","primary_hex":"red"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	errs := decode(t, rec)["errors"].(map[string]interface{})
	assert.Contains(t, errs, "url")
	assert.Contains(t, errs, "primary_hex")
}

func TestCreateBrandDuplicateURL(t *testing.T) {
	InitBrandHandler(&stubBrandService{
		create: func(service.BrandInput) (*model.Brand, error) {
			return nil, model.FieldErrors{model.NewFieldError("url", model.ErrDuplicate)}
		},
	})
	e := newTestServer()

	rec := doRequest(e, http.MethodPost, "/brands", `{"name":"Acme","url":"https://acme.example"}`)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, map[string]interface{}{"url": "has already been taken"}, decode(t, rec)["errors"])
}

func TestCreateBrand(t *testing.T) {
	var got service.BrandInput
	InitBrandHandler(&stubBrandService{
		create: func(in service.BrandInput) (*model.Brand, error) {
			got = in
			return &model.Brand{ID: 1, Name: in.Name, Slug: "acme", URL: in.URL, IsVisible: true}, nil
		},
	})
	e := newTestServer()

	rec := doRequest(e, http.MethodPost, "/brands", `{"name":"Acme","url":"https://acme.example","is_visible":false}`)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "acme", decode(t, rec)["slug"])
	require.NotNil(t, got.IsVisible)
	assert.False(t, *got.IsVisible)
}

func TestGetBrandErrors(t *testing.T) {
	InitBrandHandler(&stubBrandService{
		get: func(uint) (*model.Brand, error) { return nil, model.ErrNotFound },
		delete: func(uint) error {
			return errors.Join(errors.New("brand 4 has products"), model.ErrInUse)
		},
	})
	e := newTestServer()

	assert.Equal(t, http.StatusBadRequest, doRequest(e, http.MethodGet, "/brands/abc", "").Code)
	assert.Equal(t, http.StatusBadRequest, doRequest(e, http.MethodGet, "/brands/0", "").Code)
	assert.Equal(t, http.StatusNotFound, doRequest(e, http.MethodGet, "/brands/4", "").Code)
	assert.Equal(t, http.StatusNotFound, doRequest(e, http.MethodGet, "/brands/4/products", "").Code)
	assert.Equal(t, http.StatusConflict, doRequest(e, http.MethodDelete, "/brands/4", "").Code)
}

func TestListBrandProducts(t *testing.T) {
	var filter model.ProductFilter
	InitBrandHandler(&stubBrandService{
		get: func(id uint) (*model.Brand, error) { return &model.Brand{ID: id}, nil },
	})
	InitProductHandler(&stubProductService{
		list: func(f model.ProductFilter) ([]model.Product, error) {
			filter = f
			return []model.Product{{ID: 1, Name: "Drill"}}, nil
		},
	})
	e := newTestServer()

	rec := doRequest(e, http.MethodGet, "/brands/4/products", "")

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, filter.BrandID)
	assert.EqualValues(t, 4, *filter.BrandID)
}

func TestCreateProductPriceFormat(t *testing.T) {
	InitProductHandler(&stubProductService{
		create: func(in service.ProductInput) (*model.Product, error) {
			return &model.Product{ID: 1, Name: in.Name, Price: *in.Price}, nil
		},
	})
	e := newTestServer()
	body := `{"name":"Drill","price":%s,"quantity":%d,"type":"deliverable","brand_id":1}`

	for _, price := range []string{`"1234567"`, `"19.999"`, `"-1"`} {
		rec := doRequest(e, http.MethodPost, "/products", strings.Replace(strings.Replace(body, "%s", price, 1), "%d", "5", 1))
		assert.Equal(t, http.StatusBadRequest, rec.Code, price)
		assert.Contains(t, decode(t, rec)["errors"], "price", price)
	}

	rec := doRequest(e, http.MethodPost, "/products", strings.Replace(strings.Replace(body, "%s", `"19.99"`, 1), "%d", "101", 1))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decode(t, rec)["errors"], "quantity")

	rec = doRequest(e, http.MethodPost, "/products", strings.Replace(strings.Replace(body, "%s", `19.99`, 1), "%d", "100", 1))
	assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
}

func TestCreateProductRequiresPrice(t *testing.T) {
	var got service.ProductInput
	InitProductHandler(&stubProductService{
		create: func(in service.ProductInput) (*model.Product, error) {
			got = in
			return &model.Product{ID: 1, Name: in.Name, Price: *in.Price}, nil
		},
	})
	e := newTestServer()

	rec := doRequest(e, http.MethodPost, "/products", `{"name":"Drill","quantity":5,"type":"deliverable","brand_id":1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "is required", decode(t, rec)["errors"].(map[string]interface{})["price"])

	rec = doRequest(e, http.MethodPost, "/products", `{"name":"Drill","price":"0","quantity":5,"type":"deliverable","brand_id":1}`)
	assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	require.NotNil(t, got.Price)
	assert.True(t, got.Price.IsZero())
}

func TestCreateProductMissingBrand(t *testing.T) {
	InitProductHandler(&stubProductService{
		create: func(service.ProductInput) (*model.Product, error) {
			return nil, model.FieldErrors{model.NewFieldError("brand_id", model.ErrRelationNotFound)}
		},
	})
	e := newTestServer()

	rec := doRequest(e, http.MethodPost, "/products", `{"name":"Drill","price":"1.00","type":"downloadable","brand_id":9}`)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, decode(t, rec)["errors"], "brand_id")
}

func TestSearchProducts(t *testing.T) {
	InitProductHandler(&stubProductService{
		search: func(q string) ([]model.Product, error) {
			return []model.Product{{ID: 1, Name: "Drill", Slug: "drill", Description: "Cordless", Brand: &model.Brand{Name: "Acme"}}}, nil
		},
	})
	e := newTestServer()

	rec := doRequest(e, http.MethodGet, "/products/search?q=dri", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var results []SearchResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &results))
	require.Len(t, results, 1)
	assert.Equal(t, map[string]string{"brand": "Acme", "description": "Cordless"}, results[0].Details)
}

func TestGetOrderComputesTotalAndLabel(t *testing.T) {
	InitOrderHandler(&stubOrderService{get: func(uint) (*model.Order, error) { return sampleOrder(), nil }})
	SetDefaultLocale("es")
	e := newTestServer()

	rec := doRequest(e, http.MethodGet, "/orders/7", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "28.5", body["total"])
	assert.Equal(t, "Pendiente", body["status_label"])
	assert.Equal(t, "Ana", body["customer_name"])
	items := body["items"].([]interface{})
	assert.Equal(t, "20", items[0].(map[string]interface{})["total_price"])

	rec = doRequest(e, http.MethodGet, "/orders/7", "", "Accept-Language", "en-US,en;q=0.9")
	assert.Equal(t, "Pending", decode(t, rec)["status_label"])

	rec = doRequest(e, http.MethodGet, "/orders/7?locale=es", "", "Accept-Language", "en")
	assert.Equal(t, "Pendiente", decode(t, rec)["status_label"])
}

func TestListOrdersRejectsUnknownStatus(t *testing.T) {
	var filter model.OrderFilter
	InitOrderHandler(&stubOrderService{
		list: func(f model.OrderFilter) ([]model.Order, int64, error) {
			filter = f
			return []model.Order{*sampleOrder()}, 1, nil
		},
	})
	e := newTestServer()

	rec := doRequest(e, http.MethodGet, "/orders?status=pendiente", "")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = doRequest(e, http.MethodGet, "/orders?status=completed&page=2&per_page=10", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, filter.Status)
	assert.Equal(t, model.StatusCompleted, *filter.Status)
	assert.Equal(t, 10, filter.Limit)
	assert.Equal(t, 10, filter.Offset)
}

func TestCreateOrderRejectsNegativeInputs(t *testing.T) {
	InitOrderHandler(&stubOrderService{})
	e := newTestServer()

	rec := doRequest(e, http.MethodPost, "/orders", `{"customer_id":1,"shipping_price":"-1","items":[{"product_id":1,"quantity":-2}]}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	errs := decode(t, rec)["errors"].(map[string]interface{})
	assert.Contains(t, errs, "shipping_price")
	assert.Contains(t, errs, "items[0].quantity")
}

func TestCreateOrderShippingPriceBounds(t *testing.T) {
	InitOrderHandler(&stubOrderService{
		create: func(service.OrderInput) (*model.Order, error) { return sampleOrder(), nil },
	})
	e := newTestServer()
	body := `{"customer_id":1,%s"items":[{"product_id":1,"quantity":1}]}`

	cases := map[string]string{
		"oversized":       `"shipping_price":"123456789012.345",`,
		"three decimals":  `"shipping_price":"3.505",`,
		"missing":         ``,
		"nine int digits": `"shipping_price":"100000000",`,
	}
	for name, field := range cases {
		rec := doRequest(e, http.MethodPost, "/orders", strings.Replace(body, "%s", field, 1))
		assert.Equal(t, http.StatusBadRequest, rec.Code, name)
		assert.Contains(t, decode(t, rec)["errors"], "shipping_price", name)
	}

	rec := doRequest(e, http.MethodPost, "/orders", strings.Replace(body, "%s", `"shipping_price":"99999999.99",`, 1))
	assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
}

func TestCreateOrderRequiresItemQuantity(t *testing.T) {
	var got service.OrderInput
	InitOrderHandler(&stubOrderService{
		create: func(in service.OrderInput) (*model.Order, error) {
			got = in
			return sampleOrder(), nil
		},
	})
	e := newTestServer()

	rec := doRequest(e, http.MethodPost, "/orders", `{"customer_id":1,"shipping_price":"0","items":[{"product_id":1}]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "is required", decode(t, rec)["errors"].(map[string]interface{})["items[0].quantity"])

	rec = doRequest(e, http.MethodPost, "/orders", `{"customer_id":1,"shipping_price":"0","items":[{"product_id":1,"quantity":0}]}`)
	assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	require.Len(t, got.Items, 1)
	require.NotNil(t, got.Items[0].Quantity)
	assert.Equal(t, 0, *got.Items[0].Quantity)
}

func TestCreateOrderRejectsMisspelledCustomerKey(t *testing.T) {
	InitOrderHandler(&stubOrderService{})
	e := newTestServer()

	rec := doRequest(e, http.MethodPost, "/orders", `{"costumer_id":1,"shipping_price":"0"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decode(t, rec)["errors"], "customer_id")
}

func TestUpdateOrderVersioning(t *testing.T) {
	InitOrderHandler(&stubOrderService{
		update: func(id uint, in service.OrderInput) (*model.Order, error) {
			if in.Version != 2 {
				return nil, model.ErrOptimisticLock
			}
			return sampleOrder(), nil
		},
	})
	e := newTestServer()

	rec := doRequest(e, http.MethodPut, "/orders/7", `{"customer_id":3,"shipping_price":"3.50"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decode(t, rec)["errors"], "version")

	rec = doRequest(e, http.MethodPut, "/orders/7", `{"customer_id":3,"shipping_price":"3.50","version":1}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = doRequest(e, http.MethodPut, "/orders/7", `{"customer_id":3,"shipping_price":"3.50","version":2}`)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestUpdateOrderStatus(t *testing.T) {
	var got service.StatusInput
	InitOrderHandler(&stubOrderService{
		changeStatus: func(id uint, in service.StatusInput) (*model.Order, error) {
			got = in
			order := sampleOrder()
			order.Status = in.Status
			return order, nil
		},
	})
	e := newTestServer()

	rec := doRequest(e, http.MethodPatch, "/orders/7/status", `{"status":"procesando","version":2}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(e, http.MethodPatch, "/orders/7/status?locale=en", `{"status":"processing","version":2}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, model.StatusProcessing, got.Status)
	assert.Equal(t, "Processing", decode(t, rec)["status_label"])
}

func TestOrdersByStatusListsEveryStatus(t *testing.T) {
	InitDashboardHandler(&stubDashboardService{
		byStatus: func() (map[model.OrderStatus]int64, error) {
			return map[model.OrderStatus]int64{
				model.StatusPending:    3,
				model.StatusProcessing: 0,
				model.StatusCompleted:  1,
				model.StatusDeclined:   0,
			}, nil
		},
	})
	e := newTestServer()

	rec := doRequest(e, http.MethodGet, "/dashboard/orders-by-status?locale=en", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var buckets []StatusBucket
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &buckets))
	assert.Equal(t, []StatusBucket{
		{Status: model.StatusPending, Label: "Pending", Count: 3},
		{Status: model.StatusProcessing, Label: "Processing", Count: 0},
		{Status: model.StatusCompleted, Label: "Completed", Count: 1},
		{Status: model.StatusDeclined, Label: "Declined", Count: 0},
	}, buckets)
}

func TestProductsPerMonthReferenceDate(t *testing.T) {
	var ref time.Time
	InitDashboardHandler(&stubDashboardService{
		perMonth: func(n time.Time) (*service.MonthlySeries, error) {
			ref = n
			series := service.MonthlyPlacement(nil, n)
			return &series, nil
		},
	})
	now = func() time.Time { return time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC) }
	t.Cleanup(func() { now = time.Now })
	e := newTestServer()

	rec := doRequest(e, http.MethodGet, "/dashboard/products-per-month", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2024, ref.Year())
	assert.Len(t, decode(t, rec)["labels"], 12)

	rec = doRequest(e, http.MethodGet, "/dashboard/products-per-month?year=2021", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2021, ref.Year())

	rec = doRequest(e, http.MethodGet, "/dashboard/products-per-month?year=abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestNavigationBadgeFailure(t *testing.T) {
	InitDashboardHandler(&stubDashboardService{
		badge: func() (*service.Badge, error) { return nil, errors.New("connection refused") },
	})
	e := newTestServer()

	rec := doRequest(e, http.MethodGet, "/dashboard/navigation-badge", "")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Internal server error", decode(t, rec)["error"])
}

func TestHealthCheck(t *testing.T) {
	e := newTestServer()

	InitHealthHandler(func() error { return nil })
	rec := doRequest(e, http.MethodGet, "/health?check=db", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decode(t, rec)["db_status"])

	InitHealthHandler(func() error { return errors.New("down") })
	rec = doRequest(e, http.MethodGet, "/health?check=db", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	rec = doRequest(e, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequestLanguageFallsBackToDefault(t *testing.T) {
	SetDefaultLocale("es")
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/?locale=fr", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	assert.Equal(t, language.Spanish, requestLanguage(c))
}
