package http

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductHandler(t *testing.T) {
	ts := newTestServer(t)
	admin := ts.login(t, "admin")
	budi := ts.login(t, "budi")

	w := ts.doJSON(t, http.MethodPost, "/api/products", admin, map[string]any{
		"name":     "Semen 50kg",
		"category": "Material Konstruksi",
		"price":    "65000",
		"quantity": 3,
		"minStock": 10,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created struct {
		ID        string `json:"id"`
		ProductID string `json:"productId"`
		LowStock  bool   `json:"lowStock"`
	}
	decodeData(t, w, &created)
	assert.NotEmpty(t, created.ProductID)
	assert.True(t, created.LowStock)

	t.Run("employee cannot create", func(t *testing.T) {
		w := ts.doJSON(t, http.MethodPost, "/api/products", budi, map[string]any{
			"name":     "Paku",
			"category": "Material Konstruksi",
		})
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("validation", func(t *testing.T) {
		w := ts.doJSON(t, http.MethodPost, "/api/products", admin, map[string]any{
			"name":     "",
			"category": "Mainan",
			"quantity": -1,
		})
		require.Equal(t, http.StatusUnprocessableEntity, w.Code)
		details := decode(t, w).Error.Details
		assert.Contains(t, details, "name")
		assert.Contains(t, details, "category")
		assert.Contains(t, details, "quantity")
	})

	t.Run("duplicate code", func(t *testing.T) {
		w := ts.doJSON(t, http.MethodPost, "/api/products", admin, map[string]any{
			"productId": created.ProductID,
			"name":      "Semen lagi",
			"category":  "Material Konstruksi",
		})
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("employee reads low stock", func(t *testing.T) {
		w := ts.do(t, http.MethodGet, "/api/products/low-stock", budi, nil, "")
		require.Equal(t, http.StatusOK, w.Code)
		var low []struct {
			ID string `json:"id"`
		}
		decodeData(t, w, &low)
		require.Len(t, low, 1)
		assert.Equal(t, created.ID, low[0].ID)
	})

	t.Run("list filter", func(t *testing.T) {
		w := ts.do(t, http.MethodGet, "/api/products?name=semen&lowStock=true", budi, nil, "")
		require.Equal(t, http.StatusOK, w.Code)

		w = ts.do(t, http.MethodGet, "/api/products?lowStock=maybe", budi, nil, "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("update and delete", func(t *testing.T) {
		w := ts.doJSON(t, http.MethodPut, "/api/products/"+created.ID, admin, map[string]any{"quantity": 25})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var updated struct {
			Quantity int  `json:"quantity"`
			LowStock bool `json:"lowStock"`
		}
		decodeData(t, w, &updated)
		assert.Equal(t, 25, updated.Quantity)
		assert.False(t, updated.LowStock)

		w = ts.do(t, http.MethodDelete, "/api/products/"+created.ID, admin, nil, "")
		require.Equal(t, http.StatusOK, w.Code)
		w = ts.do(t, http.MethodGet, "/api/products/"+created.ID, admin, nil, "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestRentalHandler(t *testing.T) {
	ts := newTestServer(t)
	admin := ts.login(t, "admin")

	body, contentType := multipartBody(t, map[string]string{
		"equipmentName":      "Molen",
		"rentalStatus":       "Rented",
		"customerName":       "Pak Slamet",
		"rentalPrice":        "1.500.000",
		"equipmentCondition": "Good",
		"rentalDate":         "2024-05-01",
		"returnDate":         "2024-05-04",
	}, map[string]string{"rentalImage": "molen.jpg"})
	w := ts.do(t, http.MethodPost, "/api/rentals", admin, body, contentType)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created struct {
		ID             string  `json:"id"`
		RentalDuration int     `json:"rentalDuration"`
		TotalPrice     string  `json:"totalPrice"`
		RentalImage    *string `json:"rentalImage"`
	}
	decodeData(t, w, &created)
	assert.Equal(t, 3, created.RentalDuration)
	assert.Equal(t, "4500000", created.TotalPrice)
	require.NotNil(t, created.RentalImage)
	assert.Contains(t, *created.RentalImage, "molen.jpg")

	t.Run("rented needs a customer", func(t *testing.T) {
		body, contentType := multipartBody(t, map[string]string{
			"equipmentName":      "Stamper",
			"rentalStatus":       "Rented",
			"rentalPrice":        "100000",
			"equipmentCondition": "Fair",
		}, nil)
		w := ts.do(t, http.MethodPost, "/api/rentals", admin, body, contentType)
		require.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Contains(t, decode(t, w).Error.Details, "customerName")
	})

	t.Run("employee reads but cannot write", func(t *testing.T) {
		budi := ts.login(t, "budi")
		w := ts.do(t, http.MethodGet, "/api/rentals?rentalStatus=Rented", budi, nil, "")
		require.Equal(t, http.StatusOK, w.Code)

		w = ts.do(t, http.MethodDelete, "/api/rentals/"+created.ID, budi, nil, "")
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("delete removes the image", func(t *testing.T) {
		w := ts.do(t, http.MethodDelete, "/api/rentals/"+created.ID, admin, nil, "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.NotEmpty(t, ts.files.Deleted)
	})
}

func TestShiftHandler(t *testing.T) {
	ts := newTestServer(t)
	admin := ts.login(t, "admin")
	budi := ts.login(t, "budi")

	t.Run("employee cannot create", func(t *testing.T) {
		w := ts.doJSON(t, http.MethodPost, "/api/shifts", budi, map[string]any{
			"shiftType":   "Afternoon",
			"startDate":   "2030-01-01",
			"endDate":     "2030-01-07",
			"employeeIds": []string{"u-budi"},
		})
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("admin creates with default times", func(t *testing.T) {
		w := ts.doJSON(t, http.MethodPost, "/api/shifts", admin, map[string]any{
			"shiftType":   "Afternoon",
			"startDate":   "2030-01-01",
			"endDate":     "2030-01-07",
			"employeeIds": []string{"u-sari"},
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		var created struct {
			ShiftStart string `json:"shiftStart"`
			ShiftEnd   string `json:"shiftEnd"`
			Employees  []struct {
				Name string `json:"name"`
			} `json:"employees"`
		}
		decodeData(t, w, &created)
		assert.Equal(t, "12:00", created.ShiftStart)
		assert.Equal(t, "20:00", created.ShiftEnd)
		require.Len(t, created.Employees, 1)
		assert.Equal(t, "Sari", created.Employees[0].Name)
	})

	t.Run("duplicate", func(t *testing.T) {
		w := ts.doJSON(t, http.MethodPost, "/api/shifts", admin, map[string]any{
			"shiftType":   "Afternoon",
			"startDate":   "2030-01-05",
			"endDate":     "2030-01-10",
			"employeeIds": []string{"u-sari"},
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("employee list is scoped", func(t *testing.T) {
		w := ts.do(t, http.MethodGet, "/api/shifts", budi, nil, "")
		require.Equal(t, http.StatusOK, w.Code)
		var shifts []struct {
			ID string `json:"id"`
		}
		decodeData(t, w, &shifts)
		require.Len(t, shifts, 1)
		assert.Equal(t, "s-all-day", shifts[0].ID)
	})

	t.Run("calendar and today", func(t *testing.T) {
		w := ts.do(t, http.MethodGet, "/api/shifts/calendar", admin, nil, "")
		require.Equal(t, http.StatusOK, w.Code)
		var entries []struct {
			Title string `json:"title"`
		}
		decodeData(t, w, &entries)
		assert.Len(t, entries, 2)

		w = ts.do(t, http.MethodGet, "/api/attendance/today", budi, nil, "")
		require.Equal(t, http.StatusOK, w.Code)
		var today []struct {
			EmployeeID string `json:"employeeId"`
		}
		decodeData(t, w, &today)
		require.Len(t, today, 1)
		assert.Equal(t, "u-budi", today[0].EmployeeID)
	})
}

func TestReportHandler(t *testing.T) {
	ts := newTestServer(t)
	admin := ts.login(t, "admin")

	w := ts.do(t, http.MethodGet, "/api/reports/attendance?startDate=2024-05-10&endDate=2024-05-01", admin, nil, "")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = ts.do(t, http.MethodGet, "/api/reports/attendance?startDate=2024-05-01&endDate=2024-05-31", admin, nil, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = ts.do(t, http.MethodGet, "/api/reports/stock", admin, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	var stock struct {
		TotalProducts int `json:"totalProducts"`
		LowStockCount int `json:"lowStockCount"`
	}
	decodeData(t, w, &stock)
	assert.Equal(t, 0, stock.TotalProducts)
	assert.Equal(t, 0, stock.LowStockCount)

	w = ts.do(t, http.MethodGet, "/api/reports/stock", ts.login(t, "budi"), nil, "")
	assert.Equal(t, http.StatusForbidden, w.Code)
}
