package http

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type attendanceData struct {
	ID             string  `json:"id"`
	EmployeeID     string  `json:"employeeId"`
	EmployeeName   string  `json:"employeeName"`
	Status         string  `json:"status"`
	CheckOutTime   *string `json:"checkOutTime"`
	ShiftStartTime string  `json:"shiftStartTime"`
	ShiftEndTime   string  `json:"shiftEndTime"`
	CheckInImage   *string `json:"checkInImage"`
}

// multipartBody builds a form with the given fields and optional files (field -> filename).
func multipartBody(t *testing.T, fields, files map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	for field, name := range files {
		part, err := mw.CreateFormFile(field, name)
		require.NoError(t, err)
		_, err = part.Write([]byte("not really an image"))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func (ts *testServer) checkIn(t *testing.T, token string, fields map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	body, contentType := multipartBody(t, fields, nil)
	return ts.do(t, http.MethodPost, "/api/attendance/checkin", token, body, contentType)
}

func TestAttendanceHandler_CheckInCheckOut(t *testing.T) {
	ts := newTestServer(t)
	budi := ts.login(t, "budi")

	w := ts.checkIn(t, budi, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var opened attendanceData
	decodeData(t, w, &opened)
	assert.Equal(t, "u-budi", opened.EmployeeID)
	assert.Equal(t, "Budi", opened.EmployeeName)
	assert.True(t, strings.HasSuffix(opened.Status, ", Pending"), opened.Status)
	assert.Nil(t, opened.CheckOutTime)
	assert.Nil(t, opened.CheckInImage)

	t.Run("second check-in conflicts", func(t *testing.T) {
		w := ts.checkIn(t, budi, nil)
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("open session", func(t *testing.T) {
		w := ts.do(t, http.MethodGet, "/api/attendance/open", budi, nil, "")
		require.Equal(t, http.StatusOK, w.Code)
		var open attendanceData
		decodeData(t, w, &open)
		assert.Equal(t, opened.ID, open.ID)
	})

	t.Run("another employee cannot check out", func(t *testing.T) {
		w := ts.do(t, http.MethodPost, "/api/attendance/checkout/"+opened.ID, ts.login(t, "sari"), nil, "")
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("check out", func(t *testing.T) {
		w := ts.do(t, http.MethodPost, "/api/attendance/checkout/"+opened.ID, budi, nil, "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var closed attendanceData
		decodeData(t, w, &closed)
		assert.NotNil(t, closed.CheckOutTime)
		assert.False(t, strings.HasSuffix(closed.Status, ", Pending"), closed.Status)

		w = ts.do(t, http.MethodGet, "/api/attendance/open", budi, nil, "")
		assert.Equal(t, http.StatusNotFound, w.Code)

		w = ts.do(t, http.MethodPost, "/api/attendance/checkout/"+opened.ID, budi, nil, "")
		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestAttendanceHandler_CheckInRules(t *testing.T) {
	ts := newTestServer(t)

	t.Run("no shift today", func(t *testing.T) {
		w := ts.checkIn(t, ts.login(t, "sari"), nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("employee cannot check in someone else", func(t *testing.T) {
		w := ts.checkIn(t, ts.login(t, "sari"), map[string]string{"employeeId": "u-budi"})
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("admin cannot check in an unscheduled employee", func(t *testing.T) {
		w := ts.checkIn(t, ts.login(t, "admin"), map[string]string{"data": `{"employeeId":"u-sari"}`})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("photo must be an image", func(t *testing.T) {
		body, contentType := multipartBody(t, nil, map[string]string{"checkInImage": "notes.pdf"})
		w := ts.do(t, http.MethodPost, "/api/attendance/checkin", ts.login(t, "budi"), body, contentType)
		require.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Contains(t, decode(t, w).Error.Details, "checkInImage")
	})

	t.Run("admin checks in a scheduled employee", func(t *testing.T) {
		w := ts.checkIn(t, ts.login(t, "admin"), map[string]string{"data": `{"employeeId":"u-budi"}`})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		var a attendanceData
		decodeData(t, w, &a)
		assert.Equal(t, "u-budi", a.EmployeeID)
	})
}

func TestAttendanceHandler_ListScopeAndAdminActions(t *testing.T) {
	ts := newTestServer(t)
	budi := ts.login(t, "budi")
	admin := ts.login(t, "admin")

	w := ts.checkIn(t, budi, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	var a attendanceData
	decodeData(t, w, &a)

	t.Run("employee sees own records", func(t *testing.T) {
		w := ts.do(t, http.MethodGet, "/api/attendance?employeeId=u-sari", budi, nil, "")
		require.Equal(t, http.StatusOK, w.Code)
		var list struct {
			TotalCount  int64            `json:"totalCount"`
			Attendances []attendanceData `json:"attendances"`
		}
		decodeData(t, w, &list)
		require.Len(t, list.Attendances, 1)
		assert.Equal(t, "u-budi", list.Attendances[0].EmployeeID)
	})

	t.Run("bad date filter", func(t *testing.T) {
		w := ts.do(t, http.MethodGet, "/api/attendance?startDate=05-01-2024", admin, nil, "")
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("employee cannot update", func(t *testing.T) {
		w := ts.doJSON(t, http.MethodPut, "/api/attendance/"+a.ID, budi, map[string]string{"employeeName": "Hacker"})
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("admin update recomputes status", func(t *testing.T) {
		w := ts.doJSON(t, http.MethodPut, "/api/attendance/"+a.ID, admin, map[string]string{
			"checkInTime":  a.ShiftStartTime,
			"checkOutTime": a.ShiftEndTime,
			"status":       "Late, Overworked",
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var updated attendanceData
		decodeData(t, w, &updated)
		assert.Equal(t, "On Time, On Time", updated.Status)
	})

	t.Run("export", func(t *testing.T) {
		w := ts.do(t, http.MethodGet, "/api/attendance/export", budi, nil, "")
		assert.Equal(t, http.StatusForbidden, w.Code)

		w = ts.do(t, http.MethodGet, "/api/attendance/export", admin, nil, "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, xlsxContentType, w.Header().Get("Content-Type"))
		assert.Contains(t, w.Header().Get("Content-Disposition"), ".xlsx")

		f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
		require.NoError(t, err)
		defer f.Close()
		rows, err := f.GetRows("Attendance")
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, "Budi", rows[1][1])
		assert.Equal(t, "On Time, On Time", rows[1][6])
	})

	t.Run("admin delete", func(t *testing.T) {
		w := ts.do(t, http.MethodDelete, "/api/attendance/"+a.ID, admin, nil, "")
		require.Equal(t, http.StatusOK, w.Code)

		w = ts.do(t, http.MethodGet, "/api/attendance/"+a.ID, admin, nil, "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
