package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/hrs/backend/internal/application/document"
	"github.com/hrs/backend/internal/application/workflow"
	"github.com/hrs/backend/internal/domain/identity"
	"github.com/hrs/backend/internal/domain/reference"
	"github.com/hrs/backend/internal/domain/request"
	infraaudit "github.com/hrs/backend/internal/infrastructure/audit"
	"github.com/hrs/backend/internal/infrastructure/event"
	"github.com/hrs/backend/internal/infrastructure/persistence"
	"github.com/hrs/backend/internal/infrastructure/persistence/models"
	"github.com/hrs/backend/internal/infrastructure/storage"
	"github.com/hrs/backend/internal/interfaces/http/middleware"
	"github.com/hrs/backend/internal/interfaces/http/router"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeRenderer stands in for the chromedp pipeline in API tests
type fakeRenderer struct {
	failNext bool
}

func (r *fakeRenderer) RenderPurchaseOrder(ctx context.Context, req *request.Request, hotel *reference.Hotel, employee *identity.Employee) ([]byte, error) {
	if r.failNext {
		return nil, fmt.Errorf("renderer unavailable")
	}
	return []byte("%PDF-1.7 " + req.Finance.PONumber), nil
}

func (r *fakeRenderer) RenderExport(ctx context.Context, reqs []request.Request, hotels map[uuid.UUID]*reference.Hotel, filter request.ExportFilter) ([]byte, error) {
	if r.failNext {
		return nil, fmt.Errorf("renderer unavailable")
	}
	return []byte(fmt.Sprintf("%%PDF-1.7 export %d", len(reqs))), nil
}

// apiFixture is a fully wired API over an in-memory database
type apiFixture struct {
	engine   *gin.Engine
	db       *gorm.DB
	hotels   reference.HotelRepository
	regions  reference.RegionRepository
	staff    identity.EmployeeRepository
	renderer *fakeRenderer

	employee *identity.Employee
	manager  *identity.Employee
	agent    *identity.Employee
	finance  *identity.Employee
	admin    *identity.Employee
	hotel    *reference.Hotel
}

func setupAPI(t *testing.T) *apiFixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.RequestModel{},
		&models.HotelModel{},
		&models.RegionModel{},
		&models.EmployeeModel{},
		&models.AuditEntryModel{},
	))

	logger := zap.NewNop()
	requests := persistence.NewGormRequestRepository(db)
	hotels := persistence.NewGormHotelRepository(db)
	regions := persistence.NewGormRegionRepository(db)
	staff := persistence.NewGormEmployeeRepository(db)
	trail := persistence.NewGormAuditRepository(db)

	bus := event.NewInMemoryEventBus(logger)
	bus.Subscribe(infraaudit.NewRecorder(trail, logger))

	renderer := &fakeRenderer{}
	store := storage.NewMemoryDocumentStore()

	requestSvc := workflow.NewRequestService(requests, staff, bus, logger)
	approvalSvc := workflow.NewApprovalService(requests, bus, logger)
	reservationSvc := workflow.NewReservationService(requests, hotels, staff, renderer, store, bus, logger)
	financeSvc := workflow.NewFinanceService(requests, bus, logger)
	documentSvc := document.NewService(requests, hotels, staff, renderer, store, logger)

	engine := gin.New()
	engine.Use(middleware.RequestID(), middleware.ActorContext())

	r := router.NewRouter(engine)
	r.Register(NewRequestHandler(requestSvc, approvalSvc, reservationSvc, financeSvc, trail))
	r.Register(NewPurchaseOrderHandler(financeSvc, documentSvc))
	r.Register(NewReferenceHandler(hotels, regions))
	r.Register(NewEmployeeHandler(staff))
	r.Register(NewSystemHandler(db))
	r.Setup()

	f := &apiFixture{
		engine:   engine,
		db:       db,
		hotels:   hotels,
		regions:  regions,
		staff:    staff,
		renderer: renderer,
	}
	f.seed(t)
	return f
}

func (f *apiFixture) seed(t *testing.T) {
	t.Helper()
	ctx := context.Background()

	newStaff := func(code, first, last, region string, role identity.Role) *identity.Employee {
		e, err := identity.NewEmployee(code, first, last, "", region, role)
		require.NoError(t, err)
		e.RegionName = "Direction Régionale Centre"
		e.OrgUnit = "310"
		e.Department = "Exploitation"
		require.NoError(t, f.staff.Save(ctx, e))
		return e
	}

	f.employee = newStaff("EMP-204", "Karim", "Benali", "DRC", identity.RoleEmployee)
	f.manager = newStaff("EMP-050", "Samia", "Hadj", "DRC", identity.RoleManager)
	f.agent = newStaff("EMP-301", "Yacine", "Brahimi", "DG", identity.RoleAgent)
	f.finance = newStaff("EMP-410", "Nadia", "Saadi", "DG", identity.RoleFinance)
	f.admin = newStaff("EMP-001", "Admin", "Central", "DG", identity.RoleAdmin)

	hotel, err := reference.NewHotel("Hôtel El Aurassi", "Alger", "", reference.RateTable{
		PlainStay: decimal.NewFromInt(9000),
		HalfBoard: decimal.NewFromInt(12000),
		FullBoard: decimal.NewFromInt(15000),
	})
	require.NoError(t, err)
	require.NoError(t, f.hotels.Save(ctx, hotel))
	f.hotel = hotel
}

// do performs a request against the wired API, optionally acting as an
// employee
func (f *apiFixture) do(t *testing.T, method, path string, body any, actor *identity.Employee) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if actor != nil {
		req.Header.Set(middleware.ActorIDHeader, actor.ID.String())
		req.Header.Set(middleware.ActorRegionHeader, actor.RegionCode)
		req.Header.Set(middleware.ActorRoleHeader, actor.Role.String())
	}

	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, req)
	return w
}

// decode parses the standard response envelope
func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func dataOf(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	resp := decode(t, w)
	require.Equal(t, true, resp["success"], "expected success envelope, got %s", w.Body.String())
	data, ok := resp["data"].(map[string]any)
	require.True(t, ok, "expected object data, got %s", w.Body.String())
	return data
}

func errorOf(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	resp := decode(t, w)
	require.Equal(t, false, resp["success"])
	errInfo, ok := resp["error"].(map[string]any)
	require.True(t, ok)
	return errInfo
}

// fileRequest files a fresh accommodation request and returns its ID
func (f *apiFixture) fileRequest(t *testing.T) string {
	t.Helper()
	w := f.do(t, http.MethodPost, "/api/v1/requests", map[string]any{
		"employee_id": f.employee.ID.String(),
		"destination": "Hôtel El Aurassi",
		"city":        "Alger",
		"start_date":  time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		"end_date":    time.Date(2026, 3, 13, 0, 0, 0, 0, time.UTC),
		"motive":      "Mission de supervision",
	}, f.employee)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return dataOf(t, w)["id"].(string)
}

// approve runs the manager decision on a request
func (f *apiFixture) approve(t *testing.T, id string) {
	t.Helper()
	w := f.do(t, http.MethodPatch, "/api/v1/requests/"+id+"/decision", map[string]any{
		"approved": true,
		"comment":  "Accord",
	}, f.manager)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

// reserve books the request into the seeded hotel
func (f *apiFixture) reserve(t *testing.T, id string) map[string]any {
	t.Helper()
	w := f.do(t, http.MethodPatch, "/api/v1/requests/"+id+"/reservation", map[string]any{
		"hotel_id":  f.hotel.ID.String(),
		"formula":   "HALF_BOARD",
		"room_type": "Single",
	}, f.agent)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return dataOf(t, w)
}
