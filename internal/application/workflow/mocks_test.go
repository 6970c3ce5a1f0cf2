package workflow

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/hrs/backend/internal/application/document"
	"github.com/hrs/backend/internal/domain/identity"
	"github.com/hrs/backend/internal/domain/reference"
	"github.com/hrs/backend/internal/domain/request"
	"github.com/hrs/backend/internal/domain/shared"
)

type MockRequestRepository struct {
	mock.Mock
}

func (m *MockRequestRepository) FindByID(ctx context.Context, id uuid.UUID) (*request.Request, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*request.Request), args.Error(1)
}

func (m *MockRequestRepository) FindAll(ctx context.Context, filter request.Filter) ([]request.Request, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]request.Request), args.Error(1)
}

func (m *MockRequestRepository) Count(ctx context.Context, filter request.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRequestRepository) FindReserved(ctx context.Context, filter request.ExportFilter) ([]request.Request, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]request.Request), args.Error(1)
}

func (m *MockRequestRepository) Save(ctx context.Context, r *request.Request) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockRequestRepository) SaveWithLock(ctx context.Context, r *request.Request) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockRequestRepository) NextPONumber(ctx context.Context, year int) (string, error) {
	args := m.Called(ctx, year)
	return args.String(0), args.Error(1)
}

type MockHotelRepository struct {
	mock.Mock
}

func (m *MockHotelRepository) FindByID(ctx context.Context, id uuid.UUID) (*reference.Hotel, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*reference.Hotel), args.Error(1)
}

func (m *MockHotelRepository) FindAll(ctx context.Context) ([]reference.Hotel, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]reference.Hotel), args.Error(1)
}

func (m *MockHotelRepository) Save(ctx context.Context, hotel *reference.Hotel) error {
	args := m.Called(ctx, hotel)
	return args.Error(0)
}

type MockEmployeeRepository struct {
	mock.Mock
}

func (m *MockEmployeeRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Employee, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) FindByCode(ctx context.Context, code string) (*identity.Employee, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) FindAll(ctx context.Context) ([]identity.Employee, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]identity.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) Save(ctx context.Context, employee *identity.Employee) error {
	args := m.Called(ctx, employee)
	return args.Error(0)
}

type MockRenderer struct {
	mock.Mock
}

func (m *MockRenderer) RenderPurchaseOrder(ctx context.Context, req *request.Request, hotel *reference.Hotel, employee *identity.Employee) ([]byte, error) {
	args := m.Called(ctx, req, hotel, employee)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockRenderer) RenderExport(ctx context.Context, reqs []request.Request, hotels map[uuid.UUID]*reference.Hotel, filter request.ExportFilter) ([]byte, error) {
	args := m.Called(ctx, reqs, hotels, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

type MockDocumentStore struct {
	mock.Mock
}

func (m *MockDocumentStore) Store(ctx context.Context, data []byte, filename, contentType string, metadata map[string]string) (uuid.UUID, error) {
	args := m.Called(ctx, data, filename, contentType, metadata)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockDocumentStore) Retrieve(ctx context.Context, id uuid.UUID) (*document.StoredDocument, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*document.StoredDocument), args.Error(1)
}

type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

// test fixtures

func fixtureEmployee() *identity.Employee {
	e, _ := identity.NewEmployee("EMP-001", "Karim", "Benali", "k.benali@example.dz", "DRGB", identity.RoleEmployee)
	e.AssignRegion("DRGB", "Direction Régionale Gassi Touil")
	e.OrgUnit = "UN-443"
	e.Department = "Exploitation"
	return e
}

func fixtureHotel() *reference.Hotel {
	h, _ := reference.NewHotel("Hôtel Le Zénith", "Oran", "", reference.RateTable{
		PlainStay: dec(6000),
		HalfBoard: dec(8000),
		FullBoard: dec(9500),
	})
	return h
}

func fixtureRequest(employeeID uuid.UUID) *request.Request {
	start := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	r, _ := request.NewRequest(employeeID, "DRGB", "Oran", "Oran", "", start, start.AddDate(0, 0, 3), "Mission technique")
	r.ClearDomainEvents()
	return r
}
