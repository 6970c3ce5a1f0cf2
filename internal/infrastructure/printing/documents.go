package printing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/hrs/backend/internal/domain/identity"
	"github.com/hrs/backend/internal/domain/reference"
	"github.com/hrs/backend/internal/domain/request"
	"github.com/hrs/backend/internal/domain/shared"
)

// CompanyInfo is the issuing organization printed on documents
type CompanyInfo struct {
	Name    string
	Address string
}

// DocumentRenderer renders the workflow's printable documents from the
// embedded templates and converts them to PDF.
type DocumentRenderer struct {
	engine  *TemplateEngine
	pdf     PDFRenderer
	company CompanyInfo
	logger  *zap.Logger
}

// NewDocumentRenderer creates a new DocumentRenderer
func NewDocumentRenderer(pdf PDFRenderer, company CompanyInfo, logger *zap.Logger) *DocumentRenderer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DocumentRenderer{
		engine:  NewTemplateEngine(),
		pdf:     pdf,
		company: company,
		logger:  logger,
	}
}

// employeeBlock is the identity block printed on a purchase order
type employeeBlock struct {
	Code       string
	Name       string
	RegionName string
	OrgUnit    string
	Department string
}

// purchaseOrderData binds a reserved request to the purchase order template
type purchaseOrderData struct {
	Company            CompanyInfo
	PONumber           string
	IssuedAt           time.Time
	GeneratedAt        time.Time
	Region             string
	Employee           employeeBlock
	ParticipantCount   int
	Destination        string
	City               string
	Country            string
	StayStart          time.Time
	StayEnd            time.Time
	Motive             string
	Hotel              *reference.Hotel
	Formula            reference.Formula
	RoomType           string
	ReservationComment string
	Nights             int
	PricePerNight      decimal.Decimal
	Total              decimal.Decimal
	GrandTotal         decimal.Decimal
	Options            request.ReservationOptions
	HasOptions         bool
}

// RenderPurchaseOrder renders the purchase order PDF for a reserved request
func (r *DocumentRenderer) RenderPurchaseOrder(ctx context.Context, req *request.Request, hotel *reference.Hotel, employee *identity.Employee) ([]byte, error) {
	if req.Finance == nil || req.Reservation == nil {
		return nil, shared.ErrNoDocumentGenerated
	}

	tmpl := GetTemplateForDocType(DocTypePurchaseOrder)
	content, err := LoadTemplateContent(tmpl.FilePath)
	if err != nil {
		return nil, err
	}

	data := r.buildPurchaseOrderData(req, hotel, employee)

	html, err := r.engine.RenderString("purchase_order", content, data)
	if err != nil {
		return nil, err
	}

	result, err := r.pdf.Render(ctx, &RenderRequest{
		HTML:        html,
		PaperSize:   tmpl.PaperSize,
		Orientation: tmpl.Orientation,
		Margins:     tmpl.Margins,
		Title:       "Bon de commande " + req.Finance.PONumber,
	})
	if err != nil {
		return nil, err
	}

	r.logger.Debug("purchase order rendered",
		zap.String("po_number", req.Finance.PONumber),
		zap.Int("pages", result.PageCount))

	return result.PDFData, nil
}

// buildPurchaseOrderData assembles the template data. Identity fields come
// from the snapshot taken at generation time; the live employee record is
// only consulted for fields the snapshot does not carry.
func (r *DocumentRenderer) buildPurchaseOrderData(req *request.Request, hotel *reference.Hotel, employee *identity.Employee) *purchaseOrderData {
	fin := req.Finance
	res := req.Reservation

	emp := employeeBlock{
		Code:       fin.EmployeeSnapshot.Code,
		Name:       fin.EmployeeSnapshot.Name,
		RegionName: fin.EmployeeSnapshot.RegionName,
		OrgUnit:    fin.EmployeeSnapshot.OrgUnit,
		Department: fin.EmployeeSnapshot.Department,
	}
	if employee != nil {
		if emp.Code == "" {
			emp.Code = employee.Code
		}
		if emp.Name == "" {
			emp.Name = employee.FullName()
		}
		if emp.RegionName == "" {
			emp.RegionName = employee.RegionName
		}
		if emp.OrgUnit == "" {
			emp.OrgUnit = employee.OrgUnit
		}
		if emp.Department == "" {
			emp.Department = employee.Department
		}
	}

	region := emp.RegionName
	if region == "" {
		region = req.RegionCode
	}

	participants := fin.ParticipantCount
	if participants < 1 {
		participants = 1
	}

	return &purchaseOrderData{
		Company:            r.company,
		PONumber:           fin.PONumber,
		IssuedAt:           fin.GeneratedAt,
		GeneratedAt:        time.Now(),
		Region:             region,
		Employee:           emp,
		ParticipantCount:   participants,
		Destination:        req.Destination,
		City:               req.City,
		Country:            req.Country,
		StayStart:          req.StayStart(),
		StayEnd:            req.StayEnd(),
		Motive:             req.Motive,
		Hotel:              hotel,
		Formula:            res.Formula,
		RoomType:           res.RoomType,
		ReservationComment: res.Comment,
		Nights:             fin.Nights,
		PricePerNight:      fin.PricePerNight,
		Total:              fin.Total,
		GrandTotal:         fin.Total.Mul(decimal.NewFromInt(int64(participants))),
		Options:            res.Options,
		HasOptions: res.Options.AllowCancellation || res.Options.AllowHotelChange ||
			res.Options.LateReservation || res.Options.PostStayEntry,
	}
}

// exportRow is one purchase order line of the export listing
type exportRow struct {
	PONumber         string
	EmployeeCode     string
	EmployeeName     string
	RegionName       string
	HotelName        string
	Formula          reference.Formula
	StayStart        time.Time
	StayEnd          time.Time
	Nights           int
	Total            decimal.Decimal
	PaymentStatus    request.PaymentStatus
	Paid             bool
	PaymentReference string
}

// exportData binds the reserved requests to the export template
type exportData struct {
	Company     CompanyInfo
	Title       string
	Subtitle    string
	GeneratedAt time.Time
	Count       int
	Rows        []exportRow
	PaidTotal   decimal.Decimal
	UnpaidTotal decimal.Decimal
	GrandTotal  decimal.Decimal
}

// RenderExport renders the tabular purchase order recap
func (r *DocumentRenderer) RenderExport(ctx context.Context, reqs []request.Request, hotels map[uuid.UUID]*reference.Hotel, filter request.ExportFilter) ([]byte, error) {
	tmpl := GetTemplateForDocType(DocTypeStayExport)
	content, err := LoadTemplateContent(tmpl.FilePath)
	if err != nil {
		return nil, err
	}

	data := r.buildExportData(reqs, hotels, filter)

	html, err := r.engine.RenderString("stay_export", content, data)
	if err != nil {
		return nil, err
	}

	result, err := r.pdf.Render(ctx, &RenderRequest{
		HTML:        html,
		PaperSize:   tmpl.PaperSize,
		Orientation: tmpl.Orientation,
		Margins:     tmpl.Margins,
		Title:       data.Title,
	})
	if err != nil {
		return nil, err
	}

	return result.PDFData, nil
}

func (r *DocumentRenderer) buildExportData(reqs []request.Request, hotels map[uuid.UUID]*reference.Hotel, filter request.ExportFilter) *exportData {
	data := &exportData{
		Company:     r.company,
		Title:       "ÉTAT DES BONS DE COMMANDE",
		Subtitle:    exportSubtitle(filter),
		GeneratedAt: time.Now(),
		PaidTotal:   decimal.Zero,
		UnpaidTotal: decimal.Zero,
		GrandTotal:  decimal.Zero,
	}

	for i := range reqs {
		req := &reqs[i]
		if req.Finance == nil || req.Reservation == nil {
			continue
		}

		hotelName := ""
		if hotel, ok := hotels[req.Reservation.HotelID]; ok && hotel != nil {
			hotelName = hotel.Name
		}

		row := exportRow{
			PONumber:         req.Finance.PONumber,
			EmployeeCode:     req.Finance.EmployeeSnapshot.Code,
			EmployeeName:     req.Finance.EmployeeSnapshot.Name,
			RegionName:       req.Finance.EmployeeSnapshot.RegionName,
			HotelName:        hotelName,
			Formula:          req.Reservation.Formula,
			StayStart:        req.StayStart(),
			StayEnd:          req.StayEnd(),
			Nights:           req.Finance.Nights,
			Total:            req.Finance.Total,
			PaymentStatus:    req.Finance.PaymentStatus,
			Paid:             req.Finance.IsPaid(),
			PaymentReference: req.Finance.PaymentReference,
		}
		data.Rows = append(data.Rows, row)

		data.GrandTotal = data.GrandTotal.Add(req.Finance.Total)
		if row.Paid {
			data.PaidTotal = data.PaidTotal.Add(req.Finance.Total)
		} else {
			data.UnpaidTotal = data.UnpaidTotal.Add(req.Finance.Total)
		}
	}
	data.Count = len(data.Rows)

	return data
}

// exportSubtitle describes the active export filters in French
func exportSubtitle(filter request.ExportFilter) string {
	subtitle := "Tous les bons de commande"
	if filter.PaymentStatus != nil {
		if *filter.PaymentStatus == request.PaymentPaid {
			subtitle = "Bons de commande payés"
		} else {
			subtitle = "Bons de commande non payés"
		}
	}
	if filter.RegionCode != "" {
		subtitle += " — structure " + filter.RegionCode
	}
	if filter.From != nil && filter.To != nil {
		subtitle += " — période du " + formatDate(*filter.From) + " au " + formatDate(*filter.To)
	} else if filter.From != nil {
		subtitle += " — à partir du " + formatDate(*filter.From)
	} else if filter.To != nil {
		subtitle += " — jusqu'au " + formatDate(*filter.To)
	}
	return subtitle
}
