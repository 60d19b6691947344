package services

import (
	"context"
	"encoding/json"
	"strconv"

	"service_reporting/internal/apperr"
	"service_reporting/internal/domain"
	"service_reporting/internal/utils"

	"gorm.io/gorm"
)

// History page sizes.
const (
	DefaultPerPage = 10
	MaxPerPage     = 100
)

// ReportService answers the read side: a department's own history, the
// cross-department yearly matrix and the flat export.
type ReportService struct {
	db    *gorm.DB
	clock utils.Clock
}

func NewReportService(db *gorm.DB, clock utils.Clock) *ReportService {
	return &ReportService{db: db, clock: clock}
}

// HistoryQuery filters and pages a department's records. Nil Year or Month means no filter.
type HistoryQuery struct {
	Page    int
	PerPage int
	Year    *int
	Month   *int
}

func (q *HistoryQuery) normalize() {
	if q.Page < 1 {
		q.Page = 1
	}
	switch {
	case q.PerPage < 1:
		q.PerPage = DefaultPerPage
	case q.PerPage > MaxPerPage:
		q.PerPage = MaxPerPage
	}
}

// HistoryItem is one record as listed in a department's history.
type HistoryItem struct {
	ID           uint   `json:"id"`
	Month        int    `json:"month"`
	Year         int    `json:"year"`
	ServiceCount int    `json:"service_count"`
	Department   string `json:"department"`
}

// Pagination describes where a history page sits in the full result.
type Pagination struct {
	Page         int   `json:"page"`
	PerPage      int   `json:"per_page"`
	TotalPages   int   `json:"total_pages"`
	TotalRecords int64 `json:"total_records"`
	HasNext      bool  `json:"has_next"`
	HasPrev      bool  `json:"has_prev"`
}

// HistoryPage is one page of history with its pagination metadata.
type HistoryPage struct {
	Items      []HistoryItem `json:"history"`
	Pagination Pagination    `json:"pagination"`
}

// History lists departmentID's records, newest period first.
func (s *ReportService) History(ctx context.Context, departmentID uint, q HistoryQuery) (*HistoryPage, error) {
	q.normalize()
	query := s.db.WithContext(ctx).Model(&domain.Service{}).Where("department_id = ?", departmentID)
	if q.Year != nil {
		query = query.Where("year = ?", *q.Year)
	}
	if q.Month != nil {
		query = query.Where("month = ?", *q.Month)
	}
	query = query.Session(&gorm.Session{}) // count and page from the same filters

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, apperr.Internal("count history", err)
	}
	var records []domain.Service
	err := query.Preload("Department").
		Order("year DESC").Order("month DESC").Order("id DESC").
		Offset((q.Page - 1) * q.PerPage).Limit(q.PerPage).
		Find(&records).Error
	if err != nil {
		return nil, apperr.Internal("load history", err)
	}

	items := make([]HistoryItem, 0, len(records))
	for _, r := range records {
		items = append(items, HistoryItem{
			ID:           r.ID,
			Month:        r.Month,
			Year:         r.Year,
			ServiceCount: r.ServiceCount,
			Department:   r.Department.Name,
		})
	}
	totalPages := int((total + int64(q.PerPage) - 1) / int64(q.PerPage))
	return &HistoryPage{
		Items: items,
		Pagination: Pagination{
			Page:         q.Page,
			PerPage:      q.PerPage,
			TotalPages:   totalPages,
			TotalRecords: total,
			HasNext:      q.Page < totalPages,
			HasPrev:      q.Page > 1,
		},
	}, nil
}

// ReportRow is one department's twelve monthly cells. A nil cell is a month
// that has not happened yet; 0 is a past month nobody reported.
type ReportRow struct {
	Department string
	Months     [12]*int
}

func (r ReportRow) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, 13)
	m["department"] = r.Department
	for i, v := range r.Months {
		m[strconv.Itoa(i+1)] = v
	}
	return json.Marshal(m)
}

func (r *ReportRow) UnmarshalJSON(b []byte) error {
	var m map[string]json.RawMessage
	if err := json.Unmarshal(b, &m); err != nil {
		return err
	}
	if err := json.Unmarshal(m["department"], &r.Department); err != nil {
		return err
	}
	for i := range r.Months {
		raw, ok := m[strconv.Itoa(i+1)]
		if !ok {
			continue
		}
		if err := json.Unmarshal(raw, &r.Months[i]); err != nil {
			return err
		}
	}
	return nil
}

type YearlyReport struct {
	Year   int         `json:"year"`
	Report []ReportRow `json:"report"`
}

// YearlyReport builds the department by month matrix for year.
func (s *ReportService) YearlyReport(ctx context.Context, year int) (*YearlyReport, error) {
	if year < 1 {
		return nil, apperr.Validation("Year is required")
	}
	db := s.db.WithContext(ctx)

	var departments []domain.Department
	if err := db.Order("id").Find(&departments).Error; err != nil {
		return nil, apperr.Internal("load departments", err)
	}
	var records []domain.Service
	if err := db.Where("year = ?", year).Find(&records).Error; err != nil {
		return nil, apperr.Internal("load services", err)
	}
	counts := make(map[uint]map[int]int, len(departments))
	for _, r := range records {
		if counts[r.DepartmentID] == nil {
			counts[r.DepartmentID] = make(map[int]int, 12)
		}
		counts[r.DepartmentID][r.Month] = r.ServiceCount
	}

	now := s.clock.Now()
	rows := make([]ReportRow, 0, len(departments))
	for _, d := range departments {
		row := ReportRow{Department: d.Name}
		for month := 1; month <= 12; month++ {
			if utils.IsFuturePeriod(year, month, now) {
				continue
			}
			v := counts[d.ID][month] // zero when unreported
			row.Months[month-1] = &v
		}
		rows = append(rows, row)
	}
	return &YearlyReport{Year: year, Report: rows}, nil
}

// ExportRow is one service record flattened for tabular export.
type ExportRow struct {
	Department   string
	Month        int
	Year         int
	ServiceCount int
}

// ExportRows returns every record across all departments and years.
func (s *ReportService) ExportRows(ctx context.Context) ([]ExportRow, error) {
	var rows []ExportRow
	err := s.db.WithContext(ctx).Model(&domain.Service{}).
		Select("department.name AS department, service.month, service.year, service.service_count").
		Joins("JOIN department ON department.id = service.department_id").
		Order("department.id").Order("service.year").Order("service.month").
		Scan(&rows).Error
	if err != nil {
		return nil, apperr.Internal("load export rows", err)
	}
	return rows, nil
}
