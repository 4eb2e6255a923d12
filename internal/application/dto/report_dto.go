package dto

import "github.com/shopspring/decimal"

// ProductRankingItem fila del ranking de satisfacción.
type ProductRankingItem struct {
	Position       int             `json:"position"`
	ProductID      string          `json:"productId"`
	ProductName    string          `json:"productName"`
	Category       string          `json:"category"`
	Active         bool            `json:"active"`
	FeedbackCount  int64           `json:"feedbackCount"`
	AverageRating  decimal.Decimal `json:"averageRating"`
	Classification string          `json:"classification,omitempty"`
}

// ProductSatisfactionResponse estadísticas de un producto en un período.
type ProductSatisfactionResponse struct {
	ProductID      string           `json:"productId"`
	ProductName    string           `json:"productName"`
	DateFrom       string           `json:"dateFrom,omitempty"`
	DateTo         string           `json:"dateTo,omitempty"`
	FeedbackCount  int64            `json:"feedbackCount"`
	AverageRating  decimal.Decimal  `json:"averageRating"`
	Classification string           `json:"classification,omitempty"`
	Distribution   map[string]int64 `json:"distribution"`
}

// ReportPeriod query del reporte por producto.
type ReportPeriod struct {
	DateFrom string `query:"dateFrom" validate:"omitempty,datetime=2006-01-02"`
	DateTo   string `query:"dateTo" validate:"omitempty,datetime=2006-01-02"`
}
