package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-ledger/backend/internal/domain/entity"
)

// CategorySelectionRequest names one category included in a report.
type CategorySelectionRequest struct {
	CategoryID     string `json:"category_id" binding:"required,uuid"`
	IncludeSubtree bool   `json:"include_subtree"`
}

// GenerateReportRequest represents the request body for ad hoc report
// generation. The same shape, plus a name, is stored by saved reports.
type GenerateReportRequest struct {
	Kind             string                     `json:"kind" binding:"required,oneof=flow share value"`
	PeriodType       string                     `json:"period_type" binding:"required"`
	PeriodStart      *string                    `json:"period_start,omitempty"`
	PeriodEnd        *string                    `json:"period_end,omitempty"`
	Division         string                     `json:"division,omitempty"`
	Selections       []CategorySelectionRequest `json:"selections" binding:"required,min=1,dive"`
	TargetCurrencyID string                     `json:"target_currency_id" binding:"required,uuid"`
	Algorithm        string                     `json:"algorithm,omitempty"`
}

// SaveReportRequest represents the request body for saving a report definition.
type SaveReportRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
	GenerateReportRequest
}

// ReportSpecResponse represents a saved report definition in API responses.
type ReportSpecResponse struct {
	ID               string                     `json:"id"`
	Name             string                     `json:"name"`
	Kind             string                     `json:"kind"`
	PeriodType       string                     `json:"period_type"`
	PeriodStart      *string                    `json:"period_start,omitempty"`
	PeriodEnd        *string                    `json:"period_end,omitempty"`
	Division         string                     `json:"division"`
	Selections       []CategorySelectionRequest `json:"selections"`
	TargetCurrencyID string                     `json:"target_currency_id"`
	Algorithm        string                     `json:"algorithm"`
	CreatedAt        time.Time                  `json:"created_at"`
	UpdatedAt        time.Time                  `json:"updated_at"`
}

// ReportSpecListResponse represents the response for listing saved reports.
type ReportSpecListResponse struct {
	Reports []ReportSpecResponse `json:"reports"`
}

// FlowBucketResponse represents one time bucket of a flow report.
type FlowBucketResponse struct {
	Start      string            `json:"start"`
	End        string            `json:"end"`
	Label      string            `json:"label"`
	Value      string            `json:"value"`
	ByCurrency map[string]string `json:"by_currency,omitempty"`
}

// CategoryShareResponse represents one category's percentage of the report total.
type CategoryShareResponse struct {
	CategoryID string `json:"category_id"`
	Value      string `json:"value"`
	Percent    string `json:"percent"`
}

// CategoryValueResponse represents one category's aggregated value.
type CategoryValueResponse struct {
	CategoryID string            `json:"category_id"`
	Value      string            `json:"value"`
	ByCurrency map[string]string `json:"by_currency,omitempty"`
}

// ReportResponse represents a generated report. Exactly one of the data
// fields is populated, matched by Kind.
type ReportResponse struct {
	Kind          string                  `json:"kind"`
	ResolvedStart string                  `json:"resolved_start"`
	ResolvedEnd   string                  `json:"resolved_end"`
	CurrencyID    string                  `json:"currency_id"`
	Flow          []FlowBucketResponse    `json:"flow,omitempty"`
	Shares        []CategoryShareResponse `json:"shares,omitempty"`
	Values        []CategoryValueResponse `json:"values,omitempty"`
}

// ToReportSpecResponse converts a domain ReportSpec entity to a ReportSpecResponse DTO.
func ToReportSpecResponse(spec *entity.ReportSpec) ReportSpecResponse {
	selections := make([]CategorySelectionRequest, len(spec.Selections))
	for i, selection := range spec.Selections {
		selections[i] = CategorySelectionRequest{
			CategoryID:     selection.CategoryID.String(),
			IncludeSubtree: selection.IncludeSubtree,
		}
	}
	response := ReportSpecResponse{
		ID:               spec.ID.String(),
		Name:             spec.Name,
		Kind:             string(spec.Kind),
		PeriodType:       string(spec.PeriodType),
		Division:         string(spec.Division),
		Selections:       selections,
		TargetCurrencyID: spec.TargetCurrencyID.String(),
		Algorithm:        string(spec.Algorithm),
		CreatedAt:        spec.CreatedAt,
		UpdatedAt:        spec.UpdatedAt,
	}
	if spec.PeriodStart != nil {
		start := spec.PeriodStart.Format("2006-01-02")
		response.PeriodStart = &start
	}
	if spec.PeriodEnd != nil {
		end := spec.PeriodEnd.Format("2006-01-02")
		response.PeriodEnd = &end
	}
	return response
}

// ToReportSpecListResponse converts a list of saved reports to ReportSpecListResponse.
func ToReportSpecListResponse(specs []*entity.ReportSpec) ReportSpecListResponse {
	out := make([]ReportSpecResponse, len(specs))
	for i, spec := range specs {
		out[i] = ToReportSpecResponse(spec)
	}
	return ReportSpecListResponse{Reports: out}
}

// ToReportResponse converts a generated Report to a ReportResponse DTO.
func ToReportResponse(report *entity.Report) ReportResponse {
	response := ReportResponse{
		Kind:          string(report.Kind),
		ResolvedStart: report.ResolvedStart.Format("2006-01-02"),
		ResolvedEnd:   report.ResolvedEnd.Format("2006-01-02"),
		CurrencyID:    report.CurrencyID.String(),
	}
	switch report.Kind {
	case entity.ReportKindFlow:
		response.Flow = make([]FlowBucketResponse, len(report.Flow))
		for i, bucket := range report.Flow {
			response.Flow[i] = FlowBucketResponse{
				Start:      bucket.Start.Format("2006-01-02"),
				End:        bucket.End.Format("2006-01-02"),
				Label:      bucket.Label,
				Value:      bucket.Value.StringFixed(2),
				ByCurrency: toByCurrency(bucket.ByCurrency),
			}
		}
	case entity.ReportKindShare:
		response.Shares = make([]CategoryShareResponse, len(report.Shares))
		for i, share := range report.Shares {
			response.Shares[i] = CategoryShareResponse{
				CategoryID: share.CategoryID.String(),
				Value:      share.Value.StringFixed(2),
				Percent:    share.Percent.StringFixed(2),
			}
		}
	case entity.ReportKindValue:
		response.Values = make([]CategoryValueResponse, len(report.Values))
		for i, value := range report.Values {
			response.Values[i] = CategoryValueResponse{
				CategoryID: value.CategoryID.String(),
				Value:      value.Value.StringFixed(2),
				ByCurrency: toByCurrency(value.ByCurrency),
			}
		}
	}
	return response
}

func toByCurrency(values map[uuid.UUID]decimal.Decimal) map[string]string {
	if len(values) == 0 {
		return nil
	}
	out := make(map[string]string, len(values))
	for currencyID, value := range values {
		out[currencyID.String()] = value.StringFixed(2)
	}
	return out
}
