package types

import "time"

// PlateQuery is a normalized, 7-character license plate
type PlateQuery string

func (p PlateQuery) String() string {
	return string(p)
}

// FipeCode identifies a model/year in the FIPE pricing index (######-#)
type FipeCode string

func (c FipeCode) String() string {
	return string(c)
}

// Source marks which upstream supplied the final valuation
type Source string

const (
	SourcePrimary      Source = "primary"
	SourceCrossChecked Source = "cross-checked"
)

func (s Source) String() string {
	return string(s)
}

// FipeCandidate is a single valuation candidate returned by the
// plate registry for a plate lookup
type FipeCandidate struct {
	FipeCode          FipeCode `json:"fipe_code"`
	ReferenceMonth    string   `json:"reference_month"`
	Brand             string   `json:"brand"`
	Model             string   `json:"model"`
	YearModel         string   `json:"year_model"`
	Fuel              string   `json:"fuel"`
	DepreciationToken string   `json:"depreciation_token,omitempty"`
	Correspondence    float64  `json:"correspondence"`
	Similarity        float64  `json:"similarity"`
	RawValue          float64  `json:"raw_value"`
	HasRawValue       bool     `json:"has_raw_value"` // false if the raw value was unparseable
}

// VehicleInfo is the registry's own description of the vehicle
type VehicleInfo struct {
	Brand           string `json:"brand"`
	Model           string `json:"model"`
	YearManufacture string `json:"year_manufacture"`
	YearModel       string `json:"year_model"`
	Color           string `json:"color"`
	Fuel            string `json:"fuel"`
	Chassis         string `json:"chassis"`
}

// PlateLookup is the strict form of a plate registry response
type PlateLookup struct {
	Vehicle    VehicleInfo     `json:"vehicle"`
	Candidates []FipeCandidate `json:"candidates"`
}

// PlateMatch is the outcome of candidate selection for a plate
type PlateMatch struct {
	Vehicle   VehicleInfo   `json:"vehicle"`
	Candidate FipeCandidate `json:"candidate"`
}

// ReferenceTable is a dated snapshot of the FIPE index
type ReferenceTable struct {
	PeriodLabel string `json:"period_label"`
	Code        int    `json:"code"`
}

// PriceQuote is the strict form of a secondary provider price response
type PriceQuote struct {
	FipeCode       FipeCode `json:"fipe_code"`
	ReferenceMonth string   `json:"reference_month"`
	FormattedValue string   `json:"formatted_value"`
	Brand          string   `json:"brand"`
	Model          string   `json:"model"`
	Fuel           string   `json:"fuel"`
	YearModel      int      `json:"year_model"`
}

// ValuationPoint is the cross-checked valuation of a fipe code
// for a single reference table
type ValuationPoint struct {
	QueriedAt      time.Time `json:"queried_at"`
	ReferenceMonth string    `json:"reference_month"`
	PeriodLabel    string    `json:"period_label,omitempty"`
	FormattedValue string    `json:"formatted_value"`
	Value          float64   `json:"value"`
	TableCode      int       `json:"table_code"` // 0 is the current table
}

// ValuationSeries is a sequence of points, ascending by table code
type ValuationSeries []ValuationPoint

// Trend holds the derived statistics of a valuation series.
// It is only available for series of at least two points
type Trend struct {
	Available       bool    `json:"available"`
	First           float64 `json:"first"`
	Previous        float64 `json:"previous"`
	Last            float64 `json:"last"`
	VariationRecent float64 `json:"variation_recent"`
	VariationWindow float64 `json:"variation_window"`
}

// SourceFlags records where the final valuation came from
type SourceFlags struct {
	Source                Source `json:"source"`
	PrimaryReferenceMonth string `json:"primary_reference_month"`
	CrossChecked          bool   `json:"cross_checked"`
}

// ResolvedVehicle is the answer to a plate resolution
type ResolvedVehicle struct {
	Plate             PlateQuery  `json:"plate"`
	Brand             string      `json:"brand"`
	Model             string      `json:"model"`
	YearManufacture   string      `json:"year_manufacture"`
	YearModel         string      `json:"year_model"`
	Color             string      `json:"color"`
	Fuel              string      `json:"fuel"`
	FipeCode          FipeCode    `json:"fipe_code"`
	Chassis           string      `json:"chassis"`
	Renavam           string      `json:"renavam"`
	DepreciationToken string      `json:"depreciation_token,omitempty"`
	SourceFlags       SourceFlags `json:"source_flags"`
	Valuation         float64     `json:"valuation"`
}

// HistoryResult is the answer to a history resolution
type HistoryResult struct {
	UpdatedAt  time.Time       `json:"updated_at"`
	FipeCode   FipeCode        `json:"fipe_code"`
	Series     ValuationSeries `json:"series"`
	Trend      Trend           `json:"trend"`
	WindowSize int             `json:"window_size"`
}

// BrandsQuery filters the registry's brand catalog.
// Zero fields are left out of the upstream request
type BrandsQuery struct {
	VehicleType   *int
	ReferenceDate string
}

// ModelsQuery filters the registry's model catalog
type ModelsQuery struct {
	BrandCode        *int
	BrandDescription string
	ReferenceDate    string
}
