package dto

// SignedContract contrato firmado recientemente según el CRM.
type SignedContract struct {
	Name        string  `json:"name"`
	SignDate    string  `json:"sign_date"`
	Unit        *string `json:"unit"`
	StartDate   *string `json:"start_date"`
	EndDate     *string `json:"end_date"`
	Rate        *string `json:"rate"`
	GrossIncome *string `json:"gross_income"`
}

// ContractActivity contratos firmados dentro de un periodo.
type ContractActivity struct {
	Count     int              `json:"count"`
	Contracts []SignedContract `json:"contracts"`
}

// ActivityTotals totales absolutos de actividad comercial.
type ActivityTotals struct {
	TotalViewings  int `json:"total_viewings"`
	TotalContracts int `json:"total_contracts"`
}

// ActivitySummary visitas y firmas por ventana temporal (1d, 3d, 7d, 1m, 3m).
type ActivitySummary struct {
	Viewings  map[string]int              `json:"viewings"`
	Contracts map[string]ContractActivity `json:"contracts"`
	Totals    ActivityTotals              `json:"totals"`
}
