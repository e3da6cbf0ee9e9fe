package mondaysync

// Mapas estáticos de nombre de campo semántico -> id opaco de columna, uno por
// tablero. Codifican un contrato implícito con la configuración real del CRM:
// si un tablero cambia de columnas hay que actualizarlos aquí. Un id que deja
// de existir no produce error, solo campos ausentes, por eso viven separados
// del algoritmo de reconciliación (se comprueban aparte).

// RoomColumns tablero MH - Unit Schedule (habitaciones).
var RoomColumns = map[string]string{
	"floor":           "dropdown_mkrs7zx2",
	"category":        "dropdown_mkrx42t8",
	"sqm":             "numeric_mkrxddk6",
	"weekly_rate":     "numeric_mkrxa9hm",
	"mattress_size":   "dropdown_mkrxx9jb",
	"term_status":     "color_mkrx57e1",
	"contract_status": "color_mkvk6y7",
	"washing_machine": "boolean_mksx150g",
	"safe":            "boolean_mkvdrd2k",
}

// ContractColumns tablero Won Deals / Installments (contratos y pagos).
var ContractColumns = map[string]string{
	// Datos del contrato
	"unit":           "text_mktbxcap",      // Unit Booked New
	"length_of_stay": "timerange_mkt9gsnr", // Actual Length of Stay (timeline)
	"gross_income":   "formula_mks34v1y",   // Gross Income
	"rate_agreed":    "numeric_mks2n5fp",   // Rate Agreed (renta semanal)
	"payment_plan":   "color_mks9w1p0",     // Payment Plan (status)
	"nationality":    "country_mks9cg7q",
	"university":     "dropdown_mks9rbmv",
	"stage":          "deal_stage",
	"viewing_date":   "date_mks29j00",
	"sign_date":      "date_mks2y4vg",

	// Vencimientos
	"booking_fee_due":   "date_mkszxxzx",
	"instalment_1_due":  "date_mkszyrpe",
	"instalment_2_due":  "date_mksza278",
	"instalment_3_due":  "date_mkszs0a4",
	"instalment_4_due":  "date_mkszsh2q",
	"instalment_5_due":  "date_mkvmyxgf",

	// Importes por cuota
	"booking_fee_amount":  "numeric_mkvt5vhm",
	"instalment_1_amount": "numeric_mkvt5wym",
	"instalment_2_amount": "numeric_mkvtn7fe",
	"instalment_3_amount": "numeric_mkvtcr5w",
	"instalment_4_amount": "numeric_mkvtq4d7",
	"instalment_5_amount": "numeric_mkvteg65",

	// Estado de pago (columnas status)
	"booking_fee_status":  "color_mksjjgs8",
	"instalment_1_status": "color_mksj58qp",
	"instalment_2_status": "color_mkvm35a8",
	"instalment_3_status": "color_mkvmm56g",
	"instalment_4_status": "color_mkvmj60x",
	"instalment_5_status": "color_mkvmbs6q",

	// Importes pagados
	"booking_fee_paid":  "numeric_mkvttd71",
	"instalment_1_paid": "numeric_mkvt65kz",
	"instalment_2_paid": "numeric_mkvtvhaj",
	"instalment_3_paid": "numeric_mks9ge93",
	"instalment_4_paid": "numeric_mksay7t3",
	"instalment_5_paid": "numeric_mkvmg7qw",

	// Fechas de pago
	"booking_fee_paid_date":  "date_mkvmnthc",
	"instalment_1_paid_date": "date_mkvmv57g",
	"instalment_2_paid_date": "date_mkvmmygn",
	"instalment_3_paid_date": "date_mkvm7kh9",
	"instalment_4_paid_date": "date_mkvmxnhd",
	"instalment_5_paid_date": "date_mkvme5qn",

	// Totales (fórmulas del tablero)
	"total_paid": "formula_mksjgpyh",
	"balance":    "formula_mksj1fzq",
}

// QualifiedColumns tablero heredado de leads cualificados (solo actividad comercial).
var QualifiedColumns = map[string]string{
	"viewing_date": "date_mkr5m8jk",
	"sign_date":    "date_mkr5cxqh",
	"stage":        "status__1",
}

// installmentKeys prefijos de los seis huecos fijos de cuota, indexados por
// número de cuota (0 = booking fee).
var installmentKeys = [...]string{
	"booking_fee",
	"instalment_1",
	"instalment_2",
	"instalment_3",
	"instalment_4",
	"instalment_5",
}
