// Package activity resume la actividad comercial reciente (visitas y firmas)
// leyendo en vivo los dos tableros del CRM: el de deals ganados y el heredado
// de leads cualificados.
package activity

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/AG-g1/more-house/internal/application/dto"
	"github.com/AG-g1/more-house/internal/application/mondaysync"
	"github.com/AG-g1/more-house/internal/infrastructure/monday"
	"github.com/AG-g1/more-house/pkg/config"
)

// periodos de agregación, en días.
var periods = []struct {
	key  string
	days int
}{
	{"1d", 1},
	{"3d", 3},
	{"7d", 7},
	{"1m", 30},
	{"3m", 90},
}

// UseCase resumen de actividad comercial.
type UseCase struct {
	boards mondaysync.BoardReader
	cfg    config.MondayConfig
	now    func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(boards mondaysync.BoardReader, cfg config.MondayConfig) *UseCase {
	return &UseCase{boards: boards, cfg: cfg, now: time.Now}
}

type viewing struct {
	name string
	date time.Time
}

type signedContract struct {
	name        string
	signDate    time.Time
	unit        *string
	startDate   *string
	endDate     *string
	rate        *string
	grossIncome *string
}

// Summary visitas y firmas por ventana temporal. Las visitas se fusionan de
// los dos tableros, deduplicadas por nombre normalizado con prioridad para el
// tablero de deals ganados; las firmas salen solo de ese tablero.
func (uc *UseCase) Summary(ctx context.Context) (dto.ActivitySummary, error) {
	wonItems, err := uc.boards.AllItems(ctx, uc.cfg.ContractsBoardID)
	if err != nil {
		return dto.ActivitySummary{}, fmt.Errorf("actividad: tablero de deals: %w", err)
	}
	qualifiedItems, err := uc.boards.AllItems(ctx, uc.cfg.QualifiedBoardID)
	if err != nil {
		return dto.ActivitySummary{}, fmt.Errorf("actividad: tablero de leads: %w", err)
	}

	var viewings []viewing
	seen := make(map[string]bool)

	for _, item := range wonItems {
		vd := mondaysync.ParseISODate(mondaysync.ColumnText(item, mondaysync.ContractColumns["viewing_date"]))
		if vd == nil {
			continue
		}
		viewings = append(viewings, viewing{name: item.Name, date: *vd})
		seen[nameKey(item.Name)] = true
	}
	for _, item := range qualifiedItems {
		if seen[nameKey(item.Name)] {
			continue
		}
		vd := mondaysync.ParseISODate(mondaysync.ColumnText(item, mondaysync.QualifiedColumns["viewing_date"]))
		if vd == nil {
			continue
		}
		viewings = append(viewings, viewing{name: item.Name, date: *vd})
	}

	var contracts []signedContract
	for _, item := range wonItems {
		sd := mondaysync.ParseISODate(mondaysync.ColumnText(item, mondaysync.ContractColumns["sign_date"]))
		if sd == nil {
			continue
		}
		start, end := rawTimeline(item, mondaysync.ContractColumns["length_of_stay"])
		contracts = append(contracts, signedContract{
			name:        item.Name,
			signDate:    *sd,
			unit:        textPtr(item, mondaysync.ContractColumns["unit"]),
			startDate:   start,
			endDate:     end,
			rate:        textPtr(item, mondaysync.ContractColumns["rate_agreed"]),
			grossIncome: textPtr(item, mondaysync.ContractColumns["gross_income"]),
		})
	}

	today := uc.today()
	out := dto.ActivitySummary{
		Viewings:  make(map[string]int, len(periods)),
		Contracts: make(map[string]dto.ContractActivity, len(periods)),
		Totals: dto.ActivityTotals{
			TotalViewings:  len(viewings),
			TotalContracts: len(contracts),
		},
	}

	for _, p := range periods {
		cutoff := today.AddDate(0, 0, -p.days)

		count := 0
		for _, v := range viewings {
			if !v.date.Before(cutoff) {
				count++
			}
		}
		out.Viewings[p.key] = count

		recent := make([]dto.SignedContract, 0)
		for _, c := range contracts {
			if c.signDate.Before(cutoff) {
				continue
			}
			recent = append(recent, dto.SignedContract{
				Name:        c.name,
				SignDate:    c.signDate.Format("2006-01-02"),
				Unit:        c.unit,
				StartDate:   c.startDate,
				EndDate:     c.endDate,
				Rate:        c.rate,
				GrossIncome: c.grossIncome,
			})
		}
		sort.Slice(recent, func(i, j int) bool {
			return recent[i].SignDate > recent[j].SignDate
		})
		out.Contracts[p.key] = dto.ContractActivity{Count: len(recent), Contracts: recent}
	}

	return out, nil
}

func (uc *UseCase) today() time.Time {
	t := uc.now().UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func nameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func textPtr(item monday.Item, columnID string) *string {
	s := strings.TrimSpace(mondaysync.ColumnText(item, columnID))
	if s == "" {
		return nil
	}
	return &s
}

// rawTimeline devuelve las fechas crudas {from, to} del valor estructurado de
// una columna timeline, sin validarlas.
func rawTimeline(item monday.Item, columnID string) (from, to *string) {
	raw := mondaysync.ColumnRaw(item, columnID)
	if raw == "" {
		return nil, nil
	}
	var tl struct {
		From *string `json:"from"`
		To   *string `json:"to"`
	}
	if err := json.Unmarshal([]byte(raw), &tl); err != nil {
		return nil, nil
	}
	return tl.From, tl.To
}
