package cashflow

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AG-g1/more-house/internal/domain/repository"
)

type fakeRepo struct {
	err       error
	scheduled []repository.BucketAmount
	weekly    []repository.BucketAmount
	received  []repository.BucketAmount
	opex      []repository.BucketAmount
	inflows   decimal.Decimal
	expected  []repository.ExpectedPayment
	overdue   []repository.OverduePayment
}

func (f *fakeRepo) ScheduledByMonth(context.Context) ([]repository.BucketAmount, error) {
	return f.scheduled, f.err
}

func (f *fakeRepo) ScheduledByWeek(context.Context) ([]repository.BucketAmount, error) {
	return f.weekly, f.err
}

func (f *fakeRepo) ReceivedByMonth(context.Context) ([]repository.BucketAmount, error) {
	return f.received, f.err
}

func (f *fakeRepo) OpexByMonth(context.Context) ([]repository.BucketAmount, error) {
	return f.opex, f.err
}

func (f *fakeRepo) ExpectedInflows(context.Context, time.Time, time.Time) (decimal.Decimal, error) {
	return f.inflows, f.err
}

func (f *fakeRepo) ExpectedPayments(context.Context, time.Time, time.Time) ([]repository.ExpectedPayment, error) {
	return f.expected, f.err
}

func (f *fakeRepo) OverduePayments(context.Context, time.Time) ([]repository.OverduePayment, error) {
	return f.overdue, f.err
}

func month(y int, m time.Month) time.Time {
	return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
}

// newTestUseCase fija el reloj al lunes 2026-08-31.
func newTestUseCase(repo *fakeRepo) *UseCase {
	return &UseCase{repo: repo, now: func() time.Time {
		return time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC)
	}}
}

func TestSummary(t *testing.T) {
	repo := &fakeRepo{inflows: decimal.RequireFromString("45200.50")}

	out := newTestUseCase(repo).Summary(context.Background())

	assert.Equal(t, "2026-08", out.Month)
	assert.True(t, out.ExpectedInflows.Equal(decimal.RequireFromString("45200.50")))
	assert.Equal(t, "2026-08-31", out.AsOf)
	assert.Empty(t, out.Note)
}

func TestSummaryDegradesOnError(t *testing.T) {
	repo := &fakeRepo{err: errors.New("sin conexión")}

	out := newTestUseCase(repo).Summary(context.Background())

	assert.True(t, out.ExpectedInflows.IsZero())
	assert.Equal(t, "Database not initialized", out.Note)
}

func TestMonthlyOverviewRunningBalance(t *testing.T) {
	repo := &fakeRepo{
		scheduled: []repository.BucketAmount{
			{Bucket: month(2026, 8), Amount: decimal.NewFromInt(50000)},
			{Bucket: month(2026, 10), Amount: decimal.NewFromInt(30000)},
		},
		received: []repository.BucketAmount{
			{Bucket: month(2026, 8), Amount: decimal.NewFromInt(48000)},
		},
		opex: []repository.BucketAmount{
			{Bucket: month(2026, 8), Amount: decimal.NewFromInt(20000)},
			{Bucket: month(2026, 9), Amount: decimal.NewFromInt(20000)},
		},
	}

	out := newTestUseCase(repo).MonthlyOverview(context.Background(), 3)

	require.Len(t, out.Periods, 3)

	aug := out.Periods[0]
	assert.Equal(t, "2026-08", aug.Month)
	assert.True(t, aug.Inflows.Equal(decimal.NewFromInt(50000)))
	assert.True(t, aug.ActualInflows.Equal(decimal.NewFromInt(48000)))
	assert.True(t, aug.Outflows.Equal(decimal.NewFromInt(20000)))
	assert.True(t, aug.NetCashflow.Equal(decimal.NewFromInt(30000)))
	assert.True(t, aug.RunningBalance.Equal(decimal.NewFromInt(30000)))

	sep := out.Periods[1]
	assert.True(t, sep.Inflows.IsZero())
	assert.True(t, sep.NetCashflow.Equal(decimal.NewFromInt(-20000)))
	assert.True(t, sep.RunningBalance.Equal(decimal.NewFromInt(10000)))

	oct := out.Periods[2]
	assert.True(t, oct.RunningBalance.Equal(decimal.NewFromInt(40000)))
}

func TestMonthlyOverviewDegradesOnError(t *testing.T) {
	repo := &fakeRepo{err: errors.New("sin conexión")}

	out := newTestUseCase(repo).MonthlyOverview(context.Background(), 0)

	assert.Empty(t, out.Periods)
	assert.Equal(t, "Database not initialized", out.Note)
}

func TestWeeklyOverviewZeroFill(t *testing.T) {
	repo := &fakeRepo{weekly: []repository.BucketAmount{
		{Bucket: time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC), Amount: decimal.NewFromInt(12000), Count: 4},
	}}

	out := newTestUseCase(repo).WeeklyOverview(context.Background(), 3)

	require.Len(t, out.Periods, 3)
	assert.Equal(t, "2026-08-31", out.Periods[0].WeekStart)
	assert.True(t, out.Periods[0].ExpectedInflows.IsZero())
	assert.Zero(t, out.Periods[0].PaymentsDue)
	assert.True(t, out.Periods[1].ExpectedInflows.Equal(decimal.NewFromInt(12000)))
	assert.Equal(t, 4, out.Periods[1].PaymentsDue)
}

func TestExpectedPaymentsDefaultsAndTotal(t *testing.T) {
	repo := &fakeRepo{expected: []repository.ExpectedPayment{
		{ID: 1, ContractID: 5, RoomID: "2.1", ResidentName: "Ana Pérez",
			DueDate: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
			Amount:  decimal.NewFromInt(3000), PaymentType: "rent", Status: "pending"},
		{ID: 2, ContractID: 6, RoomID: "2.2", ResidentName: "Luis Gómez",
			DueDate: time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
			Amount:  decimal.NewFromInt(2500), PaymentType: "rent", Status: "pending"},
	}}

	out := newTestUseCase(repo).ExpectedPayments(context.Background(), time.Time{}, time.Time{})

	assert.Equal(t, "2026-08-31", out.From)
	assert.Equal(t, "2026-11-29", out.To)
	assert.Equal(t, 2, out.Count)
	assert.True(t, out.Total.Equal(decimal.NewFromInt(5500)))
}

func TestOverduePayments(t *testing.T) {
	repo := &fakeRepo{overdue: []repository.OverduePayment{
		{ID: 1, RoomID: "2.1", ResidentName: "Ana Pérez",
			DueDate: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
			Amount:  decimal.NewFromInt(3000), DaysOverdue: 30},
	}}

	out := newTestUseCase(repo).OverduePayments(context.Background())

	assert.Equal(t, 1, out.Count)
	assert.True(t, out.Total.Equal(decimal.NewFromInt(3000)))
	assert.Equal(t, "2026-08-01", out.Payments[0].DueDate)
	assert.Empty(t, out.Note)
}
