package importer

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AG-g1/more-house/internal/domain/entity"
	"github.com/AG-g1/more-house/internal/domain/repository"
)

type fakeReader struct {
	rows []BookedUnitRow
	err  error
}

func (f *fakeReader) ReadBookedUnits(string) ([]BookedUnitRow, error) {
	return f.rows, f.err
}

type memStore struct {
	rooms     map[string]*entity.Room
	contracts []*entity.Contract
	schedule  []*entity.ScheduledPayment
	cleared   bool
}

func newMemStore() *memStore {
	return &memStore{rooms: map[string]*entity.Room{}}
}

func (s *memStore) Run(ctx context.Context, fn func(
	rooms repository.RoomRepository,
	contracts repository.ContractRepository,
	schedule repository.ScheduleRepository,
	received repository.ReceivedPaymentRepository,
) error) error {
	return fn(&memRooms{s}, &memContracts{s}, &memSchedule{s}, &memReceived{s})
}

type memRooms struct{ s *memStore }

func (r *memRooms) GetByRoomID(_ context.Context, roomID string) (*entity.Room, error) {
	return r.s.rooms[roomID], nil
}
func (r *memRooms) Upsert(_ context.Context, room *entity.Room) error {
	r.s.rooms[room.RoomID] = room
	return nil
}
func (r *memRooms) CreatePlaceholder(_ context.Context, roomID string) error {
	r.s.rooms[roomID] = &entity.Room{RoomID: roomID}
	return nil
}

type memContracts struct{ s *memStore }

func (r *memContracts) GetByMondayID(context.Context, string) (*entity.Contract, error) {
	return nil, nil
}
func (r *memContracts) Create(_ context.Context, c *entity.Contract) (int, error) {
	c.ID = len(r.s.contracts) + 1
	r.s.contracts = append(r.s.contracts, c)
	return c.ID, nil
}
func (r *memContracts) Update(context.Context, *entity.Contract) error { return nil }
func (r *memContracts) DeleteAll(context.Context) error {
	r.s.contracts = nil
	r.s.cleared = true
	return nil
}

type memSchedule struct{ s *memStore }

func (r *memSchedule) GetByInstallment(context.Context, int, int) (*entity.ScheduledPayment, error) {
	return nil, nil
}
func (r *memSchedule) Insert(_ context.Context, p *entity.ScheduledPayment) error {
	r.s.schedule = append(r.s.schedule, p)
	return nil
}
func (r *memSchedule) Update(context.Context, *entity.ScheduledPayment) error { return nil }
func (r *memSchedule) DeleteAll(context.Context) error {
	r.s.schedule = nil
	return nil
}

type memReceived struct{ s *memStore }

func (r *memReceived) GetByInstallment(context.Context, int, int) (*entity.ReceivedPayment, error) {
	return nil, nil
}
func (r *memReceived) Insert(context.Context, *entity.ReceivedPayment) error { return nil }
func (r *memReceived) Update(context.Context, *entity.ReceivedPayment) error { return nil }
func (r *memReceived) DeleteAll(context.Context) error                       { return nil }

func TestImportRoomsContractsAndSchedule(t *testing.T) {
	reader := &fakeReader{rows: []BookedUnitRow{
		{
			RoomID: "2.1", Floor: "2", Category: "Standard", WeeklyRate: "£400",
			ResidentName: "Ana Pérez", StartDate: "2026-01-01", EndDate: "2026-03-31",
			TotalValue: "£4,800", PaymentPlan: "Installments", Nationality: "Spain",
		},
		// Segunda fila de la misma habitación: la habitación no se duplica.
		{
			RoomID: "2.1", Floor: "2", Category: "Standard",
			ResidentName: "Luis Gómez", StartDate: "01/09/2026", EndDate: "2026-12-31",
			TotalValue: "£5,000", PaymentPlan: "Single Payment",
		},
		// Fila sin residente: solo aporta la habitación.
		{RoomID: "2.2", Floor: "2", Category: "Deluxe"},
	}}

	store := newMemStore()
	uc := NewUseCase(reader, store)

	stats, err := uc.Import(context.Background(), "informe.xlsx", Options{})
	require.NoError(t, err)

	assert.Equal(t, 2, stats.RoomsImported)
	assert.Equal(t, 2, stats.ContractsImported)
	assert.Equal(t, 1, stats.Skipped)
	// 3 cuotas mensuales del primer contrato + 1 pago único del segundo.
	assert.Equal(t, 4, stats.PaymentsGenerated)

	require.Len(t, store.contracts, 2)
	first := store.contracts[0]
	assert.Equal(t, "Ana Pérez", first.ResidentName)
	assert.Equal(t, entity.ContractActive, first.Status)
	assert.True(t, first.TotalValue.Equal(decimal.NewFromInt(4800)))
	require.NotNil(t, first.Nationality)
	assert.Equal(t, "Spain", *first.Nationality)

	// La fecha 01/09/2026 se interpreta día/mes.
	second := store.contracts[1]
	assert.Equal(t, "2026-09-01", second.StartDate.Format("2006-01-02"))

	require.Len(t, store.schedule, 4)
	assert.True(t, store.schedule[0].Amount.Equal(decimal.NewFromInt(1600)))
	assert.True(t, store.schedule[3].Amount.Equal(decimal.NewFromInt(5000)))
}

func TestImportSkipsInvalidDates(t *testing.T) {
	reader := &fakeReader{rows: []BookedUnitRow{
		{RoomID: "2.1", ResidentName: "Ana Pérez", StartDate: "pronto", EndDate: "2026-12-31"},
	}}

	store := newMemStore()
	stats, err := NewUseCase(reader, store).Import(context.Background(), "informe.xlsx", Options{})
	require.NoError(t, err)

	assert.Equal(t, 1, stats.Skipped)
	assert.Zero(t, stats.ContractsImported)
	assert.Len(t, store.rooms, 1) // la habitación sí se importa
}

func TestImportClearExisting(t *testing.T) {
	reader := &fakeReader{rows: nil}
	store := newMemStore()

	_, err := NewUseCase(reader, store).Import(context.Background(), "informe.xlsx", Options{ClearExisting: true})
	require.NoError(t, err)
	assert.True(t, store.cleared)
}

func TestImportReaderError(t *testing.T) {
	reader := &fakeReader{err: errors.New("fichero corrupto")}
	store := newMemStore()

	_, err := NewUseCase(reader, store).Import(context.Background(), "informe.xlsx", Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "leer informe")
}

func TestParseFlexibleDate(t *testing.T) {
	d := parseFlexibleDate("2026-09-01")
	require.NotNil(t, d)
	assert.Equal(t, "2026-09-01", d.Format("2006-01-02"))

	d = parseFlexibleDate("13/09/2026")
	require.NotNil(t, d)
	assert.Equal(t, "2026-09-13", d.Format("2006-01-02"))

	assert.Nil(t, parseFlexibleDate(""))
	assert.Nil(t, parseFlexibleDate("mañana"))
}
