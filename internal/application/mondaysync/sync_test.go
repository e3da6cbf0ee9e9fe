package mondaysync

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AG-g1/more-house/internal/domain/entity"
	"github.com/AG-g1/more-house/internal/domain/repository"
	"github.com/AG-g1/more-house/internal/infrastructure/monday"
	"github.com/AG-g1/more-house/pkg/config"
)

// ── Dobles en memoria ────────────────────────────────────────────────────────

type fakeBoards struct {
	items map[string][]monday.Item
	err   error
}

func (f *fakeBoards) AllItems(_ context.Context, boardID string) ([]monday.Item, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.items[boardID], nil
}

func (f *fakeBoards) BoardsInfo(_ context.Context, boardIDs []string) ([]monday.BoardInfo, error) {
	out := make([]monday.BoardInfo, 0, len(boardIDs))
	for _, id := range boardIDs {
		out = append(out, monday.BoardInfo{ID: id, Name: "board " + id, ItemsCount: len(f.items[id])})
	}
	return out, nil
}

type memStore struct {
	rooms     map[string]*entity.Room
	contracts map[string]*entity.Contract // por monday_id
	nextID    int
	schedule  map[[2]int]*entity.ScheduledPayment
	received  map[[2]int]*entity.ReceivedPayment
	cleared   bool
}

func newMemStore() *memStore {
	return &memStore{
		rooms:     map[string]*entity.Room{},
		contracts: map[string]*entity.Contract{},
		nextID:    1,
		schedule:  map[[2]int]*entity.ScheduledPayment{},
		received:  map[[2]int]*entity.ReceivedPayment{},
	}
}

// Run ejecuta el callback directamente; las pruebas no necesitan transacción real.
func (s *memStore) Run(ctx context.Context, fn func(
	rooms repository.RoomRepository,
	contracts repository.ContractRepository,
	schedule repository.ScheduleRepository,
	received repository.ReceivedPaymentRepository,
) error) error {
	return fn(&memRooms{s}, &memContracts{s}, &memSchedule{s}, &memReceived{s})
}

func (s *memStore) TableCounts(_ context.Context) (map[string]int, error) {
	return map[string]int{
		"rooms":             len(s.rooms),
		"contracts":         len(s.contracts),
		"payment_schedule":  len(s.schedule),
		"payments_received": len(s.received),
	}, nil
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
	r.s.rooms[roomID] = &entity.Room{
		RoomID:   roomID,
		Floor:    entity.CategoryPlaceholderTBD,
		Category: entity.CategoryPlaceholderTBD,
	}
	return nil
}

type memContracts struct{ s *memStore }

func (r *memContracts) GetByMondayID(_ context.Context, mondayID string) (*entity.Contract, error) {
	return r.s.contracts[mondayID], nil
}

func (r *memContracts) Create(_ context.Context, c *entity.Contract) (int, error) {
	c.ID = r.s.nextID
	r.s.nextID++
	r.s.contracts[*c.MondayID] = c
	return c.ID, nil
}

func (r *memContracts) Update(_ context.Context, c *entity.Contract) error {
	r.s.contracts[*c.MondayID] = c
	return nil
}

func (r *memContracts) DeleteAll(_ context.Context) error {
	r.s.contracts = map[string]*entity.Contract{}
	r.s.cleared = true
	return nil
}

type memSchedule struct{ s *memStore }

func (r *memSchedule) GetByInstallment(_ context.Context, contractID, installment int) (*entity.ScheduledPayment, error) {
	return r.s.schedule[[2]int{contractID, installment}], nil
}

func (r *memSchedule) Insert(_ context.Context, p *entity.ScheduledPayment) error {
	r.s.schedule[[2]int{p.ContractID, p.InstallmentNumber}] = p
	return nil
}

func (r *memSchedule) Update(_ context.Context, p *entity.ScheduledPayment) error {
	r.s.schedule[[2]int{p.ContractID, p.InstallmentNumber}] = p
	return nil
}

func (r *memSchedule) DeleteAll(_ context.Context) error {
	r.s.schedule = map[[2]int]*entity.ScheduledPayment{}
	return nil
}

type memReceived struct{ s *memStore }

func (r *memReceived) GetByInstallment(_ context.Context, contractID, installment int) (*entity.ReceivedPayment, error) {
	return r.s.received[[2]int{contractID, installment}], nil
}

func (r *memReceived) Insert(_ context.Context, p *entity.ReceivedPayment) error {
	r.s.received[[2]int{p.ContractID, p.AllocatedToInstallment}] = p
	return nil
}

func (r *memReceived) Update(_ context.Context, p *entity.ReceivedPayment) error {
	r.s.received[[2]int{p.ContractID, p.AllocatedToInstallment}] = p
	return nil
}

func (r *memReceived) DeleteAll(_ context.Context) error {
	r.s.received = map[[2]int]*entity.ReceivedPayment{}
	return nil
}

// ── Helpers de construcción de items ─────────────────────────────────────────

var testCfg = config.MondayConfig{
	APIToken:         "token",
	RoomsBoardID:     "rooms-board",
	ContractsBoardID: "contracts-board",
	QualifiedBoardID: "qualified-board",
}

func col(id, text string) monday.ColumnValue {
	return monday.ColumnValue{ID: id, Text: text}
}

func contractItem(id, name, room string, cols ...monday.ColumnValue) monday.Item {
	item := monday.Item{
		ID:   id,
		Name: name,
		ColumnValues: []monday.ColumnValue{
			{ID: ContractColumns["unit"], Text: room},
			{
				ID:    ContractColumns["length_of_stay"],
				Text:  "2026-01-15 - 2026-06-30",
				Value: `{"from":"2026-01-15","to":"2026-06-30"}`,
			},
		},
	}
	item.ColumnValues = append(item.ColumnValues, cols...)
	return item
}

// ── Pruebas ──────────────────────────────────────────────────────────────────

func TestSyncRoomsCreatesAndUpdates(t *testing.T) {
	store := newMemStore()
	store.rooms["3.14"] = &entity.Room{RoomID: "3.14", Floor: "3"}

	boards := &fakeBoards{items: map[string][]monday.Item{
		"rooms-board": {
			{ID: "1", Name: "3.14", ColumnValues: []monday.ColumnValue{
				col(RoomColumns["floor"], "3"),
				col(RoomColumns["category"], "Deluxe"),
				col(RoomColumns["weekly_rate"], "£425"),
			}},
			{ID: "2", Name: "MEZZ 7", ColumnValues: []monday.ColumnValue{
				col(RoomColumns["floor"], "M"),
				col(RoomColumns["category"], "Deluxe Mezzanine"),
			}},
			{ID: "3", Name: "   "}, // sin nombre: se salta
		},
	}}

	uc := NewSyncUseCase(boards, store, store, testCfg)
	stats, err := uc.SyncRooms(context.Background(), Options{})
	require.NoError(t, err)

	assert.Equal(t, 1, stats.Created)
	assert.Equal(t, 1, stats.Updated)
	assert.Equal(t, 1, stats.Skipped)

	room := store.rooms["3.14"]
	require.NotNil(t, room)
	assert.Equal(t, "Deluxe", room.Category)
	require.NotNil(t, room.WeeklyRate)
	assert.True(t, room.WeeklyRate.Equal(decimal.NewFromInt(425)))
	assert.NotNil(t, store.rooms["MEZZ 7"])
}

func TestSyncRoomsDryRunWritesNothing(t *testing.T) {
	store := newMemStore()
	boards := &fakeBoards{items: map[string][]monday.Item{
		"rooms-board": {{ID: "1", Name: "2.1"}},
	}}

	uc := NewSyncUseCase(boards, store, store, testCfg)
	stats, err := uc.SyncRooms(context.Background(), Options{DryRun: true})
	require.NoError(t, err)

	assert.Zero(t, stats.Created)
	assert.Empty(t, store.rooms)
}

func TestSyncContractsSkipRules(t *testing.T) {
	noDates := monday.Item{
		ID:   "10",
		Name: "Ana Pérez",
		ColumnValues: []monday.ColumnValue{
			{ID: ContractColumns["unit"], Text: "2.1"},
		},
	}
	noRoom := contractItem("11", "Luis Gómez", "")
	noName := contractItem("12", "", "2.2")

	store := newMemStore()
	boards := &fakeBoards{items: map[string][]monday.Item{
		"contracts-board": {noDates, noRoom, noName},
	}}

	uc := NewSyncUseCase(boards, store, store, testCfg)
	stats, err := uc.SyncContracts(context.Background(), Options{})
	require.NoError(t, err)

	assert.Equal(t, 3, stats.Skipped)
	assert.Zero(t, stats.ContractsCreated)
	assert.Empty(t, store.contracts)
}

func TestSyncContractsCreatesWithPlaceholderRoom(t *testing.T) {
	item := contractItem("20", "Ana Pérez", "M7",
		col(ContractColumns["rate_agreed"], "£425"),
		col(ContractColumns["gross_income"], "£10,200"),
		col(ContractColumns["payment_plan"], "Installments"),
		col(ContractColumns["instalment_1_due"], "2026-01-15"),
		col(ContractColumns["instalment_1_amount"], "£5,100"),
		col(ContractColumns["instalment_1_status"], "Paid"),
		col(ContractColumns["instalment_1_paid"], "£5,100"),
		col(ContractColumns["instalment_1_paid_date"], "2026-01-14"),
		col(ContractColumns["instalment_2_due"], "2026-04-01"),
		col(ContractColumns["instalment_2_amount"], "£5,100"),
	)

	store := newMemStore()
	boards := &fakeBoards{items: map[string][]monday.Item{"contracts-board": {item}}}

	uc := NewSyncUseCase(boards, store, store, testCfg)
	stats, err := uc.SyncContracts(context.Background(), Options{})
	require.NoError(t, err)

	assert.Equal(t, 1, stats.ContractsCreated)
	assert.Equal(t, 2, stats.PaymentsCreated)

	// El id de habitación se normaliza y se crea el placeholder.
	room := store.rooms["MEZZ 7"]
	require.NotNil(t, room)
	assert.Equal(t, entity.CategoryPlaceholderTBD, room.Category)

	contract := store.contracts["20"]
	require.NotNil(t, contract)
	assert.Equal(t, "MEZZ 7", contract.RoomID)
	assert.Equal(t, entity.ContractActive, contract.Status)
	assert.True(t, contract.TotalValue.Equal(decimal.NewFromInt(10200)))

	paid := store.schedule[[2]int{contract.ID, 1}]
	require.NotNil(t, paid)
	assert.Equal(t, entity.PaymentPaid, paid.Status)

	recv := store.received[[2]int{contract.ID, 1}]
	require.NotNil(t, recv)
	assert.Equal(t, "monday_sync", recv.PaymentMethod)
	assert.True(t, recv.Amount.Equal(decimal.NewFromInt(5100)))

	// La cuota 2 no tiene pago registrado todavía.
	assert.Nil(t, store.received[[2]int{contract.ID, 2}])
}

func TestSyncContractsUpsertsByMondayID(t *testing.T) {
	item := contractItem("30", "Ana Pérez", "2.1",
		col(ContractColumns["gross_income"], "£9,000"),
	)

	store := newMemStore()
	boards := &fakeBoards{items: map[string][]monday.Item{"contracts-board": {item}}}
	uc := NewSyncUseCase(boards, store, store, testCfg)

	_, err := uc.SyncContracts(context.Background(), Options{})
	require.NoError(t, err)

	// Segunda pasada: mismo item, total distinto -> update, no duplicado.
	boards.items["contracts-board"][0].ColumnValues = append(
		boards.items["contracts-board"][0].ColumnValues[:2],
		col(ContractColumns["gross_income"], "£9,500"),
	)
	stats, err := uc.SyncContracts(context.Background(), Options{})
	require.NoError(t, err)

	assert.Equal(t, 1, stats.ContractsUpdated)
	assert.Zero(t, stats.ContractsCreated)
	assert.Len(t, store.contracts, 1)
	assert.True(t, store.contracts["30"].TotalValue.Equal(decimal.NewFromInt(9500)))
}

func TestSyncContractsTotalFallbackSumsInstallments(t *testing.T) {
	item := contractItem("40", "Luis Gómez", "2.2",
		col(ContractColumns["instalment_1_amount"], "£3,000"),
		col(ContractColumns["instalment_2_amount"], "£2,500"),
	)

	store := newMemStore()
	boards := &fakeBoards{items: map[string][]monday.Item{"contracts-board": {item}}}
	uc := NewSyncUseCase(boards, store, store, testCfg)

	_, err := uc.SyncContracts(context.Background(), Options{})
	require.NoError(t, err)

	require.NotNil(t, store.contracts["40"])
	assert.True(t, store.contracts["40"].TotalValue.Equal(decimal.NewFromInt(5500)))
}

func TestSyncContractsClearExisting(t *testing.T) {
	store := newMemStore()
	mondayID := "viejo"
	store.contracts["viejo"] = &entity.Contract{ID: 99, MondayID: &mondayID}

	boards := &fakeBoards{items: map[string][]monday.Item{"contracts-board": {}}}
	uc := NewSyncUseCase(boards, store, store, testCfg)

	_, err := uc.SyncContracts(context.Background(), Options{ClearExisting: true})
	require.NoError(t, err)
	assert.True(t, store.cleared)
	assert.Empty(t, store.contracts)
}

func TestSyncRoomsBoardError(t *testing.T) {
	store := newMemStore()
	boards := &fakeBoards{err: errors.New("api caída")}
	uc := NewSyncUseCase(boards, store, store, testCfg)

	_, err := uc.SyncRooms(context.Background(), Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sync habitaciones")
}

func TestRunFullReportsChanges(t *testing.T) {
	store := newMemStore()
	boards := &fakeBoards{items: map[string][]monday.Item{
		"rooms-board":     {{ID: "1", Name: "2.1"}},
		"contracts-board": {contractItem("50", "Ana Pérez", "2.1")},
	}}

	uc := NewSyncUseCase(boards, store, store, testCfg)
	result, err := uc.RunFull(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, result.Rooms.Created)
	assert.Equal(t, 1, result.Contracts.ContractsCreated)
	assert.Equal(t, 0, result.Before["contracts"])
	assert.Equal(t, 1, result.After["contracts"])
	assert.Equal(t, 1, result.Changes["contracts"])
}
