package mondaysync

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/AG-g1/more-house/internal/domain"
	"github.com/AG-g1/more-house/internal/monitoring"
)

// Estados del coordinador.
const (
	StateIdle      = "idle"
	StateSyncing   = "syncing"
	StateCompleted = "completed"
	StateError     = "error"
)

// Status es la foto del coordinador que expone el endpoint de estado.
type Status struct {
	State       string     `json:"status"`
	RunID       string     `json:"run_id,omitempty"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	Result      *Result    `json:"result,omitempty"`
	Error       string     `json:"error,omitempty"`
}

// Coordinator garantiza que a lo sumo una sincronización corre a la vez y
// conserva el resultado de la última para consultas posteriores.
type Coordinator struct {
	mu          sync.Mutex
	state       string
	runID       string
	startedAt   *time.Time
	completedAt *time.Time
	result      *Result
	lastErr     string
}

// NewCoordinator crea un coordinador en estado idle.
func NewCoordinator() *Coordinator {
	return &Coordinator{state: StateIdle}
}

// TryStart intenta reservar el coordinador para una nueva ejecución. Devuelve
// ErrSyncInProgress si ya hay una en curso.
func (c *Coordinator) TryStart() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == StateSyncing {
		return "", domain.ErrSyncInProgress
	}

	now := time.Now().UTC()
	c.state = StateSyncing
	c.runID = uuid.NewString()
	c.startedAt = &now
	c.completedAt = nil
	c.result = nil
	c.lastErr = ""
	return c.runID, nil
}

// Complete marca la ejecución en curso como terminada con éxito.
func (c *Coordinator) Complete(result Result) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now().UTC()
	c.state = StateCompleted
	c.completedAt = &now
	c.result = &result
}

// Fail marca la ejecución en curso como fallida.
func (c *Coordinator) Fail(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now().UTC()
	c.state = StateError
	c.completedAt = &now
	c.lastErr = err.Error()
}

// Snapshot devuelve una copia del estado actual.
func (c *Coordinator) Snapshot() Status {
	c.mu.Lock()
	defer c.mu.Unlock()

	return Status{
		State:       c.state,
		RunID:       c.runID,
		StartedAt:   c.startedAt,
		CompletedAt: c.completedAt,
		Result:      c.result,
		Error:       c.lastErr,
	}
}

// RunBackground lanza una sincronización completa en una goroutine si el
// coordinador está libre. El contexto de la petición HTTP no sirve para el
// trabajo de fondo; la goroutine usa el suyo propio con timeout generoso.
func (uc *SyncUseCase) RunBackground(coord *Coordinator) (string, error) {
	runID, err := coord.TryStart()
	if err != nil {
		return "", err
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Minute)
		defer cancel()

		start := time.Now()
		log.Info().Str("run_id", runID).Msg("sincronización de fondo iniciada")

		result, err := uc.RunFull(ctx)
		monitoring.ObserveSyncDuration(time.Since(start).Seconds())
		if err != nil {
			monitoring.IncSyncRun("error")
			log.Error().Err(err).Str("run_id", runID).Msg("sincronización de fondo fallida")
			coord.Fail(err)
			return
		}

		monitoring.IncSyncRun("completed")
		log.Info().
			Str("run_id", runID).
			Dur("elapsed", time.Since(start)).
			Msg("sincronización de fondo terminada")
		coord.Complete(result)
	}()

	return runID, nil
}
