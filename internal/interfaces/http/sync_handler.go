package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/AG-g1/more-house/internal/application/dto"
	"github.com/AG-g1/more-house/internal/application/mondaysync"
	"github.com/AG-g1/more-house/internal/domain"
)

// SyncHandler endpoints de sincronización con el CRM.
type SyncHandler struct {
	uc    *mondaysync.SyncUseCase
	coord *mondaysync.Coordinator
}

// NewSyncHandler construye el handler.
func NewSyncHandler(uc *mondaysync.SyncUseCase, coord *mondaysync.Coordinator) *SyncHandler {
	return &SyncHandler{uc: uc, coord: coord}
}

// syncStartResponse respuesta del arranque de sincronización.
type syncStartResponse struct {
	Status string `json:"status"`
	RunID  string `json:"run_id,omitempty"`
}

// syncStatusResponse estado del coordinador más contexto de los tableros y
// recuentos de tablas. Boards y TableCounts son best-effort: si el CRM o la
// base de datos no responden se omiten, sin romper el endpoint.
type syncStatusResponse struct {
	Status      string                    `json:"status"`
	RunID       string                    `json:"run_id,omitempty"`
	StartedAt   *time.Time                `json:"started_at,omitempty"`
	CompletedAt *time.Time                `json:"completed_at,omitempty"`
	Result      *mondaysync.Result        `json:"result,omitempty"`
	Error       string                    `json:"error,omitempty"`
	Boards      []mondaysync.BoardSummary `json:"boards,omitempty"`
	TableCounts map[string]int            `json:"table_counts,omitempty"`
}

// Run lanza una sincronización completa en segundo plano. Si ya hay una en
// curso responde 409 sin arrancar otra.
// POST /api/sync/run
func (h *SyncHandler) Run(c *fiber.Ctx) error {
	runID, err := h.uc.RunBackground(h.coord)
	if err != nil {
		if errors.Is(err, domain.ErrSyncInProgress) {
			return c.Status(fiber.StatusConflict).JSON(syncStartResponse{Status: "already_syncing"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code: "INTERNAL", Message: err.Error(),
		})
	}
	return c.Status(fiber.StatusAccepted).JSON(syncStartResponse{Status: "started", RunID: runID})
}

// Status estado de la última sincronización más metadatos de tableros y
// recuentos de tablas.
// GET /api/sync/status
func (h *SyncHandler) Status(c *fiber.Ctx) error {
	snap := h.coord.Snapshot()
	resp := syncStatusResponse{
		Status:      snap.State,
		RunID:       snap.RunID,
		StartedAt:   snap.StartedAt,
		CompletedAt: snap.CompletedAt,
		Result:      snap.Result,
		Error:       snap.Error,
	}

	if boards, err := h.uc.BoardsInfo(c.Context()); err != nil {
		log.Debug().Err(err).Msg("metadatos de tableros no disponibles")
	} else {
		resp.Boards = boards
	}
	if counts, err := h.uc.TableCounts(c.Context()); err != nil {
		log.Debug().Err(err).Msg("recuentos de tablas no disponibles")
	} else {
		resp.TableCounts = counts
	}

	return c.JSON(resp)
}
