package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/pharmaops/pharmacy-signoff/internal/model"
	"github.com/pharmaops/pharmacy-signoff/internal/repository"
)

// HistoryHandler serves the read side of the ledger.
type HistoryHandler struct {
	Signoffs *repository.SignoffRepo
}

func NewHistoryHandler(repo *repository.SignoffRepo) *HistoryHandler {
	return &HistoryHandler{Signoffs: repo}
}

// signoffRecordDTO is the JSON shape of one ledger row. Optional fields
// are omitted when never supplied.
type signoffRecordDTO struct {
	ID             uint64   `json:"id"`
	Kind           string   `json:"kind"`
	Date           string   `json:"date"`
	ManagerName    *string  `json:"manager_name,omitempty"`
	DeputyName     *string  `json:"deputy_name,omitempty"`
	DirectorName   *string  `json:"director_name,omitempty"`
	OverwritesUsed int      `json:"overwrites_used"`
	Locked         bool     `json:"locked"`
	SignedAt       string   `json:"signed_at"`
	FridgeTemp     *float64 `json:"fridge_temp,omitempty"`
	Notes          *string  `json:"notes,omitempty"`
}

func toDTO(rec model.SignoffRecord) signoffRecordDTO {
	return signoffRecordDTO{
		ID:             rec.ID,
		Kind:           string(rec.Kind),
		Date:           rec.Date,
		ManagerName:    rec.ManagerName,
		DeputyName:     rec.DeputyName,
		DirectorName:   rec.DirectorName,
		OverwritesUsed: rec.OverwritesUsed,
		Locked:         rec.Locked(),
		SignedAt:       rec.SignedAt.Format(time.RFC3339),
		FridgeTemp:     rec.FridgeTemp,
		Notes:          rec.Notes,
	}
}

// List handles GET /api/history: the full ledger ordered by date
// ascending, regardless of insertion order.
func (h *HistoryHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	recs, err := h.Signoffs.ListByDateAsc(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "history query failed"})
	}
	out := make([]signoffRecordDTO, 0, len(recs))
	for _, rec := range recs {
		out = append(out, toDTO(rec))
	}
	return c.JSON(http.StatusOK, echo.Map{"signoffs": out})
}
