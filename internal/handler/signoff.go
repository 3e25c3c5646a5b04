package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/pharmaops/pharmacy-signoff/internal/config"
	"github.com/pharmaops/pharmacy-signoff/internal/model"
	"github.com/pharmaops/pharmacy-signoff/internal/queue"
	"github.com/pharmaops/pharmacy-signoff/internal/repository"
	"github.com/pharmaops/pharmacy-signoff/internal/utils"
)

// Notifier delivers the notification mail for a committed sign-off.
// Defined here so tests can substitute a recorder for the SMTP mailer.
type Notifier interface {
	SignoffRecorded(rec model.SignoffRecord, overwrote bool) error
}

// SignoffHandler serves the three checklist submission endpoints. All
// methods assume the session middleware already authenticated the caller.
// PublishEvent is optional best-effort wiring to the message broker; nil
// disables publishing (e.g. in tests).
type SignoffHandler struct {
	Cfg          config.Config
	Signoffs     *repository.SignoffRepo
	Notify       Notifier
	PublishEvent func(ctx context.Context, ev queue.SignoffRecordedEvent) error
}

func NewSignoffHandler(cfg config.Config, repo *repository.SignoffRepo, n Notifier,
	publish func(ctx context.Context, ev queue.SignoffRecordedEvent) error) *SignoffHandler {
	if repo == nil || n == nil {
		panic("nil dependency passed to NewSignoffHandler")
	}
	return &SignoffHandler{Cfg: cfg, Signoffs: repo, Notify: n, PublishEvent: publish}
}

// signoffReq is the shared submission body. Which fields are required
// depends on the checklist kind; the rest stay nil and, on an overwrite,
// leave the stored values untouched.
type signoffReq struct {
	Date         string   `json:"date" form:"date"`
	ManagerName  *string  `json:"manager_name" form:"manager_name"`
	DeputyName   *string  `json:"deputy_name" form:"deputy_name"`
	DirectorName *string  `json:"director_name" form:"director_name"`
	FridgeTemp   *float64 `json:"fridge_temp" form:"fridge_temp"`
	Notes        *string  `json:"notes" form:"notes"`
}

type signoffResp struct {
	Record    signoffRecordDTO `json:"record"`
	Overwrote bool             `json:"overwrote"`
}

// Daily handles POST /api/signoff/daily. Manager and deputy names are
// required; the fridge temperature and notes are optional.
func (h *SignoffHandler) Daily(c echo.Context) error {
	req, err := h.bindSubmission(c)
	if err != nil {
		return err
	}
	if !present(req.ManagerName) || !present(req.DeputyName) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "manager_name and deputy_name required"})
	}
	return h.submit(c, repository.Submission{
		Kind:        model.KindDaily,
		Date:        req.Date,
		ManagerName: req.ManagerName,
		DeputyName:  req.DeputyName,
		FridgeTemp:  req.FridgeTemp,
		Notes:       req.Notes,
	})
}

// Weekly handles POST /api/signoff/weekly. Same shape as daily, without
// the fridge temperature.
func (h *SignoffHandler) Weekly(c echo.Context) error {
	req, err := h.bindSubmission(c)
	if err != nil {
		return err
	}
	if !present(req.ManagerName) || !present(req.DeputyName) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "manager_name and deputy_name required"})
	}
	return h.submit(c, repository.Submission{
		Kind:        model.KindWeekly,
		Date:        req.Date,
		ManagerName: req.ManagerName,
		DeputyName:  req.DeputyName,
		Notes:       req.Notes,
	})
}

// Monthly handles POST /api/signoff/monthly. The date must be the last
// weekday of its month; ineligible dates are rejected before the ledger
// is touched.
func (h *SignoffHandler) Monthly(c echo.Context) error {
	req, err := h.bindSubmission(c)
	if err != nil {
		return err
	}
	if !present(req.DirectorName) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "director_name required"})
	}
	date, _ := time.ParseInLocation(utils.DateLayout, req.Date, time.UTC)
	if !utils.IsLastWeekdayOfMonth(date) {
		last := utils.LastWeekdayOfMonth(date.Year(), date.Month())
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "monthly sign-off only allowed on the last weekday of the month (" +
				last.Format(utils.DateLayout) + ")",
		})
	}
	return h.submit(c, repository.Submission{
		Kind:         model.KindMonthly,
		Date:         req.Date,
		DirectorName: req.DirectorName,
		Notes:        req.Notes,
	})
}

// bindSubmission parses the shared body and validates the date. It writes
// the error response itself and returns a non-nil error when the request
// is rejected.
func (h *SignoffHandler) bindSubmission(c echo.Context) (signoffReq, error) {
	var req signoffReq
	if err := c.Bind(&req); err != nil {
		return req, c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Date = strings.TrimSpace(req.Date)
	date, err := time.ParseInLocation(utils.DateLayout, req.Date, time.UTC)
	if err != nil {
		return req, c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
	}
	req.Date = date.Format(utils.DateLayout)
	trimOptional(req.ManagerName)
	trimOptional(req.DeputyName)
	trimOptional(req.DirectorName)
	return req, nil
}

// submit runs the ledger upsert and the notification side effects shared
// by all three endpoints.
func (h *SignoffHandler) submit(c echo.Context, sub repository.Submission) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	res, err := h.Signoffs.Upsert(ctx, sub)
	if err != nil {
		if errors.Is(err, repository.ErrLocked) {
			// Lock exhausted: no mutation happened and no mail goes out.
			return c.JSON(http.StatusForbidden, echo.Map{"error": "sign-off locked after 2 overwrites"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "ledger write failed"})
	}

	// Best-effort event for downstream consumers; never fails the request.
	if h.PublishEvent != nil {
		_ = h.PublishEvent(ctx, queue.SignoffRecordedEvent{
			Kind:           string(res.Record.Kind),
			Date:           res.Record.Date,
			SignedBy:       res.Record.Signers(),
			Overwrote:      res.Overwrote,
			OverwritesUsed: res.Record.OverwritesUsed,
			SignedAt:       res.Record.SignedAt.Format(time.RFC3339),
		})
	}

	// The mail is the contract: a send failure is surfaced to the caller.
	// The ledger write above stays committed either way.
	if err := h.Notify.SignoffRecorded(res.Record, res.Overwrote); err != nil {
		log.Printf("notify: sign-off mail failed for %s %s: %v", res.Record.Kind, res.Record.Date, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "sign-off recorded but notification failed"})
	}

	status := http.StatusCreated
	if res.Overwrote {
		status = http.StatusOK
	}
	return c.JSON(status, signoffResp{Record: toDTO(res.Record), Overwrote: res.Overwrote})
}

func present(p *string) bool { return p != nil && *p != "" }

func trimOptional(p *string) {
	if p != nil {
		*p = strings.TrimSpace(*p)
	}
}
