package rest

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/nanpeixoto/acervus/internal/domain"
	"github.com/nanpeixoto/acervus/internal/present/rest/presenter"
	"github.com/nanpeixoto/acervus/internal/service"
	"github.com/nanpeixoto/acervus/internal/usecase"
)

const dateLayout = "2006-01-02"

type Handler struct {
	contract *usecase.ContractUsecase
	document *usecase.DocumentUsecase
	signal   *service.SignalService
}

func NewHandler(
	contract *usecase.ContractUsecase,
	document *usecase.DocumentUsecase,
	signal *service.SignalService,
) *Handler {
	return &Handler{
		contract: contract,
		document: document,
		signal:   signal,
	}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.POST("/api/v1/contracts", h.handleCreateContract)
	e.GET("/api/v1/contracts/:id", h.handleGetContract)
	e.GET("/api/v1/contracts/:id/chain", h.handleGetChain)
	e.POST("/api/v1/contracts/:id/amendments", h.handleCreateAmendment)
	e.PATCH("/api/v1/contracts/:id", h.handleUpdateContract)
	e.POST("/api/v1/contracts/:id/terminate", h.handleTerminateContract)
	e.POST("/api/v1/contracts/:id/cancel", h.handleCancelContract)
	e.POST("/api/v1/documents/generate", h.handleGenerateDocument)
	e.POST("/api/v1/documents/render", h.handleRenderDocument)
	e.GET("/realtime", h.handleRealtime)
}

type scheduleEntryRequest struct {
	Weekday   int    `json:"weekday"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

type createContractRequest struct {
	Kind            string `json:"kind"`
	CompanyID       uint   `json:"companyId"`
	InstitutionID   uint   `json:"institutionId"`
	CandidateID     uint   `json:"candidateId"`
	SupervisorID    *uint  `json:"supervisorId"`
	SectorID        *uint  `json:"sectorId"`
	CourseID        *uint  `json:"courseId"`
	CohortID        *uint  `json:"cohortId"`
	PaymentPlanID   uint   `json:"paymentPlanId"`
	DocumentModelID uint   `json:"documentModelId"`

	ValidityStart string `json:"validityStart"`
	ValidityEnd   string `json:"validityEnd"`

	PayAmount    *float64               `json:"payAmount"`
	ScheduleKind string                 `json:"scheduleKind"`
	Schedule     []scheduleEntryRequest `json:"schedule"`
}

func (h *Handler) handleCreateContract(c echo.Context) error {
	ctx := c.Request().Context()

	var req createContractRequest
	if err := c.Bind(&req); err != nil {
		return presenter.BadRequest(c, err)
	}

	start, err := parseDate(req.ValidityStart)
	if err != nil {
		return presenter.BadRequestMessage(c, "invalid validityStart")
	}
	end, err := parseDate(req.ValidityEnd)
	if err != nil {
		return presenter.BadRequestMessage(c, "invalid validityEnd")
	}

	contract := domain.Contract{
		Kind:            domain.ContractKind(req.Kind),
		CompanyID:       req.CompanyID,
		InstitutionID:   req.InstitutionID,
		CandidateID:     req.CandidateID,
		SupervisorID:    req.SupervisorID,
		SectorID:        req.SectorID,
		CourseID:        req.CourseID,
		CohortID:        req.CohortID,
		PaymentPlanID:   req.PaymentPlanID,
		DocumentModelID: req.DocumentModelID,
		ValidityStart:   start,
		ValidityEnd:     end,
		PayAmount:       req.PayAmount,
		ScheduleKind:    domain.ScheduleKind(req.ScheduleKind),
		Schedule:        scheduleFromRequest(req.Schedule),
	}

	id, err := h.contract.CreateBase(ctx, contract)
	if err != nil {
		return respondError(c, err)
	}
	return presenter.Created(c, echo.Map{"id": id})
}

type amendmentRequest struct {
	CompanyID       *uint `json:"companyId"`
	InstitutionID   *uint `json:"institutionId"`
	CandidateID     *uint `json:"candidateId"`
	SupervisorID    *uint `json:"supervisorId"`
	SectorID        *uint `json:"sectorId"`
	CourseID        *uint `json:"courseId"`
	CohortID        *uint `json:"cohortId"`
	PaymentPlanID   *uint `json:"paymentPlanId"`
	DocumentModelID *uint `json:"documentModelId"`

	ValidityStart *string `json:"validityStart"`
	ValidityEnd   *string `json:"validityEnd"`

	PayAmount    *float64                `json:"payAmount"`
	ScheduleKind *string                 `json:"scheduleKind"`
	Schedule     *[]scheduleEntryRequest `json:"schedule"`

	ItemFlags []string `json:"itemFlags"`
}

func (req amendmentRequest) toPatch() (domain.ContractPatch, error) {
	patch := domain.ContractPatch{
		CompanyID:       req.CompanyID,
		InstitutionID:   req.InstitutionID,
		CandidateID:     req.CandidateID,
		SupervisorID:    req.SupervisorID,
		SectorID:        req.SectorID,
		CourseID:        req.CourseID,
		CohortID:        req.CohortID,
		PaymentPlanID:   req.PaymentPlanID,
		DocumentModelID: req.DocumentModelID,
		PayAmount:       req.PayAmount,
		ItemFlags:       req.ItemFlags,
	}
	if req.ValidityStart != nil {
		start, err := parseDate(*req.ValidityStart)
		if err != nil {
			return patch, fmt.Errorf("invalid validityStart")
		}
		patch.ValidityStart = &start
	}
	if req.ValidityEnd != nil {
		end, err := parseDate(*req.ValidityEnd)
		if err != nil {
			return patch, fmt.Errorf("invalid validityEnd")
		}
		patch.ValidityEnd = &end
	}
	if req.ScheduleKind != nil {
		kind := domain.ScheduleKind(*req.ScheduleKind)
		patch.ScheduleKind = &kind
	}
	if req.Schedule != nil {
		schedule := scheduleFromRequest(*req.Schedule)
		patch.Schedule = &schedule
	}
	return patch, nil
}

func (h *Handler) handleCreateAmendment(c echo.Context) error {
	ctx := c.Request().Context()

	originID, err := paramID(c)
	if err != nil {
		return presenter.BadRequestMessage(c, "invalid contract id")
	}

	var req amendmentRequest
	if err := c.Bind(&req); err != nil {
		return presenter.BadRequest(c, err)
	}

	patch, err := req.toPatch()
	if err != nil {
		return presenter.BadRequestMessage(c, err.Error())
	}

	id, sequence, err := h.contract.CreateAmendment(ctx, originID, patch)
	if err != nil {
		return respondError(c, err)
	}
	return presenter.Created(c, echo.Map{"contractId": id, "sequence": sequence})
}

func (h *Handler) handleUpdateContract(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := paramID(c)
	if err != nil {
		return presenter.BadRequestMessage(c, "invalid contract id")
	}

	var req amendmentRequest
	if err := c.Bind(&req); err != nil {
		return presenter.BadRequest(c, err)
	}

	patch, err := req.toPatch()
	if err != nil {
		return presenter.BadRequestMessage(c, err.Error())
	}

	if err := h.contract.Update(ctx, id, patch); err != nil {
		return respondError(c, err)
	}
	return presenter.OK(c, echo.Map{"status": "ok"})
}

type terminateRequest struct {
	Date string `json:"date"`
}

func (h *Handler) handleTerminateContract(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := paramID(c)
	if err != nil {
		return presenter.BadRequestMessage(c, "invalid contract id")
	}

	var req terminateRequest
	if err := c.Bind(&req); err != nil {
		return presenter.BadRequest(c, err)
	}
	date, err := parseDate(req.Date)
	if err != nil {
		return presenter.BadRequestMessage(c, "invalid date")
	}

	if err := h.contract.Terminate(ctx, id, date); err != nil {
		return respondError(c, err)
	}
	return presenter.OK(c, echo.Map{"status": "ok"})
}

func (h *Handler) handleCancelContract(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := paramID(c)
	if err != nil {
		return presenter.BadRequestMessage(c, "invalid contract id")
	}

	if err := h.contract.Cancel(ctx, id); err != nil {
		return respondError(c, err)
	}
	return presenter.OK(c, echo.Map{"status": "ok"})
}

func (h *Handler) handleGetContract(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := paramID(c)
	if err != nil {
		return presenter.BadRequestMessage(c, "invalid contract id")
	}

	contract, err := h.contract.Get(ctx, id)
	if err != nil {
		return respondError(c, err)
	}
	return presenter.OK(c, contract)
}

func (h *Handler) handleGetChain(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := paramID(c)
	if err != nil {
		return presenter.BadRequestMessage(c, "invalid contract id")
	}

	chain, err := h.contract.GetChain(ctx, id)
	if err != nil {
		return respondError(c, err)
	}
	return presenter.OK(c, chain)
}

type generateRequest struct {
	ContractID *uint `json:"contractId"`
	EntityID   *uint `json:"entityId"`
	TemplateID uint  `json:"templateId"`
}

func (h *Handler) handleGenerateDocument(c echo.Context) error {
	ctx := c.Request().Context()

	var req generateRequest
	if err := c.Bind(&req); err != nil {
		return presenter.BadRequest(c, err)
	}
	if req.TemplateID == 0 {
		return presenter.BadRequestMessage(c, "templateId is required")
	}

	markup, err := h.document.Generate(ctx, usecase.GenerateTarget{
		ContractID: req.ContractID,
		EntityID:   req.EntityID,
	}, req.TemplateID)
	if err != nil {
		return respondError(c, err)
	}
	return presenter.OK(c, echo.Map{"markup": markup})
}

type renderRequest struct {
	Markup string `json:"markup"`
}

func (h *Handler) handleRenderDocument(c echo.Context) error {
	ctx := c.Request().Context()

	var req renderRequest
	if err := c.Bind(&req); err != nil {
		return presenter.BadRequest(c, err)
	}
	if req.Markup == "" {
		return presenter.BadRequestMessage(c, "markup is required")
	}

	out, err := h.document.Render(ctx, req.Markup)
	if err != nil {
		return respondError(c, err)
	}
	return c.Blob(http.StatusOK, "application/pdf", out)
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type realtimeRequest struct {
	Type   string `json:"type"`
	Chains []uint `json:"chains"`
}

func (h *Handler) handleRealtime(c echo.Context) error {
	ws, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		slog.Error(
			"Failed to upgrade WebSocket",
			slog.String("error", err.Error()),
			slog.String("module", "socket"),
		)
		return err
	}
	defer func() {
		ws.Close()
	}()

	ctx := c.Request().Context()

	// Never closed: the signal loop and the reader both leave via ctx,
	// which the server cancels when this handler returns. Closing output
	// here would race an in-flight event send.
	input := make(chan []string)
	output := make(chan domain.Event)

	go h.signal.Realtime(ctx, input, output)

	quit := make(chan struct{}, 1)

	go func() {
		for {
			var req realtimeRequest
			err := ws.ReadJSON(&req)
			if err != nil {
				wsErr, ok := err.(*websocket.CloseError)
				if ok {
					if !(wsErr.Code == websocket.CloseNormalClosure || wsErr.Code == websocket.CloseGoingAway) {
						slog.DebugContext(
							ctx, "WebSocket closed",
							slog.String("error", wsErr.Error()),
							slog.String("module", "socket"),
						)
					}
				} else {
					slog.ErrorContext(
						ctx, "Error reading message",
						slog.String("error", err.Error()),
						slog.String("module", "socket"),
					)
				}

				quit <- struct{}{}
				break
			}

			switch req.Type {
			case "listen":
				channels := make([]string, 0, len(req.Chains))
				for _, id := range req.Chains {
					channels = append(channels, usecase.EventChannel(id))
				}
				select {
				case input <- channels:
				case <-ctx.Done():
					return
				}
				slog.DebugContext(
					ctx, fmt.Sprintf("Socket subscribe: %v", req.Chains),
					slog.String("module", "socket"),
				)
			case "h": // heartbeat
				// do nothing
			default:
				slog.InfoContext(
					ctx, "Unknown request type",
					slog.String("type", req.Type),
					slog.String("module", "socket"),
				)
			}
		}
	}()

	for {
		select {
		case <-quit:
			return nil
		case <-ctx.Done():
			return nil
		case event := <-output:
			if err := ws.WriteJSON(event); err != nil {
				slog.ErrorContext(
					ctx, "Error writing event",
					slog.String("error", err.Error()),
					slog.String("module", "socket"),
				)
				return nil
			}
		}
	}
}

func respondError(c echo.Context, err error) error {
	var ve domain.ValidityExceededError
	if errors.As(err, &ve) {
		return presenter.ValidityExceeded(c, ve)
	}

	switch {
	case errors.Is(err, domain.ErrNotFound):
		return presenter.NotFound(c, err.Error())
	case errors.Is(err, domain.ErrValidation):
		return presenter.BadRequest(c, err)
	case errors.Is(err, domain.ErrConflict):
		return presenter.Conflict(c, err)
	case errors.Is(err, domain.ErrRender):
		return presenter.BadGateway(c, err)
	default:
		return presenter.InternalError(c, err)
	}
}

func paramID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

func parseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}

func scheduleFromRequest(rows []scheduleEntryRequest) []domain.ScheduleEntry {
	schedule := make([]domain.ScheduleEntry, 0, len(rows))
	for _, r := range rows {
		schedule = append(schedule, domain.ScheduleEntry{
			Weekday:   time.Weekday(r.Weekday),
			StartTime: r.StartTime,
			EndTime:   r.EndTime,
		})
	}
	return schedule
}
