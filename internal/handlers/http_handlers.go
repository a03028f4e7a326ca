package handlers

import (
	"encoding/csv"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/logger"

	"luckywheel/internal/services"
	"luckywheel/internal/wheel"
)

// HTTPHandler exposes the lottery service to the operator's display.
type HTTPHandler struct {
	service     *services.LotteryService
	defaultSize string
}

// NewHTTPHandler creates a new HTTPHandler. defaultSize names the wheel size
// preset used when a request does not pick one.
func NewHTTPHandler(service *services.LotteryService, defaultSize string) *HTTPHandler {
	return &HTTPHandler{
		service:     service,
		defaultSize: defaultSize,
	}
}

type participantRequest struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type prizeRequest struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Color    string `json:"color"`
	Quantity int    `json:"quantity"`
}

type spinRequest struct {
	ParticipantID string `json:"participantId" binding:"required"`
}

type importResponse struct {
	Added   int `json:"added"`
	Skipped int `json:"skipped"`
}

// RegisterRoutes registers all the application routes.
func (h *HTTPHandler) RegisterRoutes(router *gin.Engine) {
	router.GET("/healthz", h.Health)
	router.GET("/wheel.svg", h.WheelSVG)

	api := router.Group("/api")
	api.GET("/state", h.GetState)
	api.GET("/colors", h.GetColors)
	api.GET("/wheel", h.GetWheel)

	api.POST("/participants", h.AddParticipant)
	api.POST("/participants/csv", h.UploadParticipantsCSV)
	api.DELETE("/participants/:id", h.RemoveParticipant)

	api.POST("/prizes", h.AddPrize)
	api.POST("/prizes/csv", h.UploadPrizesCSV)
	api.DELETE("/prizes/:id", h.RemovePrize)

	api.GET("/spin", h.GetSpin)
	api.POST("/spin", h.StartSpin)
	api.POST("/spin/confirm", h.ConfirmSpin)
	api.POST("/spin/discard", h.DiscardSpin)
	api.POST("/reset", h.Reset)

	api.GET("/history", h.GetHistory)
	api.GET("/history/csv", h.ExportHistoryCSV)
	api.DELETE("/history", h.ClearHistory)
	api.DELETE("/history/:id", h.UndoWinner)
}

// statusFor maps service errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrEmptyName),
		errors.Is(err, services.ErrInvalidQuantity),
		errors.Is(err, services.ErrInvalidColor),
		errors.Is(err, wheel.ErrUnknownSize):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrParticipantNotFound),
		errors.Is(err, services.ErrPrizeNotFound),
		errors.Is(err, services.ErrRecordNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrDuplicateID),
		errors.Is(err, services.ErrSpinInProgress),
		errors.Is(err, services.ErrNothingToConfirm),
		errors.Is(err, services.ErrNoSegments):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func writeError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		logger.Errorf("%s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// Health reports liveness.
func (h *HTTPHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// GetState returns the whole session.
func (h *HTTPHandler) GetState(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.Snapshot())
}

// GetColors returns the preset prize palette.
func (h *HTTPHandler) GetColors(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"colors": services.PresetColors})
}

func (h *HTTPHandler) layout(c *gin.Context) (wheel.Layout, error) {
	size, err := wheel.LookupSize(c.DefaultQuery("size", h.defaultSize))
	if err != nil {
		return wheel.Layout{}, err
	}
	return h.service.Layout(size), nil
}

// GetWheel returns the wheel geometry for the requested size.
func (h *HTTPHandler) GetWheel(c *gin.Context) {
	layout, err := h.layout(c)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, layout)
}

// WheelSVG renders the wheel at its resting rotation.
func (h *HTTPHandler) WheelSVG(c *gin.Context) {
	layout, err := h.layout(c)
	if err != nil {
		writeError(c, err)
		return
	}

	c.Header("Content-Type", "image/svg+xml")
	c.Status(http.StatusOK)
	if err := wheel.WriteSVG(c.Writer, layout); err != nil {
		logger.Errorf("Error rendering wheel SVG: %v", err)
	}
}

// AddParticipant handles a new roster entry.
func (h *HTTPHandler) AddParticipant(c *gin.Context) {
	var req participantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p, err := h.service.AddParticipant(req.ID, req.Name)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

// RemoveParticipant deletes a roster entry.
func (h *HTTPHandler) RemoveParticipant(c *gin.Context) {
	if err := h.service.RemoveParticipant(c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// UploadParticipantsCSV imports rows of "id,name" or "name".
func (h *HTTPHandler) UploadParticipantsCSV(c *gin.Context) {
	h.importCSV(c, func(record []string) error {
		switch len(record) {
		case 1:
			_, err := h.service.AddParticipant("", record[0])
			return err
		case 2:
			_, err := h.service.AddParticipant(record[0], record[1])
			return err
		default:
			return errMalformedRow
		}
	}, isParticipantHeader)
}

// AddPrize handles a new prize.
func (h *HTTPHandler) AddPrize(c *gin.Context) {
	var req prizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p, err := h.service.AddPrize(req.ID, req.Name, req.Color, req.Quantity)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

// RemovePrize deletes a prize from the pool.
func (h *HTTPHandler) RemovePrize(c *gin.Context) {
	if err := h.service.RemovePrize(c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// UploadPrizesCSV imports rows of "name,color,quantity" or "id,name,color,quantity".
func (h *HTTPHandler) UploadPrizesCSV(c *gin.Context) {
	h.importCSV(c, func(record []string) error {
		var id string
		switch len(record) {
		case 3:
		case 4:
			id, record = record[0], record[1:]
		default:
			return errMalformedRow
		}

		quantity, err := strconv.Atoi(strings.TrimSpace(record[2]))
		if err != nil {
			return errMalformedRow
		}
		_, err = h.service.AddPrize(id, record[0], record[1], quantity)
		return err
	}, isPrizeHeader)
}

var errMalformedRow = errors.New("malformed row")

func isParticipantHeader(record []string) bool {
	return headerIs(record, "name") || headerIs(record, "id", "name")
}

func isPrizeHeader(record []string) bool {
	return headerIs(record, "name", "color", "quantity") || headerIs(record, "id", "name", "color", "quantity")
}

func headerIs(record []string, names ...string) bool {
	if len(record) != len(names) {
		return false
	}
	for i, n := range names {
		if !strings.EqualFold(strings.TrimSpace(record[i]), n) {
			return false
		}
	}
	return true
}

// importCSV feeds every row of the uploaded "file" to add. Rows add rejects
// are skipped and counted; a read error aborts the upload.
func (h *HTTPHandler) importCSV(c *gin.Context, add func([]string) error, isHeader func([]string) bool) {
	file, _, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "error retrieving file: " + err.Error()})
		return
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var resp importResponse
	for line := 1; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "error reading CSV: " + err.Error(), "added": resp.Added})
			return
		}
		if line == 1 && isHeader(record) {
			continue
		}

		if err := add(record); err != nil {
			if errors.Is(err, services.ErrSpinInProgress) {
				writeError(c, err)
				return
			}
			logger.Infof("Skipping CSV line %d %v: %v", line, record, err)
			resp.Skipped++
			continue
		}
		resp.Added++
	}

	c.JSON(http.StatusOK, resp)
}

// GetSpin returns the current draw.
func (h *HTTPHandler) GetSpin(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.Status())
}

// StartSpin draws for the selected participant and starts the wheel.
func (h *HTTPHandler) StartSpin(c *gin.Context) {
	var req spinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	draw, err := h.service.Spin(req.ParticipantID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, draw)
}

// ConfirmSpin commits the revealed draw.
func (h *HTTPHandler) ConfirmSpin(c *gin.Context) {
	record, err := h.service.Confirm()
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, record)
}

// DiscardSpin abandons the revealed draw.
func (h *HTTPHandler) DiscardSpin(c *gin.Context) {
	if err := h.service.Discard(); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Reset puts the wheel back at rotation 0.
func (h *HTTPHandler) Reset(c *gin.Context) {
	if err := h.service.Reset(); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetHistory returns the winner records, newest first.
func (h *HTTPHandler) GetHistory(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"winners": h.service.GetHistory()})
}

// UndoWinner removes a record and reverses its effects.
func (h *HTTPHandler) UndoWinner(c *gin.Context) {
	record, err := h.service.Undo(c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

// ClearHistory drops all records.
func (h *HTTPHandler) ClearHistory(c *gin.Context) {
	h.service.ClearHistory()
	c.Status(http.StatusNoContent)
}

// ExportHistoryCSV handles the request to download the winner history as a CSV file.
func (h *HTTPHandler) ExportHistoryCSV(c *gin.Context) {
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", "attachment;filename=winners.csv")

	// BOM so spreadsheet apps pick UTF-8
	c.Writer.Write([]byte("\xef\xbb\xbf"))

	w := csv.NewWriter(c.Writer)
	if err := w.Write([]string{"time", "participant_id", "participant_name", "prize_id", "prize_name", "game_type"}); err != nil {
		logger.Infof("Error writing CSV header: %v", err)
		return
	}

	for _, r := range h.service.GetHistory() {
		row := []string{
			r.Timestamp.Format(time.RFC3339),
			r.ParticipantID,
			r.ParticipantName,
			r.PrizeID,
			r.PrizeName,
			r.GameType,
		}
		if err := w.Write(row); err != nil {
			logger.Infof("Error writing CSV row: %v", err)
			return
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		logger.Infof("Error flushing CSV writer: %v", err)
	}
}
