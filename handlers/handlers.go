// Package handlers exposes the pipeline orchestrator over HTTP, grounded on
// the teacher's gin handler style (request-ID logging, multipart form
// parsing, a shared sendError JSON envelope) generalized from its
// audio-only embed/extract pair to a carrier-agnostic hide/unveil/capacity
// surface over PNG and WAV.
package handlers

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joakimsorensen/stegolsb/media/png"
	"github.com/joakimsorensen/stegolsb/media/wav"
	"github.com/joakimsorensen/stegolsb/models"
	"github.com/joakimsorensen/stegolsb/service"
)

// Handlers holds the pipeline dependency injected at startup.
type Handlers struct {
	pipeline service.Pipeline
}

// NewHandlers creates a new handlers instance with the pipeline dependency.
func NewHandlers(pipeline service.Pipeline) *Handlers {
	return &Handlers{pipeline: pipeline}
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
}

// CapacityResponse represents the capacity calculation response.
type CapacityResponse struct {
	Capacity         models.CapacityReport `json:"capacity"`
	FileInfo         FileInfo              `json:"file_info"`
	ProcessingTimeMs int                   `json:"processing_time_ms"`
}

// FileInfo represents the uploaded carrier file's basic metadata.
type FileInfo struct {
	Filename  string `json:"filename"`
	SizeBytes int    `json:"size_bytes"`
}

// HealthHandler handles the health check endpoint.
//
//	@Summary		Health Check
//	@Description	Returns the health status of the API service
//	@Tags			System
//	@Produce		json
//	@Success		200	{object}	HealthResponse	"Service is healthy"
//	@Router			/health [get]
func (h *Handlers) HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now(),
		Version:   "1.0.0",
	})
}

// CapacityHandler handles the capacity calculation request.
//
//	@Summary		Calculate embedding capacity
//	@Description	Reports the byte-level capacity (participating bytes / 8) of an uploaded PNG or WAV carrier; the envelope's version byte and framing overhead count against it.
//	@Tags			Steganography
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			carrier	formData	file					true	"Carrier file (PNG or WAV)"
//	@Success		200		{object}	CapacityResponse		"Successfully calculated embedding capacity"
//	@Failure		400		{object}	models.ErrorResponse	"Bad request"
//	@Failure		500		{object}	models.ErrorResponse	"Internal error"
//	@Router			/capacity [post]
func (h *Handlers) CapacityHandler(c *gin.Context) {
	startTime := time.Now()
	requestID := requestIDFor(c)

	log.Printf("[INFO] [%s] CapacityHandler: calculating capacity from %s", requestID, c.ClientIP())

	fileHeader, data, err := readCarrierFile(c, "carrier")
	if err != nil {
		log.Printf("[ERROR] [%s] CapacityHandler: %v", requestID, err)
		sendError(c, http.StatusBadRequest, "MISSING_FILE", err.Error())
		return
	}

	carrier, serr := decodeCarrier(fileHeader.Filename, data)
	if serr != nil {
		sendError(c, http.StatusBadRequest, "INVALID_FORMAT", serr.Error())
		return
	}

	report := models.CapacityReport{AvailableBytes: carrier.CapacityBytes()}
	processingTime := int(time.Since(startTime).Milliseconds())

	c.Header("X-Processing-Time", strconv.Itoa(processingTime))
	c.JSON(http.StatusOK, CapacityResponse{
		Capacity: report,
		FileInfo: FileInfo{Filename: fileHeader.Filename, SizeBytes: int(fileHeader.Size)},
		ProcessingTimeMs: processingTime,
	})
}

// HideHandler embeds a message and/or files into a carrier file.
//
//	@Summary		Hide data in a carrier
//	@Description	Embeds a text message and/or file entries into an uploaded PNG or WAV carrier using LSB steganography.
//	@Tags			Steganography
//	@Accept			multipart/form-data
//	@Produce		application/octet-stream
//	@Param			carrier		formData	file	true	"Cover file (PNG or WAV)"
//	@Param			message		formData	string	false	"Text message to conceal"
//	@Param			password	formData	string	false	"Passphrase; enables authenticated encryption"
//	@Param			framing		formData	string	false	"auto|force_v2|force_v4"
//	@Success		200	{file}	binary	"Stego carrier with embedded payload"
//	@Failure		400	{object}	models.ErrorResponse	"Invalid input"
//	@Failure		413	{object}	models.ErrorResponse	"Capacity exceeded"
//	@Failure		500	{object}	models.ErrorResponse	"Processing error"
//	@Router			/hide [post]
func (h *Handlers) HideHandler(c *gin.Context) {
	startTime := time.Now()
	requestID := requestIDFor(c)

	fileHeader, data, err := readCarrierFile(c, "carrier")
	if err != nil {
		sendError(c, http.StatusBadRequest, "MISSING_FILE", err.Error())
		return
	}

	carrier, serr := decodeCarrier(fileHeader.Filename, data)
	if serr != nil {
		sendError(c, http.StatusBadRequest, "INVALID_FORMAT", serr.Error())
		return
	}

	message := c.PostForm("message")
	password := c.PostForm("password")
	framingChoice := models.FramingChoice(c.PostForm("framing"))
	if framingChoice == "" {
		framingChoice = models.FramingAuto
	}
	if !framingChoice.IsValid() {
		sendError(c, http.StatusBadRequest, "INVALID_FRAMING", "framing must be auto, force_v2 or force_v4")
		return
	}

	var entries []models.Entry
	form, ferr := c.MultipartForm()
	if ferr == nil {
		for _, fh := range form.File["data"] {
			f, err := fh.Open()
			if err != nil {
				sendError(c, http.StatusBadRequest, "PROCESSING_ERROR", "failed to open attached file")
				return
			}
			content, err := io.ReadAll(f)
			f.Close()
			if err != nil {
				sendError(c, http.StatusBadRequest, "PROCESSING_ERROR", "failed to read attached file")
				return
			}
			entries = append(entries, models.Entry{Name: models.Basename(fh.Filename), Data: content})
		}
	}

	policy := models.Policy{
		Framing:    framingChoice,
		Encryption: models.EncryptionChoice{Enabled: password != "", Passphrase: password},
	}

	in := service.HideInput{
		Carrier: carrier,
		Entries: entries,
		Text:    message,
		HasText: message != "",
		Policy:  policy,
	}

	out, serr := h.pipeline.Hide(in)
	if serr != nil {
		log.Printf("[ERROR] [%s] HideHandler: %v", requestID, serr)
		sendStegoError(c, serr)
		return
	}

	encoded, serr := encodeCarrier(fileHeader.Filename, out)
	if serr != nil {
		sendStegoError(c, serr)
		return
	}

	processingTime := int(time.Since(startTime).Milliseconds())
	outputFilename := "stego" + strings.ToLower(filepath.Ext(fileHeader.Filename))

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", outputFilename))
	c.Header("X-Processing-Time", strconv.Itoa(processingTime))
	c.Data(http.StatusOK, "application/octet-stream", encoded)
}

// UnveilHandler recovers a message and/or files previously hidden in a carrier.
//
//	@Summary		Unveil data from a carrier
//	@Description	Recovers the text message and/or file entries embedded in a stego PNG or WAV carrier.
//	@Tags			Steganography
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			carrier		formData	file	true	"Stego carrier (PNG or WAV)"
//	@Param			password	formData	string	false	"Passphrase, if the payload was encrypted"
//	@Success		200	{object}	UnveilResponse
//	@Failure		400	{object}	models.ErrorResponse	"Invalid input"
//	@Failure		401	{object}	models.ErrorResponse	"Authentication failed"
//	@Failure		500	{object}	models.ErrorResponse	"Processing error"
//	@Router			/unveil [post]
func (h *Handlers) UnveilHandler(c *gin.Context) {
	requestID := requestIDFor(c)

	fileHeader, data, err := readCarrierFile(c, "carrier")
	if err != nil {
		sendError(c, http.StatusBadRequest, "MISSING_FILE", err.Error())
		return
	}

	carrier, serr := decodeCarrier(fileHeader.Filename, data)
	if serr != nil {
		sendError(c, http.StatusBadRequest, "INVALID_FORMAT", serr.Error())
		return
	}

	password := c.PostForm("password")
	policy := models.Policy{Encryption: models.EncryptionChoice{Enabled: password != "", Passphrase: password}}

	result, serr := h.pipeline.Unveil(carrier, policy)
	if serr != nil {
		log.Printf("[ERROR] [%s] UnveilHandler: %v", requestID, serr)
		sendStegoError(c, serr)
		return
	}

	entries := make([]EntryResponse, 0, len(result.Entries))
	for _, e := range result.Entries {
		entries = append(entries, EntryResponse{Name: e.Name, SizeBytes: len(e.Data)})
	}

	c.JSON(http.StatusOK, UnveilResponse{
		Text:    result.Text,
		HasText: result.HasText,
		Entries: entries,
	})
}

// UnveilResponse summarizes what unveil recovered; entry bytes are not
// inlined into the JSON response, only their names and sizes.
type UnveilResponse struct {
	Text    string          `json:"text,omitempty"`
	HasText bool            `json:"has_text"`
	Entries []EntryResponse `json:"entries"`
}

// EntryResponse is one recovered file entry's metadata.
type EntryResponse struct {
	Name      string `json:"name"`
	SizeBytes int    `json:"size_bytes"`
}

func requestIDFor(c *gin.Context) string {
	if id, ok := c.Get("trace_id"); ok {
		if s, ok := id.(string); ok {
			return s
		}
	}
	return fmt.Sprintf("req_%d", time.Now().UnixNano())
}

func readCarrierFile(c *gin.Context, field string) (*FileHeaderInfo, []byte, error) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		return nil, nil, fmt.Errorf("%s file not provided", field)
	}
	f, err := fileHeader.Open()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open uploaded file")
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read uploaded file")
	}
	return &FileHeaderInfo{Filename: fileHeader.Filename, Size: fileHeader.Size}, data, nil
}

// FileHeaderInfo captures the multipart file metadata handlers need,
// independent of *multipart.FileHeader so decodeCarrier/encodeCarrier stay
// easy to unit test.
type FileHeaderInfo struct {
	Filename string
	Size     int64
}

func decodeCarrier(filename string, data []byte) (*models.Carrier, *models.StegoError) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".png":
		img, err := png.Decode(data)
		if err != nil {
			return nil, err
		}
		return &models.Carrier{Kind: models.CarrierImage, Image: img}, nil
	case ".wav":
		audio, err := wav.Decode(data)
		if err != nil {
			return nil, err
		}
		return &models.Carrier{Kind: models.CarrierAudio, Audio: audio}, nil
	default:
		return nil, models.ErrCarrierFormat
	}
}

func encodeCarrier(filename string, carrier *models.Carrier) ([]byte, *models.StegoError) {
	switch carrier.Kind {
	case models.CarrierImage:
		return png.Encode(carrier.Image)
	case models.CarrierAudio:
		return wav.Encode(carrier.Audio)
	default:
		return nil, models.ErrCarrierFormat
	}
}

// sendError sends a standardized error response.
func sendError(c *gin.Context, statusCode int, code string, message string) {
	c.JSON(statusCode, models.ErrorResponse{
		Success: false,
		Error: models.ErrorDetail{
			Message: message,
			Details: map[string]interface{}{"code": code},
		},
	})
}

// sendStegoError maps a StegoError's Kind onto an HTTP status code, per the
// recoverable/fatal distinction the variant conveys.
func sendStegoError(c *gin.Context, err *models.StegoError) {
	status := http.StatusInternalServerError
	switch err.Kind {
	case models.KindCarrierTooSmall:
		status = http.StatusRequestEntityTooLarge
	case models.KindCarrierFormat, models.KindUnsupportedContentVersion, models.KindTruncated,
		models.KindPayloadMalformed, models.KindInvalidEntryName, models.KindDuplicateEntryName:
		status = http.StatusBadRequest
	case models.KindAuthenticationFailed:
		status = http.StatusUnauthorized
	}
	sendError(c, status, string(err.Kind), err.Error())
}
