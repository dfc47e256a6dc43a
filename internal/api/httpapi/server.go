package httpapi

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"crop-vision/internal/domain/entity"
)

// maxUploadBytes предел размера загружаемого изображения
const maxUploadBytes = 20 << 20

// Identifier то, что сервер умеет делать с одной картинкой.
type Identifier interface {
	Classify(ctx context.Context, photo []byte) (*entity.Classification, error)
	Identify(ctx context.Context, photo []byte) (*entity.CropInfo, error)
}

type Server struct {
	identifier Identifier
}

func NewServer(identifier Identifier) *Server {
	return &Server{identifier: identifier}
}

func (s *Server) SetupRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	r.MaxMultipartMemory = maxUploadBytes

	r.GET("/health", s.Health)
	r.POST("/classify", s.Classify)
	r.POST("/identify", s.Identify)

	return r
}

func (s *Server) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Classify POST /classify, multipart поле image -> {"label": ..., "confidence": ...}
func (s *Server) Classify(c *gin.Context) {
	photo, ok := readImage(c)
	if !ok {
		return
	}

	result, err := s.identifier.Classify(c.Request.Context(), photo)
	if err != nil {
		log.Printf("Failed to classify upload: %v", err)
		c.JSON(statusFor(err), gin.H{"error": "Failed to classify image"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// Identify POST /identify -> карточка культуры
func (s *Server) Identify(c *gin.Context) {
	photo, ok := readImage(c)
	if !ok {
		return
	}

	info, err := s.identifier.Identify(c.Request.Context(), photo)
	if err != nil {
		log.Printf("Failed to identify upload: %v", err)
		c.JSON(statusFor(err), gin.H{"error": "Failed to identify image"})
		return
	}

	c.JSON(http.StatusOK, info)
}

func readImage(c *gin.Context) ([]byte, bool) {
	fh, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing image file (multipart field \"image\")"})
		return nil, false
	}
	if fh.Size > maxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "Image is too large"})
		return nil, false
	}

	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid image upload"})
		return nil, false
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxUploadBytes+1))
	if err != nil || len(data) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid image upload"})
		return nil, false
	}
	return data, true
}

// statusFor битая картинка — ошибка клиента, остальное — сбой модели.
func statusFor(err error) int {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, entity.ErrInvalidImage):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadGateway
	}
}
