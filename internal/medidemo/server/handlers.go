package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vaibhaw-/MediDemo/internal/medidemo/catalog"
	"github.com/vaibhaw-/MediDemo/internal/medidemo/config"
	"github.com/vaibhaw-/MediDemo/internal/medidemo/latency"
	"github.com/vaibhaw-/MediDemo/internal/medidemo/logger"
	"github.com/vaibhaw-/MediDemo/internal/medidemo/symptom"
	"github.com/vaibhaw-/MediDemo/internal/medidemo/validation"
)

type handlers struct {
	cat      *catalog.Catalog
	simulate bool
	latency  config.LatencyCfg
}

type symptomsRequest struct {
	Symptoms []string `json:"symptoms"`
}

type symptomsResponse struct {
	Results         []symptom.Result `json:"results"`
	HighestSeverity symptom.Severity `json:"highest_severity,omitempty"`
}

// Pointer fields distinguish a missing value from zero.
type bmiRequest struct {
	WeightKg *float64 `json:"weight_kg"`
	HeightCm *float64 `json:"height_cm"`
}

type heartRateRequest struct {
	HeartRate *int `json:"heart_rate"`
	Age       *int `json:"age"`
}

func (h *handlers) listSymptoms(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"symptoms": h.cat.Symptoms.KnownSymptoms()})
}

func (h *handlers) matchSymptoms(c *gin.Context) {
	var req symptomsRequest
	if !bindJSON(c, &req) {
		return
	}
	h.respond(c, h.latency.Symptoms, func() (any, error) {
		results, err := h.cat.Symptoms.Match(req.Symptoms)
		if err != nil {
			return nil, err
		}
		return symptomsResponse{Results: results, HighestSeverity: symptom.HighestSeverity(results)}, nil
	})
}

func (h *handlers) evaluateBMI(c *gin.Context) {
	var req bmiRequest
	if !bindJSON(c, &req) {
		return
	}
	h.respond(c, h.latency.BMI, func() (any, error) {
		if req.WeightKg == nil {
			return nil, validation.New("weight_kg", "is required")
		}
		if req.HeightCm == nil {
			return nil, validation.New("height_cm", "is required")
		}
		return h.cat.BMI.Evaluate(*req.WeightKg, *req.HeightCm)
	})
}

func (h *handlers) analyzeHeartRate(c *gin.Context) {
	var req heartRateRequest
	if !bindJSON(c, &req) {
		return
	}
	h.respond(c, h.latency.HeartRate, func() (any, error) {
		if req.HeartRate == nil {
			return nil, validation.New("heart_rate", "is required")
		}
		if req.Age == nil {
			return nil, validation.New("age", "is required")
		}
		return h.cat.HeartRate.Analyze(*req.HeartRate, *req.Age)
	})
}

func (h *handlers) lookupDrug(c *gin.Context) {
	name := c.Param("name")
	h.respond(c, h.latency.Drug, func() (any, error) {
		return h.cat.Drugs.Lookup(name)
	})
}

// bindJSON decodes the body into dst and writes the error response on failure.
func bindJSON(c *gin.Context, dst any) bool {
	err := c.ShouldBindJSON(dst)
	if err == nil {
		return true
	}
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "payload_too_large"})
		return false
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_payload", "message": err.Error()})
	return false
}

// respond runs fn, after the configured delay when latency simulation is on,
// and maps its outcome onto an HTTP response.
func (h *handlers) respond(c *gin.Context, delay time.Duration, fn func() (any, error)) {
	if !h.simulate {
		delay = 0
	}
	result, err := latency.Do(c.Request.Context(), delay, fn)
	if err == nil {
		c.JSON(http.StatusOK, result)
		return
	}

	if ve, ok := validation.As(err); ok {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":   "validation_failed",
			"field":   ve.Field,
			"message": ve.Reason,
		})
		return
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "request_cancelled"})
		return
	}

	logger.L().Errorw("request failed",
		"request_id", c.GetString("request_id"),
		"path", c.Request.URL.Path,
		"err", err.Error())
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
}
