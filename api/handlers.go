package api

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	coremetrics "github.com/tbaudier/parkwatch/core/metrics"
	"github.com/tbaudier/parkwatch/core/model"
	"github.com/tbaudier/parkwatch/core/prediction"
	"github.com/tbaudier/parkwatch/core/pricing"
)

const requestTimeout = 15 * time.Second

type areaStats struct {
	Name          string  `json:"name"`
	Total         int     `json:"total"`
	Available     int     `json:"available"`
	OccupancyRate float64 `json:"occupancy_rate"`
}

func (s *Server) handleStatus(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	lot, err := s.store.GetLot(ctx)
	if errors.Is(err, model.ErrNoLot) {
		c.JSON(http.StatusNotFound, gin.H{"error": "no parking lot found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	spots, err := s.store.ListSpots(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	areas, err := s.store.ListAreas(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	stats := make([]areaStats, 0, len(areas))
	for _, area := range areas {
		total, occupied := 0, 0
		for _, spot := range spots {
			if spot.AreaID == nil || *spot.AreaID != area.ID {
				continue
			}
			total++
			if spot.Occupied {
				occupied++
			}
		}
		st := areaStats{Name: area.Name, Total: total, Available: total - occupied}
		if total > 0 {
			st.OccupancyRate = float64(occupied) / float64(total)
		}
		stats = append(stats, st)
	}

	occupancyRate := 0.0
	if lot.TotalSpots > 0 {
		occupancyRate = float64(lot.TotalSpots-lot.AvailableSpots) / float64(lot.TotalSpots)
	}
	c.JSON(http.StatusOK, gin.H{
		"lot_name":        lot.Name,
		"total_spots":     lot.TotalSpots,
		"available_spots": lot.AvailableSpots,
		"occupancy_rate":  occupancyRate,
		"current_price":   lot.CurrentPrice,
		"base_price":      lot.BasePrice,
		"area_stats":      stats,
		"spots":           spots,
	})
}

func (s *Server) handleUpdate(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	summary, err := s.coord.Run(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (s *Server) handlePredict(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid spot id"})
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	if _, err := s.store.GetSpot(ctx, id); err != nil {
		s.renderLookupError(c, err)
		return
	}
	pred, err := s.predict(ctx, id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, pred)
}

func (s *Server) handlePredictByNumber(c *gin.Context) {
	number := c.Param("number")
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	spot, err := s.store.GetSpotByNumber(ctx, strings.ToUpper(number))
	if errors.Is(err, model.ErrNotFound) {
		// Numeric input falls back to a lookup by ID.
		if id, perr := strconv.ParseInt(number, 10, 64); perr == nil {
			spot, err = s.store.GetSpot(ctx, id)
		}
	}
	if errors.Is(err, model.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{
			"error":       "spot \"" + number + "\" not found",
			"known_spots": s.knownSpotNumbers(ctx),
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	pred, err := s.predict(ctx, spot.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	pred.SpotID = spot.ID
	pred.SpotNumber = spot.Number
	c.JSON(http.StatusOK, pred)
}

type scoredSpot struct {
	Spot       spotSummary           `json:"spot"`
	Score      float64               `json:"score"`
	Prediction prediction.Prediction `json:"prediction"`
}

type spotSummary struct {
	ID          int64  `json:"id"`
	SpotNumber  string `json:"spot_number"`
	Coordinates string `json:"coordinates"`
}

func (s *Server) handleFindParking(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	spots, err := s.store.ListSpots(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	var available []model.Spot
	for _, spot := range spots {
		if !spot.Occupied {
			available = append(available, spot)
		}
	}
	if len(available) == 0 {
		c.JSON(http.StatusOK, gin.H{"message": "no available spots", "recommended_spots": []scoredSpot{}})
		return
	}

	scored := make([]scoredSpot, 0, len(available))
	for _, spot := range available {
		pred, err := s.predict(ctx, spot.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		// Confidence-weighted score; "A" numbers stand in for spots
		// closer to the entrance.
		score := pred.Confidence * 10
		if strings.Contains(spot.Number, "A") {
			score += 5
		}
		scored = append(scored, scoredSpot{
			Spot: spotSummary{
				ID:          spot.ID,
				SpotNumber:  spot.Number,
				Coordinates: spot.Coordinates.String(),
			},
			Score:      score,
			Prediction: pred,
		})
	}
	sort.SliceStable(scored, func(i, j int) bool { return scored[i].Score > scored[j].Score })
	if len(scored) > 3 {
		scored = scored[:3]
	}
	c.JSON(http.StatusOK, gin.H{
		"recommended_spots": scored,
		"total_available":   len(available),
	})
}

func (s *Server) handlePricingHistory(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	lot, err := s.store.GetLot(ctx)
	if errors.Is(err, model.ErrNoLot) {
		c.JSON(http.StatusNotFound, gin.H{"error": "no parking lot found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	// Simulated curve: occupancy is sampled, the price derives from the
	// same tier table the live pipeline uses.
	type entry struct {
		Hour          int     `json:"hour"`
		Price         float64 `json:"price"`
		OccupancyRate float64 `json:"occupancy_rate"`
	}
	now := time.Now().Hour()
	history := make([]entry, 0, 24)
	for i := 0; i < 24; i++ {
		hour := ((now-i)%24 + 24) % 24
		occupancy := 0.2 + rand.Float64()*0.7
		price := pricing.Multiplier(occupancy) * lot.BasePrice
		history = append(history, entry{
			Hour:          hour,
			Price:         math.Round(price*100) / 100,
			OccupancyRate: occupancy,
		})
	}
	c.JSON(http.StatusOK, gin.H{"pricing_history": history})
}

func (s *Server) handleMap(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	areas, err := s.store.ListAreas(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	type mapArea struct {
		model.Area
		Total     int          `json:"total"`
		Available int          `json:"available"`
		Spots     []model.Spot `json:"spots"`
	}
	out := make([]mapArea, 0, len(areas))
	for _, area := range areas {
		spots, err := s.store.ListSpotsByArea(ctx, area.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		ma := mapArea{Area: area, Total: len(spots), Spots: spots}
		for _, spot := range spots {
			if !spot.Occupied {
				ma.Available++
			}
		}
		out = append(out, ma)
	}
	c.JSON(http.StatusOK, gin.H{
		"areas":  out,
		"center": gin.H{"latitude": 40.7128, "longitude": -74.0060},
		"zoom":   14,
	})
}

// predict runs the configured predictor and counts the served source.
func (s *Server) predict(ctx context.Context, spotID int64) (prediction.Prediction, error) {
	pred, err := s.predictor.Predict(ctx, spotID, 1)
	if err != nil {
		return prediction.Prediction{}, err
	}
	source := coremetrics.SourceStatistical
	if pred.AIPowered {
		source = coremetrics.SourceAI
	}
	if serr := s.sink.RecordPrediction(source); serr != nil {
		s.log.Warnf("record prediction metrics: %v", serr)
	}
	return pred, nil
}

func (s *Server) knownSpotNumbers(ctx context.Context) []string {
	spots, err := s.store.ListSpots(ctx)
	if err != nil {
		return nil
	}
	numbers := make([]string, 0, len(spots))
	for _, spot := range spots {
		numbers = append(numbers, spot.Number)
	}
	return numbers
}

func (s *Server) renderLookupError(c *gin.Context, err error) {
	if errors.Is(err, model.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "spot not found"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
