package httpapi

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/UnknownOlympus/foodbridge/internal/feed"
	"github.com/UnknownOlympus/foodbridge/internal/models"
	"github.com/gin-gonic/gin"
)

// feedParams are the query parameters shared by every feed endpoint.
type feedParams struct {
	NearMe   bool    `form:"near_me"`
	Lat      string  `form:"lat"`
	Lon      string  `form:"lon"`
	RadiusKm float64 `form:"radius_km" binding:"gte=0"`
	Page     int     `form:"page"      binding:"gte=0"`
	PageSize int     `form:"page_size" binding:"gte=0"`
	Status   string  `form:"status"`
	Type     string  `form:"type"`
}

// feedQuery reads feed parameters. A missing or unparsable position means the browser
// could not or would not share one, so it becomes an unknown reference rather than an error.
func feedQuery(c *gin.Context) (feed.Query, error) {
	var params feedParams
	if err := c.ShouldBindQuery(&params); err != nil {
		return feed.Query{}, fmt.Errorf("%w: %w", errBadRequest, err)
	}

	return feed.Query{
		NearMe:    params.NearMe,
		Reference: parsePoint(params.Lat, params.Lon),
		RadiusKm:  params.RadiusKm,
		Page:      params.Page,
		PageSize:  params.PageSize,
		Status:    params.Status,
		Type:      params.Type,
	}, nil
}

// parsePoint returns an unknown point unless both values are valid coordinates.
func parsePoint(rawLat, rawLon string) models.GeoPoint {
	lat, err := strconv.ParseFloat(strings.TrimSpace(rawLat), 64)
	if err != nil || lat < -90 || lat > 90 {
		return models.GeoPoint{}
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(rawLon), 64)
	if err != nil || lon < -180 || lon > 180 {
		return models.GeoPoint{}
	}
	return models.NewGeoPoint(lat, lon)
}

// parseKind accepts the singular or plural listing kind used in paths.
func parseKind(raw string) (models.Kind, error) {
	switch strings.ToLower(raw) {
	case "donation", "donations":
		return models.KindDonation, nil
	case "request", "requests":
		return models.KindRequest, nil
	default:
		return "", feed.ErrInvalidKind
	}
}

func pathID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid id %q", errBadRequest, c.Param("id"))
	}
	return id, nil
}
