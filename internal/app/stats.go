package app

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/metinatakli/movie-booking-system/api"
	"github.com/metinatakli/movie-booking-system/internal/domain"
	"github.com/redis/go-redis/v9"
)

const statsCacheKey = "stats:summary"

func (app *Application) GetStats(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	resp, ok := app.cachedStats(r)
	if !ok {
		stats, err := app.statsRepo.Get(r.Context())
		if err != nil {
			app.serverErrorResponse(w, r, err)
			return
		}

		resp = toStatsResponse(stats)

		data, err := json.Marshal(resp)
		if err == nil {
			err = app.redis.Set(r.Context(), statsCacheKey, data, app.config.StatsCacheTTL).Err()
		}
		if err != nil {
			logger.Warn("failed to cache stats", "error", err)
		}
	}

	err := app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// cachedStats reports a miss for any cache failure; the database stays the
// source of truth.
func (app *Application) cachedStats(r *http.Request) (api.StatsResponse, bool) {
	var resp api.StatsResponse

	data, err := app.redis.Get(r.Context(), statsCacheKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			app.contextGetLogger(r).Warn("failed to read cached stats", "error", err)
		}
		return resp, false
	}

	err = json.Unmarshal(data, &resp)
	if err != nil {
		app.contextGetLogger(r).Warn("discarding malformed cached stats", "error", err)
		return resp, false
	}

	return resp, true
}

func (app *Application) invalidateStats(ctx context.Context) {
	err := app.redis.Del(ctx, statsCacheKey).Err()
	if err != nil {
		app.logger.Warn("failed to invalidate cached stats", "error", err)
	}
}

func toStatsResponse(stats *domain.Stats) api.StatsResponse {
	return api.StatsResponse{
		Movies:         stats.Movies,
		Bookings:       stats.Bookings,
		Revenue:        stats.Revenue,
		BookedSeats:    stats.BookedSeats,
		AvailableSeats: stats.AvailableSeats,
		Users:          stats.Users,
	}
}
