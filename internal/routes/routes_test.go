package routes

import (
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/sharpcut-app/booking-api/internal/config"
)

// TestRegisterRoutes_Surface pins the public HTTP surface: clients bind to
// these exact method/path pairs.
func TestRegisterRoutes_Surface(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	RegisterRoutes(r, nil, nil, &config.Config{})

	have := map[string]bool{}
	for _, ri := range r.Routes() {
		have[ri.Method+" "+ri.Path] = true
	}

	want := []string{
		"POST /api/auth/register",
		"POST /api/auth/login",
		"GET /api/settings",
		"GET /api/barbers",
		"GET /api/barbers/:id",
		"GET /api/barbers/:id/reviews",
		"GET /api/services",
		"GET /api/services/:id",
		"GET /api/availability",

		"GET /api/users/me",
		"PATCH /api/users/me",
		"POST /api/users/me/avatar",
		"GET /api/appointments",
		"POST /api/appointments",
		"PATCH /api/appointments/:id",
		"DELETE /api/appointments/:id",
		"POST /api/reviews",

		"GET /api/me/schedule",
		"GET /api/me/working-hours",
		"PUT /api/me/working-hours",
		"PATCH /api/me/appointments/:id/complete",

		"POST /api/admin/barbers",
		"POST /api/admin/services",
		"PATCH /api/admin/services/:id",
		"PATCH /api/admin/settings",
		"GET /api/admin/audit-logs",
	}

	for _, w := range want {
		assert.True(t, have[w], "missing route %s", w)
	}
}
