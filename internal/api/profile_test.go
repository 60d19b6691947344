package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"service_reporting/internal/db/dbtest"
	"service_reporting/internal/domain"
	"service_reporting/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileForBothRoles(t *testing.T) {
	app := newTestApp(t)
	_, deptToken := app.departmentToken(t)
	_, planToken := app.planningToken(t)

	for token, want := range map[string]string{deptToken: "Finance Department", planToken: "Planning Department"} {
		w := app.do(t, http.MethodGet, "/profile", token, nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var p services.Profile
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))
		assert.Equal(t, want, p.Department)
		assert.NotContains(t, w.Body.String(), "password")
	}
}

func TestProfileUpdate(t *testing.T) {
	app := newTestApp(t)
	user, token := app.departmentToken(t)
	dbtest.User(t, app.db, "taken@ag.go.ke", app.finance.ID, domain.RoleDepartmentUser)

	w := app.do(t, http.MethodPut, "/profile/update", token, gin.H{"first_name": "Amina"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var stored domain.User
	require.NoError(t, app.db.First(&stored, user.ID).Error)
	assert.Equal(t, "Amina", stored.FirstName)
	assert.Equal(t, user.LastName, stored.LastName)
	assert.Equal(t, user.Email, stored.Email)

	w = app.do(t, http.MethodPut, "/profile/update", token, gin.H{"email": "taken@ag.go.ke"})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Email already exists", errorOf(t, w))

	w = app.do(t, http.MethodPut, "/profile/update", token, gin.H{"last_name": "  "})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = app.do(t, http.MethodPut, "/profile/update", token, "[1,2]")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
