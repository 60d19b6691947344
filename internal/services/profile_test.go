package services

import (
	"testing"

	"service_reporting/internal/apperr"
	"service_reporting/internal/db/dbtest"
	"service_reporting/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestProfileGet(t *testing.T) {
	gdb := dbtest.New(t)
	dept := dbtest.Department(t, gdb, "ICT Department")
	user := dbtest.User(t, gdb, "me@example.com", dept.ID, domain.RoleDepartmentUser)
	svc := NewProfileService(gdb)

	p, err := svc.Get(t.Context(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "me@example.com", p.Email)
	assert.Equal(t, "ICT Department", p.Department)
	assert.Equal(t, domain.RoleDepartmentUser, p.Role)

	_, err = svc.Get(t.Context(), user.ID+1)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestProfileUpdatePartial(t *testing.T) {
	gdb := dbtest.New(t)
	dept := dbtest.Department(t, gdb, "ICT Department")
	user := dbtest.User(t, gdb, "me@example.com", dept.ID, domain.RoleDepartmentUser)
	svc := fastProfile(NewProfileService(gdb))

	p, err := svc.Update(t.Context(), user.ID, ProfileUpdate{
		FirstName: strPtr("Grace"),
		Email:     strPtr("Grace@Example.com"),
		Password:  strPtr("new-password"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Grace", p.FirstName)
	assert.Equal(t, "User", p.LastName, "untouched field keeps its value")
	assert.Equal(t, "grace@example.com", p.Email)

	var stored domain.User
	require.NoError(t, gdb.First(&stored, user.ID).Error)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("new-password")))
	assert.Equal(t, domain.RoleDepartmentUser, stored.Role)
}

func TestProfileUpdateEmailConflict(t *testing.T) {
	gdb := dbtest.New(t)
	dept := dbtest.Department(t, gdb, "ICT Department")
	me := dbtest.User(t, gdb, "me@example.com", dept.ID, domain.RoleDepartmentUser)
	dbtest.User(t, gdb, "taken@example.com", dept.ID, domain.RoleDepartmentUser)
	svc := NewProfileService(gdb)

	_, err := svc.Update(t.Context(), me.ID, ProfileUpdate{Email: strPtr("taken@example.com"), FirstName: strPtr("Changed")})
	assert.True(t, apperr.Is(err, apperr.KindConflict), "got %v", err)

	var stored domain.User
	require.NoError(t, gdb.First(&stored, me.ID).Error)
	assert.Equal(t, "me@example.com", stored.Email)
	assert.Equal(t, "Test", stored.FirstName, "rejected update must not partially apply")

	_, err = svc.Update(t.Context(), me.ID, ProfileUpdate{Email: strPtr("me@example.com")})
	assert.NoError(t, err, "keeping one's own email is not a conflict")
}

func TestProfileUpdateValidation(t *testing.T) {
	gdb := dbtest.New(t)
	dept := dbtest.Department(t, gdb, "ICT Department")
	me := dbtest.User(t, gdb, "me@example.com", dept.ID, domain.RoleDepartmentUser)
	svc := NewProfileService(gdb)

	for _, in := range []ProfileUpdate{
		{FirstName: strPtr(" ")},
		{LastName: strPtr("")},
		{Email: strPtr("broken")},
		{Password: strPtr("short")},
	} {
		_, err := svc.Update(t.Context(), me.ID, in)
		assert.True(t, apperr.Is(err, apperr.KindValidation), "got %v", err)
	}

	_, err := svc.Update(t.Context(), me.ID+42, ProfileUpdate{FirstName: strPtr("X")})
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}
