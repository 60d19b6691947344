package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	testCases := []struct {
		in   string
		want Role
	}{
		{in: "", want: RoleDepartmentUser},
		{in: "department_user", want: RoleDepartmentUser},
		{in: "head_of_planning", want: RoleHeadOfPlanning},
		{in: " Head_Of_Planning ", want: RoleHeadOfPlanning},
		{in: "planning_head", want: RoleHeadOfPlanning},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseRole(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
			assert.True(t, got.Valid())
		})
	}
}

func TestParseRoleUnknown(t *testing.T) {
	_, err := ParseRole("admin")
	assert.Error(t, err)
	assert.False(t, Role("admin").Valid())
}
