package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestActorRoles(t *testing.T) {
	tests := []struct {
		name     string
		actor    *Actor
		admin    bool
		elevated bool
	}{
		{"admin", &Actor{Role: RoleAdmin}, true, true},
		{"employer", &Actor{Role: RoleEmployer}, false, true},
		{"user", &Actor{Role: RoleUser}, false, false},
		{"unknown role", &Actor{Role: "owner"}, false, false},
		{"anonymous", nil, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.admin, tt.actor.IsAdmin())
			assert.Equal(t, tt.admin, tt.actor.HasRole(StrictRoles...))
			assert.Equal(t, tt.elevated, tt.actor.HasRole(ElevatedRoles...))
		})
	}
}
