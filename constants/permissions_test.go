package constants

import "testing"

func TestRolePermissions(t *testing.T) {
	for _, c := range AllCapabilities {
		if !Can(RoleAdmin, c) {
			t.Errorf("admin missing %s", c)
		}
	}

	tests := []struct {
		role Role
		cap  Capability
		want bool
	}{
		{RoleAgent, CapReservationsWrite, true},
		{RoleAgent, CapDepositsWrite, false},
		{RoleAgent, CapCleaningAssign, true},
		{RoleAgent, CapUsersManage, false},
		{RoleFinance, CapDepositsWrite, true},
		{RoleFinance, CapReservationsWrite, false},
		{RoleFinance, CapDashboardRead, true},
		{RoleCleaner, CapCleaningWork, true},
		{RoleCleaner, CapCleaningAssign, false},
		{RoleCleaner, CapCleaningOverride, false},
		{RoleCleaner, CapGuestsRead, false},
		{RoleCleaner, CapUploadsWrite, true},
		{Role("OWNER"), CapUnitsRead, false},
	}
	for _, tt := range tests {
		if got := Can(tt.role, tt.cap); got != tt.want {
			t.Errorf("Can(%s, %s) = %v, want %v", tt.role, tt.cap, got, tt.want)
		}
	}
}
