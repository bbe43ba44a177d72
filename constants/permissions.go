package constants

// Capability quyền thao tác trên một nhóm tài nguyên
type Capability string

const (
	CapUsersManage       Capability = "users:manage"
	CapLocationsRead     Capability = "locations:read"
	CapLocationsWrite    Capability = "locations:write"
	CapUnitsRead         Capability = "units:read"
	CapUnitsWrite        Capability = "units:write"
	CapGuestsRead        Capability = "guests:read"
	CapGuestsWrite       Capability = "guests:write"
	CapReservationsRead  Capability = "reservations:read"
	CapReservationsWrite Capability = "reservations:write"
	CapDepositsRead      Capability = "deposits:read"
	CapDepositsWrite     Capability = "deposits:write"
	CapCleaningRead      Capability = "cleaning:read"
	CapCleaningWork      Capability = "cleaning:work"
	CapCleaningAssign    Capability = "cleaning:assign"
	CapCleaningOverride  Capability = "cleaning:override"
	CapDashboardRead     Capability = "dashboard:read"
	CapUploadsWrite      Capability = "uploads:write"
)

var AllCapabilities = []Capability{
	CapUsersManage,
	CapLocationsRead, CapLocationsWrite,
	CapUnitsRead, CapUnitsWrite,
	CapGuestsRead, CapGuestsWrite,
	CapReservationsRead, CapReservationsWrite,
	CapDepositsRead, CapDepositsWrite,
	CapCleaningRead, CapCleaningWork, CapCleaningAssign, CapCleaningOverride,
	CapDashboardRead,
	CapUploadsWrite,
}

// CapabilitySet tập quyền của một vai trò
type CapabilitySet map[Capability]struct{}

func NewCapabilitySet(caps ...Capability) CapabilitySet {
	set := make(CapabilitySet, len(caps))
	for _, c := range caps {
		set[c] = struct{}{}
	}
	return set
}

func (s CapabilitySet) Has(c Capability) bool {
	_, ok := s[c]
	return ok
}

// RolePermissions bảng phân quyền theo vai trò
var RolePermissions = map[Role]CapabilitySet{
	RoleAdmin: NewCapabilitySet(AllCapabilities...),
	RoleFinance: NewCapabilitySet(
		CapLocationsRead, CapUnitsRead,
		CapGuestsRead,
		CapReservationsRead,
		CapDepositsRead, CapDepositsWrite,
		CapDashboardRead,
		CapUploadsWrite,
	),
	RoleAgent: NewCapabilitySet(
		CapLocationsRead, CapUnitsRead,
		CapGuestsRead, CapGuestsWrite,
		CapReservationsRead, CapReservationsWrite,
		CapDepositsRead,
		CapCleaningAssign,
		CapDashboardRead,
		CapUploadsWrite,
	),
	RoleCleaner: NewCapabilitySet(
		CapLocationsRead, CapUnitsRead,
		CapCleaningRead, CapCleaningWork,
		CapUploadsWrite,
	),
}

// Can kiểm tra vai trò có quyền c hay không
func Can(role Role, c Capability) bool {
	set, ok := RolePermissions[role]
	if !ok {
		return false
	}
	return set.Has(c)
}
