package model

// CombatState 角色战斗状态，互斥
type CombatState uint8

const (
	CombatUnoccupied CombatState = iota
	CombatFireTimerInProgress
	CombatReloading
	CombatEquipping
)

func (s CombatState) String() string {
	switch s {
	case CombatUnoccupied:
		return "Unoccupied"
	case CombatFireTimerInProgress:
		return "FireTimerInProgress"
	case CombatReloading:
		return "Reloading"
	case CombatEquipping:
		return "Equipping"
	default:
		return "Invalid"
	}
}
