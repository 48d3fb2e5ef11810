package shared

// ActionType categorizes what kind of action an ability spends
type ActionType string

const (
	ActionAttack    ActionType = "attack"
	ActionCast      ActionType = "cast"
	ActionDash      ActionType = "dash"
	ActionDisengage ActionType = "disengage"
	ActionDodge     ActionType = "dodge"
	ActionHelp      ActionType = "help"
	ActionHide      ActionType = "hide"
	ActionShove     ActionType = "shove"
	ActionUseObject ActionType = "use_object"
)

// ActionCost is the action-economy price of attempting an ability. Consumption
// is all-or-nothing: either every listed resource is available and spent, or
// nothing is.
type ActionCost struct {
	Action      bool   `json:"action,omitempty"`
	BonusAction bool   `json:"bonus_action,omitempty"`
	Reaction    bool   `json:"reaction,omitempty"`
	Movement    int    `json:"movement,omitempty"`
	SlotLevel   int    `json:"slot_level,omitempty"` // spell slot level, 0 = none
	ChargeKey   string `json:"charge_key,omitempty"` // per-encounter charge pool
	Charges     int    `json:"charges,omitempty"`
}

// Free reports whether the cost requires nothing
func (c ActionCost) Free() bool {
	return !c.Action && !c.BonusAction && !c.Reaction &&
		c.Movement == 0 && c.SlotLevel == 0 && c.Charges == 0
}
