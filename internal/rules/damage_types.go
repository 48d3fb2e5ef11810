package rules

// DamageType tags damage for resistance/vulnerability/immunity lookups
type DamageType string

const (
	DamageBludgeoning DamageType = "bludgeoning"
	DamagePiercing    DamageType = "piercing"
	DamageSlashing    DamageType = "slashing"
	DamageFire        DamageType = "fire"
	DamageCold        DamageType = "cold"
	DamageLightning   DamageType = "lightning"
	DamageThunder     DamageType = "thunder"
	DamageAcid        DamageType = "acid"
	DamagePoison      DamageType = "poison"
	DamageNecrotic    DamageType = "necrotic"
	DamageRadiant     DamageType = "radiant"
	DamageForce       DamageType = "force"
	DamagePsychic     DamageType = "psychic"
)
