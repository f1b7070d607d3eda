package game

// Time values are in simulation time-units (milliseconds of frame delta).
// Distances are in arena pixels. Movement values are per tick.
const (
	// Combatant body.
	baseBodySize   = 40.0 // width and height at scale 1
	baseMaxHealth  = 100.0
	combatantSpeed = 3.0  // pixels per tick
	turretTurnRate = 0.05 // radians per tick
	maxScale       = 3.0
	expPerScale    = 1000.0 // experience needed for +1.0 scale

	// Turret and barrel geometry, all multiplied by scale.
	turretRadius  = 15.0
	barrelLength  = 35.0 // also the muzzle offset for spawned projectiles
	barrelWidth   = 10.0
	treadWidth    = 5.0
	healthBarW    = 50.0
	healthBarH    = 5.0
	healthBarLift = 15.0

	// Firing.
	reloadTime       = 500.0
	enemyFireJitter  = 1000.0 // enemies add U[0, jitter) to reload on each check
	projectileSpeed  = 10.0   // pixels per tick
	projectileRadius = 5.0    // multiplied by firer scale

	// Enemy AI.
	engageRadius    = 500.0
	stopDistance    = 200.0
	enemySpeedScale = 0.5

	// Damage and progression.
	enemyShotDamage  = 5.0
	playerShotDamage = 25.0 // multiplied by player scale
	killHealFraction = 0.5  // of the victim's max health

	// Spawning.
	defaultSpawnInterval = 3000.0
	defaultSpawnMaxExp   = 5000
	spawnEdgeMargin      = 50.0

	defaultArenaWidth  = 800.0
	defaultArenaHeight = 600.0
)
