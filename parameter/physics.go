package parameter

// Physical constants (SI units)
const (
	// C is the speed of light in m/s
	C = 299_792_458.0

	// C2 is C squared
	C2 = C * C

	// G is the gravitational constant in m³/(kg·s²)
	G = 6.67430e-11

	// PlanckConstant in J·s
	PlanckConstant = 6.62607004e-34

	// AU is one astronomical unit in meters
	AU = 1.495978707e11

	// SolarMass in kg
	SolarMass = 1.989e30
)

// Integrator limits
const (
	// MaxVelocity is the default speed ceiling for bodies, strictly below C
	// so the velocity-aligned frame and Lorentz factor stay defined
	MaxVelocity = C - 2

	// MinStepSize is the smallest simulated substep in seconds (1 microsecond)
	MinStepSize = 1.0 / 1_000_000
)

// Black hole overlay radii as multiples of the render (event horizon) radius
const (
	BlackHoleShadowFactor      = 2.6
	BlackHolePhotonRingFactor  = 1.5
	BlackHoleStableOrbitFactor = 3.0
)

// Photon defaults
const (
	// GreenLightFrequency in Hz, used by the photon emitters
	GreenLightFrequency = 5.5e14

	// DefaultPhotonFrequency applies when a photon is created with frequency 0
	DefaultPhotonFrequency = 1.0
)

// Emitter shapes
const (
	PhotonRingCount   = 180
	PhotonLineCount   = 50
	PhotonLineSpacing = 4.0 // screen cells, scaled by camera zoom

	// DroppedBlackHoleSolarMasses is the mass of a black hole placed by hand
	DroppedBlackHoleSolarMasses = 1000
)

// Launch defaults
const (
	LaunchMass = 1.0

	// LaunchDensityDivisor shrinks √(m/π) to roughly Earth density for unit mass
	LaunchDensityDivisor = 216410.0

	// PredictionHorizon and PredictionStep are in real seconds, scaled by time scale
	PredictionHorizon = 120.0
	PredictionStep    = 1.0 / 60.0
)
