package telemetry

import (
	"math"
	"math/rand"
	"time"

	"rescueops-sim/internal/fault"
	"rescueops-sim/internal/scenario"
	"rescueops-sim/internal/victim"
)

const (
	startAltitudeM = 1.0
	startRollDeg   = 3.0
	minAltitudeM   = 0.1
	maxAltitudeM   = 5.0
	maxRollDeg     = 15.0

	altitudeStepSigma = 0.15
	rollStepSigma     = 1.0
	coordStepSigma    = 0.00002

	plumeGuard        = 5.0
	victimRadius      = 2.5
	co2NoiseSigma     = 20.0
	tempNoiseSigma    = 0.5
	coNoiseSigma      = 2.0
	methaneNoiseSigma = 50.0
	altitudeLapseC    = 0.65

	drainCeilingPct = 40.0
	maxDrainPct     = 99.0
)

// GeneratorOptions holds the mission-level inputs that are not part of a profile.
type GeneratorOptions struct {
	Start    time.Time
	Step     time.Duration
	StartLat float64
	StartLon float64
}

// World is a generated mission site: the ordered point sequence plus the hidden
// victim sites used to synthesise it.
type World struct {
	Points     []RawPoint
	Sites      []victim.Site
	GridWidth  int
	GridHeight int
}

// Generator synthesises spatially correlated sensor ground truth for a profile.
type Generator struct {
	profile scenario.Profile
	opts    GeneratorOptions
	rng     *rand.Rand
}

// NewGenerator creates a generator. All stochastic choices are drawn from rng, so
// a seeded source reproduces the same world.
func NewGenerator(profile scenario.Profile, opts GeneratorOptions, rng *rand.Rand) *Generator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if opts.Step <= 0 {
		opts.Step = time.Second
	}
	return &Generator{profile: profile, opts: opts, rng: rng}
}

// Generate lays pointCount points on a grid gridWidth cells wide and returns them
// in index order.
func (g *Generator) Generate(pointCount, gridWidth int) (World, error) {
	if gridWidth <= 0 {
		return World{}, fault.Configf("grid_width", "must be > 0, got %d", gridWidth)
	}
	if pointCount <= 0 {
		return World{}, fault.Configf("point_count", "must be > 0, got %d", pointCount)
	}
	if err := g.profile.Validate(); err != nil {
		return World{}, err
	}

	height := (pointCount + gridWidth - 1) / gridWidth
	p := g.profile
	count := p.VictimCount.Min + g.rng.Intn(p.VictimCount.Max-p.VictimCount.Min+1)
	sites := victim.Spawn(g.rng, count, victim.Bounds{Width: gridWidth, Height: height},
		float64(p.VictimSignal.Min), float64(p.VictimSignal.Max))

	coSources, methaneSources := p.GasSources()
	points := make([]RawPoint, pointCount)
	alt, roll := startAltitudeM, startRollDeg
	lat, lon := g.opts.StartLat, g.opts.StartLon
	battery := 100.0

	for i := 0; i < pointCount; i++ {
		if i > 0 {
			alt = clamp(alt+g.rng.NormFloat64()*altitudeStepSigma, minAltitudeM, maxAltitudeM)
			roll = clamp(roll+g.rng.NormFloat64()*rollStepSigma, 0, maxRollDeg)
			if p.GPSAvailable {
				lat += g.rng.NormFloat64() * coordStepSigma
				lon += g.rng.NormFloat64() * coordStepSigma
			}
		}
		x, y := i%gridWidth, i/gridWidth
		fx, fy := float64(x), float64(y)

		signal, present := victimField(sites, fx, fy)
		co2 := p.CO2Baseline + signal + g.rng.NormFloat64()*co2NoiseSigma
		temp := p.AmbientTempC - altitudeLapseC*alt + thermalField(p.ThermalZones, fx, fy) +
			g.rng.NormFloat64()*tempNoiseSigma
		risk := riskField(p.RiskZones, fx, fy)
		co := math.Max(0, p.COBaseline+plume(coSources, fx, fy)+g.rng.NormFloat64()*coNoiseSigma)
		methane := math.Max(0, p.MethaneBaseline+plume(methaneSources, fx, fy)+
			g.rng.NormFloat64()*methaneNoiseSigma)

		drain := math.Min(maxDrainPct, growth(i, pointCount, p.BatteryDrainCoefficient)+0.1*roll+0.2*float64(risk))
		battery = math.Min(battery, 100-drain)

		points[i] = RawPoint{
			Index:           i,
			Timestamp:       g.opts.Start.Add(time.Duration(i) * g.opts.Step),
			Latitude:        lat,
			Longitude:       lon,
			GPSFix:          p.GPSAvailable,
			PosX:            x,
			PosY:            y,
			AltitudeZ:       alt,
			RollDeg:         roll,
			TempC:           temp,
			CO2PPM:          co2,
			COPPM:           co,
			MethanePPM:      methane,
			StructuralRisk:  risk,
			BatteryPct:      battery,
			VictimPresentGT: present,
		}
	}

	return World{Points: points, Sites: sites, GridWidth: gridWidth, GridHeight: height}, nil
}

// growth rises linearly from 0 at the first point to 40·coef at the last.
func growth(i, n int, coef float64) float64 {
	if n <= 1 {
		return 0
	}
	return drainCeilingPct * coef * float64(i) / float64(n-1)
}

// victimField sums the inverse-square plume of every site and reports whether
// the cell lies within victimRadius of any of them.
func victimField(sites []victim.Site, x, y float64) (float64, bool) {
	var signal float64
	present := false
	for _, s := range sites {
		d := s.Distance(x, y)
		signal += s.PeakSignal / (d*d + plumeGuard)
		if d <= victimRadius {
			present = true
		}
	}
	return signal, present
}

func plume(sources []scenario.Zone, x, y float64) float64 {
	var v float64
	for _, z := range sources {
		d2 := sq(x-z.X) + sq(y-z.Y)
		v += z.Intensity / (d2 + plumeGuard)
	}
	return v
}

// falloff is intensity·(1 − d/r) inside the zone radius and 0 outside.
func falloff(z scenario.Zone, x, y float64) (float64, bool) {
	d := math.Hypot(x-z.X, y-z.Y)
	if d >= z.Radius {
		return 0, false
	}
	return z.Intensity * (1 - d/z.Radius), true
}

func thermalField(zones []scenario.Zone, x, y float64) float64 {
	var t float64
	for _, z := range zones {
		v, _ := falloff(z, x, y)
		t += v
	}
	return t
}

// riskField takes the strongest zone, not the sum, clipped to [0,4] and rounded.
func riskField(zones []scenario.Zone, x, y float64) int {
	var best float64
	for _, z := range zones {
		if v, ok := falloff(z, x, y); ok && v > best {
			best = v
		}
	}
	return int(math.Round(clamp(best, 0, MaxRisk)))
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func sq(v float64) float64 { return v * v }
