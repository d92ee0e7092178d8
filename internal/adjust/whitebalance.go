package adjust

import "math"

// The white-balance gain table spans 2000 K to 10000 K in 500 K steps.
// Entries are built once from the Tanner Helland blackbody approximation;
// lookups interpolate linearly between neighboring entries.
const (
	kelvinTableMin  = 2000.0
	kelvinTableMax  = 10000.0
	kelvinTableStep = 500.0
)

type rgbGains struct {
	r, g, b float64
}

var kelvinTable [17]rgbGains

func init() {
	for i := range kelvinTable {
		kelvinTable[i] = blackbodyGains(kelvinTableMin + float64(i)*kelvinTableStep)
	}
}

// blackbodyGains evaluates the blackbody approximation at one temperature,
// returning per-channel gains normalized to [0, 1].
func blackbodyGains(kelvin float64) rgbGains {
	temp := kelvin / 100.0

	clamp := func(v float64) float64 {
		if v < 0 {
			return 0
		}
		if v > 255 {
			return 255
		}
		return v
	}

	var r, g, b float64
	if temp <= 66 {
		r = 255
	} else {
		r = clamp(329.698727446 * math.Pow(temp-60, -0.1332047592))
	}
	if temp <= 66 {
		g = clamp(99.4708025861*math.Log(temp) - 161.1195681661)
	} else {
		g = clamp(288.1221695283 * math.Pow(temp-60, -0.0755148492))
	}
	switch {
	case temp >= 66:
		b = 255
	case temp <= 19:
		b = 0
	default:
		b = clamp(138.5177312231*math.Log(temp-10) - 305.0447927307)
	}

	return rgbGains{r: r / 255.0, g: g / 255.0, b: b / 255.0}
}

// kelvinGains returns the interpolated channel gains for a temperature.
// Temperatures outside the table are clamped to its ends.
func kelvinGains(kelvin float64) (r, g, b float64) {
	if kelvin <= kelvinTableMin {
		e := kelvinTable[0]
		return e.r, e.g, e.b
	}
	if kelvin >= kelvinTableMax {
		e := kelvinTable[len(kelvinTable)-1]
		return e.r, e.g, e.b
	}

	pos := (kelvin - kelvinTableMin) / kelvinTableStep
	i := int(pos)
	t := pos - float64(i)
	lo, hi := kelvinTable[i], kelvinTable[i+1]
	return lo.r + (hi.r-lo.r)*t,
		lo.g + (hi.g-lo.g)*t,
		lo.b + (hi.b-lo.b)*t
}
