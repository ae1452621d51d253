package config

var Presets = map[string]*Config{
	"half": {
		Label:       "single polarizer at 45°, half transmission",
		Intensity:   1.0,
		Angles:      []float64{45},
		CurvePoints: DefaultCurvePoints,
	},
	"crossed": {
		Label:       "crossed pair, full extinction",
		Intensity:   1.0,
		Angles:      []float64{90},
		CurvePoints: DefaultCurvePoints,
	},
	"three-stage": {
		Label:       "crossed pair with a 45° stage in between",
		Intensity:   1.0,
		Angles:      []float64{45, 45},
		CurvePoints: DefaultCurvePoints,
	},
	"picket-fence": {
		Label:       "nine stages at 10°, near-lossless rotation",
		Intensity:   1.0,
		Angles:      []float64{10, 10, 10, 10, 10, 10, 10, 10, 10},
		CurvePoints: DefaultCurvePoints,
	},
	"bright": {
		Label:       "10 W/m² source through a 30° polarizer",
		Intensity:   10.0,
		Angles:      []float64{30},
		CurvePoints: DefaultCurvePoints,
	},
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
