// Package config loads and validates a simulation run configuration.
//
// Two formats are supported. The classic format is a flat list of
// whitespace-separated "key value" pairs, one per line:
//
//	k0 1.0
//	k3 0.75
//	seed 42
//	...
//
// Files ending in ".toml" are instead decoded as TOML with the same
// key names. In both formats every key is required; a missing or
// malformed key aborts startup with an INVALID_CONFIG error.
package config

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/jmbeek/cdt3d/pkg/errors"
)

// Config holds every parameter of a simulation run.
type Config struct {
	// K0 is the inverse Newton coupling.
	K0 float64 `toml:"k0"`
	// K3 is the starting cosmological coupling; the driver tunes it
	// toward its pseudo-critical value.
	K3 float64 `toml:"k3"`
	// Genus of the spatial slices; only genus 0 (the 2-sphere) is
	// supported.
	Genus int `toml:"genus"`
	// TargetVolume is the volume the fixing term steers toward;
	// 0 disables volume fixing.
	TargetVolume int `toml:"targetvolume"`
	// Target2Volume is the spatial slice volume gating 2-d
	// measurements; 0 disables them.
	Target2Volume int `toml:"target2volume"`
	// VolFixSwitch selects the fixed quantity: 0 fixes the
	// (3,1)-count, 1 fixes the total tetrahedron count.
	VolFixSwitch int `toml:"volfixswitch"`
	// Epsilon is the volume-fixing strength.
	Epsilon float64 `toml:"epsilon"`
	// Seed for the single random stream of the run.
	Seed uint64 `toml:"seed"`
	// OutputDir receives the observable data files.
	OutputDir string `toml:"outputdir"`
	// FileID tags output file names.
	FileID string `toml:"fileid"`
	// ThermalSweeps and MeasureSweeps are the phase lengths.
	ThermalSweeps int `toml:"thermalsweeps"`
	MeasureSweeps int `toml:"measuresweeps"`
	// KSteps scales a sweep: each sweep attempts KSteps*1000 moves.
	KSteps int `toml:"ksteps"`
	// Strictness is the manifold strictness level (0-3).
	Strictness int `toml:"strictness"`
	// V1, V2, V3 weight the move families add/delete, flip,
	// shift/inverse-shift.
	V1 int `toml:"v1"`
	V2 int `toml:"v2"`
	V3 int `toml:"v3"`
	// InFile is the starting geometry; OutFile receives periodic
	// geometry exports.
	InFile  string `toml:"infile"`
	OutFile string `toml:"outfile"`
}

// requiredKeys lists every key that must appear in a config file.
var requiredKeys = []string{
	"k0", "k3", "genus", "targetvolume", "target2volume", "volfixswitch",
	"epsilon", "seed", "outputdir", "fileid", "thermalsweeps",
	"measuresweeps", "ksteps", "strictness", "v1", "v2", "v3",
	"infile", "outfile",
}

// Load reads and validates the config file at path. Files ending in
// ".toml" are parsed as TOML, everything else as whitespace-separated
// key-value pairs.
func Load(path string) (*Config, error) {
	if strings.HasSuffix(path, ".toml") {
		return loadTOML(path)
	}
	return loadPlain(path)
}

func loadTOML(path string) (*Config, error) {
	var cfg Config
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open config %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}
	for _, key := range requiredKeys {
		if !md.IsDefined(key) {
			return nil, errors.New(errors.ErrCodeInvalidConfig, "config %s is missing key %q", path, key)
		}
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func loadPlain(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open config %s", path)
	}
	defer f.Close()

	values := make(map[string]string)
	sc := bufio.NewScanner(f)
	line := 0
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		if len(fields) != 2 {
			return nil, errors.New(errors.ErrCodeInvalidConfig, "config %s line %d: want \"key value\", got %q", path, line, sc.Text())
		}
		values[fields[0]] = fields[1]
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}

	var cfg Config
	parse := func(key string, set func(string) error) error {
		raw, ok := values[key]
		if !ok {
			return errors.New(errors.ErrCodeInvalidConfig, "config %s is missing key %q", path, key)
		}
		if err := set(raw); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "config %s key %q", path, key)
		}
		return nil
	}
	setFloat := func(dst *float64) func(string) error {
		return func(raw string) error {
			v, err := strconv.ParseFloat(raw, 64)
			*dst = v
			return err
		}
	}
	setInt := func(dst *int) func(string) error {
		return func(raw string) error {
			v, err := strconv.Atoi(raw)
			*dst = v
			return err
		}
	}
	setUint := func(dst *uint64) func(string) error {
		return func(raw string) error {
			v, err := strconv.ParseUint(raw, 10, 64)
			*dst = v
			return err
		}
	}
	setString := func(dst *string) func(string) error {
		return func(raw string) error {
			*dst = raw
			return nil
		}
	}

	setters := map[string]func(string) error{
		"k0":            setFloat(&cfg.K0),
		"k3":            setFloat(&cfg.K3),
		"genus":         setInt(&cfg.Genus),
		"targetvolume":  setInt(&cfg.TargetVolume),
		"target2volume": setInt(&cfg.Target2Volume),
		"volfixswitch":  setInt(&cfg.VolFixSwitch),
		"epsilon":       setFloat(&cfg.Epsilon),
		"seed":          setUint(&cfg.Seed),
		"outputdir":     setString(&cfg.OutputDir),
		"fileid":        setString(&cfg.FileID),
		"thermalsweeps": setInt(&cfg.ThermalSweeps),
		"measuresweeps": setInt(&cfg.MeasureSweeps),
		"ksteps":        setInt(&cfg.KSteps),
		"strictness":    setInt(&cfg.Strictness),
		"v1":            setInt(&cfg.V1),
		"v2":            setInt(&cfg.V2),
		"v3":            setInt(&cfg.V3),
		"infile":        setString(&cfg.InFile),
		"outfile":       setString(&cfg.OutFile),
	}
	for _, key := range requiredKeys {
		if err := parse(key, setters[key]); err != nil {
			return nil, err
		}
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	fail := func(format string, args ...any) error {
		return errors.New(errors.ErrCodeInvalidConfig, format, args...)
	}
	if c.Genus != 0 {
		return fail("genus %d is unsupported, only genus 0 (spherical slices) is implemented", c.Genus)
	}
	if c.V1 < 0 || c.V2 < 0 || c.V3 < 0 || c.V1+c.V2+c.V3 == 0 {
		return fail("move frequencies v1=%d v2=%d v3=%d must be non-negative with a positive sum", c.V1, c.V2, c.V3)
	}
	if c.Strictness < 0 || c.Strictness > 3 {
		return fail("strictness %d outside [0,3]", c.Strictness)
	}
	if c.VolFixSwitch != 0 && c.VolFixSwitch != 1 {
		return fail("volfixswitch %d must be 0 or 1", c.VolFixSwitch)
	}
	if c.KSteps <= 0 {
		return fail("ksteps %d must be positive", c.KSteps)
	}
	if c.TargetVolume < 0 || c.Target2Volume < 0 {
		return fail("target volumes must be non-negative")
	}
	if c.Epsilon < 0 {
		return fail("epsilon %g must be non-negative", c.Epsilon)
	}
	if c.InFile == "" {
		return fail("infile must name a starting geometry")
	}
	return nil
}

// MoveFreqs returns the three move-family weights as an array.
func (c *Config) MoveFreqs() [3]int { return [3]int{c.V1, c.V2, c.V3} }

// String renders the physically relevant parameters on one line.
func (c *Config) String() string {
	return fmt.Sprintf("k0=%g k3=%g epsilon=%g target=%d target2d=%d strictness=%d seed=%d",
		c.K0, c.K3, c.Epsilon, c.TargetVolume, c.Target2Volume, c.Strictness, c.Seed)
}
