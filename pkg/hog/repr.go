package hog

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var binningIdent = map[Binning]string{
	Unsigned: "hog.Unsigned",
	Signed:   "hog.Signed",
}

var magnitudeIdent = map[Magnitude]string{
	Identity: "hog.Identity",
	Square:   "hog.Square",
	Sqrt:     "hog.Sqrt",
}

var blockNormIdent = map[BlockNorm]string{
	L1:     "hog.L1",
	L1Sqrt: "hog.L1Sqrt",
	L1Hys:  "hog.L1Hys",
	L2:     "hog.L2",
	L2Hys:  "hog.L2Hys",
}

// String renders the configuration as the constructor call that rebuilds an
// equivalent, un-computed descriptor. Parse is its inverse.
func (d *Descriptor) String() string {
	s := &d.cfg
	args := []string{
		fmt.Sprintf("hog.WithNumBins(%d)", s.numBins),
		fmt.Sprintf("hog.WithCellSize(%d, %d)", s.cellY, s.cellX),
		fmt.Sprintf("hog.WithBlockSize(%d, %d)", s.blockY, s.blockX),
		fmt.Sprintf("hog.WithBlockStride(%d, %d)", s.strideY, s.strideX),
		fmt.Sprintf("hog.WithBinning(%s)", binningIdent[s.binning]),
		fmt.Sprintf("hog.WithMagnitude(%s)", magnitudeIdent[s.magnitude]),
		fmt.Sprintf("hog.WithBlockNorm(%s)", blockNormIdent[s.blockNorm]),
	}
	if s.hasClip {
		args = append(args, fmt.Sprintf("hog.WithClipNorm(%s)", formatFloat(s.clipNorm)))
	}
	args = append(args, fmt.Sprintf("hog.WithEpsilon(%s)", formatFloat(s.epsilon)))
	return "hog.New(" + strings.Join(args, ", ") + ")"
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

var reprCall = regexp.MustCompile(`hog\.With([A-Za-z]+)\(([^()]*)\)`)

// Parse reconstructs a descriptor from its String form. Unknown option names
// and malformed argument kinds are type errors; the resulting configuration
// is validated exactly as in New.
func Parse(text string) (*Descriptor, error) {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "hog.New(") || !strings.HasSuffix(trimmed, ")") {
		return nil, fmt.Errorf("hog: cannot parse %q: %w", text, ErrValue)
	}

	var opts []Option
	for _, m := range reprCall.FindAllStringSubmatch(trimmed, -1) {
		name, rawArgs := m[1], m[2]
		args := splitArgs(rawArgs)
		opt, err := parseOption(name, args)
		if err != nil {
			return nil, err
		}
		opts = append(opts, opt)
	}
	return New(opts...)
}

func splitArgs(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func parseOption(name string, args []string) (Option, error) {
	switch name {
	case "NumBins":
		n, err := parseIntArgs(name, args, 1)
		if err != nil {
			return nil, err
		}
		return WithNumBins(n[0]), nil
	case "CellSize":
		n, err := parseIntArgs(name, args, 2)
		if err != nil {
			return nil, err
		}
		return WithCellSize(n[0], n[1]), nil
	case "BlockSize":
		n, err := parseIntArgs(name, args, 2)
		if err != nil {
			return nil, err
		}
		return WithBlockSize(n[0], n[1]), nil
	case "BlockStride":
		n, err := parseIntArgs(name, args, 2)
		if err != nil {
			return nil, err
		}
		return WithBlockStride(n[0], n[1]), nil
	case "Binning":
		v, err := lookupIdent(name, args, binningIdent)
		if err != nil {
			return nil, err
		}
		return WithBinning(v), nil
	case "Magnitude":
		v, err := lookupIdent(name, args, magnitudeIdent)
		if err != nil {
			return nil, err
		}
		return WithMagnitude(v), nil
	case "BlockNorm":
		v, err := lookupIdent(name, args, blockNormIdent)
		if err != nil {
			return nil, err
		}
		return WithBlockNorm(v), nil
	case "ClipNorm":
		v, err := parseFloatArg(name, args)
		if err != nil {
			return nil, err
		}
		return WithClipNorm(v), nil
	case "Epsilon":
		v, err := parseFloatArg(name, args)
		if err != nil {
			return nil, err
		}
		return WithEpsilon(v), nil
	default:
		return nil, fmt.Errorf("hog: unknown option With%s: %w", name, ErrType)
	}
}

func parseIntArgs(name string, args []string, want int) ([]int, error) {
	if len(args) != want {
		return nil, fmt.Errorf("hog: With%s takes %d arguments, got %d: %w", name, want, len(args), ErrType)
	}
	out := make([]int, len(args))
	for i, a := range args {
		n, err := strconv.Atoi(a)
		if err != nil {
			return nil, fmt.Errorf("hog: With%s argument %q is not an integer: %w", name, a, ErrType)
		}
		out[i] = n
	}
	return out, nil
}

func parseFloatArg(name string, args []string) (float64, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("hog: With%s takes 1 argument, got %d: %w", name, len(args), ErrType)
	}
	v, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return 0, fmt.Errorf("hog: With%s argument %q is not a number: %w", name, args[0], ErrType)
	}
	return v, nil
}

func lookupIdent[E comparable](name string, args []string, idents map[E]string) (E, error) {
	var zero E
	if len(args) != 1 {
		return zero, fmt.Errorf("hog: With%s takes 1 argument, got %d: %w", name, len(args), ErrType)
	}
	for v, ident := range idents {
		if ident == args[0] {
			return v, nil
		}
	}
	return zero, fmt.Errorf("hog: With%s: unknown value %q: %w", name, args[0], ErrType)
}
