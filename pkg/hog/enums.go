package hog

import "fmt"

// Binning selects the angular range orientations are folded into.
type Binning uint8

const (
	// Unsigned folds orientations into [0, pi).
	Unsigned Binning = iota
	// Signed keeps the full [0, 2*pi) range.
	Signed
)

func (b Binning) String() string {
	switch b {
	case Unsigned:
		return "unsigned"
	case Signed:
		return "signed"
	default:
		return fmt.Sprintf("binning(%d)", uint8(b))
	}
}

func (b Binning) valid() bool {
	return b == Unsigned || b == Signed
}

// ParseBinning maps the textual form back to the enum. Unknown names are a
// type error.
func ParseBinning(s string) (Binning, error) {
	switch s {
	case "unsigned":
		return Unsigned, nil
	case "signed":
		return Signed, nil
	default:
		return 0, fmt.Errorf("hog: unknown binning %q: %w", s, ErrType)
	}
}

// Magnitude selects the weight applied to the gradient magnitude before
// voting.
type Magnitude uint8

const (
	// Identity votes with the magnitude itself.
	Identity Magnitude = iota
	// Square votes with the squared magnitude.
	Square
	// Sqrt votes with the square root of the magnitude.
	Sqrt
)

func (m Magnitude) String() string {
	switch m {
	case Identity:
		return "identity"
	case Square:
		return "square"
	case Sqrt:
		return "sqrt"
	default:
		return fmt.Sprintf("magnitude(%d)", uint8(m))
	}
}

func (m Magnitude) valid() bool {
	return m == Identity || m == Square || m == Sqrt
}

// ParseMagnitude maps the textual form back to the enum. Unknown names are a
// type error.
func ParseMagnitude(s string) (Magnitude, error) {
	switch s {
	case "identity":
		return Identity, nil
	case "square":
		return Square, nil
	case "sqrt":
		return Sqrt, nil
	default:
		return 0, fmt.Errorf("hog: unknown magnitude %q: %w", s, ErrType)
	}
}

// BlockNorm selects the block normalization scheme.
type BlockNorm uint8

const (
	// L1 divides by the L1 norm.
	L1 BlockNorm = iota
	// L1Sqrt takes the square root of the L1-normalized vector.
	L1Sqrt
	// L1Hys L1-normalizes, clips, and renormalizes.
	L1Hys
	// L2 divides by the L2 norm.
	L2
	// L2Hys L2-normalizes, clips, and renormalizes.
	L2Hys
)

func (n BlockNorm) String() string {
	switch n {
	case L1:
		return "l1"
	case L1Sqrt:
		return "l1-sqrt"
	case L1Hys:
		return "l1-hys"
	case L2:
		return "l2"
	case L2Hys:
		return "l2-hys"
	default:
		return fmt.Sprintf("blocknorm(%d)", uint8(n))
	}
}

func (n BlockNorm) valid() bool {
	switch n {
	case L1, L1Sqrt, L1Hys, L2, L2Hys:
		return true
	}
	return false
}

// hysteresis reports whether the norm clips and renormalizes.
func (n BlockNorm) hysteresis() bool {
	return n == L1Hys || n == L2Hys
}

// ParseBlockNorm maps the textual form back to the enum. Unknown names are a
// type error.
func ParseBlockNorm(s string) (BlockNorm, error) {
	switch s {
	case "l1":
		return L1, nil
	case "l1-sqrt":
		return L1Sqrt, nil
	case "l1-hys":
		return L1Hys, nil
	case "l2":
		return L2, nil
	case "l2-hys":
		return L2Hys, nil
	default:
		return 0, fmt.Errorf("hog: unknown block norm %q: %w", s, ErrType)
	}
}
