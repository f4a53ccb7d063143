package hcdecode

import (
	"fmt"
	"strconv"
)

// HyperCardVersionState classifies the release maturity packed into bits
// 8-15 of a HyperCardVersion.
type HyperCardVersionState int

const (
	VersionFinal HyperCardVersionState = iota
	VersionBeta
	VersionAlpha
	VersionDevelopment
	VersionUnknownState
)

func (s HyperCardVersionState) String() string {
	switch s {
	case VersionFinal:
		return "final"
	case VersionBeta:
		return "beta"
	case VersionAlpha:
		return "alpha"
	case VersionDevelopment:
		return "development"
	default:
		return "unknown"
	}
}

// HyperCardVersionStatus classifies bits 0-7: Release, or Development(n).
type HyperCardVersionStatus struct {
	Development bool
	N           uint32
}

func (s HyperCardVersionStatus) String() string {
	if !s.Development {
		return "release"
	}
	return fmt.Sprintf("development %d", s.N)
}

// HyperCardVersion is a 32-bit packed value: bits 24-31 major, bits 16-23
// minor (scaled /100), bits 8-15 state, bits 0-7 status.
//
// Each byte is read as two hex digits and those digits are parsed as a
// decimal number, the packed-BCD reading the original HyperCard tools
// used.
type HyperCardVersion uint32

// bcdByte extracts byte shift*8 from v, formats it as two hex digits, and
// parses those digits back as a decimal integer.
func bcdByte(v uint32, shift uint) int {
	b := (v >> shift) & 0xFF
	n, err := strconv.ParseInt(fmt.Sprintf("%x", b), 10, 32)
	if err != nil {
		// Not all hex digits are valid decimal digits (e.g. 0xAB); in that
		// case the original tooling's behavior is undefined. We fall back
		// to the raw byte value, which keeps the decoder total.
		return int(b)
	}
	return int(n)
}

// Major returns the major version number (bits 24-31).
func (v HyperCardVersion) Major() int { return bcdByte(uint32(v), 24) }

// Minor returns the minor version number (bits 16-23), scaled by /100.
func (v HyperCardVersion) Minor() float64 { return float64(bcdByte(uint32(v), 16)) / 100.0 }

// State returns the release-maturity classification (bits 8-15).
func (v HyperCardVersion) State() HyperCardVersionState {
	// bcdByte has already turned a raw state byte of 0x80 into the
	// decimal integer 80, so the match is against 80/60/40/20, not
	// 0x80/0x60/0x40/0x20.
	switch bcdByte(uint32(v), 8) {
	case 80:
		return VersionFinal
	case 60:
		return VersionBeta
	case 40:
		return VersionAlpha
	case 20:
		return VersionDevelopment
	default:
		return VersionUnknownState
	}
}

// Status returns the development/release classification (bits 0-7).
func (v HyperCardVersion) Status() HyperCardVersionStatus {
	n := bcdByte(uint32(v), 0)
	if n == 0 {
		return HyperCardVersionStatus{}
	}
	return HyperCardVersionStatus{Development: true, N: uint32(n)}
}

func (v HyperCardVersion) String() string {
	return fmt.Sprintf("version %.2f %s %s", float64(v.Major())+v.Minor(), v.State(), v.Status())
}
