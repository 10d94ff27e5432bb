package robot

import (
	"fmt"
	"strings"
)

// Manufacturer selects the controller dialect a program is written in.
type Manufacturer int

const (
	// ABB controllers run RAPID.
	ABB Manufacturer = iota
	// KUKA controllers run KRL.
	KUKA
)

// String returns the manufacturer name.
func (m Manufacturer) String() string {
	switch m {
	case ABB:
		return "ABB"
	case KUKA:
		return "KUKA"
	default:
		return fmt.Sprintf("Manufacturer(%d)", int(m))
	}
}

// ParseManufacturer parses a manufacturer name, ignoring case.
func ParseManufacturer(s string) (Manufacturer, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "ABB":
		return ABB, nil
	case "KUKA":
		return KUKA, nil
	default:
		return 0, fmt.Errorf("unknown manufacturer %q: must be ABB or KUKA", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (m Manufacturer) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Manufacturer) UnmarshalText(b []byte) error {
	v, err := ParseManufacturer(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}
