package plugin

import "fmt"

// Info contains oscillator unit metadata
type Info struct {
	ID       string // Unique identifier (e.g., "com.example.myosc")
	Name     string // Display name
	Version  string // Semantic version (e.g., "1.0.0")
	Vendor   string // Company/developer name
	Category string // Unit category (e.g., "Oscillator")
}

// Validate checks that the required fields are present.
func (i Info) Validate() error {
	switch {
	case i.ID == "":
		return fmt.Errorf("plugin: info has no ID")
	case i.Name == "":
		return fmt.Errorf("plugin: %s has no name", i.ID)
	}
	return nil
}

// String returns "Name Version (ID)".
func (i Info) String() string {
	return fmt.Sprintf("%s %s (%s)", i.Name, i.Version, i.ID)
}
