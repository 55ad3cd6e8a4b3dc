package domain

import "fmt"

// Immutable geographic coordinate (latitude, longitude) in decimal degrees.
type Coordinate struct {
	Lat float64
	Lon float64
}

// Validate checks the coordinate against the WGS84 value ranges.
func (c Coordinate) Validate() error {
	if c.Lat < -90 || c.Lat > 90 {
		return fmt.Errorf("validate coordinate: latitude %v out of range [-90, 90]", c.Lat)
	}
	if c.Lon < -180 || c.Lon > 180 {
		return fmt.Errorf("validate coordinate: longitude %v out of range [-180, 180]", c.Lon)
	}
	return nil
}

// Return the coordinate as "lon,lat" for provider route params.
func (c Coordinate) LonLat() string { return fmt.Sprintf("%v,%v", c.Lon, c.Lat) }
