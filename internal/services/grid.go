package services

import "strings"

type GridCoordinate struct {
	X int
	Y int
}

// DefaultGrid is the city-center cell used for unknown places.
var DefaultGrid = GridCoordinate{X: 60, Y: 127}

var seoulDistrictGrid = map[string]GridCoordinate{
	"종로구":  {X: 60, Y: 127},
	"중구":   {X: 60, Y: 127},
	"용산구":  {X: 60, Y: 126},
	"성동구":  {X: 61, Y: 127},
	"광진구":  {X: 62, Y: 126},
	"동대문구": {X: 61, Y: 127},
	"중랑구":  {X: 62, Y: 128},
	"성북구":  {X: 61, Y: 128},
	"강북구":  {X: 61, Y: 129},
	"도봉구":  {X: 61, Y: 130},
	"노원구":  {X: 61, Y: 130},
	"은평구":  {X: 59, Y: 128},
	"서대문구": {X: 59, Y: 127},
	"마포구":  {X: 59, Y: 127},
	"양천구":  {X: 58, Y: 126},
	"강서구":  {X: 58, Y: 126},
	"구로구":  {X: 58, Y: 125},
	"금천구":  {X: 59, Y: 124},
	"영등포구": {X: 58, Y: 126},
	"동작구":  {X: 59, Y: 125},
	"관악구":  {X: 59, Y: 124},
	"서초구":  {X: 61, Y: 125},
	"강남구":  {X: 61, Y: 125},
	"송파구":  {X: 62, Y: 125},
	"강동구":  {X: 63, Y: 126},
}

// ResolveGrid maps a district name to its forecast grid cell. It never fails.
func ResolveGrid(place string) GridCoordinate {
	normalized := strings.ToLower(strings.TrimSpace(place))
	if normalized == "" {
		return DefaultGrid
	}
	if grid, ok := seoulDistrictGrid[normalized]; ok {
		return grid
	}
	return DefaultGrid
}
