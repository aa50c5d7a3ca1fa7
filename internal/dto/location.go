// Package dto maps between the game API's wire shape (PascalCase) and the view shape
// (camelCase) consumed by tables, forms and detail views.
//
// Each entity's wire contract is specified on its own; casing and nesting differ between
// endpoints and are not normalized here.
package dto

// LocationWire is a location as delivered by the API.
type LocationWire struct {
	Id        int64   `json:"Id"`
	Name      string  `json:"Name,omitempty"`
	X         float64 `json:"X"`
	Y         float64 `json:"Y"`
	Z         float64 `json:"Z"`
	Yaw       float64 `json:"Yaw"`
	Pitch     float64 `json:"Pitch"`
	WorldName string  `json:"WorldName"`
}

// LocationView is the view shape of a location.
type LocationView struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name,omitempty"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Z         float64 `json:"z"`
	Yaw       float64 `json:"yaw"`
	Pitch     float64 `json:"pitch"`
	WorldName string  `json:"worldName"`
}

// LocationCreate is the create payload for a location.
type LocationCreate = LocationWire

func LocationFromWire(w *LocationWire) *LocationView {
	if w == nil {
		return nil
	}
	return &LocationView{
		ID:        w.Id,
		Name:      w.Name,
		X:         w.X,
		Y:         w.Y,
		Z:         w.Z,
		Yaw:       w.Yaw,
		Pitch:     w.Pitch,
		WorldName: w.WorldName,
	}
}

func LocationToWire(v *LocationView) *LocationWire {
	if v == nil {
		return nil
	}
	return &LocationWire{
		Id:        v.ID,
		Name:      v.Name,
		X:         v.X,
		Y:         v.Y,
		Z:         v.Z,
		Yaw:       v.Yaw,
		Pitch:     v.Pitch,
		WorldName: v.WorldName,
	}
}

func LocationToCreate(v *LocationView) *LocationCreate {
	c := LocationToWire(v)
	if c != nil && c.Name == "" {
		c.Name = "Location"
	}
	return c
}
