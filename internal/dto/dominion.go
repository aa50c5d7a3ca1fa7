package dto

import "time"

// DominionWire holds the fields shared by towns, districts and structures.
type DominionWire struct {
	Id          int64         `json:"Id"`
	Name        string        `json:"Name"`
	Description string        `json:"Description"`
	AllowEntry  bool          `json:"AllowEntry"`
	WgRegionId  string        `json:"WgRegionId"`
	Created     Timestamp     `json:"Created"`
	Location    *LocationWire `json:"Location"`
}

// DominionView is the view shape of DominionWire.
type DominionView struct {
	ID          int64         `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	AllowEntry  bool          `json:"allowEntry"`
	WgRegionId  string        `json:"wgRegionId"`
	Created     *time.Time    `json:"created"`
	Location    *LocationView `json:"location"`
}

// DominionCreate is the create payload shared by dominion subtypes.
// LocationCreateDTO is only sent for locations that do not exist yet.
type DominionCreate struct {
	Id                int64           `json:"Id"`
	Name              string          `json:"Name"`
	AllowEntry        bool            `json:"AllowEntry"`
	Created           *time.Time      `json:"Created,omitempty"`
	Description       string          `json:"Description"`
	WgRegionId        string          `json:"WgRegionId"`
	LocationId        *int64          `json:"LocationId,omitempty"`
	LocationCreateDTO *LocationCreate `json:"LocationCreateDTO,omitempty"`
}

func DominionFromWire(w DominionWire) DominionView {
	return DominionView{
		ID:          w.Id,
		Name:        w.Name,
		Description: w.Description,
		AllowEntry:  w.AllowEntry,
		WgRegionId:  w.WgRegionId,
		Created:     w.Created.Ptr(),
		Location:    LocationFromWire(w.Location),
	}
}

func DominionToWire(v DominionView) DominionWire {
	return DominionWire{
		Id:          v.ID,
		Name:        v.Name,
		Description: v.Description,
		AllowEntry:  v.AllowEntry,
		WgRegionId:  v.WgRegionId,
		Created:     TimestampOf(v.Created),
		Location:    LocationToWire(v.Location),
	}
}

func DominionToCreate(v DominionView) DominionCreate {
	c := DominionCreate{
		Id:          v.ID,
		Name:        v.Name,
		AllowEntry:  v.AllowEntry,
		Created:     v.Created,
		Description: v.Description,
		WgRegionId:  v.WgRegionId,
	}
	if v.Location != nil {
		c.LocationId = refID(v.Location.ID)
		if isNew(v.Location.ID) {
			c.LocationCreateDTO = LocationToCreate(v.Location)
		}
	}
	return c
}

// isNew reports whether an id belongs to an entity created client-side and not yet persisted.
func isNew(id int64) bool {
	return id < 0
}

func refID(id int64) *int64 {
	return &id
}
