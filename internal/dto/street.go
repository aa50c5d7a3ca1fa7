package dto

// StreetWire is a street as delivered by the Streets controller.
type StreetWire struct {
	Id        int64          `json:"Id"`
	Name      string         `json:"Name"`
	Districts []DistrictWire `json:"Districts"`
}

// StreetView is the view shape of a street.
type StreetView struct {
	ID        int64          `json:"id"`
	Name      string         `json:"name"`
	Districts []DistrictView `json:"districts"`
}

// StreetCreate is the create payload for a street. Districts carries only the
// districts that do not exist yet.
type StreetCreate struct {
	Id          int64            `json:"Id"`
	Name        string           `json:"Name"`
	DistrictIds []int64          `json:"DistrictIds,omitempty"`
	Districts   []DistrictCreate `json:"Districts,omitempty"`
}

func StreetFromWire(w *StreetWire) *StreetView {
	if w == nil {
		return nil
	}
	v := &StreetView{ID: w.Id, Name: w.Name, Districts: make([]DistrictView, 0, len(w.Districts))}
	for i := range w.Districts {
		v.Districts = append(v.Districts, *DistrictFromWire(&w.Districts[i]))
	}
	return v
}

func StreetToWire(v *StreetView) *StreetWire {
	if v == nil {
		return nil
	}
	w := &StreetWire{Id: v.ID, Name: v.Name}
	for i := range v.Districts {
		w.Districts = append(w.Districts, *DistrictToWire(&v.Districts[i]))
	}
	return w
}

func StreetToCreate(v *StreetView) *StreetCreate {
	if v == nil {
		return nil
	}
	c := &StreetCreate{Id: v.ID, Name: v.Name}
	for i := range v.Districts {
		d := &v.Districts[i]
		c.DistrictIds = append(c.DistrictIds, d.ID)
		if isNew(d.ID) {
			c.Districts = append(c.Districts, *DistrictToCreate(d))
		}
	}
	return c
}
