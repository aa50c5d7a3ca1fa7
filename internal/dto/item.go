package dto

import "strconv"

// ItemWire is an item as delivered by the Items controller.
type ItemWire struct {
	Id           int64   `json:"Id"`
	Name         string  `json:"Name"`
	DisplayName  string  `json:"DisplayName,omitempty"`
	BasePrice    float64 `json:"BasePrice"`
	BaseItemId   *int64  `json:"BaseItemId,omitempty"`
	CategoryId   int64   `json:"CategoryId"`
	CategoryName string  `json:"CategoryName,omitempty"`
	GradeId      int64   `json:"GradeId"`
	ItemtypeId   int64   `json:"ItemtypeId"`
	ItemtypeName string  `json:"ItemtypeName,omitempty"`
	BlockData    string  `json:"BlockData,omitempty"`
	Data         int64   `json:"Data"`
}

// ItemView is the view shape of an item. CategoryId is kept as the select option value.
type ItemView struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	DisplayName  string  `json:"displayName"`
	BasePrice    float64 `json:"basePrice"`
	CategoryId   string  `json:"categoryId"`
	CategoryName string  `json:"categoryName,omitempty"`
	ItemtypeName string  `json:"itemtypeName,omitempty"`
	BaseItemId   *int64  `json:"baseItemId,omitempty"`
	GradeId      int64   `json:"gradeId"`
	ItemtypeId   int64   `json:"itemtypeId"`
	BlockData    string  `json:"blockData,omitempty"`
	Data         int64   `json:"data"`
}

// ItemCreate is the create payload for an item.
type ItemCreate = ItemWire

func ItemFromWire(w *ItemWire) *ItemView {
	if w == nil {
		return nil
	}
	return &ItemView{
		ID:           w.Id,
		Name:         w.Name,
		DisplayName:  w.DisplayName,
		BasePrice:    w.BasePrice,
		CategoryId:   strconv.FormatInt(w.CategoryId, 10),
		CategoryName: w.CategoryName,
		ItemtypeName: w.ItemtypeName,
		BaseItemId:   w.BaseItemId,
		GradeId:      w.GradeId,
		ItemtypeId:   w.ItemtypeId,
		BlockData:    w.BlockData,
		Data:         w.Data,
	}
}

func ItemToWire(v *ItemView) *ItemWire {
	if v == nil {
		return nil
	}
	category, _ := strconv.ParseInt(v.CategoryId, 10, 64)
	return &ItemWire{
		Id:           v.ID,
		Name:         v.Name,
		DisplayName:  v.DisplayName,
		BasePrice:    v.BasePrice,
		BaseItemId:   v.BaseItemId,
		CategoryId:   category,
		CategoryName: v.CategoryName,
		GradeId:      v.GradeId,
		ItemtypeId:   v.ItemtypeId,
		ItemtypeName: v.ItemtypeName,
		BlockData:    v.BlockData,
		Data:         v.Data,
	}
}

func ItemToCreate(v *ItemView) *ItemCreate {
	return ItemToWire(v)
}
