package models

import "time"

// Box represents a tracked IoT gateway device, identified by MAC address.
type Box struct {
	ID            int64     `json:"id"`
	MACAddress    string    `json:"mac_address"`
	IPAddress     *string   `json:"ip_address"`
	MainEquipment *string   `json:"main_equipment"`
	Location      *string   `json:"location"`
	Process       string    `json:"process"`
	Manager       *string   `json:"manager"`
	Note          *string   `json:"note"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// BoxCreate is the payload for registering a new box.
type BoxCreate struct {
	MACAddress    string  `json:"mac_address"`
	IPAddress     *string `json:"ip_address"`
	MainEquipment *string `json:"main_equipment"`
	Location      *string `json:"location"`
	Process       string  `json:"process"`
	Manager       *string `json:"manager"`
	Note          *string `json:"note"`
}

// BoxUpdate is the payload for a partial update. Each field carries its own
// presence flag so that "not in the payload" and "explicitly set to null"
// remain distinguishable after JSON decoding.
type BoxUpdate struct {
	MACAddress    OptString `json:"mac_address"`
	IPAddress     OptString `json:"ip_address"`
	MainEquipment OptString `json:"main_equipment"`
	Location      OptString `json:"location"`
	Process       OptString `json:"process"`
	Manager       OptString `json:"manager"`
	Note          OptString `json:"note"`
}

// HasChanges reports whether any field is present in the payload.
func (u BoxUpdate) HasChanges() bool {
	return u.MACAddress.Set || u.IPAddress.Set || u.MainEquipment.Set ||
		u.Location.Set || u.Process.Set || u.Manager.Set || u.Note.Set
}

// BoxPage is the envelope returned by paginated list queries.
type BoxPage struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int64 `json:"total_pages"`
	Items      []Box `json:"items"`
}
