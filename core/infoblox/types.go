package infoblox

import "time"

// RecordObject mirrors the dns/record resource of the Universal DDI API,
// restricted to the fields the sync requests.
type RecordObject struct {
	ID               string    `json:"id"`
	NameInZone       string    `json:"name_in_zone"`
	AbsoluteZoneName string    `json:"absolute_zone_name"`
	Type             string    `json:"type"`
	RData            RData     `json:"rdata"`
	Comment          string    `json:"comment"`
	View             string    `json:"view"`
	ViewName         string    `json:"view_name"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// RData carries the record data of an A record.
type RData struct {
	Address string `json:"address"`
}

// ViewObject mirrors the dns/view resource, restricted to id and name.
type ViewObject struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CreateARecordRequest describes one A record to create. View is the view
// name; the client resolves it to the object ID the API wants.
type CreateARecordRequest struct {
	View         string
	AbsoluteName string
	Address      string
	Comment      string
}

type recordListResponse struct {
	Results []RecordObject `json:"results"`
}

type viewListResponse struct {
	Results []ViewObject `json:"results"`
}

type createRecordBody struct {
	Type             string `json:"type"`
	RData            RData  `json:"rdata"`
	Comment          string `json:"comment"`
	AbsoluteNameSpec string `json:"absolute_name_spec"`
	View             string `json:"view"`
}
