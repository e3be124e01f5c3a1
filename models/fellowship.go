package models

import "time"

type Fellowship struct {
	Fellowship_ID int       `json:"fellowshipId" goqu:"skipinsert"`
	Name          string    `json:"name"`
	Created_At    time.Time `json:"createdAt" goqu:"skipinsert"`
}

type FellowshipCreate struct {
	Name string `json:"name"`
}
