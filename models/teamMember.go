package models

import "time"

type TeamMember struct {
	Team_Member_ID int       `json:"teamMemberId" goqu:"skipinsert"`
	User_ID        *int      `json:"userId"`
	Name           string    `json:"name"`
	Email          *string   `json:"email"`
	Fellowship_ID  int       `json:"fellowshipId"`
	Created_At     time.Time `json:"createdAt" goqu:"skipinsert"`
}

type TeamMemberCreate struct {
	Name  string  `json:"name"`
	Email *string `json:"email"`
}
