package models

import "time"

type AdminProfile struct {
	Admin_Profile_ID int       `json:"adminProfileId" goqu:"skipinsert"`
	Username         string    `json:"username"`
	Password         string    `json:"-"`
	Email            string    `json:"email"`
	First_Name       string    `json:"firstName"`
	Last_Name        string    `json:"lastName"`
	Created_At       time.Time `json:"createdAt" goqu:"skipinsert"`
}

type AdminSignup struct {
	Username   string `json:"username" binding:"required"`
	Password   string `json:"password" binding:"required,min=6"`
	Email      string `json:"email" binding:"required,email"`
	First_Name string `json:"firstName"`
	Last_Name  string `json:"lastName"`
}

type Login struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}
