package models

import "time"

type PrayerRequest struct {
	Prayer_Request_ID   int        `json:"prayerRequestId" goqu:"skipinsert"`
	Request_Number      string     `json:"requestNumber"`
	Name                string     `json:"name"`
	Mobile_Number       string     `json:"mobileNumber"`
	Prayer_Text         *string    `json:"prayerText"`
	Voice_Recording_URL *string    `json:"voiceRecordingUrl"`
	Image_URL           *string    `json:"imageUrl"`
	Document_URL        *string    `json:"documentUrl"`
	Status              string     `json:"status"`
	Created_At          time.Time  `json:"createdAt" goqu:"skipinsert"`
	Completed_At        *time.Time `json:"completedAt"`
}

type PrayerRequestCreate struct {
	Request_Number      string  `json:"requestNumber"`
	Name                string  `json:"name"`
	Mobile_Number       string  `json:"mobileNumber"`
	Prayer_Text         *string `json:"prayerText"`
	Voice_Recording_URL *string `json:"voiceRecordingUrl"`
	Image_URL           *string `json:"imageUrl"`
	Document_URL        *string `json:"documentUrl"`
	Status              string  `json:"status"`
}
