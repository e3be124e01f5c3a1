package models

import "time"

type PrayerCompletion struct {
	Prayer_Completion_ID int       `json:"prayerCompletionId" goqu:"skipinsert"`
	Prayer_Request_ID    int       `json:"prayerRequestId"`
	Team_Member_ID       int       `json:"teamMemberId"`
	Completed_At         time.Time `json:"completedAt"`
}

// CompletionSummary reports how many of the current roster have prayed
// over a request. Completed_Count never exceeds Total_Members as long as
// the roster only shrinks via RemoveTeamMember (which deletes the
// member's completions in the same transaction).
type CompletionSummary struct {
	Prayer_Request_ID int `json:"prayerRequestId"`
	Completed_Count   int `json:"completedCount"`
	Total_Members     int `json:"totalMembers"`
}
