package controllers

import (
	"fmt"
	"log"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/PrayerArmy/initializers"
	"github.com/PrayerArmy/models"
	"github.com/PrayerArmy/services"
	"github.com/doug-martin/goqu/v9"
)

// SubmitPrayerRequest handles the public submission form. It accepts a
// multipart form with name, mobile_number, an optional prayer_text and
// up to three optional attachments (voice_recording, image, document).
// Either the record plus every intended attachment persists, or nothing
// does: attachments already uploaded are deleted again when a later
// step fails.
func SubmitPrayerRequest(c *gin.Context) {
	name := strings.TrimSpace(c.PostForm("name"))
	mobileNumber := strings.TrimSpace(c.PostForm("mobile_number"))
	prayerText := strings.TrimSpace(c.PostForm("prayer_text"))

	if name == "" || mobileNumber == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name and mobile number are required"})
		return
	}

	voice := optionalFormFile(c, "voice_recording")
	image := optionalFormFile(c, "image")
	document := optionalFormFile(c, "document")

	storage := services.GetStorageService()
	if storage == nil && (voice != nil || image != nil || document != nil) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Attachment storage is unavailable right now. Please try again later."})
		return
	}

	// One request number per submission; it prefixes every attachment
	// name so the uploads can be correlated with the record.
	var requestNumber string
	found, err := initializers.DB.ScanVal(&requestNumber, "SELECT generate_request_number()")
	if err != nil || !found {
		log.Println(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit prayer request. Please try again."})
		return
	}

	type storedObject struct {
		bucket string
		object string
	}
	var uploaded []storedObject

	discardUploads := func() {
		for _, obj := range uploaded {
			if err := storage.Delete(c.Request.Context(), obj.bucket, obj.object); err != nil {
				log.Println(err)
			}
		}
	}

	uploadAttachment := func(file *multipart.FileHeader, bucket string, objectName string) (*string, error) {
		src, err := file.Open()
		if err != nil {
			return nil, err
		}
		defer src.Close()

		publicURL, err := storage.Upload(c.Request.Context(), bucket, objectName, src, file.Header.Get("Content-Type"))
		if err != nil {
			return nil, err
		}

		uploaded = append(uploaded, storedObject{bucket: bucket, object: objectName})
		return &publicURL, nil
	}

	var voiceURL, imageURL, documentURL *string

	if voice != nil {
		objectName := fmt.Sprintf("%s-%d%s", requestNumber, time.Now().UnixMilli(), filepath.Ext(voice.Filename))
		voiceURL, err = uploadAttachment(voice, storage.VoiceBucket, objectName)
		if err != nil {
			log.Println(err)
			discardUploads()
			c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to upload voice recording. Your request was not saved, please try again."})
			return
		}
	}

	if image != nil {
		objectName := fmt.Sprintf("%s-%d-%s", requestNumber, time.Now().UnixMilli(), filepath.Base(image.Filename))
		imageURL, err = uploadAttachment(image, storage.ImageBucket, objectName)
		if err != nil {
			log.Println(err)
			discardUploads()
			c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to upload image. Your request was not saved, please try again."})
			return
		}
	}

	if document != nil {
		objectName := fmt.Sprintf("%s-%d-%s", requestNumber, time.Now().UnixMilli(), filepath.Base(document.Filename))
		documentURL, err = uploadAttachment(document, storage.DocumentBucket, objectName)
		if err != nil {
			log.Println(err)
			discardUploads()
			c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to upload document. Your request was not saved, please try again."})
			return
		}
	}

	newRequest := models.PrayerRequestCreate{
		Request_Number:      requestNumber,
		Name:                name,
		Mobile_Number:       mobileNumber,
		Prayer_Text:         optionalString(prayerText),
		Voice_Recording_URL: voiceURL,
		Image_URL:           imageURL,
		Document_URL:        documentURL,
		Status:              "pending",
	}

	insert := initializers.DB.Insert("prayer_requests").Rows(newRequest).Executor()
	if _, err := insert.Exec(); err != nil {
		log.Println(err)
		discardUploads()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit prayer request. Please try again."})
		return
	}

	if services.GetEmailService() != nil {
		go notifyAdminsOfNewRequest(requestNumber, name)
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":       "Your prayer request is submitted.",
		"requestNumber": requestNumber,
	})
}

func optionalFormFile(c *gin.Context, field string) *multipart.FileHeader {
	file, err := c.FormFile(field)
	if err != nil {
		return nil
	}
	return file
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func notifyAdminsOfNewRequest(requestNumber string, requesterName string) {
	var addresses []string
	if err := initializers.DB.From("admin_profile").Select("email").ScanVals(&addresses); err != nil {
		log.Printf("Failed to load admin addresses for new request alert: %v", err)
		return
	}

	if len(addresses) == 0 {
		return
	}

	if err := services.GetEmailService().SendNewRequestAlert(addresses, requestNumber, requesterName); err != nil {
		log.Println(err)
	}
}

// GetPrayerRequests lists requests for the dashboard, newest first,
// optionally filtered by ?status=pending|completed.
func GetPrayerRequests(c *gin.Context) {
	query := initializers.DB.From("prayer_requests").Select("*").Order(goqu.I("created_at").Desc())

	if status := c.Query("status"); status != "" {
		if status != "pending" && status != "completed" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Status must be 'pending' or 'completed'"})
			return
		}
		query = query.Where(goqu.C("status").Eq(status))
	}

	var requests []models.PrayerRequest
	if err := query.ScanStructs(&requests); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch prayer requests"})
		return
	}

	if requests == nil {
		requests = []models.PrayerRequest{}
	}

	c.JSON(http.StatusOK, requests)
}

func GetPrayerRequest(c *gin.Context) {
	requestID, err := strconv.Atoi(c.Param("prayer_request_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid prayer request ID"})
		return
	}

	var request models.PrayerRequest
	found, err := initializers.DB.From("prayer_requests").
		Where(goqu.C("prayer_request_id").Eq(requestID)).
		ScanStruct(&request)

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch prayer request"})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Prayer request not found"})
		return
	}

	c.JSON(http.StatusOK, request)
}

// MarkPrayerRequestCompleted transitions a request from pending to
// completed. The transition happens at most once; the status filter in
// the update keeps it monotonic even when two admins race.
func MarkPrayerRequestCompleted(c *gin.Context) {
	requestID, err := strconv.Atoi(c.Param("prayer_request_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid prayer request ID"})
		return
	}

	update := initializers.DB.Update("prayer_requests").
		Set(goqu.Record{
			"status":       "completed",
			"completed_at": goqu.L("NOW()"),
		}).
		Where(
			goqu.C("prayer_request_id").Eq(requestID),
			goqu.C("status").Eq("pending"),
		)

	result, err := update.Executor().Exec()
	if err != nil {
		log.Println(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to mark prayer request as completed"})
		return
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		count, err := initializers.DB.From("prayer_requests").
			Where(goqu.C("prayer_request_id").Eq(requestID)).
			Count()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to mark prayer request as completed"})
			return
		}
		if count == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Prayer request not found"})
			return
		}
		c.JSON(http.StatusConflict, gin.H{"error": "Prayer request is already completed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Prayer request marked as completed"})
}

// DeletePrayerRequest removes a request together with its completions
// so no completion row ever points at a missing request.
func DeletePrayerRequest(c *gin.Context) {
	requestID, err := strconv.Atoi(c.Param("prayer_request_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid prayer request ID"})
		return
	}

	tx, err := initializers.DB.Begin()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete prayer request"})
		return
	}

	_, err = tx.Delete("prayer_completions").
		Where(goqu.C("prayer_request_id").Eq(requestID)).
		Executor().Exec()
	if err != nil {
		tx.Rollback()
		log.Println(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete prayer request"})
		return
	}

	result, err := tx.Delete("prayer_requests").
		Where(goqu.C("prayer_request_id").Eq(requestID)).
		Executor().Exec()
	if err != nil {
		tx.Rollback()
		log.Println(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete prayer request"})
		return
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		tx.Rollback()
		c.JSON(http.StatusNotFound, gin.H{"error": "Prayer request not found"})
		return
	}

	if err := tx.Commit(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete prayer request"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Prayer request deleted successfully"})
}
