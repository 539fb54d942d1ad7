package main

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"bitbucket.org/ksar/surveillance_backend/models"
	"bitbucket.org/ksar/surveillance_backend/utils"
	"github.com/gin-gonic/gin"
)

func documentIdParam(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid document id"})
		return 0, false
	}
	return id, true
}

func listDocumentsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		documents, err := models.GetAllDocuments(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, documents)
	}
}

func getDocumentHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := documentIdParam(c)
		if !ok {
			return
		}
		document, err := models.GetDocument(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, document.Info())
	}
}

// uploadDocumentHandler takes multipart form fields file, name, code,
// issue_date and valid_until_date.
func uploadDocumentHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, models.MaxDocumentSizeBytes+1<<20)

		var input models.NewDocument
		if err := c.ShouldBind(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
			return
		}
		if err := utils.ValidateStruct(&input); err != nil {
			respondError(c, err)
			return
		}

		fileHeader, err := c.FormFile("file")
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file is too large"})
				return
			}
			c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
			return
		}
		if fileHeader.Size > models.MaxDocumentSizeBytes {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{
				"error": fmt.Sprintf("file exceeds %dMB limit", models.MaxDocumentSizeBytes>>20),
			})
			return
		}
		file, err := fileHeader.Open()
		if err != nil {
			respondError(c, err)
			return
		}
		defer file.Close()
		content, err := io.ReadAll(file)
		if err != nil {
			respondError(c, err)
			return
		}

		document, err := models.UploadDocument(c.Request.Context(), &input, fileHeader.Filename, content)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, document.Info())
	}
}

func deleteDocumentHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := documentIdParam(c)
		if !ok {
			return
		}
		document, err := models.DeleteDocument(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, document.Info())
	}
}

// downloadDocumentHandler streams the archived file, or its JPEG preview.
func downloadDocumentHandler(thumbnail bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := documentIdParam(c)
		if !ok {
			return
		}
		document, data, err := models.GetDocumentContent(c.Request.Context(), id, thumbnail)
		if err != nil {
			respondError(c, err)
			return
		}

		if thumbnail {
			c.Data(http.StatusOK, "image/jpeg", data)
			return
		}
		c.Header("Content-Disposition", utils.AttachmentDisposition(document.Filename))
		c.Data(http.StatusOK, document.ContentType, data)
	}
}
