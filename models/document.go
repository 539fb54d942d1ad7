package models

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"bitbucket.org/ksar/surveillance_backend/config"
	"bitbucket.org/ksar/surveillance_backend/utils"
	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const MaxDocumentSizeBytes int64 = 20 * 1024 * 1024

// Document is an archived regulatory or programme document. Contents live in
// the blob store under ObjectKey; image scans also get a thumbnail.
type Document struct {
	ID             int        `gorm:"primary_key" json:"id"`
	FullName       *string    `gorm:"size:250" json:"name"`
	CodeName       string     `gorm:"size:50;not null" json:"code"`
	IssueDate      *time.Time `gorm:"type:date" json:"issue_date"`
	ValidUntilDate *time.Time `gorm:"type:date" json:"valid_until"`
	Filename       string     `gorm:"size:255;not null" json:"filename"`
	ContentType    string     `gorm:"size:100;not null" json:"content_type"`
	FileSize       int64      `gorm:"not null" json:"file_size"`
	ObjectKey      string     `gorm:"size:255;not null" json:"-"`
	ThumbnailKey   *string    `gorm:"size:255" json:"-"`
	CreatedBy      string     `gorm:"size:100" json:"created_by"`
	CreatedAt      time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

type NewDocument struct {
	Name           string  `json:"name" form:"name" validate:"required,max=250"`
	Code           string  `json:"code" form:"code" validate:"required,max=50"`
	IssueDate      *string `json:"issue_date" form:"issue_date"`
	ValidUntilDate *string `json:"valid_until_date" form:"valid_until_date"`
}

type DocumentInfo struct {
	ID            int     `json:"id"`
	Name          *string `json:"name"`
	Code          string  `json:"code"`
	IssueDate     *string `json:"issue_date"`
	ValidUntil    *string `json:"valid_until"`
	Filename      string  `json:"filename"`
	FileSize      int64   `json:"file_size"`
	FileExtension string  `json:"file_extension"`
	ContentType   string  `json:"content_type"`
	HasThumbnail  bool    `json:"has_thumbnail"`
	Status        string  `json:"status"`
}

func (d Document) Info() *DocumentInfo {
	return &DocumentInfo{
		ID:            d.ID,
		Name:          d.FullName,
		Code:          d.CodeName,
		IssueDate:     utils.FormatDatePtr(d.IssueDate),
		ValidUntil:    utils.FormatDatePtr(d.ValidUntilDate),
		Filename:      d.Filename,
		FileSize:      d.FileSize,
		FileExtension: utils.FileExtension(d.Filename),
		ContentType:   d.ContentType,
		HasThumbnail:  d.ThumbnailKey != nil,
		Status:        "active",
	}
}

func GetAllDocuments(ctx context.Context) ([]*DocumentInfo, error) {
	db := config.GetDB()
	var documents []Document
	if err := db.WithContext(ctx).Order("id").Find(&documents).Error; err != nil {
		return nil, err
	}
	results := make([]*DocumentInfo, 0, len(documents))
	for _, d := range documents {
		results = append(results, d.Info())
	}
	return results, nil
}

func GetDocument(ctx context.Context, id int) (*Document, error) {
	db := config.GetDB()
	var document Document
	if err := db.WithContext(ctx).Take(&document, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.ErrorRecordNotFound
		}
		return nil, err
	}
	return &document, nil
}

func UploadDocument(ctx context.Context, input *NewDocument, filename string, content []byte) (*Document, error) {
	if err := utils.ValidateStruct(input); err != nil {
		return nil, err
	}
	if len(content) == 0 {
		return nil, fmt.Errorf("%w: file is empty", utils.ErrorInvalidInput)
	}
	if int64(len(content)) > MaxDocumentSizeBytes {
		return nil, fmt.Errorf("%w: file exceeds %d bytes", utils.ErrorInvalidInput, MaxDocumentSizeBytes)
	}
	issueDate, err := parseOptionalDate(input.IssueDate, "issue_date")
	if err != nil {
		return nil, err
	}
	validUntil, err := parseOptionalDate(input.ValidUntilDate, "valid_until_date")
	if err != nil {
		return nil, err
	}

	filename = strings.TrimSpace(path.Base(filename))
	if filename == "" || filename == "." || filename == "/" {
		filename = "unknown"
	}
	contentType, err := utils.DetectDocumentContentType(filename, content)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrorInvalidInput, err)
	}

	store := utils.GetBlobStore()
	id := uuid.NewString()
	objectKey := "documents/" + id
	if ext := utils.FileExtension(filename); ext != "" {
		objectKey += "." + ext
	}
	if err := store.Put(ctx, objectKey, content, contentType); err != nil {
		return nil, err
	}
	uploaded := []string{objectKey}

	var thumbnailKey *string
	if strings.HasPrefix(contentType, "image/") {
		thumb, err := createThumbnail(content)
		if err != nil {
			// scans in unusual encodings still archive, just without a preview
			config.LogError(config.GetLogger(), "models", "UploadDocument", "create thumbnail", filename, err)
		} else {
			key := thumbnailObjectKey(objectKey)
			if err := store.Put(ctx, key, thumb, "image/jpeg"); err != nil {
				removeBlobs(ctx, uploaded...)
				return nil, err
			}
			uploaded = append(uploaded, key)
			thumbnailKey = &key
		}
	}

	document := Document{
		FullName:       utils.NilIfEmpty(strings.TrimSpace(input.Name)),
		CodeName:       strings.TrimSpace(input.Code),
		IssueDate:      issueDate,
		ValidUntilDate: validUntil,
		Filename:       filename,
		ContentType:    contentType,
		FileSize:       int64(len(content)),
		ObjectKey:      objectKey,
		ThumbnailKey:   thumbnailKey,
		CreatedBy:      usernameFromContext(ctx),
	}
	if err := config.GetDB().WithContext(ctx).Create(&document).Error; err != nil {
		removeBlobs(ctx, uploaded...)
		return nil, err
	}
	return &document, nil
}

func DeleteDocument(ctx context.Context, id int) (*Document, error) {
	document, err := GetDocument(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := config.GetDB().WithContext(ctx).Delete(&Document{}, id).Error; err != nil {
		return nil, err
	}
	keys := []string{document.ObjectKey}
	if document.ThumbnailKey != nil {
		keys = append(keys, *document.ThumbnailKey)
	}
	removeBlobs(ctx, keys...)
	return document, nil
}

// GetDocumentContent returns the stored bytes; thumbnail selects the preview.
func GetDocumentContent(ctx context.Context, id int, thumbnail bool) (*Document, []byte, error) {
	document, err := GetDocument(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	key := document.ObjectKey
	if thumbnail {
		if document.ThumbnailKey == nil {
			return nil, nil, utils.ErrorRecordNotFound
		}
		key = *document.ThumbnailKey
	}
	data, err := utils.GetBlobStore().Get(ctx, key)
	if err != nil {
		return nil, nil, err
	}
	return document, data, nil
}

func createThumbnail(data []byte) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	thumbnail := imaging.Resize(img, 200, 0, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, thumbnail, imaging.JPEG); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func thumbnailObjectKey(objectKey string) string {
	dir := path.Dir(objectKey)
	filename := strings.TrimSuffix(path.Base(objectKey), path.Ext(objectKey))
	return path.Join(dir, "thumbnails", filename+".jpg")
}

func removeBlobs(ctx context.Context, keys ...string) {
	store := utils.GetBlobStore()
	for _, key := range keys {
		if err := store.Delete(ctx, key); err != nil {
			config.LogError(config.GetLogger(), "models", "removeBlobs", "delete blob", key, err)
		}
	}
}

func parseOptionalDate(value *string, field string) (*time.Time, error) {
	if value == nil || strings.TrimSpace(*value) == "" {
		return nil, nil
	}
	t, err := utils.ParseDate(*value)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", utils.ErrorInvalidInput, field, err)
	}
	return &t, nil
}
