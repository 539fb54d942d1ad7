package utils

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"path"
	"strings"
	"time"

	"bitbucket.org/ksar/surveillance_backend/config"
	"github.com/bsm/redislock"
)

const DateLayout = "2006-01-02"

func NewTrue() *bool {
	b := true
	return &b
}

func NilIfEmpty[T comparable](ptr T) *T {
	var zero T
	if ptr == zero {
		return nil
	}
	return &ptr
}

func DereferencePtr[T any](ptr *T, defaults ...T) T {
	if ptr != nil {
		return *ptr
	}
	if len(defaults) > 0 {
		return defaults[0]
	}
	var zero T
	return zero
}

// ParseDate accepts YYYY-MM-DD or RFC3339 and drops the time of day.
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if t, err := time.Parse(DateLayout, value); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, use YYYY-MM-DD", value)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

func FormatDatePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(DateLayout)
	return &s
}

// ObtainLock takes the redis lock "<lockType>:<id>". The caller releases it.
func ObtainLock(ctx context.Context, lockType string, id int, ttl time.Duration, moduleName string, functionName string) (*redislock.Lock, error) {
	logger := config.GetLogger()
	locker := config.GetRedisLock()
	if locker == nil {
		config.LogError(logger, moduleName, functionName, "Redis lock not initialized", id, errors.New("redis lock is nil"))
		return nil, ErrorServiceNotReady
	}
	lockKey := fmt.Sprintf("%s:%d", lockType, id)
	lock, err := locker.Obtain(ctx, lockKey, ttl, &redislock.Options{
		RetryStrategy: redislock.LimitRetry(redislock.LinearBackoff(100*time.Millisecond), 30),
	})
	if errors.Is(err, redislock.ErrNotObtained) {
		config.LogError(logger, moduleName, functionName, "Could not obtain lock "+lockKey, id, err)
		return nil, ErrorLockNotObtained
	} else if err != nil {
		config.LogError(logger, moduleName, functionName, "Error obtaining lock "+lockKey, id, err)
		return nil, err
	}
	return lock, nil
}

var contentTypeByExtension = map[string]string{
	"pdf":  "application/pdf",
	"doc":  "application/msword",
	"docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"xls":  "application/vnd.ms-excel",
	"xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	"txt":  "text/plain",
	"rtf":  "application/rtf",
	"zip":  "application/zip",
	"rar":  "application/x-rar-compressed",
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"png":  "image/png",
	"gif":  "image/gif",
	"bmp":  "image/bmp",
	"tiff": "image/tiff",
	"dwg":  "application/acad",
	"dxf":  "application/dxf",
}

// FileExtension is the lower-cased extension without the dot, or "".
func FileExtension(filename string) string {
	return strings.ToLower(strings.TrimPrefix(path.Ext(filename), "."))
}

func ContentTypeForFilename(filename string) string {
	if ct, ok := contentTypeByExtension[FileExtension(filename)]; ok {
		return ct
	}
	return "application/octet-stream"
}

// AttachmentDisposition builds an RFC 6266 header value that survives non-ASCII names.
func AttachmentDisposition(filename string) string {
	encoded := strings.ReplaceAll(url.QueryEscape(filename), "+", "%20")
	return "attachment; filename*=UTF-8''" + encoded
}
