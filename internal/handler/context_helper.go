package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/print-request-api/internal/dto"
	"github.com/noah-isme/print-request-api/internal/middleware"
	appErrors "github.com/noah-isme/print-request-api/pkg/errors"
)

// maxImageUpload caps meter photos and scan frames.
const maxImageUpload = 10 << 20

// actorName names the staff member behind a request for audit logs.
func actorName(c *gin.Context) string {
	if claims := middleware.StaffFromContext(c); claims != nil {
		return claims.Name
	}
	return "anonymous"
}

func printableURL(prefix, id string) string {
	prefix = strings.TrimRight(prefix, "/")
	return prefix + "/requests/" + id + "/printable"
}

// readImagePayload accepts a multipart file under field, a JSON body with a
// data URL, or a raw image body.
func readImagePayload(c *gin.Context, field string) ([]byte, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxImageUpload)
	contentType := c.ContentType()

	switch {
	case strings.HasPrefix(contentType, "multipart/"):
		header, err := c.FormFile(field)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, field+" file is required")
		}
		f, err := header.Open()
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "unreadable upload")
		}
		defer f.Close()
		return readAll(f)
	case contentType == "application/json":
		var body dto.PhotoUploadRequest
		if err := json.NewDecoder(c.Request.Body).Decode(&body); err != nil || body.DataURL == "" {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusRequestEntityTooLarge, "image too large")
			}
			if err == nil {
				err = errors.New("dataUrl is empty")
			}
			return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "dataUrl is required")
		}
		return []byte(body.DataURL), nil
	default:
		return readAll(c.Request.Body)
	}
}

func readAll(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusRequestEntityTooLarge, "image too large")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "unreadable upload")
	}
	if len(data) == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "image is required")
	}
	return data, nil
}
