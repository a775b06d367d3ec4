package photo

import (
	"errors"
	"time"
)

var (
	ErrNotFound    = errors.New("photo not found")
	ErrNotImage    = errors.New("uploaded file is not an image")
	ErrNoThumbnail = errors.New("thumbnail not available for this photo")
)

// Photo is an uploaded image attached to a room listing.
type Photo struct {
	ID            string    `json:"id"`
	RoomID        int64     `json:"room_id"`
	UploaderID    string    `json:"uploader_id"`
	Filename      string    `json:"filename"`
	StoragePath   string    `json:"-"`
	ThumbnailPath *string   `json:"-"`
	ContentType   string    `json:"content_type"`
	Size          int64     `json:"size"`
	CreatedAt     time.Time `json:"created_at"`
}

// PhotoURL returns the public URL for accessing a photo by its ID.
func PhotoURL(id string) string {
	return "/v1/photos/" + id
}

// ThumbnailURL returns the public URL for a photo's thumbnail.
func ThumbnailURL(id string) string {
	return "/v1/photos/" + id + "/thumbnail"
}
