package domain

import (
	"crypto/sha256"
	"encoding/hex"
)

// ImageUpload is a file picked by the user that has not been stored yet.
type ImageUpload struct {
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
	Data        []byte `json:"data"`
}

// ContentHash returns the hex sha256 of the upload bytes.
func (u *ImageUpload) ContentHash() string {
	if u == nil {
		return ""
	}
	sum := sha256.Sum256(u.Data)
	return hex.EncodeToString(sum[:])
}

func (u *ImageUpload) clone() *ImageUpload {
	if u == nil {
		return nil
	}
	c := *u
	c.Data = append([]byte(nil), u.Data...)
	return &c
}

// Image is the product image reference. Upload and PendingRemoval are
// edit-side markers; a snapshot never carries them.
type Image struct {
	URL            string       `json:"url"`
	Upload         *ImageUpload `json:"upload,omitempty"`
	PendingRemoval bool         `json:"pending_removal"`
}

// Pending reports whether the image has an unsaved upload or removal.
func (i Image) Pending() bool {
	return i.Upload != nil || i.PendingRemoval
}

func (i Image) Clone() Image {
	i.Upload = i.Upload.clone()
	return i
}

// committed drops the edit markers, applying a pending removal.
func (i Image) committed() Image {
	if i.PendingRemoval {
		i.URL = ""
	}
	i.Upload = nil
	i.PendingRemoval = false
	return i
}

// ImagePatch replaces the pending upload or marks the image for removal.
// Setting one clears the other.
type ImagePatch struct {
	Upload         *ImageUpload `json:"upload,omitempty"`
	PendingRemoval *bool        `json:"pending_removal,omitempty"`
}

func (i Image) Apply(p ImagePatch) Image {
	if p.Upload != nil {
		i.Upload = p.Upload.clone()
		i.PendingRemoval = false
	}
	if p.PendingRemoval != nil {
		i.PendingRemoval = *p.PendingRemoval
		if i.PendingRemoval {
			i.Upload = nil
		}
	}
	return i
}
