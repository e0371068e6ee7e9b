// Package policy decides who may view and who may modify a photo.
package policy

import (
	"gallery/internal/auth"
	"gallery/internal/models"
)

// CanView reports whether actor may see photo: public photos are visible to
// everyone, private ones only to their owner.
func CanView(photo *models.Photo, actor auth.Principal) bool {
	if photo == nil {
		return false
	}
	if photo.IsPublic() {
		return true
	}
	return isOwner(photo, actor)
}

// CanModify reports whether actor may edit, re-scope or delete photo.
func CanModify(photo *models.Photo, actor auth.Principal) bool {
	if photo == nil {
		return false
	}
	return isOwner(photo, actor)
}

// AuthorizeView returns nil when actor may view photo. A nil photo is
// reported as not found before any other check.
func AuthorizeView(photo *models.Photo, actor auth.Principal) error {
	if photo == nil {
		return models.ErrNotFound
	}
	if CanView(photo, actor) {
		return nil
	}
	if actor.IsAnonymous() {
		return models.ErrUnauthenticated
	}
	return models.ErrPhotoNotVisible
}

// AuthorizeModify returns nil when actor owns photo.
func AuthorizeModify(photo *models.Photo, actor auth.Principal) error {
	if photo == nil {
		return models.ErrNotFound
	}
	if actor.IsAnonymous() {
		return models.ErrUnauthenticated
	}
	if !CanModify(photo, actor) {
		return models.ErrNotPhotoOwner
	}
	return nil
}

func isOwner(photo *models.Photo, actor auth.Principal) bool {
	return actor.IsAuthenticated() && actor.ID == photo.OwnerID
}
