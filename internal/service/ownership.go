package service

import appErr "github.com/xxxsen/mmark/internal/pkg/errors"

// Authorize allows access only when the requester owns the resource.
func Authorize(ownerID, requesterID int64) error {
	if ownerID != requesterID {
		return appErr.ErrAccessDenied
	}
	return nil
}
