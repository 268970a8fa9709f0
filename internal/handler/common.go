package handler

import (
	"net/http"

	apperrors "github.com/linklift/linklift/internal/errors"
	"github.com/linklift/linklift/pkg/utils"
)

func handleError(w http.ResponseWriter, err error) {
	if apiErr, ok := err.(*apperrors.APIError); ok {
		utils.Error(w, apiErr)
		return
	}

	// Check for specific errors
	switch err {
	case apperrors.ErrNotFound:
		utils.NotFound(w, "resource")
	case apperrors.ErrNotAuthorized:
		utils.Error(w, apperrors.NotAuthorized("not authorized"))
	case apperrors.ErrDuplicateRequest:
		utils.Error(w, apperrors.DuplicateRequest())
	case apperrors.ErrCapacityExceeded:
		utils.Error(w, apperrors.CapacityExceeded())
	case apperrors.ErrTooLateToCancel:
		utils.Error(w, apperrors.TooLateToCancel())
	case apperrors.ErrTooLateToRemove:
		utils.Error(w, apperrors.TooLateToRemove())
	default:
		utils.InternalError(w, "internal server error")
	}
}
