package response

import (
	"net/http"

	"go-clinic-scheduling/pkg/apperror"
)

// ErrorDetail is the error payload of a failed domain operation
type ErrorDetail struct {
	Kind apperror.Kind `json:"kind"`
}

var statusByKind = map[apperror.Kind]int{
	apperror.KindNotFound:          http.StatusNotFound,
	apperror.KindConflict:          http.StatusConflict,
	apperror.KindValidation:        http.StatusBadRequest,
	apperror.KindInvalidTransition: http.StatusConflict,
}

// StatusOf maps an error kind to its HTTP status; unknown kinds are 500
func StatusOf(err error) int {
	if status, ok := statusByKind[apperror.KindOf(err)]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// FromError writes err using its domain kind. Infrastructure errors get a generic message.
func FromError(w http.ResponseWriter, err error) {
	Error(w, StatusOf(err), apperror.MessageOf(err), ErrorDetail{Kind: apperror.KindOf(err)})
}
