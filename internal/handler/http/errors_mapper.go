package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-leave-sync/internal/app"
	"github.com/MKhiriev/go-leave-sync/internal/service"
)

// putFailure maps a failed document upload to its status and error
// message. Anything but a malformed body is a failed save.
func putFailure(err error) (int, string) {
	if errors.Is(err, service.ErrInvalidDataProvided) {
		return http.StatusBadRequest, app.MsgInvalidJSON
	}
	return http.StatusInternalServerError, app.MsgFailedToSaveData
}
