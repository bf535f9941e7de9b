package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/lintang-b-s/igo/pkg/util"
	"go.uber.org/zap"
)

type envelope map[string]any

func (api *routingAPI) writeJSON(w http.ResponseWriter, status int, data any, headers http.Header) error {
	js, err := json.Marshal(data)
	if err != nil {
		return err
	}
	js = append(js, '\n')

	for key, value := range headers {
		w.Header()[key] = value
	}
	if w.Header().Get("Content-Type") == "" {
		w.Header().Set("Content-Type", "application/json")
	}
	w.WriteHeader(status)
	_, err = w.Write(js)
	return err
}

func (api *routingAPI) errorResponse(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	var resp errorResponse
	resp.Error.Code = code
	resp.Error.Message = message
	if err := api.writeJSON(w, status, resp, nil); err != nil {
		api.log.Error("failed to write error response", zap.String("path", r.URL.Path), zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func (api *routingAPI) BadRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	api.errorResponse(w, r, http.StatusBadRequest, "bad_request", err.Error())
}

func (api *routingAPI) NotFoundResponse(w http.ResponseWriter, r *http.Request, err error) {
	api.errorResponse(w, r, http.StatusNotFound, "no_route_found", err.Error())
}

func (api *routingAPI) UnprocessableEntityResponse(w http.ResponseWriter, r *http.Request, err error) {
	api.errorResponse(w, r, http.StatusUnprocessableEntity, "unreachable_location", err.Error())
}

func (api *routingAPI) ServerErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	api.log.Error("internal server error", zap.String("method", r.Method), zap.String("path", r.URL.Path),
		zap.Error(err))
	api.errorResponse(w, r, http.StatusInternalServerError, "internal_error", util.MessageInternalServerError)
}

// getStatusCode. writes the error response matching the code of a util.Error
func (api *routingAPI) getStatusCode(w http.ResponseWriter, r *http.Request, err error) {
	var ierr *util.Error
	if !errors.As(err, &ierr) {
		api.ServerErrorResponse(w, r, err)
		return
	}

	switch ierr.Code() {
	case util.ErrNotFound:
		api.NotFoundResponse(w, r, ierr)
	case util.ErrUnprocessable:
		api.UnprocessableEntityResponse(w, r, ierr)
	case util.ErrBadParamInput:
		api.BadRequestResponse(w, r, ierr)
	default:
		api.ServerErrorResponse(w, r, ierr)
	}
}

func translateError(err error, trans ut.Translator) []error {
	if err == nil {
		return nil
	}
	var validatorErrs validator.ValidationErrors
	if !errors.As(err, &validatorErrs) {
		return []error{err}
	}
	errs := make([]error, 0, len(validatorErrs))
	for _, e := range validatorErrs {
		errs = append(errs, fmt.Errorf("%s", e.Translate(trans)))
	}
	return errs
}
