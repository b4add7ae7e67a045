//go:build !tinygo

package simapi

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
)

// ServerInterface is the set of simulator control endpoints.
type ServerInterface interface {
	// (GET /health)
	GetHealth(w http.ResponseWriter, r *http.Request)
	// (GET /state)
	GetState(w http.ResponseWriter, r *http.Request)
	// (PUT /bus/{value})
	PutBus(w http.ResponseWriter, r *http.Request, value string)
	// (DELETE /bus)
	DeleteBus(w http.ResponseWriter, r *http.Request)
	// (POST /button/{action})
	PostButton(w http.ResponseWriter, r *http.Request, action string)
	// (DELETE /button)
	DeleteButton(w http.ResponseWriter, r *http.Request)
}

// InvalidParamFormatError reports a path parameter that failed to bind.
type InvalidParamFormatError struct {
	ParamName string
	Err       error
}

func (e *InvalidParamFormatError) Error() string {
	return fmt.Sprintf("Invalid format for parameter %s: %s", e.ParamName, e.Err.Error())
}

func (e *InvalidParamFormatError) Unwrap() error {
	return e.Err
}

// ChiServerOptions configures HandlerWithOptions.
type ChiServerOptions struct {
	BaseURL          string
	BaseRouter       chi.Router
	ErrorHandlerFunc func(w http.ResponseWriter, r *http.Request, err error)
}

// HandlerWithOptions mounts si on a chi router.
func HandlerWithOptions(si ServerInterface, options ChiServerOptions) http.Handler {
	r := options.BaseRouter
	if r == nil {
		r = chi.NewRouter()
	}
	if options.ErrorHandlerFunc == nil {
		options.ErrorHandlerFunc = func(w http.ResponseWriter, r *http.Request, err error) {
			http.Error(w, err.Error(), http.StatusBadRequest)
		}
	}
	wrapper := serverInterfaceWrapper{
		handler:          si,
		errorHandlerFunc: options.ErrorHandlerFunc,
	}

	r.Group(func(r chi.Router) {
		r.Get(options.BaseURL+"/health", wrapper.GetHealth)
		r.Get(options.BaseURL+"/state", wrapper.GetState)
		r.Put(options.BaseURL+"/bus/{value}", wrapper.PutBus)
		r.Delete(options.BaseURL+"/bus", wrapper.DeleteBus)
		r.Post(options.BaseURL+"/button/{action}", wrapper.PostButton)
		r.Delete(options.BaseURL+"/button", wrapper.DeleteButton)
	})
	return r
}

type serverInterfaceWrapper struct {
	handler          ServerInterface
	errorHandlerFunc func(w http.ResponseWriter, r *http.Request, err error)
}

func (siw *serverInterfaceWrapper) GetHealth(w http.ResponseWriter, r *http.Request) {
	siw.handler.GetHealth(w, r)
}

func (siw *serverInterfaceWrapper) GetState(w http.ResponseWriter, r *http.Request) {
	siw.handler.GetState(w, r)
}

func (siw *serverInterfaceWrapper) PutBus(w http.ResponseWriter, r *http.Request) {
	value, ok := siw.pathParam(w, r, "value")
	if !ok {
		return
	}
	siw.handler.PutBus(w, r, value)
}

func (siw *serverInterfaceWrapper) DeleteBus(w http.ResponseWriter, r *http.Request) {
	siw.handler.DeleteBus(w, r)
}

func (siw *serverInterfaceWrapper) PostButton(w http.ResponseWriter, r *http.Request) {
	action, ok := siw.pathParam(w, r, "action")
	if !ok {
		return
	}
	siw.handler.PostButton(w, r, action)
}

func (siw *serverInterfaceWrapper) DeleteButton(w http.ResponseWriter, r *http.Request) {
	siw.handler.DeleteButton(w, r)
}

func (siw *serverInterfaceWrapper) pathParam(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	var s string
	err := runtime.BindStyledParameterWithOptions("simple", name, chi.URLParam(r, name), &s, runtime.BindStyledParameterOptions{
		ParamLocation: runtime.ParamLocationPath,
		Explode:       false,
		Required:      true,
	})
	if err != nil {
		siw.errorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: name, Err: err})
		return "", false
	}
	return s, true
}
