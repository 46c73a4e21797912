// Package result contains the results that API endpoints return and the code
// that writes them out as HTTP responses.
package result

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// ErrorResponse is the body of every JSON error response.
type ErrorResponse struct {
	Error  string `json:"error"`
	Status int    `json:"status"`
}

// internalFmt splits the optional internal message arguments that every
// constructor takes into a format string and its args. If none are given, def
// is used.
func internalFmt(def string, internalMsg []interface{}) (string, []interface{}) {
	if len(internalMsg) < 1 {
		return def, nil
	}
	return internalMsg[0].(string), internalMsg[1:]
}

// OK returns a Result containing an HTTP-200 along with a more detailed
// message (if desired; if none is provided it defaults to a generic one) that
// is not displayed to the user.
func OK(respObj interface{}, internalMsg ...interface{}) Result {
	msgFmt, args := internalFmt("OK", internalMsg)
	return Response(http.StatusOK, respObj, msgFmt, args...)
}

// NoContent returns a Result containing an HTTP-204.
func NoContent(internalMsg ...interface{}) Result {
	msgFmt, args := internalFmt("no content", internalMsg)
	return Response(http.StatusNoContent, nil, msgFmt, args...)
}

// Created returns a Result containing an HTTP-201.
func Created(respObj interface{}, internalMsg ...interface{}) Result {
	msgFmt, args := internalFmt("created", internalMsg)
	return Response(http.StatusCreated, respObj, msgFmt, args...)
}

// Conflict returns a Result containing an HTTP-409 that shows userMsg to the
// user.
func Conflict(userMsg string, internalMsg ...interface{}) Result {
	msgFmt, args := internalFmt("conflict", internalMsg)
	return Err(http.StatusConflict, userMsg, msgFmt, args...)
}

// BadRequest returns a Result containing an HTTP-400 that shows userMsg to the
// user.
func BadRequest(userMsg string, internalMsg ...interface{}) Result {
	msgFmt, args := internalFmt("bad request", internalMsg)
	return Err(http.StatusBadRequest, userMsg, msgFmt, args...)
}

// MethodNotAllowed returns a Result containing an HTTP-405 for the method and
// path of req.
func MethodNotAllowed(req *http.Request, internalMsg ...interface{}) Result {
	msgFmt, args := internalFmt("method not allowed", internalMsg)
	userMsg := fmt.Sprintf("Method %s is not allowed for %s", req.Method, req.URL.Path)
	return Err(http.StatusMethodNotAllowed, userMsg, msgFmt, args...)
}

// NotFound returns a Result containing an HTTP-404.
func NotFound(internalMsg ...interface{}) Result {
	msgFmt, args := internalFmt("not found", internalMsg)
	return Err(http.StatusNotFound, "The requested resource was not found", msgFmt, args...)
}

// Forbidden returns a Result containing an HTTP-403.
func Forbidden(internalMsg ...interface{}) Result {
	msgFmt, args := internalFmt("forbidden", internalMsg)
	return Err(http.StatusForbidden, "You don't have permission to do that", msgFmt, args...)
}

// Unauthorized returns a Result containing an HTTP-401 along with the proper
// WWW-Authenticate header. If userMsg is empty, a generic message is used.
func Unauthorized(userMsg string, internalMsg ...interface{}) Result {
	msgFmt, args := internalFmt("unauthorized", internalMsg)
	if userMsg == "" {
		userMsg = "You are not authorized to do that"
	}

	return Err(http.StatusUnauthorized, userMsg, msgFmt, args...).
		WithHeader("WWW-Authenticate", `Bearer realm="Codex server", charset="utf-8"`)
}

// InternalServerError returns a Result containing an HTTP-500. The details in
// internalMsg are only logged; the user gets a generic message.
func InternalServerError(internalMsg ...interface{}) Result {
	msgFmt, args := internalFmt("internal server error", internalMsg)
	return Err(http.StatusInternalServerError, "An internal server error occurred", msgFmt, args...)
}

// Response returns a non-error JSON Result. If status is http.StatusNoContent,
// respObj is not read and may be nil. Otherwise, respObj must not be nil.
func Response(status int, respObj interface{}, internalMsg string, v ...interface{}) Result {
	return Result{
		IsJSON:      true,
		Status:      status,
		InternalMsg: fmt.Sprintf(internalMsg, v...),
		resp:        respObj,
	}
}

// Err returns a JSON error Result whose body is an ErrorResponse.
func Err(status int, userMsg, internalMsg string, v ...interface{}) Result {
	return Result{
		IsJSON:      true,
		IsErr:       true,
		Status:      status,
		InternalMsg: fmt.Sprintf(internalMsg, v...),
		resp: ErrorResponse{
			Error:  userMsg,
			Status: status,
		},
	}
}

// Redirection returns a Result that permanently redirects to uri.
func Redirection(uri string) Result {
	return Result{
		Status:      http.StatusPermanentRedirect,
		InternalMsg: fmt.Sprintf("redirect -> %s", uri),
		redir:       uri,
	}
}

// TextErr is like Err but writes userMsg as plain text instead of JSON.
func TextErr(status int, userMsg, internalMsg string, v ...interface{}) Result {
	return Result{
		IsErr:       true,
		Status:      status,
		InternalMsg: fmt.Sprintf(internalMsg, v...),
		resp:        userMsg,
	}
}

// Result is the outcome of handling a request. InternalMsg is for logging and
// is never sent to the client.
type Result struct {
	Status      int
	IsErr       bool
	IsJSON      bool
	InternalMsg string

	resp  interface{}
	redir string
	hdrs  [][2]string

	// set by calling PrepareMarshaledResponse.
	respJSONBytes []byte
}

// WithHeader returns a copy of r that also sets the given header.
func (r Result) WithHeader(name, val string) Result {
	cp := r
	cp.hdrs = make([][2]string, len(r.hdrs), len(r.hdrs)+1)
	copy(cp.hdrs, r.hdrs)
	cp.hdrs = append(cp.hdrs, [2]string{name, val})
	return cp
}

// PrepareMarshaledResponse marshals the response body if r needs one. It
// returns any error from marshaling. Once it has succeeded, further calls do
// nothing.
func (r *Result) PrepareMarshaledResponse() error {
	if r.respJSONBytes != nil {
		return nil
	}

	if r.IsJSON && r.Status != http.StatusNoContent && r.redir == "" {
		var err error
		r.respJSONBytes, err = json.Marshal(r.resp)
		if err != nil {
			return err
		}
	}

	return nil
}

// WriteResponse writes r to w. It panics if r was not created by one of the
// functions in this package or if its body cannot be marshaled.
func (r Result) WriteResponse(w http.ResponseWriter) {
	if r.Status == 0 {
		panic("result not populated")
	}

	err := r.PrepareMarshaledResponse()
	if err != nil {
		panic(fmt.Sprintf("could not marshal response: %s", err.Error()))
	}

	var respBytes []byte

	if r.IsJSON {
		w.Header().Set("Content-Type", "application/json")
		if r.redir == "" {
			respBytes = r.respJSONBytes
		}
	} else {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		if r.Status != http.StatusNoContent && r.redir == "" {
			respBytes = []byte(fmt.Sprintf("%v", r.resp))
		}
	}
	w.Header().Set("X-Content-Type-Options", "nosniff")

	if r.redir != "" {
		w.Header().Set("Location", r.redir)
	}

	for i := range r.hdrs {
		w.Header().Set(r.hdrs[i][0], r.hdrs[i][1])
	}

	w.WriteHeader(r.Status)

	if r.Status != http.StatusNoContent {
		w.Write(respBytes)
	}
}
