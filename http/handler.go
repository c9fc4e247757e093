package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/fwojciec/pagesense"
)

// Response is the outcome of an API call: a status code and a JSON body.
type Response struct {
	Status int
	Body   []byte
}

// codes maps application error codes to HTTP status codes.
var codes = map[string]int{
	pagesense.EINVALID:     http.StatusBadRequest,
	pagesense.ENOCONTENT:   http.StatusBadRequest,
	pagesense.EUNAVAILABLE: http.StatusInternalServerError,
	pagesense.EBADRESPONSE: http.StatusInternalServerError,
	pagesense.EINTERNAL:    http.StatusInternalServerError,
}

// ErrorStatusCode returns the HTTP status code for an application error code.
func ErrorStatusCode(code string) int {
	if v, ok := codes[code]; ok {
		return v
	}
	return http.StatusInternalServerError
}

// HandleAnalyze handles an analysis request body. A body that cannot be
// decoded is treated as a request without a URL. Failures are always
// returned as an ErrorResponse body.
func HandleAnalyze(ctx context.Context, svc pagesense.AnalysisService, body []byte) Response {
	var req pagesense.AnalyzeRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return errorResponse(pagesense.Errorf(pagesense.EINVALID, pagesense.MsgURLRequired))
	}

	analysis, err := svc.AnalyzeURL(ctx, req.URL)
	if err != nil {
		return errorResponse(err)
	}

	return Response{Status: http.StatusOK, Body: analysis}
}

func errorResponse(err error) Response {
	code := pagesense.ErrorCode(err)
	msg := pagesense.ErrorMessage(err)
	if code == pagesense.EINTERNAL {
		msg = pagesense.MsgAnalyzeFailed
	}

	body, _ := json.Marshal(pagesense.ErrorResponse{Error: msg})
	return Response{Status: ErrorStatusCode(code), Body: body}
}
