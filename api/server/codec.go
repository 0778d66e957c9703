// Copyright (C) 2024, Chain4Travel AG. All rights reserved.
// See the file LICENSE for licensing terms.

package server

import (
	"net/http"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/gorilla/rpc/v2"
	"github.com/gorilla/rpc/v2/json2"
)

var errMalformedMethod = &json2.Error{
	Code:    json2.E_BAD_PARAMS,
	Message: "method must be of the form service.method",
}

// codec accepts lower camel case method names, "nance.getSpace" calls the
// GetSpace method of the nance service.
type codec struct {
	*json2.Codec
}

func newCodec() *codec {
	return &codec{Codec: json2.NewCodec()}
}

func (c *codec) NewRequest(r *http.Request) rpc.CodecRequest {
	return &request{CodecRequest: c.Codec.NewRequest(r)}
}

type request struct {
	rpc.CodecRequest
}

func (r *request) Method() (string, error) {
	method, err := r.CodecRequest.Method()
	if err != nil {
		return "", err
	}
	service, name, ok := strings.Cut(method, ".")
	if !ok || name == "" {
		return "", errMalformedMethod
	}
	first, size := utf8.DecodeRuneInString(name)
	return service + "." + string(unicode.ToUpper(first)) + name[size:], nil
}
