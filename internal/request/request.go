/*
Copyright 2024 Blnk Finance Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package request

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultTimeout = 10 * time.Second

// ToJsonReq serializes payload into a buffer usable as a request body.
// Parameters:
// - payload: The value to be encoded as JSON.
// Returns:
// - *bytes.Buffer: The encoded JSON body.
// - error: An error if the payload cannot be marshaled.
func ToJsonReq(payload interface{}) (*bytes.Buffer, error) {
	c, e := json.Marshal(payload)
	if e != nil {
		return nil, e
	}
	return bytes.NewBuffer(c), nil
}

// PostJSON sends payload as JSON to url.
// Parameters:
// - ctx: The context bounding the request.
// - url: The destination URL.
// - payload: The value sent as the JSON body.
// - response: Optional pointer the JSON response body is decoded into.
// Returns:
//   - *http.Response: The HTTP response, if one was received.
//   - error: An error if the request fails or the status is not 2xx. The error
//     carries the first bytes of the response body.
func PostJSON(ctx context.Context, url string, payload, response interface{}) (*http.Response, error) {
	body, err := ToJsonReq(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return nil, err
	}
	return Call(req, response)
}

// Call sends req with a JSON content type and decodes the JSON response into
// response, if given.
// Parameters:
// - req: The prepared HTTP request.
// - response: Optional pointer the JSON response body is decoded into.
// Returns the HTTP response and an error if the call or decoding fails.
func Call(req *http.Request, response interface{}) (*http.Response, error) {
	req.Header.Set("Content-Type", "application/json")
	client := &http.Client{Timeout: defaultTimeout}

	resp, err := client.Do(req)
	if err != nil {
		return resp, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return resp, fmt.Errorf("request to %s failed with status %d: %s", req.URL.Host, resp.StatusCode, bytes.TrimSpace(snippet))
	}

	if response == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return resp, nil
	}
	return resp, json.NewDecoder(resp.Body).Decode(response)
}
