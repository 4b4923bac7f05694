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

package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	model2 "github.com/jerry-enebeli/soillab/api/model"
	"github.com/jerry-enebeli/soillab/internal/apierror"
)

// CreateTestResult evaluates the compliance of a parameter test and records
// it, replacing any earlier result of the same sample and parameter.
//
// Responses:
// - 400 Bad Request: If the body is invalid, the context is not a JSON object, inputs required by the rule are missing or a reference does not exist.
// - 409 Conflict: If a result for the same sample and parameter is being recorded concurrently.
// - 422 Unprocessable Entity: If no compliance rule covers the sample and parameter.
// - 201 Created: With the recorded result and its measurements.
func (a Api) CreateTestResult(c *gin.Context) {
	var req model2.TestResult
	if !bindJSON(c, &req) {
		return
	}

	create, err := req.ToTestResultCreate()
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.APIError{Code: apierror.ErrInvalidInput, Message: "context: " + err.Error()})
		return
	}

	resp, err := a.soillab.CreateTestResult(c.Request.Context(), create)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (a Api) GetTestResult(c *gin.Context) {
	resp, err := a.soillab.GetTestResult(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (a Api) GetAllTestResults(c *gin.Context) {
	p, ok := a.listParams(c)
	if !ok {
		return
	}

	resp, err := a.soillab.ListTestResults(c.Request.Context(), p)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// DeleteTestResult removes a result and its measurements for good.
func (a Api) DeleteTestResult(c *gin.Context) {
	if err := a.soillab.DeleteTestResult(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (a Api) GetMeasurement(c *gin.Context) {
	resp, err := a.soillab.GetMeasurement(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (a Api) GetAllMeasurements(c *gin.Context) {
	p, ok := a.listParams(c)
	if !ok {
		return
	}

	resp, err := a.soillab.ListMeasurements(c.Request.Context(), p)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
