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
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jerry-enebeli/soillab"
	model2 "github.com/jerry-enebeli/soillab/api/model"
	"github.com/jerry-enebeli/soillab/model"
)

// CreateSample registers a sample received by the laboratory.
//
// Responses:
// - 400 Bad Request: If validation fails or the material or source does not exist.
// - 201 Created: With the created sample.
func (a Api) CreateSample(c *gin.Context) {
	var req model2.Sample
	if !bindJSON(c, &req) {
		return
	}

	resp, err := a.soillab.CreateSample(c.Request.Context(), req.ToSample(""))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// GetSample returns a sample with its test results and their measurements.
func (a Api) GetSample(c *gin.Context) {
	resp, err := a.soillab.GetSample(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (a Api) UpdateSample(c *gin.Context) {
	var req model2.Sample
	if !bindJSON(c, &req) {
		return
	}

	resp, err := a.soillab.UpdateSample(c.Request.Context(), req.ToSample(c.Param("id")))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (a Api) GetAllSamples(c *gin.Context) {
	p, ok := a.listParams(c)
	if !ok {
		return
	}

	resp, err := a.soillab.ListSamples(c.Request.Context(), p)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// CreateSpecification stores the limits of a parameter for a material and
// source. The triple is unique.
//
// Responses:
// - 400 Bad Request: If validation fails, minValue exceeds maxValue or a reference does not exist.
// - 409 Conflict: If the triple already has limits.
// - 201 Created: With the created specification.
func (a Api) CreateSpecification(c *gin.Context) {
	var req model2.Specification
	if !bindJSON(c, &req) {
		return
	}

	resp, err := a.soillab.CreateSpecification(c.Request.Context(), req.ToSpecification(""))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (a Api) GetSpecification(c *gin.Context) {
	resp, err := a.soillab.GetSpecification(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (a Api) UpdateSpecification(c *gin.Context) {
	var req model2.Specification
	if !bindJSON(c, &req) {
		return
	}

	resp, err := a.soillab.UpdateSpecification(c.Request.Context(), req.ToSpecification(c.Param("id")))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// DeleteSpecification removes a specification for good.
func (a Api) DeleteSpecification(c *gin.Context) {
	if err := a.soillab.DeleteSpecification(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (a Api) GetAllSpecifications(c *gin.Context) {
	p, ok := a.listParams(c)
	if !ok {
		return
	}

	resp, err := a.soillab.ListSpecifications(c.Request.Context(), p)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// SampleReport downloads the sample journal as an XLSX attachment.
//
// Responses:
// - 400 Bad Request: If the date range is invalid.
// - 404 Not Found: If no sample was received in the range.
// - 200 OK: With the workbook.
func (a Api) SampleReport(c *gin.Context) {
	a.report(c, a.soillab.SampleReport)
}

// TestResultReport downloads the test results as an XLSX attachment.
func (a Api) TestResultReport(c *gin.Context) {
	a.report(c, a.soillab.TestResultReport)
}

type reportFunc func(ctx context.Context, r model.ReportRange) (*soillab.Report, error)

func (a Api) report(c *gin.Context, generate reportFunc) {
	var req model2.Report
	if c.Request.ContentLength != 0 {
		if !bindJSON(c, &req) {
			return
		}
	}

	r, err := generate(c.Request.Context(), req.ToReportRange())
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("X-Total-Records", strconv.Itoa(r.Rows))
	c.Header("Content-Disposition", `attachment; filename="`+r.FileName+`"`)
	c.Data(http.StatusOK, r.ContentType, r.Content)
}
