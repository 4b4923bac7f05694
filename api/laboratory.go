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
)

// CreateMaterialType creates a new material type.
//
// Responses:
// - 400 Bad Request: If the body is malformed or fails validation.
// - 409 Conflict: If the code is taken.
// - 201 Created: With the created material type.
func (a Api) CreateMaterialType(c *gin.Context) {
	var req model2.MaterialType
	if !bindJSON(c, &req) {
		return
	}

	resp, err := a.soillab.CreateMaterialType(c.Request.Context(), req.ToMaterialType(""))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (a Api) GetMaterialType(c *gin.Context) {
	resp, err := a.soillab.GetMaterialType(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (a Api) UpdateMaterialType(c *gin.Context) {
	var req model2.MaterialType
	if !bindJSON(c, &req) {
		return
	}

	resp, err := a.soillab.UpdateMaterialType(c.Request.Context(), req.ToMaterialType(c.Param("id")))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetAllMaterialTypes lists material types. Archived ones are hidden unless
// show_archived is set.
func (a Api) GetAllMaterialTypes(c *gin.Context) {
	p, ok := a.listParams(c)
	if !ok {
		return
	}

	resp, err := a.soillab.ListMaterialTypes(c.Request.Context(), p)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// CreateMaterial creates a material under an existing material type.
//
// Responses:
// - 400 Bad Request: If validation fails or the material type does not exist.
// - 409 Conflict: If the type already has a material with this name.
// - 201 Created: With the created material.
func (a Api) CreateMaterial(c *gin.Context) {
	var req model2.Material
	if !bindJSON(c, &req) {
		return
	}

	resp, err := a.soillab.CreateMaterial(c.Request.Context(), req.ToMaterial(""))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (a Api) GetMaterial(c *gin.Context) {
	resp, err := a.soillab.GetMaterial(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (a Api) UpdateMaterial(c *gin.Context) {
	var req model2.Material
	if !bindJSON(c, &req) {
		return
	}

	resp, err := a.soillab.UpdateMaterial(c.Request.Context(), req.ToMaterial(c.Param("id")))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (a Api) GetAllMaterials(c *gin.Context) {
	p, ok := a.listParams(c)
	if !ok {
		return
	}

	resp, err := a.soillab.ListMaterials(c.Request.Context(), p)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (a Api) CreateMaterialSource(c *gin.Context) {
	var req model2.MaterialSource
	if !bindJSON(c, &req) {
		return
	}

	resp, err := a.soillab.CreateMaterialSource(c.Request.Context(), req.ToMaterialSource(""))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (a Api) GetMaterialSource(c *gin.Context) {
	resp, err := a.soillab.GetMaterialSource(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (a Api) UpdateMaterialSource(c *gin.Context) {
	var req model2.MaterialSource
	if !bindJSON(c, &req) {
		return
	}

	resp, err := a.soillab.UpdateMaterialSource(c.Request.Context(), req.ToMaterialSource(c.Param("id")))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (a Api) GetAllMaterialSources(c *gin.Context) {
	p, ok := a.listParams(c)
	if !ok {
		return
	}

	resp, err := a.soillab.ListMaterialSources(c.Request.Context(), p)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (a Api) CreateParameter(c *gin.Context) {
	var req model2.Parameter
	if !bindJSON(c, &req) {
		return
	}

	resp, err := a.soillab.CreateParameter(c.Request.Context(), req.ToParameter(""))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (a Api) GetParameter(c *gin.Context) {
	resp, err := a.soillab.GetParameter(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (a Api) UpdateParameter(c *gin.Context) {
	var req model2.Parameter
	if !bindJSON(c, &req) {
		return
	}

	resp, err := a.soillab.UpdateParameter(c.Request.Context(), req.ToParameter(c.Param("id")))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (a Api) GetAllParameters(c *gin.Context) {
	p, ok := a.listParams(c)
	if !ok {
		return
	}

	resp, err := a.soillab.ListParameters(c.Request.Context(), p)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
