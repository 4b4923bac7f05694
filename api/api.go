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
	"github.com/jerry-enebeli/soillab"
	"github.com/jerry-enebeli/soillab/api/middleware"
	"github.com/jerry-enebeli/soillab/config"
	"github.com/jerry-enebeli/soillab/database"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

type Api struct {
	soillab *soillab.SoilLab
	router  *gin.Engine
	auth    *middleware.AuthMiddleware
}

func (a Api) Router() *gin.Engine {
	router := a.router
	router.GET("/health", a.Health)

	v1 := router.Group(middleware.APIPrefix)

	session := v1.Group("/auth")
	session.POST("/login", a.Login)
	session.POST("/refresh", a.Refresh)
	session.POST("/logout", a.Logout)

	// Any authenticated user may read their own profile.
	v1.GET("/users/me", a.auth.Authenticate(), a.Me)

	r := v1.Group("", a.auth.Authenticate(), a.auth.Authorize())

	r.GET("/material-types", a.GetAllMaterialTypes)
	r.GET("/material-types/lookups", a.lookup(database.MaterialTypes))
	r.POST("/material-types", a.CreateMaterialType)
	r.GET("/material-types/:id", a.GetMaterialType)
	r.PUT("/material-types/:id", a.UpdateMaterialType)
	r.DELETE("/material-types/:id", a.archive(database.MaterialTypes))
	r.POST("/material-types/:id/restore", a.restore(database.MaterialTypes))

	r.GET("/materials", a.GetAllMaterials)
	r.GET("/materials/lookups", a.lookup(database.Materials))
	r.POST("/materials", a.CreateMaterial)
	r.GET("/materials/:id", a.GetMaterial)
	r.PUT("/materials/:id", a.UpdateMaterial)
	r.DELETE("/materials/:id", a.archive(database.Materials))
	r.POST("/materials/:id/restore", a.restore(database.Materials))

	r.GET("/material-sources", a.GetAllMaterialSources)
	r.GET("/material-sources/lookups", a.lookup(database.MaterialSources))
	r.POST("/material-sources", a.CreateMaterialSource)
	r.GET("/material-sources/:id", a.GetMaterialSource)
	r.PUT("/material-sources/:id", a.UpdateMaterialSource)
	r.DELETE("/material-sources/:id", a.archive(database.MaterialSources))
	r.POST("/material-sources/:id/restore", a.restore(database.MaterialSources))

	r.GET("/parameters", a.GetAllParameters)
	r.GET("/parameters/lookups", a.lookup(database.Parameters))
	r.POST("/parameters", a.CreateParameter)
	r.GET("/parameters/:id", a.GetParameter)
	r.PUT("/parameters/:id", a.UpdateParameter)
	r.DELETE("/parameters/:id", a.archive(database.Parameters))
	r.POST("/parameters/:id/restore", a.restore(database.Parameters))

	r.GET("/samples", a.GetAllSamples)
	r.POST("/samples", a.CreateSample)
	r.POST("/samples/report", a.SampleReport)
	r.GET("/samples/:id", a.GetSample)
	r.PUT("/samples/:id", a.UpdateSample)
	r.DELETE("/samples/:id", a.archive(database.Samples))
	r.POST("/samples/:id/restore", a.restore(database.Samples))

	r.GET("/specifications", a.GetAllSpecifications)
	r.POST("/specifications", a.CreateSpecification)
	r.GET("/specifications/:id", a.GetSpecification)
	r.PUT("/specifications/:id", a.UpdateSpecification)
	r.DELETE("/specifications/:id", a.DeleteSpecification)

	r.GET("/test-results", a.GetAllTestResults)
	r.POST("/test-results", a.CreateTestResult)
	r.POST("/test-results/report", a.TestResultReport)
	r.GET("/test-results/:id", a.GetTestResult)
	r.DELETE("/test-results/:id", a.DeleteTestResult)

	r.GET("/measurements", a.GetAllMeasurements)
	r.GET("/measurements/:id", a.GetMeasurement)
	r.DELETE("/measurements/:id", a.archive(database.Measurements))
	r.POST("/measurements/:id/restore", a.restore(database.Measurements))

	r.GET("/users", a.GetAllUsers)
	r.GET("/users/lookups", a.lookup(database.Users))
	r.POST("/users", a.CreateUser)
	r.GET("/users/:id", a.GetUser)
	r.PUT("/users/:id", a.UpdateUser)
	r.PUT("/users/:id/roles", a.SetUserRoles)
	r.PUT("/users/:id/permissions", a.SetUserPermissions)
	r.DELETE("/users/:id", a.archive(database.Users))
	r.POST("/users/:id/restore", a.restore(database.Users))

	r.GET("/roles", a.GetAllRoles)
	r.GET("/roles/lookups", a.lookup(database.Roles))
	r.POST("/roles", a.CreateRole)
	r.GET("/roles/:id", a.GetRole)
	r.PUT("/roles/:id", a.UpdateRole)
	r.DELETE("/roles/:id", a.archive(database.Roles))
	r.POST("/roles/:id/restore", a.restore(database.Roles))

	r.GET("/permissions", a.GetAllPermissions)
	r.GET("/permissions/lookups", a.lookup(database.Permissions))
	r.POST("/permissions", a.CreatePermission)
	r.GET("/permissions/:id", a.GetPermission)
	r.PUT("/permissions/:id", a.UpdatePermission)
	r.DELETE("/permissions/:id", a.archive(database.Permissions))
	r.POST("/permissions/:id/restore", a.restore(database.Permissions))

	return a.router
}

func NewAPI(l *soillab.SoilLab) *Api {
	gin.SetMode(gin.ReleaseMode)
	conf, err := config.Fetch()
	if err != nil {
		return nil
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(otelgin.Middleware(conf.ProjectName))
	r.Use(middleware.RateLimitMiddleware(conf))

	return &Api{soillab: l, router: r, auth: middleware.NewAuthMiddleware(l)}
}

func (a Api) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
