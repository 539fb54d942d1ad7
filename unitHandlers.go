package main

import (
	"net/http"
	"strings"
	"time"

	"bitbucket.org/ksar/surveillance_backend/models"
	"bitbucket.org/ksar/surveillance_backend/models/reports"
	"bitbucket.org/ksar/surveillance_backend/utils"
	"github.com/gin-gonic/gin"
)

func plantsUnitsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		plants, err := models.GetPlantsUnits(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, plants)
	}
}

func unitDetailHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		detail, err := models.GetUnitDetail(c.Request.Context(), strings.TrimSpace(c.Param("name_eng")))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, detail)
	}
}

func unitExportHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		nameEng := strings.TrimSpace(c.Param("name_eng"))
		detail, err := models.GetUnitDetail(c.Request.Context(), nameEng)
		if err != nil {
			respondError(c, err)
			return
		}

		f, err := reports.ExportUnit(detail)
		if err != nil {
			respondError(c, err)
			return
		}
		defer f.Close()

		filename := reports.ExportUnitFileName(detail.Unit.NameEng, time.Now())
		c.Header("Content-Type", reports.ExcelContentType)
		c.Header("Content-Disposition", utils.AttachmentDisposition(filename))
		c.Status(http.StatusOK)
		if err := f.Write(c.Writer); err != nil {
			_ = c.Error(err)
		}
	}
}

func searchPlantsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		results, err := models.SearchPlants(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, results)
	}
}

func searchUnitsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		results, err := models.SearchUnits(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, results)
	}
}

func searchPlacementsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		results, err := models.SearchPlacements(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, results)
	}
}
